// Package demoapi is a small JSON API for trying the fetch hooks against.
//
// Its routes cover each branch of fetch.CheckStatus: success with and
// without a body, 404, 401, field errors and an error list.
package demoapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// maxBody caps request bodies.
const maxBody = 1 << 16

// API serves items from a Store.
type API struct {
	store  *Store
	logger *slog.Logger
}

// New returns an API backed by store. A nil logger uses slog.Default().
func New(store *Store, logger *slog.Logger) *API {
	if logger == nil {
		logger = slog.Default()
	}
	return &API{store: store, logger: logger}
}

// Router returns the API routes mounted under /api, with mws applied to
// every route.
//
//	GET    /api/items       200 list
//	POST   /api/items       201 created, 400 bad JSON, 422 missing name
//	GET    /api/items/{id}  200 item, 404 unknown
//	DELETE /api/items/{id}  204, 404 unknown
//	GET    /api/private     200 with Authorization, 401 without
//	GET    /api/teapot      418 with an error list
func (a *API) Router(mws ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(mws...)

	r.Route("/api", func(api chi.Router) {
		api.Route("/items", func(items chi.Router) {
			items.Get("/", a.listItems)
			items.Post("/", a.createItem)
			items.Get("/{id}", a.getItem)
			items.Delete("/{id}", a.deleteItem)
		})
		api.Get("/private", a.private)
		api.Get("/teapot", a.teapot)
	})

	return r
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.store.List())
}

type createRequest struct {
	Name string `json:"name"`
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBody))
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		a.writeErrors(w, http.StatusBadRequest, []string{"request body must be a JSON object"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		a.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"errors": map[string]string{"name": "is required"},
		})
		return
	}

	item := a.store.Create(name)
	a.logger.Info("item created", "id", item.ID, "name", item.Name)
	a.writeJSON(w, http.StatusCreated, item)
}

func (a *API) getItem(w http.ResponseWriter, r *http.Request) {
	item, ok := a.store.Get(chi.URLParam(r, "id"))
	if !ok {
		a.writeErrors(w, http.StatusNotFound, []string{"item not found"})
		return
	}
	a.writeJSON(w, http.StatusOK, item)
}

func (a *API) deleteItem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !a.store.Delete(id) {
		a.writeErrors(w, http.StatusNotFound, []string{"item not found"})
		return
	}
	a.logger.Info("item deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) private(w http.ResponseWriter, r *http.Request) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		a.writeErrors(w, http.StatusUnauthorized, []string{"missing credentials"})
		return
	}
	scheme, _, _ := strings.Cut(auth, " ")
	a.writeJSON(w, http.StatusOK, map[string]string{"scheme": scheme})
}

func (a *API) teapot(w http.ResponseWriter, r *http.Request) {
	a.writeErrors(w, http.StatusTeapot, []string{"I'm a little teapot", "short and stout"})
}

func (a *API) writeErrors(w http.ResponseWriter, status int, errs []string) {
	a.writeJSON(w, status, map[string]any{"errors": errs})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("encode response", "error", err)
	}
}
