package errors

import (
	"sort"
	"sync"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

var (
	registryMu sync.RWMutex

	// registry maps error codes to their templates.
	registry = map[string]ErrorTemplate{
		// Runtime (E001-E009)
		"E001": {
			Category: CategoryRuntime,
			Message:  "Hook called outside component render",
			Detail:   "Hooks store their state on the component that is currently rendering. Call them from the render function passed to reactive.Mount.",
		},
		"E002": {
			Category: CategoryRuntime,
			Message:  "Hook order changed between renders",
			Detail:   "Hooks must be called unconditionally and in the same order on every render. Move conditional logic inside the hook callbacks.",
		},
		"E003": {
			Category: CategoryRuntime,
			Message:  "Component already unmounted",
			Detail:   "The component owner has been disposed. Rendering or scheduling work on it has no effect.",
		},

		// Network (E010-E019)
		"E010": {
			Category: CategoryNetwork,
			Message:  "Request could not be built",
			Detail:   "The request URL, method or body is invalid.",
		},
		"E011": {
			Category: CategoryNetwork,
			Message:  "Response body could not be decoded",
			Detail:   "The server answered with a success status but the body is not valid JSON for the expected type.",
		},

		// Config (E020-E029)
		"E020": {
			Category: CategoryConfig,
			Message:  "Invalid configuration",
			Detail:   "One or more HOOKS_* environment variables have an invalid value.",
		},

		// CLI (E030-E039)
		"E030": {
			Category: CategoryCLI,
			Message:  "Request did not settle before the timeout",
			Detail:   "The component was unmounted and the in-flight request cancelled.",
		},
	}
)

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	registryMu.RLock()
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	registryMu.RUnlock()
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[code] = template
}

func unregister(code string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(registry, code)
}
