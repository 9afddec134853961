package fetch

import (
	"net/http"

	"github.com/vango-dev/hooks/pkg/hooks"
)

// BaseConfig holds the settings shared by an application's requests.
// Every field is optional.
type BaseConfig struct {
	// Authorization returns headers added to every request, after all
	// other options have been merged.
	Authorization func() http.Header

	// BaseURL returns the prefix prepended to each request URL.
	BaseURL func() string

	// DefaultOptions are overlaid by each request's own options.
	DefaultOptions Options
}

// Base is a UseFetch factory bound to a BaseConfig.
type Base struct {
	config BaseConfig
}

// NewBase returns a Base for config.
func NewBase(config BaseConfig) *Base {
	return &Base{config: config}
}

// Resolve applies the base settings to url and opts. BaseURL and Authorization are
// called on every Resolve, so they may return values that change over time.
func (b *Base) Resolve(url string, opts Options) (string, Options) {
	if b.config.BaseURL != nil {
		url = b.config.BaseURL() + url
	}

	merged := b.config.DefaultOptions.Merge(&opts)
	if b.config.Authorization != nil {
		merged.Header = mergeHeader(merged.Header, b.config.Authorization())
	}
	return url, merged
}

// UseBaseFetch is UseFetch with b's settings applied to cfg. The callback
// keeps the URL and headers resolved when it was created, so a rotated
// Authorization takes effect once cfg.URL changes or the component remounts.
func UseBaseFetch[S any](b *Base, cfg Config[S]) (hooks.AsyncState[S], func(RequestOptions)) {
	cfg.URL, cfg.Options = b.Resolve(cfg.URL, cfg.Options)
	return UseFetch(cfg)
}
