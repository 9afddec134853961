package config

import (
	stderrors "errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/vango-dev/hooks/internal/errors"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "HOOKS_"

	// DefaultEnvFile is loaded by Load when no files are given.
	DefaultEnvFile = ".env"

	// DefaultBaseURL is the API the CLI talks to by default.
	DefaultBaseURL = "http://localhost:8080"

	// DefaultListenAddr is the demo server's default address.
	DefaultListenAddr = ":8080"

	// DefaultTimeout bounds a single CLI request.
	DefaultTimeout = 30 * time.Second
)

// Config holds hooksctl settings.
type Config struct {
	// BaseURL is prepended to request paths.
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// AuthScheme and AuthToken form the Authorization header
	// ("<scheme> <token>"). No header is sent without a token.
	AuthScheme string `env:"AUTH_SCHEME" envDefault:"Token"`
	AuthToken  string `env:"AUTH_TOKEN"`

	// Timeout bounds a single request, including waiting for it to settle.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat is text or json.
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	// ListenAddr is where the demo server listens.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`

	// MetricsNamespace prefixes the Prometheus metrics.
	MetricsNamespace string `env:"METRICS_NAMESPACE" envDefault:"hooks"`
}

// New returns a Config with default values.
func New() *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		AuthScheme:       "Token",
		Timeout:          DefaultTimeout,
		LogLevel:         "info",
		LogFormat:        "text",
		ListenAddr:       DefaultListenAddr,
		MetricsNamespace: "hooks",
	}
}

// Load reads .env files into the environment and parses the HOOKS_*
// variables into a validated Config. With no files, DefaultEnvFile is
// loaded if it exists.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(DefaultEnvFile); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New("E020").
				WithDetail("Could not read " + DefaultEnvFile).
				Wrap(err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, errors.New("E020").
			WithDetail("Could not read " + strings.Join(files, ", ")).
			Wrap(err)
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, errors.New("E020").Wrap(err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("E020").
			WithDetail("HOOKS_BASE_URL must be an absolute http(s) URL, got " + strconv.Quote(c.BaseURL))
	}
	if c.Timeout < 0 {
		return errors.New("E020").
			WithDetail("HOOKS_TIMEOUT must not be negative")
	}
	if _, ok := levels[strings.ToLower(c.LogLevel)]; !ok {
		return errors.New("E020").
			WithDetail("HOOKS_LOG_LEVEL must be one of debug, info, warn, error").
			WithSuggestion("Set HOOKS_LOG_LEVEL=info")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return errors.New("E020").
			WithDetail("HOOKS_LOG_FORMAT must be text or json")
	}
	if c.MetricsNamespace == "" {
		return errors.New("E020").
			WithDetail("HOOKS_METRICS_NAMESPACE must not be empty")
	}
	return nil
}

var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// Level returns the slog level for LogLevel, defaulting to info.
func (c *Config) Level() slog.Level {
	if l, ok := levels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// NewLogger returns a logger writing to w in LogFormat at LogLevel.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Authorization returns the Authorization header for AuthToken, or nil when
// no token is configured.
func (c *Config) Authorization() http.Header {
	if c.AuthToken == "" {
		return nil
	}
	value := c.AuthToken
	if c.AuthScheme != "" {
		value = c.AuthScheme + " " + c.AuthToken
	}
	return http.Header{"Authorization": {value}}
}
