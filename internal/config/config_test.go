package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/hooks/internal/errors"
)

var envKeys = []string{
	"BASE_URL", "AUTH_SCHEME", "AUTH_TOKEN", "TIMEOUT",
	"LOG_LEVEL", "LOG_FORMAT", "LISTEN_ADDR", "METRICS_NAMESPACE",
}

// clearEnv unsets every HOOKS_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		key := EnvPrefix + k
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

// inDir runs the test from dir so the default .env lookup is isolated.
func inDir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultListenAddr, cfg.ListenAddr)
	assert.NoError(t, cfg.Validate(), "defaults validate")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	inDir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, *New(), *cfg)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	inDir(t, t.TempDir())

	t.Setenv("HOOKS_BASE_URL", "https://api.example.com")
	t.Setenv("HOOKS_AUTH_SCHEME", "Bearer")
	t.Setenv("HOOKS_AUTH_TOKEN", "secret")
	t.Setenv("HOOKS_TIMEOUT", "5s")
	t.Setenv("HOOKS_LOG_LEVEL", "debug")
	t.Setenv("HOOKS_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "Bearer secret", cfg.Authorization().Get("Authorization"))
	assert.Equal(t, slog.LevelDebug, cfg.Level())
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	inDir(t, dir)

	content := "HOOKS_BASE_URL=http://file.example.com\nHOOKS_AUTH_TOKEN=from-file\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644))
	// Variables already set win over the file.
	t.Setenv("HOOKS_AUTH_TOKEN", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://file.example.com", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.AuthToken)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assertCode(t, err, "E020")
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unparseable timeout", "HOOKS_TIMEOUT", "soon"},
		{"relative base url", "HOOKS_BASE_URL", "/api"},
		{"ftp base url", "HOOKS_BASE_URL", "ftp://example.com"},
		{"negative timeout", "HOOKS_TIMEOUT", "-1s"},
		{"unknown level", "HOOKS_LOG_LEVEL", "loud"},
		{"unknown format", "HOOKS_LOG_FORMAT", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			inDir(t, t.TempDir())
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assertCode(t, err, "E020")
		})
	}
}

func TestValidateEmptyNamespace(t *testing.T) {
	cfg := New()
	cfg.MetricsNamespace = ""
	assertCode(t, cfg.Validate(), "E020")
}

func TestAuthorizationWithoutToken(t *testing.T) {
	cfg := New()
	assert.Nil(t, cfg.Authorization())

	cfg.AuthToken = "raw"
	cfg.AuthScheme = ""
	assert.Equal(t, "raw", cfg.Authorization().Get("Authorization"))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := New()
	cfg.LogFormat = "json"
	cfg.LogLevel = "warn"

	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "k", "v")

	out := buf.String()
	assert.NotContains(t, out, "hidden", "info record filtered at warn level")
	assert.Contains(t, out, `"msg":"shown"`)
	assert.Contains(t, out, `"k":"v"`)
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var e *errors.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, code, e.Code)
}
