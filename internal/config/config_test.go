package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hifiwifi/internal/config"
	"hifiwifi/internal/services"
	"hifiwifi/internal/services/ollama"
	"hifiwifi/internal/wifi"
)

var overrideVars = []string{
	"OLLAMA_HOST",
	"HIFIWIFI_BIND",
	"HIFIWIFI_BACKEND_URL",
	"HIFIWIFI_OLLAMA_HOST",
	"HIFIWIFI_MODEL",
	"HIFIWIFI_VOCABULARY",
	"HIFIWIFI_LOG_FORMAT",
	"HIFIWIFI_LOG_LEVEL",
	"HIFIWIFI_LOG_DIR",
	"HIFIWIFI_STATE_DIR",
}

// isolate gives the test a private HOME and blanks every override variable.
// HIFIWIFI_OLLAMA_HOST is unset instead: a blank value would hide OLLAMA_HOST.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range overrideVars {
		t.Setenv(key, "")
	}
	require.NoError(t, os.Unsetenv("HIFIWIFI_OLLAMA_HOST"))
	return home
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)

	assert.False(t, exists)
	assert.Equal(t, filepath.Join(home, ".config", "hifiwifi", "config.toml"), resolved)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.Bind)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "http://localhost:11434", cfg.Backend.BaseURL)
	assert.Equal(t, "wifi-assistant", cfg.Backend.Model)
	assert.Equal(t, "standard", cfg.Classification.Vocabulary)
	assert.Equal(t, "auto", cfg.Logging.Format)
	assert.Equal(t, filepath.Join(home, ".local", "share", "hifiwifi"), cfg.Paths.StateDir)
	assert.Equal(t, filepath.Join(cfg.Paths.StateDir, "hifiwifi.lock"), cfg.LockPath())
}

func TestLoadCustomPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
[server]
bind = "127.0.0.1:8080"
cors_origins = [" https://app.local ", "https://app.local", ""]

[backend]
base_url = "http://pi.local:11434/"
model = "llama3"
timeout_seconds = 12
max_attempts = 1

[classification]
vocabulary = "Legacy"

[logging]
format = "JSON"
level = "DEBUG"
dir = "~/logs"
`)

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, exists)
	assert.Equal(t, path, resolved)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Bind)
	assert.Equal(t, []string{"https://app.local"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "http://pi.local:11434", cfg.Backend.BaseURL)
	assert.Equal(t, "legacy", cfg.Classification.Vocabulary)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), "logs"), cfg.Logging.Dir)

	vocab, err := cfg.Vocabulary()
	require.NoError(t, err)
	assert.Equal(t, wifi.Legacy, vocab)

	backend := cfg.BackendConfig()
	assert.Equal(t, 12*time.Second, backend.Timeout)
	assert.Equal(t, 1, backend.MaxAttempts)
	assert.Equal(t, time.Second, backend.RetryBackoff)
	assert.Equal(t, 5*time.Second, backend.ProbeTimeout)
	assert.Equal(t, "llama3", backend.Model)
}

func TestZeroRetryBackoffMeansNoWait(t *testing.T) {
	cfg := config.Default()
	cfg.Backend.RetryBackoffSeconds = 0

	backend := cfg.BackendConfig()
	assert.Equal(t, ollama.NoRetryBackoff, backend.RetryBackoff)
	assert.Zero(t, ollama.NewClient(backend).Config().RetryBackoff)

	cfg.Backend.RetryBackoffSeconds = 2
	assert.Equal(t, 2*time.Second, ollama.NewClient(cfg.BackendConfig()).Config().RetryBackoff)
}

func TestEnvironmentOverridesFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
[backend]
base_url = "http://file:11434"
model = "from-file"
`)
	t.Setenv("HIFIWIFI_MODEL", "from-env")
	t.Setenv("HIFIWIFI_TIMEOUT_SECONDS", "45")
	t.Setenv("HIFIWIFI_VOCABULARY", "legacy")

	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Backend.Model)
	assert.Equal(t, 45, cfg.Backend.TimeoutSeconds)
	assert.Equal(t, "legacy", cfg.Classification.Vocabulary)
	assert.Equal(t, "http://file:11434", cfg.Backend.BaseURL)
}

func TestOllamaHostFallback(t *testing.T) {
	isolate(t)
	t.Setenv("OLLAMA_HOST", "10.0.0.5:11434")

	cfg, _, _, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:11434", cfg.Backend.BaseURL)

	t.Setenv("HIFIWIFI_BACKEND_URL", "https://ollama.example")
	cfg, _, _, err = config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "https://ollama.example", cfg.Backend.BaseURL)
}

func TestDotEnvNextToConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "")
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HIFIWIFI_DOTENV_PROBE_MODEL=unused\nHIFIWIFI_STATE_DIR="+filepath.Join(dir, "state")+"\n"), 0o644))
	t.Cleanup(func() {
		_ = os.Unsetenv("HIFIWIFI_DOTENV_PROBE_MODEL")
	})
	// The blank value from isolate counts as set, so .env must not win.
	cfg, _, _, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".local", "share", "hifiwifi"), cfg.Paths.StateDir)
	assert.Equal(t, "unused", os.Getenv("HIFIWIFI_DOTENV_PROBE_MODEL"))
}

func TestBadEnvironmentValue(t *testing.T) {
	isolate(t)
	t.Setenv("HIFIWIFI_MAX_ATTEMPTS", "many")

	_, _, _, err := config.Load("")
	require.Error(t, err)
}

func TestCreateSample(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, config.CreateSample(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, toml.Unmarshal(data, &parsed))
	for _, section := range []string{"server", "backend", "classification", "logging", "paths"} {
		assert.Contains(t, parsed, section)
	}

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	defaults := config.Default()
	assert.Equal(t, defaults.Backend, cfg.Backend)
	assert.Equal(t, defaults.Server, cfg.Server)
}

func TestEncodeRoundTrips(t *testing.T) {
	cfg := config.Default()
	data, err := cfg.Encode()
	require.NoError(t, err)

	var decoded config.Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Bind = "nope"
	cfg.Backend.BaseURL = "ftp://x"
	cfg.Backend.Model = ""
	cfg.Backend.MaxAttempts = 0
	cfg.Backend.RetryBackoffSeconds = -1
	cfg.Classification.Vocabulary = "emoji"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrConfiguration)
	for _, fragment := range []string{
		"server.bind",
		"backend.base_url",
		"backend.model",
		"backend.max_attempts",
		"backend.retry_backoff_seconds",
		"classification.vocabulary",
		"logging.format",
	} {
		assert.Contains(t, err.Error(), fragment)
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, cfg.Validate())
}

func TestEnsureDirectories(t *testing.T) {
	root := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StateDir = filepath.Join(root, "state")
	cfg.Logging.Dir = filepath.Join(root, "logs")

	require.NoError(t, cfg.EnsureDirectories())
	assert.DirExists(t, cfg.Paths.StateDir)
	assert.DirExists(t, cfg.Logging.Dir)
}

func TestLoadMalformedFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "[backend\nmodel = ")

	_, _, _, err := config.Load(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrConfiguration)
	assert.Contains(t, err.Error(), path)
}
