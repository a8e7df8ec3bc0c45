package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hifiwifi/internal/advisor"
	"hifiwifi/internal/config"
	"hifiwifi/internal/services"
	"hifiwifi/internal/services/ollama"
	"hifiwifi/internal/wifi"
)

func testConfig(t *testing.T, backendURL string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Bind = "127.0.0.1:0"
	cfg.Paths.StateDir = filepath.Join(t.TempDir(), "state")
	cfg.Backend.BaseURL = backendURL
	return &cfg
}

func newTestDaemon(t *testing.T, cfg *config.Config) *Daemon {
	t.Helper()
	client := ollama.NewClient(cfg.BackendConfig())
	svc := advisor.NewService(client, client, wifi.Standard, cfg.Backend.Model, nil)
	d, err := New(cfg, svc, nil)
	require.NoError(t, err)
	return d
}

func TestNewRequiresDependencies(t *testing.T) {
	_, err := New(nil, nil, nil)
	require.Error(t, err)
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	d := newTestDaemon(t, cfg)

	require.NoError(t, d.Start(context.Background()))
	t.Cleanup(d.Stop)

	status := d.Status(context.Background())
	assert.True(t, status.Running)
	assert.NotEmpty(t, status.Address)
	assert.Equal(t, filepath.Join(cfg.Paths.StateDir, "hifiwifi.lock"), status.LockFilePath)
	assert.False(t, status.Health.BackendAvailable)
	assert.FileExists(t, status.LockFilePath)

	require.Error(t, d.Start(context.Background()), "second start on the same daemon")

	d.Stop()
	assert.False(t, d.Status(context.Background()).Running)
}

func TestWriteTimeoutCoversBackendRetries(t *testing.T) {
	tests := []struct {
		name                     string
		timeout, attempts, pause int
		budget                   time.Duration
	}{
		{"defaults", 30, 3, 1, 92 * time.Second},
		{"slow model", 200, 3, 1, 602 * time.Second},
		{"many attempts", 120, 5, 10, 640 * time.Second},
		{"no backoff", 60, 2, 0, 120 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(t, "http://127.0.0.1:1")
			cfg.Backend.TimeoutSeconds = tt.timeout
			cfg.Backend.MaxAttempts = tt.attempts
			cfg.Backend.RetryBackoffSeconds = tt.pause
			d := newTestDaemon(t, cfg)

			require.Equal(t, tt.budget, cfg.BackendConfig().Budget())
			assert.Greater(t, d.api.server.WriteTimeout, tt.budget)
		})
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := testConfig(t, "http://127.0.0.1:1")
	first := newTestDaemon(t, cfg)
	require.NoError(t, first.Start(context.Background()))
	t.Cleanup(first.Stop)

	second := newTestDaemon(t, cfg)
	err := second.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")
	assert.ErrorIs(t, err, services.ErrConflict)

	first.Stop()
	require.NoError(t, second.Start(context.Background()))
	second.Stop()
}

func TestDaemonServesAgainstBackend(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/tags":
			_, _ = io.WriteString(w, `{"models":[{"name":"wifi-assistant:latest"}]}`)
		case "/api/generate":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			reply := `{\"status\":\"success\",\"recommendation\":{\"action\":\"stay_current\"}}`
			if body["format"] != "json" {
				reply = "All good."
			}
			_, _ = fmt.Fprintf(w, `{"done":true,"response":"%s"}`, reply)
		default:
			http.NotFound(w, r)
		}
	}))
	defer backend.Close()

	cfg := testConfig(t, backend.URL)
	d := newTestDaemon(t, cfg)
	require.NoError(t, d.Start(context.Background()))
	defer d.Stop()

	base := "http://" + d.Status(context.Background()).Address
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(base + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Post(base+"/analyze", "application/json", strings.NewReader(
		`{"location":"living_room","signal_dbm":-40,"link_speed_mbps":900,"latency_ms":5,"frequency":"5GHz","activity":"gaming"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var env map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, "success", env["status"])
	assert.Equal(t, map[string]any{"action": "stay_current"}, env["recommendation"])

	chat, err := client.Post(base+"/chat", "application/json", strings.NewReader(`{"query":"how is my wifi?"}`))
	require.NoError(t, err)
	defer chat.Body.Close()
	var chatEnv map[string]any
	require.NoError(t, json.NewDecoder(chat.Body).Decode(&chatEnv))
	assert.Equal(t, "All good.", chatEnv["response"])
}
