package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"hifiwifi/internal/services"
	"hifiwifi/internal/services/ollama"
	"hifiwifi/internal/wifi"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains the HTTP listener settings.
type Server struct {
	Bind        string   `toml:"bind"`
	CORSOrigins []string `toml:"cors_origins"`
}

// Backend contains the Ollama connection settings.
type Backend struct {
	BaseURL             string `toml:"base_url"`
	Model               string `toml:"model"`
	TimeoutSeconds      int    `toml:"timeout_seconds"`
	MaxAttempts         int    `toml:"max_attempts"`
	RetryBackoffSeconds int    `toml:"retry_backoff_seconds"`
	ProbeTimeoutSeconds int    `toml:"probe_timeout_seconds"`
}

// Classification selects the rating vocabulary used in prompts.
type Classification struct {
	Vocabulary string `toml:"vocabulary"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	Dir    string `toml:"dir"`
}

// Paths contains directories owned by the daemon.
type Paths struct {
	StateDir string `toml:"state_dir"`
}

// Config encapsulates all configuration values for hifiwifi.
//
// Configuration sections by subsystem:
//   - Server: HTTP bind address and CORS origins
//   - Backend: Ollama URL, model, timeouts and retry policy
//   - Classification: rating vocabulary (standard or legacy)
//   - Logging: log format, level and optional log directory
//   - Paths: state directory holding the daemon lock
type Config struct {
	Server         Server         `toml:"server"`
	Backend        Backend        `toml:"backend"`
	Classification Classification `toml:"classification"`
	Logging        Logging        `toml:"logging"`
	Paths          Paths          `toml:"paths"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Values from .env
// files and HIFIWIFI_* environment variables override the file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "open", resolvedPath, err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, services.Wrap(services.ErrConfiguration, "config", "parse", resolvedPath, err)
		}
	}

	if err := loadDotEnv(filepath.Dir(resolvedPath)); err != nil {
		return nil, "", false, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigName)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Logging.Dir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LockPath is the single-instance lock file inside the state directory.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "hifiwifi.lock")
}

// BackendConfig converts the [backend] section into client settings.
func (c *Config) BackendConfig() ollama.Config {
	return ollama.Config{
		BaseURL:      strings.TrimSpace(c.Backend.BaseURL),
		Model:        strings.TrimSpace(c.Backend.Model),
		Timeout:      seconds(c.Backend.TimeoutSeconds),
		MaxAttempts:  c.Backend.MaxAttempts,
		RetryBackoff: retryBackoff(c.Backend.RetryBackoffSeconds),
		ProbeTimeout: seconds(c.Backend.ProbeTimeoutSeconds),
	}
}

// Vocabulary returns the configured rating vocabulary.
func (c *Config) Vocabulary() (wifi.Vocabulary, error) {
	return wifi.ParseVocabulary(c.Classification.Vocabulary)
}

func seconds(value int) time.Duration {
	return time.Duration(value) * time.Second
}

// retry_backoff_seconds = 0 means back-to-back attempts, not the client default.
func retryBackoff(value int) time.Duration {
	if value == 0 {
		return ollama.NoRetryBackoff
	}
	return seconds(value)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// Encode renders the effective configuration as TOML.
func (c *Config) Encode() ([]byte, error) {
	data, err := toml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}
