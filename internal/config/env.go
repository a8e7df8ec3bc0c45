package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "HIFIWIFI"

// envOverrides lists every setting that can come from the environment. Unset
// or blank variables leave the file value alone. OllamaHost also honours the bare
// OLLAMA_HOST variable used by the ollama CLI.
type envOverrides struct {
	Bind                *string `split_words:"true"`
	BackendURL          *string `split_words:"true"`
	OllamaHost          *string `envconfig:"OLLAMA_HOST"`
	Model               *string `split_words:"true"`
	TimeoutSeconds      *int    `split_words:"true"`
	MaxAttempts         *int    `split_words:"true"`
	RetryBackoffSeconds *int    `split_words:"true"`
	ProbeTimeoutSeconds *int    `split_words:"true"`
	Vocabulary          *string `split_words:"true"`
	LogFormat           *string `split_words:"true"`
	LogLevel            *string `split_words:"true"`
	LogDir              *string `split_words:"true"`
	StateDir            *string `split_words:"true"`
}

// loadDotEnv reads .env from the config directory and the working directory.
// Variables already present in the environment win.
func loadDotEnv(configDir string) error {
	candidates := []string{".env"}
	if configDir != "" {
		candidates = append([]string{filepath.Join(configDir, ".env")}, candidates...)
	}
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		if _, ok := seen[abs]; ok {
			continue
		}
		seen[abs] = struct{}{}
		if _, err := os.Stat(abs); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(abs); err != nil {
			return fmt.Errorf("load %s: %w", abs, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("environment overrides: %w", err)
	}
	setString(&c.Server.Bind, env.Bind)
	setString(&c.Backend.BaseURL, env.OllamaHost)
	setString(&c.Backend.BaseURL, env.BackendURL)
	setString(&c.Backend.Model, env.Model)
	setInt(&c.Backend.TimeoutSeconds, env.TimeoutSeconds)
	setInt(&c.Backend.MaxAttempts, env.MaxAttempts)
	setInt(&c.Backend.RetryBackoffSeconds, env.RetryBackoffSeconds)
	setInt(&c.Backend.ProbeTimeoutSeconds, env.ProbeTimeoutSeconds)
	setString(&c.Classification.Vocabulary, env.Vocabulary)
	setString(&c.Logging.Format, env.LogFormat)
	setString(&c.Logging.Level, env.LogLevel)
	setString(&c.Logging.Dir, env.LogDir)
	setString(&c.Paths.StateDir, env.StateDir)
	return nil
}

func setString(dst *string, value *string) {
	if value != nil && strings.TrimSpace(*value) != "" {
		*dst = *value
	}
}

func setInt(dst *int, value *int) {
	if value != nil {
		*dst = *value
	}
}
