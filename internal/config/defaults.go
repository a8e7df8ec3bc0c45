package config

import "hifiwifi/internal/services/ollama"

const (
	defaultConfigPath          = "~/.config/hifiwifi/config.toml"
	projectConfigName          = "hifiwifi.toml"
	defaultBind                = "0.0.0.0:5000"
	defaultTimeoutSeconds      = 30
	defaultMaxAttempts         = 3
	defaultRetryBackoffSeconds = 1
	defaultProbeTimeoutSeconds = 5
	defaultVocabulary          = "standard"
	defaultLogFormat           = "auto"
	defaultLogLevel            = "info"
	defaultStateDir            = "~/.local/share/hifiwifi"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind:        defaultBind,
			CORSOrigins: []string{"*"},
		},
		Backend: Backend{
			BaseURL:             ollama.DefaultBaseURL,
			Model:               ollama.DefaultModel,
			TimeoutSeconds:      defaultTimeoutSeconds,
			MaxAttempts:         defaultMaxAttempts,
			RetryBackoffSeconds: defaultRetryBackoffSeconds,
			ProbeTimeoutSeconds: defaultProbeTimeoutSeconds,
		},
		Classification: Classification{
			Vocabulary: defaultVocabulary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
		},
	}
}
