package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"slices"

	"github.com/samber/lo"

	"hifiwifi/internal/services"
	"hifiwifi/internal/wifi"
)

var (
	validLogFormats = []string{"auto", "console", "json"}
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate ensures the configuration is usable. Every problem found is
// reported, joined into one error marked services.ErrConfiguration.
func (c *Config) Validate() error {
	err := errors.Join(
		c.validateServer(),
		c.validateBackend(),
		c.validateClassification(),
		c.validateLogging(),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", services.ErrConfiguration, err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if _, _, err := net.SplitHostPort(c.Server.Bind); err != nil {
		return fmt.Errorf("server.bind %q must be host:port: %w", c.Server.Bind, err)
	}
	return nil
}

func (c *Config) validateBackend() error {
	var errs []error
	parsed, err := url.Parse(c.Backend.BaseURL)
	switch {
	case c.Backend.BaseURL == "":
		errs = append(errs, errors.New("backend.base_url must be set"))
	case err != nil:
		errs = append(errs, fmt.Errorf("backend.base_url: %w", err))
	case parsed.Scheme != "http" && parsed.Scheme != "https":
		errs = append(errs, fmt.Errorf("backend.base_url %q must use http or https", c.Backend.BaseURL))
	case parsed.Host == "":
		errs = append(errs, fmt.Errorf("backend.base_url %q has no host", c.Backend.BaseURL))
	}
	if c.Backend.Model == "" {
		errs = append(errs, errors.New("backend.model must be set"))
	}
	errs = append(errs, ensurePositiveMap(map[string]int{
		"backend.timeout_seconds":       c.Backend.TimeoutSeconds,
		"backend.max_attempts":          c.Backend.MaxAttempts,
		"backend.probe_timeout_seconds": c.Backend.ProbeTimeoutSeconds,
	}))
	if c.Backend.RetryBackoffSeconds < 0 {
		errs = append(errs, errors.New("backend.retry_backoff_seconds must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) validateClassification() error {
	if _, err := wifi.ParseVocabulary(c.Classification.Vocabulary); err != nil {
		return fmt.Errorf("classification.vocabulary: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	var errs []error
	if !lo.Contains(validLogFormats, c.Logging.Format) {
		errs = append(errs, fmt.Errorf("logging.format %q must be one of %v", c.Logging.Format, validLogFormats))
	}
	if !lo.Contains(validLogLevels, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level %q must be one of %v", c.Logging.Level, validLogLevels))
	}
	return errors.Join(errs...)
}

func ensurePositiveMap(values map[string]int) error {
	keys := lo.Keys(values)
	slices.Sort(keys)
	var errs []error
	for _, key := range keys {
		if values[key] <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive", key))
		}
	}
	return errors.Join(errs...)
}
