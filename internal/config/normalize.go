package config

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

func (c *Config) normalize() error {
	c.normalizeServer()
	c.normalizeBackend()
	c.normalizeClassification()
	c.normalizeLogging()
	return c.normalizePaths()
}

func (c *Config) normalizeServer() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if c.Server.Bind == "" {
		c.Server.Bind = defaultBind
	}
	origins := lo.Uniq(lo.Compact(lo.Map(c.Server.CORSOrigins, func(origin string, _ int) string {
		return strings.TrimSpace(origin)
	})))
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c.Server.CORSOrigins = origins
}

func (c *Config) normalizeBackend() {
	base := strings.TrimSpace(c.Backend.BaseURL)
	if base != "" && !strings.Contains(base, "://") {
		// OLLAMA_HOST is commonly host:port without a scheme.
		base = "http://" + base
	}
	c.Backend.BaseURL = strings.TrimRight(base, "/")
	c.Backend.Model = strings.TrimSpace(c.Backend.Model)
}

func (c *Config) normalizeClassification() {
	c.Classification.Vocabulary = strings.ToLower(strings.TrimSpace(c.Classification.Vocabulary))
	if c.Classification.Vocabulary == "" {
		c.Classification.Vocabulary = defaultVocabulary
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Logging.Dir, err = expandPath(strings.TrimSpace(c.Logging.Dir)); err != nil {
		return fmt.Errorf("logging.dir: %w", err)
	}
	return nil
}
