package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	DefaultBaseURL      = "http://localhost:11434"
	DefaultModel        = "wifi-assistant"
	DefaultTimeout      = 30 * time.Second
	DefaultMaxAttempts  = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultProbeTimeout = 5 * time.Second

	// NoRetryBackoff asks for back-to-back attempts. A zero RetryBackoff
	// means "use the default".
	NoRetryBackoff time.Duration = -1

	generatePath = "/api/generate"
	tagsPath     = "/api/tags"
)

// Config captures the process-wide backend settings. It is read-only once a
// Client has been built from it.
type Config struct {
	BaseURL      string
	Model        string
	Timeout      time.Duration
	MaxAttempts  int
	RetryBackoff time.Duration
	ProbeTimeout time.Duration
}

func (cfg Config) withDefaults() Config {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.Model = strings.TrimSpace(cfg.Model)
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}
	switch {
	case cfg.RetryBackoff == 0:
		cfg.RetryBackoff = DefaultRetryBackoff
	case cfg.RetryBackoff < 0:
		cfg.RetryBackoff = 0
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	return cfg
}

// Budget is the longest a single Generate can take: every attempt running
// to its timeout plus the waits between them.
func (cfg Config) Budget() time.Duration {
	cfg = cfg.withDefaults()
	return cfg.Timeout*time.Duration(cfg.MaxAttempts) + cfg.RetryBackoff*time.Duration(cfg.MaxAttempts-1)
}

// Request is the immutable input of one generate call.
type Request struct {
	Prompt     string
	Structured bool
	Model      string
}

// Reply is the raw generate payload. Fields other than done and response are ignored.
type Reply struct {
	Done     bool
	Response string
}

// Client talks to the Ollama generate and tags endpoints.
type Client struct {
	cfg         Config
	httpClient  *http.Client
	probeClient *http.Client
	newTimer    func() backoff.Timer
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the client used for generate calls.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithProbeClient overrides the client used by the availability probe.
func WithProbeClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.probeClient = client
		}
	}
}

// WithRetryTimer overrides how backoff waits are timed (useful for tests).
// The factory is called once per Generate so concurrent calls never share a timer.
func WithRetryTimer(factory func() backoff.Timer) Option {
	return func(c *Client) {
		c.newTimer = factory
	}
}

// NewClient constructs a client, filling unset config fields with defaults.
// Pass NoRetryBackoff to retry without waiting.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg = cfg.withDefaults()

	client := &Client{
		cfg:         cfg,
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		probeClient: &http.Client{Timeout: cfg.ProbeTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Config returns the effective settings after defaults were applied.
func (c *Client) Config() Config {
	return c.cfg
}

// Generate sends prompt to the configured model, retrying transient failures,
// and normalizes the reply. structured selects the backend's JSON mode and
// JSON decoding of the reply.
func (c *Client) Generate(ctx context.Context, prompt string, structured bool) (Result, error) {
	reply, err := c.execute(ctx, func() Request {
		return Request{Prompt: prompt, Structured: structured, Model: c.cfg.Model}
	})
	if err != nil {
		return Result{}, err
	}
	return Normalize(reply, structured)
}
