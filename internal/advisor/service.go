package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"hifiwifi/internal/logging"
	"hifiwifi/internal/prompt"
	"hifiwifi/internal/services/ollama"
	"hifiwifi/internal/wifi"
)

const (
	keyMetadata            = "metadata"
	keyIgnoredMeasurements = "ignored_measurements"
)

// Health is the backend view reported by the health route and the probe command.
type Health struct {
	BackendAvailable bool   `json:"ollama_available"`
	ModelAvailable   bool   `json:"model_available"`
	Model            string `json:"model"`
}

// Healthy reports whether the backend answers. A missing model is reported
// through ModelAvailable without failing the check.
func (h Health) Healthy() bool {
	return h.BackendAvailable
}

// Service answers analysis, explanation and chat requests. It is safe for
// concurrent use when its Generator and Prober are.
type Service struct {
	gen    Generator
	probe  Prober
	vocab  wifi.Vocabulary
	model  string
	logger *slog.Logger
}

// NewService wires a service. A nil logger discards output.
func NewService(gen Generator, probe Prober, vocab wifi.Vocabulary, model string, logger *slog.Logger) *Service {
	return &Service{
		gen:    gen,
		probe:  probe,
		vocab:  vocab,
		model:  strings.TrimSpace(model),
		logger: logging.NewComponentLogger(logger, "advisor"),
	}
}

// Vocabulary returns the rating vocabulary prompts are rendered in.
func (s *Service) Vocabulary() wifi.Vocabulary {
	return s.vocab
}

// Analyze requests a structured recommendation for a classified measurement.
// Ratings from the other vocabulary are translated before rendering.
func (s *Service) Analyze(ctx context.Context, m prompt.ClassifiedMeasurement) Envelope {
	m.SignalStrength = s.translate(m.SignalStrength)
	m.Latency = s.translate(m.Latency)
	m.Bandwidth = s.translate(m.Bandwidth)
	return s.run(ctx, ModeAnalysis, prompt.Analysis(m, s.vocab), true)
}

// AnalyzeBatch analyzes the first measurement only and records how many
// were skipped.
func (s *Service) AnalyzeBatch(ctx context.Context, batch []prompt.ClassifiedMeasurement) Envelope {
	if len(batch) == 0 {
		return Failure(ModeAnalysis, "No measurements provided")
	}
	env := s.Analyze(ctx, batch[0])
	if ignored := len(batch) - 1; ignored > 0 {
		logging.WarnWithContext(logging.WithContext(ctx, s.logger), "only the first measurement was analyzed", "measurements_ignored",
			logging.Int(keyIgnoredMeasurements, ignored),
			logging.String(logging.FieldErrorHint, "send one measurement per request"),
			logging.String(logging.FieldImpact, "later measurements got no recommendation"),
		)
		env[keyIgnoredMeasurements] = ignored
	}
	return env
}

// AnalyzeRaw requests a structured recommendation from numeric readings.
func (s *Service) AnalyzeRaw(ctx context.Context, m prompt.RawMeasurement) Envelope {
	return s.run(ctx, ModeAnalysis, prompt.RawAnalysis(m, s.vocab), true)
}

// Explain asks for a plain-language justification of an existing decision.
func (s *Service) Explain(ctx context.Context, in prompt.ExplanationInput) Envelope {
	in.Ratings = wifi.Ratings{
		SignalStrength: s.translate(in.Ratings.SignalStrength),
		Latency:        s.translate(in.Ratings.Latency),
		Bandwidth:      s.translate(in.Ratings.Bandwidth),
	}
	env := s.run(ctx, ModeExplanation, prompt.Explanation(in), false)
	env[keyMetadata] = map[string]any{
		"location":       in.Location,
		"activity":       in.Activity,
		"recommendation": in.Action,
	}
	return env
}

// Chat forwards a free-text query. structured asks the backend for JSON.
func (s *Service) Chat(ctx context.Context, query string, structured bool) Envelope {
	return s.run(ctx, ModeChat, prompt.Chat(query), structured)
}

// Available reports whether the backend answers its listing endpoint.
func (s *Service) Available(ctx context.Context) bool {
	if s.probe == nil {
		return false
	}
	return s.probe.IsReachable(ctx)
}

// Health checks reachability and, when reachable, whether the configured
// model is installed.
func (s *Service) Health(ctx context.Context) Health {
	health := Health{Model: s.model}
	if !s.Available(ctx) {
		return health
	}
	health.BackendAvailable = true
	if s.model == "" {
		return health
	}
	ok, err := s.probe.HasModel(ctx, s.model)
	if err != nil {
		logging.WithContext(ctx, s.logger).Debug("model lookup failed", logging.Error(err))
		return health
	}
	health.ModelAvailable = ok
	return health
}

// Decide runs the local recommendation rules without contacting the backend.
func (s *Service) Decide(ctx context.Context, snap wifi.Snapshot) wifi.Decision {
	decision := wifi.Decide(snap)
	attrs := append(
		logging.DecisionAttrs("recommendation", decision.Action, decision.ReasonCode),
		logging.String("activity", snap.Activity),
	)
	logging.WithContext(ctx, s.logger).Info("local decision", logging.Args(attrs...)...)
	return decision
}

func (s *Service) run(ctx context.Context, mode Mode, text string, structured bool) Envelope {
	logger := logging.WithContext(ctx, s.logger).With(logging.String(logging.FieldMode, string(mode)))
	if s.gen == nil {
		return Failure(mode, "backend not configured")
	}
	res, err := s.gen.Generate(ctx, text, structured)
	if err != nil {
		logging.WarnWithContext(logger, "backend request failed", failureEvent(err),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, failureHint(err)),
		)
		return Shape(mode, res, err)
	}
	env := Shape(mode, res, nil)
	if res.Kind == ollama.KindNonJSON {
		logger.Info("structured reply was not JSON, returning text", logging.Int("length", len(res.Text)))
	} else {
		logger.Debug("backend reply shaped", logging.String("kind", res.Kind.String()))
	}
	return env
}

func (s *Service) translate(rating string) string {
	if word, ok := s.vocab.Normalize(rating); ok {
		return word
	}
	return strings.TrimSpace(rating)
}

func failureEvent(err error) string {
	var (
		conn    *ollama.ConnectionFailure
		timeout *ollama.TimeoutFailure
	)
	switch {
	case errors.As(err, &conn):
		return "backend_unreachable"
	case errors.As(err, &timeout):
		return "backend_timeout"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request_canceled"
	default:
		return "backend_reply_invalid"
	}
}

func failureHint(err error) string {
	var (
		conn      *ollama.ConnectionFailure
		timeout   *ollama.TimeoutFailure
		transport *ollama.TransportError
	)
	switch {
	case errors.As(err, &conn):
		return "start ollama or check backend.base_url"
	case errors.As(err, &timeout):
		return "raise backend.timeout_seconds or use a smaller model"
	case errors.As(err, &transport):
		return "check the model name and ollama server logs"
	default:
		return "inspect the model output; the prompt may need tightening"
	}
}
