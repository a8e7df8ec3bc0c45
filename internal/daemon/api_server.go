package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"hifiwifi/internal/advisor"
	"hifiwifi/internal/api"
	"hifiwifi/internal/logging"
	"hifiwifi/internal/services"
)

const maxBodyBytes = 1 << 20

// Endpoints lists the routes reported to clients that hit an unknown path.
var Endpoints = []string{
	"GET /health",
	"POST /analyze",
	"POST /explain",
	"POST /chat",
	"POST /decide",
}

type apiServer struct {
	bind    string
	logger  *slog.Logger
	service *advisor.Service

	handler  http.Handler
	listener net.Listener
	server   *http.Server
}

// writeMargin covers prompt building and encoding on top of the backend budget.
const writeMargin = 30 * time.Second

func newAPIServer(bind string, origins []string, backendBudget time.Duration, svc *advisor.Service, logger *slog.Logger) *apiServer {
	srv := &apiServer{
		bind:    strings.TrimSpace(bind),
		logger:  logging.NewComponentLogger(logger, "http"),
		service: svc,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", srv.handleHealth)
	mux.HandleFunc("/analyze", srv.handleAnalyze)
	mux.HandleFunc("/explain", srv.handleExplain)
	mux.HandleFunc("/chat", srv.handleChat)
	mux.HandleFunc("/decide", srv.handleDecide)
	mux.HandleFunc("/", srv.handleNotFound)

	srv.handler = chain(mux,
		requestIDMiddleware,
		corsMiddleware(origins),
		loggingMiddleware(srv.logger),
		recoverMiddleware(srv.logger),
	)
	srv.server = &http.Server{
		Handler:           h2c.NewHandler(srv.handler, &http2.Server{}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// A response must outlive every backend attempt or the client sees EOF
		// instead of an envelope.
		WriteTimeout: backendBudget + writeMargin,
		IdleTimeout:  60 * time.Second,
	}
	return srv
}

func (s *apiServer) start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("api server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

func (s *apiServer) stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
}

func (s *apiServer) addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func (s *apiServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodGet) {
		return
	}
	payload := api.FromHealth(s.service.Health(r.Context()))
	status := http.StatusOK
	if !payload.OllamaAvailable {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, payload)
}

func (s *apiServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}
	var req api.AnalyzeRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := api.ValidateAnalyze(req); err != nil {
		s.writeFailure(w, r, err)
		return
	}

	var env advisor.Envelope
	if req.Classified() {
		env = s.service.AnalyzeBatch(r.Context(), api.ToClassified(req.Measurements))
	} else {
		env = s.service.AnalyzeRaw(r.Context(), api.ToRaw(req.RawMeasurement))
	}
	s.logEnvelope(r, env)
	s.writeJSON(w, http.StatusOK, env)
}

func (s *apiServer) handleExplain(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}
	var req api.ExplainRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := api.Validate(req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	env := s.service.Explain(r.Context(), api.ToExplanation(req))
	s.logEnvelope(r, env)
	s.writeJSON(w, http.StatusOK, env)
}

func (s *apiServer) handleChat(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}
	var req api.ChatRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := api.Validate(req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	env := s.service.Chat(r.Context(), req.Query, req.FormatJSON)
	s.logEnvelope(r, env)
	s.writeJSON(w, http.StatusOK, env)
}

func (s *apiServer) handleDecide(w http.ResponseWriter, r *http.Request) {
	if !s.allowMethod(w, r, http.MethodPost) {
		return
	}
	var req api.DecideRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if err := api.Validate(req); err != nil {
		s.writeFailure(w, r, err)
		return
	}
	snap := api.ToSnapshot(req)
	decision := s.service.Decide(r.Context(), snap)
	s.writeJSON(w, http.StatusOK, api.NewDecideResponse(decision, snap, s.service.Vocabulary()))
}

func (s *apiServer) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusNotFound, api.ErrorResponse{
		Status:             advisor.StatusError,
		Error:              "Endpoint not found",
		AvailableEndpoints: Endpoints,
	})
}

func (s *apiServer) allowMethod(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	s.writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	return false
}

func (s *apiServer) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	return api.Decode(http.MaxBytesReader(w, r.Body, maxBodyBytes), dst)
}

func (s *apiServer) logEnvelope(r *http.Request, env advisor.Envelope) {
	logger := logging.WithContext(r.Context(), s.logger)
	if env.Status() == advisor.StatusError {
		logger.Info("request answered with error envelope", logging.String("error", env.ErrorMessage()))
		return
	}
	attrs := []logging.Attr{logging.String("status", env.Status())}
	if rec, ok := env["recommendation"].(map[string]any); ok {
		if action, ok := rec["action"].(string); ok {
			attrs = append(attrs, logging.String("action", action))
		}
	}
	logger.Info("request answered", logging.Args(attrs...)...)
}

func (s *apiServer) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := services.HTTPStatus(err)
	message := "Internal server error"
	var validationErr *api.ValidationError
	if errors.As(err, &validationErr) {
		message = validationErr.Message
	}
	logging.WarnWithContext(logging.WithContext(r.Context(), s.logger), "request rejected", "request_invalid",
		logging.Error(err),
		logging.Int("status", status),
		logging.String(logging.FieldErrorHint, services.Hint(err)),
		logging.String(logging.FieldImpact, "client received an error response"),
	)
	s.writeError(w, status, message)
}

func (s *apiServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Status: advisor.StatusError, Error: message})
}
