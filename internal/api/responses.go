package api

import "hifiwifi/internal/wifi"

const (
	// ServiceName is reported by /health.
	ServiceName = "WiFi Optimization API"
	// Version is the API version reported by /health.
	Version = "1.0.0"

	HealthHealthy  = "healthy"
	HealthDegraded = "degraded"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status          string `json:"status"`
	Service         string `json:"service"`
	OllamaAvailable bool   `json:"ollama_available"`
	ModelAvailable  bool   `json:"model_available"`
	Model           string `json:"model,omitempty"`
	Version         string `json:"version"`
}

// ErrorResponse is returned for rejected requests and unknown routes.
type ErrorResponse struct {
	Status             string   `json:"status"`
	Error              string   `json:"error"`
	AvailableEndpoints []string `json:"available_endpoints,omitempty"`
}

// DecideResponse is the body of POST /decide.
type DecideResponse struct {
	Status   string        `json:"status"`
	Decision wifi.Decision `json:"decision"`
	Ratings  wifi.Ratings  `json:"ratings"`
}
