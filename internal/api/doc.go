// Package api defines the wire-format types of the HTTP API and converts
// them into the inputs the advisor and the decision engine consume.
//
// # Requests
//
// AnalyzeRequest accepts two shapes: a raw reading (location, signal_dbm,
// link_speed_mbps, latency_ms, frequency, activity) or the mobile app's
// classified batch under "measurements". ExplainRequest, ChatRequest and
// DecideRequest cover the remaining routes.
//
// # Validation
//
// Decode and Validate reject bad bodies with a *ValidationError whose message
// is safe to show to clients. Every such error matches services.ErrValidation,
// which the daemon maps to 400. Range limits follow the measurement hardware:
// signal -100..0 dBm, link speed and latency 0..10000.
//
// # Design Notes
//
// Field names are snake_case except inside the app's measurement objects,
// which keep the camelCase the app already sends. Frequencies may be a band
// label or a channel frequency in MHz; both land as a canonical band label.
package api
