// Package advisor turns WiFi questions into backend prompts and backend
// outcomes into envelopes.
//
// Service is the entry point used by the HTTP daemon and the CLI. It renders
// prompts with internal/prompt, calls a Generator (normally *ollama.Client)
// and shapes whatever comes back, including every failure, into an Envelope:
// a JSON object whose "status" is "success" or "error". Nothing returned by
// Service is a Go error; callers serialize the envelope as-is.
//
// Shape and Failure are exported for callers that drive the backend
// themselves.
package advisor
