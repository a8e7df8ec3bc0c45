package ollama

import (
	"fmt"
	"strconv"
	"time"
)

// TransportKind identifies why a single backend call failed.
type TransportKind int

const (
	KindConnectionRefused TransportKind = iota + 1
	KindTimeout
	KindHTTPStatus
)

func (k TransportKind) String() string {
	switch k {
	case KindConnectionRefused:
		return "connection_refused"
	case KindTimeout:
		return "timeout"
	case KindHTTPStatus:
		return "http_status"
	default:
		return "unknown"
	}
}

// TransportError is returned by a single call to the generate endpoint.
// StatusCode and Body are only set for KindHTTPStatus; Body is kept verbatim.
type TransportError struct {
	Kind       TransportKind
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	switch e.Kind {
	case KindHTTPStatus:
		return fmt.Sprintf("HTTP error from Ollama server: %d - %s", e.StatusCode, e.Body)
	case KindTimeout:
		return fmt.Sprintf("ollama request: timeout: %v", e.Err)
	default:
		return fmt.Sprintf("ollama request: connection: %v", e.Err)
	}
}

func (e *TransportError) Unwrap() error { return e.Err }

// Retryable reports whether another attempt could plausibly succeed.
func (e *TransportError) Retryable() bool {
	return e.Kind == KindConnectionRefused || e.Kind == KindTimeout
}

// MalformedPayloadError reports a 2xx reply whose body is not the expected JSON envelope.
type MalformedPayloadError struct {
	Snippet string
	Err     error
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("Invalid JSON response from Ollama server: %v", e.Err)
}

func (e *MalformedPayloadError) Unwrap() error { return e.Err }

// ConnectionFailure is the terminal error once every attempt failed to connect.
type ConnectionFailure struct {
	BaseURL  string
	Attempts int
	Err      error
}

func (e *ConnectionFailure) Error() string {
	return fmt.Sprintf("Failed to connect to Ollama server at %s. Please ensure Ollama is running.", e.BaseURL)
}

func (e *ConnectionFailure) Unwrap() error { return e.Err }

// TimeoutFailure is the terminal error once every attempt timed out.
type TimeoutFailure struct {
	Timeout  time.Duration
	Attempts int
	Err      error
}

func (e *TimeoutFailure) Error() string {
	return fmt.Sprintf("Request timed out after %s seconds.", strconv.FormatFloat(e.Timeout.Seconds(), 'f', -1, 64))
}

func (e *TimeoutFailure) Unwrap() error { return e.Err }

// IncompleteReply means the backend answered but reported done=false.
type IncompleteReply struct {
	Snippet string
}

func (e *IncompleteReply) Error() string {
	return "Incomplete response from Ollama server"
}

// EmptyReply means the backend finished without producing any text.
type EmptyReply struct{}

func (e *EmptyReply) Error() string {
	return "Empty response from Ollama server"
}
