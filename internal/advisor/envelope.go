package advisor

import (
	"hifiwifi/internal/services/ollama"
)

// Mode selects which payload fields an envelope promises.
type Mode string

const (
	ModeAnalysis    Mode = "analysis"
	ModeExplanation Mode = "explanation"
	ModeChat        Mode = "chat"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	keyStatus       = "status"
	keyError        = "error"
	keyNote         = "note"
	keyBackendError = "backend_error"
)

// Envelope is the only shape callers outside the core see.
type Envelope map[string]any

// Status returns the envelope's status string.
func (e Envelope) Status() string {
	status, _ := e[keyStatus].(string)
	return status
}

// Succeeded reports whether the envelope carries a result rather than an error.
func (e Envelope) Succeeded() bool {
	return e.Status() == StatusSuccess
}

// ErrorMessage returns the error text of a failed envelope.
func (e Envelope) ErrorMessage() string {
	msg, _ := e[keyError].(string)
	return msg
}

// textKey is where plain text lands for each mode.
func (m Mode) textKey() string {
	if m == ModeExplanation {
		return "explanation"
	}
	return "response"
}

// payloadKeys are the fields a caller of each mode relies on being present.
func (m Mode) payloadKeys() []string {
	switch m {
	case ModeAnalysis:
		return []string{"recommendation", "analysis"}
	case ModeExplanation:
		return []string{"explanation"}
	default:
		return []string{"response"}
	}
}

// Shape converts a pipeline outcome into an envelope. A non-nil err always
// wins; otherwise the result variant decides the layout.
func Shape(mode Mode, res ollama.Result, err error) Envelope {
	if err != nil {
		return Failure(mode, err.Error())
	}
	switch res.Kind {
	case ollama.KindStructured:
		return structuredEnvelope(res.Fields)
	case ollama.KindPlainText:
		return Envelope{keyStatus: StatusSuccess, mode.textKey(): res.Text}
	case ollama.KindNonJSON:
		return Envelope{keyStatus: StatusSuccess, mode.textKey(): res.Text, keyNote: res.Note()}
	default:
		return Failure(mode, "empty result from backend")
	}
}

// Failure builds an error envelope with null placeholders for mode's payload.
func Failure(mode Mode, message string) Envelope {
	env := Envelope{keyStatus: StatusError, keyError: message}
	for _, key := range mode.payloadKeys() {
		env[key] = nil
	}
	return env
}

func structuredEnvelope(fields map[string]any) Envelope {
	env := make(Envelope, len(fields)+1)
	for key, value := range fields {
		env[key] = value
	}
	if _, ok := env[keyStatus]; !ok {
		env[keyStatus] = StatusSuccess
	}
	if env.Succeeded() {
		if value, ok := env[keyError]; ok {
			delete(env, keyError)
			if value != nil {
				env[keyBackendError] = value
			}
		}
	}
	return env
}
