package ollama

import (
	"encoding/json"
	"strings"
)

// ResultKind tags which variant of Result is populated.
type ResultKind int

const (
	KindStructured ResultKind = iota + 1
	KindPlainText
	KindNonJSON
)

func (k ResultKind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindPlainText:
		return "plain_text"
	case KindNonJSON:
		return "non_json"
	default:
		return "unknown"
	}
}

// NonJSONNote marks text that was requested as JSON but did not decode.
const NonJSONNote = "non-json"

// Result is a normalized backend reply. Structured results carry Fields;
// the two text variants carry Text.
type Result struct {
	Kind   ResultKind
	Fields map[string]any
	Text   string
}

func Structured(fields map[string]any) Result {
	if fields == nil {
		fields = map[string]any{}
	}
	return Result{Kind: KindStructured, Fields: fields}
}

func PlainText(text string) Result {
	return Result{Kind: KindPlainText, Text: text}
}

func NonJSON(text string) Result {
	return Result{Kind: KindNonJSON, Text: text}
}

// Note returns NonJSONNote for the degraded variant and "" otherwise.
func (r Result) Note() string {
	if r.Kind == KindNonJSON {
		return NonJSONNote
	}
	return ""
}

// Normalize checks completion before anything else, then decodes. A reply
// that should have been JSON but is not degrades to NonJSON instead of
// failing.
func Normalize(reply Reply, structured bool) (Result, error) {
	if !reply.Done {
		return Result{}, &IncompleteReply{Snippet: summarizePayloadSnippet(reply.Response)}
	}
	if strings.TrimSpace(reply.Response) == "" {
		return Result{}, &EmptyReply{}
	}
	if !structured {
		return PlainText(reply.Response), nil
	}
	if fields, ok := decodeObject(reply.Response); ok {
		return Structured(fields), nil
	}
	return NonJSON(reply.Response), nil
}

func decodeObject(content string) (map[string]any, bool) {
	trimmed := strings.TrimSpace(content)
	var fields map[string]any
	if err := json.Unmarshal([]byte(trimmed), &fields); err == nil && fields != nil {
		return fields, true
	}
	fenced := stripCodeFenceBlock(trimmed)
	if fenced == trimmed {
		return nil, false
	}
	fields = nil
	if err := json.Unmarshal([]byte(fenced), &fields); err == nil && fields != nil {
		return fields, true
	}
	return nil, false
}

func stripCodeFenceBlock(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	body := strings.TrimLeft(trimmed[3:], " \t\r\n")
	if len(body) >= 4 && strings.EqualFold(body[:4], "json") {
		body = strings.TrimLeft(body[4:], " \t\r\n")
	}
	if idx := strings.LastIndex(body, "```"); idx >= 0 {
		body = body[:idx]
	}
	return strings.TrimSpace(body)
}
