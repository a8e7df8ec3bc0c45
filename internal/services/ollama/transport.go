package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

type generateResponse struct {
	Done     bool   `json:"done"`
	Response string `json:"response"`
}

// send performs exactly one generate call. It neither retries nor inspects
// the done/response fields.
func (c *Client) send(ctx context.Context, req Request) (Reply, error) {
	payload := generateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		Stream: false,
	}
	if req.Structured {
		payload.Format = "json"
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return Reply{}, fmt.Errorf("ollama request: encode body: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+generatePath, bytes.NewReader(encoded))
	if err != nil {
		return Reply{}, fmt.Errorf("ollama request: new request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Reply{}, fmt.Errorf("ollama request: %w", ctxErr)
		}
		return Reply{}, classifyTransportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Reply{}, fmt.Errorf("ollama request: %w", ctxErr)
		}
		return Reply{}, classifyTransportError(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Reply{}, &TransportError{
			Kind:       KindHTTPStatus,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Reply{}, &MalformedPayloadError{Snippet: summarizePayloadSnippet(string(body)), Err: err}
	}
	return Reply{Done: decoded.Done, Response: decoded.Response}, nil
}

func classifyTransportError(err error) *TransportError {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TransportError{Kind: KindTimeout, Err: err}
	}
	return &TransportError{Kind: KindConnectionRefused, Err: err}
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
