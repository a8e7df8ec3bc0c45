package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/samber/lo"
)

type tagsResponse struct {
	Models []tagModel `json:"models"`
}

type tagModel struct {
	Name string `json:"name"`
}

// IsReachable reports whether the tags endpoint answers 200 within the probe
// timeout. It never returns an error.
func (c *Client) IsReachable(ctx context.Context) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	resp, err := c.getTags(ctx)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// ListModels returns the model names the backend has pulled.
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	resp, err := c.getTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &TransportError{Kind: KindHTTPStatus, StatusCode: resp.StatusCode, Body: string(body)}
	}
	var decoded tagsResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, &MalformedPayloadError{Snippet: summarizePayloadSnippet(string(body)), Err: err}
	}
	names := lo.FilterMap(decoded.Models, func(m tagModel, _ int) (string, bool) {
		name := strings.TrimSpace(m.Name)
		return name, name != ""
	})
	return names, nil
}

// HasModel reports whether name (or name:latest) is installed on the backend.
func (c *Client) HasModel(ctx context.Context, name string) (bool, error) {
	models, err := c.ListModels(ctx)
	if err != nil {
		return false, err
	}
	return ModelListed(models, name), nil
}

// ModelListed matches a bare model name against tagged entries.
func ModelListed(models []string, name string) bool {
	name = strings.TrimSpace(name)
	if name == "" {
		return false
	}
	candidates := []string{name}
	if !strings.Contains(name, ":") {
		candidates = append(candidates, name+":latest")
	}
	return lo.SomeBy(models, func(model string) bool {
		return lo.Contains(candidates, model)
	})
}

func (c *Client) getTags(ctx context.Context) (*http.Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	probeCtx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, c.cfg.BaseURL+tagsPath, nil)
	if err != nil {
		cancel()
		return nil, err
	}
	resp, err := c.probeClient.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}
	resp.Body = &cancelOnClose{ReadCloser: resp.Body, cancel: cancel}
	return resp, nil
}

type cancelOnClose struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelOnClose) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
