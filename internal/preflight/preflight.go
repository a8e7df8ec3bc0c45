package preflight

import (
	"context"

	"github.com/samber/lo"

	"hifiwifi/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes every readiness check for the given config. The backend
// checks are skipped when backend is nil.
func RunAll(ctx context.Context, cfg *config.Config, backend Backend) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("State directory", cfg.Paths.StateDir)}
	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}
	if backend != nil {
		results = append(results, CheckBackend(ctx, cfg.Backend.BaseURL, cfg.Backend.Model, backend)...)
	}
	return results
}

// Failed returns the results that did not pass.
func Failed(results []Result) []Result {
	return lo.Reject(results, func(r Result, _ int) bool { return r.Passed })
}
