package preflight

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"

	"hifiwifi/internal/services/ollama"
)

// Backend is the part of the Ollama client the checks need.
type Backend interface {
	IsReachable(ctx context.Context) bool
	ListModels(ctx context.Context) ([]string, error)
}

// CheckBackend verifies that Ollama answers and that model is installed.
// The model check is reported as failed without a request when the server
// is unreachable.
func CheckBackend(ctx context.Context, baseURL, model string, backend Backend) []Result {
	reach := Result{Name: "Ollama server"}
	modelResult := Result{Name: "Model " + strings.TrimSpace(model)}

	if !backend.IsReachable(ctx) {
		reach.Detail = fmt.Sprintf("%s (unreachable; start it with 'ollama serve')", baseURL)
		modelResult.Detail = "skipped (server unreachable)"
		return []Result{reach, modelResult}
	}
	reach.Passed = true
	reach.Detail = fmt.Sprintf("%s (reachable)", baseURL)

	models, err := backend.ListModels(ctx)
	switch {
	case err != nil:
		modelResult.Detail = fmt.Sprintf("model listing failed (%v)", err)
	case ollama.ModelListed(models, model):
		modelResult.Passed = true
		modelResult.Detail = fmt.Sprintf("installed (%d models available)", len(models))
	default:
		modelResult.Detail = fmt.Sprintf("not installed; create it with 'ollama create %s'", model)
	}
	return []Result{reach, modelResult}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}
