//go:generate go run go.uber.org/mock/mockgen -source=backend.go -destination=../mocks/mock_backend.go -package=mocks
package advisor

import (
	"context"

	"hifiwifi/internal/services/ollama"
)

// Generator produces a normalized backend result for a prompt.
// *ollama.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, prompt string, structured bool) (ollama.Result, error)
}

// Prober answers health questions about the backend without touching the
// request path.
type Prober interface {
	IsReachable(ctx context.Context) bool
	HasModel(ctx context.Context, name string) (bool, error)
}
