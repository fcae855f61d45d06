package ollama

import "context"

// IOllama is the interface for the Ollama completion client, extracted so
// callers can substitute a mock in tests.
type IOllama interface {
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	Model() string
}
