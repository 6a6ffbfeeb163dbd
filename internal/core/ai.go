package core

import "context"

// LLMProvider abstracts the generative model so stage services never depend on
// a specific vendor SDK.
type LLMProvider interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
