package llm

import "context"

type Provider interface {
	// Answer performs a single-shot, non-streaming generation for prompt.
	Answer(ctx context.Context, prompt string) (string, error)
	Close() error
}
