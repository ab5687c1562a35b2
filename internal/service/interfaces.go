package service

import "context"

// Generator produces one assistant reply for a user prompt. The HTTP layer
// depends on this interface so tests can substitute a canned generator.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
