package textcompletion

import (
	"context"
	"fmt"
)

// NullRepository always fails, which pushes the assistant onto its canned
// catalog replies. Used when no model backend is configured.
type NullRepository struct{}

func NewNullRepository() *NullRepository {
	return &NullRepository{}
}

func (r *NullRepository) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	return "", fmt.Errorf("no model backend configured")
}
