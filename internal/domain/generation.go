package domain

import (
	"context"
)

// CompletionService is the port for the LLM completion provider.
// Complete sends a single prompt and returns the first completion's raw
// text content. One call per request; retries are the caller's business
// and none are performed today.
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
