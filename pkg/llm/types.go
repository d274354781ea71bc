package llm

import (
	"context"
	"errors"
)

// ErrUnavailable signals that the generation backend could not produce text:
// network failure, timeout, non-2xx response, or a malformed body. Callers
// are expected to fall back to local scoring rather than surface this.
var ErrUnavailable = errors.New("llm backend unavailable")

// ErrMissingAPIKey indicates a configuration problem rather than a transient
// outage; it must not trigger the local fallback.
var ErrMissingAPIKey = errors.New("llm api key is not configured")

// Generator produces evaluation text for a prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	// ModelVersion identifies the backing model for feedback provenance.
	ModelVersion() string
}
