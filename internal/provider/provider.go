package provider

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable indicates the completion service could not be reached or
// timed out. It is surfaced to the caller, never retried silently.
var ErrUnavailable = errors.New("llm service unavailable")

// CompletionRequest holds parameters for a single completion call.
type CompletionRequest struct {
	Prompt string
	// Stop sequences truncate generation. Completers must guarantee the
	// returned text ends before the first occurrence of any stop string,
	// even when the backend does not honor stop sequences natively.
	Stop []string
}

// Completer is the abstraction over LLM completion APIs: text in, text out.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Name() string
}

// truncateAtStop cuts text at the first occurrence of any stop sequence.
// The agent loop depends on this to discard observations the model
// fabricates past a stop marker.
func truncateAtStop(text string, stop []string) string {
	cut := len(text)
	for _, s := range stop {
		if s == "" {
			continue
		}
		if idx := strings.Index(text, s); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return text[:cut]
}
