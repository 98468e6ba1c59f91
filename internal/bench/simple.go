package bench

import (
	"context"
	"fmt"
	"strings"

	"github.com/reactbench-io/reactbench/internal/provider"
)

const simpleQuestion = "Tell me a short joke."

// SimpleScenario measures a single bare completion with no tools and no
// agent loop, the baseline for the other scenarios.
type SimpleScenario struct {
	completer provider.Completer
}

// NewSimple creates the baseline completion scenario.
func NewSimple(c provider.Completer) *SimpleScenario {
	return &SimpleScenario{completer: c}
}

func (s *SimpleScenario) Name() string { return "simple" }

func (s *SimpleScenario) Run(ctx context.Context) (string, error) {
	out, err := s.completer.Complete(ctx, provider.CompletionRequest{Prompt: simpleQuestion})
	if err != nil {
		return "", fmt.Errorf("simple: %w", err)
	}
	return strings.TrimSpace(out), nil
}
