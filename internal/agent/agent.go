package agent

import (
	"crypto/rand"
	"fmt"
	"log/slog"
	"time"

	"github.com/reactbench-io/reactbench/internal/provider"
	"github.com/reactbench-io/reactbench/internal/tool"
)

const (
	defaultMaxIterations    = 15
	defaultTimeLimit        = 300 * time.Second
	defaultMaxParseFailures = 3
	defaultObservationLimit = 8 * 1024
)

// Agent runs the reason-act-observe loop against a completer and a
// read-only tool registry. An Agent holds no per-run state: one Run owns
// its transcript exclusively, so a single Agent may serve concurrent runs.
type Agent struct {
	Completer provider.Completer
	Tools     *tool.Registry
	Logger    *slog.Logger

	// Preamble is the system text at the top of every prompt.
	Preamble string

	// MaxIterations caps the number of model calls per run.
	MaxIterations int

	// TimeLimit is the wall-clock ceiling measured from run start.
	TimeLimit time.Duration

	// MaxParseFailures aborts the run after this many consecutive
	// unparseable completions. Zero disables the ceiling, leaving
	// MaxIterations as the only guard.
	MaxParseFailures int

	// AbortOnToolError ends the run when a tool invocation fails instead
	// of feeding the error back as an observation.
	AbortOnToolError bool

	// ObservationLimit caps observation bytes rendered into the prompt.
	ObservationLimit int
}

// New creates an Agent with sensible defaults.
func New(completer provider.Completer, tools *tool.Registry) *Agent {
	return &Agent{
		Completer:        completer,
		Tools:            tools,
		Logger:           slog.Default(),
		Preamble:         defaultPreamble,
		MaxIterations:    defaultMaxIterations,
		TimeLimit:        defaultTimeLimit,
		MaxParseFailures: defaultMaxParseFailures,
		ObservationLimit: defaultObservationLimit,
	}
}

// newRunID creates a short random hex ID.
func newRunID() string {
	b := make([]byte, 8)
	rand.Read(b)
	return fmt.Sprintf("%x", b)
}
