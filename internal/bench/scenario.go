package bench

import (
	"log/slog"
	"time"

	"github.com/reactbench-io/reactbench/internal/agent"
)

// Options carries shared scenario configuration. Zero fields keep the
// package defaults.
type Options struct {
	Logger    *slog.Logger
	DataDir   string
	StorePath string

	MaxIterations    int
	TimeLimit        time.Duration
	MaxParseFailures int
	AbortOnToolError bool
	ObservationLimit int
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// configure applies non-zero loop settings to an agent.
func (o Options) configure(a *agent.Agent) {
	a.Logger = o.logger()
	if o.MaxIterations > 0 {
		a.MaxIterations = o.MaxIterations
	}
	if o.TimeLimit > 0 {
		a.TimeLimit = o.TimeLimit
	}
	if o.MaxParseFailures > 0 {
		a.MaxParseFailures = o.MaxParseFailures
	}
	if o.ObservationLimit > 0 {
		a.ObservationLimit = o.ObservationLimit
	}
	a.AbortOnToolError = o.AbortOnToolError
}
