// Package bench times the benchmark scenarios and reports the results
// in the harness output format.
package bench

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

// Scenario is a single timed benchmark case.
type Scenario interface {
	Name() string
	Run(ctx context.Context) (string, error)
}

// Report is the outcome of one timed scenario run.
type Report struct {
	Scenario string
	Output   string
	Err      error
	Elapsed  time.Duration
}

// Print writes the report in the harness format. Errors replace the
// response line; the time line is always written.
func (r Report) Print(w io.Writer) {
	if r.Err != nil {
		fmt.Fprintf(w, "%s - Error: %v\n", r.Scenario, r.Err)
	} else {
		fmt.Fprintf(w, "%s - Response: %s\n", r.Scenario, r.Output)
	}
	fmt.Fprintf(w, "%s - Time: %.4f seconds\n", r.Scenario, r.Elapsed.Seconds())
}

// Runner executes scenarios one at a time.
type Runner struct {
	Logger *slog.Logger
}

// NewRunner creates a Runner logging to logger.
func NewRunner(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{Logger: logger}
}

// Run times a single scenario.
func (r *Runner) Run(ctx context.Context, s Scenario) Report {
	r.Logger.Info("scenario start", "scenario", s.Name())
	start := time.Now()
	out, err := s.Run(ctx)
	elapsed := time.Since(start)

	if err != nil {
		r.Logger.Error("scenario failed", "scenario", s.Name(), "error", err, "elapsed", elapsed)
	} else {
		r.Logger.Info("scenario done", "scenario", s.Name(), "elapsed", elapsed)
	}
	return Report{Scenario: s.Name(), Output: out, Err: err, Elapsed: elapsed}
}

// RunAll executes scenarios sequentially in the given order.
func (r *Runner) RunAll(ctx context.Context, scenarios []Scenario) []Report {
	reports := make([]Report, 0, len(scenarios))
	for _, s := range scenarios {
		reports = append(reports, r.Run(ctx, s))
	}
	return reports
}

// Info describes a scenario in the catalogue.
type Info struct {
	Name    string
	Summary string
}

// Catalogue lists the built-in scenarios in execution order.
func Catalogue() []Info {
	return []Info{
		{Name: "simple", Summary: "single completion, no tools"},
		{Name: "tooluse", Summary: "agent loop with a file tool"},
		{Name: "retrieval", Summary: "vector search feeding a completion"},
		{Name: "csv", Summary: "agent loop analyzing tabular data"},
	}
}
