package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/reactbench-io/reactbench/internal/provider"
	"github.com/reactbench-io/reactbench/internal/tool"
	"github.com/reactbench-io/reactbench/pkg/trace"
)

// Run executes the reason-act-observe loop for one question and produces
// exactly one RunResult. Recoverable conditions (unparseable completions,
// unknown tool names, tool failures) are absorbed into the transcript and
// the loop continues; only a completer failure returns a non-nil error.
// An iteration or wall-clock ceiling ends the run with the corresponding
// outcome and the partial transcript preserved.
func (a *Agent) Run(ctx context.Context, question string) (*trace.RunResult, error) {
	start := time.Now()
	result := &trace.RunResult{
		ID:         newRunID(),
		Transcript: trace.Transcript{Question: question},
	}

	maxIter := a.MaxIterations
	if maxIter <= 0 {
		maxIter = defaultMaxIterations
	}
	timeLimit := a.TimeLimit
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}

	runCtx, cancel := context.WithTimeout(ctx, timeLimit)
	defer cancel()

	a.Logger.Debug("run started",
		"run", result.ID,
		"question", question,
		"tools", a.Tools.Len(),
	)

	stop := []string{observationMarker}
	parseFailures := 0

loop:
	for iter := 0; ; iter++ {
		if iter >= maxIter {
			result.Outcome = trace.OutcomeIterationLimitExceeded
			break
		}
		if runCtx.Err() != nil || time.Since(start) >= timeLimit {
			result.Outcome = trace.OutcomeTimeLimitExceeded
			break
		}

		prompt := buildPrompt(a.Preamble, a.Tools, &result.Transcript, a.ObservationLimit)
		completion, err := a.Completer.Complete(runCtx, provider.CompletionRequest{
			Prompt: prompt,
			Stop:   stop,
		})
		if err != nil {
			// A deadline hit while the call was outstanding is a limit
			// abort, not a completer failure.
			if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
				result.Outcome = trace.OutcomeTimeLimitExceeded
				break
			}
			result.Elapsed = time.Since(start)
			return nil, fmt.Errorf("run %s: %w", result.ID, err)
		}

		step, err := Parse(completion)
		if err != nil {
			parseFailures++
			a.Logger.Warn("unparseable completion",
				"run", result.ID,
				"iteration", iter+1,
				"consecutive_failures", parseFailures,
			)
			if a.MaxParseFailures > 0 && parseFailures >= a.MaxParseFailures {
				result.Outcome = trace.OutcomeParseError
				break
			}
			// Feed a corrective instruction back; counts as an iteration.
			result.Transcript.Append(trace.Step{Observation: correctiveObservation})
			continue
		}
		parseFailures = 0

		if step.IsFinal {
			result.Transcript.Append(*step)
			result.Outcome = trace.OutcomeSuccess
			result.Answer = step.FinalAnswer
			break
		}

		name := step.Action.Tool
		tl, err := a.Tools.Lookup(name)
		if errors.Is(err, tool.ErrUnknownTool) {
			// Recoverable: tell the model what exists and let it retry.
			step.Observation = fmt.Sprintf("Tool %q does not exist. Available tools: %s",
				name, strings.Join(a.Tools.Names(), ", "))
			a.Logger.Warn("unknown tool requested", "run", result.ID, "tool", name)
		} else {
			obs, invokeErr := tl.Invoke(runCtx, step.Action.Input)
			if invokeErr != nil {
				obs = "Error: " + invokeErr.Error()
				a.Logger.Warn("tool failed",
					"run", result.ID,
					"tool", name,
					"error", invokeErr,
				)
				if a.AbortOnToolError {
					step.Observation = obs
					result.Transcript.Append(*step)
					result.Outcome = trace.OutcomeToolError
					break loop
				}
			} else {
				a.Logger.Debug("tool result",
					"run", result.ID,
					"tool", name,
					"result_len", len(obs),
				)
			}
			step.Observation = obs
		}
		result.Transcript.Append(*step)
	}

	result.Elapsed = time.Since(start)
	a.Logger.Debug("run finished",
		"run", result.ID,
		"outcome", result.Outcome,
		"steps", result.Transcript.Len(),
		"elapsed", result.Elapsed,
	)
	if result.Outcome != trace.OutcomeSuccess {
		a.Logger.Debug("partial transcript",
			"run", result.ID,
			"transcript", result.Transcript.Render(),
		)
	}
	return result, nil
}
