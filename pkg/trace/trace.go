package trace

import (
	"fmt"
	"strings"
	"time"
)

// Action is a tool invocation requested by the model.
type Action struct {
	Tool  string `json:"tool"`
	Input string `json:"input"`
}

// Step is one iteration of the reason-act-observe cycle. Once parsing
// succeeds, exactly one of Action or FinalAnswer is set.
type Step struct {
	Thought     string  `json:"thought,omitempty"`
	Action      *Action `json:"action,omitempty"`
	Observation string  `json:"observation,omitempty"`
	IsFinal     bool    `json:"is_final,omitempty"`
	FinalAnswer string  `json:"final_answer,omitempty"`
}

// Transcript is the ordered log of steps for a single run. It is owned by
// exactly one run and only appended to until the run terminates.
type Transcript struct {
	Question string `json:"question"`
	Steps    []Step `json:"steps"`
}

// Append adds a step to the transcript.
func (t *Transcript) Append(s Step) {
	t.Steps = append(t.Steps, s)
}

// Len returns the number of recorded steps.
func (t *Transcript) Len() int {
	return len(t.Steps)
}

// Outcome classifies how a run terminated.
type Outcome string

const (
	OutcomeSuccess                Outcome = "success"
	OutcomeIterationLimitExceeded Outcome = "iteration_limit_exceeded"
	OutcomeTimeLimitExceeded      Outcome = "time_limit_exceeded"
	OutcomeToolError              Outcome = "tool_error"
	OutcomeParseError             Outcome = "parse_error"
)

// RunResult is created exactly once, at loop termination.
type RunResult struct {
	ID         string        `json:"id"`
	Transcript Transcript    `json:"transcript"`
	Outcome    Outcome       `json:"outcome"`
	Answer     string        `json:"answer,omitempty"`
	Elapsed    time.Duration `json:"elapsed"`
}

// Summary renders a one-line human-readable description of the result.
func (r *RunResult) Summary() string {
	if r.Outcome == OutcomeSuccess {
		return r.Answer
	}
	return fmt.Sprintf("aborted: %s after %d step(s)", r.Outcome, r.Transcript.Len())
}

// Render writes the transcript in the Thought/Action/Action Input/Observation
// block form used to rebuild the agent prompt. Final-answer steps render
// their thought only; the answer itself never feeds back into a prompt.
func (t *Transcript) Render() string {
	var b strings.Builder
	for _, s := range t.Steps {
		if s.Thought != "" {
			fmt.Fprintf(&b, "Thought: %s\n", s.Thought)
		}
		if s.Action != nil {
			fmt.Fprintf(&b, "Action: %s\n", s.Action.Tool)
			fmt.Fprintf(&b, "Action Input: %s\n", s.Action.Input)
		}
		if s.Observation != "" {
			fmt.Fprintf(&b, "Observation: %s\n", s.Observation)
		}
	}
	return b.String()
}
