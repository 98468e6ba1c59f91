package agent

import (
	"fmt"
	"strings"

	"github.com/reactbench-io/reactbench/pkg/trace"
)

// Reasoning-trace markers. Matching is case-sensitive and line-oriented.
const (
	thoughtMarker     = "Thought:"
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "Observation:"
	finalAnswerMarker = "Final Answer:"
)

// ParseError reports a completion that contains neither a well-formed final
// answer nor a well-formed (Action, Action Input) pair. Raw carries the full
// completion for diagnostics.
type ParseError struct {
	Raw string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable completion: %q", e.Raw)
}

// Parse converts one raw LLM completion into exactly one Step.
//
// The first Thought block becomes the step's thought; text before any marker
// counts as thought too, since the prompt primes the model with a trailing
// "Thought:". A Final Answer marker appearing before any Action marker makes
// the step final, with everything after the marker as the answer. Otherwise
// an Action plus Action Input pair forms the step's action. Observation text
// in the completion is always discarded: observations come only from real
// tool execution.
func Parse(raw string) (*trace.Step, error) {
	var (
		thought     []string
		thoughtSeen bool
		actionName  string
		actionInput []string
		haveAction  bool
		haveInput   bool
	)

	// section tracks which marker's continuation lines we are collecting.
	section := thoughtMarker

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		switch marker, rest := splitMarker(line); marker {
		case finalAnswerMarker:
			if haveAction {
				// A final answer after an action is noise from an
				// over-eager completion; the action wins.
				section = ""
				continue
			}
			answer := rest
			if tail := strings.Join(lines[i+1:], "\n"); strings.TrimSpace(tail) != "" {
				answer += "\n" + tail
			}
			return &trace.Step{
				Thought:     strings.TrimSpace(strings.Join(thought, "\n")),
				IsFinal:     true,
				FinalAnswer: strings.TrimSpace(answer),
			}, nil
		case thoughtMarker:
			if !thoughtSeen {
				thoughtSeen = true
				thought = append(thought, rest)
				section = thoughtMarker
			} else {
				section = ""
			}
		case actionMarker:
			if !haveAction {
				actionName = strings.TrimSpace(rest)
				haveAction = true
			}
			section = ""
		case actionInputMarker:
			if !haveInput {
				actionInput = append(actionInput, rest)
				haveInput = true
				section = actionInputMarker
			} else {
				section = ""
			}
		case observationMarker:
			// Fabricated observation: discard it and everything it collects.
			section = ""
		default:
			switch section {
			case thoughtMarker:
				thought = append(thought, line)
			case actionInputMarker:
				actionInput = append(actionInput, line)
			}
		}
	}

	if haveAction && haveInput && actionName != "" {
		return &trace.Step{
			Thought: strings.TrimSpace(strings.Join(thought, "\n")),
			Action: &trace.Action{
				Tool:  actionName,
				Input: strings.TrimSpace(strings.Join(actionInput, "\n")),
			},
		}, nil
	}

	return nil, &ParseError{Raw: raw}
}

// splitMarker returns the marker starting the line, if any, and the text
// after it. Action Input is checked before Action because of the shared
// prefix.
func splitMarker(line string) (string, string) {
	for _, m := range []string{actionInputMarker, actionMarker, finalAnswerMarker, thoughtMarker, observationMarker} {
		if strings.HasPrefix(line, m) {
			return m, strings.TrimSpace(line[len(m):])
		}
	}
	return "", line
}
