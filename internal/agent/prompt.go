package agent

import (
	"fmt"
	"strings"

	"github.com/reactbench-io/reactbench/internal/tool"
	"github.com/reactbench-io/reactbench/pkg/trace"
)

const defaultPreamble = "You are a helpful AI assistant. Answer the question as well as you can using the available tools."

const formatInstructions = `Use the following format:

Question: the input question you must answer
Thought: you should always think about what to do
Action: the action to take, must be one of [%s]
Action Input: the input to the action
Observation: the result of the action
... (this Thought/Action/Action Input/Observation can repeat N times)
Thought: I now know the final answer
Final Answer: the final answer to the original input question`

// correctiveObservation is fed back to the model after an unparseable
// completion.
const correctiveObservation = "invalid format, follow the Thought/Action/Action Input or Final Answer structure"

// buildPrompt renders the full agent prompt: preamble, tool catalogue in
// registration order, format instructions, the question, and the transcript
// so far, primed with a trailing Thought marker.
func buildPrompt(preamble string, tools *tool.Registry, tr *trace.Transcript, obsLimit int) string {
	var b strings.Builder

	b.WriteString(preamble)
	b.WriteString("\n\nYou have access to the following tools:\n\n")
	for _, d := range tools.Describe() {
		fmt.Fprintf(&b, "%s: %s\n", d.Name, d.Description)
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, formatInstructions, strings.Join(tools.Names(), ", "))
	b.WriteString("\n\nBegin!\n\n")

	fmt.Fprintf(&b, "Question: %s\n", tr.Question)
	b.WriteString(renderScratchpad(tr, obsLimit))
	b.WriteString(thoughtMarker + " ")

	return b.String()
}

// renderScratchpad renders completed steps as Thought/Action/Action Input/
// Observation blocks. Observations are capped at obsLimit bytes so a noisy
// tool cannot blow up the prompt; the transcript itself keeps the full text.
func renderScratchpad(tr *trace.Transcript, obsLimit int) string {
	var b strings.Builder
	for _, s := range tr.Steps {
		if s.Thought != "" {
			fmt.Fprintf(&b, "%s %s\n", thoughtMarker, s.Thought)
		}
		if s.Action != nil {
			fmt.Fprintf(&b, "%s %s\n", actionMarker, s.Action.Tool)
			fmt.Fprintf(&b, "%s %s\n", actionInputMarker, s.Action.Input)
		}
		if s.Observation != "" {
			obs := s.Observation
			if obsLimit > 0 && len(obs) > obsLimit {
				obs = obs[:obsLimit] + "\n... [truncated]"
			}
			fmt.Fprintf(&b, "%s %s\n", observationMarker, obs)
		}
	}
	return b.String()
}
