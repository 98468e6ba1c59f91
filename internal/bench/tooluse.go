package bench

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/reactbench-io/reactbench/internal/agent"
	"github.com/reactbench-io/reactbench/internal/provider"
	"github.com/reactbench-io/reactbench/internal/tool"
	"github.com/reactbench-io/reactbench/pkg/trace"
)

const toolUseQuestion = "Get the first 10 lines of example.txt."

const exampleText = `This is line 1 of the example file.
This is line 2 of the example file.
This is line 3 of the example file.
This is line 4 of the example file.
This is line 5 of the example file.
This is line 6 of the example file.
This is line 7 of the example file.
This is line 8 of the example file.
This is line 9 of the example file.
This is line 10 of the example file.
This is line 11, beyond the requested head.
This is line 12, beyond the requested head.
`

// ToolUseScenario measures a full agent loop resolving a question that
// requires one file tool call.
type ToolUseScenario struct {
	agent *agent.Agent
}

// NewToolUse builds the file-tool scenario. The example file is created
// under opts.DataDir if it does not exist yet.
func NewToolUse(c provider.Completer, opts Options) (*ToolUseScenario, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("tooluse: data dir is required")
	}
	if err := ensureFile(filepath.Join(opts.DataDir, "example.txt"), exampleText); err != nil {
		return nil, fmt.Errorf("tooluse: %w", err)
	}

	reg := tool.NewRegistry()
	reg.MustRegister(&tool.FileHeadTool{AllowedDir: opts.DataDir})
	reg.MustRegister(&tool.ClockTool{})
	reg.MustRegister(&tool.WebFetchTool{})

	a := agent.New(c, reg)
	opts.configure(a)
	return &ToolUseScenario{agent: a}, nil
}

func (s *ToolUseScenario) Name() string { return "tooluse" }

func (s *ToolUseScenario) Run(ctx context.Context) (string, error) {
	result, err := s.agent.Run(ctx, toolUseQuestion)
	if err != nil {
		return "", fmt.Errorf("tooluse: %w", err)
	}
	return renderResult(result), nil
}

// renderResult reduces a run result to the reported response text. Limit
// aborts are completed runs, so their summary becomes the output.
func renderResult(r *trace.RunResult) string {
	if r.Outcome == trace.OutcomeSuccess {
		return r.Answer
	}
	return r.Summary()
}

// ensureFile writes content at path unless a file is already there.
func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
