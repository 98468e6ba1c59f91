package bench

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/reactbench-io/reactbench/internal/agent"
	"github.com/reactbench-io/reactbench/internal/provider"
	"github.com/reactbench-io/reactbench/internal/tool"
)

const csvQuestion = "Profile employees.csv and provide key insights about salaries and departments."

const employeeCSV = `name,age,city,salary,department
John Doe,30,New York,75000,Engineering
Jane Smith,28,San Francisco,85000,Marketing
Bob Johnson,35,Chicago,65000,Sales
Alice Brown,32,Boston,70000,Engineering
Charlie Wilson,29,Seattle,80000,Engineering
Diana Davis,31,Austin,72000,Marketing
Eve Miller,27,Denver,68000,Sales
Frank Garcia,33,Portland,75000,Engineering
Grace Lee,26,Atlanta,65000,Marketing
Henry Taylor,34,Dallas,78000,Engineering
`

// CSVScenario measures an agent loop over tabular data: the model calls
// the profiling tool on an employee dataset and summarizes the result.
type CSVScenario struct {
	agent *agent.Agent
}

// NewCSV builds the tabular-analysis scenario. The employee dataset is
// written under opts.DataDir if it does not exist yet.
func NewCSV(c provider.Completer, opts Options) (*CSVScenario, error) {
	if opts.DataDir == "" {
		return nil, fmt.Errorf("csv: data dir is required")
	}
	if err := ensureFile(filepath.Join(opts.DataDir, "employees.csv"), employeeCSV); err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}

	reg := tool.NewRegistry()
	reg.MustRegister(&tool.CSVProfileTool{AllowedDir: opts.DataDir})

	a := agent.New(c, reg)
	opts.configure(a)
	return &CSVScenario{agent: a}, nil
}

func (s *CSVScenario) Name() string { return "csv" }

func (s *CSVScenario) Run(ctx context.Context) (string, error) {
	result, err := s.agent.Run(ctx, csvQuestion)
	if err != nil {
		return "", fmt.Errorf("csv: %w", err)
	}
	return renderResult(result), nil
}
