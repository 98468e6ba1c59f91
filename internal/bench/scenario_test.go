package bench

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/reactbench-io/reactbench/internal/provider"
	"github.com/reactbench-io/reactbench/pkg/trace"
)

// scriptedCompleter replays canned completions and records every request.
type scriptedCompleter struct {
	responses []string
	calls     []provider.CompletionRequest
	err       error
}

func (c *scriptedCompleter) Name() string { return "scripted" }

func (c *scriptedCompleter) Complete(_ context.Context, req provider.CompletionRequest) (string, error) {
	c.calls = append(c.calls, req)
	if c.err != nil {
		return "", c.err
	}
	i := len(c.calls) - 1
	if i >= len(c.responses) {
		i = len(c.responses) - 1
	}
	return c.responses[i], nil
}

// fakeEmbedder maps text to fixed two-dimensional vectors by keyword.
type fakeEmbedder struct{}

func (fakeEmbedder) embed(text string) []float32 {
	switch {
	case strings.Contains(text, "Kowalski"):
		return []float32{1, 0.1}
	case strings.Contains(text, "Rust"):
		return []float32{0.1, 1}
	default:
		return []float32{0.5, 0.5}
	}
}

func (e fakeEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.embed(t)
	}
	return out, nil
}

func (e fakeEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	return e.embed(text), nil
}

func testOptions(t *testing.T) Options {
	t.Helper()
	return Options{Logger: discardLogger(), DataDir: t.TempDir()}
}

func TestSimpleScenario(t *testing.T) {
	c := &scriptedCompleter{responses: []string{"  Why did the gopher cross the road?  \n"}}
	s := NewSimple(c)

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Why did the gopher cross the road?" {
		t.Errorf("output = %q", out)
	}
	if len(c.calls) != 1 || c.calls[0].Prompt != simpleQuestion {
		t.Errorf("unexpected calls: %+v", c.calls)
	}
}

func TestSimpleScenario_CompleterError(t *testing.T) {
	c := &scriptedCompleter{err: provider.ErrUnavailable}
	s := NewSimple(c)

	_, err := s.Run(context.Background())
	if !errors.Is(err, provider.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestToolUseScenario(t *testing.T) {
	opts := testOptions(t)
	c := &scriptedCompleter{responses: []string{
		"Thought: I should read the file.\nAction: file_head\nAction Input: example.txt 10",
		"Thought: I have the lines.\nFinal Answer: The file starts with line 1.",
	}}

	s, err := NewToolUse(c, opts)
	if err != nil {
		t.Fatalf("NewToolUse: %v", err)
	}

	if _, err := os.Stat(filepath.Join(opts.DataDir, "example.txt")); err != nil {
		t.Fatalf("example file not created: %v", err)
	}

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "The file starts with line 1." {
		t.Errorf("output = %q", out)
	}
	if len(c.calls) != 2 {
		t.Fatalf("calls = %d", len(c.calls))
	}
	if !strings.Contains(c.calls[1].Prompt, "This is line 1 of the example file.") {
		t.Errorf("tool output missing from second prompt:\n%s", c.calls[1].Prompt)
	}
	if !strings.Contains(c.calls[0].Prompt, "file_head") {
		t.Errorf("tool catalogue missing from prompt:\n%s", c.calls[0].Prompt)
	}
}

func TestToolUseScenario_KeepsExistingFile(t *testing.T) {
	opts := testOptions(t)
	path := filepath.Join(opts.DataDir, "example.txt")
	if err := os.WriteFile(path, []byte("custom content\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c := &scriptedCompleter{responses: []string{"Final Answer: done"}}
	if _, err := NewToolUse(c, opts); err != nil {
		t.Fatalf("NewToolUse: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil || string(data) != "custom content\n" {
		t.Errorf("existing file was replaced: %q, %v", data, err)
	}
}

func TestToolUseScenario_NoDataDir(t *testing.T) {
	if _, err := NewToolUse(&scriptedCompleter{}, Options{Logger: discardLogger()}); err == nil {
		t.Error("expected error without data dir")
	}
}

func TestCSVScenario(t *testing.T) {
	opts := testOptions(t)
	c := &scriptedCompleter{responses: []string{
		"Thought: profile the dataset first.\nAction: csv_profile\nAction Input: employees.csv",
		"Thought: I can summarize now.\nFinal Answer: Engineering pays the most on average.",
	}}

	s, err := NewCSV(c, opts)
	if err != nil {
		t.Fatalf("NewCSV: %v", err)
	}

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Engineering pays the most on average." {
		t.Errorf("output = %q", out)
	}
	if len(c.calls) != 2 {
		t.Fatalf("calls = %d", len(c.calls))
	}
	if !strings.Contains(c.calls[1].Prompt, "salary: numeric") {
		t.Errorf("profile missing from second prompt:\n%s", c.calls[1].Prompt)
	}
	if !strings.Contains(c.calls[1].Prompt, "department: categorical") {
		t.Errorf("categorical column missing from second prompt:\n%s", c.calls[1].Prompt)
	}
}

func TestRetrievalScenario(t *testing.T) {
	opts := testOptions(t)
	c := &scriptedCompleter{responses: []string{"Kowalski is a Rust agent framework."}}

	s, err := NewRetrieval(context.Background(), c, fakeEmbedder{}, opts)
	if err != nil {
		t.Fatalf("NewRetrieval: %v", err)
	}
	defer s.Close()

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if out != "Kowalski is a Rust agent framework." {
		t.Errorf("output = %q", out)
	}

	if len(c.calls) != 1 {
		t.Fatalf("calls = %d", len(c.calls))
	}
	prompt := c.calls[0].Prompt
	for _, doc := range retrievalDocs {
		if !strings.Contains(prompt, doc) {
			t.Errorf("seed document missing from prompt: %q", doc)
		}
	}
	if !strings.Contains(prompt, retrievalQuestion) {
		t.Errorf("question missing from prompt:\n%s", prompt)
	}
}

func TestRetrievalScenario_SeedOnce(t *testing.T) {
	opts := testOptions(t)
	opts.StorePath = filepath.Join(opts.DataDir, "docs.db")
	c := &scriptedCompleter{responses: []string{"ok"}}

	s1, err := NewRetrieval(context.Background(), c, fakeEmbedder{}, opts)
	if err != nil {
		t.Fatalf("NewRetrieval: %v", err)
	}
	s1.Close()

	s2, err := NewRetrieval(context.Background(), c, fakeEmbedder{}, opts)
	if err != nil {
		t.Fatalf("NewRetrieval reopen: %v", err)
	}
	defer s2.Close()

	n, err := s2.store.Count(context.Background())
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != len(retrievalDocs) {
		t.Errorf("documents = %d, want %d", n, len(retrievalDocs))
	}
}

func TestRenderResult(t *testing.T) {
	ok := &trace.RunResult{Outcome: trace.OutcomeSuccess, Answer: "42"}
	if got := renderResult(ok); got != "42" {
		t.Errorf("success render = %q", got)
	}

	aborted := &trace.RunResult{Outcome: trace.OutcomeIterationLimitExceeded}
	if got := renderResult(aborted); !strings.Contains(got, "iteration_limit_exceeded") {
		t.Errorf("abort render = %q", got)
	}
}
