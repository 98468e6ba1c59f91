package tool

import (
	"context"
	"errors"
	"testing"
)

// stubTool is a minimal Tool for testing.
type stubTool struct {
	name   string
	desc   string
	result string
	err    error
}

func (s *stubTool) Name() string        { return s.name }
func (s *stubTool) Description() string { return s.desc }
func (s *stubTool) Invoke(_ context.Context, input string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.result != "" {
		return s.result, nil
	}
	return input, nil
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&stubTool{name: "echo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != 1 {
		t.Fatalf("expected len 1, got %d", reg.Len())
	}

	tl, err := reg.Lookup("echo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := tl.Invoke(context.Background(), "hi")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hi" {
		t.Errorf("expected 'hi', got %q", out)
	}
}

func TestRegistry_DuplicateName(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register(&stubTool{name: "echo"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := reg.Register(&stubTool{name: "echo"})
	if !errors.Is(err, ErrDuplicateTool) {
		t.Fatalf("expected ErrDuplicateTool, got %v", err)
	}
	if reg.Len() != 1 {
		t.Errorf("duplicate registration must not grow the registry")
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Lookup("nope")
	if !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool, got %v", err)
	}
}

func TestRegistry_LookupIsCaseSensitive(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&stubTool{name: "echo"})
	if _, err := reg.Lookup("Echo"); !errors.Is(err, ErrUnknownTool) {
		t.Fatalf("expected ErrUnknownTool for case mismatch, got %v", err)
	}
}

func TestRegistry_DescribePreservesRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister(&stubTool{name: "zeta", desc: "last alphabetically"})
	reg.MustRegister(&stubTool{name: "alpha", desc: "first alphabetically"})
	reg.MustRegister(&stubTool{name: "mid", desc: "middle"})

	descs := reg.Describe()
	want := []string{"zeta", "alpha", "mid"}
	if len(descs) != len(want) {
		t.Fatalf("expected %d descriptions, got %d", len(want), len(descs))
	}
	for i, d := range descs {
		if d.Name != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], d.Name)
		}
	}

	names := reg.Names()
	for i, n := range names {
		if n != want[i] {
			t.Errorf("Names position %d: expected %q, got %q", i, want[i], n)
		}
	}
}
