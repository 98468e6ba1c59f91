package tool

import "context"

// Tool is a named capability exposed to the agent loop. Input and output
// are plain strings; a tool that wraps external I/O must report failures
// through the returned error, never by panicking.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) (string, error)
}

// Description pairs a tool name with its description, used to render the
// prompt's tool catalogue.
type Description struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
