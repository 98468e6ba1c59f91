package tool

import (
	"context"
	"strings"
	"time"
)

// ClockTool reports the current time. Input is an optional Go layout
// string; the default is RFC 3339. Deterministic enough for smoke tests
// when Now is stubbed.
type ClockTool struct {
	Now func() time.Time // defaults to time.Now
}

func (t *ClockTool) Name() string { return "clock" }

func (t *ClockTool) Description() string {
	return "Get the current date and time. Input: optional Go time layout (default RFC 3339)."
}

func (t *ClockTool) Invoke(_ context.Context, input string) (string, error) {
	now := time.Now
	if t.Now != nil {
		now = t.Now
	}
	layout := strings.TrimSpace(input)
	if layout == "" {
		layout = time.RFC3339
	}
	return now().Format(layout), nil
}
