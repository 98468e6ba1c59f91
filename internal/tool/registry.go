package tool

import (
	"errors"
	"fmt"
)

// ErrDuplicateTool is returned when registering a name twice.
var ErrDuplicateTool = errors.New("duplicate tool name")

// ErrUnknownTool is returned when looking up a name that was never registered.
var ErrUnknownTool = errors.New("unknown tool")

// Registry holds registered tools and resolves lookups by name. Names are
// matched case-sensitively. Registration order is preserved so that the
// rendered tool catalogue is deterministic across runs. A Registry is
// read-only after construction and may be shared across concurrent runs.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool. A second registration under the same name is a
// setup-time programmer error and is rejected with ErrDuplicateTool.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if _, ok := r.tools[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateTool)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// MustRegister registers a tool and panics on a duplicate name.
// Intended for static scenario setup where a duplicate is a bug.
func (r *Registry) MustRegister(t Tool) {
	if err := r.Register(t); err != nil {
		panic(err)
	}
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", name, ErrUnknownTool)
	}
	return t, nil
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Describe returns name/description pairs in registration order.
func (r *Registry) Describe() []Description {
	out := make([]Description, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, Description{
			Name:        name,
			Description: r.tools[name].Description(),
		})
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	return len(r.order)
}
