// Package dispatcher routes picker actions to handlers.
package dispatcher

// Action is a named command with optional arguments,
// e.g. "picker.cpick" triggered by the host editor integration.
type Action struct {
	// Name is the command identifier (e.g. "picker.cpick").
	Name string

	// Args contains command-specific arguments.
	Args map[string]any
}

// NewAction creates an action with no arguments.
func NewAction(name string) Action {
	return Action{Name: name}
}

// WithArg returns a copy of the action with an argument set.
func (a Action) WithArg(key string, value any) Action {
	args := make(map[string]any, len(a.Args)+1)
	for k, v := range a.Args {
		args[k] = v
	}
	args[key] = value
	a.Args = args
	return a
}
