package dispatcher

import (
	"errors"
	"fmt"
)

// ErrNoHandler is returned when no handler is registered for an action.
var ErrNoHandler = errors.New("no handler registered")

// Dispatcher routes actions to their registered handlers.
//
// Dispatch is synchronous: the handler runs to completion on the
// calling goroutine before the result is returned, so a picker command
// finishes its per-selection loop before control goes back to the host.
type Dispatcher struct {
	registry *Registry
}

// New creates a dispatcher with an empty registry.
func New() *Dispatcher {
	return &Dispatcher{registry: NewRegistry()}
}

// Register adds a handler for an action name.
func (d *Dispatcher) Register(actionName string, h Handler) {
	d.registry.Register(actionName, h)
}

// RegisterFunc adds a function handler for an action name.
func (d *Dispatcher) RegisterFunc(actionName string, fn func(action Action, ctx *Context) Result) {
	d.registry.Register(actionName, &SimpleHandler{ActionName: actionName, Fn: fn})
}

// Has returns true if the action has a handler.
func (d *Dispatcher) Has(actionName string) bool {
	return d.registry.Has(actionName)
}

// Actions returns the registered action names, sorted.
func (d *Dispatcher) Actions() []string {
	return d.registry.List()
}

// Dispatch routes an action to its handler and returns the result.
func (d *Dispatcher) Dispatch(action Action, ctx *Context) Result {
	h := d.registry.Get(action.Name)
	if h == nil {
		return Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}
	if !h.CanHandle(action.Name) {
		return Error(fmt.Errorf("%w: %s", ErrNoHandler, action.Name))
	}
	return h.Handle(action, ctx)
}
