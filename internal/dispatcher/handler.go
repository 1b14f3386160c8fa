package dispatcher

import (
	"github.com/pfclarke/pickat/internal/document"
	"github.com/pfclarke/pickat/internal/launch"
)

// Logger is the logging surface handlers may use.
// Satisfied by app.Logger.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Context provides handlers with the state of the triggering invocation.
type Context struct {
	// Document is the active document.
	Document *document.Document

	// Selections is the current selection set, in host order.
	Selections *document.SelectionSet

	// Launcher spawns external tools.
	Launcher *launch.Launcher

	// Logger reports handler diagnostics. May be nil.
	Logger Logger
}

// Logf-style helpers that tolerate a nil logger.

func (c *Context) Warnf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warnf(format, args...)
	}
}

func (c *Context) Debugf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Debugf(format, args...)
	}
}

// Handler processes a specific action or set of actions.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action Action, ctx *Context) Result

	// CanHandle returns true if this handler can process the action.
	CanHandle(actionName string) bool

	// Priority returns the handler priority (higher = checked first).
	Priority() int
}

// SimpleHandler wraps a function with an explicit action name.
type SimpleHandler struct {
	// ActionName is the name of the action this handler processes.
	ActionName string

	// Fn is the handler function.
	Fn func(action Action, ctx *Context) Result

	// Prio is the handler priority.
	Prio int
}

// Handle implements Handler.
func (h *SimpleHandler) Handle(action Action, ctx *Context) Result {
	if h.Fn == nil {
		return Errorf("handler function is nil")
	}
	return h.Fn(action, ctx)
}

// CanHandle implements Handler.
func (h *SimpleHandler) CanHandle(actionName string) bool {
	return actionName == h.ActionName
}

// Priority implements Handler.
func (h *SimpleHandler) Priority() int {
	return h.Prio
}
