// Package picker implements the handler behind the picker.* actions:
// resolve each selection anchor to a launch target and spawn the
// external tool once per selection.
package picker

import (
	"github.com/pfclarke/pickat/internal/dispatcher"
	"github.com/pfclarke/pickat/internal/resolver"
)

// Handler launches one external picker tool per selection anchor.
type Handler struct {
	tool string
}

// New creates a handler bound to a tool name ("cpick", "quickpick", ...).
func New(tool string) *Handler {
	return &Handler{tool: tool}
}

// ActionName returns the action this handler serves.
func (h *Handler) ActionName() string {
	return "picker." + h.tool
}

// Handle implements dispatcher.Handler.
//
// Every selection gets its own spawn, in selection order. A spawn
// failure is logged and the remaining selections still launch; the
// launches are independent of each other.
func (h *Handler) Handle(action dispatcher.Action, ctx *dispatcher.Context) dispatcher.Result {
	if ctx.Document == nil {
		return dispatcher.Errorf("picker %s: no active document", h.tool)
	}
	if ctx.Launcher == nil {
		return dispatcher.Errorf("picker %s: no launcher", h.tool)
	}
	if ctx.Selections == nil || ctx.Selections.Count() == 0 {
		return dispatcher.NoOp()
	}

	res := resolver.New(ctx.Document)
	targets, err := res.Targets(ctx.Selections)
	if err != nil {
		return dispatcher.Error(err)
	}

	var spawned []string
	var lastErr error
	for _, target := range targets {
		if err := ctx.Launcher.Open(h.tool, target); err != nil {
			ctx.Warnf("picker %s: %v", h.tool, err)
			lastErr = err
			continue
		}
		ctx.Debugf("picker %s: launched %s", h.tool, target)
		spawned = append(spawned, target)
	}

	if len(spawned) == 0 && lastErr != nil {
		return dispatcher.Error(lastErr)
	}
	return dispatcher.Ok(spawned...)
}

// CanHandle implements dispatcher.Handler.
func (h *Handler) CanHandle(actionName string) bool {
	return actionName == h.ActionName()
}

// Priority implements dispatcher.Handler.
func (h *Handler) Priority() int {
	return 0
}
