package dispatcher

import (
	"errors"
	"testing"
)

func TestRegistryPriorityOrder(t *testing.T) {
	r := NewRegistry()

	low := &SimpleHandler{ActionName: "a", Prio: 1, Fn: func(Action, *Context) Result { return NoOp() }}
	high := &SimpleHandler{ActionName: "a", Prio: 10, Fn: func(Action, *Context) Result { return Ok() }}
	r.Register("a", low)
	r.Register("a", high)

	got := r.Get("a")
	if got != Handler(high) {
		t.Error("expected highest priority handler first")
	}
}

func TestRegistryListAndCount(t *testing.T) {
	r := NewRegistry()
	r.Register("b", &SimpleHandler{ActionName: "b"})
	r.Register("a", &SimpleHandler{ActionName: "a"})

	names := r.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("unexpected names: %v", names)
	}
	if r.Count() != 2 {
		t.Errorf("expected count 2, got %d", r.Count())
	}

	r.Unregister("a")
	if r.Has("a") {
		t.Error("expected a to be unregistered")
	}
}

func TestDispatchNoHandler(t *testing.T) {
	d := New()

	result := d.Dispatch(NewAction("missing"), &Context{})
	if result.Status != StatusError {
		t.Fatalf("expected error status, got %v", result.Status)
	}
	if !errors.Is(result.Err, ErrNoHandler) {
		t.Errorf("expected ErrNoHandler, got %v", result.Err)
	}
}

func TestDispatchRoutesByName(t *testing.T) {
	d := New()

	var handled string
	d.RegisterFunc("picker.cpick", func(a Action, _ *Context) Result {
		handled = a.Name
		return Ok("/tmp/a.txt@1")
	})

	result := d.Dispatch(NewAction("picker.cpick"), &Context{})
	if !result.IsOK() {
		t.Fatalf("dispatch failed: %v", result.Err)
	}
	if handled != "picker.cpick" {
		t.Errorf("handler saw wrong action: %q", handled)
	}
	if len(result.Targets) != 1 {
		t.Errorf("expected targets to flow through, got %v", result.Targets)
	}
}

func TestActionWithArg(t *testing.T) {
	a := NewAction("picker.cpick").WithArg("tool", "cpick")
	b := a.WithArg("other", 1)

	if a.Args["other"] != nil {
		t.Error("WithArg must not mutate the receiver")
	}
	if b.Args["tool"] != "cpick" || b.Args["other"] != 1 {
		t.Errorf("unexpected args: %v", b.Args)
	}
}

func TestResultStatusString(t *testing.T) {
	tests := []struct {
		status ResultStatus
		want   string
	}{
		{StatusOK, "ok"},
		{StatusNoOp, "no-op"},
		{StatusError, "error"},
		{ResultStatus(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("status %d: expected %q, got %q", tt.status, tt.want, got)
		}
	}
}
