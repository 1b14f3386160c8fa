package picker

import (
	"errors"
	"strings"
	"testing"

	"github.com/pfclarke/pickat/internal/dispatcher"
	"github.com/pfclarke/pickat/internal/document"
	"github.com/pfclarke/pickat/internal/launch"
	"github.com/pfclarke/pickat/internal/resolver"
)

// recorder captures spawn calls.
type recorder struct {
	calls   [][]string
	failOn  string // command argument that triggers an error
	spawned int
}

func (r *recorder) Spawn(command string, args ...string) error {
	r.calls = append(r.calls, append([]string{command}, args...))
	for _, a := range args {
		if r.failOn != "" && a == r.failOn {
			return errors.New("spawn failed")
		}
	}
	r.spawned++
	return nil
}

func newContext(doc *document.Document, set *document.SelectionSet, rec *recorder, tools ...string) *dispatcher.Context {
	l := launch.New(rec)
	for _, name := range tools {
		_ = l.Register(launch.Tool{Name: name, Command: name, Source: "builtin"})
	}
	return &dispatcher.Context{
		Document:   doc,
		Selections: set,
		Launcher:   l,
	}
}

func TestHandleSingleSelection(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte("line one\nline two\nline three\nmore text"))
	set := document.NewSelectionSetAt(42)
	rec := &recorder{}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "cpick"))

	if !result.IsOK() {
		t.Fatalf("expected OK result, got %v (%v)", result.Status, result.Err)
	}
	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(rec.calls))
	}
	if rec.calls[0][0] != "cpick" {
		t.Errorf("expected cpick command, got %q", rec.calls[0][0])
	}
	target := rec.calls[0][1]
	if !strings.HasPrefix(target, "/tmp/a.txt@") || strings.Count(target, "@") != 1 {
		t.Errorf("malformed target %q", target)
	}
}

func TestHandleOneSpawnPerSelectionInOrder(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte(strings.Repeat("x", 100)))
	set := document.NewSelectionSetAt(10)
	set.Add(document.NewCursorSelection(30))
	set.Add(document.NewCursorSelection(50))
	rec := &recorder{}

	h := New("quickpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "quickpick"))

	if !result.IsOK() {
		t.Fatalf("expected OK result, got %v (%v)", result.Status, result.Err)
	}
	want := []string{"/tmp/a.txt@10", "/tmp/a.txt@30", "/tmp/a.txt@50"}
	if len(rec.calls) != len(want) {
		t.Fatalf("expected %d spawns, got %d", len(want), len(rec.calls))
	}
	for i, w := range want {
		if rec.calls[i][1] != w {
			t.Errorf("spawn %d: expected %q, got %q", i, w, rec.calls[i][1])
		}
	}
	if len(result.Targets) != 3 {
		t.Errorf("expected 3 targets in result, got %v", result.Targets)
	}
}

func TestHandleWindowsAdjustment(t *testing.T) {
	// Two lines of 9 chars: offset 25 lands on row 2.
	content := "xxxxxxxxx\nxxxxxxxxx\nxxxxxxxxxx"
	doc := document.New("/tmp/w.txt", []byte(content), document.WithLineEnding(document.LineEndingCRLF))
	set := document.NewSelectionSetAt(25)
	rec := &recorder{}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "cpick"))

	if !result.IsOK() {
		t.Fatalf("expected OK, got %v", result.Err)
	}
	if rec.calls[0][1] != "/tmp/w.txt@27" {
		t.Errorf("expected adjusted target /tmp/w.txt@27, got %q", rec.calls[0][1])
	}
}

func TestHandleUntitledDocument(t *testing.T) {
	doc := document.NewScratch("no path here")
	set := document.NewSelectionSetAt(3)
	rec := &recorder{}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "cpick"))

	if result.Status != dispatcher.StatusError {
		t.Fatalf("expected error status, got %v", result.Status)
	}
	if !errors.Is(result.Err, resolver.ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", result.Err)
	}
	if len(rec.calls) != 0 {
		t.Error("untitled documents must not spawn anything")
	}
}

func TestHandleEmptySelection(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte("text"))
	rec := &recorder{}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, nil, rec, "cpick"))

	if result.Status != dispatcher.StatusNoOp {
		t.Errorf("expected no-op for empty selection, got %v", result.Status)
	}
}

func TestHandleSpawnFailureContinues(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte(strings.Repeat("x", 100)))
	set := document.NewSelectionSetAt(10)
	set.Add(document.NewCursorSelection(30))
	set.Add(document.NewCursorSelection(50))
	rec := &recorder{failOn: "/tmp/a.txt@30"}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "cpick"))

	if !result.IsOK() {
		t.Fatalf("partial success should report OK, got %v (%v)", result.Status, result.Err)
	}
	if rec.spawned != 2 {
		t.Errorf("expected the other 2 selections to spawn, got %d", rec.spawned)
	}
	want := []string{"/tmp/a.txt@10", "/tmp/a.txt@50"}
	for i, w := range want {
		if result.Targets[i] != w {
			t.Errorf("target %d: expected %q, got %q", i, w, result.Targets[i])
		}
	}
}

func TestHandleAllSpawnsFail(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte("text"))
	set := document.NewSelectionSetAt(1)
	rec := &recorder{failOn: "/tmp/a.txt@1"}

	h := New("cpick")
	result := h.Handle(dispatcher.NewAction(h.ActionName()), newContext(doc, set, rec, "cpick"))

	if result.Status != dispatcher.StatusError {
		t.Errorf("expected error when every launch fails, got %v", result.Status)
	}
}

func TestDispatchThroughDispatcher(t *testing.T) {
	doc := document.New("/tmp/a.txt", []byte("body { color: #00ff00 }"))
	set := document.NewSelectionSetAt(14)
	rec := &recorder{}
	ctx := newContext(doc, set, rec, "cpick", "quickpick")

	d := dispatcher.New()
	for _, tool := range []string{"cpick", "quickpick"} {
		h := New(tool)
		d.Register(h.ActionName(), h)
	}

	result := d.Dispatch(dispatcher.NewAction("picker.quickpick"), ctx)
	if !result.IsOK() {
		t.Fatalf("dispatch failed: %v", result.Err)
	}
	if rec.calls[0][0] != "quickpick" {
		t.Errorf("expected quickpick spawn, got %q", rec.calls[0][0])
	}

	result = d.Dispatch(dispatcher.NewAction("picker.unknown"), ctx)
	if result.Status != dispatcher.StatusError {
		t.Errorf("expected error for unregistered action, got %v", result.Status)
	}
}
