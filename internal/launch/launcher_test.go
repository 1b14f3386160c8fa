package launch

import (
	"errors"
	"testing"
	"time"

	"github.com/pfclarke/pickat/internal/process"
)

// recorder captures spawn calls for assertions.
type recorder struct {
	calls [][]string
}

func (r *recorder) Spawn(command string, args ...string) error {
	call := append([]string{command}, args...)
	r.calls = append(r.calls, call)
	return nil
}

func TestRegisterAndOpen(t *testing.T) {
	rec := &recorder{}
	l := New(rec)

	if err := l.Register(Tool{Name: "cpick", Command: "cpick", Source: "builtin"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if err := l.Open("cpick", "/tmp/a.txt@42"); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	if len(rec.calls) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(rec.calls))
	}
	want := []string{"cpick", "/tmp/a.txt@42"}
	for i, v := range want {
		if rec.calls[0][i] != v {
			t.Errorf("call arg %d: expected %q, got %q", i, v, rec.calls[0][i])
		}
	}
}

func TestOpenAppendsTargetAfterFixedArgs(t *testing.T) {
	rec := &recorder{}
	l := New(rec)

	_ = l.Register(Tool{Name: "quickpick", Command: "/usr/local/bin/quickpick", Args: []string{"--no-splash"}})

	if err := l.Open("quickpick", `C:\f.txt@104`); err != nil {
		t.Fatalf("open failed: %v", err)
	}

	got := rec.calls[0]
	if got[0] != "/usr/local/bin/quickpick" || got[1] != "--no-splash" || got[2] != `C:\f.txt@104` {
		t.Errorf("unexpected spawn call: %v", got)
	}
}

func TestOpenUnknownTool(t *testing.T) {
	l := New(&recorder{})

	err := l.Open("nope", "/tmp/a.txt@0")
	if !errors.Is(err, ErrUnknownTool) {
		t.Errorf("expected ErrUnknownTool, got %v", err)
	}
}

func TestOpenDisabledTool(t *testing.T) {
	rec := &recorder{}
	l := New(rec)
	_ = l.Register(Tool{Name: "cpick", Command: "cpick", Disabled: true})

	err := l.Open("cpick", "/tmp/a.txt@0")
	if !errors.Is(err, ErrToolDisabled) {
		t.Errorf("expected ErrToolDisabled, got %v", err)
	}
	if len(rec.calls) != 0 {
		t.Error("disabled tool must not spawn")
	}
}

func TestOpenWrapsSpawnError(t *testing.T) {
	spawnErr := errors.New("executable not found")
	l := New(SpawnerFunc(func(string, ...string) error { return spawnErr }))
	_ = l.Register(Tool{Name: "cpick", Command: "cpick"})

	err := l.Open("cpick", "/tmp/a.txt@0")
	if !errors.Is(err, spawnErr) {
		t.Errorf("expected wrapped spawn error, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	l := New(&recorder{})

	if err := l.Register(Tool{Name: "", Command: "x"}); !errors.Is(err, ErrInvalidTool) {
		t.Errorf("expected ErrInvalidTool for empty name, got %v", err)
	}
	if err := l.Register(Tool{Name: "x", Command: ""}); !errors.Is(err, ErrInvalidTool) {
		t.Errorf("expected ErrInvalidTool for empty command, got %v", err)
	}
}

func TestUnregisterBySource(t *testing.T) {
	l := New(&recorder{})
	_ = l.Register(Tool{Name: "a", Command: "a", Source: "plugin-x"})
	_ = l.Register(Tool{Name: "b", Command: "b", Source: "plugin-x"})
	_ = l.Register(Tool{Name: "cpick", Command: "cpick", Source: "builtin"})

	if n := l.UnregisterBySource("plugin-x"); n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	names := l.Names()
	if len(names) != 1 || names[0] != "cpick" {
		t.Errorf("unexpected remaining tools: %v", names)
	}
}

func TestExecSpawnerFireAndForget(t *testing.T) {
	sup := process.NewSupervisor()
	defer sup.Shutdown(2 * time.Second)

	l := New(NewSpawner(sup))
	_ = l.Register(Tool{Name: "echo", Command: "true"})

	if err := l.Open("echo", "/tmp/a.txt@1"); err != nil {
		t.Fatalf("open failed: %v", err)
	}
}

func TestExecSpawnerMissingExecutable(t *testing.T) {
	sup := process.NewSupervisor()
	defer sup.Shutdown(time.Second)

	l := New(NewSpawner(sup))
	_ = l.Register(Tool{Name: "ghost", Command: "/nonexistent/picker"})

	if err := l.Open("ghost", "/tmp/a.txt@1"); err == nil {
		t.Error("expected launch error for missing executable")
	}
}
