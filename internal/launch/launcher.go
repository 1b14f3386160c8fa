// Package launch maintains the table of external picker tools and
// spawns them with resolved launch targets.
package launch

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Sentinel errors for launch operations.
var (
	// ErrUnknownTool is returned when launching a tool that is not registered.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrToolDisabled is returned when launching a tool disabled by configuration.
	ErrToolDisabled = errors.New("tool is disabled")

	// ErrInvalidTool is returned when registering a tool with no name or command.
	ErrInvalidTool = errors.New("tool needs a name and a command")
)

// Tool describes an external picker executable.
type Tool struct {
	// Name is the tool identifier used in actions (e.g. "cpick").
	Name string

	// Command is the executable, resolved on PATH or absolute.
	Command string

	// Args are fixed arguments placed before the launch target.
	Args []string

	// Disabled marks a tool that is registered but must not launch.
	Disabled bool

	// Source records where the registration came from
	// ("builtin", "config", or a plugin name).
	Source string
}

// Spawner starts an external process without waiting for it.
// Implementations must return only launch errors; the spawned process's
// exit status is never surfaced here.
type Spawner interface {
	Spawn(command string, args ...string) error
}

// SpawnerFunc adapts a function to the Spawner interface.
type SpawnerFunc func(command string, args ...string) error

// Spawn implements Spawner.
func (f SpawnerFunc) Spawn(command string, args ...string) error {
	return f(command, args...)
}

// Launcher spawns registered picker tools. Safe for concurrent use.
type Launcher struct {
	mu      sync.RWMutex
	tools   map[string]Tool
	spawner Spawner
}

// New creates a launcher backed by the given spawner.
func New(spawner Spawner) *Launcher {
	return &Launcher{
		tools:   make(map[string]Tool),
		spawner: spawner,
	}
}

// Register adds or replaces a tool.
func (l *Launcher) Register(t Tool) error {
	if t.Name == "" || t.Command == "" {
		return ErrInvalidTool
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tools[t.Name] = t
	return nil
}

// Unregister removes a tool. Returns true if it was registered.
func (l *Launcher) Unregister(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.tools[name]
	delete(l.tools, name)
	return ok
}

// UnregisterBySource removes all tools registered by a source.
// Returns the number removed.
func (l *Launcher) UnregisterBySource(source string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for name, t := range l.tools {
		if t.Source == source {
			delete(l.tools, name)
			n++
		}
	}
	return n
}

// Tool returns a registered tool by name.
func (l *Launcher) Tool(name string) (Tool, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	t, ok := l.tools[name]
	return t, ok
}

// Has returns true if a tool is registered under the name.
func (l *Launcher) Has(name string) bool {
	_, ok := l.Tool(name)
	return ok
}

// Names returns all registered tool names, sorted.
func (l *Launcher) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.tools))
	for name := range l.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open spawns the named tool with the launch target as its final
// argument. The spawn is fire-and-forget: a nil return means the
// process started, nothing more.
func (l *Launcher) Open(tool, target string) error {
	t, ok := l.Tool(tool)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTool, tool)
	}
	if t.Disabled {
		return fmt.Errorf("%w: %s", ErrToolDisabled, tool)
	}

	args := make([]string, 0, len(t.Args)+1)
	args = append(args, t.Args...)
	args = append(args, target)

	if err := l.spawner.Spawn(t.Command, args...); err != nil {
		return fmt.Errorf("launch %s: %w", tool, err)
	}
	return nil
}
