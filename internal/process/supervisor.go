package process

import (
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ErrSupervisorShutdown is returned when starting a process after shutdown.
var ErrSupervisorShutdown = errors.New("supervisor is shut down")

// Supervisor tracks spawned picker processes.
//
// Pickers are never awaited by the launching command, but the
// supervisor keeps a handle to every live child so exits are reaped
// promptly and Shutdown can signal stragglers. Supervisor is safe for
// concurrent use.
type Supervisor struct {
	mu        sync.RWMutex
	processes map[string]*Process

	closed atomic.Bool

	// maxProcesses limits the number of concurrent processes (0 = unlimited).
	maxProcesses int

	// onExit is called after a process exits and is untracked.
	onExit func(p *Process)
}

// SupervisorOption configures a Supervisor.
type SupervisorOption func(*Supervisor)

// WithMaxProcesses sets the maximum number of concurrent processes.
// A value of 0 (default) means unlimited.
func WithMaxProcesses(n int) SupervisorOption {
	return func(s *Supervisor) {
		s.maxProcesses = n
	}
}

// WithExitCallback sets a callback invoked when a tracked process exits.
func WithExitCallback(fn func(p *Process)) SupervisorOption {
	return func(s *Supervisor) {
		s.onExit = fn
	}
}

// NewSupervisor creates a new process supervisor.
func NewSupervisor(opts ...SupervisorOption) *Supervisor {
	s := &Supervisor{
		processes: make(map[string]*Process),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start launches a new tracked process for the given tool.
//
// The command is started immediately; the returned Process can be
// ignored by fire-and-forget callers. Exited processes untrack
// themselves.
func (s *Supervisor) Start(tool string, cmd *exec.Cmd) (*Process, error) {
	return s.StartWithID(uuid.New().String(), tool, cmd)
}

// StartWithID launches a tracked process with a caller-chosen ID.
// Useful for deterministic testing.
func (s *Supervisor) StartWithID(id, tool string, cmd *exec.Cmd) (*Process, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return nil, ErrSupervisorShutdown
	}
	if s.maxProcesses > 0 && len(s.processes) >= s.maxProcesses {
		return nil, fmt.Errorf("process limit reached: %d", s.maxProcesses)
	}
	if _, exists := s.processes[id]; exists {
		return nil, fmt.Errorf("process ID already exists: %s", id)
	}

	proc := newProcess(id, tool, cmd)
	if err := proc.start(); err != nil {
		return nil, err
	}

	s.processes[id] = proc

	go func() {
		<-proc.Done()
		s.remove(id)
		if s.onExit != nil {
			s.onExit(proc)
		}
	}()

	return proc, nil
}

// remove untracks a process by ID.
func (s *Supervisor) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.processes, id)
}

// Get returns a tracked process by ID.
func (s *Supervisor) Get(id string) (*Process, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.processes[id]
	return p, ok
}

// Count returns the number of tracked (live) processes.
func (s *Supervisor) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.processes)
}

// List returns all tracked processes.
func (s *Supervisor) List() []*Process {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Process, 0, len(s.processes))
	for _, p := range s.processes {
		out = append(out, p)
	}
	return out
}

// Shutdown stops accepting new processes, terminates anything still
// running, and waits up to timeout for exits. Survivors are killed.
func (s *Supervisor) Shutdown(timeout time.Duration) {
	if s.closed.Swap(true) {
		return
	}

	procs := s.List()
	for _, p := range procs {
		_ = p.Terminate()
	}

	deadline := time.After(timeout)
	for _, p := range procs {
		select {
		case <-p.Done():
		case <-deadline:
			for _, q := range procs {
				if q.IsRunning() {
					_ = q.Kill()
				}
			}
			return
		}
	}
}
