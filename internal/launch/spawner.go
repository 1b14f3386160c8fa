package launch

import (
	"os/exec"

	"github.com/pfclarke/pickat/internal/process"
)

// execSpawner starts real OS processes through a process.Supervisor.
type execSpawner struct {
	supervisor *process.Supervisor
}

// NewSpawner creates a Spawner that launches detached processes tracked
// by the supervisor. Standard I/O is left unwired: pickers run as
// independent GUI programs and their output is never read.
func NewSpawner(supervisor *process.Supervisor) Spawner {
	return &execSpawner{supervisor: supervisor}
}

// Spawn implements Spawner.
func (s *execSpawner) Spawn(command string, args ...string) error {
	cmd := exec.Command(command, args...)
	_, err := s.supervisor.Start(command, cmd)
	return err
}
