package dispatcher

import "fmt"

// ResultStatus indicates the outcome of an action.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the action had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling an action.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Err contains any error that occurred.
	Err error

	// Targets lists the launch targets that were spawned.
	Targets []string
}

// Ok returns a successful result with the spawned targets.
func Ok(targets ...string) Result {
	return Result{Status: StatusOK, Targets: targets}
}

// NoOp returns a result indicating nothing happened.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error returns an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Err: err}
}

// Errorf returns an error result with a formatted message.
func Errorf(format string, args ...any) Result {
	return Error(fmt.Errorf(format, args...))
}

// IsOK returns true for successful results.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}
