package process

import (
	"errors"
	"fmt"
)

var (
	ErrSeek          = errors.New("seek source")
	ErrSpawn         = errors.New("spawn process")
	ErrWrite         = errors.New("write to process")
	ErrRead          = errors.New("read from process")
	ErrProcessFailed = errors.New("process failed")
)

// UnknownExitCode is reported when the process did not exit normally, for
// example because it was killed by a signal.
const UnknownExitCode = -1

// RunError describes which step of a benchmark run failed. Op is one of the
// Err* sentinels, so errors.Is(err, ErrProcessFailed) works on a *RunError.
type RunError struct {
	Command  string
	Op       error
	ExitCode int   // only meaningful when Op is ErrProcessFailed
	Err      error // underlying cause, may be nil
}

func (e *RunError) Error() string {
	if e.Op == ErrProcessFailed {
		return fmt.Sprintf("%s: process exited with %d", e.Command, e.ExitCode)
	}
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Op)
	}
	return fmt.Sprintf("%s: %v: %v", e.Command, e.Op, e.Err)
}

func (e *RunError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Op}
	}
	return []error{e.Op, e.Err}
}
