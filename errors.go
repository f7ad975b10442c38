package statdump

import (
	"fmt"

	"github.com/cqkv/statdump/model"
	"github.com/pkg/errors"
)

var (
	ErrInvalidArgument = model.ErrInvalidArgument
	ErrIO              = model.ErrIO
	ErrFormat          = model.ErrFormat
	ErrOutOfMemory     = model.ErrOutOfMemory

	ErrDumpLocked = addPrefix("dump is locked by another writer")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("statdump err: %s", errStr)
}

// Process exit statuses, one per failure kind.
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitUsage           = 2
	ExitIO              = 3
	ExitFormat          = 4
	ExitOutOfMemory     = 5
	ExitInvalidArgument = 6
)

// ExitCode maps err to the process exit status of its kind.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, ErrFormat):
		return ExitFormat
	case errors.Is(err, ErrIO):
		return ExitIO
	case errors.Is(err, ErrOutOfMemory):
		return ExitOutOfMemory
	case errors.Is(err, ErrInvalidArgument):
		return ExitInvalidArgument
	default:
		return ExitFailure
	}
}

// StatusString names the kind of err.
func StatusString(err error) string {
	switch ExitCode(err) {
	case ExitOK:
		return "OK"
	case ExitIO:
		return "I/O error"
	case ExitFormat:
		return "Format error"
	case ExitOutOfMemory:
		return "Out of memory"
	case ExitInvalidArgument:
		return "Invalid argument"
	default:
		return "Unknown"
	}
}

// Stage names a step of Pipeline.Run.
type Stage string

const (
	StageArgs      Stage = "args"
	StageLoad      Stage = "load"
	StageAggregate Stage = "aggregate"
	StageReport    Stage = "report"
	StageStore     Stage = "store"
)

// StageError is returned by Pipeline.Run and keeps the failed stage and file.
type StageError struct {
	Stage Stage
	Path  string
	Err   error
}

func (e *StageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s(%s): %v", e.Stage, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
