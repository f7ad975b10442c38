package model

import "fmt"

var (
	ErrInvalidArgument = addPrefix("invalid argument")
	ErrIO              = addPrefix("i/o error")
	ErrFormat          = addPrefix("format error")
	ErrOutOfMemory     = addPrefix("out of memory")
)

func addPrefix(errStr string) error {
	return fmt.Errorf("statdump err: %s", errStr)
}

// Wrap tags cause with one of the sentinel kinds above. Both stay reachable through errors.Is.
func Wrap(kind, cause error) error {
	if cause == nil {
		return kind
	}
	return fmt.Errorf("%w: %w", kind, cause)
}
