package mixing

import (
	"errors"
	"fmt"
)

// Domain errors for mixing operations.
var (
	// ErrDomain indicates an input fraction, density or conductivity outside its valid range.
	ErrDomain = errors.New("mixing: value outside valid domain")

	// ErrArithmetic indicates a computation that would divide by zero or overflow.
	ErrArithmetic = errors.New("mixing: arithmetic failure (zero denominator or non-finite result)")
)

func domainErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

func arithErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrArithmetic, fmt.Sprintf(format, args...))
}

// StageError wraps an error with the chain coordinates where it happened.
type StageError struct {
	Level   float64
	Stage   int // zero-based; -1 when the failure is not tied to a stage
	Species string
	Wrapped error
}

func (e *StageError) Error() string {
	if e.Stage < 0 {
		return fmt.Sprintf("level %g%%: %v", e.Level, e.Wrapped)
	}
	return fmt.Sprintf("level %g%%, stage %d (%s): %v", e.Level, e.Stage+1, e.Species, e.Wrapped)
}

func (e *StageError) Unwrap() error {
	return e.Wrapped
}
