package emitter

import (
	"fmt"

	"github.com/mhmt/navgen/internal/codegen/meta"
)

// IncompatibleModifierError is returned when a field that must be bound
// cannot be assigned from the generated Navigator.
type IncompatibleModifierError struct {
	Class    string // simple name of the owning class
	Field    string
	Modifier meta.Modifier // offending modifier, or the one that is missing
	Missing  bool
}

func (e *IncompatibleModifierError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s.%s: field must be %s to be bound", e.Class, e.Field, e.Modifier)
	}
	return fmt.Sprintf("%s.%s: %s field cannot be bound", e.Class, e.Field, e.Modifier)
}

// UnsupportedTypeError is returned for a bound field whose type cannot be read
// back from an Intent.
type UnsupportedTypeError struct {
	Class string
	Field string
	Err   error
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("%s.%s: %v", e.Class, e.Field, e.Err)
}

func (e *UnsupportedTypeError) Unwrap() error { return e.Err }

// InvalidFieldError is returned for a field name the generated methods
// cannot use as a parameter.
type InvalidFieldError struct {
	Class  string
	Field  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("%s.%s: %s", e.Class, e.Field, e.Reason)
}

// DuplicateLauncherError is returned when two owning classes share a simple
// name and would produce the same launcher method.
type DuplicateLauncherError struct {
	Method  string
	Classes []string
}

func (e *DuplicateLauncherError) Error() string {
	return fmt.Sprintf("launcher %s would be generated for both %s and %s", e.Method, e.Classes[0], e.Classes[1])
}
