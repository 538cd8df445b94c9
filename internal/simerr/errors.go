// Package simerr defines the error kinds shared across the simulation core.
//
// Failures are distinguished by kind via errors.Is, not by Go type:
// validation, state-machine, schema and numerical-instability failures
// wrap one of the sentinels below with contextual detail, following the
// sentinel-plus-wrapper idiom the teacher codebase uses for its own
// simulation errors. Decoding, I/O and unknown-command errors are
// returned as plain errors without a sentinel.
package simerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Use errors.Is(err, simerr.ErrInvalidBody) etc. to
// classify a failure without depending on its exact message.
var (
	// ErrInvalidConfig indicates a SimulationConfig failed validate().
	ErrInvalidConfig = errors.New("simerr: invalid config")

	// ErrInvalidBody indicates a body failed its finiteness/positivity checks.
	ErrInvalidBody = errors.New("simerr: invalid body")

	// ErrDuplicateBodyID indicates a Create edit reused an existing id.
	ErrDuplicateBodyID = errors.New("simerr: duplicate body id")

	// ErrBodyNotFound indicates an Update/Delete edit referenced an unknown id.
	ErrBodyNotFound = errors.New("simerr: body not found")

	// ErrNumericalInstability indicates a live body produced a non-finite
	// position or velocity during integration.
	ErrNumericalInstability = errors.New("simerr: numerical instability")

	// ErrSchemaInvalid indicates a scenario/snapshot document failed
	// validation or carries an unsupported schema version.
	ErrSchemaInvalid = errors.New("simerr: schema invalid")

	// ErrUninitialized indicates an operation was attempted before
	// initialize/loadScenario/restoreSnapshot.
	ErrUninitialized = errors.New("simerr: engine uninitialized")

	// ErrDisposed indicates an operation was attempted after dispose.
	ErrDisposed = errors.New("simerr: engine disposed")

	// ErrUnsupportedVariant indicates a malformed edit/scenario/snapshot
	// payload whose tagged variant could not be decoded.
	ErrUnsupportedVariant = errors.New("simerr: unsupported variant")

	// ErrUnknownPreset indicates a requested preset name is not shipped
	// with the module.
	ErrUnknownPreset = errors.New("simerr: unknown preset")
)

// Error pairs a sentinel kind with human-readable detail. Callers compare
// kinds with errors.Is; Error() carries the detail for logs and CLI output.
type Error struct {
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Wrap builds an *Error of the given kind with a formatted detail message.
func Wrap(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
