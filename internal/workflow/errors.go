package workflow

import "errors"

var (
	// ErrValidation marks rejected field input. The machine state is
	// unchanged; the caller re-prompts.
	ErrValidation = errors.New("field validation failed")

	// ErrSubmit marks a persistence collaborator failure. The collected
	// data and a local reference are preserved.
	ErrSubmit = errors.New("submission failed")

	// ErrCorrupted marks an invariant violation inside a machine, e.g. a
	// collected field missing from the declared schema. Fatal for the
	// owning session only.
	ErrCorrupted = errors.New("workflow state corrupted")

	// ErrTerminal is returned when input reaches a completed or cancelled
	// machine, which the dispatcher should already have detached.
	ErrTerminal = errors.New("workflow is terminal")
)
