package workflow

import (
	"context"

	"smartgov-assistant/internal/model"
)

// Kind names a structured multi-turn interaction.
type Kind string

const (
	KindRelief   Kind = "relief-application"
	KindStatus   Kind = "status-check"
	KindFeedback Kind = "feedback"
)

// Phase is the workflow state tag. Collecting carries the field index on
// the machine; the other phases are positionless.
type Phase string

const (
	PhaseCollecting Phase = "collecting"
	PhaseConfirming Phase = "confirming"
	// PhaseSubmitting is held only for the duration of the submitter call;
	// the machine leaves it for Completed or back to Confirming before the
	// step returns.
	PhaseSubmitting Phase = "submitting"
	PhaseCompleted  Phase = "completed"
	PhaseCancelled  Phase = "cancelled"
)

// FieldSpec declares one collected field. Validate receives the raw input
// and returns the canonical value to store; an error keeps the machine's
// state unchanged and triggers a retry prompt.
type FieldSpec struct {
	Name          string
	Skippable     bool
	WantsLocation bool
	Validate      func(raw string, lang model.Language) (string, error)
}

// KindSpec is the declarative definition of a workflow kind: its fields in
// collection order and whether a confirmation step precedes submission.
type KindSpec struct {
	Kind    Kind
	Fields  []FieldSpec
	Confirm bool
}

// Submitter hands completed workflow data to the persistence collaborator.
// It returns a detail string surfaced in the completion message: a tracking
// identifier for applications, rendered status text for lookups.
type Submitter interface {
	Submit(ctx context.Context, kind Kind, fields map[string]string, lang model.Language) (string, error)
}

// SubmitterFunc adapts a function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, kind Kind, fields map[string]string, lang model.Language) (string, error)

func (f SubmitterFunc) Submit(ctx context.Context, kind Kind, fields map[string]string, lang model.Language) (string, error) {
	return f(ctx, kind, fields, lang)
}

// StepResult is what one input produced: the next prompt to send and
// whether the workflow reached a terminal phase.
type StepResult struct {
	Prompt string
	Done   bool
	// Detail carries the submitter's return on completion.
	Detail string
}
