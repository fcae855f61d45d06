package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"smartgov-assistant/internal/model"
)

// Control words accepted in any supported language.
var (
	cancelWords = []string{"cancel", "/cancel", "stop", "quit", "exit", "band karo", "radda"}
	skipWords   = []string{"skip", "/skip", "chhodo", "chhod dein"}
	yesWords    = []string{"yes", "y", "haan", "ho", "confirm", "sahi", "thik cha"}
	noWords     = []string{"no", "n", "nahi", "galat", "chhaina", "hoina"}
)

// Machine drives one structured interaction for one session. All methods
// assume the caller holds the owning session's lock; the machine itself is
// not safe for concurrent use.
type Machine struct {
	spec      KindSpec
	lang      model.Language
	submitter Submitter

	phase     Phase
	fieldIdx  int
	fields    map[string]string
	createdAt time.Time

	// localRef is assigned once when a submission fails, so the record is
	// never silently lost even if the collaborator stays down.
	localRef string

	submitTimeout time.Duration
}

// NewMachine starts a workflow in Collecting(0).
func NewMachine(spec KindSpec, lang model.Language, submitter Submitter) *Machine {
	return &Machine{
		spec:          spec,
		lang:          lang.OrDefault(),
		submitter:     submitter,
		phase:         PhaseCollecting,
		fields:        make(map[string]string),
		createdAt:     time.Now(),
		submitTimeout: 10 * time.Second,
	}
}

// Kind returns the workflow kind.
func (m *Machine) Kind() Kind { return m.spec.Kind }

// Phase returns the current state tag.
func (m *Machine) Phase() Phase { return m.phase }

// Language returns the language the workflow was started in. Prompts stay
// in this language even if the session preference later changes.
func (m *Machine) Language() model.Language { return m.lang }

// Fields returns a copy of the validated values collected so far.
func (m *Machine) Fields() map[string]string {
	out := make(map[string]string, len(m.fields))
	for k, v := range m.fields {
		out[k] = v
	}
	return out
}

// Terminal reports whether the machine reached Completed or Cancelled.
func (m *Machine) Terminal() bool {
	return m.phase == PhaseCompleted || m.phase == PhaseCancelled
}

// AwaitingLocation reports whether the current collecting field wants a
// location payload.
func (m *Machine) AwaitingLocation() bool {
	return m.phase == PhaseCollecting &&
		m.fieldIdx < len(m.spec.Fields) &&
		m.spec.Fields[m.fieldIdx].WantsLocation
}

// Start returns the opening prompt for field 0.
func (m *Machine) Start() StepResult {
	return StepResult{Prompt: m.fieldPrompt()}
}

// CheckInvariants verifies the collected fields against the declared
// schema. A violation is session corruption: the caller resets the session.
func (m *Machine) CheckInvariants() error {
	declared := make(map[string]struct{}, len(m.spec.Fields))
	for _, f := range m.spec.Fields {
		declared[f.Name] = struct{}{}
	}
	for name := range m.fields {
		if _, ok := declared[name]; !ok {
			return fmt.Errorf("%w: field %q not in %s schema", ErrCorrupted, name, m.spec.Kind)
		}
	}
	if m.phase == PhaseCollecting && m.fieldIdx > len(m.spec.Fields) {
		return fmt.Errorf("%w: field index %d beyond schema", ErrCorrupted, m.fieldIdx)
	}
	return nil
}

// StepText advances the machine with one text input.
func (m *Machine) StepText(ctx context.Context, text string) (StepResult, error) {
	if m.Terminal() {
		return StepResult{}, ErrTerminal
	}

	trimmed := strings.TrimSpace(text)
	lowered := strings.ToLower(trimmed)

	if m.phase == PhaseCollecting && matchesAny(lowered, cancelWords) {
		m.phase = PhaseCancelled
		return StepResult{Prompt: textsFor(m.lang).cancelled, Done: true}, nil
	}

	switch m.phase {
	case PhaseCollecting:
		return m.collect(ctx, trimmed, lowered)
	case PhaseConfirming:
		return m.confirm(ctx, lowered)
	default:
		return StepResult{}, ErrTerminal
	}
}

// StepLocation advances the machine with a location payload. Only valid
// when the current field asked for one.
func (m *Machine) StepLocation(ctx context.Context, loc model.Location) (StepResult, error) {
	if !m.AwaitingLocation() {
		return StepResult{}, fmt.Errorf("%w: no open location request", ErrValidation)
	}
	field := m.spec.Fields[m.fieldIdx]
	m.fields[field.Name] = fmt.Sprintf("%.6f,%.6f", loc.Latitude, loc.Longitude)
	return m.advance(ctx)
}

func (m *Machine) collect(ctx context.Context, trimmed, lowered string) (StepResult, error) {
	field := m.spec.Fields[m.fieldIdx]

	if field.Skippable && matchesAny(lowered, skipWords) {
		// Advance without writing the field.
		return m.advance(ctx)
	}

	value := trimmed
	if field.Validate != nil {
		validated, err := field.Validate(trimmed, m.lang)
		if err != nil {
			// State unchanged: re-prompt with the validator's message.
			return StepResult{Prompt: err.Error() + "\n\n" + m.fieldPrompt()},
				fmt.Errorf("%w: %s: %v", ErrValidation, field.Name, err)
		}
		value = validated
	}

	m.fields[field.Name] = value
	return m.advance(ctx)
}

func (m *Machine) advance(ctx context.Context) (StepResult, error) {
	m.fieldIdx++
	if m.fieldIdx < len(m.spec.Fields) {
		return StepResult{Prompt: m.fieldPrompt()}, nil
	}

	if m.spec.Confirm {
		m.phase = PhaseConfirming
		return StepResult{Prompt: m.summaryPrompt()}, nil
	}

	// Kinds without a confirmation step submit immediately.
	return m.confirm(ctx, yesWords[0])
}

func (m *Machine) confirm(ctx context.Context, lowered string) (StepResult, error) {
	texts := textsFor(m.lang)

	switch {
	case matchesAny(lowered, yesWords):
		m.phase = PhaseSubmitting
		subCtx, cancel := context.WithTimeout(ctx, m.submitTimeout)
		defer cancel()

		detail, err := m.submitter.Submit(subCtx, m.spec.Kind, m.Fields(), m.lang)
		if err != nil {
			// Back to Confirming: the collected fields stay and another
			// "yes" retries the submission. Keep one stable local reference
			// across retries so the record is traceable even if the
			// collaborator never recovers.
			m.phase = PhaseConfirming
			if m.localRef == "" {
				m.localRef = "LOCAL-" + strings.ToUpper(uuid.NewString()[:8])
			}
			prompt := fmt.Sprintf(texts.submitFailed, m.localRef)
			return StepResult{Prompt: prompt}, fmt.Errorf("%w: %v", ErrSubmit, err)
		}

		m.phase = PhaseCompleted
		return StepResult{
			Prompt: fmt.Sprintf(texts.completed[m.spec.Kind], detail),
			Done:   true,
			Detail: detail,
		}, nil

	case matchesAny(lowered, noWords):
		// Restart collection from the first field. Collected values stay
		// and are only replaced by newly validated input.
		m.phase = PhaseCollecting
		m.fieldIdx = 0
		return StepResult{Prompt: texts.restart + "\n\n" + m.fieldPrompt()}, nil

	case matchesAny(lowered, cancelWords):
		m.phase = PhaseCancelled
		return StepResult{Prompt: texts.cancelled, Done: true}, nil

	default:
		return StepResult{Prompt: texts.confirmRetry}, nil
	}
}

func matchesAny(lowered string, words []string) bool {
	for _, w := range words {
		if lowered == w {
			return true
		}
	}
	return false
}
