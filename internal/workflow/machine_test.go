package workflow_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/workflow"
)

func okSubmitter(detail string) workflow.SubmitterFunc {
	return func(ctx context.Context, kind workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
		return detail, nil
	}
}

func failSubmitter(err error) workflow.SubmitterFunc {
	return func(ctx context.Context, kind workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
		return "", err
	}
}

// reliefAnswers walks a machine through all text fields of the relief form.
var reliefAnswers = []string{
	"Abhishek Sharma", "Ram Sharma", "Lingtam", "9812345678",
	"5", "12", "KH-99", "P-14", "2", "House wall collapsed in landslide",
}

func TestReliefFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Happy Path", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("24EXG1712345"))

		start := m.Start()
		if !strings.Contains(start.Prompt, "full name") {
			t.Errorf("unexpected opening prompt: %q", start.Prompt)
		}

		for _, answer := range reliefAnswers {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step %q failed: %v", answer, err)
			}
		}

		// Location is skippable.
		if !m.AwaitingLocation() {
			t.Fatal("expected machine to await location after last text field")
		}
		res, err := m.StepText(ctx, "skip")
		if err != nil {
			t.Fatalf("skip failed: %v", err)
		}
		if m.Phase() != workflow.PhaseConfirming {
			t.Fatalf("expected confirming, got %s", m.Phase())
		}
		if !strings.Contains(res.Prompt, "Abhishek Sharma") {
			t.Errorf("summary should echo collected name, got %q", res.Prompt)
		}

		res, err = m.StepText(ctx, "yes")
		if err != nil {
			t.Fatalf("confirm failed: %v", err)
		}
		if m.Phase() != workflow.PhaseCompleted || !res.Done {
			t.Errorf("expected completed, got %s done=%v", m.Phase(), res.Done)
		}
		if res.Detail != "24EXG1712345" {
			t.Errorf("expected tracking id in detail, got %q", res.Detail)
		}
		if m.Fields()["damage_type"] != "Landslide" {
			t.Errorf("damage type 2 should store Landslide, got %q", m.Fields()["damage_type"])
		}
	})

	t.Run("Location Payload Stored", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()
		for _, answer := range reliefAnswers {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}
		if _, err := m.StepLocation(ctx, model.Location{Latitude: 27.33, Longitude: 88.61}); err != nil {
			t.Fatalf("location step failed: %v", err)
		}
		if got := m.Fields()["location"]; !strings.HasPrefix(got, "27.33") {
			t.Errorf("expected stored coordinates, got %q", got)
		}
	})

	t.Run("Invalid Input Keeps State", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()

		before := m.Fields()
		res, err := m.StepText(ctx, "x")
		if !errors.Is(err, workflow.ErrValidation) {
			t.Fatalf("expected ErrValidation, got %v", err)
		}
		if len(m.Fields()) != len(before) {
			t.Error("rejected input must not mutate collected fields")
		}
		if !strings.Contains(res.Prompt, "full name") {
			t.Errorf("expected re-prompt for same field, got %q", res.Prompt)
		}

		// Ten-digit check on the phone field.
		for _, answer := range reliefAnswers[:3] {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}
		if _, err := m.StepText(ctx, "12345"); !errors.Is(err, workflow.ErrValidation) {
			t.Errorf("expected phone validation failure, got %v", err)
		}
		if _, ok := m.Fields()["contact_number"]; ok {
			t.Error("invalid phone must not be stored")
		}
	})

	t.Run("Fields Grow Monotonically", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()

		inputs := []string{"Abhishek", "x", "Ram Sharma", "", "Lingtam", "12345", "9812345678"}
		prev := 0
		for _, in := range inputs {
			_, _ = m.StepText(ctx, in)
			if m.Phase() == workflow.PhaseCancelled {
				break
			}
			if got := len(m.Fields()); got < prev {
				t.Fatalf("collected fields shrank from %d to %d", prev, got)
			} else {
				prev = got
			}
		}
	})

	t.Run("Cancel From Collecting", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()
		if _, err := m.StepText(ctx, "Abhishek Sharma"); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		res, err := m.StepText(ctx, "cancel")
		if err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if m.Phase() != workflow.PhaseCancelled || !res.Done {
			t.Errorf("expected cancelled terminal state, got %s", m.Phase())
		}
		if _, err := m.StepText(ctx, "hello"); !errors.Is(err, workflow.ErrTerminal) {
			t.Errorf("expected ErrTerminal after cancellation, got %v", err)
		}
	})

	t.Run("Negation Restarts Collection", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()
		for _, answer := range reliefAnswers {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}
		if _, err := m.StepText(ctx, "skip"); err != nil {
			t.Fatalf("skip failed: %v", err)
		}

		res, err := m.StepText(ctx, "no")
		if err != nil {
			t.Fatalf("negation failed: %v", err)
		}
		if m.Phase() != workflow.PhaseCollecting {
			t.Fatalf("expected collecting after negation, got %s", m.Phase())
		}
		if !strings.Contains(res.Prompt, "full name") {
			t.Errorf("expected restart at field 0, got %q", res.Prompt)
		}
		// Previously collected values stay until re-validated.
		if m.Fields()["village"] != "Lingtam" {
			t.Error("negation must not erase collected fields")
		}

		// Corrected value overwrites on re-validation.
		if _, err := m.StepText(ctx, "Bikash Rai"); err != nil {
			t.Fatalf("re-collect failed: %v", err)
		}
		if m.Fields()["applicant_name"] != "Bikash Rai" {
			t.Errorf("expected overwritten name, got %q", m.Fields()["applicant_name"])
		}
	})

	t.Run("Typed Landmark At Location Field", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, okSubmitter("id"))
		m.Start()
		for _, answer := range reliefAnswers {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}

		// Too short to be an address.
		if _, err := m.StepText(ctx, "xy"); !errors.Is(err, workflow.ErrValidation) {
			t.Fatalf("expected validation failure for junk location, got %v", err)
		}
		if !m.AwaitingLocation() {
			t.Fatal("rejected location text must keep the location request open")
		}

		if _, err := m.StepText(ctx, "Near the district hospital"); err != nil {
			t.Fatalf("landmark step failed: %v", err)
		}
		if m.Fields()["location"] != "Near the district hospital" {
			t.Errorf("expected typed landmark stored, got %q", m.Fields()["location"])
		}
		if m.Phase() != workflow.PhaseConfirming {
			t.Errorf("expected confirming after location, got %s", m.Phase())
		}
	})

	t.Run("Submit Failure Preserves Local Reference", func(t *testing.T) {
		m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageEnglish, failSubmitter(errors.New("sheets unavailable")))
		m.Start()
		for _, answer := range reliefAnswers {
			if _, err := m.StepText(ctx, answer); err != nil {
				t.Fatalf("step failed: %v", err)
			}
		}
		if _, err := m.StepText(ctx, "skip"); err != nil {
			t.Fatalf("skip failed: %v", err)
		}

		res, err := m.StepText(ctx, "yes")
		if !errors.Is(err, workflow.ErrSubmit) {
			t.Fatalf("expected ErrSubmit, got %v", err)
		}
		if m.Phase() != workflow.PhaseConfirming {
			t.Errorf("failed submit must not complete the workflow, got %s", m.Phase())
		}
		if !strings.Contains(res.Prompt, "LOCAL-") {
			t.Errorf("expected local reference in failure prompt, got %q", res.Prompt)
		}

		// The reference stays stable across retries.
		first := res.Prompt
		res2, _ := m.StepText(ctx, "yes")
		if res2.Prompt != first {
			t.Error("local reference changed between retries")
		}
	})
}

func TestSubmittingPhase(t *testing.T) {
	ctx := context.Background()

	t.Run("Held During Submitter Call", func(t *testing.T) {
		var m *workflow.Machine
		var observed workflow.Phase
		m = workflow.NewMachine(workflow.StatusSpec(), model.LanguageEnglish,
			workflow.SubmitterFunc(func(ctx context.Context, kind workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
				observed = m.Phase()
				return "ok", nil
			}))
		m.Start()
		if _, err := m.StepText(ctx, "24EXG171234"); err != nil {
			t.Fatalf("step failed: %v", err)
		}
		if observed != workflow.PhaseSubmitting {
			t.Errorf("submitter ran in phase %s, want %s", observed, workflow.PhaseSubmitting)
		}
		if m.Phase() != workflow.PhaseCompleted {
			t.Errorf("expected completed after submit, got %s", m.Phase())
		}
	})

	t.Run("Failure Returns To Confirming And Retries", func(t *testing.T) {
		calls := 0
		m := workflow.NewMachine(workflow.FeedbackSpec(), model.LanguageEnglish,
			workflow.SubmitterFunc(func(ctx context.Context, kind workflow.Kind, fields map[string]string, lang model.Language) (string, error) {
				calls++
				if calls == 1 {
					return "", errors.New("sheets unavailable")
				}
				return "FB-12345678", nil
			}))
		m.Start()
		if _, err := m.StepText(ctx, "the bot was very helpful"); !errors.Is(err, workflow.ErrSubmit) {
			t.Fatalf("expected ErrSubmit, got %v", err)
		}
		if m.Phase() != workflow.PhaseConfirming {
			t.Fatalf("failed submit must land in confirming, got %s", m.Phase())
		}

		res, err := m.StepText(ctx, "yes")
		if err != nil {
			t.Fatalf("retry failed: %v", err)
		}
		if m.Phase() != workflow.PhaseCompleted || res.Detail != "FB-12345678" {
			t.Errorf("expected completed retry with tracking id, got %s %q", m.Phase(), res.Detail)
		}
	})
}

func TestStatusFlow(t *testing.T) {
	ctx := context.Background()

	t.Run("Lookup On Single Field", func(t *testing.T) {
		m := workflow.NewMachine(workflow.StatusSpec(), model.LanguageEnglish,
			okSubmitter("Application 24EXG1712345: Under Review"))
		m.Start()
		res, err := m.StepText(ctx, "24exg1712345")
		if err != nil {
			t.Fatalf("status step failed: %v", err)
		}
		if m.Phase() != workflow.PhaseCompleted {
			t.Errorf("expected immediate completion, got %s", m.Phase())
		}
		if !strings.Contains(res.Prompt, "Under Review") {
			t.Errorf("expected status text in prompt, got %q", res.Prompt)
		}
	})

	t.Run("Bad ID Rejected", func(t *testing.T) {
		m := workflow.NewMachine(workflow.StatusSpec(), model.LanguageEnglish, okSubmitter("x"))
		m.Start()
		if _, err := m.StepText(ctx, "not-an-id"); !errors.Is(err, workflow.ErrValidation) {
			t.Errorf("expected validation failure, got %v", err)
		}
	})
}

func TestCheckInvariants(t *testing.T) {
	m := workflow.NewMachine(workflow.StatusSpec(), model.LanguageEnglish, okSubmitter("x"))
	if err := m.CheckInvariants(); err != nil {
		t.Errorf("fresh machine should satisfy invariants: %v", err)
	}
}

func TestHindiPrompts(t *testing.T) {
	m := workflow.NewMachine(workflow.ReliefSpec(), model.LanguageHindi, okSubmitter("id"))
	start := m.Start()
	if !strings.Contains(start.Prompt, "नाम") {
		t.Errorf("expected hindi prompt, got %q", start.Prompt)
	}
}
