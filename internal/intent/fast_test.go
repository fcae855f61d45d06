package intent_test

import (
	"testing"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/model"
)

func testPatterns() []intent.Pattern {
	return []intent.Pattern{
		{Intent: intent.IntentEmergency, Language: model.LanguageEnglish, Phrases: []string{"emergency", "trapped", "rescue"}},
		{Intent: intent.IntentCancel, Language: model.LanguageEnglish, Phrases: []string{"cancel", "stop"}},
		{Intent: intent.IntentGreeting, Language: model.LanguageEnglish, Phrases: []string{"hello", "hi", "namaste"}},
		{Intent: intent.IntentHelp, Language: model.LanguageEnglish, Phrases: []string{"help"}},
		{Intent: intent.IntentApply, Language: model.LanguageEnglish, Phrases: []string{"apply", "ex gratia", "ex-gratia"}},
		{Intent: intent.IntentStatus, Language: model.LanguageEnglish, Phrases: []string{"status", "track"}},
		{Intent: intent.IntentNorms, Language: model.LanguageEnglish, Phrases: []string{"norms", "eligibility"}},
	}
}

func TestFastClassifier(t *testing.T) {
	fc := intent.NewFastClassifier(testPatterns())

	t.Run("Greeting", func(t *testing.T) {
		got := fc.Classify("Hi")
		if got == nil || got.Intent != intent.IntentGreeting {
			t.Fatalf("expected greeting, got %+v", got)
		}
		if got.Source != intent.SourceFast {
			t.Errorf("expected fast source, got %s", got.Source)
		}
	})

	t.Run("Application Start", func(t *testing.T) {
		got := fc.Classify("I want to apply for ex gratia")
		if got == nil || got.Intent != intent.IntentApply {
			t.Fatalf("expected apply, got %+v", got)
		}
	})

	t.Run("Emergency Confidence Floor", func(t *testing.T) {
		got := fc.Classify("There is an EMERGENCY, we are trapped")
		if got == nil || got.Intent != intent.IntentEmergency {
			t.Fatalf("expected emergency, got %+v", got)
		}
		if got.Confidence < 0.95 {
			t.Errorf("emergency confidence %f below 0.95", got.Confidence)
		}
	})

	t.Run("Emergency Wins Over Content Overlap", func(t *testing.T) {
		// "status" and "trapped" both present; urgent intent must win.
		got := fc.Classify("status update: people trapped near the bridge")
		if got == nil || got.Intent != intent.IntentEmergency {
			t.Fatalf("expected emergency to shadow status, got %+v", got)
		}
	})

	t.Run("Case Folding And Trim", func(t *testing.T) {
		got := fc.Classify("  HELLO  ")
		if got == nil || got.Intent != intent.IntentGreeting {
			t.Fatalf("expected greeting after normalization, got %+v", got)
		}
	})

	t.Run("Short Trigger Needs Word Boundary", func(t *testing.T) {
		if got := fc.Classify("hi"); got == nil || got.Intent != intent.IntentGreeting {
			t.Fatalf("expected greeting for bare short trigger, got %+v", got)
		}
		if got := fc.Classify("hi, I lost my documents"); got == nil || got.Intent != intent.IntentGreeting {
			t.Fatalf("expected greeting with punctuation boundary, got %+v", got)
		}
		// "which" and "chahiye" contain "hi" but must not read as a greeting.
		if got := fc.Classify("which documents do I need"); got != nil {
			t.Errorf("short trigger matched inside a word: %+v", got)
		}
		if got := fc.Classify("mujhe paisa chahiye"); got != nil {
			t.Errorf("short trigger matched inside a romanized word: %+v", got)
		}
	})

	t.Run("No Match Returns Nil", func(t *testing.T) {
		if got := fc.Classify("the weather was pleasant yesterday"); got != nil {
			t.Fatalf("expected nil for unmatched text, got %+v", got)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if got := fc.Classify("   "); got != nil {
			t.Fatalf("expected nil for blank input, got %+v", got)
		}
	})
}

func TestParsePatterns(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		data := []byte("patterns:\n  - intent: greeting\n    language: english\n    phrases: [\"hello\"]\n")
		got, err := intent.ParsePatterns(data)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0].Intent != intent.IntentGreeting {
			t.Errorf("unexpected patterns: %+v", got)
		}
	})

	t.Run("Unknown Intent Rejected", func(t *testing.T) {
		data := []byte("patterns:\n  - intent: teleport\n    language: english\n    phrases: [\"beam\"]\n")
		if _, err := intent.ParsePatterns(data); err == nil {
			t.Error("expected error for unknown intent tag")
		}
	})

	t.Run("Empty Table Rejected", func(t *testing.T) {
		if _, err := intent.ParsePatterns([]byte("patterns: []\n")); err == nil {
			t.Error("expected error for empty pattern table")
		}
	})

	t.Run("Missing Phrases Rejected", func(t *testing.T) {
		data := []byte("patterns:\n  - intent: greeting\n    language: english\n    phrases: []\n")
		if _, err := intent.ParsePatterns(data); err == nil {
			t.Error("expected error for empty phrase list")
		}
	})
}
