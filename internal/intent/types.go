package intent

import "smartgov-assistant/internal/model"

// Intent is a closed tag naming the user's goal for one message.
type Intent string

const (
	IntentEmergency    Intent = "emergency"
	IntentCancel       Intent = "cancel"
	IntentGreeting     Intent = "greeting"
	IntentHelp         Intent = "help"
	IntentApply        Intent = "exgratia_apply"
	IntentStatus       Intent = "status_check"
	IntentNorms        Intent = "exgratia_norms"
	IntentProcedure    Intent = "application_procedure"
	IntentFeedback     Intent = "feedback"
	IntentContacts     Intent = "emergency_contacts"
	IntentUnclassified Intent = "unclassified"
)

// Known reports whether tag is part of the closed intent set.
func Known(tag string) (Intent, bool) {
	switch Intent(tag) {
	case IntentEmergency, IntentCancel, IntentGreeting, IntentHelp,
		IntentApply, IntentStatus, IntentNorms, IntentProcedure,
		IntentFeedback, IntentContacts, IntentUnclassified:
		return Intent(tag), true
	}
	return IntentUnclassified, false
}

// Source tells which path produced a classification.
type Source string

const (
	SourceFast     Source = "fast"
	SourceCached   Source = "cached"
	SourceFallback Source = "fallback"
)

// Classification is the immutable result of classifying one message.
type Classification struct {
	Intent     Intent
	Confidence float64
	Source     Source
}

// Pattern maps trigger phrases in one language to an intent.
// Loaded once at startup, read-only afterwards.
type Pattern struct {
	Intent   Intent         `yaml:"intent"`
	Language model.Language `yaml:"language"`
	Phrases  []string       `yaml:"phrases"`
}
