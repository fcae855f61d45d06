package fallback

// Prompt sent to the completion service. The answer is expected to be a
// single intent tag; anything else degrades to unclassified.
const classifyPrompt = `Classify the intent of this message: "%s"
The user writes in %s.
Options: greeting, help, status_check, exgratia_apply, exgratia_norms, application_procedure, emergency, emergency_contacts, feedback, unclassified
Answer with one option only:`

const (
	// classifyTemperature keeps the tag output deterministic.
	classifyTemperature = 0.1
	// classifyNumPredict caps the completion; a tag never needs more.
	classifyNumPredict = 10

	// fallbackConfidence is assigned to fallback results. The remote
	// classifier gives no calibrated score, so a fixed mid-high value
	// keeps them below fast-path emergency matches.
	fallbackConfidence = 0.70
)
