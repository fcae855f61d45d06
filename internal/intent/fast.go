package intent

import "strings"

// Confidence assigned per intent class on a fast-path match. Emergency is
// higher because those phrases are unambiguous by construction.
const (
	EmergencyConfidence = 0.95
	DefaultConfidence   = 0.85
)

// matchOrder fixes the priority of fast-path checks: urgent intents first,
// then navigational, then content. First match wins, so a broad content
// keyword can never shadow an emergency trigger.
var matchOrder = []Intent{
	IntentEmergency,
	IntentCancel,
	IntentGreeting,
	IntentHelp,
	IntentApply,
	IntentStatus,
	IntentNorms,
	IntentProcedure,
	IntentFeedback,
	IntentContacts,
}

// FastClassifier resolves intents by trigger phrase lookup. No I/O; a full
// classify is a handful of substring scans over small phrase lists.
type FastClassifier struct {
	byIntent map[Intent][]string
}

// NewFastClassifier indexes the pattern table by intent. Phrases are
// folded once here so Classify only folds the message.
func NewFastClassifier(patterns []Pattern) *FastClassifier {
	byIntent := make(map[Intent][]string)
	for _, p := range patterns {
		for _, phrase := range p.Phrases {
			byIntent[p.Intent] = append(byIntent[p.Intent], strings.ToLower(strings.TrimSpace(phrase)))
		}
	}
	return &FastClassifier{byIntent: byIntent}
}

// Normalize produces the canonical form of a message used for matching and
// as the cache key for the slow path.
func Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// Classify matches text against the pattern table. A nil result means no
// pattern matched and the caller should fall through to the cache/fallback
// path.
func (f *FastClassifier) Classify(text string) *Classification {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	for _, tag := range matchOrder {
		for _, phrase := range f.byIntent[tag] {
			if matchPhrase(normalized, phrase) {
				confidence := DefaultConfidence
				if tag == IntentEmergency {
					confidence = EmergencyConfidence
				}
				return &Classification{
					Intent:     tag,
					Confidence: confidence,
					Source:     SourceFast,
				}
			}
		}
	}

	return nil
}

// matchPhrase reports whether phrase occurs in normalized. Triggers of
// three bytes or fewer only match as whole words, so "hi" cannot fire
// inside "which" or "chahiye".
func matchPhrase(normalized, phrase string) bool {
	if len(phrase) > 3 {
		return strings.Contains(normalized, phrase)
	}
	for from := 0; ; {
		i := strings.Index(normalized[from:], phrase)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(phrase)
		if (start == 0 || !isWordByte(normalized[start-1])) &&
			(end == len(normalized) || !isWordByte(normalized[end])) {
			return true
		}
		from = start + 1
	}
}

func isWordByte(b byte) bool {
	return ('a' <= b && b <= 'z') || ('0' <= b && b <= '9')
}
