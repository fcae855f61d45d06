package language

import "smartgov-assistant/internal/model"

// Detection is the outcome of analyzing one message.
type Detection struct {
	Language model.Language
	// Score is the winning heuristic score. Zero means nothing matched
	// and Language is just the default.
	Score float64
	// Persist reports whether the session preference should be updated.
	// Short or low-confidence messages never flip a stored preference.
	Persist bool
}

// Cached is the value memoized per exact message text. Score travels with
// the language so a cached hit applies the same persistence policy as a
// fresh detection.
type Cached struct {
	Language model.Language
	Score    float64
}

// Config tunes the persistence policy.
type Config struct {
	// MinPersistTokens is the token count a message must exceed before its
	// detected language may replace the stored preference. Single words and
	// names (common mid-form answers) stay below it.
	MinPersistTokens int
	// MinPersistScore is the heuristic score the winning language must
	// reach before persisting.
	MinPersistScore float64
}

// DefaultConfig mirrors the tuning the bot shipped with.
func DefaultConfig() Config {
	return Config{
		MinPersistTokens: 2,
		MinPersistScore:  2.0,
	}
}
