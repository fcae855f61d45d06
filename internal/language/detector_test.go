package language_test

import (
	"testing"
	"time"

	"smartgov-assistant/internal/language"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/pkg/cache"
)

func TestDetect(t *testing.T) {
	det := language.New(language.DefaultConfig(), nil)

	t.Run("English Sentence", func(t *testing.T) {
		got := det.Detect("can you help me apply for relief", model.LanguageUnset)
		if got.Language != model.LanguageEnglish {
			t.Errorf("expected english, got %s", got.Language)
		}
		if !got.Persist {
			t.Error("expected long english sentence to persist")
		}
	})

	t.Run("Romanized Hindi", func(t *testing.T) {
		got := det.Detect("mujhe madad chahiye batao kaise", model.LanguageUnset)
		if got.Language != model.LanguageHindi {
			t.Errorf("expected hindi, got %s", got.Language)
		}
		if !got.Persist {
			t.Error("expected high-score hindi message to persist")
		}
	})

	t.Run("Romanized Nepali", func(t *testing.T) {
		got := det.Detect("malai kati paincha kasari garna", model.LanguageUnset)
		if got.Language != model.LanguageNepali {
			t.Errorf("expected nepali, got %s", got.Language)
		}
	})

	t.Run("Single Token Never Persists", func(t *testing.T) {
		// A personal name mid-form must not flip the stored language,
		// even when it superficially resembles another script's words.
		got := det.Detect("Abhishek", model.LanguageEnglish)
		if got.Persist {
			t.Error("1-token message must not persist a language change")
		}
		if got.Language != model.LanguageEnglish {
			t.Errorf("expected reply in stored english, got %s", got.Language)
		}
	})

	t.Run("Short Devanagari Answered In Stored Language", func(t *testing.T) {
		got := det.Detect("राम", model.LanguageEnglish)
		if got.Persist {
			t.Error("short devanagari input must not persist")
		}
		if got.Language != model.LanguageEnglish {
			t.Errorf("expected stored english, got %s", got.Language)
		}
	})

	t.Run("Long Confident Switch Persists", func(t *testing.T) {
		got := det.Detect("मुझे आवेदन की स्थिति बताओ कृपया", model.LanguageEnglish)
		if !got.Persist {
			t.Error("expected >2 token high-confidence devanagari to persist")
		}
	})

	t.Run("Same Language No Persist Flag", func(t *testing.T) {
		got := det.Detect("can you please help me apply", model.LanguageEnglish)
		if got.Persist {
			t.Error("no change needed when detected equals stored")
		}
	})

	t.Run("Ambiguous Defaults To English", func(t *testing.T) {
		got := det.Detect("xyz qwerty 12345", model.LanguageUnset)
		if got.Language != model.LanguageEnglish {
			t.Errorf("expected english default, got %s", got.Language)
		}
		if got.Persist {
			t.Error("zero-score detection must not persist")
		}
	})
}

func TestDetectCache(t *testing.T) {
	langCache := cache.New[language.Cached](100, 30*time.Minute)
	det := language.New(language.DefaultConfig(), langCache)

	first := det.Detect("mujhe madad chahiye batao kaise", model.LanguageUnset)
	if first.Language != model.LanguageHindi {
		t.Fatalf("expected hindi, got %s", first.Language)
	}

	// Second call is served from the cache; policy still applies.
	second := det.Detect("mujhe madad chahiye batao kaise", model.LanguageEnglish)
	if second.Language != model.LanguageHindi {
		t.Errorf("expected cached hindi, got %s", second.Language)
	}
	if !second.Persist {
		t.Error("cached hit on a long message should still persist")
	}

	if langCache.Len() == 0 {
		t.Error("expected detection to populate the language cache")
	}
}
