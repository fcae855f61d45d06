package language

import (
	"strings"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/pkg/cache"
)

// Romanized keyword lists. Hindi and Nepali share a script and several
// function words, so each list carries only words exclusive to that
// language; genuinely shared words score at half weight for both.
var (
	englishWords = []string{
		"can", "you", "help", "me", "i", "want", "how", "to", "what", "is",
		"apply", "for", "please", "thank", "hello", "yes", "no",
	}
	hindiWords = []string{
		"mujhe", "mereko", "karna", "chahiye", "batao", "baare",
		"kya", "kaise", "madad",
	}
	nepaliWords = []string{
		"chha", "chaincha", "huncha", "garcha", "malai", "paincha",
		"garna", "parcha", "kati", "kasari",
	}
	sharedWords = []string{"hai", "hain", "main", "mein", "lai", "cha"}
)

// Detector classifies message language with script and keyword heuristics
// and decides whether the result should overwrite the session preference.
type Detector struct {
	cfg   Config
	cache *cache.Cache[Cached]
}

// New creates a Detector. langCache memoizes detection for exact message
// text; pass nil to disable memoization (tests).
func New(cfg Config, langCache *cache.Cache[Cached]) *Detector {
	if cfg.MinPersistTokens <= 0 {
		cfg.MinPersistTokens = DefaultConfig().MinPersistTokens
	}
	if cfg.MinPersistScore <= 0 {
		cfg.MinPersistScore = DefaultConfig().MinPersistScore
	}
	return &Detector{cfg: cfg, cache: langCache}
}

// Detect analyzes text against the current stored preference. A cache hit
// skips scoring but still applies the persistence policy, so a cached
// language can never bypass the short-utterance guard.
func (d *Detector) Detect(text string, current model.Language) Detection {
	normalized := strings.ToLower(strings.TrimSpace(text))
	tokens := len(strings.Fields(normalized))

	if d.cache != nil {
		if hit, ok := d.cache.Get(normalized); ok {
			return d.applyPolicy(hit.Language, hit.Score, tokens, current)
		}
	}

	lang, score := score(normalized, text)
	if d.cache != nil && normalized != "" {
		d.cache.Put(normalized, Cached{Language: lang, Score: score})
	}

	return d.applyPolicy(lang, score, tokens, current)
}

func (d *Detector) applyPolicy(lang model.Language, langScore float64, tokens int, current model.Language) Detection {
	persist := tokens > d.cfg.MinPersistTokens &&
		langScore >= d.cfg.MinPersistScore &&
		lang != current

	respondIn := lang
	if !persist && current != model.LanguageUnset {
		// Short or uncertain messages are answered in the stored language.
		respondIn = current
	}

	return Detection{Language: respondIn.OrDefault(), Score: langScore, Persist: persist}
}

// score runs the heuristic. raw keeps the original text so Devanagari
// codepoints survive the lowercasing of romanized matching.
func score(normalized, raw string) (model.Language, float64) {
	var devanagari float64
	for _, r := range raw {
		if r >= 0x0900 && r <= 0x097F {
			devanagari++
		}
	}

	english := countMatches(normalized, englishWords)
	shared := countMatches(normalized, sharedWords)
	// Devanagari weighs heavier for Hindi: Nepali script use almost always
	// comes with exclusive Nepali function words, bare Devanagari usually
	// does not.
	hindi := countMatches(normalized, hindiWords) + shared*0.5 + devanagari*2
	nepali := countMatches(normalized, nepaliWords) + shared*0.5 + devanagari*1.5

	switch {
	case hindi > english && hindi > nepali:
		return model.LanguageHindi, hindi
	case nepali > english && nepali > hindi:
		return model.LanguageNepali, nepali
	case english > 0:
		return model.LanguageEnglish, english
	default:
		// No signal, or a Hindi/Nepali tie on shared script. Score zero
		// keeps ambiguous messages from persisting a preference.
		if hindi > 0 && hindi == nepali {
			return model.LanguageHindi, 0
		}
		return model.LanguageEnglish, 0
	}
}

func countMatches(text string, words []string) float64 {
	if text == "" {
		return 0
	}
	fields := strings.Fields(text)
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[strings.Trim(f, ".,!?")] = struct{}{}
	}
	var n float64
	for _, w := range words {
		if _, ok := set[w]; ok {
			n++
		}
	}
	return n
}
