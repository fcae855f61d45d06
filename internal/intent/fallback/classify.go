package fallback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/pkg/ollama"
)

// Classify asks the completion service for the intent of text. The call is
// bounded by the configured timeout and cancellable through ctx; a timeout
// or transport failure comes back as a typed error, never a panic or an
// unbounded wait. Successful results are cached before returning so an
// identical message never pays for a second remote call.
func (a *Adapter) Classify(ctx context.Context, text string, lang model.Language) (intent.Classification, error) {
	normalized := intent.Normalize(text)

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(classifyPrompt, truncate(text, 200), lang.OrDefault())
	resp, err := a.llm.Generate(callCtx, &ollama.GenerateRequest{
		Prompt: prompt,
		Stream: false,
		Options: &ollama.Options{
			Temperature: classifyTemperature,
			NumPredict:  classifyNumPredict,
		},
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			a.l.Warnf(ctx, "fallback classifier: timeout after %s", a.timeout)
			return intent.Classification{}, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		a.l.Warnf(ctx, "fallback classifier: transport failure: %v", err)
		return intent.Classification{}, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	tag, ok := parseTag(resp.Response)
	if !ok {
		a.l.Warnf(ctx, "fallback classifier: unparseable completion %q", resp.Response)
		return intent.Classification{}, fmt.Errorf("%w: %q", ErrUnparseable, resp.Response)
	}

	result := intent.Classification{
		Intent:     tag,
		Confidence: fallbackConfidence,
		Source:     intent.SourceFallback,
	}
	a.intentCache.Put(normalized, result)
	return result, nil
}

// parseTag extracts a known intent tag from a raw completion. Models pad
// answers with punctuation or extra words; the first known tag wins.
func parseTag(completion string) (intent.Intent, bool) {
	cleaned := strings.ToLower(strings.TrimSpace(completion))
	cleaned = strings.Trim(cleaned, "\"'.`")

	if tag, ok := intent.Known(cleaned); ok {
		return tag, true
	}
	for _, field := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ' ' || r == '\n' || r == ',' || r == ':'
	}) {
		if tag, ok := intent.Known(field); ok {
			return tag, true
		}
	}
	return intent.IntentUnclassified, false
}

// truncate cuts s to at most max bytes, backing up to a rune start so a
// multi-byte character is never split mid-sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
