package fallback_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/internal/intent/fallback"
	"smartgov-assistant/internal/model"
	"smartgov-assistant/pkg/cache"
	"smartgov-assistant/pkg/ollama"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockLLM struct {
	response   string
	err        error
	delay      time.Duration
	calls      int
	lastPrompt string
}

func (m *mockLLM) Generate(ctx context.Context, req *ollama.GenerateRequest) (*ollama.GenerateResponse, error) {
	m.calls++
	m.lastPrompt = req.Prompt
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &ollama.GenerateResponse{Response: m.response, Done: true}, nil
}

func (m *mockLLM) Model() string { return "qwen-test" }

func newAdapter(llm ollama.IOllama, timeout time.Duration) (*fallback.Adapter, *cache.Cache[intent.Classification]) {
	intentCache := cache.New[intent.Classification](100, 10*time.Minute)
	a := fallback.New(&mockLogger{}, llm, intentCache, fallback.Config{Timeout: timeout})
	return a, intentCache
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	t.Run("Known Tag", func(t *testing.T) {
		a, _ := newAdapter(&mockLLM{response: "exgratia_apply"}, time.Second)
		got, err := a.Classify(ctx, "mereko compensation ka form bharna hai", model.LanguageHindi)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Intent != intent.IntentApply || got.Source != intent.SourceFallback {
			t.Errorf("unexpected classification %+v", got)
		}
	})

	t.Run("Padded Completion Parsed", func(t *testing.T) {
		a, _ := newAdapter(&mockLLM{response: "Answer: status_check."}, time.Second)
		got, err := a.Classify(ctx, "where is my application", model.LanguageEnglish)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Intent != intent.IntentStatus {
			t.Errorf("expected status_check, got %s", got.Intent)
		}
	})

	t.Run("Result Cached By Normalized Text", func(t *testing.T) {
		a, c := newAdapter(&mockLLM{response: "exgratia_norms"}, time.Second)
		if _, err := a.Classify(ctx, "  How MUCH relief money?  ", model.LanguageEnglish); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cached, ok := c.Get("how much relief money?")
		if !ok {
			t.Fatal("expected intent cache entry under normalized key")
		}
		if cached.Intent != intent.IntentNorms {
			t.Errorf("unexpected cached intent %s", cached.Intent)
		}
	})

	t.Run("Long Devanagari Input Keeps Valid Runes", func(t *testing.T) {
		llm := &mockLLM{response: "exgratia_norms"}
		a, _ := newAdapter(llm, time.Second)
		long := strings.Repeat("मुझे राहत राशि के बारे में बताओ ", 20)
		if _, err := a.Classify(ctx, long, model.LanguageHindi); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !utf8.ValidString(llm.lastPrompt) {
			t.Error("truncation split a multi-byte character in the prompt")
		}
	})

	t.Run("Timeout Is Typed", func(t *testing.T) {
		a, c := newAdapter(&mockLLM{response: "greeting", delay: 300 * time.Millisecond}, 30*time.Millisecond)
		start := time.Now()
		_, err := a.Classify(ctx, "some complicated question", model.LanguageEnglish)
		if !errors.Is(err, fallback.ErrTimeout) {
			t.Fatalf("expected ErrTimeout, got %v", err)
		}
		if time.Since(start) > 200*time.Millisecond {
			t.Error("classify blocked past its deadline")
		}
		if c.Len() != 0 {
			t.Error("failed classification must not be cached")
		}
	})

	t.Run("Transport Failure Is Typed", func(t *testing.T) {
		a, _ := newAdapter(&mockLLM{err: errors.New("connection refused")}, time.Second)
		_, err := a.Classify(ctx, "hello there", model.LanguageEnglish)
		if !errors.Is(err, fallback.ErrTransport) {
			t.Errorf("expected ErrTransport, got %v", err)
		}
	})

	t.Run("Unparseable Completion Is Typed", func(t *testing.T) {
		a, c := newAdapter(&mockLLM{response: "I think the user wants to teleport"}, time.Second)
		_, err := a.Classify(ctx, "beam me up", model.LanguageEnglish)
		if !errors.Is(err, fallback.ErrUnparseable) {
			t.Fatalf("expected ErrUnparseable, got %v", err)
		}
		if c.Len() != 0 {
			t.Error("unparseable result must not be cached")
		}
	})
}
