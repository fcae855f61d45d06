package observe_test

import (
	"context"
	"testing"

	"smartgov-assistant/internal/observe"
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

func TestCollector(t *testing.T) {
	ctx := context.Background()

	t.Run("Counters And Rates", func(t *testing.T) {
		c := observe.NewCollector(&mockLogger{})
		c.Record(ctx, observe.Event{Stage: "fast", LatencyMs: 2})
		c.Record(ctx, observe.Event{Stage: "fast", LatencyMs: 2})
		c.Record(ctx, observe.Event{Stage: "cache", CacheHit: true, LatencyMs: 1})
		c.Record(ctx, observe.Event{Stage: "fallback", LatencyMs: 800})
		c.Record(ctx, observe.Event{Stage: "workflow", LatencyMs: 3})

		s := c.Snapshot()
		if s.Messages != 5 {
			t.Errorf("expected 5 messages, got %d", s.Messages)
		}
		if s.FastHits != 2 || s.CacheHits != 1 || s.FallbackCalls != 1 || s.WorkflowSteps != 1 {
			t.Errorf("unexpected counters %+v", s)
		}
		if s.CacheHitRate != 0.25 {
			t.Errorf("expected cache hit rate 0.25, got %f", s.CacheHitRate)
		}
		if s.FastFirstShare != 0.5 {
			t.Errorf("expected fast share 0.5, got %f", s.FastFirstShare)
		}
		if s.AvgLatencyMs != 161.6 {
			t.Errorf("unexpected avg latency %f", s.AvgLatencyMs)
		}
	})

	t.Run("Empty Snapshot Has No NaNs", func(t *testing.T) {
		c := observe.NewCollector(&mockLogger{})
		s := c.Snapshot()
		if s.AvgLatencyMs != 0 || s.CacheHitRate != 0 {
			t.Errorf("expected zeroed rates, got %+v", s)
		}
	})
}
