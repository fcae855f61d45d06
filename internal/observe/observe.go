// Package observe records per-message processing events: which path
// classified the message, whether caches helped, and how long the turn
// took. Events feed both the structured log and the in-memory counters
// exposed on the stats endpoint.
package observe

import (
	"context"
	"sync"

	pkgLog "smartgov-assistant/pkg/log"
)

// Event describes one processed inbound message.
type Event struct {
	UserID string
	// Stage names the pipeline stage that produced the reply:
	// "fast", "cache", "fallback", "workflow", "location", "unclassified".
	Stage     string
	Intent    string
	CacheHit  bool
	LatencyMs int64
}

// Sink consumes processing events.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

// Stats is a point-in-time snapshot of the counters.
type Stats struct {
	Messages       int64   `json:"messages"`
	FastHits       int64   `json:"fast_hits"`
	CacheHits      int64   `json:"cache_hits"`
	FallbackCalls  int64   `json:"fallback_calls"`
	WorkflowSteps  int64   `json:"workflow_steps"`
	Unclassified   int64   `json:"unclassified"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	FastFirstShare float64 `json:"fast_first_share"`
}

// Collector is a Sink that logs every event and keeps running counters.
type Collector struct {
	l pkgLog.Logger

	mu            sync.Mutex
	messages      int64
	fastHits      int64
	cacheHits     int64
	fallbackCalls int64
	workflowSteps int64
	unclassified  int64
	totalLatency  int64
}

// NewCollector creates a Collector.
func NewCollector(l pkgLog.Logger) *Collector {
	return &Collector{l: l}
}

func (c *Collector) Record(ctx context.Context, ev Event) {
	c.mu.Lock()
	c.messages++
	c.totalLatency += ev.LatencyMs
	switch ev.Stage {
	case "fast":
		c.fastHits++
	case "cache":
		c.cacheHits++
	case "fallback":
		c.fallbackCalls++
	case "workflow", "location":
		c.workflowSteps++
	case "unclassified":
		c.unclassified++
	}
	c.mu.Unlock()

	c.l.Debugf(ctx, "processed user=%s stage=%s intent=%s cache_hit=%t latency_ms=%d",
		ev.UserID, ev.Stage, ev.Intent, ev.CacheHit, ev.LatencyMs)
}

// Snapshot returns the current counters with derived rates.
func (c *Collector) Snapshot() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Messages:      c.messages,
		FastHits:      c.fastHits,
		CacheHits:     c.cacheHits,
		FallbackCalls: c.fallbackCalls,
		WorkflowSteps: c.workflowSteps,
		Unclassified:  c.unclassified,
	}
	if c.messages > 0 {
		s.AvgLatencyMs = float64(c.totalLatency) / float64(c.messages)
	}
	classified := c.fastHits + c.cacheHits + c.fallbackCalls
	if classified > 0 {
		s.CacheHitRate = float64(c.cacheHits) / float64(classified)
		s.FastFirstShare = float64(c.fastHits) / float64(classified)
	}
	return s
}
