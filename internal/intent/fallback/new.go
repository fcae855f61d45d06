package fallback

import (
	"time"

	"smartgov-assistant/internal/intent"
	"smartgov-assistant/pkg/cache"
	pkgLog "smartgov-assistant/pkg/log"
	"smartgov-assistant/pkg/ollama"
)

// Adapter wraps the external completion service as an intent classifier.
// It is only invoked after the fast classifier declined and the intent
// cache missed: the slow path.
type Adapter struct {
	l           pkgLog.Logger
	llm         ollama.IOllama
	intentCache *cache.Cache[intent.Classification]
	timeout     time.Duration
}

// Config tunes the adapter.
type Config struct {
	// Timeout is the hard deadline for one remote classification.
	Timeout time.Duration
}

// New creates the adapter. Successful classifications are written to
// intentCache keyed by normalized message text.
func New(l pkgLog.Logger, llm ollama.IOllama, intentCache *cache.Cache[intent.Classification], cfg Config) *Adapter {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Adapter{
		l:           l,
		llm:         llm,
		intentCache: intentCache,
		timeout:     timeout,
	}
}
