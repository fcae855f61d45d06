package telegram

import (
	"github.com/gin-gonic/gin"

	"smartgov-assistant/internal/dispatcher"
	pkgLog "smartgov-assistant/pkg/log"
	pkgTelegram "smartgov-assistant/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config tunes webhook verification and throttling.
type Config struct {
	// SecretToken must match the secret registered with setWebhook.
	// Empty disables the check (local development).
	SecretToken string
	// RateLimitPerMin caps updates per chat per minute.
	RateLimitPerMin int
}

// New creates a new Telegram delivery handler.
func New(l pkgLog.Logger, d dispatcher.Dispatcher, bot *pkgTelegram.Bot, cfg Config) Handler {
	if cfg.RateLimitPerMin <= 0 {
		cfg.RateLimitPerMin = 60
	}
	return &handler{
		l:        l,
		d:        d,
		bot:      bot,
		cfg:      cfg,
		limiters: newChatLimiter(cfg.RateLimitPerMin),
	}
}
