package telegram

import (
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

// verifySecret compares the delivery header against the configured secret
// in constant time. An empty configured secret disables the check.
func (h *handler) verifySecret(got string) error {
	if h.cfg.SecretToken == "" {
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.SecretToken)) != 1 {
		return fmt.Errorf("secret token mismatch")
	}
	return nil
}

// chatLimiter throttles updates per chat with auto-cleanup of idle chats.
type chatLimiter struct {
	limiters *expirable.LRU[string, *rate.Limiter]
	rate     rate.Limit
	burst    int
}

func newChatLimiter(requestsPerMin int) *chatLimiter {
	burst := requestsPerMin / 10
	if burst < 1 {
		burst = 1
	}
	return &chatLimiter{
		limiters: expirable.NewLRU[string, *rate.Limiter](
			1000,
			nil,
			5*time.Minute,
		),
		rate:  rate.Limit(float64(requestsPerMin) / 60.0),
		burst: burst,
	}
}

func (cl *chatLimiter) Allow(key string) error {
	limiter, ok := cl.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(cl.rate, cl.burst)
		cl.limiters.Add(key, limiter)
	}
	if !limiter.Allow() {
		return fmt.Errorf("rate limit exceeded for chat %s", key)
	}
	return nil
}
