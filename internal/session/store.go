package session

import (
	"context"
	"sync"
	"time"

	"smartgov-assistant/internal/model"
	pkgLog "smartgov-assistant/pkg/log"
)

// Store owns every Session. Construct once at startup and inject; there is
// no package-level instance.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// GetOrCreate resolves the session for userID, creating it on first
// contact. Never fails. Creation is the only place the language
// preference is initialized to unset.
func (s *Store) GetOrCreate(userID string) *Session {
	s.mu.RLock()
	sess, ok := s.sessions[userID]
	s.mu.RUnlock()
	if ok {
		return sess
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok = s.sessions[userID]; ok {
		return sess
	}
	sess = &Session{
		UserID:     userID,
		Language:   model.LanguageUnset,
		LastSeenAt: s.now(),
	}
	s.sessions[userID] = sess
	return sess
}

// Touch updates the session's last activity timestamp. Caller holds the
// session lock.
func (s *Store) Touch(sess *Session) {
	sess.LastSeenAt = s.now()
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Reset replaces a corrupted session with a fresh empty one. The damage
// stays confined to this user; other sessions are untouched. Caller holds
// the session lock.
func (s *Store) Reset(sess *Session) *Session {
	fresh := &Session{
		UserID:     sess.UserID,
		Language:   model.LanguageUnset,
		LastSeenAt: s.now(),
	}
	s.mu.Lock()
	s.sessions[sess.UserID] = fresh
	s.mu.Unlock()
	return fresh
}

// ExpireIdle removes sessions idle beyond threshold and returns how many
// were dropped. It takes each session's own lock before expiring, so it
// never races an in-flight unit of work for the same user. Runs off the
// hot path on a periodic timer.
func (s *Store) ExpireIdle(threshold time.Duration) int {
	cutoff := s.now().Add(-threshold)

	s.mu.RLock()
	candidates := make([]*Session, 0)
	for _, sess := range s.sessions {
		candidates = append(candidates, sess)
	}
	s.mu.RUnlock()

	expired := 0
	for _, sess := range candidates {
		sess.Lock()
		if sess.LastSeenAt.Before(cutoff) {
			s.mu.Lock()
			// Re-check identity: the user may have been reset meanwhile.
			if current, ok := s.sessions[sess.UserID]; ok && current == sess {
				delete(s.sessions, sess.UserID)
				expired++
			}
			s.mu.Unlock()
		}
		sess.Unlock()
	}
	return expired
}

// StartSweeper runs ExpireIdle every interval until ctx is cancelled.
func (s *Store) StartSweeper(ctx context.Context, l pkgLog.Logger, interval, threshold time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.ExpireIdle(threshold); n > 0 {
					l.Infof(ctx, "session sweeper: expired %d idle session(s)", n)
				}
			}
		}
	}()
}
