package session

import (
	"sync"
	"time"

	"smartgov-assistant/internal/model"
	"smartgov-assistant/internal/workflow"
)

// Session is the per-user conversational context. It is created on the
// first message and soft-expired by inactivity; language preference starts
// unset and is only changed through the detector's persistence policy.
//
// The embedded mutex serializes all units of work for one user: the
// dispatcher holds it for the whole handling of a message, and the idle
// sweeper takes it before expiring, so a workflow never sees two
// concurrent mutations.
type Session struct {
	mu sync.Mutex

	UserID     string
	Language   model.Language
	Active     *workflow.Machine
	LastSeenAt time.Time
}

// Lock acquires the per-user ordering lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-user ordering lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// AwaitingLocation reports whether the active workflow has an open
// location request, used by the dispatcher to route location payloads
// straight to the waiting step.
func (s *Session) AwaitingLocation() bool {
	return s.Active != nil && s.Active.AwaitingLocation()
}
