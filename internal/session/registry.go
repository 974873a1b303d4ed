package session

import (
	"sync"
	"time"

	"wiki_system/internal/models"

	"github.com/google/uuid"
)

// Registry owns the live sessions. Sessions idle for longer than the
// configured TTL are dropped when next looked up.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	idleTTL  time.Duration
	now      func() time.Time
}

// NewRegistry creates an empty registry. idleTTL <= 0 disables expiry.
func NewRegistry(idleTTL time.Duration) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// Create starts a new session in the initial state. Sessions that have been
// idle past the TTL are swept first, so abandoned sessions cannot pile up.
func (r *Registry) Create() *Session {
	now := r.now()
	s := New(uuid.NewString())
	s.lastSeen = now

	r.mu.Lock()
	r.sweepLocked(now)
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

// sweepLocked drops expired sessions. r.mu must be held for writing.
func (r *Registry) sweepLocked(now time.Time) {
	if r.idleTTL <= 0 {
		return
	}
	for id, s := range r.sessions {
		if s.idleSince(now) > r.idleTTL {
			delete(r.sessions, id)
		}
	}
}

// Get returns the session and refreshes its idle timer.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	s, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, models.ErrSessionNotFound
	}

	now := r.now()
	if r.idleTTL > 0 && s.idleSince(now) > r.idleTTL {
		r.End(id)
		return nil, models.ErrSessionNotFound
	}
	s.touch(now)
	return s, nil
}

// End destroys the session. Ending an unknown session is not an error.
func (r *Registry) End(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
