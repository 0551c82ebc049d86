package repository

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/11shadownevermore11/Hackaton/internal/model"
)

// SessionRepo maps anonymous session ids to pseudo user ids so visitors can
// vote without an account. Sessions expire after sitting idle longer than
// idleTTL; expired entries are swept eagerly at the top of every resolution
// rather than by a background timer.
type SessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	idleTTL  time.Duration
	now      func() time.Time
}

func NewSessionRepo(idleTTL time.Duration) *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]*model.Session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

// ResolveOrCreate returns the (session id, pseudo user id) pair for the
// given session id and refreshes its activity timestamp. An empty, unknown
// or expired id gets a brand new pair; created reports that case so the
// HTTP layer knows to set a cookie.
func (r *SessionRepo) ResolveOrCreate(sessionID string) (sid, pseudoUserID string, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	if s, ok := r.sessions[sessionID]; ok {
		s.LastActivity = r.now()
		return s.ID, s.PseudoUserID, false
	}
	s := &model.Session{
		ID:           uuid.NewString(),
		PseudoUserID: uuid.NewString(),
		LastActivity: r.now(),
	}
	r.sessions[s.ID] = s
	return s.ID, s.PseudoUserID, true
}

// Lookup returns the pseudo user id for a live session without creating
// one. A hit refreshes the session's activity timestamp.
func (r *SessionRepo) Lookup(sessionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sweepLocked()

	s, ok := r.sessions[sessionID]
	if !ok {
		return "", false
	}
	s.LastActivity = r.now()
	return s.PseudoUserID, true
}

// Sweep removes every session idle longer than the ttl and reports how many
// were dropped.
func (r *SessionRepo) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sweepLocked()
}

func (r *SessionRepo) sweepLocked() int {
	cutoff := r.now().Add(-r.idleTTL)
	n := 0
	for id, s := range r.sessions {
		if s.LastActivity.Before(cutoff) {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}
