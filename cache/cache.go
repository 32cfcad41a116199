package cache

import (
	"energy-calculator/entities"
	"sync"
	"time"
)

// SessionCache keeps sessions in process memory. Every read and write copies
// the session so callers never share a pointer with the cache.
type SessionCache struct {
	mu       sync.RWMutex
	sessions map[string]entities.Session // map[sessionID]session
	created  int64
	purged   int64
}

func NewSessionCache() *SessionCache {
	return &SessionCache{
		sessions: make(map[string]entities.Session),
	}
}

// Put stores a copy of session, replacing any existing entry with its id.
func (sc *SessionCache) Put(session *entities.Session) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, exists := sc.sessions[session.ID]; !exists {
		sc.created++
	}
	sc.sessions[session.ID] = *session
}

// Get returns a copy of the session with id, expired or not.
func (sc *SessionCache) Get(id string) (*entities.Session, bool) {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	session, ok := sc.sessions[id]
	if !ok {
		return nil, false
	}
	return &session, true
}

// Replace overwrites an existing session if the stored version still matches
// session.Version, then bumps the version on both copies.
func (sc *SessionCache) Replace(session *entities.Session) error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	stored, ok := sc.sessions[session.ID]
	if !ok {
		return entities.ErrSessionNotFound
	}
	if stored.Version != session.Version {
		return entities.ErrSessionConflict
	}
	session.Version++
	sc.sessions[session.ID] = *session
	return nil
}

func (sc *SessionCache) Remove(id string) bool {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if _, ok := sc.sessions[id]; !ok {
		return false
	}
	delete(sc.sessions, id)
	return true
}

// RemoveExpired drops every session whose expiry is not after now.
func (sc *SessionCache) RemoveExpired(now time.Time) int64 {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var removed int64
	for id, session := range sc.sessions {
		if session.Expired(now) {
			delete(sc.sessions, id)
			removed++
		}
	}
	sc.purged += removed
	return removed
}

// Len counts live sessions.
func (sc *SessionCache) Len(now time.Time) int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	n := 0
	for _, session := range sc.sessions {
		if !session.Expired(now) {
			n++
		}
	}
	return n
}

// GetCacheStats returns statistics about the current cache
func (sc *SessionCache) GetCacheStats(now time.Time) map[string]interface{} {
	sc.mu.RLock()
	defer sc.mu.RUnlock()

	active, calculated := 0, 0
	for _, session := range sc.sessions {
		if session.Expired(now) {
			continue
		}
		active++
		if session.Calculated {
			calculated++
		}
	}

	return map[string]interface{}{
		"active_sessions":     active,
		"stored_sessions":     len(sc.sessions),
		"calculated_sessions": calculated,
		"created_total":       sc.created,
		"purged_total":        sc.purged,
	}
}
