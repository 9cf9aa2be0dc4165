// Package registry tracks the active session per user.
//
// The mapping is volatile by design: it is lost on restart, and the next
// message from a user simply starts a new session. Durable history lives
// in the store.
package registry

import "sync"

// Registry maps a user to their currently active session.
type Registry interface {
	Active(userID int64) (int64, bool)
	SetActive(userID, sessionID int64)
	ClearActive(userID int64)
}

// InMemory is a process-wide Registry backed by a map.
//
// Mutations are atomic per key. Two concurrent messages from the same user
// racing on session creation resolve last-write-wins; that is an accepted
// limitation, not a serialization point.
type InMemory struct {
	mu     sync.RWMutex
	active map[int64]int64
}

// NewInMemory creates an empty registry.
func NewInMemory() *InMemory {
	return &InMemory{active: make(map[int64]int64)}
}

// Active returns the user's active session id, if any.
func (r *InMemory) Active(userID int64) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sessionID, ok := r.active[userID]
	return sessionID, ok
}

// SetActive marks the session as the user's active one.
func (r *InMemory) SetActive(userID, sessionID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.active[userID] = sessionID
}

// ClearActive removes the user's active session pointer.
func (r *InMemory) ClearActive(userID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.active, userID)
}
