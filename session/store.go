// Package session holds an in-memory, per-client key-value store. Sessions
// (and the carts they carry) do not survive a restart; that is deliberate.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is an opaque attribute bag scoped to one client.
type Session struct {
	ID        string
	ExpiresAt time.Time

	mu     sync.RWMutex
	values map[string]any
}

// Get returns the attribute stored under key, if any.
func (s *Session) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *Session) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *Session) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store keeps all live sessions. Expired sessions are dropped lazily on
// lookup; there is no background sweeper.
type Store struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create registers a new session with a random ID.
func (st *Store) Create() *Session {
	sess := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(st.ttl),
		values:    make(map[string]any),
	}
	st.mu.Lock()
	st.sessions[sess.ID] = sess
	st.mu.Unlock()
	return sess
}

// Get returns the session for id, or false if it does not exist or has
// expired. An expired session is destroyed on the spot.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	sess, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if sess.Expired() {
		st.Destroy(id)
		return nil, false
	}
	return sess, true
}

func (st *Store) Destroy(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Len reports the number of registered sessions, expired ones included.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
