// Package session owns per-conversation state: one conversation memory
// per mode plus the recall index. Sessions live in process memory only
// and disappear on restart.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mohammad-safakhou/ferret/internal/memory"
	"github.com/mohammad-safakhou/ferret/internal/recall"
)

// Session holds the two mode-scoped conversation logs. Search and extract
// memories are independent; the pipeline never reads across modes.
type Session struct {
	id        string
	expiresAt time.Time

	Search  *memory.Memory
	Extract *memory.Memory
	Recall  *recall.Index
}

func (s *Session) ID() string { return s.id }

func (s *Session) Expire(ttl time.Duration) { s.expiresAt = time.Now().Add(ttl) }

func (s *Session) Expired(now time.Time) bool { return now.After(s.expiresAt) }

func NewSession(id string, ttl time.Duration) (*Session, error) {
	idx, err := recall.NewIndex()
	if err != nil {
		return nil, err
	}
	return &Session{
		id:        id,
		expiresAt: time.Now().Add(ttl),
		Search:    memory.New(),
		Extract:   memory.New(),
		Recall:    idx,
	}, nil
}

// Store is an in-memory session registry keyed by id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Ensure returns the session with the given id, refreshing its TTL, or
// creates a fresh one when the id is blank or unknown.
func (st *Store) Ensure(id string, ttl time.Duration) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if id != "" {
		if sess, ok := st.sessions[id]; ok {
			sess.Expire(ttl)
			return sess, nil
		}
	}

	sess, err := NewSession(uuid.NewString(), ttl)
	if err != nil {
		return nil, err
	}
	st.sessions[sess.ID()] = sess
	return sess, nil
}

// Get returns the session with the given id, or nil when unknown.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Sweep drops expired sessions and reports how many were removed.
func (st *Store) Sweep(now time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for id, sess := range st.sessions {
		if sess.Expired(now) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
