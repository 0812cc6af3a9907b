package study

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore holds live sessions. Nothing here survives a process restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string]*Session{}, now: time.Now}
}

func (m *MemoryStore) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := newSession(uuid.NewString(), m.now())
	m.sessions[s.ID] = s
	return s.clone()
}

func (m *MemoryStore) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	return s.clone(), nil
}

// Update applies fn under the store lock. The session is left as fn left it even when
// fn returns an error, so fn must not mutate before it validates.
func (m *MemoryStore) Update(id string, fn func(*Session) error) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrNotFound
	}
	if err := fn(s); err != nil {
		return s.clone(), err
	}
	s.UpdatedAt = m.now()
	return s.clone(), nil
}

func (m *MemoryStore) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// TakeIdle removes and returns sessions untouched since before cutoff.
// Sessions that are loading are left alone.
func (m *MemoryStore) TakeIdle(cutoff time.Time) []Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Session
	for id, s := range m.sessions {
		if s.State == StateLoading || !s.UpdatedAt.Before(cutoff) {
			continue
		}
		out = append(out, s.clone())
		delete(m.sessions, id)
	}
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
