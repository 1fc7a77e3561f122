package store

import (
	"context"
	"sync"

	"github.com/lumenpay/passgate/core"
	"github.com/lumenpay/passgate/ports"
)

// MemoryStore is an in-memory implementation of the SessionStore
// interface holding at most one session.
type MemoryStore struct {
	session *core.Session
	mu      sync.RWMutex
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() ports.SessionStore {
	return &MemoryStore{}
}

// Save validates the session and overwrites any existing record.
func (s *MemoryStore) Save(ctx context.Context, session *core.Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.session = &copied
	return nil
}

// Load returns a copy of the saved session, or nil when logged out.
func (s *MemoryStore) Load(ctx context.Context) (*core.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil, nil
	}
	copied := *s.session
	return &copied, nil
}

// IsActive reports whether a session is saved.
func (s *MemoryStore) IsActive(ctx context.Context) (bool, error) {
	session, err := s.Load(ctx)
	if err != nil {
		return false, err
	}
	return session != nil, nil
}

// Clear removes the saved session. Clearing an empty store is a no-op.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}
