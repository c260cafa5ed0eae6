package memory

import (
	"context"
	"sync"
	"time"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
	"github.com/ArmanHov2006/ai-study-assistant/internal/core/ports/driven"
)

// Ensure SessionStore implements the interface.
var _ driven.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory implementation of driven.SessionStore.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*domain.Session
	order    []string
	now      func() time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*domain.Session),
		now:      time.Now,
	}
}

// Append adds messages to a session, creating the session on first use.
func (s *SessionStore) Append(_ context.Context, id string, messages ...domain.Message) (*domain.Session, error) {
	if id == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "session id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &domain.Session{ID: id, CreatedAt: now}
		s.sessions[id] = sess
		s.order = append(s.order, id)
	}
	for _, m := range messages {
		if m.CreatedAt.IsZero() {
			m.CreatedAt = now
		}
		sess.Messages = append(sess.Messages, m)
	}
	sess.UpdatedAt = now
	return copySession(sess), nil
}

// Get retrieves a session by ID.
func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, sessionNotFound(id)
	}
	return copySession(sess), nil
}

// Delete removes a session.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return sessionNotFound(id)
	}
	delete(s.sessions, id)
	for i, n := range s.order {
		if n == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all session IDs, oldest first.
func (s *SessionStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.order...), nil
}

func copySession(sess *domain.Session) *domain.Session {
	cp := *sess
	cp.Messages = append([]domain.Message(nil), sess.Messages...)
	return &cp
}

func sessionNotFound(id string) error {
	return domain.Errorf(domain.ErrSessionNotFound, "session %q not found", id).
		WithContext("session_id", id)
}
