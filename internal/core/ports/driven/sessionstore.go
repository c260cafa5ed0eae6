package driven

import (
	"context"

	"github.com/ArmanHov2006/ai-study-assistant/internal/core/domain"
)

// SessionStore holds conversation sessions.
// Sessions are append-only except for whole-session deletion.
type SessionStore interface {
	// Append adds messages to a session, creating it if needed.
	// Returns the session after the append.
	Append(ctx context.Context, id string, messages ...domain.Message) (*domain.Session, error)

	// Get retrieves a session by ID.
	// Returns domain.ErrSessionNotFound if absent.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// Delete removes a session.
	// Returns domain.ErrSessionNotFound if absent.
	Delete(ctx context.Context, id string) error

	// List returns all session IDs, oldest first.
	List(ctx context.Context) ([]string, error)
}
