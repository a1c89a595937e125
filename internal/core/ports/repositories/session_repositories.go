package repositories

import (
	"context"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
)

// SessionReader defines lookups of refresh-token sessions.
type SessionReader interface {
	// FindByToken returns the unexpired session whose token digest matches.
	// Unknown, expired and deleted tokens all yield apperrors.ErrNotFound.
	FindByToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Session, error)

	// FindByID retrieves a session regardless of expiry.
	FindByID(ctx context.Context, sessionID string) (*domain.Session, error)
}

// SessionWriter defines creation and revocation of sessions.
type SessionWriter interface {
	// Create persists a new session and returns its ID. A duplicate token digest
	// yields apperrors.ErrDuplicate; an existing session is never overwritten.
	Create(ctx context.Context, session domain.Session) (string, error)

	// Delete removes one session. A missing session yields apperrors.ErrNotFound.
	Delete(ctx context.Context, sessionID string) error

	// DeleteByUser removes every session of a user and returns how many were removed.
	DeleteByUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpired removes sessions with expires_at <= now and returns the count.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// SessionRepositoryFacade combines all session-related repository interfaces
type SessionRepositoryFacade interface {
	SessionReader
	SessionWriter
}
