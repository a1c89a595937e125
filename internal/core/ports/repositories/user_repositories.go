package repositories

import (
	"context"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by exact, case-sensitive email match.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser inserts a new user. A taken email yields apperrors.ErrDuplicate; nothing is overwritten.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates profile fields and the password hash of an existing user.
	UpdateUser(ctx context.Context, user domain.User) error

	// UpdatePasswordHash replaces the stored digest, used to upgrade legacy hashes.
	UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
