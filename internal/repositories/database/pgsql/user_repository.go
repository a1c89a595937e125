package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	usersEmailKey = "users_email_key"

	selectUserFields = `id, email, hashed_password, full_name, avatar_url, auth_provider, subscription_tier,
		is_active, is_superuser, global_instructions, stripe_customer_id, created_at, updated_at, last_login`
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db PgxIface) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{DB: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var m models.User
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.PasswordHash,
		&m.FullName,
		&m.AvatarURL,
		&m.AuthProvider,
		&m.SubscriptionTier,
		&m.IsActive,
		&m.IsSuperuser,
		&m.GlobalInstructions,
		&m.StripeCustomerID,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.LastLogin,
	)
	if err != nil {
		return nil, err
	}
	u := mapping.ToDomainUser(m)
	return &u, nil
}

// SaveUser inserts a new user. It never upserts: an existing email fails with apperrors.ErrDuplicate.
func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (id, email, hashed_password, full_name, avatar_url, auth_provider, subscription_tier,
			is_active, is_superuser, global_instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.DB.Exec(ctx, query,
		m.ID,
		m.Email,
		m.PasswordHash,
		m.FullName,
		m.AvatarURL,
		m.AuthProvider,
		m.SubscriptionTier,
		m.IsActive,
		m.IsSuperuser,
		m.GlobalInstructions,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, usersEmailKey) {
			return fmt.Errorf("user with email %s: %w", user.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + selectUserFields + ` FROM users WHERE id = $1;`
	user, err := scanUser(r.DB.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by ID %s: %w", userID, err)
	}
	return user, nil
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + selectUserFields + ` FROM users WHERE email = $1;`
	user, err := scanUser(r.DB.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET full_name = $1, avatar_url = $2, global_instructions = $3, hashed_password = $4, updated_at = $5
		WHERE id = $6;
	`
	cmdTag, err := r.DB.Exec(ctx, query,
		m.FullName,
		m.AvatarURL,
		m.GlobalInstructions,
		m.PasswordHash,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", user.ID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	cmdTag, err := r.DB.Exec(ctx, `UPDATE users SET hashed_password = $1 WHERE id = $2;`, passwordHash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password hash: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
	}
	return nil
}
