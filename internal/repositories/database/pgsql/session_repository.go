package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/models"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const (
	sessionsTable    = "sessions"
	sessionsTokenKey = "sessions_refresh_token_hash_key"

	selectSessionFields = `id, user_id, refresh_token_hash, device_info, expires_at, created_at`

	insertSessionQuery = `
		INSERT INTO ` + sessionsTable + ` (id, user_id, refresh_token_hash, device_info, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	findSessionByTokenQuery = `
		SELECT ` + selectSessionFields + `
		FROM ` + sessionsTable + `
		WHERE refresh_token_hash = $1 AND expires_at > $2`

	findSessionByIDQuery = `
		SELECT ` + selectSessionFields + `
		FROM ` + sessionsTable + `
		WHERE id = $1`

	deleteSessionQuery        = `DELETE FROM ` + sessionsTable + ` WHERE id = $1`
	deleteSessionsByUserQuery = `DELETE FROM ` + sessionsTable + ` WHERE user_id = $1`
	deleteExpiredSessionQuery = `DELETE FROM ` + sessionsTable + ` WHERE expires_at <= $1`
)

type PgxSessionRepository struct {
	BaseRepository
}

func newPgxSessionRepository(db PgxIface) *PgxSessionRepository {
	return &PgxSessionRepository{BaseRepository: BaseRepository{DB: db}}
}

var _ portsrepo.SessionRepositoryFacade = (*PgxSessionRepository)(nil)

func scanSession(row pgx.Row) (domain.Session, error) {
	var m models.Session
	if err := row.Scan(&m.ID, &m.UserID, &m.RefreshTokenHash, &m.DeviceInfo, &m.ExpiresAt, &m.CreatedAt); err != nil {
		return domain.Session{}, err
	}
	return mapping.ToDomainSession(m), nil
}

// Create inserts a session. A reused token digest fails with apperrors.ErrDuplicate.
func (r *PgxSessionRepository) Create(ctx context.Context, session domain.Session) (string, error) {
	m, err := mapping.ToModelSession(session)
	if err != nil {
		return "", err
	}

	var id string
	err = r.DB.QueryRow(ctx, insertSessionQuery,
		m.ID, m.UserID, m.RefreshTokenHash, m.DeviceInfo, m.ExpiresAt, m.CreatedAt,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, sessionsTokenKey) {
			return "", fmt.Errorf("session token: %w", apperrors.ErrDuplicate)
		}
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

func (r *PgxSessionRepository) FindByToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Session, error) {
	s, err := scanSession(r.DB.QueryRow(ctx, findSessionByTokenQuery, tokenHash, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session by token: %w", err)
	}
	return &s, nil
}

func (r *PgxSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	s, err := scanSession(r.DB.QueryRow(ctx, findSessionByIDQuery, sessionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find session %s: %w", sessionID, err)
	}
	return &s, nil
}

// Delete removes one session. Of two concurrent deletes of the same row exactly one succeeds.
func (r *PgxSessionRepository) Delete(ctx context.Context, sessionID string) error {
	cmdTag, err := r.DB.Exec(ctx, deleteSessionQuery, sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	cmdTag, err := r.DB.Exec(ctx, deleteSessionsByUserQuery, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete user sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}

func (r *PgxSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	cmdTag, err := r.DB.Exec(ctx, deleteExpiredSessionQuery, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
