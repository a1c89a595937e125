package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	userColumns = []string{"id", "email", "hashed_password", "full_name", "avatar_url", "auth_provider",
		"subscription_tier", "is_active", "is_superuser", "global_instructions", "stripe_customer_id",
		"created_at", "updated_at", "last_login"}
	testNow = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err, "failed to create mock")
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet(), "unfulfilled expectations")
		mock.Close()
	})
	return mock
}

// anyArgs matches a statement with n bound parameters without pinning their values.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

func TestPgxUserRepository_SaveUser(t *testing.T) {
	user := domain.User{
		ID:               "u-1",
		Email:            "a@example.com",
		PasswordHash:     "$argon2id$hash",
		FullName:         "Ann",
		AuthProvider:     domain.AuthProviderEmail,
		SubscriptionTier: domain.TierFree,
		IsActive:         true,
		AuditFields:      domain.AuditFields{CreatedAt: testNow, UpdatedAt: testNow},
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "successful insert",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("u-1", "a@example.com", sql.NullString{String: "$argon2id$hash", Valid: true}, "Ann",
						(*string)(nil), "email", "free", true, false, (*string)(nil), testNow, testNow).
					WillReturnResult(pgxmock.NewResult("INSERT", 1))
			},
		},
		{
			name: "email already taken",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs(anyArgs(12)...).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: usersEmailKey})
			},
			wantErr: apperrors.ErrDuplicate,
		},
		{
			name: "other database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`INSERT INTO users`).WithArgs(anyArgs(12)...).WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMockPool(t)
			tt.setupMock(mock)

			err := newPgxUserRepository(mock).SaveUser(context.Background(), user)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, apperrors.ErrDuplicate)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestPgxUserRepository_FindUserByEmail(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		mock := newMockPool(t)
		avatar := "https://img"
		rows := pgxmock.NewRows(userColumns).AddRow(
			"u-1", "a@example.com", nil, "Ann", &avatar, "google", "pro",
			true, false, (*string)(nil), (*string)(nil), testNow, testNow, (*time.Time)(nil))
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).WithArgs("a@example.com").WillReturnRows(rows)

		user, err := newPgxUserRepository(mock).FindUserByEmail(context.Background(), "a@example.com")
		require.NoError(t, err)
		assert.Equal(t, "u-1", user.ID)
		assert.False(t, user.HasPassword())
		assert.Equal(t, domain.AuthProviderGoogle, user.AuthProvider)
		assert.Equal(t, domain.TierPro, user.SubscriptionTier)
		require.NotNil(t, user.AvatarURL)
		assert.Equal(t, avatar, *user.AvatarURL)
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectQuery(`SELECT .* FROM users WHERE email = \$1`).WithArgs("nobody@example.com").WillReturnError(pgx.ErrNoRows)

		_, err := newPgxUserRepository(mock).FindUserByEmail(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPgxUserRepository_FindUserByID_NotFound(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectQuery(`SELECT .* FROM users WHERE id = \$1`).WithArgs("missing").WillReturnError(pgx.ErrNoRows)

	_, err := newPgxUserRepository(mock).FindUserByID(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPgxUserRepository_UpdateUser(t *testing.T) {
	user := domain.User{ID: "u-1", FullName: "New", AuditFields: domain.AuditFields{UpdatedAt: testNow}}

	t.Run("updated", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`UPDATE users`).
			WithArgs("New", (*string)(nil), (*string)(nil), sql.NullString{}, testNow, "u-1").
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, newPgxUserRepository(mock).UpdateUser(context.Background(), user))
	})

	t.Run("missing user", func(t *testing.T) {
		mock := newMockPool(t)
		mock.ExpectExec(`UPDATE users`).WithArgs(anyArgs(6)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, newPgxUserRepository(mock).UpdateUser(context.Background(), user), apperrors.ErrNotFound)
	})
}

func TestPgxUserRepository_UpdatePasswordHash(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectExec(`UPDATE users SET hashed_password`).
		WithArgs("$argon2id$new", "u-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	assert.NoError(t, newPgxUserRepository(mock).UpdatePasswordHash(context.Background(), "u-1", "$argon2id$new"))
}
