package services

import (
	"context"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
)

// TokenSvcFacade issues and verifies credentials. Access tokens are signed and
// stateless; refresh tokens are opaque and only meaningful together with a stored session.
type TokenSvcFacade interface {
	// IssueAccess returns a signed access token for subjectID valid for ttl.
	IssueAccess(subjectID string, ttl time.Duration) (string, time.Time, error)
	// VerifyAccess returns the subject of a valid token or apperrors.ErrTokenInvalid.
	VerifyAccess(token string) (string, error)
	// IssueRefresh returns a new opaque refresh token and the expiry its session should carry.
	IssueRefresh(subjectID string) (string, time.Time, error)
	// AccessTTL is the configured access token lifetime.
	AccessTTL() time.Duration
}

// AuthSvcFacade orchestrates credential checks, account creation and session issuance.
type AuthSvcFacade interface {
	// Authenticate returns the user for valid credentials. Unknown emails, OAuth-only accounts,
	// wrong passwords and inactive users all yield apperrors.ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// Login authenticates and issues an access token and a session-backed refresh token.
	Login(ctx context.Context, email, password string, device domain.DeviceInfo) (*domain.AuthTokens, error)

	// Register creates an email/password account. A taken email yields apperrors.ErrDuplicateAccount.
	Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// Refresh rotates a refresh token: the old session is removed and a new pair is issued.
	Refresh(ctx context.Context, refreshToken string, device domain.DeviceInfo) (*domain.AuthTokens, error)

	// Logout revokes the session behind a refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll revokes every session of a user.
	LogoutAll(ctx context.Context, userID string) (int64, error)

	// CurrentUser resolves an access token to an active user or apperrors.ErrTokenInvalid.
	CurrentUser(ctx context.Context, accessToken string) (*domain.User, error)

	// LoginWithGoogle signs in (creating on first use) the account behind a verified Google identity.
	LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity, device domain.DeviceInfo) (*domain.AuthTokens, error)
}

// GoogleOAuthSvcFacade defines the interface for Google OAuth operations.
type GoogleOAuthSvcFacade interface {
	// Enabled reports whether client credentials are configured.
	Enabled() bool
	// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
	GetGoogleLoginURL(state string) string
	// ExchangeCode trades an authorization code for a verified identity.
	ExchangeCode(ctx context.Context, code string) (*domain.GoogleIdentity, error)
}
