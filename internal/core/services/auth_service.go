package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portsrepo "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/repositories"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/google/uuid"
)

// dummyPassword is hashed once at startup; verifying against it keeps failed lookups
// as expensive as a real password check.
const dummyPassword = "timing-equalisation-password"

// AuthService implements portssvc.AuthSvcFacade.
type AuthService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	sessionRepo portsrepo.SessionRepositoryFacade
	hasher      utils.PasswordHasher
	tokens      portssvc.TokenSvcFacade
	now         Clock
	dummyHash   string
}

var _ portssvc.AuthSvcFacade = (*AuthService)(nil)

// NewAuthService creates a new AuthService.
func NewAuthService(
	userRepo portsrepo.UserRepositoryFacade,
	sessionRepo portsrepo.SessionRepositoryFacade,
	hasher utils.PasswordHasher,
	tokens portssvc.TokenSvcFacade,
	now Clock,
) (*AuthService, error) {
	if now == nil {
		now = time.Now
	}
	dummyHash, err := hasher.Hash(dummyPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare dummy password hash: %w", err)
	}
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		now:         now,
		dummyHash:   dummyHash,
	}, nil
}

// Authenticate verifies an email and password. Every rejection path costs one password
// verification and returns the same ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to look up user for authentication")
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		s.hasher.Verify(password, s.dummyHash)
		s.LogDebug(ctx, "Authentication failed", slog.String("reason", "unknown_email"))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.HasPassword() {
		s.hasher.Verify(password, s.dummyHash)
		s.LogDebug(ctx, "Authentication failed", slog.String("reason", "no_password"), slog.String("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.LogDebug(ctx, "Authentication failed", slog.String("reason", "wrong_password"), slog.String("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		s.LogDebug(ctx, "Authentication failed", slog.String("reason", "inactive"), slog.String("user_id", user.ID))
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and issues a token pair bound to a new session.
func (s *AuthService) Login(ctx context.Context, email, password string, device domain.DeviceInfo) (*domain.AuthTokens, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	tokens, err := s.issueTokens(ctx, user, device)
	if err != nil {
		return nil, err
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.upgradeHash(ctx, user.ID, password)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.ID))
	return tokens, nil
}

// upgradeHash re-hashes a legacy digest. Failures are logged, never surfaced.
func (s *AuthService) upgradeHash(ctx context.Context, userID, password string) {
	digest, err := s.hasher.Hash(password)
	if err != nil {
		s.LogError(ctx, err, "Failed to rehash password", slog.String("user_id", userID))
		return
	}
	if err := s.userRepo.UpdatePasswordHash(ctx, userID, digest); err != nil {
		s.LogError(ctx, err, "Failed to store rehashed password", slog.String("user_id", userID))
		return
	}
	s.LogInfo(ctx, "Upgraded password hash", slog.String("user_id", userID))
}

// Register creates an email/password account. The lookup is only a shortcut;
// the unique index on email decides concurrent registrations.
func (s *AuthService) Register(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, apperrors.ErrDuplicateAccount
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing user")
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	digest, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrEmptyPassword) {
			return nil, apperrors.NewFieldError("password", "field required")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now().UTC()
	user := domain.User{
		ID:               uuid.NewString(),
		Email:            req.Email,
		PasswordHash:     digest,
		FullName:         req.FullName,
		AuthProvider:     domain.AuthProviderEmail,
		SubscriptionTier: domain.TierFree,
		IsActive:         true,
		AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateAccount
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.ID))
	return &user, nil
}

// Refresh exchanges a refresh token for a new pair. The presented session is deleted first,
// so a token can be redeemed at most once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, device domain.DeviceInfo) (*domain.AuthTokens, error) {
	session, err := s.findSession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load session owner: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrSessionNotFound
	}

	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// another request redeemed it first
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return s.issueTokens(ctx, user, device)
}

// Logout deletes the session behind refreshToken.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.findSession(ctx, refreshToken)
	if err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(ctx, session.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrSessionNotFound
		}
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.LogInfo(ctx, "User logged out", slog.String("user_id", session.UserID), slog.String("session_id", session.ID))
	return nil
}

// LogoutAll deletes every session of userID.
func (s *AuthService) LogoutAll(ctx context.Context, userID string) (int64, error) {
	n, err := s.sessionRepo.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete sessions: %w", err)
	}
	s.LogInfo(ctx, "Revoked all sessions", slog.String("user_id", userID), slog.Int64("count", n))
	return n, nil
}

// CurrentUser resolves an access token to an active user.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*domain.User, error) {
	userID, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to load token subject: %w", err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrTokenInvalid
	}
	return user, nil
}

// LoginWithGoogle signs in the account for a verified Google identity, creating it on first use.
// An existing password account with the same email is never linked implicitly.
func (s *AuthService) LoginWithGoogle(ctx context.Context, identity domain.GoogleIdentity, device domain.DeviceInfo) (*domain.AuthTokens, error) {
	if identity.Email == "" || !identity.EmailVerified {
		return nil, apperrors.ErrInvalidCredentials
	}

	user, err := s.findOrCreateGoogleUser(ctx, identity)
	if err != nil {
		return nil, err
	}
	if user.AuthProvider != domain.AuthProviderGoogle {
		s.LogWarn(ctx, "Google sign-in for an email account refused", slog.String("user_id", user.ID))
		return nil, apperrors.ErrDuplicateAccount
	}
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user, device)
}

func (s *AuthService) findOrCreateGoogleUser(ctx context.Context, identity domain.GoogleIdentity) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, identity.Email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	now := s.now().UTC()
	newUser := domain.User{
		ID:               uuid.NewString(),
		Email:            identity.Email,
		FullName:         identity.Name,
		AuthProvider:     domain.AuthProviderGoogle,
		SubscriptionTier: domain.TierFree,
		IsActive:         true,
		AuditFields:      domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if identity.Picture != "" {
		picture := identity.Picture
		newUser.AvatarURL = &picture
	}

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			// created concurrently
			return s.userRepo.FindUserByEmail(ctx, identity.Email)
		}
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.LogInfo(ctx, "Google user created", slog.String("user_id", newUser.ID))
	return &newUser, nil
}

func (s *AuthService) findSession(ctx context.Context, refreshToken string) (*domain.Session, error) {
	if refreshToken == "" {
		return nil, apperrors.ErrSessionNotFound
	}
	session, err := s.sessionRepo.FindByToken(ctx, utils.HashRefreshToken(refreshToken), s.now())
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	return session, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *domain.User, device domain.DeviceInfo) (*domain.AuthTokens, error) {
	accessToken, accessExp, err := s.tokens.IssueAccess(user.ID, s.tokens.AccessTTL())
	if err != nil {
		s.LogError(ctx, err, "Failed to issue access token", slog.String("user_id", user.ID))
		return nil, err
	}

	refreshToken, refreshExp, err := s.tokens.IssueRefresh(user.ID)
	if err != nil {
		s.LogError(ctx, err, "Failed to issue refresh token", slog.String("user_id", user.ID))
		return nil, err
	}

	session := domain.Session{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		RefreshTokenHash: utils.HashRefreshToken(refreshToken),
		DeviceInfo:       device,
		ExpiresAt:        refreshExp,
		CreatedAt:        s.now().UTC(),
	}
	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Refresh token collision", slog.String("user_id", user.ID))
			return nil, apperrors.ErrTokenGeneration
		}
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}

	return &domain.AuthTokens{
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExp,
		TokenType:             domain.TokenTypeBearer,
		User:                  user,
	}, nil
}
