package services

import (
	"fmt"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/golang-jwt/jwt/v5"
)

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	secret     string
	method     jwt.SigningMethod
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        Clock
}

// NewTokenService creates a new instance of tokenService. The signing secret and algorithm
// are fixed for the life of the service.
func NewTokenService(cfg *config.Config, now Clock) (portssvc.TokenSvcFacade, error) {
	method, err := utils.SigningMethod(cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("token service requires a signing secret")
	}
	if now == nil {
		now = time.Now
	}
	return &tokenService{
		secret:     cfg.SecretKey,
		method:     method,
		issuer:     cfg.JWTIssuer,
		accessTTL:  cfg.AccessTokenExpiry,
		refreshTTL: cfg.RefreshTokenExpiryDuration,
		now:        now,
	}, nil
}

func (s *tokenService) AccessTTL() time.Duration {
	return s.accessTTL
}

// IssueAccess creates a new JWT access token for the given subject.
func (s *tokenService) IssueAccess(subjectID string, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		return "", time.Time{}, fmt.Errorf("access token ttl must be positive")
	}
	// NumericDate has second precision; truncating keeps expiresAt equal to the encoded claim.
	now := s.now().Truncate(time.Second)
	token, expiresAt, err := utils.GenerateJWT(subjectID, s.secret, s.method, now, ttl, s.issuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	return token, expiresAt, nil
}

// VerifyAccess checks signature, algorithm, issuer and expiry. Every failure is ErrTokenInvalid.
func (s *tokenService) VerifyAccess(token string) (string, error) {
	claims, err := utils.ParseAndValidateJWT(token, s.secret, s.method, s.issuer, s.now)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrTokenInvalid, err)
	}
	return claims.Subject, nil
}

// IssueRefresh creates a new opaque refresh token. Its owner and expiry live in the session store.
func (s *tokenService) IssueRefresh(subjectID string) (string, time.Time, error) {
	if subjectID == "" {
		return "", time.Time{}, fmt.Errorf("refresh token requires a subject")
	}
	raw, err := utils.GenerateRefreshToken()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return raw, s.now().Add(s.refreshTTL), nil
}
