package services_test

import (
	"testing"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenService_AccessExpiry(t *testing.T) {
	clock := newTestClock()
	svc, err := services.NewTokenService(testConfig(), clock.Now)
	require.NoError(t, err)

	ttl := 10 * time.Minute
	token, expiresAt, err := svc.IssueAccess("user-1", ttl)
	require.NoError(t, err)
	assert.Equal(t, clock.Now().Add(ttl), expiresAt)

	clock.Advance(ttl - time.Second)
	subject, err := svc.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", subject)

	clock.Advance(time.Second) // now == issued+ttl
	_, err = svc.VerifyAccess(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	clock.Advance(time.Hour)
	_, err = svc.VerifyAccess(token)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenService_RejectsForeignTokens(t *testing.T) {
	clock := newTestClock()
	svc, err := services.NewTokenService(testConfig(), clock.Now)
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.SecretKey = "a-completely-different-secret-of-32b"
	other, err := services.NewTokenService(otherCfg, clock.Now)
	require.NoError(t, err)
	foreign, _, err := other.IssueAccess("user-1", time.Minute)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(foreign)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	_, err = svc.VerifyAccess("")
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)

	// algorithm mismatch
	hsCfg := testConfig()
	hsCfg.Algorithm = "HS512"
	hs512, err := services.NewTokenService(hsCfg, clock.Now)
	require.NoError(t, err)
	token512, _, err := hs512.IssueAccess("user-1", time.Minute)
	require.NoError(t, err)
	_, err = svc.VerifyAccess(token512)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestTokenService_IssueRefresh(t *testing.T) {
	clock := newTestClock()
	svc, err := services.NewTokenService(testConfig(), clock.Now)
	require.NoError(t, err)

	a, expA, err := svc.IssueRefresh("user-1")
	require.NoError(t, err)
	b, _, err := svc.IssueRefresh("user-1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Equal(t, clock.Now().Add(7*24*time.Hour), expA)
	// opaque: not a JWT, no dots
	assert.NotContains(t, a, ".")
	assert.Len(t, utils.HashRefreshToken(a), 64)

	_, _, err = svc.IssueRefresh("")
	assert.Error(t, err)
}

func TestNewTokenService_InvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Algorithm = "RS256"
	_, err := services.NewTokenService(cfg, nil)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.SecretKey = ""
	_, err = services.NewTokenService(cfg, nil)
	assert.Error(t, err)
}

func TestTokenService_NonPositiveTTL(t *testing.T) {
	svc, err := services.NewTokenService(testConfig(), nil)
	require.NoError(t, err)
	_, _, err = svc.IssueAccess("user-1", 0)
	assert.Error(t, err)
}
