package services_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	portssvc "github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/ports/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/services"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/dto"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceTestSuite struct {
	suite.Suite
	users    *memUserStore
	sessions *memSessionStore
	clock    *testClock
	tokens   portssvc.TokenSvcFacade
	service  *services.AuthService
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.users = newMemUserStore()
	suite.sessions = newMemSessionStore()
	suite.clock = newTestClock()

	tokens, err := services.NewTokenService(testConfig(), suite.clock.Now)
	suite.Require().NoError(err)
	suite.tokens = tokens

	svc, err := services.NewAuthService(suite.users, suite.sessions, testHasher, tokens, suite.clock.Now)
	suite.Require().NoError(err)
	suite.service = svc
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}

func (suite *AuthServiceTestSuite) register(email, password string) *domain.User {
	user, err := suite.service.Register(context.Background(), dto.CreateUserRequest{Email: email, Password: password, FullName: "Test User"})
	suite.Require().NoError(err)
	return user
}

// --- Register ---

func (suite *AuthServiceTestSuite) TestRegister_Success() {
	user := suite.register("jane@example.com", "password123")

	suite.NotEmpty(user.ID)
	suite.Equal("jane@example.com", user.Email)
	suite.Equal(domain.AuthProviderEmail, user.AuthProvider)
	suite.Equal(domain.TierFree, user.SubscriptionTier)
	suite.True(user.IsActive)
	suite.NotEqual("password123", user.PasswordHash)
	suite.True(testHasher.Verify("password123", user.PasswordHash))
	suite.Nil(user.LastLogin)
	suite.Equal(1, suite.users.inserts)
}

func (suite *AuthServiceTestSuite) TestRegister_DuplicateEmail() {
	first := suite.register("dup@example.com", "password123")
	suite.NotEmpty(first.ID)

	_, err := suite.service.Register(context.Background(), dto.CreateUserRequest{Email: "dup@example.com", Password: "otherpass1", FullName: "Other"})
	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Equal(1, suite.users.count())
	suite.Equal(1, suite.users.inserts)
}

func (suite *AuthServiceTestSuite) TestRegister_EmailIsCaseSensitive() {
	suite.register("Case@Example.com", "password123")
	other := suite.register("case@example.com", "password123")
	suite.NotEmpty(other.ID)
	suite.Equal(2, suite.users.count())
}

// --- Authenticate / Login ---

func (suite *AuthServiceTestSuite) TestAuthenticate_FailuresAreIndistinguishable() {
	ctx := context.Background()
	suite.register("known@example.com", "password123")
	suite.Require().NoError(suite.users.SaveUser(ctx, domain.User{
		ID: "google-user", Email: "oauth@example.com", AuthProvider: domain.AuthProviderGoogle, IsActive: true,
	}))

	_, errUnknown := suite.service.Authenticate(ctx, "nobody@example.com", "password123")
	_, errOAuth := suite.service.Authenticate(ctx, "oauth@example.com", "password123")
	_, errWrong := suite.service.Authenticate(ctx, "known@example.com", "wrong-password")

	for _, err := range []error{errUnknown, errOAuth, errWrong} {
		suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
		suite.Equal(apperrors.ErrInvalidCredentials.Error(), err.Error())
	}
	suite.Equal(errUnknown, errOAuth)
	suite.Equal(errOAuth, errWrong)
}

func (suite *AuthServiceTestSuite) TestAuthenticate_InactiveUser() {
	ctx := context.Background()
	user := suite.register("inactive@example.com", "password123")
	user.IsActive = false
	suite.Require().NoError(suite.users.UpdateUser(ctx, *user))

	_, err := suite.service.Authenticate(ctx, "inactive@example.com", "password123")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLogin_IssuesTokensAndSession() {
	ctx := context.Background()
	user := suite.register("login@example.com", "password123")

	tokens, err := suite.service.Login(ctx, "login@example.com", "password123", domain.DeviceInfo{"user_agent": "test"})
	suite.Require().NoError(err)

	suite.Equal("bearer", tokens.TokenType)
	suite.NotEmpty(tokens.AccessToken)
	suite.NotEmpty(tokens.RefreshToken)
	suite.Equal(suite.clock.Now().Add(30*time.Minute), tokens.AccessTokenExpiresAt)

	subject, err := suite.tokens.VerifyAccess(tokens.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.ID, subject)

	session, err := suite.sessions.FindByToken(ctx, utils.HashRefreshToken(tokens.RefreshToken), suite.clock.Now())
	suite.Require().NoError(err)
	suite.Equal(user.ID, session.UserID)
	suite.Equal("test", session.DeviceInfo["user_agent"])
	suite.Equal(suite.clock.Now().Add(7*24*time.Hour), session.ExpiresAt)

	// last_login stays untouched
	stored, err := suite.users.FindUserByID(ctx, user.ID)
	suite.Require().NoError(err)
	suite.Nil(stored.LastLogin)
}

func (suite *AuthServiceTestSuite) TestLogin_RehashesLegacyDigest() {
	ctx := context.Background()
	legacy, err := bcrypt.GenerateFromPassword([]byte("legacypass"), bcrypt.MinCost)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.users.SaveUser(ctx, domain.User{
		ID: "legacy", Email: "legacy@example.com", PasswordHash: string(legacy),
		AuthProvider: domain.AuthProviderEmail, IsActive: true,
	}))

	_, err = suite.service.Login(ctx, "legacy@example.com", "legacypass", nil)
	suite.Require().NoError(err)

	stored, err := suite.users.FindUserByID(ctx, "legacy")
	suite.Require().NoError(err)
	suite.False(testHasher.NeedsRehash(stored.PasswordHash))
	suite.True(testHasher.Verify("legacypass", stored.PasswordHash))
}

func (suite *AuthServiceTestSuite) TestLogin_InvalidCredentialsCreatesNoSession() {
	suite.register("nosession@example.com", "password123")
	_, err := suite.service.Login(context.Background(), "nosession@example.com", "bad-password", nil)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
	suite.Empty(suite.sessions.byID)
}

// --- Refresh / Logout ---

func (suite *AuthServiceTestSuite) TestRefresh_RotatesSession() {
	ctx := context.Background()
	suite.register("refresh@example.com", "password123")
	first, err := suite.service.Login(ctx, "refresh@example.com", "password123", nil)
	suite.Require().NoError(err)

	suite.clock.Advance(time.Minute)
	second, err := suite.service.Refresh(ctx, first.RefreshToken, domain.DeviceInfo{"device_name": "phone"})
	suite.Require().NoError(err)
	suite.NotEqual(first.RefreshToken, second.RefreshToken)

	// the old token cannot be redeemed again
	_, err = suite.service.Refresh(ctx, first.RefreshToken, nil)
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)

	_, err = suite.service.Refresh(ctx, second.RefreshToken, nil)
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestRefresh_ExpiredAndUnknownAreUniform() {
	ctx := context.Background()
	suite.register("expire@example.com", "password123")
	tokens, err := suite.service.Login(ctx, "expire@example.com", "password123", nil)
	suite.Require().NoError(err)

	_, errUnknown := suite.service.Refresh(ctx, "never-issued", nil)

	suite.clock.Advance(7 * 24 * time.Hour)
	_, errExpired := suite.service.Refresh(ctx, tokens.RefreshToken, nil)

	suite.ErrorIs(errUnknown, apperrors.ErrSessionNotFound)
	suite.ErrorIs(errExpired, apperrors.ErrSessionNotFound)
	suite.Equal(errUnknown.Error(), errExpired.Error())
}

func (suite *AuthServiceTestSuite) TestSessions_AreIndependent() {
	ctx := context.Background()
	suite.register("multi@example.com", "password123")
	a, err := suite.service.Login(ctx, "multi@example.com", "password123", domain.DeviceInfo{"device_name": "laptop"})
	suite.Require().NoError(err)
	b, err := suite.service.Login(ctx, "multi@example.com", "password123", domain.DeviceInfo{"device_name": "phone"})
	suite.Require().NoError(err)
	suite.NotEqual(a.RefreshToken, b.RefreshToken)

	suite.Require().NoError(suite.service.Logout(ctx, a.RefreshToken))

	suite.ErrorIs(suite.service.Logout(ctx, a.RefreshToken), apperrors.ErrSessionNotFound)
	_, err = suite.service.Refresh(ctx, a.RefreshToken, nil)
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)

	_, err = suite.sessions.FindByToken(ctx, utils.HashRefreshToken(b.RefreshToken), suite.clock.Now())
	suite.NoError(err)
}

func (suite *AuthServiceTestSuite) TestLogoutAll() {
	ctx := context.Background()
	user := suite.register("all@example.com", "password123")
	for i := 0; i < 3; i++ {
		_, err := suite.service.Login(ctx, "all@example.com", "password123", nil)
		suite.Require().NoError(err)
	}

	n, err := suite.service.LogoutAll(ctx, user.ID)
	suite.Require().NoError(err)
	suite.Equal(int64(3), n)
	suite.Empty(suite.sessions.byID)
}

func (suite *AuthServiceTestSuite) TestRefresh_InactiveOwner() {
	ctx := context.Background()
	user := suite.register("gone@example.com", "password123")
	tokens, err := suite.service.Login(ctx, "gone@example.com", "password123", nil)
	suite.Require().NoError(err)

	user.IsActive = false
	suite.Require().NoError(suite.users.UpdateUser(ctx, *user))

	_, err = suite.service.Refresh(ctx, tokens.RefreshToken, nil)
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)
}

// --- CurrentUser ---

func (suite *AuthServiceTestSuite) TestCurrentUser() {
	ctx := context.Background()
	user := suite.register("me@example.com", "password123")
	tokens, err := suite.service.Login(ctx, "me@example.com", "password123", nil)
	suite.Require().NoError(err)

	current, err := suite.service.CurrentUser(ctx, tokens.AccessToken)
	suite.Require().NoError(err)
	suite.Equal(user.ID, current.ID)

	suite.clock.Advance(30 * time.Minute)
	_, err = suite.service.CurrentUser(ctx, tokens.AccessToken)
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)

	_, err = suite.service.CurrentUser(ctx, "garbage")
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)
}

func (suite *AuthServiceTestSuite) TestCurrentUser_UnknownSubject() {
	token, _, err := suite.tokens.IssueAccess("does-not-exist", time.Minute)
	suite.Require().NoError(err)

	_, err = suite.service.CurrentUser(context.Background(), token)
	suite.ErrorIs(err, apperrors.ErrTokenInvalid)
}

// --- Google ---

func (suite *AuthServiceTestSuite) TestLoginWithGoogle_CreatesAccount() {
	ctx := context.Background()
	identity := domain.GoogleIdentity{Subject: "g-1", Email: "g@example.com", EmailVerified: true, Name: "G User", Picture: "https://img/g.png"}

	tokens, err := suite.service.LoginWithGoogle(ctx, identity, nil)
	suite.Require().NoError(err)
	suite.Equal(domain.AuthProviderGoogle, tokens.User.AuthProvider)
	suite.False(tokens.User.HasPassword())
	suite.Require().NotNil(tokens.User.AvatarURL)
	suite.Equal("https://img/g.png", *tokens.User.AvatarURL)

	again, err := suite.service.LoginWithGoogle(ctx, identity, nil)
	suite.Require().NoError(err)
	suite.Equal(tokens.User.ID, again.User.ID)
	suite.Equal(1, suite.users.count())

	// the Google account never accepts a password
	_, err = suite.service.Authenticate(ctx, "g@example.com", "")
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

func (suite *AuthServiceTestSuite) TestLoginWithGoogle_RefusesEmailAccount() {
	suite.register("taken@example.com", "password123")
	_, err := suite.service.LoginWithGoogle(context.Background(), domain.GoogleIdentity{Email: "taken@example.com", EmailVerified: true}, nil)
	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
}

func (suite *AuthServiceTestSuite) TestLoginWithGoogle_UnverifiedEmail() {
	_, err := suite.service.LoginWithGoogle(context.Background(), domain.GoogleIdentity{Email: "x@example.com"}, nil)
	suite.ErrorIs(err, apperrors.ErrInvalidCredentials)
}

// --- Concurrency ---

func TestRegister_ConcurrentSameEmail(t *testing.T) {
	users := newMemUserStore()
	// every caller passes the fast-path check before any insert lands
	gate := &gatedUserStore{memUserStore: users, release: make(chan struct{})}
	clock := newTestClock()
	tokens, err := services.NewTokenService(testConfig(), clock.Now)
	require.NoError(t, err)
	svc, err := services.NewAuthService(gate, newMemSessionStore(), testHasher, tokens, clock.Now)
	require.NoError(t, err)

	const callers = 8
	gate.waiting.Add(callers)

	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Register(context.Background(), dto.CreateUserRequest{
				Email: "race@example.com", Password: fmt.Sprintf("password%d", i), FullName: "Racer",
			})
		}(i)
	}
	gate.waiting.Wait()
	close(gate.release)
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateAccount)
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, users.count())
}

// gatedUserStore holds every FindUserByEmail until all callers have arrived.
type gatedUserStore struct {
	*memUserStore
	waiting sync.WaitGroup
	release chan struct{}
}

func (g *gatedUserStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := g.memUserStore.FindUserByEmail(ctx, email)
	g.waiting.Done()
	<-g.release
	return u, err
}

// --- Error paths with mocks ---

type AuthServiceMockTestSuite struct {
	suite.Suite
	mockUserRepo    *MockUserRepository
	mockSessionRepo *MockSessionRepository
	service         *services.AuthService
}

func (suite *AuthServiceMockTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockSessionRepo = new(MockSessionRepository)
	clock := newTestClock()
	tokens, err := services.NewTokenService(testConfig(), clock.Now)
	suite.Require().NoError(err)
	svc, err := services.NewAuthService(suite.mockUserRepo, suite.mockSessionRepo, testHasher, tokens, clock.Now)
	suite.Require().NoError(err)
	suite.service = svc
}

func TestAuthServiceMockTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceMockTestSuite))
}

func (suite *AuthServiceMockTestSuite) TestRegister_InsertRaceIsDuplicateAccount() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "late@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(fmt.Errorf("failed to save user: %w", apperrors.ErrDuplicate)).Once()

	user, err := suite.service.Register(ctx, dto.CreateUserRequest{Email: "late@example.com", Password: "password123", FullName: "Late"})

	suite.Nil(user)
	suite.ErrorIs(err, apperrors.ErrDuplicateAccount)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceMockTestSuite) TestRegister_RepoError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "err@example.com").Return(nil, assert.AnError).Once()

	_, err := suite.service.Register(ctx, dto.CreateUserRequest{Email: "err@example.com", Password: "password123", FullName: "Err"})

	suite.ErrorIs(err, assert.AnError)
	suite.False(errors.Is(err, apperrors.ErrDuplicateAccount))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *AuthServiceMockTestSuite) TestLogin_TokenCollisionIsGenerationError() {
	ctx := context.Background()
	digest, err := testHasher.Hash("password123")
	suite.Require().NoError(err)
	user := &domain.User{ID: "u-1", Email: "c@example.com", PasswordHash: digest, AuthProvider: domain.AuthProviderEmail, IsActive: true}

	suite.mockUserRepo.On("FindUserByEmail", ctx, "c@example.com").Return(user, nil).Once()
	suite.mockSessionRepo.On("Create", ctx, mock.AnythingOfType("domain.Session")).
		Return("", fmt.Errorf("insert session: %w", apperrors.ErrDuplicate)).Once()

	_, err = suite.service.Login(ctx, "c@example.com", "password123", nil)
	suite.ErrorIs(err, apperrors.ErrTokenGeneration)
	suite.mockSessionRepo.AssertExpectations(suite.T())
}

func (suite *AuthServiceMockTestSuite) TestAuthenticate_LookupError() {
	ctx := context.Background()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "db@example.com").Return(nil, assert.AnError).Once()

	_, err := suite.service.Authenticate(ctx, "db@example.com", "password123")
	suite.ErrorIs(err, assert.AnError)
	suite.False(errors.Is(err, apperrors.ErrInvalidCredentials))
}

func (suite *AuthServiceMockTestSuite) TestRefresh_LostRace() {
	ctx := context.Background()
	session := &domain.Session{ID: "s-1", UserID: "u-1", ExpiresAt: time.Now().Add(time.Hour)}
	suite.mockSessionRepo.On("FindByToken", ctx, utils.HashRefreshToken("tok"), mock.AnythingOfType("time.Time")).Return(session, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, "u-1").Return(&domain.User{ID: "u-1", IsActive: true}, nil).Once()
	suite.mockSessionRepo.On("Delete", ctx, "s-1").Return(apperrors.ErrNotFound).Once()

	_, err := suite.service.Refresh(ctx, "tok", nil)
	suite.ErrorIs(err, apperrors.ErrSessionNotFound)
	suite.mockSessionRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}
