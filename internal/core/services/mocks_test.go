package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/apperrors"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/core/domain"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/platform/config"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils"
	"github.com/Tayyab-Hussayn/Web-Content-writer/internal/utils/pagination"
	"github.com/stretchr/testify/mock"
)

var testHasher = utils.NewArgon2idHasher(utils.Argon2Params{Time: 1, Memory: 1024, Threads: 1, SaltLen: 16, KeyLen: 32})

func testConfig() *config.Config {
	return &config.Config{
		Environment:                config.EnvDevelopment,
		SecretKey:                  "test-secret-key-that-is-at-least-32-bytes",
		Algorithm:                  "HS256",
		JWTIssuer:                  "acw-test",
		AccessTokenExpiry:          30 * time.Minute,
		RefreshTokenExpiryDuration: 7 * 24 * time.Hour,
		SessionSweepInterval:       time.Hour,
		DatabaseURL:                "postgres://unused",
		MaxUploadBytes:             1 << 20,
	}
}

// testClock is a settable clock shared by the services under test.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePasswordHash(ctx context.Context, userID, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

// --- Mock SessionRepository ---
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) FindByToken(ctx context.Context, tokenHash string, now time.Time) (*domain.Session, error) {
	args := m.Called(ctx, tokenHash, now)
	var s *domain.Session
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Session)
	}
	return s, args.Error(1)
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	var s *domain.Session
	if args.Get(0) != nil {
		s = args.Get(0).(*domain.Session)
	}
	return s, args.Error(1)
}

func (m *MockSessionRepository) Create(ctx context.Context, session domain.Session) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock GenerationRepository ---
type MockGenerationRepository struct {
	mock.Mock
}

func (m *MockGenerationRepository) FindGenerationByID(ctx context.Context, userID, generationID string) (*domain.Generation, error) {
	args := m.Called(ctx, userID, generationID)
	var g *domain.Generation
	if args.Get(0) != nil {
		g = args.Get(0).(*domain.Generation)
	}
	return g, args.Error(1)
}

func (m *MockGenerationRepository) ListGenerationsByUser(ctx context.Context, userID string, limit int, cursor *pagination.Cursor) ([]domain.Generation, error) {
	args := m.Called(ctx, userID, limit, cursor)
	var g []domain.Generation
	if args.Get(0) != nil {
		g = args.Get(0).([]domain.Generation)
	}
	return g, args.Error(1)
}

func (m *MockGenerationRepository) SaveGeneration(ctx context.Context, generation domain.Generation, usage domain.UsageLog) error {
	args := m.Called(ctx, generation, usage)
	return args.Error(0)
}

// --- Mock UsageRepository ---
type MockUsageRepository struct {
	mock.Mock
}

func (m *MockUsageRepository) SaveUsageLog(ctx context.Context, usage domain.UsageLog) error {
	args := m.Called(ctx, usage)
	return args.Error(0)
}

func (m *MockUsageRepository) SumTokensSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, since)
	return args.Get(0).(int64), args.Error(1)
}

// --- In-memory stores with the same uniqueness guarantees as the database ---

type memUserStore struct {
	mu      sync.Mutex
	byID    map[string]domain.User
	byEmail map[string]string
	inserts int
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: map[string]domain.User{}, byEmail: map[string]string{}}
}

func (s *memUserStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	u := s.byID[id]
	return &u, nil
}

func (s *memUserStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byEmail[user.Email]; taken {
		return apperrors.ErrDuplicate
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user.ID
	s.inserts++
	return nil
}

func (s *memUserStore) UpdateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	s.byID[user.ID] = user
	return nil
}

func (s *memUserStore) UpdatePasswordHash(_ context.Context, userID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.byID[userID] = u
	return nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

type memSessionStore struct {
	mu     sync.Mutex
	byID   map[string]domain.Session
	byHash map[string]string
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{byID: map[string]domain.Session{}, byHash: map[string]string{}}
}

func (s *memSessionStore) Create(_ context.Context, session domain.Session) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byHash[session.RefreshTokenHash]; taken {
		return "", apperrors.ErrDuplicate
	}
	s.byID[session.ID] = session
	s.byHash[session.RefreshTokenHash] = session.ID
	return session.ID, nil
}

func (s *memSessionStore) FindByToken(_ context.Context, tokenHash string, now time.Time) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byHash[tokenHash]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	sess := s.byID[id]
	if !sess.IsValidAt(now) {
		return nil, apperrors.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessionStore) FindByID(_ context.Context, sessionID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &sess, nil
}

func (s *memSessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byID[sessionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	delete(s.byID, sessionID)
	delete(s.byHash, sess.RefreshTokenHash)
	return nil
}

func (s *memSessionStore) DeleteByUser(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.byID {
		if sess.UserID == userID {
			delete(s.byID, id)
			delete(s.byHash, sess.RefreshTokenHash)
			n++
		}
	}
	return n, nil
}

func (s *memSessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, sess := range s.byID {
		if !sess.IsValidAt(now) {
			delete(s.byID, id)
			delete(s.byHash, sess.RefreshTokenHash)
			n++
		}
	}
	return n, nil
}
