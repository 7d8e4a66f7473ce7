package httpserver

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/platform/jwt"
	"github.com/ayusharma-ctrl/Spyne/internal/port/storage"
	"github.com/ayusharma-ctrl/Spyne/internal/usecase"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockCarRepository struct {
	mock.Mock
}

func (m *MockCarRepository) Create(ctx context.Context, car *entity.Car) (string, error) {
	args := m.Called(ctx, car)
	return args.String(0), args.Error(1)
}

func (m *MockCarRepository) Update(ctx context.Context, car *entity.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *MockCarRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCarRepository) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	args := m.Called(ctx, id)
	var car *entity.Car
	if args.Get(0) != nil {
		car = args.Get(0).(*entity.Car)
	}
	return car, args.Error(1)
}

func (m *MockCarRepository) Search(ctx context.Context, query string, page, limit int) ([]*entity.Car, error) {
	args := m.Called(ctx, query, page, limit)
	var cars []*entity.Car
	if args.Get(0) != nil {
		cars = args.Get(0).([]*entity.Car)
	}
	return cars, args.Error(1)
}

func (m *MockCarRepository) Count(ctx context.Context, query string) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	var user *entity.User
	if args.Get(0) != nil {
		user = args.Get(0).(*entity.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	var val []byte
	if args.Get(0) != nil {
		val = args.Get(0).([]byte)
	}
	return val, args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteByPrefix(ctx context.Context, prefix string) error {
	args := m.Called(ctx, prefix)
	return args.Error(0)
}

type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStorage) RemoveBatch(ctx context.Context, fileURLs []string) []storage.RemoveResult {
	args := m.Called(ctx, fileURLs)
	var results []storage.RemoveResult
	if args.Get(0) != nil {
		results = args.Get(0).([]storage.RemoveResult)
	}
	return results
}

const testSessionTTL = 15 * 24 * time.Hour

// testEnv wires real use cases over mocked ports behind the production
// router, so every request passes through the same middleware chain.
type testEnv struct {
	carRepo  *MockCarRepository
	userRepo *MockUserRepository
	cache    *MockCacheRepository
	media    *MockMediaStorage
	tokens   *jwt.TokenManager
	router   *chi.Mux
}

func newTestEnv(t *testing.T, apiKey string) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	env := &testEnv{
		carRepo:  new(MockCarRepository),
		userRepo: new(MockUserRepository),
		cache:    new(MockCacheRepository),
		media:    new(MockMediaStorage),
		tokens:   jwt.NewTokenManager("test-secret", testSessionTTL),
	}

	userUC := usecase.NewUserUseCase(env.userRepo, env.tokens, logger)
	queryUC := usecase.NewCarQueryUseCase(env.carRepo, env.cache, logger)
	mutationUC := usecase.NewCarMutationUseCase(env.carRepo, env.media, env.cache, nil, logger)

	authHandler := NewAuthHandler(userUC, env.tokens, testSessionTTL, false, logger)
	carHandler := NewCarHandler(queryUC, mutationUC, logger)

	env.router = NewRouter(authHandler, carHandler, env.tokens, apiKey, 30*time.Second, logger)
	return env
}

// sessionCookieFor issues a valid session token for the given user and
// wraps it in the cookie the auth middleware expects.
func (e *testEnv) sessionCookieFor(t *testing.T, userID string) *http.Cookie {
	t.Helper()
	token, err := e.tokens.Issue(userID, "owner@example.com")
	if err != nil {
		t.Fatalf("failed to issue session token: %v", err)
	}
	return &http.Cookie{Name: tokenCookieName, Value: token}
}
