package usecase

import (
	"context"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/port/storage"
	"github.com/stretchr/testify/mock"
)

type MockCarRepository struct{ mock.Mock }

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
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Car), args.Error(1)
}
func (m *MockCarRepository) Search(ctx context.Context, query string, page, limit int) ([]*entity.Car, error) {
	args := m.Called(ctx, query, page, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Car), args.Error(1)
}
func (m *MockCarRepository) Count(ctx context.Context, query string) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}
func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}
func (m *MockUserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	args := m.Called(ctx, username, email)
	return args.Bool(0), args.Error(1)
}

type MockCacheRepository struct{ mock.Mock }

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
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

type MockMediaStorage struct{ mock.Mock }

func (m *MockMediaStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	args := m.Called(ctx, fileName, data)
	return args.String(0), args.Error(1)
}
func (m *MockMediaStorage) RemoveBatch(ctx context.Context, fileURLs []string) []storage.RemoveResult {
	args := m.Called(ctx, fileURLs)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]storage.RemoveResult)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishCarCreated(ctx context.Context, car *entity.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishCarUpdated(ctx context.Context, car *entity.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}
func (m *MockEventPublisher) PublishCarDeleted(ctx context.Context, carID string) error {
	args := m.Called(ctx, carID)
	return args.Error(0)
}
