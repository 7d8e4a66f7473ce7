package redis

import (
	"context"
	"testing"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/port/cache"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisCacheRepository_GetHit(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectGet("search:toyota:1:10").SetVal(`{"cars":[]}`)

	val, err := repo.Get(context.Background(), "search:toyota:1:10")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"cars":[]}`), val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRepository_GetMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectGet("search:ghost:1:10").RedisNil()

	_, err := repo.Get(context.Background(), "search:ghost:1:10")
	assert.ErrorIs(t, err, cache.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRepository_SetWithTTL(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectSet("search:toyota:1:10", []byte("payload"), 5*time.Minute).SetVal("OK")

	err := repo.Set(context.Background(), "search:toyota:1:10", []byte("payload"), 5*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRepository_Delete(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectDel("search:toyota:1:10").SetVal(1)

	err := repo.Delete(context.Background(), "search:toyota:1:10")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRepository_DeleteByPrefixSweepsAllPages(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectScan(0, "search:*", 200).SetVal([]string{"search:a:1:10", "search:b:1:10"}, 7)
	mock.ExpectDel("search:a:1:10", "search:b:1:10").SetVal(2)
	mock.ExpectScan(7, "search:*", 200).SetVal([]string{"search:c:2:5"}, 0)
	mock.ExpectDel("search:c:2:5").SetVal(1)

	err := repo.DeleteByPrefix(context.Background(), "search:")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCacheRepository_DeleteByPrefixNoMatches(t *testing.T) {
	client, mock := redismock.NewClientMock()
	repo := NewRedisCacheRepository(client, zap.NewNop())

	mock.ExpectScan(0, "search:*", 200).SetVal([]string{}, 0)

	err := repo.DeleteByPrefix(context.Background(), "search:")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
