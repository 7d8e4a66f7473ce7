package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/port/cache"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"go.uber.org/zap"
)

const (
	searchCachePrefix = "search:"
	searchCacheTTL    = 5 * time.Minute

	defaultPage  = 1
	defaultLimit = 10
)

func searchCacheKey(query string, page, limit int) string {
	return fmt.Sprintf("%s%s:%d:%d", searchCachePrefix, query, page, limit)
}

// SearchResult is one page of listings plus pagination metadata. It is
// exactly what gets serialized into the search cache, so identical
// searches within the TTL window return byte-identical pages.
type SearchResult struct {
	Cars        []*entity.Car `json:"cars"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalCount  int64         `json:"totalCount"`
}

type CarQueryUseCase struct {
	carRepo   repository.CarRepository
	cacheRepo cache.CacheRepository
	logger    *zap.Logger
}

func NewCarQueryUseCase(cr repository.CarRepository, cache cache.CacheRepository, log *zap.Logger) *CarQueryUseCase {
	return &CarQueryUseCase{
		carRepo:   cr,
		cacheRepo: cache,
		logger:    log,
	}
}

// Search serves the browse endpoint through a read-through cache. On a hit
// the repository is not touched and the TTL is not refreshed. On a miss the
// page query and the count query run concurrently, the combined page is
// cached for five minutes and returned.
func (uc *CarQueryUseCase) Search(ctx context.Context, query string, page, limit int) (*SearchResult, error) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	key := searchCacheKey(query, page, limit)
	if uc.cacheRepo != nil {
		cachedBytes, err := uc.cacheRepo.Get(ctx, key)
		if err == nil {
			var result SearchResult
			if unmarshalErr := json.Unmarshal(cachedBytes, &result); unmarshalErr == nil {
				uc.logger.Debug("Search result served from cache", zap.String("key", key))
				return &result, nil
			}
			uc.logger.Error("Failed to unmarshal search result from cache", zap.String("key", key))
			if delErr := uc.cacheRepo.Delete(ctx, key); delErr != nil {
				uc.logger.Warn("Failed to delete corrupted cache entry", zap.String("key", key), zap.Error(delErr))
			}
		} else if !errors.Is(err, cache.ErrNotFound) {
			uc.logger.Warn("Failed to get search result from cache (not a cache miss)",
				zap.String("key", key), zap.Error(err))
		}
	}

	var (
		wg       sync.WaitGroup
		cars     []*entity.Car
		total    int64
		carsErr  error
		countErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		cars, carsErr = uc.carRepo.Search(ctx, query, page, limit)
	}()
	go func() {
		defer wg.Done()
		total, countErr = uc.carRepo.Count(ctx, query)
	}()
	wg.Wait()

	if carsErr != nil {
		uc.logger.Error("Failed to search cars in repository", zap.Error(carsErr), zap.String("query", query))
		return nil, fmt.Errorf("CarQueryUseCase.Search: failed to search cars in repo: %w", carsErr)
	}
	if countErr != nil {
		uc.logger.Error("Failed to count cars in repository", zap.Error(countErr), zap.String("query", query))
		return nil, fmt.Errorf("CarQueryUseCase.Search: failed to count cars in repo: %w", countErr)
	}

	result := &SearchResult{
		Cars:        cars,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		TotalCount:  total,
	}

	if uc.cacheRepo != nil {
		resultBytes, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			uc.logger.Warn("Failed to marshal search result for caching",
				zap.Error(marshalErr), zap.String("key", key))
		} else if setErr := uc.cacheRepo.Set(ctx, key, resultBytes, searchCacheTTL); setErr != nil {
			uc.logger.Warn("Failed to set search result in cache",
				zap.Error(setErr), zap.String("key", key))
		}
	}

	return result, nil
}

func (uc *CarQueryUseCase) GetByID(ctx context.Context, id string) (*entity.Car, error) {
	car, err := uc.carRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		uc.logger.Error("Failed to get car by ID from repository", zap.Error(err), zap.String("car_id", id))
		return nil, fmt.Errorf("CarQueryUseCase.GetByID: failed to get car from repo: %w", err)
	}
	return car, nil
}
