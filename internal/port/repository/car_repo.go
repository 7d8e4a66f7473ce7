package repository

import (
	"context"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
)

// CarRepository wraps the cars collection. Search and GetByID return cars
// with the owner's username already joined in.
type CarRepository interface {
	Create(ctx context.Context, car *entity.Car) (string, error)
	Update(ctx context.Context, car *entity.Car) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*entity.Car, error)
	// Search matches query as a case-insensitive substring against title,
	// company and description (empty query matches all), ordered by
	// creation time descending, skipping (page-1)*limit records.
	Search(ctx context.Context, query string, page, limit int) ([]*entity.Car, error)
	// Count returns the total number of cars matching the same filter Search uses.
	Count(ctx context.Context, query string) (int64, error)
}
