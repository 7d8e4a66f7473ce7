package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ayusharma-ctrl/Spyne/internal/entity"
	"github.com/ayusharma-ctrl/Spyne/internal/port/cache"
	"github.com/ayusharma-ctrl/Spyne/internal/port/repository"
	"github.com/ayusharma-ctrl/Spyne/internal/port/storage"
	"go.uber.org/zap"
)

// MaxImagesPerCar bounds how many image files a single create request may
// carry, matching the image-0..image-9 form field scheme.
const MaxImagesPerCar = 10

type EventPublisher interface {
	PublishCarCreated(ctx context.Context, car *entity.Car) error
	PublishCarUpdated(ctx context.Context, car *entity.Car) error
	PublishCarDeleted(ctx context.Context, carID string) error
}

// ImageUpload is one raw image payload received from a multipart form.
type ImageUpload struct {
	FileName string
	Data     []byte
}

// CarInput carries every mutable listing field. Updates replace all of
// them at once; there is no partial patch.
type CarInput struct {
	Title       string
	Description string
	Company     string
	Engine      entity.Engine
	Segment     entity.Segment
	Dealer      string
}

type CarMutationUseCase struct {
	carRepo   repository.CarRepository
	media     storage.MediaStorage
	cacheRepo cache.CacheRepository
	publisher EventPublisher
	logger    *zap.Logger
}

func NewCarMutationUseCase(
	cr repository.CarRepository,
	media storage.MediaStorage,
	cache cache.CacheRepository,
	pub EventPublisher,
	log *zap.Logger,
) *CarMutationUseCase {
	return &CarMutationUseCase{
		carRepo:   cr,
		media:     media,
		cacheRepo: cache,
		publisher: pub,
		logger:    log,
	}
}

func validateCarInput(input CarInput) error {
	if !input.Engine.Valid() {
		return fmt.Errorf("%w: invalid engine type %q", ErrInvalidCarData, input.Engine)
	}
	if !input.Segment.Valid() {
		return fmt.Errorf("%w: invalid car segment %q", ErrInvalidCarData, input.Segment)
	}
	return nil
}

// Create validates the enum fields before any upload, uploads the images
// sequentially, writes the listing and invalidates the search cache. A
// failed upload aborts the whole operation; images uploaded earlier in the
// same call are left orphaned in the media store.
func (uc *CarMutationUseCase) Create(ctx context.Context, ownerID string, input CarInput, images []ImageUpload) (*entity.Car, error) {
	if err := validateCarInput(input); err != nil {
		return nil, err
	}

	imageURLs := make([]string, 0, len(images))
	for _, img := range images {
		url, err := uc.media.Upload(ctx, img.FileName, img.Data)
		if err != nil {
			uc.logger.Error("Aborting create after failed image upload",
				zap.Error(err),
				zap.String("file_name", img.FileName),
				zap.Int("orphaned_uploads", len(imageURLs)))
			return nil, fmt.Errorf("CarMutationUseCase.Create: failed to upload image: %w", err)
		}
		imageURLs = append(imageURLs, url)
	}

	now := time.Now()
	car := &entity.Car{
		Title:       input.Title,
		Description: input.Description,
		Company:     input.Company,
		Engine:      input.Engine,
		Segment:     input.Segment,
		Dealer:      input.Dealer,
		Images:      imageURLs,
		UserID:      ownerID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	carID, err := uc.carRepo.Create(ctx, car)
	if err != nil {
		uc.logger.Error("Failed to create car in repository", zap.Error(err), zap.String("user_id", ownerID))
		return nil, fmt.Errorf("CarMutationUseCase.Create: failed to create car in repo: %w", err)
	}
	car.ID = carID

	uc.invalidateSearchCache(ctx)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishCarCreated(ctx, car); errPub != nil {
			uc.logger.Warn("Failed to publish car created event", zap.Error(errPub), zap.String("car_id", car.ID))
		}
	}

	return car, nil
}

// Update replaces every mutable field of the listing. The submitted keep
// list must be a subset of the stored image URLs; anything else rejects
// the update before the media store is touched. The removed set is
// computed from the stored record, not from the client.
func (uc *CarMutationUseCase) Update(ctx context.Context, requesterID, carID string, input CarInput, keepImageURLs []string, newImages []ImageUpload) (*entity.Car, error) {
	car, err := uc.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		uc.logger.Error("Failed to get car for update", zap.Error(err), zap.String("car_id", carID))
		return nil, fmt.Errorf("CarMutationUseCase.Update: failed to get car from repo: %w", err)
	}
	if car.UserID != requesterID {
		return nil, ErrUnauthorized
	}

	if err := validateCarInput(input); err != nil {
		return nil, err
	}

	existing := make(map[string]struct{}, len(car.Images))
	for _, url := range car.Images {
		existing[url] = struct{}{}
	}

	kept := make(map[string]struct{}, len(keepImageURLs))
	images := make([]string, 0, len(keepImageURLs)+len(newImages))
	for _, url := range keepImageURLs {
		if _, ok := existing[url]; !ok {
			return nil, fmt.Errorf("%w: image %q does not belong to this listing", ErrInvalidCarData, url)
		}
		if _, dup := kept[url]; dup {
			continue
		}
		kept[url] = struct{}{}
		images = append(images, url)
	}

	removed := make([]string, 0, len(car.Images))
	for _, url := range car.Images {
		if _, ok := kept[url]; !ok {
			removed = append(removed, url)
		}
	}
	uc.removeImages(ctx, car.ID, removed)

	for _, img := range newImages {
		url, err := uc.media.Upload(ctx, img.FileName, img.Data)
		if err != nil {
			uc.logger.Error("Aborting update after failed image upload",
				zap.Error(err),
				zap.String("car_id", car.ID),
				zap.String("file_name", img.FileName))
			return nil, fmt.Errorf("CarMutationUseCase.Update: failed to upload image: %w", err)
		}
		images = append(images, url)
	}

	car.Title = input.Title
	car.Description = input.Description
	car.Company = input.Company
	car.Engine = input.Engine
	car.Segment = input.Segment
	car.Dealer = input.Dealer
	car.Images = images
	car.UpdatedAt = time.Now()

	if err := uc.carRepo.Update(ctx, car); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCarNotFound
		}
		uc.logger.Error("Failed to update car in repository", zap.Error(err), zap.String("car_id", car.ID))
		return nil, fmt.Errorf("CarMutationUseCase.Update: failed to update car in repo: %w", err)
	}

	uc.invalidateSearchCache(ctx)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishCarUpdated(ctx, car); errPub != nil {
			uc.logger.Warn("Failed to publish car updated event", zap.Error(errPub), zap.String("car_id", car.ID))
		}
	}

	return car, nil
}

// Delete removes the listing's images from the media store (best effort),
// deletes the record and invalidates the search cache.
func (uc *CarMutationUseCase) Delete(ctx context.Context, requesterID, carID string) error {
	car, err := uc.carRepo.GetByID(ctx, carID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		uc.logger.Error("Failed to get car for delete", zap.Error(err), zap.String("car_id", carID))
		return fmt.Errorf("CarMutationUseCase.Delete: failed to get car from repo: %w", err)
	}
	if car.UserID != requesterID {
		return ErrUnauthorized
	}

	uc.removeImages(ctx, car.ID, car.Images)

	if err := uc.carRepo.Delete(ctx, car.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCarNotFound
		}
		uc.logger.Error("Failed to delete car from repository", zap.Error(err), zap.String("car_id", car.ID))
		return fmt.Errorf("CarMutationUseCase.Delete: failed to delete car from repo: %w", err)
	}

	uc.invalidateSearchCache(ctx)

	if uc.publisher != nil {
		if errPub := uc.publisher.PublishCarDeleted(ctx, car.ID); errPub != nil {
			uc.logger.Warn("Failed to publish car deleted event", zap.Error(errPub), zap.String("car_id", car.ID))
		}
	}
	return nil
}

// removeImages deletes the given URLs from the media store, one at a time.
// Failures are logged per item and never block the surrounding mutation; a
// dangling remote object is preferable to a failed delete.
func (uc *CarMutationUseCase) removeImages(ctx context.Context, carID string, urls []string) {
	if len(urls) == 0 {
		return
	}
	for _, res := range uc.media.RemoveBatch(ctx, urls) {
		if res.Err != nil {
			uc.logger.Warn("Failed to remove image from media store",
				zap.String("car_id", carID),
				zap.String("url", res.URL),
				zap.Error(res.Err))
		}
	}
}

// invalidateSearchCache sweeps the whole search namespace. The cache keys
// carry no listing ids, so there is nothing finer to target; a failed
// sweep only extends staleness up to the TTL.
func (uc *CarMutationUseCase) invalidateSearchCache(ctx context.Context) {
	if uc.cacheRepo == nil {
		return
	}
	if err := uc.cacheRepo.DeleteByPrefix(ctx, searchCachePrefix); err != nil {
		uc.logger.Warn("Failed to invalidate search cache", zap.Error(err))
	}
}
