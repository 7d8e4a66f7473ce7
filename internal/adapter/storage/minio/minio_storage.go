package minio

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/ayusharma-ctrl/Spyne/internal/config"
	"github.com/ayusharma-ctrl/Spyne/internal/port/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

type MinioStorage struct {
	client *minio.Client
	bucket string
	folder string
	logger *zap.Logger
}

func NewMinioStorage(cfg *config.MinIOConfig, logger *zap.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", cfg.Endpoint, err)
	}

	err = client.MakeBucket(context.Background(), cfg.Bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), cfg.Bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)",
				cfg.Bucket, err, errBucketExists)
		}
		logger.Info("MinIO bucket already exists", zap.String("bucket", cfg.Bucket))
	} else {
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{
		client: client,
		bucket: cfg.Bucket,
		folder: cfg.Folder,
		logger: logger,
	}, nil
}

// Upload stores the payload under a fresh uuid key inside the configured
// folder, keeping the original extension, and returns the public URL.
func (s *MinioStorage) Upload(ctx context.Context, fileName string, data []byte) (string, error) {
	ext := filepath.Ext(fileName)
	objectKey := fmt.Sprintf("%s/%s%s", s.folder, uuid.New().String(), ext)

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{})
	if err != nil {
		s.logger.Error("MinIO PutObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err))
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Debug("MinIO upload complete",
		zap.String("key", objectKey),
		zap.Int("size_bytes", len(data)),
		zap.String("url", fileURL))
	return fileURL, nil
}

func (s *MinioStorage) remove(ctx context.Context, fileURL string) error {
	objectKey := s.objectKeyFromURL(fileURL)
	if objectKey == "" {
		return fmt.Errorf("cannot derive object key from url %q", fileURL)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("MinIO RemoveObject failed",
			zap.String("bucket", s.bucket),
			zap.String("key", objectKey),
			zap.Error(err))
		return fmt.Errorf("failed to remove object %s from bucket %s: %w", objectKey, s.bucket, err)
	}
	return nil
}

func (s *MinioStorage) RemoveBatch(ctx context.Context, fileURLs []string) []storage.RemoveResult {
	results := make([]storage.RemoveResult, 0, len(fileURLs))
	for _, fileURL := range fileURLs {
		results = append(results, storage.RemoveResult{
			URL: fileURL,
			Err: s.remove(ctx, fileURL),
		})
	}
	return results
}

// objectKeyFromURL derives the storage key from a public URL: the final
// path segment without its extension, under the configured folder. Mirrors
// the key layout produced by Upload.
func (s *MinioStorage) objectKeyFromURL(fileURL string) string {
	base := path.Base(fileURL)
	if base == "." || base == "/" || base == "" {
		return ""
	}
	// A bare extension like ".jpg" is not a valid object name.
	if strings.TrimSuffix(base, path.Ext(base)) == "" {
		return ""
	}
	return s.folder + "/" + base
}
