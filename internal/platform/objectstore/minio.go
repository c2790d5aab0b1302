package objectstore

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/platform/logger"
)

// MinioStore reads documents from an S3-compatible bucket.
type MinioStore struct {
	open   openFunc
	bucket string
	logger *slog.Logger
}

// NewMinioStore creates a MinioStore for cfg.Bucket on cfg.Endpoint.
func NewMinioStore(cfg config.StorageConfig, logger *slog.Logger) (*MinioStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	bucket := cfg.Bucket
	open := func(ctx context.Context, key string) (io.ReadCloser, error) {
		return client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	}

	return newMinioStore(open, bucket, logger), nil
}

func newMinioStore(open openFunc, bucket string, logger *slog.Logger) *MinioStore {
	return &MinioStore{
		open:   open,
		bucket: bucket,
		logger: logger.With("component", "minio_store", "bucket", bucket),
	}
}

// Get returns the text of the object stored under key.
func (s *MinioStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text, err := readObject(ctx, s.open, key, isMinioNotFound)
	if err != nil {
		log.ErrorContext(ctx, "failed to read document", "key", key, "error", err)
		return "", err
	}

	log.DebugContext(ctx, "document read", "key", key, "size", len(text))
	return text, nil
}

func isMinioNotFound(err error) bool {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	default:
		return false
	}
}
