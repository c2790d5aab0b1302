package objectstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"cloud.google.com/go/storage"
	"github.com/phrazzld/quizgen/internal/platform/logger"
)

// GCSStore reads documents from a Google Cloud Storage bucket using
// application default credentials.
type GCSStore struct {
	open   openFunc
	bucket string
	logger *slog.Logger
}

// NewGCSStore creates a GCSStore for bucket.
func NewGCSStore(ctx context.Context, bucket string, logger *slog.Logger) (*GCSStore, error) {
	if logger == nil {
		logger = slog.Default()
	}

	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	open := func(ctx context.Context, key string) (io.ReadCloser, error) {
		return client.Bucket(bucket).Object(key).NewReader(ctx)
	}

	return newGCSStore(open, bucket, logger), nil
}

func newGCSStore(open openFunc, bucket string, logger *slog.Logger) *GCSStore {
	return &GCSStore{
		open:   open,
		bucket: bucket,
		logger: logger.With("component", "gcs_store", "bucket", bucket),
	}
}

// Get returns the text of the object stored under key.
func (s *GCSStore) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	text, err := readObject(ctx, s.open, key, isGCSNotFound)
	if err != nil {
		log.ErrorContext(ctx, "failed to read document", "key", key, "error", err)
		return "", err
	}

	log.DebugContext(ctx, "document read", "key", key, "size", len(text))
	return text, nil
}

func isGCSNotFound(err error) bool {
	return errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist)
}
