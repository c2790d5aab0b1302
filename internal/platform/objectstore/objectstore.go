package objectstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/phrazzld/quizgen/internal/config"
)

// MaxObjectSize bounds the size of a document read into memory.
const MaxObjectSize = 16 << 20

var (
	// ErrObjectNotFound is returned when no object exists under the key.
	ErrObjectNotFound = errors.New("object not found")

	// ErrNotText is returned when an object is not valid UTF-8 text.
	ErrNotText = errors.New("object is not UTF-8 text")

	// ErrObjectTooLarge is returned when an object exceeds MaxObjectSize.
	ErrObjectTooLarge = errors.New("object too large")

	// ErrUnknownBackend is returned by New for an unsupported storage backend.
	ErrUnknownBackend = errors.New("unknown storage backend")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Reader returns the text stored under a key.
type Reader interface {
	Get(ctx context.Context, key string) (string, error)
}

// openFunc opens the object stored under key.
type openFunc func(ctx context.Context, key string) (io.ReadCloser, error)

// New creates the Reader selected by cfg.Backend.
func New(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (Reader, error) {
	switch cfg.Backend {
	case "minio":
		return NewMinioStore(cfg, logger)
	case "gcs":
		return NewGCSStore(ctx, cfg.Bucket, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// readObject reads and decodes one object; notFound maps a backend error to
// whether it means the object does not exist.
func readObject(ctx context.Context, open openFunc, key string, notFound func(error) bool) (string, error) {
	rc, err := open(ctx, key)
	if err != nil {
		return "", wrapReadError(key, err, notFound)
	}
	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(io.LimitReader(rc, MaxObjectSize+1))
	if err != nil {
		return "", wrapReadError(key, err, notFound)
	}

	if len(data) > MaxObjectSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrObjectTooLarge, key, MaxObjectSize)
	}

	text, err := decodeText(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, key)
	}
	return text, nil
}

func wrapReadError(key string, err error, notFound func(error) bool) error {
	if notFound(err) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return fmt.Errorf("failed to read object %s: %w", key, err)
}

// decodeText validates data as UTF-8 and strips a leading byte order mark.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", ErrNotText
	}
	return string(data), nil
}
