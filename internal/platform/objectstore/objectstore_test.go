package objectstore

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"cloud.google.com/go/storage"
	"github.com/minio/minio-go/v7"
	"github.com/phrazzld/quizgen/internal/config"
	"github.com/phrazzld/quizgen/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func staticOpen(objects map[string][]byte) openFunc {
	return func(_ context.Context, key string) (io.ReadCloser, error) {
		data, ok := objects[key]
		if !ok {
			return nil, errors.New("unexpected key " + key)
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	}
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	text, err := decodeText([]byte("plain text"))
	require.NoError(t, err)
	assert.Equal(t, "plain text", text)

	text, err = decodeText(append([]byte{0xEF, 0xBB, 0xBF}, []byte("with bom ✓")...))
	require.NoError(t, err)
	assert.Equal(t, "with bom ✓", text)

	_, err = decodeText([]byte{0xff, 0xfe, 0x00})
	assert.ErrorIs(t, err, ErrNotText)
}

func TestMinioStore_Get(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	ctx := context.Background()

	t.Run("reads text", func(t *testing.T) {
		t.Parallel()

		s := newMinioStore(staticOpen(map[string][]byte{"doc.txt": []byte("hello")}), "docs", log)
		text, err := s.Get(ctx, "doc.txt")
		require.NoError(t, err)
		assert.Equal(t, "hello", text)
	})

	t.Run("missing key surfaces on read", func(t *testing.T) {
		t.Parallel()

		open := func(context.Context, string) (io.ReadCloser, error) {
			return io.NopCloser(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}}), nil
		}
		_, err := newMinioStore(open, "docs", log).Get(ctx, "gone.txt")
		assert.ErrorIs(t, err, ErrObjectNotFound)
		assert.Contains(t, err.Error(), "gone.txt")
	})

	t.Run("other errors propagate", func(t *testing.T) {
		t.Parallel()

		cause := minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403}
		open := func(context.Context, string) (io.ReadCloser, error) { return nil, cause }
		_, err := newMinioStore(open, "docs", log).Get(ctx, "doc.txt")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		big := bytes.Repeat([]byte("a"), MaxObjectSize+1)
		s := newMinioStore(staticOpen(map[string][]byte{"big.txt": big}), "docs", log)
		_, err := s.Get(ctx, "big.txt")
		assert.ErrorIs(t, err, ErrObjectTooLarge)
	})
}

func TestGCSStore_Get(t *testing.T) {
	t.Parallel()

	log, _ := logger.NewTestLogger()
	ctx := context.Background()

	t.Run("reads text", func(t *testing.T) {
		t.Parallel()

		s := newGCSStore(staticOpen(map[string][]byte{"a/b.md": []byte(strings.Repeat("é", 10))}), "docs", log)
		text, err := s.Get(ctx, "a/b.md")
		require.NoError(t, err)
		assert.Equal(t, strings.Repeat("é", 10), text)
	})

	t.Run("missing object", func(t *testing.T) {
		t.Parallel()

		open := func(context.Context, string) (io.ReadCloser, error) { return nil, storage.ErrObjectNotExist }
		_, err := newGCSStore(open, "docs", log).Get(ctx, "gone.md")
		assert.ErrorIs(t, err, ErrObjectNotFound)
	})

	t.Run("binary object", func(t *testing.T) {
		t.Parallel()

		s := newGCSStore(staticOpen(map[string][]byte{"img.png": {0x89, 0x50, 0x4e, 0x47, 0xff}}), "docs", log)
		_, err := s.Get(ctx, "img.png")
		assert.ErrorIs(t, err, ErrNotText)
	})
}

func TestNew_UnknownBackend(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), config.StorageConfig{Backend: "ftp"}, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNew_Minio(t *testing.T) {
	t.Parallel()

	reader, err := New(context.Background(), config.StorageConfig{
		Backend:   "minio",
		Endpoint:  "localhost:9000",
		AccessKey: "minio",
		SecretKey: "minio123",
		Bucket:    "documents",
	}, nil)
	require.NoError(t, err)
	assert.IsType(t, &MinioStore{}, reader)
}
