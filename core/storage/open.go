package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/pierrec/lz4/v4"
)

// Lz4Suffix marks objects and files stored as lz4 frames.
const Lz4Suffix = ".lz4"

// OpenObject streams an object from the bucket. Objects ending in ".lz4" are
// decompressed on the fly.
func OpenObject(ctx context.Context, client Client, bucket, name string) (io.ReadCloser, error) {
	obj, err := client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object %s: %w", name, err)
	}
	return maybeDecompress(name, obj), nil
}

// OpenFile opens a local file. Files ending in ".lz4" are decompressed on the fly.
func OpenFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return maybeDecompress(path, f), nil
}

// Opener returns a reader for name from either the local filesystem or the
// bucket, depending on source ("file" or "storage").
func Opener(source string, client Client, bucket string) func(ctx context.Context, name string) (io.ReadCloser, error) {
	return func(ctx context.Context, name string) (io.ReadCloser, error) {
		switch source {
		case SourceFile:
			return OpenFile(name)
		case SourceStorage:
			if client == nil {
				return nil, fmt.Errorf("storage source requested for %s without a storage client", name)
			}
			return OpenObject(ctx, client, bucket, name)
		default:
			return nil, fmt.Errorf("unknown source %q", source)
		}
	}
}

const (
	SourceFile    = "file"
	SourceStorage = "storage"
)

type lz4ReadCloser struct {
	*lz4.Reader
	underlying io.Closer
}

func (r *lz4ReadCloser) Close() error {
	return r.underlying.Close()
}

func maybeDecompress(name string, rc io.ReadCloser) io.ReadCloser {
	if !strings.HasSuffix(strings.ToLower(name), Lz4Suffix) {
		return rc
	}
	return &lz4ReadCloser{Reader: lz4.NewReader(rc), underlying: rc}
}
