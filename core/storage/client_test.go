package storage_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"stage-alts/core/storage"
	"stage-alts/core/storage/mocks"

	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"ValidConfig", storage.Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Bucket: "b", Region: "us-east-1"}},
		{"EndpointWithHTTP", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "k", SecretKey: "s"}},
		{"EndpointWithHTTPS", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "k", SecretKey: "s", UseSSL: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			assert.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func compress(t *testing.T, data string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write([]byte(data))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("Plain", func(t *testing.T) {
		p := filepath.Join(dir, "Hashes_all")
		require.NoError(t, os.WriteFile(p, []byte("stage\n"), 0o644))
		rc, err := storage.OpenFile(p)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "stage\n", string(data))
	})

	t.Run("Lz4", func(t *testing.T) {
		p := filepath.Join(dir, "Hashes_all.lz4")
		require.NoError(t, os.WriteFile(p, compress(t, "stage\nnormal\n"), 0o644))
		rc, err := storage.OpenFile(p)
		require.NoError(t, err)
		defer rc.Close()
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "stage\nnormal\n", string(data))
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := storage.OpenFile(filepath.Join(dir, "nope"))
		assert.Error(t, err)
	})
}

func TestOpenObject(t *testing.T) {
	ctx := context.Background()

	t.Run("Lz4", func(t *testing.T) {
		client := new(mocks.Client)
		body := io.NopCloser(bytes.NewReader(compress(t, "battle\n")))
		client.On("GetObject", mock.Anything, "bucket", "names.lz4", mock.Anything).Return(body, nil)

		rc, err := storage.OpenObject(ctx, client, "bucket", "names.lz4")
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		require.NoError(t, err)
		assert.Equal(t, "battle\n", string(data))
		assert.NoError(t, rc.Close())
		client.AssertExpectations(t)
	})

	t.Run("Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "bucket", "names", mock.Anything).Return(nil, errors.New("boom"))
		_, err := storage.OpenObject(ctx, client, "bucket", "names")
		assert.ErrorContains(t, err, "boom")
	})
}

func TestOpener(t *testing.T) {
	ctx := context.Background()

	_, err := storage.Opener("ftp", nil, "")(ctx, "x")
	assert.ErrorContains(t, err, "unknown source")

	_, err = storage.Opener(storage.SourceStorage, nil, "")(ctx, "x")
	assert.ErrorContains(t, err, "without a storage client")

	p := filepath.Join(t.TempDir(), "listing.txt")
	require.NoError(t, os.WriteFile(p, []byte("a"), 0o644))
	rc, err := storage.Opener(storage.SourceFile, nil, "")(ctx, p)
	require.NoError(t, err)
	assert.NoError(t, rc.Close())
}
