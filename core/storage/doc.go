// Package storage provides access to the object storage holding archive side data.
//
// It wraps the MinIO Go client behind a small interface so the hash name table,
// archive listings and parameter tables can live in an S3 compatible bucket
// instead of next to the binary. Both buckets and local files may hold lz4
// frames, which OpenObject and OpenFile decompress transparently.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	rc, err := storage.OpenObject(ctx, client, "alts", "Hashes_all.lz4")
//	defer rc.Close()
package storage
