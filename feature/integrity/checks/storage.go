package checks

import (
	"context"
	"fmt"

	"stage-alts/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckStorage returns the objects of required that are missing from the
// bucket. A name ending in "/" only needs one object below it.
func CheckStorage(ctx context.Context, client storage.Client, bucket string, required []string) ([]string, error) {
	var missing []string

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	for _, name := range required {
		opts := minio.ListObjectsOptions{
			Prefix:    name,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err != nil {
				return nil, fmt.Errorf("failed to list %s: %w", name, obj.Err)
			}
			found = true
			break
		}

		if !found {
			missing = append(missing, name)
		}
	}

	return missing, nil
}
