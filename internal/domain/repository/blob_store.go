package repository

import "context"

// BlobStore stores opaque objects addressed by bucket and object path.
type BlobStore interface {
	Put(ctx context.Context, bucket, objectPath string, data []byte) error
	Get(ctx context.Context, bucket, objectPath string) ([]byte, error)
}
