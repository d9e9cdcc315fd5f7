package gcs

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/storage"

	"github.com/oksasatya/customer-directory/internal/domain/repository"
	"github.com/oksasatya/customer-directory/pkg/helpers"
)

// BlobStore stores profile images in Google Cloud Storage.
type BlobStore struct {
	client      *storage.Client
	contentType string
}

func NewBlobStore(client *storage.Client) *BlobStore {
	return &BlobStore{client: client, contentType: "image/jpeg"}
}

func (s *BlobStore) Put(ctx context.Context, bucket, objectPath string, data []byte) error {
	if err := helpers.UploadObject(ctx, s.client, bucket, objectPath, s.contentType, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("gcs put %s/%s: %w", bucket, objectPath, err)
	}
	return nil
}

func (s *BlobStore) Get(ctx context.Context, bucket, objectPath string) ([]byte, error) {
	data, err := helpers.DownloadObject(ctx, s.client, bucket, objectPath)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("gcs get %s/%s: %w", bucket, objectPath, err)
	}
	return data, nil
}

var _ repository.BlobStore = (*BlobStore)(nil)
