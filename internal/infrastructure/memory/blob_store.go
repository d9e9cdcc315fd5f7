package memory

import (
	"context"
	"sync"

	"github.com/oksasatya/customer-directory/internal/domain/repository"
)

// BlobStore is an in-process object store keyed by bucket and object path.
type BlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

func NewBlobStore() *BlobStore {
	return &BlobStore{objects: make(map[string][]byte)}
}

func objectKey(bucket, objectPath string) string {
	return bucket + "/" + objectPath
}

func (s *BlobStore) Put(_ context.Context, bucket, objectPath string, data []byte) error {
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.objects[objectKey(bucket, objectPath)] = cp
	s.mu.Unlock()
	return nil
}

func (s *BlobStore) Get(_ context.Context, bucket, objectPath string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.objects[objectKey(bucket, objectPath)]
	s.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

// Len returns the number of stored objects.
func (s *BlobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

var _ repository.BlobStore = (*BlobStore)(nil)
