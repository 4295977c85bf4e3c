package store

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// BlobStore keeps the raw uploaded byte blobs, content-addressed, so a
// dataset can be re-parsed after its canonical set is evicted. Bounded LRU
// with the same lifetime policy as the record set cache.
type BlobStore struct {
	lru *lru.Cache[string, []byte]
}

// NewBlobStore creates a bounded blob store.
func NewBlobStore(capacity int) (*BlobStore, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New[string, []byte](capacity)
	if err != nil {
		return nil, fmt.Errorf("create blob store: %w", err)
	}
	return &BlobStore{lru: c}, nil
}

// Put stores a blob and returns its content address.
func (s *BlobStore) Put(data []byte) string {
	id := DatasetID(data)
	s.lru.Add(id, data)
	return id
}

// Get returns the blob for a dataset id.
func (s *BlobStore) Get(datasetID string) ([]byte, bool) {
	return s.lru.Get(datasetID)
}
