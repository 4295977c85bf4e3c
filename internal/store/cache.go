// Package store holds the content-addressed cache of canonical record sets.
// Repeated filter changes against the same upload skip re-parsing; eviction
// is bounded LRU rather than process-lifetime.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"

	"reclamos/pkg/contracts/domain"
)

// DefaultCapacity bounds the cache when the configured capacity is invalid.
const DefaultCapacity = 32

// DatasetCache memoizes canonical record sets keyed by the identity of the
// input byte blob plus the sheet selector. Values are immutable once stored;
// callers must treat returned sets as read-only.
type DatasetCache struct {
	lru    *lru.Cache[string, *domain.RecordSet]
	logger *slog.Logger
}

// NewDatasetCache creates a bounded LRU cache for canonical record sets.
func NewDatasetCache(capacity int, logger *slog.Logger) (*DatasetCache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c, err := lru.New[string, *domain.RecordSet](capacity)
	if err != nil {
		return nil, fmt.Errorf("create dataset cache: %w", err)
	}
	return &DatasetCache{
		lru:    c,
		logger: logger.With(slog.String("component", "dataset_cache")),
	}, nil
}

// DatasetID derives the content address of a blob: the hex SHA-256 of its
// bytes. Two identical uploads share one cache entry per sheet.
func DatasetID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Key combines a dataset id with the sheet selector it was parsed with.
func Key(datasetID, sheet string) string {
	return datasetID + "#" + sheet
}

// Get returns the cached record set for the dataset/sheet pair.
func (c *DatasetCache) Get(datasetID, sheet string) (*domain.RecordSet, bool) {
	set, ok := c.lru.Get(Key(datasetID, sheet))
	return set, ok
}

// Put stores a record set under the dataset/sheet pair, evicting the least
// recently used entry when full.
func (c *DatasetCache) Put(datasetID, sheet string, set *domain.RecordSet) {
	evicted := c.lru.Add(Key(datasetID, sheet), set)
	if evicted {
		c.logger.Debug("evicted least recently used dataset",
			slog.String("dataset_id", datasetID))
	}
}

// Len returns the number of cached record sets.
func (c *DatasetCache) Len() int {
	return c.lru.Len()
}
