package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reclamos/pkg/contracts/domain"
)

func TestDatasetID(t *testing.T) {
	a := DatasetID([]byte("hola"))
	b := DatasetID([]byte("hola"))
	c := DatasetID([]byte("chao"))

	assert.Len(t, a, 64)
	assert.Regexp(t, "^[0-9a-f]{64}$", a)
	assert.Equal(t, a, b, "identical content must share one address")
	assert.NotEqual(t, a, c)
}

func TestDatasetCachePutGet(t *testing.T) {
	cache, err := NewDatasetCache(4, nil)
	require.NoError(t, err)

	set := &domain.RecordSet{Records: []domain.Complaint{{NID: "1"}}}
	cache.Put("abc", "", set)

	got, ok := cache.Get("abc", "")
	require.True(t, ok)
	assert.Same(t, set, got)

	// A different sheet selector is a different entry.
	_, ok = cache.Get("abc", "Hoja2")
	assert.False(t, ok)

	_, ok = cache.Get("otro", "")
	assert.False(t, ok)
}

func TestDatasetCacheEviction(t *testing.T) {
	cache, err := NewDatasetCache(2, nil)
	require.NoError(t, err)

	cache.Put("a", "", &domain.RecordSet{})
	cache.Put("b", "", &domain.RecordSet{})

	// Touch "a" so "b" is the least recently used.
	_, ok := cache.Get("a", "")
	require.True(t, ok)

	cache.Put("c", "", &domain.RecordSet{})

	assert.Equal(t, 2, cache.Len())
	_, ok = cache.Get("b", "")
	assert.False(t, ok, "least recently used entry should be evicted")
	_, ok = cache.Get("a", "")
	assert.True(t, ok)
	_, ok = cache.Get("c", "")
	assert.True(t, ok)
}

func TestDatasetCacheDefaultCapacity(t *testing.T) {
	cache, err := NewDatasetCache(0, nil)
	require.NoError(t, err)
	cache.Put("a", "", &domain.RecordSet{})
	assert.Equal(t, 1, cache.Len())
}

func TestBlobStore(t *testing.T) {
	blobs, err := NewBlobStore(2)
	require.NoError(t, err)

	data := []byte("nid,fecha\n1,2024-01-05\n")
	id := blobs.Put(data)
	assert.Equal(t, DatasetID(data), id)

	got, ok := blobs.Get(id)
	require.True(t, ok)
	assert.Equal(t, data, got)

	_, ok = blobs.Get("desconocido")
	assert.False(t, ok)
}
