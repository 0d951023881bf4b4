package invertedindex

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheGetOrLoadConcurrentIsAtMostOnce(t *testing.T) {
	dir := t.TempDir()
	dimBufman, err := NewBufferManager(dir + "/dim")
	require.NoError(t, err)
	dataBufmans := NewBufferManagerFactory[uint8](dir, "data_%d")
	allocator := NewOffsetAllocator(0)

	n := NewNode(1, false, 0, 0)
	cursor := dimBufman.OpenCursor()
	_, err = n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	require.NoError(t, dimBufman.Flush())

	cache, err := NewInvertedIndexIDFCache(16, dimBufman, dataBufmans, allocator, 4)
	require.NoError(t, err)

	const n_goroutines = 32
	results := make([]*Node, n_goroutines)
	var wg sync.WaitGroup
	wg.Add(n_goroutines)
	for i := 0; i < n_goroutines; i++ {
		i := i
		go func() {
			defer wg.Done()
			got, err := cache.GetOrLoad(0)
			require.NoError(t, err)
			results[i] = got
		}()
	}
	wg.Wait()

	for i := 1; i < n_goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestLazyRefResolvesThroughCache(t *testing.T) {
	dir := t.TempDir()
	dimBufman, err := NewBufferManager(dir + "/dim")
	require.NoError(t, err)
	dataBufmans := NewBufferManagerFactory[uint8](dir, "data_%d")
	allocator := NewOffsetAllocator(0)

	cache, err := NewInvertedIndexIDFCache(16, dimBufman, dataBufmans, allocator, 4)
	require.NoError(t, err)

	n := NewNode(9, false, 0, 0)
	cursor := dimBufman.OpenCursor()
	_, err = n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	require.NoError(t, dimBufman.Flush())
	cache.Put(0, n)

	ref := NewLazyRef(0, cache)
	got, err := ref.Get()
	require.NoError(t, err)
	assert.Equal(t, n.DimIndex, got.DimIndex)
}
