package invertedindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPagePoolPushIter(t *testing.T) {
	dir := t.TempDir()
	bufman, err := NewBufferManager(dir + "/data_0")
	require.NoError(t, err)
	allocator := NewOffsetAllocator(0)

	pool, err := NewPagePool(bufman, allocator)
	require.NoError(t, err)

	var want []uint32
	for i := uint32(0); i < PageCap*2+7; i++ {
		require.NoError(t, pool.Push(i))
		want = append(want, i)
	}
	require.NoError(t, bufman.Flush())

	got, err := pool.Iter()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPagePoolOpenExisting(t *testing.T) {
	dir := t.TempDir()
	bufman, err := NewBufferManager(dir + "/data_0")
	require.NoError(t, err)
	allocator := NewOffsetAllocator(0)

	pool, err := NewPagePool(bufman, allocator)
	require.NoError(t, err)
	require.NoError(t, pool.Push(1))
	require.NoError(t, pool.Push(2))
	require.NoError(t, bufman.Flush())

	reopened, err := OpenPagePool(bufman, allocator, pool.Head())
	require.NoError(t, err)
	require.NoError(t, reopened.Push(3))

	got, err := reopened.Iter()
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, got)
}
