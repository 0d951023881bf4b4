package invertedindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNode(t *testing.T, dir string, dimIndex uint32, implicit bool, quantBits uint8, fileOffset FileOffset) (*Node, *BufferManager, *BufferManagerFactory[uint8]) {
	t.Helper()
	dimBufman, err := NewBufferManager(dir + "/dim")
	require.NoError(t, err)
	dataBufmans := NewBufferManagerFactory[uint8](dir, "data_%d")

	n := NewNode(dimIndex, implicit, quantBits, fileOffset)
	return n, dimBufman, dataBufmans
}

func TestPackUnpackFlagsRoundTrip(t *testing.T) {
	for bits := uint8(0); bits < 128; bits++ {
		for _, implicit := range []bool{false, true} {
			packed := PackFlags(bits, implicit)
			gotBits, gotImplicit := UnpackFlags(packed)
			assert.Equal(t, bits, gotBits)
			assert.Equal(t, implicit, gotImplicit)
		}
	}
}

func TestUnpackFlags_HighBitOnlySetsImplicit(t *testing.T) {
	bits, implicit := UnpackFlags(0x80)
	assert.True(t, implicit)
	assert.Equal(t, uint8(0), bits)
}

func TestColdSerializeWritesHeaderBytes(t *testing.T) {
	dir := t.TempDir()
	n, dimBufman, dataBufmans := newTestNode(t, dir, 42, true, 5, 1024)
	allocator := NewOffsetAllocator(dimBufman.FileSize())

	cursor := dimBufman.OpenCursor()
	off, err := n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	assert.Equal(t, FileOffset(1024), off)

	readCursor := dimBufman.OpenCursor()
	dimBufman.SeekWithCursor(readCursor, 1024)
	dimIndex, err := dimBufman.ReadU32WithCursor(readCursor)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), dimIndex)

	flags, err := dimBufman.ReadU8WithCursor(readCursor)
	require.NoError(t, err)
	assert.Equal(t, byte(0x85), flags)
}

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	dir := t.TempDir()
	n, dimBufman, dataBufmans := newTestNode(t, dir, 7, false, 3, 0)
	allocator := NewOffsetAllocator(0)

	require.NoError(t, n.Data.Put(11, FileOffset(100)))
	require.NoError(t, n.Data.Put(22, FileOffset(200)))
	require.NoError(t, n.Children.Set(3, FileOffset(4096)))

	cursor := dimBufman.OpenCursor()
	_, err := n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	require.NoError(t, dimBufman.Flush())
	require.NoError(t, dataBufmans.FlushAll())

	got, err := DeserializeNode(dimBufman, dataBufmans, 0, 4)
	require.NoError(t, err)

	assert.Equal(t, n.DimIndex, got.DimIndex)
	assert.Equal(t, n.Implicit, got.Implicit)
	assert.Equal(t, n.QuantizationBits, got.QuantizationBits)
	assert.Equal(t, n.Data.Entries(), got.Data.Entries())

	childOffset, ok := got.Children.Get(3)
	assert.True(t, ok)
	assert.Equal(t, FileOffset(4096), childOffset)
}

func TestWarmCleanSerializeRewritesChildrenOnly(t *testing.T) {
	dir := t.TempDir()
	n, dimBufman, dataBufmans := newTestNode(t, dir, 1, false, 0, 0)
	allocator := NewOffsetAllocator(0)

	cursor := dimBufman.OpenCursor()
	_, err := n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	require.NoError(t, dimBufman.Flush())

	// Child CAS-sets after the cold write with no data mutation, as in the
	// spec's "cold then zero mutations then second serialize" scenario.
	require.NoError(t, n.Children.Set(3, FileOffset(111)))
	require.NoError(t, n.Children.Set(11, FileOffset(222)))

	// Stamp the data region so the second serialize can be shown to leave it
	// untouched.
	stamp := dimBufman.OpenCursor()
	dimBufman.SeekWithCursor(stamp, 5)
	require.NoError(t, dimBufman.UpdateU16WithCursor(stamp, 0xBEEF))

	_, err = n.Serialize(dimBufman, dataBufmans, allocator, 4, cursor)
	require.NoError(t, err)
	require.NoError(t, dimBufman.Flush())

	dimBufman.SeekWithCursor(stamp, 5)
	marker, err := dimBufman.ReadU16WithCursor(stamp)
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), marker)

	children, err := DeserializeAtomicArray(dimBufman, FileOffset(childrenOffset))
	require.NoError(t, err)
	v3, ok := children.Get(3)
	assert.True(t, ok)
	assert.Equal(t, FileOffset(111), v3)
	v11, ok := children.Get(11)
	assert.True(t, ok)
	assert.Equal(t, FileOffset(222), v11)
}

func TestAtomicArraySetFailsOnAlreadyPresent(t *testing.T) {
	a := &AtomicArray{}
	require.NoError(t, a.Set(0, FileOffset(1)))
	err := a.Set(0, FileOffset(2))
	assert.ErrorIs(t, err, ErrAlreadyPresent)
}

func TestNodeDataDuplicateQuotientRejected(t *testing.T) {
	d := NewInvertedIndexIDFNodeData()
	require.NoError(t, d.Put(5, FileOffset(10)))
	err := d.Put(5, FileOffset(20))
	assert.ErrorIs(t, err, ErrDuplicateQuotient)
}

func TestNodeDataChunkChain(t *testing.T) {
	dir := t.TempDir()
	dimBufman, err := NewBufferManager(dir + "/dim")
	require.NoError(t, err)
	dataBufman, err := NewBufferManager(dir + "/data_0")
	require.NoError(t, err)
	allocator := NewOffsetAllocator(0)

	d := NewInvertedIndexIDFNodeData()
	for i := uint16(0); i < Chunk*2+3; i++ {
		require.NoError(t, d.Put(i, FileOffset(uint32(i)*4)))
	}

	const dimFileOffset = FileOffset(5)
	cursor := dimBufman.OpenCursor()
	dimBufman.SeekWithCursor(cursor, uint64(dimFileOffset))
	require.NoError(t, d.Serialize(dimBufman, cursor, dataBufman, allocator))
	require.NoError(t, dimBufman.Flush())
	require.NoError(t, dataBufman.Flush())

	got, err := DeserializeInvertedIndexIDFNodeData(dimBufman, dimFileOffset, dataBufman)
	require.NoError(t, err)
	assert.Equal(t, d.Entries(), got.Entries())
}
