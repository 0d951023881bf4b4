package collection

import "sync/atomic"

// VectorID identifies a vector within a collection.
type VectorID string

// SparsePair is one (dimension index, magnitude) entry of a sparse vector.
type SparsePair struct {
	Index uint32
	Value float32
}

// SparseVectorBuffer is an immutable, reference-counted buffer of
// SparsePairs shared between the request parser and the indexer — the Go
// stand-in for the source's Arc<Vec<SparsePair>>, since Go has no built-in
// reference-counted pointer.
type SparseVectorBuffer struct {
	pairs    []SparsePair
	refCount atomic.Int32
}

// NewSparseVectorBuffer wraps pairs with an initial reference count of 1.
func NewSparseVectorBuffer(pairs []SparsePair) *SparseVectorBuffer {
	b := &SparseVectorBuffer{pairs: pairs}
	b.refCount.Store(1)
	return b
}

// Pairs returns the buffer's entries. Callers must not mutate the slice.
func (b *SparseVectorBuffer) Pairs() []SparsePair { return b.pairs }

// Retain increments the reference count, to be called by each new holder.
func (b *SparseVectorBuffer) Retain() { b.refCount.Add(1) }

// Release decrements the reference count and reports whether this was the
// last reference.
func (b *SparseVectorBuffer) Release() bool {
	return b.refCount.Add(-1) == 0
}

// RawSparseVectorEmbedding pairs a shared sparse-pair buffer with the
// vector's ID, as parsed off the wire before indexing.
type RawSparseVectorEmbedding struct {
	RawVec  *SparseVectorBuffer
	HashVec VectorID
}
