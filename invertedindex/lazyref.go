package invertedindex

// LazyRef is a file offset plus a non-owning handle to the cache that
// owns the in-memory cell it names. Dereferencing performs a
// cache.GetOrLoad; the cache, not the node holding the ref, owns the
// strong reference to the resolved value. This replaces the source's raw
// interior pointer (*mut ProbLazyItem<T>) with an explicit indirection.
type LazyRef struct {
	Offset FileOffset
	cache  *InvertedIndexIDFCache
}

// NewLazyRef builds a ref that resolves through cache.
func NewLazyRef(offset FileOffset, cache *InvertedIndexIDFCache) *LazyRef {
	return &LazyRef{Offset: offset, cache: cache}
}

// Get resolves the ref to its in-memory node, loading it on first access.
func (r *LazyRef) Get() (*Node, error) {
	return r.cache.GetOrLoad(r.Offset)
}

// ChildRef returns a LazyRef for child slot i of n, or nil if the slot is
// empty.
func ChildRef(n *Node, i int, cache *InvertedIndexIDFCache) *LazyRef {
	offset, ok := n.Children.Get(i)
	if !ok {
		return nil
	}
	return NewLazyRef(offset, cache)
}
