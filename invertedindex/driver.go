package invertedindex

// Driver walks roots in DFS order, calling Serialize on every reachable
// node. It keeps no visited set: every node reachable from roots is
// visited on each Run, and nodes already written take Serialize's Dirty or
// Clean path instead of a full record rewrite.
type Driver struct {
	DimBufman     *BufferManager
	DataBufmans   *BufferManagerFactory[uint8]
	Allocator     *OffsetAllocator
	DataFileParts uint8
	Cache         *InvertedIndexIDFCache
}

// Run serializes every node reachable from roots and flushes all buffer
// managers before returning.
func (d *Driver) Run(roots []*Node) error {
	cursor := d.DimBufman.OpenCursor()
	for _, root := range roots {
		if err := d.walk(root, cursor); err != nil {
			return err
		}
	}
	if err := d.DimBufman.Flush(); err != nil {
		return err
	}
	return d.DataBufmans.FlushAll()
}

func (d *Driver) walk(n *Node, cursor *Cursor) error {
	if _, err := n.Serialize(d.DimBufman, d.DataBufmans, d.Allocator, d.DataFileParts, cursor); err != nil {
		return err
	}
	for i := 0; i < FanOut; i++ {
		offset, ok := n.Children.Get(i)
		if !ok {
			continue
		}
		child, err := d.Cache.GetOrLoad(offset)
		if err != nil {
			return err
		}
		if err := d.walk(child, cursor); err != nil {
			return err
		}
	}
	return nil
}
