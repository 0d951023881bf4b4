package invertedindex

// chunkByteSize is CHUNK*6 + 6: u16 len + CHUNK*(u16 quotient + u32
// pagepool_head) + u32 next_chunk_offset.
const chunkByteSize = uint64(Chunk)*6 + 6

// quotientEntry is one (quotient, pagepool_head) pair held in a chunk.
type quotientEntry struct {
	quotient uint16
	pageHead FileOffset
}

// InvertedIndexIDFNodeData is the ordered quotient -> posting-list-head
// map embedded in a node. Logically one ordered list; physically a chain
// of fixed-size chunks in the node's data-file partition.
type InvertedIndexIDFNodeData struct {
	entries []quotientEntry
}

// NewInvertedIndexIDFNodeData returns an empty map.
func NewInvertedIndexIDFNodeData() *InvertedIndexIDFNodeData {
	return &InvertedIndexIDFNodeData{}
}

// Put records quotient -> pageHead, preserving insertion order. Returns
// ErrDuplicateQuotient if quotient is already present.
func (d *InvertedIndexIDFNodeData) Put(quotient uint16, pageHead FileOffset) error {
	for _, e := range d.entries {
		if e.quotient == quotient {
			return ErrDuplicateQuotient
		}
	}
	d.entries = append(d.entries, quotientEntry{quotient, pageHead})
	return nil
}

// Get looks up the posting-list head for quotient.
func (d *InvertedIndexIDFNodeData) Get(quotient uint16) (FileOffset, bool) {
	for _, e := range d.entries {
		if e.quotient == quotient {
			return e.pageHead, true
		}
	}
	return 0, false
}

// Entries returns the (quotient, pagepool_head) pairs in insertion order.
func (d *InvertedIndexIDFNodeData) Entries() []struct {
	Quotient uint16
	PageHead FileOffset
} {
	out := make([]struct {
		Quotient uint16
		PageHead FileOffset
	}, len(d.entries))
	for i, e := range d.entries {
		out[i] = struct {
			Quotient uint16
			PageHead FileOffset
		}{e.quotient, e.pageHead}
	}
	return out
}

// Serialize writes the map's first chunk inline on dimBufman at the
// cursor's current position — the node record's embedded first-chunk slot
// (file_offset+5), already positioned there by the caller. Only entries
// beyond the first CHUNK spill into the node's data-file partition: each
// overflow chunk is allocated via allocator and chained from the previous
// chunk's next_chunk_offset, exactly as node.rs's data.serialize does by
// only ever consulting data_bufmans past the embedded chunk.
func (d *InvertedIndexIDFNodeData) Serialize(dimBufman *BufferManager, cursor *Cursor, dataBufman *BufferManager, allocator *OffsetAllocator) error {
	bufman := dimBufman
	entries := d.entries
	for {
		n := len(entries)
		if n > Chunk {
			n = Chunk
		}
		if err := bufman.UpdateU16WithCursor(cursor, uint16(len(entries))); err != nil {
			return err
		}
		for i := 0; i < Chunk; i++ {
			var q uint16
			var h FileOffset
			if i < n {
				q, h = entries[i].quotient, entries[i].pageHead
			}
			if err := bufman.UpdateU16WithCursor(cursor, q); err != nil {
				return err
			}
			if err := bufman.UpdateU32WithCursor(cursor, uint32(h)); err != nil {
				return err
			}
		}
		entries = entries[n:]
		if len(entries) == 0 {
			return bufman.UpdateU32WithCursor(cursor, 0)
		}
		next := allocator.Reserve(chunkByteSize)
		if err := bufman.UpdateU32WithCursor(cursor, uint32(next)); err != nil {
			return err
		}
		bufman = dataBufman
		cursor = dataBufman.OpenCursor()
		bufman.SeekWithCursor(cursor, uint64(next))
	}
}

// DeserializeInvertedIndexIDFNodeData reads the embedded first chunk from
// dimBufman at dimFileOffset (the node's file_offset+5), then follows
// next_chunk_offset into dataBufman for any chunks beyond the first.
func DeserializeInvertedIndexIDFNodeData(dimBufman *BufferManager, dimFileOffset FileOffset, dataBufman *BufferManager) (*InvertedIndexIDFNodeData, error) {
	d := &InvertedIndexIDFNodeData{}
	bufman := dimBufman
	cursor := dimBufman.OpenCursor()
	dimBufman.SeekWithCursor(cursor, uint64(dimFileOffset))

	visited := map[FileOffset]bool{}
	for {
		total, err := bufman.ReadU16WithCursor(cursor)
		if err != nil {
			return nil, err
		}
		n := int(total)
		if n > Chunk {
			n = Chunk
		}
		for i := 0; i < Chunk; i++ {
			q, err := bufman.ReadU16WithCursor(cursor)
			if err != nil {
				return nil, err
			}
			h, err := bufman.ReadU32WithCursor(cursor)
			if err != nil {
				return nil, err
			}
			if i < n {
				d.entries = append(d.entries, quotientEntry{q, FileOffset(h)})
			}
		}
		next, err := bufman.ReadU32WithCursor(cursor)
		if err != nil {
			return nil, err
		}
		if next == 0 {
			break
		}
		if visited[FileOffset(next)] {
			return nil, ErrCorruptChain
		}
		visited[FileOffset(next)] = true
		bufman = dataBufman
		cursor = dataBufman.OpenCursor()
		dataBufman.SeekWithCursor(cursor, uint64(next))
	}
	return d, nil
}
