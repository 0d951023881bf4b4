package invertedindex

// PageCap is the number of doc IDs a single PagePool page holds.
const PageCap = 1020

// pageByteSize is 4 (length) + PageCap*4 (doc ids) + 4 (next offset).
const pageByteSize = 4 + PageCap*4 + 4

// PagePool is an append-only linked list of fixed-capacity pages of u32
// doc IDs — the posting list behind one quotient bucket. It has a single
// writer; readers see a consistent snapshot up to the last flushed length.
type PagePool struct {
	dataBufman *BufferManager
	allocator  *OffsetAllocator

	head   FileOffset
	tail   FileOffset
	length uint32 // entries on the tail page
}

// NewPagePool allocates the first page of a new pool.
func NewPagePool(dataBufman *BufferManager, allocator *OffsetAllocator) (*PagePool, error) {
	head := allocator.Reserve(pageByteSize)
	if err := writeEmptyPage(dataBufman, head); err != nil {
		return nil, err
	}
	return &PagePool{dataBufman: dataBufman, allocator: allocator, head: head, tail: head}, nil
}

// OpenPagePool resolves a PagePool whose head page already exists at head.
func OpenPagePool(dataBufman *BufferManager, allocator *OffsetAllocator, head FileOffset) (*PagePool, error) {
	tail, length, err := walkToTail(dataBufman, head)
	if err != nil {
		return nil, err
	}
	return &PagePool{dataBufman: dataBufman, allocator: allocator, head: head, tail: tail, length: length}, nil
}

func writeEmptyPage(bufman *BufferManager, offset FileOffset) error {
	cursor := bufman.OpenCursor()
	bufman.SeekWithCursor(cursor, uint64(offset))
	if err := bufman.UpdateU32WithCursor(cursor, 0); err != nil {
		return err
	}
	bufman.SeekWithCursor(cursor, uint64(offset)+4+PageCap*4)
	return bufman.UpdateU32WithCursor(cursor, 0)
}

func walkToTail(bufman *BufferManager, head FileOffset) (FileOffset, uint32, error) {
	cur := head
	budget := 1 << 20 // bounded step budget against a cyclic chain
	for i := 0; ; i++ {
		if i > budget {
			return 0, 0, ErrCorruptChain
		}
		cursor := bufman.OpenCursor()
		bufman.SeekWithCursor(cursor, uint64(cur))
		length, err := bufman.ReadU32WithCursor(cursor)
		if err != nil {
			return 0, 0, err
		}
		bufman.SeekWithCursor(cursor, uint64(cur)+4+PageCap*4)
		next, err := bufman.ReadU32WithCursor(cursor)
		if err != nil {
			return 0, 0, err
		}
		if next == 0 {
			return cur, length, nil
		}
		cur = FileOffset(next)
	}
}

// Head returns the file offset of the pool's first page.
func (p *PagePool) Head() FileOffset { return p.head }

// Push appends docID to the pool, allocating a new page when the tail is
// full.
func (p *PagePool) Push(docID uint32) error {
	if p.length >= PageCap {
		next := p.allocator.Reserve(pageByteSize)
		if err := writeEmptyPage(p.dataBufman, next); err != nil {
			return err
		}
		// patch the old tail's next-page field
		cursor := p.dataBufman.OpenCursor()
		p.dataBufman.SeekWithCursor(cursor, uint64(p.tail)+4+PageCap*4)
		if err := p.dataBufman.UpdateU32WithCursor(cursor, uint32(next)); err != nil {
			return err
		}
		p.tail = next
		p.length = 0
	}

	cursor := p.dataBufman.OpenCursor()
	entryOffset := uint64(p.tail) + 4 + uint64(p.length)*4
	p.dataBufman.SeekWithCursor(cursor, entryOffset)
	if err := p.dataBufman.UpdateU32WithCursor(cursor, docID); err != nil {
		return err
	}
	p.length++

	p.dataBufman.SeekWithCursor(cursor, uint64(p.tail))
	if err := p.dataBufman.UpdateU32WithCursor(cursor, p.length); err != nil {
		return err
	}
	return nil
}

// Iter returns every doc ID in the pool, walking pages in append order.
func (p *PagePool) Iter() ([]uint32, error) {
	var out []uint32
	cur := p.head
	budget := 1 << 20
	for i := 0; cur != 0; i++ {
		if i > budget {
			return nil, ErrCorruptChain
		}
		cursor := p.dataBufman.OpenCursor()
		p.dataBufman.SeekWithCursor(cursor, uint64(cur))
		length, err := p.dataBufman.ReadU32WithCursor(cursor)
		if err != nil {
			return nil, err
		}
		for i := uint32(0); i < length; i++ {
			p.dataBufman.SeekWithCursor(cursor, uint64(cur)+4+uint64(i)*4)
			id, err := p.dataBufman.ReadU32WithCursor(cursor)
			if err != nil {
				return nil, err
			}
			out = append(out, id)
		}
		p.dataBufman.SeekWithCursor(cursor, uint64(cur)+4+PageCap*4)
		next, err := p.dataBufman.ReadU32WithCursor(cursor)
		if err != nil {
			return nil, err
		}
		cur = FileOffset(next)
	}
	return out, nil
}
