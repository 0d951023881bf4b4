package invertedindex

import "sync/atomic"

// FanOut is the number of child slots an AtomicArray holds.
const FanOut = 16

// AtomicArray is a fixed array of 16 atomic u32 file offsets naming child
// nodes, on disk as 16 little-endian u32s. A zero slot means "no child".
type AtomicArray struct {
	slots [FanOut]atomic.Uint32
}

// Get returns the child offset at i and whether a child is present.
func (a *AtomicArray) Get(i int) (FileOffset, bool) {
	v := a.slots[i].Load()
	return FileOffset(v), v != 0
}

// Set CAS-installs offset into slot i, going from empty (0) to occupied.
// Returns ErrAlreadyPresent if the slot was already non-zero.
func (a *AtomicArray) Set(i int, offset FileOffset) error {
	if offset == 0 {
		return ErrAlreadyPresent
	}
	if !a.slots[i].CompareAndSwap(0, uint32(offset)) {
		return ErrAlreadyPresent
	}
	return nil
}

// Serialize writes the 16 slots starting at the cursor's current position.
// Callers must seek to file_offset + CHUNK*6 + 11 first.
func (a *AtomicArray) Serialize(bufman *BufferManager, cursor *Cursor) error {
	for i := 0; i < FanOut; i++ {
		if err := bufman.UpdateU32WithCursor(cursor, a.slots[i].Load()); err != nil {
			return err
		}
	}
	return nil
}

// DeserializeAtomicArray reads 16 offsets starting at fileOffset.
func DeserializeAtomicArray(bufman *BufferManager, fileOffset FileOffset) (*AtomicArray, error) {
	cursor := bufman.OpenCursor()
	bufman.SeekWithCursor(cursor, uint64(fileOffset))
	a := &AtomicArray{}
	for i := 0; i < FanOut; i++ {
		v, err := bufman.ReadU32WithCursor(cursor)
		if err != nil {
			return nil, err
		}
		a.slots[i].Store(v)
	}
	return a, nil
}
