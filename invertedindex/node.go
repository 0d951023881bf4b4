package invertedindex

import "sync/atomic"

// node state, kept as a single atomic value per the collapsed-flags design
// note rather than two independent bools.
const (
	stateCold  uint32 = iota // never serialized
	stateDirty               // serialized at least once, data mutated since
	stateClean               // serialized, nothing dirty
)

// Node is one record of the dim-file trie: a dimension index, quantization
// metadata, the embedded quotient->posting-list map, and 16 child slots.
type Node struct {
	state atomic.Uint32

	DimIndex         uint32
	Implicit         bool
	QuantizationBits uint8
	FileOffset       FileOffset

	Data     *InvertedIndexIDFNodeData
	Children *AtomicArray

	Sampling *SamplingData
}

// NewNode constructs a not-yet-serialized node.
func NewNode(dimIndex uint32, implicit bool, quantizationBits uint8, fileOffset FileOffset) *Node {
	n := &Node{
		DimIndex:         dimIndex,
		Implicit:         implicit,
		QuantizationBits: quantizationBits,
		FileOffset:       fileOffset,
		Data:             NewInvertedIndexIDFNodeData(),
		Children:         &AtomicArray{},
		Sampling:         &SamplingData{},
	}
	n.state.Store(stateCold)
	return n
}

// MarkDirty flags the node's data as mutated since its last serialize,
// taking it from Clean back to Dirty. A cold node is left Cold: its first
// serialize always writes the full record.
func (n *Node) MarkDirty() {
	n.state.CompareAndSwap(stateClean, stateDirty)
}

// Serialize patches the node onto disk in one of three modes, chosen by
// the node's state: a full record write the first time (Cold), a
// data+children rewrite when dirty (Dirty), or a children-only rewrite
// otherwise (Clean). Returns the node's unchanged file offset.
func (n *Node) Serialize(dimBufman *BufferManager, dataBufmans *BufferManagerFactory[uint8], allocator *OffsetAllocator, dataFileParts uint8, cursor *Cursor) (FileOffset, error) {
	dataFileIdx := uint8(n.DimIndex % uint32(dataFileParts))
	dataBufman, err := dataBufmans.Get(dataFileIdx)
	if err != nil {
		return 0, err
	}

	if old := n.state.Swap(stateClean); old == stateCold {
		dimBufman.SeekWithCursor(cursor, uint64(n.FileOffset))
		if err := dimBufman.UpdateU32WithCursor(cursor, n.DimIndex); err != nil {
			return 0, err
		}
		if err := dimBufman.UpdateU8WithCursor(cursor, PackFlags(n.QuantizationBits, n.Implicit)); err != nil {
			return 0, err
		}
		if n.Sampling != nil {
			n.Sampling.Observe(float32(n.QuantizationBits))
		}
		// cursor is already at file_offset+5 after the header writes above;
		// the first NodeData chunk is embedded there, matching node.rs's
		// self.data.serialize(dim_bufman, data_bufmans, ..., cursor).
		if err := n.Data.Serialize(dimBufman, cursor, dataBufman, allocator); err != nil {
			return 0, err
		}
		if err := dataBufman.Flush(); err != nil {
			return 0, err
		}
		dimBufman.SeekWithCursor(cursor, uint64(n.FileOffset)+childrenOffset)
		if err := n.Children.Serialize(dimBufman, cursor); err != nil {
			return 0, err
		}
	} else if old == stateDirty {
		dimBufman.SeekWithCursor(cursor, uint64(n.FileOffset)+5)
		if err := n.Data.Serialize(dimBufman, cursor, dataBufman, allocator); err != nil {
			return 0, err
		}
		if err := dataBufman.Flush(); err != nil {
			return 0, err
		}
		dimBufman.SeekWithCursor(cursor, uint64(n.FileOffset)+childrenOffset)
		if err := n.Children.Serialize(dimBufman, cursor); err != nil {
			return 0, err
		}
	} else {
		dimBufman.SeekWithCursor(cursor, uint64(n.FileOffset)+childrenOffset)
		if err := n.Children.Serialize(dimBufman, cursor); err != nil {
			return 0, err
		}
	}
	return n.FileOffset, nil
}

// DeserializeNode reconstructs a node from its dim-file record at
// fileOffset. data_file_idx is derived from dim_index mod data_file_parts,
// decoupling data-file partitioning from dim-file placement.
func DeserializeNode(dimBufman *BufferManager, dataBufmans *BufferManagerFactory[uint8], fileOffset FileOffset, dataFileParts uint8) (*Node, error) {
	cursor := dimBufman.OpenCursor()
	dimBufman.SeekWithCursor(cursor, uint64(fileOffset))

	dimIndex, err := dimBufman.ReadU32WithCursor(cursor)
	if err != nil {
		return nil, err
	}
	flags, err := dimBufman.ReadU8WithCursor(cursor)
	if err != nil {
		return nil, err
	}
	quantizationBits, implicit := UnpackFlags(flags)
	if quantizationBits > 127 {
		return nil, ErrCorruptHeader
	}

	dataFileIdx := uint8(dimIndex % uint32(dataFileParts))
	dataBufman, err := dataBufmans.Get(dataFileIdx)
	if err != nil {
		return nil, err
	}
	data, err := DeserializeInvertedIndexIDFNodeData(dimBufman, FileOffset(uint64(fileOffset)+5), dataBufman)
	if err != nil {
		return nil, err
	}

	children, err := DeserializeAtomicArray(dimBufman, FileOffset(uint64(fileOffset)+childrenOffset))
	if err != nil {
		return nil, err
	}

	n := &Node{
		DimIndex:         dimIndex,
		Implicit:         implicit,
		QuantizationBits: quantizationBits,
		FileOffset:       fileOffset,
		Data:             data,
		Children:         children,
		Sampling:         &SamplingData{},
	}
	n.state.Store(stateClean)
	return n, nil
}
