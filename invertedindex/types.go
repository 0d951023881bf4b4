// Package invertedindex implements the trie-shaped sparse inverted index:
// fixed-size dim-file node records patched in place across cold, warm-dirty
// and warm-clean writes, chunked quotient->posting-list data, and the page
// pools backing each posting list.
package invertedindex

import "github.com/pkg/errors"

// FileOffset names a byte position within a dim file or a data file
// partition. The two are never compared against each other directly; which
// file an offset belongs to is always implied by the field that holds it.
type FileOffset uint32

var (
	ErrIO                = errors.New("invertedindex: io error")
	ErrOutOfBounds       = errors.New("invertedindex: read past end of file")
	ErrCorruptHeader     = errors.New("invertedindex: corrupt node header")
	ErrCorruptChain      = errors.New("invertedindex: corrupt chunk chain")
	ErrDuplicateQuotient = errors.New("invertedindex: duplicate quotient")
	ErrAlreadyPresent    = errors.New("invertedindex: slot already present")
)

// Chunk is INVERTED_INDEX_DATA_CHUNK_SIZE: the number of (quotient,
// pagepool-head) entries held directly in a node-data chunk. The file
// format is not self-describing about it; a store must be opened with the
// same value it was written with.
const Chunk = 16

// NodeSize is CHUNK*6 + 75, the fixed width of a dim-file record.
const NodeSize = Chunk*6 + 75

// childrenOffset is the byte offset, relative to a node's file_offset, of
// the embedded 16-slot AtomicArray.
const childrenOffset = uint64(Chunk)*6 + 11

// PackFlags encodes the quantization_and_implicit byte at +4.
func PackFlags(quantizationBits uint8, implicit bool) byte {
	b := quantizationBits & 0x7F
	if implicit {
		b |= 1 << 7
	}
	return b
}

// UnpackFlags decodes the quantization_and_implicit byte at +4.
func UnpackFlags(b byte) (quantizationBits uint8, implicit bool) {
	implicit = b&0x80 != 0
	quantizationBits = (b << 1) >> 1
	return
}
