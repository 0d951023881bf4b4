// Package collection implements the registry boundary: named vector
// collections, their per-index options, and the DTOs used to ingest
// vectors into them.
package collection

import (
	"os"
	"path/filepath"

	"github.com/dchest/siphash"
	"github.com/pkg/errors"
)

var ErrInvalidParams = errors.New("collection: invalid params")

// DenseVectorOptions configures the dense-vector index for a collection.
type DenseVectorOptions struct {
	Enabled   bool `cbor:"enabled"`
	Dimension int  `cbor:"dimension"`
}

// SparseVectorOptions configures the sparse-vector (inverted index) index
// for a collection.
type SparseVectorOptions struct {
	Enabled bool `cbor:"enabled"`
}

// TFIDFOptions configures the TF-IDF index for a collection.
type TFIDFOptions struct {
	Enabled bool `cbor:"enabled"`
}

// Config holds collection-wide limits; either field may be unset.
type Config struct {
	MaxVectors         *int32 `cbor:"max_vectors"`
	ReplicationFactor  *int32 `cbor:"replication_factor"`
}

// Schema is an opaque, round-tripped metadata schema. Its shape is out of
// scope here: the registry only needs to persist and return it, never
// interpret it.
type Schema struct {
	Raw []byte `cbor:"raw"`
}

// Collection is a named, configured vector collection.
type Collection struct {
	Name           string              `cbor:"name"`
	Description    *string             `cbor:"description"`
	DenseVector    DenseVectorOptions  `cbor:"dense_vector"`
	SparseVector   SparseVectorOptions `cbor:"sparse_vector"`
	TFIDFOptions   TFIDFOptions        `cbor:"tf_idf_options"`
	MetadataSchema *Schema             `cbor:"metadata_schema"`
	Config         Config              `cbor:"config"`
}

// sipHashKey is the fixed key the registry hashes collection names with;
// it has no secrecy requirement since the hash only needs to be a stable,
// well-distributed key, not a MAC.
var sipHashKey = [16]byte{}

// New validates and constructs a collection, creating its data directory
// under dataDir/collections/<name>.
func New(dataDir, name string, description *string, dense DenseVectorOptions, sparse SparseVectorOptions, tfidf TFIDFOptions, schema *Schema, cfg Config) (*Collection, error) {
	if name == "" {
		return nil, ErrInvalidParams
	}

	c := &Collection{
		Name:           name,
		Description:    description,
		DenseVector:    dense,
		SparseVector:   sparse,
		TFIDFOptions:   tfidf,
		MetadataSchema: schema,
		Config:         cfg,
	}

	if err := os.MkdirAll(c.Path(dataDir), 0755); err != nil {
		return nil, errors.Wrap(err, "collection: create data directory")
	}
	return c, nil
}

// Path returns the collection's on-disk directory under dataDir.
func (c *Collection) Path(dataDir string) string {
	return filepath.Join(dataDir, "collections", c.Name)
}

// Hash computes the SipHash-2-4 of the collection's name.
func (c *Collection) Hash() uint64 {
	return siphash.Hash(0, 0, []byte(c.Name))
}

// Key returns the 8 little-endian bytes of the collection's SipHash-2-4,
// the registry's storage key.
func (c *Collection) Key() [8]byte {
	h := c.Hash()
	var key [8]byte
	for i := 0; i < 8; i++ {
		key[i] = byte(h >> (8 * i))
	}
	return key
}
