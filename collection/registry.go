package collection

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"
)

var (
	ErrSerialization = errors.New("collection: serialization error")
	ErrDatabase      = errors.New("collection: database error")
	ErrNotFound      = errors.New("collection: not found")
)

var collectionsBucket = []byte("collections")

// Registry is the collection registry boundary: an embedded,
// single-writer key-value store keyed by SipHash-2-4 of the collection
// name, valued by its CBOR encoding. bbolt's DB/Bucket/Tx triad plays the
// role the design calls "LMDB-shaped": an environment, a named database,
// and read-write transactions.
type Registry struct {
	db *bolt.DB
}

// OpenRegistry opens (creating if necessary) the bbolt file at path and
// ensures the collections bucket exists.
func OpenRegistry(path string) (*Registry, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, errors.Wrap(ErrDatabase, err.Error())
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, errors.Wrap(ErrDatabase, err.Error())
	}
	return &Registry{db: db}, nil
}

// Serialize CBOR-encodes c, the registry's self-describing value format.
func (c *Collection) Serialize() ([]byte, error) {
	b, err := cbor.Marshal(c)
	if err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	return b, nil
}

// Deserialize decodes a CBOR-encoded collection value.
func Deserialize(value []byte) (*Collection, error) {
	var c Collection
	if err := cbor.Unmarshal(value, &c); err != nil {
		return nil, errors.Wrap(ErrSerialization, err.Error())
	}
	return &c, nil
}

// Persist writes c into the registry under its SipHash-2-4 key, replacing
// any prior value (rw txn put + commit).
func (r *Registry) Persist(c *Collection) error {
	value, err := c.Serialize()
	if err != nil {
		return err
	}
	key := c.Key()
	err = r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(collectionsBucket).Put(key[:], value)
	})
	if err != nil {
		return errors.Wrap(ErrDatabase, err.Error())
	}
	return nil
}

// Delete removes the collection named name from the registry (rw txn del
// + commit).
func (r *Registry) Delete(name string) error {
	key := (&Collection{Name: name}).Key()
	err := r.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(collectionsBucket).Delete(key[:])
	})
	if err != nil {
		return errors.Wrap(ErrDatabase, err.Error())
	}
	return nil
}

// Get looks up a collection by name.
func (r *Registry) Get(name string) (*Collection, error) {
	key := (&Collection{Name: name}).Key()
	var value []byte
	err := r.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(collectionsBucket).Get(key[:])
		if v == nil {
			return ErrNotFound
		}
		value = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return Deserialize(value)
}

// List returns every collection currently in the registry.
func (r *Registry) List() ([]*Collection, error) {
	var out []*Collection
	err := r.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(collectionsBucket).ForEach(func(_, v []byte) error {
			c, err := Deserialize(v)
			if err != nil {
				return err
			}
			out = append(out, c)
			return nil
		})
	})
	if err != nil {
		return nil, errors.Wrap(ErrDatabase, err.Error())
	}
	return out, nil
}

// Close closes the underlying bbolt database.
func (r *Registry) Close() error {
	return r.db.Close()
}
