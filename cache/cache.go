// Package cache persists decoded resource tables in a bolt database so
// repeated lookups against the same package skip the decode step.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"os"

	bolt "go.etcd.io/bbolt"

	"github.com/kwf2030/arsc"
)

var bucketTables = []byte("restables")

func init() {
	// Resource variants travel through the gob stream as interface values.
	gob.Register(&arsc.Null{})
	gob.Register(&arsc.Reference{})
	gob.Register(&arsc.Attribute{})
	gob.Register(&arsc.String{})
	gob.Register(&arsc.Integer{})
	gob.Register(&arsc.Float{})
	gob.Register(&arsc.Boolean{})
	gob.Register(&arsc.Color{})
	gob.Register(&arsc.Dimension{})
	gob.Register(&arsc.Fraction{})
	gob.Register(&arsc.Array{})
	gob.Register(&arsc.Complex{})
}

// Key derives the cache key for raw resource-table bytes.
func Key(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// FileKey derives the cache key for a file on disk.
func FileKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Key(data), nil
}

// Store is a bolt-backed table cache. A Store is safe for concurrent use;
// the tables it returns are independent copies.
type Store struct {
	db *bolt.DB
}

// Open opens (creating if necessary) the cache database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, e := tx.CreateBucketIfNotExists(bucketTables)
		return e
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores the table under key, replacing any previous value.
func (s *Store) Put(key string, t *arsc.Table) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(t); err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTables).Put([]byte(key), buf.Bytes())
	})
}

// Get loads the table stored under key. A miss returns (nil, nil).
func (s *Store) Get(key string) (*arsc.Table, error) {
	var raw []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketTables).Get([]byte(key)); v != nil {
			raw = make([]byte, len(v))
			copy(raw, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	t := &arsc.Table{}
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(t); err != nil {
		return nil, err
	}
	return t, nil
}

// Delete removes the table stored under key, if any.
func (s *Store) Delete(key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketTables).Delete([]byte(key))
	})
}
