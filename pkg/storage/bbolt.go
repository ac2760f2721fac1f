package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

// BboltBackend persists buckets in a single bbolt file.
type BboltBackend struct {
	db *bolt.DB
}

// NewBboltBackend opens (or creates) the database at path, creating its
// directory if needed. It fails after a second if another process holds
// the file lock.
func NewBboltBackend(path string) (*BboltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt database %s: %w", path, err)
	}
	return &BboltBackend{db: db}, nil
}

// Path returns the database file path.
func (b *BboltBackend) Path() string { return b.db.Path() }

// CreateBucket creates a bucket if it does not exist.
func (b *BboltBackend) CreateBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(name)
		return err
	})
}

// DeleteBucket removes a bucket. Deleting a missing bucket is a no-op.
func (b *BboltBackend) DeleteBucket(name []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return deleteBucket(tx, name)
	})
}

// BucketExists reports whether the bucket exists.
func (b *BboltBackend) BucketExists(name []byte) (bool, error) {
	var ok bool
	err := b.db.View(func(tx *bolt.Tx) error {
		ok = tx.Bucket(name) != nil
		return nil
	})
	return ok, err
}

// Put stores value under key.
func (b *BboltBackend) Put(bucket, key, value []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put(key, value)
	})
}

// Get returns a copy of the value under key.
func (b *BboltBackend) Get(bucket, key []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		if v := bkt.Get(key); v != nil {
			// only valid for the life of the transaction
			value = append([]byte(nil), v...)
		}
		return nil
	})
	return value, err
}

// Delete removes key from the bucket.
func (b *BboltBackend) Delete(bucket, key []byte) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

// ForEach visits every key of the bucket in byte order.
func (b *BboltBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.ForEach(fn)
	})
}

// Count returns the number of keys in the bucket.
func (b *BboltBackend) Count(bucket []byte) (int, error) {
	var n int
	err := b.db.View(func(tx *bolt.Tx) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		n = bkt.Stats().KeyN
		return nil
	})
	return n, err
}

// Update runs fn in a read-write transaction.
func (b *BboltBackend) Update(fn func(tx Transaction) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(bboltTx{tx})
	})
}

// View runs fn in a read-only transaction.
func (b *BboltBackend) View(fn func(tx Transaction) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return fn(bboltTx{tx})
	})
}

// Close closes the database file.
func (b *BboltBackend) Close() error {
	return b.db.Close()
}

func mustBucket(tx *bolt.Tx, name []byte) (*bolt.Bucket, error) {
	bkt := tx.Bucket(name)
	if bkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}

func deleteBucket(tx *bolt.Tx, name []byte) error {
	err := tx.DeleteBucket(name)
	if errors.Is(err, bolt.ErrBucketNotFound) {
		return nil
	}
	return err
}

type bboltTx struct {
	tx *bolt.Tx
}

func (t bboltTx) CreateBucket(name []byte) error {
	_, err := t.tx.CreateBucketIfNotExists(name)
	return err
}

func (t bboltTx) DeleteBucket(name []byte) error { return deleteBucket(t.tx, name) }

func (t bboltTx) Bucket(name []byte) Bucket {
	bkt := t.tx.Bucket(name)
	if bkt == nil {
		return nil
	}
	return bkt
}

func (t bboltTx) ForEachBucket(fn func(name []byte) error) error {
	return t.tx.ForEach(func(name []byte, _ *bolt.Bucket) error {
		return fn(name)
	})
}
