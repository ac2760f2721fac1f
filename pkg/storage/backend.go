package storage

import "errors"

// ErrBucketNotFound is returned when an operation targets a missing bucket.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store. Keys iterate in byte order in
// every implementation, so readers see rows in business-key order.
type Backend interface {
	CreateBucket(name []byte) error
	DeleteBucket(name []byte) error
	BucketExists(name []byte) (bool, error)

	Put(bucket, key, value []byte) error
	// Get returns nil, nil for a missing key.
	Get(bucket, key []byte) ([]byte, error)
	Delete(bucket, key []byte) error
	ForEach(bucket []byte, fn func(k, v []byte) error) error
	Count(bucket []byte) (int, error)

	// Update runs fn in a read-write transaction; an error rolls it back
	// where the implementation supports rollback.
	Update(fn func(tx Transaction) error) error
	View(fn func(tx Transaction) error) error

	Close() error
}

// Transaction groups several bucket operations.
type Transaction interface {
	CreateBucket(name []byte) error
	DeleteBucket(name []byte) error
	// Bucket returns nil when the bucket does not exist.
	Bucket(name []byte) Bucket
	ForEachBucket(fn func(name []byte) error) error
}

// Bucket is a bucket bound to a transaction.
type Bucket interface {
	Put(key, value []byte) error
	Get(key []byte) []byte
	Delete(key []byte) error
	ForEach(fn func(k, v []byte) error) error
}
