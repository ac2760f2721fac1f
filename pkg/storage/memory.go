package storage

import (
	"fmt"
	"slices"
	"sync"
)

// MemoryBackend keeps everything in maps. Update transactions are not
// isolated and do not roll back.
type MemoryBackend struct {
	buckets map[string]map[string][]byte
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
	}
}

// CreateBucket creates a bucket if it does not exist.
func (m *MemoryBackend) CreateBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[string(name)]; !ok {
		m.buckets[string(name)] = make(map[string][]byte)
	}
	return nil
}

// DeleteBucket removes a bucket. Deleting a missing bucket is a no-op.
func (m *MemoryBackend) DeleteBucket(name []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.buckets, string(name))
	return nil
}

// BucketExists reports whether the bucket exists.
func (m *MemoryBackend) BucketExists(name []byte) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.buckets[string(name)]
	return ok, nil
}

// Put stores a copy of value under key.
func (m *MemoryBackend) Put(bucket, key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	// callers may reuse value
	bkt[string(key)] = slices.Clone(value)
	return nil
}

// Get returns a copy of the value under key.
func (m *MemoryBackend) Get(bucket, key []byte) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	v, ok := bkt[string(key)]
	if !ok {
		return nil, nil
	}
	return slices.Clone(v), nil
}

// Delete removes key from the bucket.
func (m *MemoryBackend) Delete(bucket, key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	delete(bkt, string(key))
	return nil
}

// ForEach visits keys in sorted order over a snapshot of the bucket, so fn
// may write to the backend.
func (m *MemoryBackend) ForEach(bucket []byte, fn func(k, v []byte) error) error {
	m.mu.RLock()
	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		m.mu.RUnlock()
		return fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	keys := make([]string, 0, len(bkt))
	for k := range bkt {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	values := make([][]byte, len(keys))
	for i, k := range keys {
		values[i] = bkt[k]
	}
	m.mu.RUnlock()

	for i, k := range keys {
		if err := fn([]byte(k), values[i]); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of keys in the bucket.
func (m *MemoryBackend) Count(bucket []byte) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bkt, ok := m.buckets[string(bucket)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrBucketNotFound, bucket)
	}
	return len(bkt), nil
}

// Update runs fn against the live maps.
func (m *MemoryBackend) Update(fn func(tx Transaction) error) error {
	return fn(memoryTx{m})
}

// View runs fn against the live maps.
func (m *MemoryBackend) View(fn func(tx Transaction) error) error {
	return fn(memoryTx{m})
}

// Close is a no-op.
func (m *MemoryBackend) Close() error { return nil }

type memoryTx struct {
	m *MemoryBackend
}

func (t memoryTx) CreateBucket(name []byte) error { return t.m.CreateBucket(name) }
func (t memoryTx) DeleteBucket(name []byte) error { return t.m.DeleteBucket(name) }

func (t memoryTx) Bucket(name []byte) Bucket {
	if ok, _ := t.m.BucketExists(name); !ok {
		return nil
	}
	return memoryBucket{m: t.m, name: slices.Clone(name)}
}

func (t memoryTx) ForEachBucket(fn func(name []byte) error) error {
	t.m.mu.RLock()
	names := make([]string, 0, len(t.m.buckets))
	for n := range t.m.buckets {
		names = append(names, n)
	}
	t.m.mu.RUnlock()
	slices.Sort(names)

	for _, n := range names {
		if err := fn([]byte(n)); err != nil {
			return err
		}
	}
	return nil
}

type memoryBucket struct {
	m    *MemoryBackend
	name []byte
}

func (b memoryBucket) Put(key, value []byte) error { return b.m.Put(b.name, key, value) }

func (b memoryBucket) Get(key []byte) []byte {
	v, _ := b.m.Get(b.name, key)
	return v
}

func (b memoryBucket) Delete(key []byte) error { return b.m.Delete(b.name, key) }

func (b memoryBucket) ForEach(fn func(k, v []byte) error) error {
	return b.m.ForEach(b.name, fn)
}
