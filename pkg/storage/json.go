package storage

import (
	"encoding/json"
	"fmt"
)

// JSONStore adds JSON encoding on top of a Backend.
type JSONStore struct {
	Backend
}

// NewJSONStore wraps backend.
func NewJSONStore(backend Backend) *JSONStore {
	return &JSONStore{Backend: backend}
}

// PutJSON encodes v and stores it under key.
func (j *JSONStore) PutJSON(bucket, key []byte, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return j.Put(bucket, key, data)
}

// GetJSON decodes the value under key into v. It reports whether the key
// existed; a missing key leaves v untouched.
func (j *JSONStore) GetJSON(bucket, key []byte, v any) (bool, error) {
	data, err := j.Get(bucket, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}
	return true, DecodeJSON(data, v)
}

// ForEachJSON decodes every value of bucket into a fresh T, in key order.
func ForEachJSON[T any](j *JSONStore, bucket []byte, fn func(key string, v T) error) error {
	return j.ForEach(bucket, func(k, data []byte) error {
		var v T
		if err := DecodeJSON(data, &v); err != nil {
			return fmt.Errorf("key %s: %w", k, err)
		}
		return fn(string(k), v)
	})
}

// EncodeJSON marshals v.
func EncodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}
	return data, nil
}

// DecodeJSON unmarshals data into v.
func DecodeJSON(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}
