package landing

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/mod/semver"

	"pkg.jsn.cam/retailgen/pkg/storage"
)

func (s *Store) putManifest(m *Manifest) error {
	if err := s.db.CreateBucket(manifestsBucket); err != nil {
		return fmt.Errorf("create manifests bucket: %w", err)
	}
	if err := s.db.PutJSON(manifestsBucket, []byte(m.BatchID), m); err != nil {
		return fmt.Errorf("save manifest %s: %w", m.BatchID, err)
	}
	return nil
}

// Manifests returns every batch manifest, oldest first. A manifest written
// by an incompatible layout version fails the whole call.
func (s *Store) Manifests() ([]Manifest, error) {
	ok, err := s.db.BucketExists(manifestsBucket)
	if err != nil || !ok {
		return nil, err
	}

	var out []Manifest
	err = storage.ForEachJSON(s.db, manifestsBucket, func(key string, m Manifest) error {
		if err := checkFormat(m.FormatVersion); err != nil {
			return fmt.Errorf("batch %s: %w", key, err)
		}
		out = append(out, m)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(out, func(a, b Manifest) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	return out, nil
}

func checkFormat(v string) error {
	if !semver.IsValid(v) {
		return fmt.Errorf("%w: invalid version %q", ErrIncompatibleFormat, v)
	}
	if semver.Major(v) != semver.Major(FormatVersion) {
		return fmt.Errorf("%w: %s, reader supports %s.x.x", ErrIncompatibleFormat, v, semver.Major(FormatVersion))
	}
	return nil
}

// Tables lists the data tables present in the store, sorted.
func (s *Store) Tables() ([]string, error) {
	var names []string
	err := s.db.View(func(tx storage.Transaction) error {
		return tx.ForEachBucket(func(name []byte) error {
			if !strings.HasPrefix(string(name), "_") {
				names = append(names, string(name))
			}
			return nil
		})
	})
	slices.Sort(names)
	return names, err
}

// Count returns the number of rows in table.
func (s *Store) Count(table string) (int, error) {
	n, err := s.db.Count([]byte(table))
	if errors.Is(err, storage.ErrBucketNotFound) {
		return 0, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return n, err
}

// Get returns the stored envelope for key, or nil if the key is absent.
func (s *Store) Get(table, key string) (*Envelope, error) {
	var env Envelope
	found, err := s.db.GetJSON([]byte(table), []byte(key), &env)
	if errors.Is(err, storage.ErrBucketNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	if err != nil || !found {
		return nil, err
	}
	return &env, nil
}

// Close closes the underlying backend.
func (s *Store) Close() error {
	return s.db.Close()
}
