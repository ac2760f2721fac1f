// Package landing persists generated datasets into the raw ("bronze") tier:
// one bucket per table, every row wrapped with lineage metadata, and one
// manifest per batch.
package landing

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pkg.jsn.cam/retailgen/pkg/retail"
	"pkg.jsn.cam/retailgen/pkg/storage"
)

// FormatVersion is the on-disk layout version written into every manifest.
// Readers accept any manifest with the same major version.
const FormatVersion = "v1.1.0"

// QuarantineTable receives order items whose order is missing.
const QuarantineTable = "order_items_quarantine"

var manifestsBucket = []byte("_manifests")

var (
	// ErrInvalidWriteMode is returned for a mode other than append, merge or overwrite.
	ErrInvalidWriteMode = errors.New("invalid write mode")
	// ErrTableNotFound is returned when reading a table that was never written.
	ErrTableNotFound = errors.New("table not found")
	// ErrIncompatibleFormat is returned for a manifest from another major layout version.
	ErrIncompatibleFormat = errors.New("incompatible landing format")
)

// WriteMode selects what happens to rows already present in a table.
type WriteMode string

const (
	// ModeAppend inserts keys not yet present and leaves existing rows alone.
	ModeAppend WriteMode = "append"
	// ModeMerge upserts by business key.
	ModeMerge WriteMode = "merge"
	// ModeOverwrite drops the table before writing.
	ModeOverwrite WriteMode = "overwrite"
)

// ParseWriteMode parses a mode name, ignoring case and surrounding spaces.
func ParseWriteMode(s string) (WriteMode, error) {
	switch m := WriteMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeAppend, ModeMerge, ModeOverwrite:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q (want append, merge or overwrite)", ErrInvalidWriteMode, s)
}

// Envelope is the stored form of a row.
type Envelope struct {
	Data               json.RawMessage `json:"data"`
	IngestionTimestamp time.Time       `json:"_ingestion_timestamp"`
	SourceSystem       string          `json:"_source_system"`
	BatchID            string          `json:"_batch_id"`
}

// Decode unmarshals the wrapped record into v.
func (e *Envelope) Decode(v any) error {
	return storage.DecodeJSON(e.Data, v)
}

// TableStats counts what one batch did to one table.
type TableStats struct {
	Rows    int `json:"rows"`
	Written int `json:"written"`
	Skipped int `json:"skipped"`
}

// Manifest records one batch.
type Manifest struct {
	BatchID       string                `json:"batch_id"`
	SourceSystem  string                `json:"source_system"`
	Mode          WriteMode             `json:"mode"`
	Seed          int64                 `json:"seed"`
	FormatVersion string                `json:"format_version"`
	StartedAt     time.Time             `json:"started_at"`
	CompletedAt   time.Time             `json:"completed_at"`
	Tables        map[string]TableStats `json:"tables"`
}

// Store writes and reads landing tables on top of a storage.Backend.
type Store struct {
	db       *storage.JSONStore
	source   string
	logger   *zap.Logger
	now      func() time.Time
	progress func(table string, n int)
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the ingestion timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithProgress registers a callback invoked once per table after its
// transaction commits, with the number of rows written.
func WithProgress(fn func(table string, n int)) Option {
	return func(s *Store) { s.progress = fn }
}

// NewStore wraps backend. source names the system the rows come from and is
// stamped on every row.
func NewStore(backend storage.Backend, source string, logger *zap.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		db:       storage.NewJSONStore(backend),
		source:   source,
		logger:   logger.Named("landing"),
		now:      func() time.Time { return time.Now().UTC() },
		progress: func(string, int) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WriteOptions parameterize a write.
type WriteOptions struct {
	Mode WriteMode
	// BatchID defaults to a random UUID.
	BatchID string
}

func (o WriteOptions) normalize() (WriteOptions, error) {
	if o.Mode == "" {
		o.Mode = ModeMerge
	}
	if _, err := ParseWriteMode(string(o.Mode)); err != nil {
		return o, err
	}
	if o.BatchID == "" {
		o.BatchID = uuid.NewString()
	}
	return o, nil
}

// WriteTable stores records into table in a single transaction.
func (s *Store) WriteTable(table string, records []retail.Record, opts WriteOptions) (TableStats, error) {
	opts, err := opts.normalize()
	if err != nil {
		return TableStats{}, err
	}
	return s.writeTable(table, records, opts, s.now())
}

func (s *Store) writeTable(table string, records []retail.Record, opts WriteOptions, at time.Time) (TableStats, error) {
	stats := TableStats{Rows: len(records)}
	name := []byte(table)

	err := s.db.Update(func(tx storage.Transaction) error {
		if opts.Mode == ModeOverwrite {
			if err := tx.DeleteBucket(name); err != nil {
				return fmt.Errorf("drop %s: %w", table, err)
			}
		}
		if err := tx.CreateBucket(name); err != nil {
			return fmt.Errorf("create %s: %w", table, err)
		}
		b := tx.Bucket(name)

		for _, r := range records {
			key := []byte(r.Key())
			if opts.Mode == ModeAppend && b.Get(key) != nil {
				stats.Skipped++
				continue
			}

			data, err := storage.EncodeJSON(r)
			if err != nil {
				return fmt.Errorf("%s %s: %w", table, r.Key(), err)
			}
			row, err := storage.EncodeJSON(Envelope{
				Data:               data,
				IngestionTimestamp: at,
				SourceSystem:       s.source,
				BatchID:            opts.BatchID,
			})
			if err != nil {
				return fmt.Errorf("%s %s: %w", table, r.Key(), err)
			}
			if err := b.Put(key, row); err != nil {
				return fmt.Errorf("%s %s: %w", table, r.Key(), err)
			}
			stats.Written++
		}
		return nil
	})
	if err != nil {
		return TableStats{}, err
	}
	s.progress(table, stats.Written)

	s.logger.Info("table written",
		zap.String("table", table),
		zap.String("mode", string(opts.Mode)),
		zap.String("batch_id", opts.BatchID),
		zap.Int("rows", stats.Rows),
		zap.Int("written", stats.Written),
		zap.Int("skipped", stats.Skipped),
	)
	return stats, nil
}

// WriteDataset writes every table of ds in dependency order under one batch
// id. Order items that reference no order in ds go to QuarantineTable.
//
// Each table commits in its own transaction and the manifest is written
// last. If a table fails, the tables before it stay landed and no manifest
// is recorded for the batch; rerunning with ModeMerge and the same batch id
// completes it.
func (s *Store) WriteDataset(ds *retail.Dataset, opts WriteOptions) (*Manifest, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	started := s.now()
	m := &Manifest{
		BatchID:       opts.BatchID,
		SourceSystem:  s.source,
		Mode:          opts.Mode,
		Seed:          ds.Config.Seed,
		FormatVersion: FormatVersion,
		StartedAt:     started,
		Tables:        make(map[string]TableStats),
	}

	valid, quarantined := CheckReferentialIntegrity(ds.Orders, ds.OrderItems)
	if len(quarantined) > 0 {
		s.logger.Warn("found orphan order items",
			zap.Int("orphan_count", len(quarantined)),
			zap.String("action", "quarantined"),
		)
	}

	tables := []struct {
		name string
		rows []retail.Record
	}{
		{retail.TableCustomers, retail.Records(ds.Customers)},
		{retail.TableProducts, retail.Records(ds.Products)},
		{retail.TableStores, retail.Records(ds.Stores)},
		{retail.TableOrders, retail.Records(ds.Orders)},
		{retail.TableOrderItems, retail.Records(valid)},
		{QuarantineTable, retail.Records(quarantined)},
	}

	for _, t := range tables {
		if t.name == QuarantineTable && len(t.rows) == 0 && opts.Mode != ModeOverwrite {
			continue
		}
		stats, err := s.writeTable(t.name, t.rows, opts, started)
		if err != nil {
			return nil, fmt.Errorf("batch %s: %w", opts.BatchID, err)
		}
		m.Tables[t.name] = stats
	}

	m.CompletedAt = s.now()
	if err := s.putManifest(m); err != nil {
		return nil, err
	}

	s.logger.Info("batch complete",
		zap.String("batch_id", m.BatchID),
		zap.Int64("seed", m.Seed),
		zap.Duration("took", m.CompletedAt.Sub(m.StartedAt)),
	)
	return m, nil
}

// CheckReferentialIntegrity splits items into those whose order exists in
// orders and those that must be quarantined. Input order is preserved.
func CheckReferentialIntegrity(orders []retail.Order, items []retail.OrderItem) (valid, quarantined []retail.OrderItem) {
	known := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		known[o.OrderID] = struct{}{}
	}

	valid = make([]retail.OrderItem, 0, len(items))
	for _, it := range items {
		if _, ok := known[it.OrderID]; ok {
			valid = append(valid, it)
		} else {
			quarantined = append(quarantined, it)
		}
	}
	return valid, quarantined
}
