package landing

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pkg.jsn.cam/retailgen/pkg/retail"
	"pkg.jsn.cam/retailgen/pkg/storage"
)

var refTime = time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)

func testDataset(t *testing.T, seed int64) *retail.Dataset {
	t.Helper()
	ds, err := retail.New(seed, retail.WithReferenceTime(refTime)).GenerateAll(retail.GeneratorConfig{
		NumCustomers:     12,
		NumProducts:      8,
		NumStores:        3,
		NumOrders:        15,
		AvgItemsPerOrder: 2,
		Seed:             seed,
	})
	require.NoError(t, err)
	return ds
}

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := refTime
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestParseWriteMode(t *testing.T) {
	for in, want := range map[string]WriteMode{
		"append":     ModeAppend,
		"MERGE":      ModeMerge,
		" overwrite": ModeOverwrite,
	} {
		got, err := ParseWriteMode(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseWriteMode("upsert")
	assert.ErrorIs(t, err, ErrInvalidWriteMode)

	s := NewStore(storage.NewMemoryBackend(), "mock", nil)
	_, err = s.WriteTable("customers", nil, WriteOptions{Mode: "upsert"})
	assert.ErrorIs(t, err, ErrInvalidWriteMode)
}

func TestWriteDatasetCountsAndEnvelope(t *testing.T) {
	ds := testDataset(t, 42)
	s := NewStore(storage.NewMemoryBackend(), "mock_retail", nil, WithClock(tickingClock()))

	m, err := s.WriteDataset(ds, WriteOptions{BatchID: "batch-1"})
	require.NoError(t, err)
	assert.Equal(t, "batch-1", m.BatchID)
	assert.Equal(t, ModeMerge, m.Mode)
	assert.Equal(t, int64(42), m.Seed)
	assert.Equal(t, FormatVersion, m.FormatVersion)
	assert.NotContains(t, m.Tables, QuarantineTable)

	for table, want := range ds.Counts() {
		n, err := s.Count(table)
		require.NoError(t, err)
		assert.Equal(t, want, n, table)
		assert.Equal(t, want, m.Tables[table].Written, table)
	}

	env, err := s.Get(retail.TableCustomers, "CUST-00000001")
	require.NoError(t, err)
	require.NotNil(t, env)
	assert.Equal(t, "batch-1", env.BatchID)
	assert.Equal(t, "mock_retail", env.SourceSystem)
	assert.Equal(t, m.StartedAt, env.IngestionTimestamp)

	var c retail.Customer
	require.NoError(t, env.Decode(&c))
	if diff := cmp.Diff(ds.Customers[0], c); diff != "" {
		t.Errorf("stored customer differs:\n%s", diff)
	}

	var p retail.Product
	env, err = s.Get(retail.TableProducts, ds.Products[0].ProductID)
	require.NoError(t, err)
	require.NoError(t, env.Decode(&p))
	assert.True(t, ds.Products[0].UnitPrice.Equal(p.UnitPrice))

	missing, err := s.Get(retail.TableCustomers, "CUST-99999999")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tables, err := s.Tables()
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "order_items", "orders", "products", "stores"}, tables)
}

func TestMergeIsIdempotent(t *testing.T) {
	ds := testDataset(t, 1)
	s := NewStore(storage.NewMemoryBackend(), "mock", nil)

	_, err := s.WriteDataset(ds, WriteOptions{Mode: ModeMerge})
	require.NoError(t, err)
	_, err = s.WriteDataset(ds, WriteOptions{Mode: ModeMerge})
	require.NoError(t, err)

	n, err := s.Count(retail.TableOrders)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Orders), n)

	manifests, err := s.Manifests()
	require.NoError(t, err)
	assert.Len(t, manifests, 2)
}

func TestAppendKeepsExistingRows(t *testing.T) {
	s := NewStore(storage.NewMemoryBackend(), "mock", nil)

	first := []retail.Record{retail.Store{StoreID: "STORE-0001", StoreName: "Loja A"}}
	_, err := s.WriteTable(retail.TableStores, first, WriteOptions{Mode: ModeAppend, BatchID: "b1"})
	require.NoError(t, err)

	second := []retail.Record{
		retail.Store{StoreID: "STORE-0001", StoreName: "Loja B"},
		retail.Store{StoreID: "STORE-0002", StoreName: "Loja C"},
	}
	stats, err := s.WriteTable(retail.TableStores, second, WriteOptions{Mode: ModeAppend, BatchID: "b2"})
	require.NoError(t, err)
	assert.Equal(t, TableStats{Rows: 2, Written: 1, Skipped: 1}, stats)

	env, err := s.Get(retail.TableStores, "STORE-0001")
	require.NoError(t, err)
	var st retail.Store
	require.NoError(t, env.Decode(&st))
	assert.Equal(t, "Loja A", st.StoreName)
	assert.Equal(t, "b1", env.BatchID)

	// merge replaces it
	_, err = s.WriteTable(retail.TableStores, second[:1], WriteOptions{Mode: ModeMerge, BatchID: "b3"})
	require.NoError(t, err)
	env, err = s.Get(retail.TableStores, "STORE-0001")
	require.NoError(t, err)
	require.NoError(t, env.Decode(&st))
	assert.Equal(t, "Loja B", st.StoreName)
}

func TestOverwriteDropsPreviousRows(t *testing.T) {
	s := NewStore(storage.NewMemoryBackend(), "mock", nil)

	big := testDataset(t, 3)
	_, err := s.WriteDataset(big, WriteOptions{})
	require.NoError(t, err)

	small := []retail.Record{big.Customers[5]}
	_, err = s.WriteTable(retail.TableCustomers, small, WriteOptions{Mode: ModeOverwrite})
	require.NoError(t, err)

	n, err := s.Count(retail.TableCustomers)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	env, err := s.Get(retail.TableCustomers, "CUST-00000001")
	require.NoError(t, err)
	assert.Nil(t, env)
}

func TestOrphanItemsAreQuarantined(t *testing.T) {
	ds := testDataset(t, 5)
	orphan := ds.OrderItems[0]
	orphan.OrderID = "ORD-9999999999"
	orphan.OrderItemID = "ORD-9999999999-001"
	ds.OrderItems = append(ds.OrderItems, orphan)

	core, logs := observer.New(zapcore.WarnLevel)
	s := NewStore(storage.NewMemoryBackend(), "mock", zap.New(core))

	m, err := s.WriteDataset(ds, WriteOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, m.Tables[QuarantineTable].Written)
	assert.Equal(t, len(ds.OrderItems)-1, m.Tables[retail.TableOrderItems].Written)

	env, err := s.Get(QuarantineTable, orphan.OrderItemID)
	require.NoError(t, err)
	require.NotNil(t, env)

	env, err = s.Get(retail.TableOrderItems, orphan.OrderItemID)
	require.NoError(t, err)
	assert.Nil(t, env)

	entries := logs.FilterMessage("found orphan order items").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(1), entries[0].ContextMap()["orphan_count"])
}

func TestCheckReferentialIntegrity(t *testing.T) {
	orders := []retail.Order{{OrderID: "O1"}, {OrderID: "O2"}}
	items := []retail.OrderItem{
		{OrderItemID: "O1-001", OrderID: "O1"},
		{OrderItemID: "O3-001", OrderID: "O3"},
		{OrderItemID: "O2-001", OrderID: "O2"},
		{OrderItemID: "O1-002", OrderID: "O1"},
	}

	valid, quarantined := CheckReferentialIntegrity(orders, items)
	assert.Equal(t, []string{"O1-001", "O2-001", "O1-002"}, itemIDs(valid))
	assert.Equal(t, []string{"O3-001"}, itemIDs(quarantined))

	valid, quarantined = CheckReferentialIntegrity(nil, nil)
	assert.Empty(t, valid)
	assert.Empty(t, quarantined)
}

func TestGeneratedDatasetHasNoOrphans(t *testing.T) {
	ds := testDataset(t, 77)
	valid, quarantined := CheckReferentialIntegrity(ds.Orders, ds.OrderItems)
	assert.Len(t, valid, len(ds.OrderItems))
	assert.Empty(t, quarantined)
}

func TestManifestsOrderedAndVersionChecked(t *testing.T) {
	backend := storage.NewMemoryBackend()
	s := NewStore(backend, "mock", nil, WithClock(tickingClock()))

	for _, id := range []string{"zz-batch", "aa-batch"} {
		_, err := s.WriteDataset(testDataset(t, 2), WriteOptions{BatchID: id})
		require.NoError(t, err)
	}

	manifests, err := s.Manifests()
	require.NoError(t, err)
	require.Len(t, manifests, 2)
	assert.Equal(t, "zz-batch", manifests[0].BatchID)
	assert.Equal(t, "aa-batch", manifests[1].BatchID)
	assert.True(t, manifests[0].CompletedAt.After(manifests[0].StartedAt))

	future := Manifest{BatchID: "from-the-future", FormatVersion: "v2.0.0"}
	data, err := storage.EncodeJSON(future)
	require.NoError(t, err)
	require.NoError(t, backend.Put(manifestsBucket, []byte(future.BatchID), data))

	_, err = s.Manifests()
	assert.ErrorIs(t, err, ErrIncompatibleFormat)
}

func TestManifestsEmptyStore(t *testing.T) {
	s := NewStore(storage.NewMemoryBackend(), "mock", nil)
	manifests, err := s.Manifests()
	require.NoError(t, err)
	assert.Empty(t, manifests)

	_, err = s.Count("customers")
	assert.ErrorIs(t, err, ErrTableNotFound)
	_, err = s.Get("customers", "x")
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestCheckFormat(t *testing.T) {
	assert.NoError(t, checkFormat("v1.0.0"))
	assert.NoError(t, checkFormat("v1.9.3"))
	assert.ErrorIs(t, checkFormat("v2.0.0"), ErrIncompatibleFormat)
	assert.ErrorIs(t, checkFormat("1.0.0"), ErrIncompatibleFormat)
	assert.ErrorIs(t, checkFormat(""), ErrIncompatibleFormat)
}

func TestProgressAndBbolt(t *testing.T) {
	backend, err := storage.NewBboltBackend(filepath.Join(t.TempDir(), "landing.db"))
	require.NoError(t, err)

	seen := map[string]int{}
	s := NewStore(backend, "mock", zap.NewNop(), WithProgress(func(table string, n int) {
		seen[table] += n
	}))
	defer s.Close()

	ds := testDataset(t, 9)
	_, err = s.WriteDataset(ds, WriteOptions{})
	require.NoError(t, err)

	assert.Equal(t, ds.Counts(), seen)

	n, err := s.Count(retail.TableOrderItems)
	require.NoError(t, err)
	assert.Equal(t, len(ds.OrderItems), n)
}

// failingBackend fails the commit of any Update that leaves table present.
type failingBackend struct {
	*storage.MemoryBackend
	table string
}

var errCommit = errors.New("commit failed")

func (f failingBackend) Update(fn func(tx storage.Transaction) error) error {
	return f.MemoryBackend.Update(func(tx storage.Transaction) error {
		if err := fn(tx); err != nil {
			return err
		}
		if tx.Bucket([]byte(f.table)) != nil {
			return errCommit
		}
		return nil
	})
}

func TestFailedTableLeavesNoManifest(t *testing.T) {
	backend := failingBackend{MemoryBackend: storage.NewMemoryBackend(), table: retail.TableOrders}

	seen := map[string]int{}
	s := NewStore(backend, "mock", nil, WithProgress(func(table string, n int) {
		seen[table] += n
	}))

	ds := testDataset(t, 13)
	_, err := s.WriteDataset(ds, WriteOptions{BatchID: "partial"})
	require.ErrorIs(t, err, errCommit)
	assert.Contains(t, err.Error(), "batch partial")

	// only committed tables are reported
	assert.Equal(t, map[string]int{
		retail.TableCustomers: len(ds.Customers),
		retail.TableProducts:  len(ds.Products),
		retail.TableStores:    len(ds.Stores),
	}, seen)

	n, err := s.Count(retail.TableCustomers)
	require.NoError(t, err)
	assert.Equal(t, len(ds.Customers), n)

	manifests, err := s.Manifests()
	require.NoError(t, err)
	assert.Empty(t, manifests)
}

func itemIDs(items []retail.OrderItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.OrderItemID
	}
	return out
}
