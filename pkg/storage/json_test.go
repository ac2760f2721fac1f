package storage

import (
	"testing"
)

type testRow struct {
	ID    string `json:"id"`
	Price string `json:"price"`
}

func TestJSONStore(t *testing.T) {
	store := NewJSONStore(NewMemoryBackend())
	defer store.Close()
	store.CreateBucket([]byte("rows"))

	t.Run("PutAndGet", func(t *testing.T) {
		if err := store.PutJSON([]byte("rows"), []byte("a"), testRow{ID: "a", Price: "9.99"}); err != nil {
			t.Fatalf("PutJSON failed: %v", err)
		}

		var got testRow
		found, err := store.GetJSON([]byte("rows"), []byte("a"), &got)
		if err != nil || !found {
			t.Fatalf("GetJSON = %v, %v", found, err)
		}
		if got.Price != "9.99" {
			t.Errorf("got %+v", got)
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		got := testRow{ID: "untouched"}
		found, err := store.GetJSON([]byte("rows"), []byte("zzz"), &got)
		if err != nil {
			t.Fatalf("GetJSON failed: %v", err)
		}
		if found || got.ID != "untouched" {
			t.Errorf("missing key: found=%v got=%+v", found, got)
		}
	})

	t.Run("ForEachJSON", func(t *testing.T) {
		store.PutJSON([]byte("rows"), []byte("b"), testRow{ID: "b"})

		var ids []string
		err := ForEachJSON(store, []byte("rows"), func(key string, v testRow) error {
			if key != v.ID {
				t.Errorf("key %s holds row %s", key, v.ID)
			}
			ids = append(ids, v.ID)
			return nil
		})
		if err != nil {
			t.Fatalf("ForEachJSON failed: %v", err)
		}
		if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
			t.Errorf("ids = %v", ids)
		}
	})

	t.Run("ForEachJSONBadValue", func(t *testing.T) {
		store.Put([]byte("rows"), []byte("c"), []byte("not json"))
		err := ForEachJSON(store, []byte("rows"), func(string, testRow) error { return nil })
		if err == nil {
			t.Error("expected a decode error")
		}
	})
}
