package badger

import (
	"context"
	"reflect"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{InMemory: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

// TestCRUD covers the adapter contract over an in-memory instance.
func TestCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, ok, err := db.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty db: ok=%v err=%v", ok, err)
	}
	if err := db.Set(ctx, "k", []byte{0x00, 0x01}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := db.Get(ctx, "k")
	if err != nil || !ok || !reflect.DeepEqual(v, []byte{0x00, 0x01}) {
		t.Fatalf("Get: v=%v ok=%v err=%v", v, ok, err)
	}
	if ok, err := db.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if ok, err := db.Delete(ctx, "k"); err != nil || ok {
		t.Fatalf("Delete absent: ok=%v err=%v", ok, err)
	}
}

// TestPrefixScan checks the iterator honors the prefix and DropPrefix only
// clears its own namespace.
func TestPrefixScan(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_ = db.Set(ctx, "ns:a", []byte("1"))
	_ = db.Set(ctx, "ns:b", []byte("2"))
	_ = db.Set(ctx, "nt:a", []byte("3"))

	entries, err := db.All(ctx, "ns:")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("All(ns:) = %v", entries)
	}

	if err := db.Clear(ctx, "ns:"); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if _, ok, _ := db.Get(ctx, "ns:a"); ok {
		t.Fatalf("ns:a should be cleared")
	}
	if _, ok, _ := db.Get(ctx, "nt:a"); !ok {
		t.Fatalf("nt:a should survive Clear(ns:)")
	}
}

// TestOpenRequiresDir rejects a config with neither Dir nor InMemory.
func TestOpenRequiresDir(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Fatalf("Open without dir should fail")
	}
}
