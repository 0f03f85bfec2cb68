package bolt

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Config{Path: filepath.Join(t.TempDir(), "endb.db")})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close(context.Background()) })
	return db
}

// TestCRUD covers the adapter contract against a real file.
func TestCRUD(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	if _, ok, err := db.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("Get on empty db: ok=%v err=%v", ok, err)
	}
	if err := db.Set(ctx, "k", []byte{0x00, 0xff}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := db.Get(ctx, "k")
	if err != nil || !ok || !reflect.DeepEqual(v, []byte{0x00, 0xff}) {
		t.Fatalf("Get: v=%v ok=%v err=%v", v, ok, err)
	}
	if ok, err := db.Delete(ctx, "k"); err != nil || !ok {
		t.Fatalf("Delete: ok=%v err=%v", ok, err)
	}
	if ok, err := db.Delete(ctx, "k"); err != nil || ok {
		t.Fatalf("Delete absent: ok=%v err=%v", ok, err)
	}
}

// TestPrefixScan checks All and Clear stay inside the prefix via the cursor
// seek path.
func TestPrefixScan(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)

	_ = db.Set(ctx, "ns:a", []byte("1"))
	_ = db.Set(ctx, "ns:b", []byte("2"))
	_ = db.Set(ctx, "nt:a", []byte("3")) // adjacent prefix, must not leak

	entries, err := db.All(ctx, "ns:")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(entries) != 2 || entries[0].Key != "ns:a" || entries[1].Key != "ns:b" {
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

// TestPersistence reopens the file and expects the data back.
func TestPersistence(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "endb.db")

	db, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := db.Set(ctx, "k", []byte("survives")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := db.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	db2, err := Open(Config{Path: path})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close(ctx)
	v, ok, err := db2.Get(ctx, "k")
	if err != nil || !ok || string(v) != "survives" {
		t.Fatalf("Get after reopen: v=%q ok=%v err=%v", v, ok, err)
	}
}

// TestCustomBucket isolates entries per bucket within one file.
func TestCustomBucket(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "endb.db")

	a, err := Open(Config{Path: path, Bucket: "first"})
	if err != nil {
		t.Fatalf("Open first: %v", err)
	}
	_ = a.Set(ctx, "k", []byte("1"))
	if err := a.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}

	b, err := Open(Config{Path: path, Bucket: "second"})
	if err != nil {
		t.Fatalf("Open second: %v", err)
	}
	defer b.Close(ctx)
	if _, ok, _ := b.Get(ctx, "k"); ok {
		t.Fatalf("buckets must not share entries")
	}
}

// TestOpenMissingDir fails fast when the path cannot be created.
func TestOpenMissingDir(t *testing.T) {
	_, err := Open(Config{Path: filepath.Join(t.TempDir(), "no", "such", "dir", "endb.db")})
	if err == nil {
		t.Fatalf("Open into a missing directory should fail")
	}
}

// TestOpenRequiresPath rejects the zero config.
func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(Config{}); err == nil {
		t.Fatalf("Open without path should fail")
	}
}
