// Package bolt provides the endb adapter for bbolt, registered for the
// bolt:// and boltdb:// schemes. The URI path names the database file and
// the Table option names the bucket, so several stores can share one file.
package bolt

import (
	"bytes"
	"context"
	"errors"
	"os"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/endbase/endb/adapter"
)

const defaultBucket = "endb"

func init() {
	open := func(_ context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		return Open(Config{Path: adapter.URIPath(cfg.URI), Bucket: cfg.Table})
	}
	adapter.Register("bolt", open)
	adapter.Register("boltdb", open)
}

// Config locates and tunes the bolt database.
type Config struct {
	// Path is the database file, created if absent.
	Path string
	// Bucket holds the entries. Defaults to "endb".
	Bucket string
	// Mode is the file mode for a created database. Defaults to 0600.
	Mode os.FileMode
	// Timeout bounds the wait for the file lock. Defaults to 1s so a
	// second process fails fast instead of blocking forever.
	Timeout time.Duration
}

// DB implements adapter.Adapter over a single bolt bucket.
type DB struct {
	db     *bolt.DB
	bucket []byte
}

var _ adapter.Adapter = (*DB)(nil)

// Open opens the database file and ensures the bucket exists.
func Open(cfg Config) (*DB, error) {
	if cfg.Path == "" {
		return nil, errors.New("bolt adapter: path is required")
	}
	mode := cfg.Mode
	if mode == 0 {
		mode = 0o600
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Second
	}
	bucket := cfg.Bucket
	if bucket == "" {
		bucket = defaultBucket
	}
	db, err := bolt.Open(cfg.Path, mode, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, err
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &DB{db: db, bucket: []byte(bucket)}, nil
}

func (a *DB) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	var found bool
	err := a.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(a.bucket).Get([]byte(key))
		if v == nil {
			return nil
		}
		found = true
		out = make([]byte, len(v))
		copy(out, v)
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return out, found, nil
}

func (a *DB) Set(_ context.Context, key string, value []byte) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(a.bucket).Put([]byte(key), value)
	})
}

func (a *DB) Delete(_ context.Context, key string) (bool, error) {
	var existed bool
	err := a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(a.bucket)
		if b.Get([]byte(key)) == nil {
			return nil
		}
		existed = true
		return b.Delete([]byte(key))
	})
	return existed, err
}

func (a *DB) Clear(_ context.Context, prefix string) error {
	p := []byte(prefix)
	return a.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(a.bucket)
		// collect first: the cursor skips entries when deleting under it
		var doomed [][]byte
		c := b.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			doomed = append(doomed, append([]byte(nil), k...))
		}
		for _, k := range doomed {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *DB) All(_ context.Context, prefix string) ([]adapter.Entry, error) {
	p := []byte(prefix)
	var entries []adapter.Entry
	err := a.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(a.bucket).Cursor()
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			cp := make([]byte, len(v))
			copy(cp, v)
			entries = append(entries, adapter.Entry{Key: string(k), Value: cp})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (a *DB) Close(context.Context) error { return a.db.Close() }
