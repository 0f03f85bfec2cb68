// Package badger provides the endb adapter for BadgerDB, registered for the
// badger:// and badgerdb:// schemes. The URI path names the data directory.
package badger

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/endbase/endb/adapter"
)

func init() {
	open := func(_ context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		return Open(Config{Dir: adapter.URIPath(cfg.URI)})
	}
	adapter.Register("badger", open)
	adapter.Register("badgerdb", open)
}

// Config locates and tunes the badger database.
type Config struct {
	// Dir is the LSM and value-log directory, created if absent.
	Dir string
	// InMemory skips the filesystem entirely. Dir must be empty.
	InMemory bool
	// Logger receives badger's internal logging. nil silences it, which
	// is the right default for a library embedding badger.
	Logger badger.Logger
}

// DB implements adapter.Adapter over a badger instance.
type DB struct {
	db *badger.DB
}

var _ adapter.Adapter = (*DB)(nil)

// Open opens (or creates) the database.
func Open(cfg Config) (*DB, error) {
	if cfg.Dir == "" && !cfg.InMemory {
		return nil, errors.New("badger adapter: dir is required")
	}
	opts := badger.DefaultOptions(cfg.Dir).WithLogger(cfg.Logger)
	if cfg.InMemory {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (a *DB) Get(_ context.Context, key string) ([]byte, bool, error) {
	var out []byte
	err := a.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (a *DB) Set(_ context.Context, key string, value []byte) error {
	return a.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (a *DB) Delete(_ context.Context, key string) (bool, error) {
	var existed bool
	err := a.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(key)); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		existed = true
		return txn.Delete([]byte(key))
	})
	return existed, err
}

func (a *DB) Clear(_ context.Context, prefix string) error {
	return a.db.DropPrefix([]byte(prefix))
}

func (a *DB) All(_ context.Context, prefix string) ([]adapter.Entry, error) {
	var entries []adapter.Entry
	err := a.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			v, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			entries = append(entries, adapter.Entry{Key: string(item.Key()), Value: v})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (a *DB) Close(context.Context) error { return a.db.Close() }
