// Package bigcache provides a volatile in-process endb adapter backed by
// allegro/bigcache, registered for the bigcache:// scheme. Entries evict
// once the life window passes, so treat it as the cache class of backend
// rather than durable storage.
package bigcache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/endbase/endb/adapter"
)

const defaultLifeWindow = 24 * time.Hour

func init() {
	adapter.Register("bigcache", func(ctx context.Context, _ adapter.Config) (adapter.Adapter, error) {
		return New(ctx, Config{})
	})
}

// Config tunes the underlying bigcache instance. Zero values take the
// bigcache defaults for a 24h life window.
type Config struct {
	// LifeWindow is how long entries stay before eviction.
	LifeWindow time.Duration
	// CleanWindow is the interval between sweeps of expired entries.
	CleanWindow time.Duration
	// MaxEntriesInWindow sizes the initial shard allocation.
	MaxEntriesInWindow int
	// MaxEntrySize is the expected entry size in bytes, for allocation.
	MaxEntrySize int
	// HardMaxCacheSize caps memory in MB. 0 means unbounded.
	HardMaxCacheSize int
}

// Cache implements adapter.Adapter over a bigcache instance.
type Cache struct {
	c *bc.BigCache

	closeOnce sync.Once
	closeErr  error
}

var _ adapter.Adapter = (*Cache)(nil)

// New builds a bigcache-backed adapter.
func New(ctx context.Context, cfg Config) (*Cache, error) {
	life := cfg.LifeWindow
	if life <= 0 {
		life = defaultLifeWindow
	}
	conf := bc.DefaultConfig(life)
	if cfg.CleanWindow > 0 {
		conf.CleanWindow = cfg.CleanWindow
	}
	if cfg.MaxEntriesInWindow > 0 {
		conf.MaxEntriesInWindow = cfg.MaxEntriesInWindow
	}
	if cfg.MaxEntrySize > 0 {
		conf.MaxEntrySize = cfg.MaxEntrySize
	}
	if cfg.HardMaxCacheSize > 0 {
		conf.HardMaxCacheSize = cfg.HardMaxCacheSize
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, err
	}
	return &Cache{c: c}, nil
}

func (a *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	b, err := a.c.Get(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (a *Cache) Set(_ context.Context, key string, value []byte) error {
	return a.c.Set(key, value)
}

func (a *Cache) Delete(_ context.Context, key string) (bool, error) {
	err := a.c.Delete(key)
	if errors.Is(err, bc.ErrEntryNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *Cache) Clear(_ context.Context, prefix string) error {
	// collect first: deleting while iterating shards is undefined
	keys, err := a.keys(prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		if err := a.c.Delete(k); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
			return err
		}
	}
	return nil
}

func (a *Cache) All(_ context.Context, prefix string) ([]adapter.Entry, error) {
	var entries []adapter.Entry
	it := a.c.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(info.Key(), prefix) {
			continue
		}
		v := info.Value()
		cp := make([]byte, len(v))
		copy(cp, v)
		entries = append(entries, adapter.Entry{Key: info.Key(), Value: cp})
	}
	return entries, nil
}

func (a *Cache) keys(prefix string) ([]string, error) {
	var keys []string
	it := a.c.Iterator()
	for it.SetNext() {
		info, err := it.Value()
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(info.Key(), prefix) {
			keys = append(keys, info.Key())
		}
	}
	return keys, nil
}

// Close stops the cache's cleaning goroutine. bigcache's own Close is
// single-shot, so repeated calls are absorbed here.
func (a *Cache) Close(context.Context) error {
	a.closeOnce.Do(func() { a.closeErr = a.c.Close() })
	return a.closeErr
}
