// Package cached wraps any endb adapter with a ristretto read-through hot
// layer. It is not scheme-addressable: build it around an opened inner
// adapter and hand it to the facade via Options.Backend.
//
// Ristretto cannot enumerate its keys, so All always passes through to the
// inner adapter and Clear drops the whole hot layer after clearing inner.
// Writes reaching the shared backend from other processes stay invisible
// here until the stale entry evicts.
package cached

import (
	"context"
	"errors"

	rc "github.com/dgraph-io/ristretto"

	"github.com/endbase/endb/adapter"
)

// Config tunes the hot layer. Zero values take defaults sized for a small
// working set.
type Config struct {
	// NumCounters is the number of keys to track access frequency for.
	// Ristretto wants roughly 10x the expected live entries.
	NumCounters int64
	// MaxCost caps the hot layer's total value bytes.
	MaxCost int64
	// BufferItems sizes the per-Get ring buffer. 64 is the recommended
	// value.
	BufferItems int64
	// Metrics enables ristretto's hit/miss counters.
	Metrics bool
}

const (
	defaultNumCounters = 100_000
	defaultMaxCost     = 64 << 20
	defaultBufferItems = 64
)

// Adapter implements adapter.Adapter, serving repeated reads from memory.
type Adapter struct {
	inner adapter.Adapter
	hot   *rc.Cache
}

var _ adapter.Adapter = (*Adapter)(nil)

// New wraps inner with a hot layer.
func New(inner adapter.Adapter, cfg Config) (*Adapter, error) {
	if inner == nil {
		return nil, errors.New("cached adapter: nil inner adapter")
	}
	counters := cfg.NumCounters
	if counters <= 0 {
		counters = defaultNumCounters
	}
	maxCost := cfg.MaxCost
	if maxCost <= 0 {
		maxCost = defaultMaxCost
	}
	buf := cfg.BufferItems
	if buf <= 0 {
		buf = defaultBufferItems
	}
	hot, err := rc.NewCache(&rc.Config{
		NumCounters: counters,
		MaxCost:     maxCost,
		BufferItems: buf,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Adapter{inner: inner, hot: hot}, nil
}

func (a *Adapter) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if v, ok := a.hot.Get(key); ok {
		if b, ok := v.([]byte); ok {
			return b, true, nil
		}
		a.hot.Del(key) // unexpected entry shape
	}
	b, ok, err := a.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	a.hot.Set(key, b, int64(len(b)))
	return b, true, nil
}

func (a *Adapter) Set(ctx context.Context, key string, value []byte) error {
	if err := a.inner.Set(ctx, key, value); err != nil {
		return err
	}
	a.hot.Set(key, value, int64(len(value)))
	return nil
}

func (a *Adapter) Delete(ctx context.Context, key string) (bool, error) {
	ok, err := a.inner.Delete(ctx, key)
	a.hot.Del(key)
	return ok, err
}

func (a *Adapter) Clear(ctx context.Context, prefix string) error {
	if err := a.inner.Clear(ctx, prefix); err != nil {
		return err
	}
	a.hot.Clear()
	return nil
}

func (a *Adapter) All(ctx context.Context, prefix string) ([]adapter.Entry, error) {
	return a.inner.All(ctx, prefix)
}

// Wait blocks until buffered hot-layer writes are applied. Ristretto admits
// entries asynchronously; call Wait when a read must observe a write that
// just happened.
func (a *Adapter) Wait() { a.hot.Wait() }

// Metrics returns ristretto's counters, nil unless enabled in Config.
func (a *Adapter) Metrics() *rc.Metrics { return a.hot.Metrics }

func (a *Adapter) Close(ctx context.Context) error {
	a.hot.Wait()
	a.hot.Close()
	return a.inner.Close(ctx)
}
