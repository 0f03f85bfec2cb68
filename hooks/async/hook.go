// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/endbase/endb"
//	"github.com/endbase/endb/hooks/async"
//	"github.com/endbase/endb/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    BackendErrorEvery: 1,  // log every backend error
//	    DecodeErrorEvery:  10, // sample logs: ~every 10th decode error
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	store, _ := endb.New(ctx, endb.Options{
//	    URI:   "redis://localhost:6379",
//	    Hooks: hooks, // or `raw` if you don't want async
//	})
package asynchook

import (
	"sync"

	"github.com/endbase/endb"
)

type Hooks struct {
	inner endb.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ endb.Hooks = (*Hooks)(nil)

func New(inner endb.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) BackendError(op, key string, err error) {
	h.try(func() { h.inner.BackendError(op, key, err) })
}

func (h *Hooks) DecodeError(key string, err error) {
	h.try(func() { h.inner.DecodeError(key, err) })
}
