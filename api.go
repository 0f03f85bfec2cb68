package endb

import (
	"context"
	"fmt"
	"sync"

	"github.com/endbase/endb/adapter"
	"github.com/endbase/endb/codec"
)

// Codec is re-exported so construction sites only import endb.
type Codec = codec.Codec

type DB = Store // alias -> endb.DB or endb.Store read equally well

// Entry is one decoded pair of a namespace. Key carries no prefix.
type Entry struct {
	Key   string
	Value any
}

// Store is the backend-agnostic storage API. One Store owns one namespace;
// several stores may share one backend and stay isolated through key
// prefixes. Values go through the configured Codec on every path, so
// whatever one operation stores, every other operation reads back the same.
type Store interface {
	// Get returns the value stored under key. ok is false when absent.
	Get(ctx context.Context, key string) (value any, ok bool, err error)

	// Set stores value under key, replacing any existing value.
	Set(ctx context.Context, key string, value any) error

	// Delete removes key and reports whether it existed.
	Delete(ctx context.Context, key string) (bool, error)

	// Has reports whether key exists.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes every key of this namespace and nothing else.
	Clear(ctx context.Context) error

	// All returns the namespace's decoded entries, sorted by key.
	All(ctx context.Context) ([]Entry, error)

	// Find returns the first entry (in All order) the predicate accepts.
	Find(ctx context.Context, match func(key string, value any) bool) (value any, ok bool, err error)

	// Math applies op to the number stored under key and the operand,
	// stores the result and returns it. An absent key computes from 0; a
	// non-numeric value fails with NotNumericError.
	Math(ctx context.Context, key string, op MathOp, operand float64) (float64, error)

	// Namespace returns the namespace this store prefixes keys with.
	Namespace() string

	// Close releases the backend if this store owns it. Safe to call
	// more than once.
	Close(ctx context.Context) error
}

// Options tune a store. All fields are optional: the zero value yields an
// in-memory store in the "endb" namespace with the JSON codec.
type Options struct {
	Namespace string // key prefix; "" => "endb"
	URI       string // connection string; scheme picks the adapter. e.g. "redis://localhost:6379"
	Adapter   string // adapter name; overrides the URI scheme when set. e.g. "sqlite"
	Codec     Codec  // value serialization; nil => codec.JSON{}

	// Backend short-circuits resolution with a ready adapter (wrapped,
	// shared or test instances). CloseBackend hands its ownership to the
	// store, making Store.Close close it.
	Backend      adapter.Adapter
	CloseBackend bool

	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used

	Table      string // SQL table / bolt bucket; "" => "endb"
	Collection string // document-store collection; "" => "endb"
	KeySize    int    // SQL key column width; 0 => 255
}

// New builds a Store for opts. The backend comes from Options.Backend when
// set, else the Adapter name, else the URI scheme, else a process-local
// map. A name or scheme that matches no registered adapter fails with
// adapter.ErrUnknownScheme rather than silently falling back.
func New(ctx context.Context, opts Options) (Store, error) {
	s, err := newStore(ctx, opts)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Multi builds one Store per name, each name becoming its store's
// namespace, all sharing a single backend resolved from opts. The shared
// backend closes once: whichever store closes first wins and the remaining
// Close calls are no-ops.
func Multi(ctx context.Context, names []string, opts Options) (map[string]Store, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("endb: Multi requires at least one name")
	}
	backend, owns, err := resolveBackend(ctx, opts)
	if err != nil {
		coalesce[Hooks](opts.Hooks, NopHooks{}).BackendError("open", "", err)
		return nil, err
	}
	shared := &sharedBackend{Adapter: backend, owns: owns}

	stores := make(map[string]Store, len(names))
	for _, name := range names {
		sub := opts
		sub.Namespace = name
		sub.Backend = shared
		sub.CloseBackend = true
		s, err := newStore(ctx, sub)
		if err != nil {
			_ = shared.Close(ctx)
			return nil, err
		}
		stores[name] = s
	}
	return stores, nil
}

// sharedBackend lets several stores hold one adapter while keeping Close
// single-shot.
type sharedBackend struct {
	adapter.Adapter
	owns bool
	once sync.Once
	err  error
}

func (s *sharedBackend) Close(ctx context.Context) error {
	s.once.Do(func() {
		if s.owns {
			s.err = s.Adapter.Close(ctx)
		}
	})
	return s.err
}
