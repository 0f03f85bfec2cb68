// Package adapter defines the byte-store abstraction the endb facade
// delegates to, and the scheme registry that maps connection strings to
// implementations.
//
// Adapters MUST be byte-transparent: Get returns exactly the []byte that a
// prior Set stored under the key, with no added metadata, re-encoding or
// mutation. Serialization belongs to the facade's codec; persistence,
// indexing and transactions belong to the wrapped driver.
//
// Implementations register the URI schemes they serve from their init
// functions, in the manner of database/sql drivers:
//
//	import _ "github.com/endbase/endb/adapter/redis" // enables redis://
package adapter

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrUnknownScheme reports a connection string or adapter name that matches
// no registered adapter. Open wraps it with the offending scheme.
var ErrUnknownScheme = errors.New("endb: unknown adapter scheme")

// Entry is one stored pair exactly as the backend holds it: the key still
// carries the namespace prefix and the value is raw codec output.
type Entry struct {
	Key   string
	Value []byte
}

// Config carries the backend-facing construction options. Each adapter
// reads the fields that apply to it and ignores the rest.
type Config struct {
	// URI is the full connection string, scheme included.
	URI string
	// Table names the SQL table or bolt bucket holding entries.
	Table string
	// Collection names the document-store collection holding entries.
	Collection string
	// KeySize bounds the key column width in SQL schemas.
	KeySize int
}

// Adapter is a minimal byte store. Implementations must be safe for
// concurrent use.
type Adapter interface {
	// Get returns (value, true, nil) on a hit and (nil, false, nil) on a
	// miss. A non-nil error means the backend failed, not that the key is
	// absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. ok reports whether the key existed.
	Delete(ctx context.Context, key string) (ok bool, err error)

	// Clear removes every key that begins with prefix.
	Clear(ctx context.Context, prefix string) error

	// All returns every entry whose key begins with prefix. Order is
	// unspecified; callers needing determinism sort.
	All(ctx context.Context, prefix string) ([]Entry, error)

	// Close releases the backend's resources. It must tolerate repeated
	// calls.
	Close(ctx context.Context) error
}

// OpenFunc constructs an adapter from a Config.
type OpenFunc func(ctx context.Context, cfg Config) (Adapter, error)

var (
	mu       sync.RWMutex
	registry = make(map[string]OpenFunc)
)

// Register makes an adapter available under the given URI scheme. It is
// meant to be called from adapter package init functions and panics on nil
// or duplicate registration, like database/sql.Register.
func Register(scheme string, open OpenFunc) {
	mu.Lock()
	defer mu.Unlock()
	if open == nil {
		panic("endb: adapter.Register with nil OpenFunc")
	}
	if _, dup := registry[scheme]; dup {
		panic("endb: adapter.Register called twice for scheme " + scheme)
	}
	registry[scheme] = open
}

// Schemes returns the sorted list of registered schemes.
func Schemes() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(registry))
	for s := range registry {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Open constructs the adapter registered for scheme.
func Open(ctx context.Context, scheme string, cfg Config) (Adapter, error) {
	mu.RLock()
	open, ok := registry[scheme]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (missing adapter import?)", ErrUnknownScheme, scheme)
	}
	return open(ctx, cfg)
}

// URIPath returns the path portion of a connection string: everything after
// "scheme://", or after "scheme:" when the slashes are omitted. File-backed
// adapters use it to turn bolt://data/endb.db into data/endb.db.
func URIPath(uri string) string {
	if i := strings.Index(uri, "://"); i >= 0 {
		return uri[i+3:]
	}
	if i := strings.IndexByte(uri, ':'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
