// Package endb implements a unified key-value storage facade: one small API
// over heterogeneous backends, selected by connection-string scheme.
//
// Components:
//   - adapter.Adapter: byte store over one driver (memory, Redis, BigCache,
//     bolt, Badger, SQLite, PostgreSQL, MySQL, MongoDB).
//   - codec.Codec: (de)serializes values <-> []byte. JSON by default.
//   - Hooks: per-store observer for backend and decode errors, the
//     replacement for a process-wide error event.
//
// Keys:
//
//	<namespace>:<key> - namespaces isolate stores sharing one backend
//
// Backends register their URI schemes on import, in the manner of
// database/sql drivers:
//
//	import (
//	    "github.com/endbase/endb"
//	    _ "github.com/endbase/endb/adapter/sqlite"
//	)
//
//	store, err := endb.New(ctx, endb.Options{URI: "sqlite://endb.sqlite"})
//	...
//	err = store.Set(ctx, "foo", "bar")
//	v, ok, err := store.Get(ctx, "foo")
//
// With no URI, adapter name or backend given, New returns a store over a
// process-local map: a handy default with no persistence.
package endb
