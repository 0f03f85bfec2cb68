// Package sqlite provides the endb adapter for SQLite through the CGO-free
// modernc.org driver, registered for the sqlite:// and sqlite3:// schemes.
// The URI path names the database file; ":memory:" gives an ephemeral store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/endbase/endb/adapter"
	"github.com/endbase/endb/adapter/sqlkv"
)

func init() {
	open := func(ctx context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		return Open(ctx, adapter.URIPath(cfg.URI), cfg.Table, cfg.KeySize)
	}
	adapter.Register("sqlite", open)
	adapter.Register("sqlite3", open)
}

// Dialect is the sqlkv dialect for SQLite.
var Dialect = sqlkv.Dialect{
	Driver:      "sqlite",
	Quote:       func(ident string) string { return `"` + ident + `"` },
	Placeholder: func(int) string { return "?" },
	Upsert: func(table, key, value string) string {
		return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES (?, ?) ON CONFLICT(%s) DO UPDATE SET %s = excluded.%s",
			table, key, value, key, value, value)
	},
	KeyType:    func(keySize int) string { return fmt.Sprintf("VARCHAR(%d)", keySize) },
	ValueType:  "BLOB",
	LikeEscape: `ESCAPE '\'`,
}

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path, table string, keySize int) (*sqlkv.Store, error) {
	db, err := sql.Open(Dialect.Driver, path)
	if err != nil {
		return nil, err
	}
	// sqlite allows one writer, and a :memory: database exists per
	// connection; a pool of one serves both
	db.SetMaxOpenConns(1)
	s, err := sqlkv.Wrap(ctx, db, Dialect, table, keySize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}
