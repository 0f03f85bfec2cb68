// Package postgres provides the endb adapter for PostgreSQL through the pgx
// stdlib driver, registered for the postgres:// and postgresql:// schemes.
// pgx accepts those URIs directly, so the connection string passes through.
package postgres

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/endbase/endb/adapter"
	"github.com/endbase/endb/adapter/sqlkv"
)

func init() {
	open := func(ctx context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		return Open(ctx, cfg.URI, cfg.Table, cfg.KeySize)
	}
	adapter.Register("postgres", open)
	adapter.Register("postgresql", open)
}

// Dialect is the sqlkv dialect for PostgreSQL.
var Dialect = sqlkv.Dialect{
	Driver:      "pgx",
	Quote:       func(ident string) string { return `"` + ident + `"` },
	Placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	Upsert: func(table, key, value string) string {
		return fmt.Sprintf("INSERT INTO %s (%s, %s) VALUES ($1, $2) ON CONFLICT (%s) DO UPDATE SET %s = excluded.%s",
			table, key, value, key, value, value)
	},
	KeyType:    func(keySize int) string { return fmt.Sprintf("VARCHAR(%d)", keySize) },
	ValueType:  "BYTEA",
	LikeEscape: `ESCAPE '\'`,
}

// Open connects with a postgres:// URI.
func Open(ctx context.Context, uri, table string, keySize int) (*sqlkv.Store, error) {
	return sqlkv.Open(ctx, Dialect, uri, table, keySize)
}
