// Package sqlkv implements the endb adapter shared by the SQL backends.
// Entries live in a two-column table (key primary key, value blob). The
// dialect packages (sqlite, postgres, mysql) supply the driver import plus
// a Dialect describing how their engine quotes, binds and upserts.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/endbase/endb/adapter"
)

// Dialect captures what differs between the supported engines.
type Dialect struct {
	// Driver is the database/sql driver name to open.
	Driver string
	// Quote wraps an identifier in the engine's quoting characters.
	Quote func(ident string) string
	// Placeholder renders the n-th bind parameter, 1-based.
	Placeholder func(n int) string
	// Upsert renders the insert-or-replace statement. The arguments are
	// already-quoted table, key and value identifiers; the statement must
	// bind key then value.
	Upsert func(table, key, value string) string
	// KeyType renders the key column type for the configured width.
	KeyType func(keySize int) string
	// ValueType is the binary value column type.
	ValueType string
	// LikeEscape is the ESCAPE clause appended to prefix LIKE filters,
	// matching the backslash escaping applied by this package.
	LikeEscape string
}

type statements struct {
	get   string
	set   string
	del   string
	clear string
	all   string
}

// Store implements adapter.Adapter over a database/sql pool.
type Store struct {
	db    *sql.DB
	stmts statements
}

var _ adapter.Adapter = (*Store)(nil)

// Open opens a pool for the dialect's driver and prepares the table.
func Open(ctx context.Context, d Dialect, dsn, table string, keySize int) (*Store, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, err
	}
	s, err := Wrap(ctx, db, d, table, keySize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Wrap builds a Store over an existing pool, for callers who tune
// database/sql limits themselves. Close closes the pool either way.
func Wrap(ctx context.Context, db *sql.DB, d Dialect, table string, keySize int) (*Store, error) {
	t := d.Quote(table)
	k := d.Quote("key")
	v := d.Quote("value")
	s := &Store{
		db: db,
		stmts: statements{
			get:   fmt.Sprintf("SELECT %s FROM %s WHERE %s = %s", v, t, k, d.Placeholder(1)),
			set:   d.Upsert(t, k, v),
			del:   fmt.Sprintf("DELETE FROM %s WHERE %s = %s", t, k, d.Placeholder(1)),
			clear: fmt.Sprintf("DELETE FROM %s WHERE %s LIKE %s %s", t, k, d.Placeholder(1), d.LikeEscape),
			all:   fmt.Sprintf("SELECT %s, %s FROM %s WHERE %s LIKE %s %s ORDER BY %s", k, v, t, k, d.Placeholder(1), d.LikeEscape, k),
		},
	}
	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s %s PRIMARY KEY, %s %s)",
		t, k, d.KeyType(keySize), v, d.ValueType)
	if _, err := db.ExecContext(ctx, create); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, s.stmts.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, s.stmts.set, key, value)
	return err
}

func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.stmts.del, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *Store) Clear(ctx context.Context, prefix string) error {
	_, err := s.db.ExecContext(ctx, s.stmts.clear, escapeLike(prefix)+"%")
	return err
}

func (s *Store) All(ctx context.Context, prefix string) ([]adapter.Entry, error) {
	rows, err := s.db.QueryContext(ctx, s.stmts.all, escapeLike(prefix)+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []adapter.Entry
	for rows.Next() {
		var e adapter.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) Close(context.Context) error { return s.db.Close() }

// escapeLike backslash-escapes LIKE metacharacters so a prefix matches
// literally. Pairs with Dialect.LikeEscape.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
