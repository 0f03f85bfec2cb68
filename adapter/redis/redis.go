// Package redis provides the endb adapter for Redis, registered for the
// redis:// and rediss:// schemes. Namespace scans use SCAN with a literal
// prefix match, so other keys in the database are never touched.
package redis

import (
	"context"
	"errors"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/endbase/endb/adapter"
)

// ErrNilClient reports construction without a client.
var ErrNilClient = errors.New("redis adapter: nil client")

const (
	scanCount = 256
	delBatch  = 512
)

func init() {
	open := func(ctx context.Context, cfg adapter.Config) (adapter.Adapter, error) {
		return Open(ctx, cfg.URI)
	}
	adapter.Register("redis", open)
	adapter.Register("rediss", open)
}

// Config wraps an existing go-redis client.
type Config struct {
	// Client is any go-redis universal client (single node, cluster or
	// sentinel).
	Client goredis.UniversalClient
	// CloseClient makes Close release the client. Set it only when this
	// adapter exclusively owns the client.
	CloseClient bool
}

// Redis implements adapter.Adapter over a go-redis client.
type Redis struct {
	rdb         goredis.UniversalClient
	closeClient bool
}

var _ adapter.Adapter = (*Redis)(nil)

// New wraps an existing client, for callers who tune connection options,
// clustering or pooling themselves.
func New(cfg Config) (*Redis, error) {
	if cfg.Client == nil {
		return nil, ErrNilClient
	}
	return &Redis{rdb: cfg.Client, closeClient: cfg.CloseClient}, nil
}

// Open dials the server named by a redis:// or rediss:// URI and verifies
// the connection with a PING. The returned adapter owns the client.
func Open(ctx context.Context, uri string) (*Redis, error) {
	ropts, err := goredis.ParseURL(uri)
	if err != nil {
		return nil, err
	}
	client := goredis.NewClient(ropts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return &Redis{rdb: client, closeClient: true}, nil
}

func (a *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := a.rdb.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		return nil, false, nil // miss
	}
	if err != nil {
		return nil, false, err // transport or server error
	}
	return b, true, nil
}

func (a *Redis) Set(ctx context.Context, key string, value []byte) error {
	return a.rdb.Set(ctx, key, value, 0).Err()
}

func (a *Redis) Delete(ctx context.Context, key string) (bool, error) {
	n, err := a.rdb.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (a *Redis) Clear(ctx context.Context, prefix string) error {
	iter := a.rdb.Scan(ctx, 0, globPattern(prefix), scanCount).Iterator()
	batch := make([]string, 0, delBatch)
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) >= delBatch {
			if err := a.rdb.Del(ctx, batch...).Err(); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(batch) > 0 {
		return a.rdb.Del(ctx, batch...).Err()
	}
	return nil
}

func (a *Redis) All(ctx context.Context, prefix string) ([]adapter.Entry, error) {
	iter := a.rdb.Scan(ctx, 0, globPattern(prefix), scanCount).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}
	vals, err := a.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]adapter.Entry, 0, len(keys))
	for i, v := range vals {
		switch b := v.(type) {
		case nil:
			// expired or deleted between SCAN and MGET
		case string:
			entries = append(entries, adapter.Entry{Key: keys[i], Value: []byte(b)})
		case []byte:
			entries = append(entries, adapter.Entry{Key: keys[i], Value: b})
		}
	}
	return entries, nil
}

// Close releases the underlying client only when this adapter owns it.
// Safe to call multiple times.
func (a *Redis) Close(context.Context) error {
	if !a.closeClient {
		return nil
	}
	if err := a.rdb.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
		return err
	}
	return nil
}

// globPattern escapes SCAN MATCH metacharacters so prefix matches literally.
func globPattern(prefix string) string {
	var b strings.Builder
	b.Grow(len(prefix) + 1)
	for _, r := range prefix {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('*')
	return b.String()
}
