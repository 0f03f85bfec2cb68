package endb

import (
	"context"
	"strings"

	"github.com/endbase/endb/adapter"
	"github.com/endbase/endb/adapter/memory"
)

// resolveBackend picks the adapter for opts. Precedence: an explicit
// Backend, then the Adapter name, then the URI scheme. With none of the
// three the store falls back to a fresh in-memory map; an explicit name or
// scheme that matches nothing is an error, never a silent fallback. owns
// reports whether the caller's store should close the backend.
func resolveBackend(ctx context.Context, opts Options) (backend adapter.Adapter, owns bool, err error) {
	if opts.Backend != nil {
		return opts.Backend, opts.CloseBackend, nil
	}

	scheme := strings.ToLower(opts.Adapter)
	if scheme == "" {
		scheme = uriScheme(opts.URI)
	}
	if scheme == "" {
		return memory.New(), true, nil
	}

	a, err := adapter.Open(ctx, scheme, adapter.Config{
		URI:        opts.URI,
		Table:      coalesce(opts.Table, DefaultTable),
		Collection: coalesce(opts.Collection, DefaultCollection),
		KeySize:    coalesce(opts.KeySize, DefaultKeySize),
	})
	if err != nil {
		return nil, false, err
	}
	return a, true, nil
}

// uriScheme returns the lowercased part before the first colon, "" when the
// string has none (or starts with one).
func uriScheme(uri string) string {
	i := strings.IndexByte(uri, ':')
	if i <= 0 {
		return ""
	}
	return strings.ToLower(uri[:i])
}
