package endb

import (
	"context"
	"testing"

	"github.com/endbase/endb/adapter/memory"
)

// TestURIScheme extracts the adapter scheme from connection strings.
func TestURIScheme(t *testing.T) {
	cases := []struct {
		uri  string
		want string
	}{
		{"redis://localhost:6379", "redis"},
		{"REDIS://localhost:6379", "redis"},
		{"sqlite://data/endb.sqlite", "sqlite"},
		{"sqlite::memory:", "sqlite"},
		{"postgres://u:p@h/db", "postgres"},
		{"plainpath/endb.db", ""},
		{"", ""},
		{":no-scheme", ""},
	}
	for _, tc := range cases {
		if got := uriScheme(tc.uri); got != tc.want {
			t.Fatalf("uriScheme(%q) = %q, want %q", tc.uri, got, tc.want)
		}
	}
}

// TestResolvePrecedence: Backend beats Adapter beats URI beats fallback.
func TestResolvePrecedence(t *testing.T) {
	ctx := context.Background()

	mem := memory.New()
	backend, owns, err := resolveBackend(ctx, Options{
		Backend: mem,
		Adapter: "warpdrive",
		URI:     "warpdrive://x",
	})
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if backend != mem {
		t.Fatalf("explicit Backend should win")
	}
	if owns {
		t.Fatalf("borrowed backend must not be owned by default")
	}

	backend, owns, err = resolveBackend(ctx, Options{Adapter: "memory", URI: "warpdrive://x"})
	if err != nil {
		t.Fatalf("resolveBackend with name: %v", err)
	}
	if _, ok := backend.(*memory.Store); !ok {
		t.Fatalf("adapter name should beat URI scheme, got %T", backend)
	}
	if !owns {
		t.Fatalf("opened backend must be owned")
	}

	backend, owns, err = resolveBackend(ctx, Options{})
	if err != nil {
		t.Fatalf("resolveBackend fallback: %v", err)
	}
	if _, ok := backend.(*memory.Store); !ok || !owns {
		t.Fatalf("fallback should own a fresh memory store, got %T owns=%v", backend, owns)
	}
}

// TestResolveOwnershipFlag passes CloseBackend through for provided
// backends.
func TestResolveOwnershipFlag(t *testing.T) {
	mem := memory.New()
	_, owns, err := resolveBackend(context.Background(), Options{Backend: mem, CloseBackend: true})
	if err != nil {
		t.Fatalf("resolveBackend: %v", err)
	}
	if !owns {
		t.Fatalf("CloseBackend should transfer ownership")
	}
}
