package redis

import (
	"errors"
	"testing"
)

// TestGlobPattern escapes SCAN metacharacters so prefixes match literally.
func TestGlobPattern(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"endb:", "endb:*"},
		{"", "*"},
		{"app*:", `app\*:*`},
		{"q?:", `q\?:*`},
		{"set[0]:", `set\[0\]:*`},
		{`win\path:`, `win\\path:*`},
	}
	for _, tc := range cases {
		if got := globPattern(tc.in); got != tc.want {
			t.Fatalf("globPattern(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

// TestNewRequiresClient rejects construction without a client.
func TestNewRequiresClient(t *testing.T) {
	_, err := New(Config{})
	if !errors.Is(err, ErrNilClient) {
		t.Fatalf("err = %v, want ErrNilClient", err)
	}
}
