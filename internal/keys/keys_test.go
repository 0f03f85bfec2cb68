package keys

import "testing"

func TestJoinStrip(t *testing.T) {
	cases := []struct {
		ns, key string
		storage string
	}{
		{"endb", "foo", "endb:foo"},
		{"users", "a:b", "users:a:b"}, // user keys may carry colons
		{"n", "", "n:"},
	}
	for _, tc := range cases {
		if got := Join(tc.ns, tc.key); got != tc.storage {
			t.Fatalf("Join(%q, %q) = %q, want %q", tc.ns, tc.key, got, tc.storage)
		}
		if got := Strip(Prefix(tc.ns), tc.storage); got != tc.key {
			t.Fatalf("Strip(%q, %q) = %q, want %q", Prefix(tc.ns), tc.storage, got, tc.key)
		}
	}
}

func TestStripForeignKeyUnchanged(t *testing.T) {
	if got := Strip("users:", "sessions:k"); got != "sessions:k" {
		t.Fatalf("Strip of a foreign prefix = %q", got)
	}
}
