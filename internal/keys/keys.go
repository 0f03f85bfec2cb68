// Package keys implements the "<namespace>:<key>" storage-key convention
// that lets several logical stores share one physical backend.
package keys

import "strings"

// Prefix returns the storage prefix for a namespace, colon included.
func Prefix(namespace string) string { return namespace + ":" }

// Join builds the storage key for a user key within a namespace.
func Join(namespace, key string) string { return namespace + ":" + key }

// Strip removes the namespace prefix from a storage key, returning the user
// key. Keys that do not carry the prefix come back unchanged.
func Strip(prefix, storageKey string) string {
	return strings.TrimPrefix(storageKey, prefix)
}
