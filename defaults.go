package endb

// Defaults applied by New when Options leave a field zero.
const (
	DefaultNamespace  = "endb"
	DefaultTable      = "endb"
	DefaultCollection = "endb"
	DefaultKeySize    = 255
)

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
