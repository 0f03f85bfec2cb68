package endb

// Hooks lightweight callbacks for high-signal storage events, registered at
// construction instead of a process-wide error emitter.
// Implementations MUST be cheap and non-blocking - the store calls them on
// hot paths. Wrap with hooks/async when they are not.
type Hooks interface {
	// An adapter call failed, including the initial open (key is then
	// empty, as it is for whole-namespace operations). The same error is
	// also returned to the caller, verbatim.
	BackendError(op, key string, err error)

	// A stored payload did not decode with the configured codec. The
	// entry stays in the backend.
	DecodeError(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) BackendError(string, string, error) {}
func (NopHooks) DecodeError(string, error)          {}
