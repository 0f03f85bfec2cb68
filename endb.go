package endb

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/endbase/endb/adapter"
	"github.com/endbase/endb/codec"
	"github.com/endbase/endb/internal/keys"
)

// store is the single Store implementation: one namespace over one adapter.
type store struct {
	ns      string
	prefix  string
	backend adapter.Adapter
	codec   Codec
	log     Logger
	hooks   Hooks
	owns    bool

	closeOnce sync.Once
	closeErr  error
}

var _ Store = (*store)(nil)

func newStore(ctx context.Context, opts Options) (*store, error) {
	s := &store{
		ns:    coalesce(opts.Namespace, DefaultNamespace),
		codec: coalesce[Codec](opts.Codec, codec.JSON{}),
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	s.prefix = keys.Prefix(s.ns)

	backend, owns, err := resolveBackend(ctx, opts)
	if err != nil {
		s.log.Error("endb: backend open failed", Fields{"namespace": s.ns, "err": err})
		s.hooks.BackendError("open", "", err)
		return nil, err
	}
	s.backend = backend
	s.owns = owns

	s.log.Debug("endb: store ready", Fields{
		"namespace": s.ns,
		"backend":   fmt.Sprintf("%T", backend),
	})
	return s, nil
}

// key maps a user key to its storage key.
func (s *store) key(k string) string { return s.prefix + k }

// fail logs an adapter failure, notifies hooks and hands the error back
// verbatim so callers can match on driver sentinels.
func (s *store) fail(op, key string, err error) error {
	s.log.Error("endb: "+op+" failed", Fields{"namespace": s.ns, "key": key, "err": err})
	s.hooks.BackendError(op, key, err)
	return err
}

func (s *store) Get(ctx context.Context, key string) (any, bool, error) {
	raw, ok, err := s.backend.Get(ctx, s.key(key))
	if err != nil {
		return nil, false, s.fail("get", key, err)
	}
	if !ok {
		return nil, false, nil
	}
	v, err := s.codec.Decode(raw)
	if err != nil {
		// entry stays put: unlike a cache, a store must not discard
		// data it cannot read
		s.log.Warn("endb: stored value did not decode", Fields{"namespace": s.ns, "key": key, "err": err})
		s.hooks.DecodeError(key, err)
		return nil, false, err
	}
	return v, true, nil
}

func (s *store) Set(ctx context.Context, key string, value any) error {
	payload, err := s.codec.Encode(value)
	if err != nil {
		return err
	}
	if err := s.backend.Set(ctx, s.key(key), payload); err != nil {
		return s.fail("set", key, err)
	}
	return nil
}

func (s *store) Delete(ctx context.Context, key string) (bool, error) {
	ok, err := s.backend.Delete(ctx, s.key(key))
	if err != nil {
		return false, s.fail("delete", key, err)
	}
	return ok, nil
}

func (s *store) Has(ctx context.Context, key string) (bool, error) {
	_, ok, err := s.backend.Get(ctx, s.key(key))
	if err != nil {
		return false, s.fail("has", key, err)
	}
	return ok, nil
}

func (s *store) Clear(ctx context.Context) error {
	if err := s.backend.Clear(ctx, s.prefix); err != nil {
		return s.fail("clear", "", err)
	}
	s.log.Debug("endb: namespace cleared", Fields{"namespace": s.ns})
	return nil
}

func (s *store) All(ctx context.Context) ([]Entry, error) {
	raw, err := s.backend.All(ctx, s.prefix)
	if err != nil {
		return nil, s.fail("all", "", err)
	}
	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		key := keys.Strip(s.prefix, e.Key)
		v, err := s.codec.Decode(e.Value)
		if err != nil {
			s.log.Warn("endb: stored value did not decode", Fields{"namespace": s.ns, "key": key, "err": err})
			s.hooks.DecodeError(key, err)
			return nil, err
		}
		entries = append(entries, Entry{Key: key, Value: v})
	}
	// adapters return in whatever order their driver scans
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
	return entries, nil
}

func (s *store) Find(ctx context.Context, match func(key string, value any) bool) (any, bool, error) {
	if match == nil {
		return nil, false, fmt.Errorf("endb: Find requires a match function")
	}
	entries, err := s.All(ctx)
	if err != nil {
		return nil, false, err
	}
	for _, e := range entries {
		if match(e.Key, e.Value) {
			return e.Value, true, nil
		}
	}
	return nil, false, nil
}

func (s *store) Math(ctx context.Context, key string, op MathOp, operand float64) (float64, error) {
	cur, ok, err := s.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	var base float64
	if ok {
		base, ok = toFloat(cur)
		if !ok {
			return 0, &NotNumericError{Key: key, Value: cur}
		}
	}
	next, err := applyMath(op, base, operand)
	if err != nil {
		return 0, err
	}
	if err := s.Set(ctx, key, next); err != nil {
		return 0, err
	}
	return next, nil
}

func (s *store) Namespace() string { return s.ns }

func (s *store) Close(ctx context.Context) error {
	s.closeOnce.Do(func() {
		if !s.owns {
			return
		}
		if err := s.backend.Close(ctx); err != nil {
			s.closeErr = s.fail("close", "", err)
			return
		}
		s.log.Debug("endb: store closed", Fields{"namespace": s.ns})
	})
	return s.closeErr
}
