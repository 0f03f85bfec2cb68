package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/endbase/endb"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	BackendErrorEvery uint64
	DecodeErrorEvery  uint64
	// Optional key redactor. Defaults to SHA-256 prefix; keys can be
	// user identifiers and do not belong in logs.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	backendErrCtr atomic.Uint64
	decodeErrCtr  atomic.Uint64
}

var _ endb.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if k == "" {
		return "" // whole-namespace ops carry no key
	}
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sample(n uint64, ctr *atomic.Uint64) bool {
	if n == 0 || n == 1 {
		return true
	}
	return ctr.Add(1)%n == 0
}

func (h *Hooks) BackendError(op, key string, err error) {
	if h.l == nil || !sample(h.opts.BackendErrorEvery, &h.backendErrCtr) {
		return
	}
	h.l.Error("endb.backend_error",
		"op", op,
		"key", h.redact(key),
		"err", err)
}

func (h *Hooks) DecodeError(key string, err error) {
	if h.l == nil || !sample(h.opts.DecodeErrorEvery, &h.decodeErrCtr) {
		return
	}
	h.l.Warn("endb.decode_error",
		"key", h.redact(key),
		"err", err)
}
