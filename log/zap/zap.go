// Package zap adapts a zap.Logger to endb.Logger.
package zap

import (
	"github.com/endbase/endb"
	"go.uber.org/zap"
)

var _ endb.Logger = ZapLogger{}

type ZapLogger struct{ L *zap.Logger }

func (z ZapLogger) Debug(msg string, f endb.Fields) { z.L.Debug(msg, zf(f)...) }
func (z ZapLogger) Info(msg string, f endb.Fields)  { z.L.Info(msg, zf(f)...) }
func (z ZapLogger) Warn(msg string, f endb.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z ZapLogger) Error(msg string, f endb.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f endb.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
