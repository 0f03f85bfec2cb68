// Package logrus adapts a logrus.Entry to endb.Logger.
package logrus

import (
	"github.com/endbase/endb"
	"github.com/sirupsen/logrus"
)

var _ endb.Logger = LogrusLogger{}

type LogrusLogger struct{ E *logrus.Entry }

func (l LogrusLogger) Debug(msg string, f endb.Fields) {
	l.E.WithFields(logrus.Fields(f)).Debug(msg)
}
func (l LogrusLogger) Info(msg string, f endb.Fields) { l.E.WithFields(logrus.Fields(f)).Info(msg) }
func (l LogrusLogger) Warn(msg string, f endb.Fields) { l.E.WithFields(logrus.Fields(f)).Warn(msg) }
func (l LogrusLogger) Error(msg string, f endb.Fields) {
	l.E.WithFields(logrus.Fields(f)).Error(msg)
}
