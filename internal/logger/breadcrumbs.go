package logger

import (
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap/zapcore"
)

// breadcrumbCore records entries at or above its level as sentry breadcrumbs,
// so a crash report carries the warnings logged before it.
type breadcrumbCore struct {
	zapcore.LevelEnabler
	hub    *sentry.Hub // nil uses the current hub at write time
	fields []zapcore.Field
}

func newBreadcrumbCore(level zapcore.LevelEnabler) *breadcrumbCore {
	return &breadcrumbCore{LevelEnabler: level}
}

func (c *breadcrumbCore) With(fields []zapcore.Field) zapcore.Core {
	clone := *c
	clone.fields = append(append([]zapcore.Field(nil), c.fields...), fields...)
	return &clone
}

func (c *breadcrumbCore) Check(e zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(e.Level) {
		return ce.AddCore(e, c)
	}
	return ce
}

func (c *breadcrumbCore) Write(e zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	hub := c.hub
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.AddBreadcrumb(&sentry.Breadcrumb{
		Type:      "default",
		Category:  e.LoggerName,
		Message:   e.Message,
		Data:      enc.Fields,
		Level:     sentryLevel(e.Level),
		Timestamp: e.Time,
	}, nil)
	return nil
}

func (c *breadcrumbCore) Sync() error { return nil }

func sentryLevel(l zapcore.Level) sentry.Level {
	switch {
	case l >= zapcore.FatalLevel:
		return sentry.LevelFatal
	case l >= zapcore.ErrorLevel:
		return sentry.LevelError
	case l >= zapcore.WarnLevel:
		return sentry.LevelWarning
	case l >= zapcore.InfoLevel:
		return sentry.LevelInfo
	default:
		return sentry.LevelDebug
	}
}
