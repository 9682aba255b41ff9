package logger

import (
	"fmt"

	"go.uber.org/zap"
)

// DebugPrefix tags every diagnostic line written by the VAT field extension
const DebugPrefix = "[WC VAT Field]"

// DebugLogger writes human-readable diagnostic trace lines. Implementations
// must never panic and never influence the caller's control flow.
type DebugLogger interface {
	Debugf(format string, args ...any)
}

// NopDebugLogger discards everything
type NopDebugLogger struct{}

// Debugf implements DebugLogger
func (NopDebugLogger) Debugf(string, ...any) {}

// ZapDebugLogger writes prefixed lines to a zap logger at debug level
type ZapDebugLogger struct {
	logger *zap.Logger
	prefix string
}

// NewDebugLogger returns a zap-backed DebugLogger when enabled is true, and a
// no-op logger when debugging is off or no sink is available.
func NewDebugLogger(z *zap.Logger, enabled bool) DebugLogger {
	if !enabled || z == nil {
		return NopDebugLogger{}
	}
	return &ZapDebugLogger{
		logger: z.Named("vatfield").WithOptions(zap.AddCallerSkip(1)),
		prefix: DebugPrefix,
	}
}

// Debugf implements DebugLogger
func (l *ZapDebugLogger) Debugf(format string, args ...any) {
	defer func() {
		// logging never propagates a failure to the caller
		_ = recover()
	}()
	l.logger.Debug(l.prefix + " " + fmt.Sprintf(format, args...))
}
