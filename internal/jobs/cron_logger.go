package jobs

import (
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's own logging into slog. Info messages are logged at
// debug level since cron reports every wake-up.
type cronLogger struct {
	logger *slog.Logger
}

var _ cron.Logger = cronLogger{}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
