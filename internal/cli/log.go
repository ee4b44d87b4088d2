package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level, stamping each line
// with the wall clock to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// stopwatch starts timing a step. Calling the returned func logs step at
// info level with the elapsed time, e.g. `INFO rendered svg took=12ms`.
func stopwatch(l *log.Logger, step string) func() {
	start := time.Now()
	return func() {
		l.Info(step, "took", time.Since(start).Round(time.Millisecond))
	}
}

type loggerKey struct{}

// withLogger attaches l to ctx for helpers that only receive a context.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// package default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
