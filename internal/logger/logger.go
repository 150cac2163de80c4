package logger

import (
	"log/slog"
	"os"

	"github.com/samber/oops"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance with the specified level.
func New(level int) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.Level(level)})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}

// LogError logs err at error level. For oops errors the code and context
// are logged as separate attributes.
func (l *Logger) LogError(msg string, err error, args ...any) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		l.Logger.Error(msg, append(args, "error", err.Error())...)
		return
	}

	args = append(args, "error", oopsErr.Error())
	if code := oopsErr.Code(); code != nil {
		args = append(args, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		args = append(args, "context", ctx)
	}
	l.Logger.Error(msg, args...)
}
