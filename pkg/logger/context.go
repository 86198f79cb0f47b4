package logger

import (
	"context"
	"log/slog"
)

type ctxKeyType struct{}

var ctxKey ctxKeyType

// With derives a context whose logger carries the extra fields.
func With(ctx context.Context, fields ...any) context.Context {
	return context.WithValue(ctx, ctxKey, From(ctx).With(fields...))
}

// From returns the logger stored in context, falling back to the
// process logger when none is attached.
func From(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey).(*slog.Logger); ok {
		return l
	}
	return LoggerWrapper()
}
