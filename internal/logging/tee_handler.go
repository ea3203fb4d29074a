package logging

import (
	"context"
	"log/slog"
)

// TeeHandler pairs the console handler with the system_logs persistence
// handler. Every record goes to the console; the store only sees what its
// own level filter admits (ERROR+ for PGHandler).
type TeeHandler struct {
	console slog.Handler
	store   slog.Handler
}

func NewTeeHandler(console, store slog.Handler) *TeeHandler {
	return &TeeHandler{console: console, store: store}
}

func (t *TeeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return t.console.Enabled(ctx, level) || t.store.Enabled(ctx, level)
}

// Handle delivers to both sides; a store failure never suppresses the
// console write, and the first error wins.
func (t *TeeHandler) Handle(ctx context.Context, record slog.Record) error {
	var err error
	if t.console.Enabled(ctx, record.Level) {
		err = t.console.Handle(ctx, record)
	}
	if t.store.Enabled(ctx, record.Level) {
		if storeErr := t.store.Handle(ctx, record); err == nil {
			err = storeErr
		}
	}
	return err
}

func (t *TeeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TeeHandler{console: t.console.WithAttrs(attrs), store: t.store.WithAttrs(attrs)}
}

func (t *TeeHandler) WithGroup(name string) slog.Handler {
	return &TeeHandler{console: t.console.WithGroup(name), store: t.store.WithGroup(name)}
}
