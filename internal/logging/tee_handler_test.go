package logging_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/clinicpass/clinicpass-backend/internal/logging"
	"github.com/stretchr/testify/assert"
)

func TestTeeHandlerRouting(t *testing.T) {
	var console, store bytes.Buffer
	logger := slog.New(logging.NewTeeHandler(
		slog.NewJSONHandler(&console, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&store, &slog.HandlerOptions{Level: slog.LevelError}),
	))

	logger.Info("qr code resolved", "short_code", "abc23456")
	logger.Error("docuseal signing request failed", "error", "timeout")

	assert.Contains(t, console.String(), "qr code resolved")
	assert.Contains(t, console.String(), "docuseal signing request failed")
	assert.NotContains(t, store.String(), "qr code resolved")
	assert.Contains(t, store.String(), "docuseal signing request failed")
}

func TestTeeHandlerEnabled(t *testing.T) {
	handler := logging.NewTeeHandler(
		slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}),
	)

	assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelWarn))
	assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
}
