package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextWithLogger_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	carried := NewSlogLogger(slog.New(slog.NewTextHandler(&buf, nil))).With("request_id", "abc")

	ctx := ContextWithLogger(context.Background(), carried)
	got := FromContext(ctx, nil)
	assert.Same(t, carried, got)

	got.Info(ctx, "hello")
	assert.Contains(t, buf.String(), "request_id=abc")
}

func TestFromContext_FallsBack(t *testing.T) {
	fallback := NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

	got := FromContext(context.Background(), fallback)
	assert.Same(t, fallback, got)
}
