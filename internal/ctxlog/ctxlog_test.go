package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))

	ctx = With(ctx, "session", "abc")
	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "session=abc")

	assert.Panics(t, func() { FromContext(context.Background()) })
}
