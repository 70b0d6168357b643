package telemetry

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLogger(false, &buf)
	slog.Debug("hidden")
	slog.Info("shown", "command", "zstd")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown command=zstd")

	buf.Reset()
	logger := InitLogger(true, &buf)
	slog.Debug("visible")
	assert.Contains(t, buf.String(), "level=DEBUG msg=visible")
	assert.Same(t, logger, slog.Default())
}
