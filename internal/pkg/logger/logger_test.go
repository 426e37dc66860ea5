// internal/pkg/logger/logger_test.go
package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/biomarket-be/internal/pkg/logger"
)

func TestContextHandler_AddsOperationAttrs(t *testing.T) {
	var buf bytes.Buffer
	handler := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	ctx := logger.WithOperation(context.Background(), "sell_product")
	log.InfoContext(ctx, "sale recorded", slog.String("product", "Apples"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "sell_product", entry["operation"])
	assert.NotEmpty(t, entry["operation_id"], "every operation gets a correlation id")
	assert.Equal(t, "Apples", entry["product"])
}

func TestContextHandler_PlainContextLeavesRecordAlone(t *testing.T) {
	var buf bytes.Buffer
	handler := logger.NewContextHandler(slog.NewJSONHandler(&buf, nil))
	log := slog.New(handler)

	log.InfoContext(context.Background(), "started")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	_, hasOperation := entry["operation"]
	assert.False(t, hasOperation)
}

func TestWithOperation_FreshIDPerOperation(t *testing.T) {
	ctx1 := logger.WithOperation(context.Background(), "add_product")
	ctx2 := logger.WithOperation(context.Background(), "add_product")

	id1 := ctx1.Value(logger.ContextKeyOperationID)
	id2 := ctx2.Value(logger.ContextKeyOperationID)

	require.NotNil(t, id1)
	require.NotNil(t, id2)
	assert.NotEqual(t, id1, id2)
}

func TestNewLogger_TextFormatUsesPrettyHandler(t *testing.T) {
	log := logger.NewLogger(&logger.LogConfig{Level: "debug", Format: "text", Output: "stderr"})
	require.NotNil(t, log.Logger)
	assert.True(t, log.Enabled(context.Background(), slog.LevelDebug))
}
