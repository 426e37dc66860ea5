// internal/pkg/logger/logger.go
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ContextKey represents keys for context values
type ContextKey string

const (
	// Context keys for logging
	ContextKeyOperationID ContextKey = "operation_id"
	ContextKeyOperation   ContextKey = "operation"
	ContextKeyWarehouse   ContextKey = "warehouse"
	ContextKeyProduct     ContextKey = "product"
)

// LogConfig holds logger configuration
type LogConfig struct {
	Level          string `json:"level"`
	Format         string `json:"format"` // json, text
	Output         string `json:"output"`
	AddSource      bool   `json:"add_source"`
	ServiceName    string `json:"service_name"`
	ServiceVersion string `json:"service_version"`
	Environment    string `json:"environment"`
}

// Logger wraps slog.Logger with context extraction
type Logger struct {
	*slog.Logger
	config *LogConfig
}

var defaultLogger *Logger

// SetupLogger initializes the structured logger and installs it as the slog
// default.
func SetupLogger(level, format string) *Logger {
	config := &LogConfig{
		Level:          level,
		Format:         format,
		Output:         "stderr",
		ServiceName:    os.Getenv("SERVICE_NAME"),
		ServiceVersion: os.Getenv("SERVICE_VERSION"),
		Environment:    os.Getenv("APP_ENV"),
	}

	logger := NewLogger(config)
	defaultLogger = logger
	slog.SetDefault(logger.Logger)

	return logger
}

// NewLogger creates a new structured logger
func NewLogger(config *LogConfig) *Logger {
	if config == nil {
		config = &LogConfig{Level: "info", Format: "json", Output: "stderr"}
	}

	opts := &slog.HandlerOptions{
		Level:     parseLevel(config.Level),
		AddSource: config.AddSource,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				if t, ok := a.Value.Any().(time.Time); ok {
					a.Value = slog.StringValue(t.Format(time.RFC3339Nano))
				}
			}
			return a
		},
	}

	var handler slog.Handler
	writer := getWriter(config.Output)
	switch config.Format {
	case "text":
		handler = NewPrettyTextHandler(writer, opts)
	default:
		handler = slog.NewJSONHandler(writer, opts)
	}

	// Wrap with context handler for automatic context extraction
	handler = NewContextHandler(handler)

	var attrs []slog.Attr
	if config.ServiceName != "" {
		attrs = append(attrs, slog.String("service_name", config.ServiceName))
	}
	if config.ServiceVersion != "" {
		attrs = append(attrs, slog.String("version", config.ServiceVersion))
	}
	if config.Environment != "" {
		attrs = append(attrs, slog.String("env", config.Environment))
	}
	if len(attrs) > 0 {
		handler = handler.WithAttrs(attrs)
	}

	return &Logger{
		Logger: slog.New(handler),
		config: config,
	}
}

// WithOperation tags ctx with a fresh operation ID and the operation name so
// every log line emitted while handling one menu command correlates.
func WithOperation(ctx context.Context, operation string) context.Context {
	ctx = context.WithValue(ctx, ContextKeyOperationID, uuid.NewString())
	return context.WithValue(ctx, ContextKeyOperation, operation)
}

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	if defaultLogger == nil {
		defaultLogger = NewLogger(nil)
	}
	return defaultLogger
}

// Helper functions

func parseLevel(level string) slog.Leveler {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getWriter(output string) io.Writer {
	switch output {
	case "stdout":
		return os.Stdout
	case "stderr":
		return os.Stderr
	default:
		if strings.HasPrefix(output, "file:") {
			filename := strings.TrimPrefix(output, "file:")
			file, err := os.OpenFile(filename, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
			if err != nil {
				return os.Stderr
			}
			return file
		}
		return os.Stderr
	}
}

func contextKeys() []ContextKey {
	return []ContextKey{
		ContextKeyOperationID,
		ContextKeyOperation,
		ContextKeyWarehouse,
		ContextKeyProduct,
	}
}

func extractContextAttrs(ctx context.Context) []slog.Attr {
	var attrs []slog.Attr
	for _, key := range contextKeys() {
		if val := ctx.Value(key); val != nil {
			if s, ok := val.(string); ok && s != "" {
				attrs = append(attrs, slog.String(string(key), s))
			}
		}
	}
	return attrs
}
