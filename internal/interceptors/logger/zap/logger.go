package zap

import (
	"context"
	"fmt"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type contextKey string

const (
	TraceIDKey contextKey = "x-request-id"
	UserIDKey  contextKey = "user_id"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var (
	mu           sync.RWMutex
	globalLogger = &ContextLogger{zapLogger: zap.NewNop()}
)

// ContextLogger adds the request id and user id found in ctx to every entry.
type ContextLogger struct {
	zapLogger *zap.Logger
}

// Init replaces the global no-op logger with one writing to stdout.
func Init(level, format string) error {
	parsedLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	var encoder zapcore.Encoder
	switch format {
	case FormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	case FormatConsole, "":
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(parsedLevel))
	setGlobal(zap.New(core, zap.AddCaller(), zap.AddCallerSkip(3)))

	return nil
}

func encoderConfig() zapcore.EncoderConfig {
	config := zap.NewProductionEncoderConfig()
	config.TimeKey = "timestamp"
	config.MessageKey = "message"
	config.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncodeLevel = zapcore.CapitalLevelEncoder
	config.EncodeDuration = zapcore.StringDurationEncoder

	return config
}

// SetNopLogger is used by tests that exercise code paths which log.
func SetNopLogger() {
	setGlobal(zap.NewNop())
}

func setGlobal(zapLogger *zap.Logger) {
	mu.Lock()
	globalLogger = &ContextLogger{zapLogger: zapLogger}
	mu.Unlock()
}

func Logger() *ContextLogger {
	mu.RLock()
	defer mu.RUnlock()

	return globalLogger
}

// Raw exposes the underlying zap logger for libraries that take one directly.
func Raw() *zap.Logger {
	return Logger().zapLogger
}

func Sync() error {
	return Logger().zapLogger.Sync()
}

func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

func TraceIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(TraceIDKey).(string)
	return value
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func Debug(ctx context.Context, message string, fields ...zap.Field) {
	Logger().Debug(ctx, message, fields...)
}

func Info(ctx context.Context, message string, fields ...zap.Field) {
	Logger().Info(ctx, message, fields...)
}

func Warn(ctx context.Context, message string, fields ...zap.Field) {
	Logger().Warn(ctx, message, fields...)
}

func Error(ctx context.Context, message string, fields ...zap.Field) {
	Logger().Error(ctx, message, fields...)
}

func (l *ContextLogger) Debug(ctx context.Context, message string, fields ...zap.Field) {
	l.log(ctx, zapcore.DebugLevel, message, fields)
}

func (l *ContextLogger) Info(ctx context.Context, message string, fields ...zap.Field) {
	l.log(ctx, zapcore.InfoLevel, message, fields)
}

func (l *ContextLogger) Warn(ctx context.Context, message string, fields ...zap.Field) {
	l.log(ctx, zapcore.WarnLevel, message, fields)
}

func (l *ContextLogger) Error(ctx context.Context, message string, fields ...zap.Field) {
	l.log(ctx, zapcore.ErrorLevel, message, fields)
}

func (l *ContextLogger) log(ctx context.Context, level zapcore.Level, message string, fields []zap.Field) {
	if entry := l.zapLogger.Check(level, message); entry != nil {
		entry.Write(append(fieldsFromContext(ctx), fields...)...)
	}
}

func fieldsFromContext(ctx context.Context) []zap.Field {
	fields := make([]zap.Field, 0, 2)

	if traceID, _ := ctx.Value(TraceIDKey).(string); traceID != "" {
		fields = append(fields, zap.String(string(TraceIDKey), traceID))
	}
	if userID, _ := ctx.Value(UserIDKey).(string); userID != "" {
		fields = append(fields, zap.String(string(UserIDKey), userID))
	}

	return fields
}
