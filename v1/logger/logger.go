package logger

import (
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Debug logs a message at debug level. The context may be nil; when tracing
// is enabled and the context carries a span, trace and span ids are added to
// the entry.
func (l *Logger) Debug(msg string, ctx context.Context, fields map[string]interface{}) {
	l.log(zapcore.DebugLevel, msg, ctx, fields)
}

// Info logs a message at info level.
func (l *Logger) Info(msg string, ctx context.Context, fields map[string]interface{}) {
	l.log(zapcore.InfoLevel, msg, ctx, fields)
}

// Warn logs a message at warning level.
func (l *Logger) Warn(msg string, ctx context.Context, fields map[string]interface{}) {
	l.log(zapcore.WarnLevel, msg, ctx, fields)
}

// Error logs a message at error level.
func (l *Logger) Error(msg string, ctx context.Context, fields map[string]interface{}) {
	l.log(zapcore.ErrorLevel, msg, ctx, fields)
}

func (l *Logger) log(level zapcore.Level, msg string, ctx context.Context, fields map[string]interface{}) {
	zapFields := make([]zap.Field, 0, len(fields)+2)
	for key, value := range fields {
		zapFields = append(zapFields, zap.Any(key, value))
	}

	if l.tracingEnabled && ctx != nil {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			zapFields = append(zapFields,
				zap.String("trace_id", sc.TraceID().String()),
				zap.String("span_id", sc.SpanID().String()),
			)
		}
	}

	switch level {
	case zapcore.DebugLevel:
		l.Zap.Debug(msg, zapFields...)
	case zapcore.InfoLevel:
		l.Zap.Info(msg, zapFields...)
	case zapcore.WarnLevel:
		l.Zap.Warn(msg, zapFields...)
	default:
		l.Zap.Error(msg, zapFields...)
	}
}
