// Package observability configures the structured logger shared by the server.
package observability

import (
	"context"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultLogLevel = "info"
	// LevelEnv overrides the level when no explicit level is configured.
	LevelEnv = "KALAKRUTI_WEB_LOG_LEVEL"
)

type ctxKey struct{}

// NewLogger constructs a zap logger emitting structured JSON to stdout.
// An empty level falls back to LevelEnv, then to info.
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return Config(lvl).Build()
}

// ParseLevel resolves a level name. Unknown names are an error; an empty name
// consults LevelEnv.
func ParseLevel(level string) (zap.AtomicLevel, error) {
	name := strings.ToLower(strings.TrimSpace(level))
	if name == "" {
		name = strings.ToLower(strings.TrimSpace(os.Getenv(LevelEnv)))
	}
	if name == "" {
		name = defaultLogLevel
	}
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return lvl, err
	}
	return lvl, nil
}

// Config returns the zap configuration used by NewLogger.
func Config(level zap.AtomicLevel) zap.Config {
	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "message",
		TimeKey:    "timestamp",
		LevelKey:   "severity",
		EncodeTime: zapcore.RFC3339NanoTimeEncoder,
		EncodeLevel: func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString(strings.ToUpper(level.String()))
		},
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		StacktraceKey:  "stacktrace",
		EncodeDuration: zapcore.MillisDurationEncoder,
	}

	return zap.Config{
		Level:             level,
		Encoding:          "json",
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
}

// WithLogger injects the logger into the provided context.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext retrieves the logger from context, defaulting to a no-op logger.
func FromContext(ctx context.Context) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*zap.Logger); ok && l != nil {
			return l
		}
	}
	return zap.NewNop()
}
