package observability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	t.Setenv(LevelEnv, "")

	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.InfoLevel, lvl.Level())

	lvl, err = ParseLevel(" DEBUG ")
	require.NoError(t, err)
	require.Equal(t, zapcore.DebugLevel, lvl.Level())

	_, err = ParseLevel("chatty")
	require.Error(t, err)
}

func TestParseLevelFromEnv(t *testing.T) {
	t.Setenv(LevelEnv, "warn")

	lvl, err := ParseLevel("")
	require.NoError(t, err)
	require.Equal(t, zapcore.WarnLevel, lvl.Level())

	lvl, err = ParseLevel("error")
	require.NoError(t, err)
	require.Equal(t, zapcore.ErrorLevel, lvl.Level(), "explicit level wins over env")
}

func TestConfigKeys(t *testing.T) {
	cfg := Config(zap.NewAtomicLevel())
	require.Equal(t, "json", cfg.Encoding)
	require.Equal(t, "severity", cfg.EncoderConfig.LevelKey)
	require.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
	require.Equal(t, "message", cfg.EncoderConfig.MessageKey)
	require.True(t, cfg.DisableStacktrace)
}

func TestContextLogger(t *testing.T) {
	require.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := WithLogger(context.Background(), l)
	require.Same(t, l, FromContext(ctx))
}
