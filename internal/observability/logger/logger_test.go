package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, zapcore.DebugLevel, parseLevel("DEBUG"))
	require.Equal(t, zapcore.WarnLevel, parseLevel(" warning "))
	require.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	require.Equal(t, zapcore.InfoLevel, parseLevel(""))
	require.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestFrom_FallsBackToSingleton(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.New(core))
	t.Cleanup(func() { Replace(nil) })

	From(context.Background()).Info("hello", Adapter("memory"))
	require.Equal(t, 1, logs.Len())
	require.Equal(t, "memory", logs.All()[0].ContextMap()["adapter"])
}

func TestFrom_UsesScopedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	Replace(zap.NewNop())
	t.Cleanup(func() { Replace(nil) })

	ctx := ToContext(context.Background(), zap.New(core).With(UserID("Users/1")))
	FromWithFields(ctx, Op("create")).Debug("scoped")

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	require.Equal(t, "Users/1", fields["user_id"])
	require.Equal(t, "create", fields["op"])
}

func TestBuild_ProdAndDev(t *testing.T) {
	require.NotNil(t, build(Config{Env: "prod", Level: "warn", ServiceName: "identityctl"}))
	require.NotNil(t, build(Config{Env: "dev", Version: "v0"}))
}
