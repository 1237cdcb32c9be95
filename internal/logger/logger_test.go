package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefaultIsUsableBeforeInitialize(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("before initialize")
		Error(errors.New("boom"))
		DebugCtx(context.Background(), "debug")
	})
}

func TestInitializeWithoutSentry(t *testing.T) {
	err := Initialize(Config{Debug: true, Service: "ledger-test"})
	require.NoError(t, err)
	require.NotNil(t, Default())

	assert.NotPanics(t, func() {
		InfoCtx(context.Background(), "hello", zap.String("k", "v"))
		WarnCtx(context.Background(), "warn")
		ErrorCtx(context.Background(), nil)
		With(zap.Int("n", 1)).Info("child")
		Flush(10 * time.Millisecond)
	})
}

func TestFromContextNil(t *testing.T) {
	require.NoError(t, Initialize(Config{}))
	//nolint:staticcheck // nil context is handled explicitly
	assert.Equal(t, Default(), FromContext(nil))
}
