package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"
)

// Context returns a context carrying a development logger.
func Context(t testing.TB) context.Context {
	ctx := context.Background()
	l, err := zap.NewDevelopment()
	require.NoError(t, err)
	ctx = logctx.NewContext(ctx, l)
	return ctx
}
