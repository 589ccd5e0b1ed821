package db

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConnect_Validation(t *testing.T) {
	t.Parallel()

	_, err := Connect(context.Background(), Config{})
	require.ErrorIs(t, err, ErrMissingConnectionString)

	_, err = Connect(context.Background(), Config{ConnectionString: "postgres://%zz"})
	require.ErrorIs(t, err, ErrFailedToParseDBConfig)
}

func TestConfig_Defaults(t *testing.T) {
	t.Parallel()

	cfg := Config{QueryTimeout: -time.Second}.withDefaults()
	require.Equal(t, DefaultRetryAttempts, cfg.RetryAttempts)
	require.Equal(t, DefaultRetryInterval, cfg.RetryInterval)
	require.Equal(t, int32(DefaultMaxConns), cfg.MaxConns)
	require.Equal(t, -time.Second, cfg.QueryTimeout)
	require.Equal(t, DefaultQueryTimeout, Config{}.withDefaults().QueryTimeout)
}

func TestQueryContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := QueryContext(context.Background(), Config{QueryTimeout: time.Minute})
	defer cancel()
	_, ok := ctx.Deadline()
	require.True(t, ok)

	ctx2, cancel2 := QueryContext(context.Background(), Config{QueryTimeout: -1})
	defer cancel2()
	_, ok = ctx2.Deadline()
	require.False(t, ok)
}
