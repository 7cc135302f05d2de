package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/pool/internal/logutil"
)

func TestConfig(t *testing.T) {
	t.Setenv("POOL_DEBUG", "")
	LoadConfig()
	require.Equal(t, 0, Debug)
	require.Equal(t, slog.LevelInfo, LogLevel())

	t.Setenv("POOL_DEBUG", "false")
	LoadConfig()
	require.Equal(t, 0, Debug)

	t.Setenv("POOL_DEBUG", "true")
	LoadConfig()
	require.Equal(t, 1, Debug)
	require.Equal(t, slog.LevelDebug, LogLevel())

	t.Setenv("POOL_DEBUG", "2")
	LoadConfig()
	require.Equal(t, 2, Debug)
	require.Equal(t, logutil.LevelTrace, LogLevel())

	t.Setenv("POOL_DEBUG", "'1'")
	LoadConfig()
	require.Equal(t, 1, Debug)
}

func TestParallelFromEnv(t *testing.T) {
	t.Setenv("POOL_SEQUENTIAL", "")
	t.Setenv("POOL_NUM_WORKERS", "3")
	LoadConfig()
	cfg := Parallel()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, 3, cfg.NumWorkers)

	t.Setenv("POOL_NUM_WORKERS", "1")
	LoadConfig()
	assert.False(t, Parallel().Enabled)

	t.Setenv("POOL_NUM_WORKERS", "-4")
	LoadConfig()
	assert.Equal(t, 0, NumWorkers)

	t.Setenv("POOL_NUM_WORKERS", "8")
	t.Setenv("POOL_SEQUENTIAL", "1")
	LoadConfig()
	assert.False(t, Parallel().Enabled)
}

func TestValues(t *testing.T) {
	t.Setenv("POOL_NUM_WORKERS", "5")
	t.Setenv("POOL_SEQUENTIAL", "")
	t.Setenv("POOL_DEBUG", "")
	LoadConfig()

	vals := Values()
	assert.Equal(t, "5", vals["POOL_NUM_WORKERS"])
	assert.Equal(t, "false", vals["POOL_SEQUENTIAL"])
	assert.Len(t, vals, len(AsMap()))
}
