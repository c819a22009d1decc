package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("subgraph-eth", "", "")
	flags.Duration("stats-cache-ttl", 0, "")
	require.NoError(t, flags.Parse([]string{"--subgraph-eth", "http://eth", "--stats-cache-ttl", "1m"}))

	cfg, err := Load("", flags)
	require.NoError(t, err)

	assert.Equal(t, "http://eth", cfg.Subgraph.EthereumURL)
	assert.Equal(t, time.Minute, cfg.StatsCacheTTL)
	assert.Equal(t, ":3015", cfg.Listen)
	assert.Equal(t, 7, cfg.FirstRound)
	assert.Equal(t, int32(10), cfg.PGMaxConns)
	assert.Equal(t, "*/30 * * * *", cfg.ApyCron)
	assert.False(t, cfg.JobsEnabled)
	assert.Equal(t, 3, cfg.Subgraph.MaxRetries)
}

func TestLoadFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grostats.yaml")
	require.NoError(t, os.WriteFile(path, []byte("subgraph-eth: http://file\npg-max-conns: 4\n"), 0o644))
	t.Setenv("GROSTATS_JOBS_ENABLED", "true")
	t.Setenv("GROSTATS_SUBGRAPH_AVAX", "http://avax")

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://file", cfg.Subgraph.EthereumURL)
	assert.Equal(t, "http://avax", cfg.Subgraph.AvalancheURL)
	assert.Equal(t, int32(4), cfg.PGMaxConns)
	assert.True(t, cfg.JobsEnabled)
}

func TestLoadRequiresEthereumSubgraph(t *testing.T) {
	_, err := Load("", nil)
	require.Error(t, err)
}

func TestLoadJobRequiresSink(t *testing.T) {
	t.Setenv("GROSTATS_SUBGRAPH_ETH", "http://eth")
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("snapshot-out", "", "")
	require.NoError(t, flags.Parse([]string{"--snapshot-out="}))

	_, err := LoadJob("", flags)
	require.Error(t, err)

	t.Setenv("GROSTATS_PG_DSN", "postgres://localhost/gro")
	cfg, err := LoadJob("", flags)
	require.NoError(t, err)
	assert.Equal(t, "postgres://localhost/gro", cfg.PGDSN)
}
