package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// JobConfig holds configuration for a one-shot APY snapshot run.
type JobConfig struct {
	Subgraph       Subgraph
	PwrdYieldShare string
	PGDSN          string
	PGMaxConns     int32
	SnapshotOut    string
	LogLevel       string
}

// LoadJob merges config file, environment variables, and flags into JobConfig.
func LoadJob(cfgFile string, flags *pflag.FlagSet) (JobConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return JobConfig{}, err
	}

	cfg := JobConfig{
		Subgraph:       subgraphConfig(v),
		PwrdYieldShare: v.GetString("pwrd-yield-share"),
		PGDSN:          v.GetString("pg-dsn"),
		PGMaxConns:     v.GetInt32("pg-max-conns"),
		SnapshotOut:    v.GetString("snapshot-out"),
		LogLevel:       v.GetString("log-level"),
	}
	if cfg.Subgraph.EthereumURL == "" {
		return JobConfig{}, fmt.Errorf("subgraph-eth is required")
	}
	if cfg.PGDSN == "" && cfg.SnapshotOut == "" {
		return JobConfig{}, fmt.Errorf("pg-dsn or snapshot-out is required")
	}
	return cfg, nil
}

// ProofConfig locates the airdrop proof files for offline inspection.
type ProofConfig struct {
	DataDir     string
	VestingFile string
	FirstRound  int
	LogLevel    string
}

// LoadProofs merges config file, environment variables, and flags into ProofConfig.
func LoadProofs(cfgFile string, flags *pflag.FlagSet) (ProofConfig, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return ProofConfig{}, err
	}

	cfg := ProofConfig{
		DataDir:     v.GetString("data-dir"),
		VestingFile: v.GetString("vesting-file"),
		FirstRound:  v.GetInt("airdrop-first-round"),
		LogLevel:    v.GetString("log-level"),
	}
	if cfg.DataDir == "" {
		return ProofConfig{}, fmt.Errorf("data-dir is required")
	}
	return cfg, nil
}
