package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Subgraph holds the connection settings shared by both subgraph clients.
type Subgraph struct {
	EthereumURL  string
	AvalancheURL string
	RPS          float64
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Listen         string
	Subgraph       Subgraph
	DataDir        string
	VestingFile    string
	FirstRound     int
	PwrdYieldShare string
	PGDSN          string
	PGMaxConns     int32
	ApyCron        string
	JobsEnabled    bool
	StatsCacheTTL  time.Duration
	RequestTimeout time.Duration
	SnapshotOut    string
	LogLevel       string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v, err := newViper(cfgFile, flags)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Listen:         v.GetString("listen"),
		Subgraph:       subgraphConfig(v),
		DataDir:        v.GetString("data-dir"),
		VestingFile:    v.GetString("vesting-file"),
		FirstRound:     v.GetInt("airdrop-first-round"),
		PwrdYieldShare: v.GetString("pwrd-yield-share"),
		PGDSN:          v.GetString("pg-dsn"),
		PGMaxConns:     v.GetInt32("pg-max-conns"),
		ApyCron:        v.GetString("apy-cron"),
		JobsEnabled:    v.GetBool("jobs-enabled"),
		StatsCacheTTL:  v.GetDuration("stats-cache-ttl"),
		RequestTimeout: v.GetDuration("request-timeout"),
		SnapshotOut:    v.GetString("snapshot-out"),
		LogLevel:       v.GetString("log-level"),
	}
	if cfg.Subgraph.EthereumURL == "" {
		return Config{}, fmt.Errorf("subgraph-eth is required")
	}
	return cfg, nil
}

func newViper(cfgFile string, flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("GROSTATS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("listen", ":3015")
	v.SetDefault("data-dir", "./data")
	v.SetDefault("vesting-file", "vestingAirdrop.json")
	v.SetDefault("airdrop-first-round", 7)
	v.SetDefault("pwrd-yield-share", "0.2")
	v.SetDefault("pg-max-conns", 10)
	v.SetDefault("apy-cron", "*/30 * * * *")
	v.SetDefault("jobs-enabled", false)
	v.SetDefault("stats-cache-ttl", 30*time.Second)
	v.SetDefault("request-timeout", 30*time.Second)
	v.SetDefault("subgraph-rps", 5.0)
	v.SetDefault("subgraph-timeout", 30*time.Second)
	v.SetDefault("max-retries", 3)
	v.SetDefault("retry-backoff", 500*time.Millisecond)
	v.SetDefault("snapshot-out", "./data/historical_apy.jsonl")
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func subgraphConfig(v *viper.Viper) Subgraph {
	return Subgraph{
		EthereumURL:  strings.TrimSpace(v.GetString("subgraph-eth")),
		AvalancheURL: strings.TrimSpace(v.GetString("subgraph-avax")),
		RPS:          v.GetFloat64("subgraph-rps"),
		MaxRetries:   v.GetInt("max-retries"),
		RetryBackoff: v.GetDuration("retry-backoff"),
		Timeout:      v.GetDuration("subgraph-timeout"),
	}
}
