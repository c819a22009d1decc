package main

import (
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"groStats/internal/aggregate"
	"groStats/internal/config"
	"groStats/internal/proof"
	"groStats/internal/service"
	"groStats/internal/subgraph"
)

func main() {
	root := &cobra.Command{
		Use:          "grostats",
		Short:        "Gro protocol stats and airdrop eligibility",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the stats HTTP API",
		RunE:  runServe,
	}

	serveCmd.Flags().String("listen", ":3015", "HTTP listen address")
	addSubgraphFlags(serveCmd)
	addProofFlags(serveCmd)
	serveCmd.Flags().String("pg-dsn", "", "Postgres DSN for APY snapshots")
	serveCmd.Flags().Int32("pg-max-conns", 10, "maximum Postgres connections")
	serveCmd.Flags().String("snapshot-out", "./data/historical_apy.jsonl", "APY snapshot JSONL path")
	serveCmd.Flags().String("apy-cron", "*/30 * * * *", "APY snapshot schedule")
	serveCmd.Flags().Bool("jobs-enabled", false, "run the scheduled APY snapshot job")
	serveCmd.Flags().Duration("stats-cache-ttl", 30*time.Second, "response cache TTL, 0 disables caching")
	serveCmd.Flags().Duration("request-timeout", 30*time.Second, "per-request timeout")
	serveCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(serveCmd)

	airdropsCmd := &cobra.Command{
		Use:   "airdrops <address>",
		Short: "Print the airdrop eligibility of an address from local proof files",
		Args:  cobra.ExactArgs(1),
		RunE:  runAirdrops,
	}

	addProofFlags(airdropsCmd)
	airdropsCmd.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(airdropsCmd)

	apyJobCmd := &cobra.Command{
		Use:   "apy-job",
		Short: "Take one APY snapshot and store it",
		RunE:  runApyJob,
	}

	addSubgraphFlags(apyJobCmd)
	apyJobCmd.Flags().String("pg-dsn", "", "Postgres DSN for APY snapshots")
	apyJobCmd.Flags().Int32("pg-max-conns", 4, "maximum Postgres connections")
	apyJobCmd.Flags().String("snapshot-out", "./data/historical_apy.jsonl", "APY snapshot JSONL path")
	apyJobCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(apyJobCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSubgraphFlags(cmd *cobra.Command) {
	cmd.Flags().String("subgraph-eth", "", "Ethereum subgraph URL")
	cmd.Flags().String("subgraph-avax", "", "Avalanche subgraph URL")
	cmd.Flags().Float64("subgraph-rps", 5, "subgraph requests per second, 0 disables limiting")
	cmd.Flags().Duration("subgraph-timeout", 30*time.Second, "subgraph HTTP timeout")
	cmd.Flags().Int("max-retries", 3, "maximum retry attempts")
	cmd.Flags().Duration("retry-backoff", 500*time.Millisecond, "initial retry backoff")
	cmd.Flags().String("pwrd-yield-share", "0.2", "share of pwrd yield kept by pwrd holders")
}

func addProofFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "./data", "directory holding airdrops/ and vestingAirdrops/")
	cmd.Flags().String("vesting-file", "vestingAirdrop.json", "vesting airdrop proof file name")
	cmd.Flags().Int("airdrop-first-round", proof.DefaultFirstRound, "index of the first reported airdrop file")
}

func proofConfig(dataDir, vestingFile string, firstRound int) proof.Config {
	return proof.Config{
		AirdropDir:  filepath.Join(dataDir, "airdrops"),
		VestingFile: filepath.Join(dataDir, "vestingAirdrops", vestingFile),
		FirstRound:  firstRound,
	}
}

// subgraphClients builds the per-network clients. avax stays a nil interface
// when no Avalanche endpoint is configured.
func subgraphClients(cfg config.Subgraph, logger *zap.Logger) (eth *subgraph.Client, avax service.Querier) {
	base := subgraph.Config{
		RPS:          cfg.RPS,
		MaxRetries:   cfg.MaxRetries,
		RetryBackoff: cfg.RetryBackoff,
		Timeout:      cfg.Timeout,
	}
	ethCfg := base
	ethCfg.Name = "ethereum"
	ethCfg.URL = cfg.EthereumURL
	eth = subgraph.NewClient(ethCfg, logger)

	if cfg.AvalancheURL != "" {
		avaxCfg := base
		avaxCfg.Name = "avalanche"
		avaxCfg.URL = cfg.AvalancheURL
		avax = subgraph.NewClient(avaxCfg, logger)
	}
	return eth, avax
}

func apyEstimator(share string, logger *zap.Logger) aggregate.ApyEstimator {
	parsed, err := decimal.NewFromString(share)
	if err != nil {
		logger.Warn("invalid pwrd-yield-share, using default", zap.String("value", share), zap.Error(err))
		parsed = aggregate.DefaultPwrdYieldShare
	}
	return aggregate.NewApyEstimator(parsed)
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
