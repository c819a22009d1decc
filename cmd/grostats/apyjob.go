package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"groStats/internal/config"
	"groStats/internal/scheduler"
	"groStats/internal/service"
	"groStats/internal/stats"
)

func runApyJob(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadJob(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sinks, _, closeStore, err := snapshotStorage(ctx, cfg.PGDSN, cfg.PGMaxConns, cfg.SnapshotOut, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	eth, _ := subgraphClients(cfg.Subgraph, logger)
	svc := service.New(eth, nil,
		stats.NewProtocolAssembler(apyEstimator(cfg.PwrdYieldShare, logger), logger),
		nil,
		service.Options{Snapshots: sinks, Logger: logger},
	)

	job := scheduler.New("apy_snapshot", scheduler.DefaultSpec, 0, func(ctx context.Context) error {
		_, err := svc.SnapshotApy(ctx)
		return err
	}, logger)

	if err := job.RunNow(ctx); err != nil {
		return fmt.Errorf("apy job: %w", err)
	}
	return nil
}
