package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"groStats/internal/airdrop"
	"groStats/internal/api"
	"groStats/internal/config"
	"groStats/internal/model"
	"groStats/internal/proof"
	"groStats/internal/scheduler"
	"groStats/internal/service"
	"groStats/internal/stats"
	"groStats/internal/storage"
	"groStats/internal/storage/postgres"
)

const shutdownTimeout = 15 * time.Second

func runServe(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
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

	registry := proof.NewRegistry(proofConfig(cfg.DataDir, cfg.VestingFile, cfg.FirstRound), logger)
	registry.Reload()

	sinks, history, closeStore, err := snapshotStorage(ctx, cfg.PGDSN, cfg.PGMaxConns, cfg.SnapshotOut, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	metrics := api.NewMetrics()
	eth, avax := subgraphClients(cfg.Subgraph, logger)
	resolver := airdrop.NewResolver(registry, logger)
	svc := service.New(eth, avax,
		stats.NewProtocolAssembler(apyEstimator(cfg.PwrdYieldShare, logger), logger),
		stats.NewPersonalAssembler(resolver, logger),
		service.Options{Snapshots: sinks, Observer: metrics, Logger: logger},
	)

	server, err := api.NewServer(api.Config{
		Listen:         cfg.Listen,
		CacheTTL:       cfg.StatsCacheTTL,
		RequestTimeout: cfg.RequestTimeout,
	}, svc, history, metrics, logger)
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	var jobs *scheduler.Scheduler
	if cfg.JobsEnabled {
		jobs = scheduler.New("apy_snapshot", cfg.ApyCron, time.Minute, func(ctx context.Context) error {
			_, err := svc.SnapshotApy(ctx)
			return err
		}, logger)
		if err := jobs.Start(); err != nil {
			return err
		}
	}

	logger.Info("grostats start",
		zap.String("listen", cfg.Listen),
		zap.String("subgraph_eth", cfg.Subgraph.EthereumURL),
		zap.Bool("subgraph_avax", cfg.Subgraph.AvalancheURL != ""),
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("postgres", cfg.PGDSN != ""),
		zap.Bool("jobs_enabled", cfg.JobsEnabled),
		zap.String("apy_cron", cfg.ApyCron),
		zap.Duration("stats_cache_ttl", cfg.StatsCacheTTL),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(server.ListenAndServe)
	g.Go(func() error {
		reloadProofs(gctx, registry, logger)
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("grostats shutting down")

		if jobs != nil {
			<-jobs.Stop().Done()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reloadProofs swaps in freshly loaded proof files on SIGHUP.
func reloadProofs(ctx context.Context, registry *proof.Registry, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			store := registry.Reload()
			logger.Info("proof files reloaded",
				zap.Int("airdrops", len(store.Airdrops())),
				zap.Bool("vesting_available", store.Available(model.SectionVestingAirdrop)),
			)
		}
	}
}

// snapshotStorage wires the APY snapshot sinks. Postgres, when configured,
// also serves the historical endpoint; otherwise the JSONL file does.
func snapshotStorage(ctx context.Context, dsn string, maxConns int32, out string, logger *zap.Logger) (storage.Storage, storage.History, func(), error) {
	var (
		sinks   storage.Multi
		history storage.History
		closeFn = func() {}
	)

	if out != "" {
		jsonl := storage.NewJsonlStorage(out)
		sinks = append(sinks, jsonl)
		history = jsonl
	}

	if dsn != "" {
		store, err := postgres.NewStore(ctx, postgres.Config{DSN: dsn, MaxConns: maxConns}, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, nil, fmt.Errorf("migrate postgres: %w", err)
		}
		sinks = append(sinks, store)
		history = store
		closeFn = store.Close
	}

	if len(sinks) == 0 {
		return nil, history, closeFn, nil
	}
	return sinks, history, closeFn, nil
}
