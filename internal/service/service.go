package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"groStats/internal/model"
	"groStats/internal/stats"
	"groStats/internal/storage"
	"groStats/internal/subgraph"
)

// Querier runs a GraphQL query against one subgraph. *subgraph.Client satisfies it.
type Querier interface {
	Query(ctx context.Context, query string, out interface{}) error
}

// Observer is notified about degraded documents.
type Observer interface {
	UpstreamFailed(network string)
	SectionsUnavailable(document string, sections []string)
}

type nopObserver struct{}

func (nopObserver) UpstreamFailed(string)                {}
func (nopObserver) SectionsUnavailable(string, []string) {}

// Options wires the optional collaborators of a Service.
type Options struct {
	Snapshots storage.Storage
	Observer  Observer
	Transfers int
	Logger    *zap.Logger
}

// Service fetches subgraph data and assembles the stats documents.
type Service struct {
	eth       Querier
	avax      Querier
	protocol  *stats.ProtocolAssembler
	personal  *stats.PersonalAssembler
	snapshots storage.Storage
	observer  Observer
	transfers int
	logger    *zap.Logger
	now       func() time.Time
}

func New(eth, avax Querier, protocol *stats.ProtocolAssembler, personal *stats.PersonalAssembler, opts Options) *Service {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Observer == nil {
		opts.Observer = nopObserver{}
	}
	if opts.Transfers <= 0 {
		opts.Transfers = subgraph.DefaultTransfers
	}
	return &Service{
		eth:       eth,
		avax:      avax,
		protocol:  protocol,
		personal:  personal,
		snapshots: opts.Snapshots,
		observer:  opts.Observer,
		transfers: opts.Transfers,
		logger:    opts.Logger,
		now:       time.Now,
	}
}

// WithClock overrides the service time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// ProtocolStats always returns a document; upstream failures yield the
// status-flagged empty variant.
func (s *Service) ProtocolStats(ctx context.Context) model.ProtocolStats {
	doc, err := s.protocolStats(ctx)
	if err != nil {
		s.logger.Error("protocol stats unavailable", zap.Error(err))
		return stats.EmptyProtocolStats(s.timestamp(), model.StatusError)
	}
	return doc
}

func (s *Service) protocolStats(ctx context.Context) (model.ProtocolStats, error) {
	var res model.GroStatsResult
	if err := s.eth.Query(ctx, subgraph.GroStatsEthereum(s.now(), 0), &res); err != nil {
		s.observer.UpstreamFailed(model.NetworkMainnet)
		return model.ProtocolStats{}, fmt.Errorf("query gro stats: %w", err)
	}
	doc, err := s.protocol.Assemble(res)
	if err != nil {
		return model.ProtocolStats{}, fmt.Errorf("assemble gro stats: %w", err)
	}
	if len(doc.UnavailableSections) > 0 {
		s.observer.SectionsUnavailable("gro_stats", doc.UnavailableSections)
	}
	return doc, nil
}

// PersonalStats assembles both networks concurrently. Each network falls back
// to its empty document on failure without affecting the other.
func (s *Service) PersonalStats(ctx context.Context, address string) model.PersonalPosition {
	address = strings.ToLower(address)

	var (
		eth  model.PersonalStatsEthereum
		avax model.PersonalStatsAvalanche
	)
	var g errgroup.Group
	g.Go(func() error {
		eth = s.ethereumStats(ctx, address)
		return nil
	})
	g.Go(func() error {
		avax = s.avalancheStats(ctx, address)
		return nil
	})
	_ = g.Wait()

	if len(eth.UnavailableSections) > 0 {
		s.observer.SectionsUnavailable("personal_stats", eth.UnavailableSections)
	}

	return model.PersonalPosition{
		Status:           combineStatus(eth.Status, avax.Status),
		CurrentTimestamp: s.timestamp(),
		Address:          address,
		Network:          model.NetworkMainnet,
		Ethereum:         eth,
		Avalanche:        avax,
	}
}

func (s *Service) ethereumStats(ctx context.Context, address string) model.PersonalStatsEthereum {
	var res model.PersonalStatsResult
	err := s.eth.Query(ctx, subgraph.PersonalStatsEthereum(address, s.transfers, 0), &res)
	if err != nil {
		s.observer.UpstreamFailed(model.NetworkMainnet)
	} else {
		var doc model.PersonalStatsEthereum
		if doc, err = s.personal.AssembleEthereum(address, res); err == nil {
			return doc
		}
	}
	s.logger.Error("ethereum personal stats unavailable", zap.String("address", address), zap.Error(err))
	return s.personal.EmptyEthereum(address, model.StatusError)
}

func (s *Service) avalancheStats(ctx context.Context, address string) model.PersonalStatsAvalanche {
	if s.avax == nil {
		return stats.EmptyAvalancheUser(model.StatusError)
	}
	var res model.AvaxPersonalStatsResult
	err := s.avax.Query(ctx, subgraph.PersonalStatsAvalanche(address, s.transfers, 0), &res)
	if err != nil {
		s.observer.UpstreamFailed(model.NetworkAvalanche)
	} else {
		var doc model.PersonalStatsAvalanche
		if doc, err = s.personal.AssembleAvalanche(address, res); err == nil {
			return doc
		}
	}
	s.logger.Error("avalanche personal stats unavailable", zap.String("address", address), zap.Error(err))
	return stats.EmptyAvalancheUser(model.StatusError)
}

// combineStatus is ok when every network is ok, error when all failed and
// warning otherwise.
func combineStatus(statuses ...model.Status) model.Status {
	ok, failed := 0, 0
	for _, st := range statuses {
		switch st {
		case model.StatusOK:
			ok++
		case model.StatusError:
			failed++
		}
	}
	switch {
	case ok == len(statuses):
		return model.StatusOK
	case failed == len(statuses):
		return model.StatusError
	default:
		return model.StatusWarning
	}
}

// ErrNoSnapshot is returned when the protocol document cannot be built.
var ErrNoSnapshot = errors.New("apy snapshot unavailable")

// SnapshotApy builds the current APY/TVL observation and stores it.
func (s *Service) SnapshotApy(ctx context.Context) (model.ApySnapshot, error) {
	doc, err := s.protocolStats(ctx)
	if err != nil {
		return model.ApySnapshot{}, fmt.Errorf("%w: %w", ErrNoSnapshot, err)
	}
	snap := stats.Snapshot(doc, s.now())
	if s.snapshots != nil {
		if err := s.snapshots.PutApySnapshot(ctx, snap); err != nil {
			return snap, fmt.Errorf("store apy snapshot: %w", err)
		}
	}
	s.logger.Info("apy snapshot stored",
		zap.Uint64("timestamp", snap.Timestamp),
		zap.String("apy_gvt", snap.ApyGvt),
		zap.String("apy_pwrd", snap.ApyPwrd),
		zap.String("tvl_total", snap.TvlTotal),
	)
	return snap, nil
}

func (s *Service) timestamp() string {
	return strconv.FormatInt(s.now().Unix(), 10)
}
