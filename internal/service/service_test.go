package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groStats/internal/aggregate"
	"groStats/internal/airdrop"
	"groStats/internal/model"
	"groStats/internal/proof"
	"groStats/internal/stats"
	"groStats/internal/storage"
	"groStats/internal/subgraph"
)

const (
	addr    = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
	blockTs = 1_700_000_000
)

type querierFunc func(ctx context.Context, query string, out interface{}) error

func (f querierFunc) Query(ctx context.Context, query string, out interface{}) error {
	return f(ctx, query, out)
}

type staticSource struct{ store *proof.Store }

func (s staticSource) Current() *proof.Store { return s.store }

type recorder struct {
	mu          sync.Mutex
	upstream    []string
	unavailable []string
}

func (r *recorder) UpstreamFailed(network string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upstream = append(r.upstream, network)
}

func (r *recorder) SectionsUnavailable(_ string, sections []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unavailable = append(r.unavailable, sections...)
}

var errDown = errors.New("down")

func meta() model.SubgraphMeta {
	var m model.SubgraphMeta
	m.Block.Timestamp = blockTs
	return m
}

func ethQuerier(fail bool) Querier {
	return querierFunc(func(_ context.Context, _ string, out interface{}) error {
		if fail {
			return errDown
		}
		switch v := out.(type) {
		case *model.GroStatsResult:
			*v = model.GroStatsResult{
				Meta:        meta(),
				MasterDatas: []model.MasterData{{Status: "ok"}},
				Prices:      []model.Price{{Pwrd: "1", Gvt: "2", Gro: "0.5"}},
				Factors:     []model.Factor{{Pwrd: "1"}},
				CoreDatas:   []model.CoreData{{TotalSupplyPwrdBased: "200", TotalSupplyGvt: "50"}},
			}
		case *model.PersonalStatsResult:
			*v = model.PersonalStatsResult{
				Meta:        meta(),
				MasterDatas: []model.MasterData{{Status: "ok"}},
				Prices:      []model.Price{{Gvt: "2"}},
				Factors:     []model.Factor{{Pwrd: "1"}},
				Users: []model.SubgraphUser{{
					Totals: &model.UserTotals{NetBasedAmountPwrd: "10", NetAmountGvt: "5", NetValueTotal: "15"},
				}},
			}
		default:
			return errors.New("unexpected result type")
		}
		return nil
	})
}

func avaxQuerier(fail bool) Querier {
	return querierFunc(func(_ context.Context, _ string, out interface{}) error {
		if fail {
			return errDown
		}
		res, ok := out.(*model.AvaxPersonalStatsResult)
		if !ok {
			return errors.New("unexpected result type")
		}
		*res = model.AvaxPersonalStatsResult{
			Meta: meta(),
			Users: []model.AvaxUser{{
				Totals: []model.AvaxVaultTotal{{VaultName: "groDAI.e_vault", NetValue: "10", Balance: "11"}},
			}},
		}
		return nil
	})
}

func newService(eth, avax Querier, store *proof.Store, opts Options) *Service {
	clock := func() time.Time { return time.Unix(blockTs, 0) }
	resolver := airdrop.NewResolver(staticSource{store: store}, nil).WithClock(clock)
	protocol := stats.NewProtocolAssembler(aggregate.NewApyEstimator(aggregate.DefaultPwrdYieldShare), nil).WithClock(clock)
	personal := stats.NewPersonalAssembler(resolver, nil).WithClock(clock)
	return New(eth, avax, protocol, personal, opts).WithClock(clock)
}

func loadedStore() *proof.Store {
	return proof.NewStore(nil, model.VestingAirdropDefinition{Name: "vest", Token: "GRO"})
}

func TestProtocolStats(t *testing.T) {
	doc := newService(ethQuerier(false), nil, loadedStore(), Options{}).ProtocolStats(context.Background())
	assert.Equal(t, model.StatusOK, doc.Status)
	assert.Equal(t, "300", doc.Tvl.Total)
}

func TestProtocolStatsUpstreamFailure(t *testing.T) {
	rec := &recorder{}
	doc := newService(ethQuerier(true), nil, loadedStore(), Options{Observer: rec}).ProtocolStats(context.Background())

	assert.Equal(t, model.StatusError, doc.Status)
	assert.Equal(t, model.NA, doc.Tvl.Total)
	assert.Equal(t, "1700000000", doc.CurrentTimestamp)
	assert.Equal(t, []string{model.NetworkMainnet}, rec.upstream)
}

func TestPersonalStatsStatusCombination(t *testing.T) {
	cases := []struct {
		name     string
		ethFail  bool
		avaxFail bool
		want     model.Status
	}{
		{"both ok", false, false, model.StatusOK},
		{"ethereum down", true, false, model.StatusWarning},
		{"avalanche down", false, true, model.StatusWarning},
		{"both down", true, true, model.StatusError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newService(ethQuerier(tc.ethFail), avaxQuerier(tc.avaxFail), loadedStore(), Options{})
			pos := svc.PersonalStats(context.Background(), addr)

			assert.Equal(t, tc.want, pos.Status)
			assert.Equal(t, "0xabcdef0123456789abcdef0123456789abcdef01", pos.Address)
			if tc.ethFail {
				assert.Equal(t, model.StatusError, pos.Ethereum.Status)
				assert.Equal(t, model.NA, pos.Ethereum.CurrentBalance.Total)
			} else {
				assert.Equal(t, "20", pos.Ethereum.CurrentBalance.Total)
				assert.Equal(t, "5", pos.Ethereum.NetReturns.Total)
			}
			if tc.avaxFail {
				assert.Equal(t, model.NA, pos.Avalanche.CurrentBalance["total"])
			} else {
				assert.Equal(t, "1", pos.Avalanche.NetReturns["groDAI.e_vault"])
			}
		})
	}
}

func TestPersonalStatsWithoutAvalancheClient(t *testing.T) {
	pos := newService(ethQuerier(false), nil, loadedStore(), Options{}).PersonalStats(context.Background(), addr)
	assert.Equal(t, model.StatusWarning, pos.Status)
	assert.Equal(t, model.StatusError, pos.Avalanche.Status)
}

func TestPersonalStatsReportsUnavailableSections(t *testing.T) {
	rec := &recorder{}
	svc := newService(ethQuerier(false), avaxQuerier(false), nil, Options{Observer: rec})

	pos := svc.PersonalStats(context.Background(), addr)
	assert.Equal(t, model.StatusWarning, pos.Status)
	assert.ElementsMatch(t, []string{model.SectionAirdrops, model.SectionVestingAirdrop}, rec.unavailable)
	assert.Equal(t, "20", pos.Ethereum.CurrentBalance.Total)
}

func TestSnapshotApy(t *testing.T) {
	sink := storage.NewJsonlStorage(filepath.Join(t.TempDir(), "apy.jsonl"))
	svc := newService(ethQuerier(false), nil, loadedStore(), Options{Snapshots: sink})

	snap, err := svc.SnapshotApy(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(blockTs), snap.Timestamp)
	assert.Equal(t, "300", snap.TvlTotal)

	stored, err := sink.ListApySnapshots(context.Background(), model.NetworkMainnet, 0)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, snap.TvlTotal, stored[0].TvlTotal)
}

func TestSnapshotApyUpstreamFailure(t *testing.T) {
	sink := storage.NewJsonlStorage(filepath.Join(t.TempDir(), "apy.jsonl"))
	svc := newService(ethQuerier(true), nil, loadedStore(), Options{Snapshots: sink})

	_, err := svc.SnapshotApy(context.Background())
	require.ErrorIs(t, err, ErrNoSnapshot)
	assert.ErrorIs(t, err, errDown)

	stored, err := sink.ListApySnapshots(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCombineStatus(t *testing.T) {
	assert.Equal(t, model.StatusWarning, combineStatus(model.StatusWarning, model.StatusOK))
	assert.Equal(t, model.StatusOK, combineStatus(model.StatusOK))
	assert.Equal(t, model.StatusError, combineStatus(model.StatusError, model.StatusError))
}

var _ Querier = (*subgraph.Client)(nil)
