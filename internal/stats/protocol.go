package stats

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"groStats/internal/aggregate"
	"groStats/internal/amount"
	"groStats/internal/model"
)

// ErrMissingField marks a subgraph result without a required collection.
var ErrMissingField = errors.New("missing subgraph field")

// ProtocolAssembler builds the protocol stats document from one subgraph result.
type ProtocolAssembler struct {
	estimator aggregate.ApyEstimator
	logger    *zap.Logger
	now       func() time.Time
}

func NewProtocolAssembler(estimator aggregate.ApyEstimator, logger *zap.Logger) *ProtocolAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProtocolAssembler{estimator: estimator, logger: logger, now: time.Now}
}

// WithClock overrides the time source used when the result has no block timestamp.
func (a *ProtocolAssembler) WithClock(now func() time.Time) *ProtocolAssembler {
	a.now = now
	return a
}

// Assemble returns ErrMissingField when a required collection is empty; the
// caller then serves EmptyProtocolStats. A failure inside one section only
// degrades that section.
func (a *ProtocolAssembler) Assemble(res model.GroStatsResult) (model.ProtocolStats, error) {
	if err := requireCollections(
		collection{"masterDatas", len(res.MasterDatas)},
		collection{"prices", len(res.Prices)},
		collection{"factors", len(res.Factors)},
		collection{"coreDatas", len(res.CoreDatas)},
	); err != nil {
		return model.ProtocolStats{}, err
	}

	now := blockTime(res.Meta, a.now)
	master := res.MasterDatas[0]
	price := res.Prices[0]

	doc := EmptyProtocolStats(strconv.FormatInt(now.Unix(), 10), statusOf(master.Status))
	if launch := master.LaunchTimestamp.String(); launch != "" {
		doc.LaunchTimestamp = launch
	}
	doc.TokenPriceUSD = model.TokenPriceUSD{
		Pwrd: amount.Str(amount.Parse(price.Pwrd.String())),
		Gvt:  amount.Str(amount.Parse(price.Gvt.String())),
		Gro:  amount.Str(amount.Parse(price.Gro.String())),
	}

	tvl, tvlValues := aggregate.ComputeTvl(res.CoreDatas[0], res.Factors[0], price, master)
	doc.Tvl = tvl

	var summary aggregate.SystemSummary
	sections := newSectionGuard(a.logger)
	if sections.run(model.SectionSystem, func() {
		summary = aggregate.ComputeSystem(res.GVaults, now)
		doc.System = summary.System
		doc.Apy = a.estimator.Compute(tvlValues.Gvt, tvlValues.Pwrd, summary.Last3dApy)
	}) {
		sections.run(model.SectionExposure, func() {
			doc.Exposure = aggregate.ComputeExposure(summary.System.Vaults)
		})
	} else {
		sections.skip(model.SectionExposure)
	}
	sections.run(model.SectionPools, func() {
		doc.Pools = aggregate.ComputePools(res.StakerDatas, price)
	})

	doc.UnavailableSections = sections.unavailable
	if len(sections.unavailable) > 0 && doc.Status == model.StatusOK {
		doc.Status = model.StatusWarning
	}
	if res.Meta.HasIndexingErrors && doc.Status == model.StatusOK {
		doc.Status = model.StatusWarning
	}
	return doc, nil
}

type collection struct {
	name string
	size int
}

func requireCollections(cols ...collection) error {
	for _, c := range cols {
		if c.size == 0 {
			return fmt.Errorf("%w: %s", ErrMissingField, c.name)
		}
	}
	return nil
}

func blockTime(meta model.SubgraphMeta, now func() time.Time) time.Time {
	if meta.Block.Timestamp > 0 {
		return time.Unix(int64(meta.Block.Timestamp), 0).UTC()
	}
	return now().UTC()
}

func statusOf(raw string) model.Status {
	switch model.Status(raw) {
	case model.StatusWarning, model.StatusError:
		return model.Status(raw)
	default:
		return model.StatusOK
	}
}

// sectionGuard runs document sections and records the ones that fail.
type sectionGuard struct {
	logger      *zap.Logger
	unavailable []string
}

func newSectionGuard(logger *zap.Logger) *sectionGuard {
	return &sectionGuard{logger: logger}
}

func (g *sectionGuard) run(section string, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			g.logger.Error("section excluded",
				zap.String("section", section),
				zap.Any("panic", rec),
			)
			g.skip(section)
			ok = false
		}
	}()
	fn()
	return true
}

func (g *sectionGuard) skip(section string) {
	for _, s := range g.unavailable {
		if s == section {
			return
		}
	}
	g.unavailable = append(g.unavailable, section)
}
