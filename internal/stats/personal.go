package stats

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"groStats/internal/aggregate"
	"groStats/internal/airdrop"
	"groStats/internal/amount"
	"groStats/internal/model"
)

const vestingPeriod = 365 * 24 * time.Hour

// Transfer types reported by the subgraph.
const (
	transferCoreDeposit      = "core_deposit"
	transferCoreWithdrawal   = "core_withdrawal"
	transferIn               = "transfer_in"
	transferOut              = "transfer_out"
	transferStakerDeposit    = "staker_deposit"
	transferStakerWithdrawal = "staker_withdrawal"
)

// PersonalAssembler builds per-address documents for both networks.
type PersonalAssembler struct {
	resolver *airdrop.Resolver
	logger   *zap.Logger
	now      func() time.Time
}

func NewPersonalAssembler(resolver *airdrop.Resolver, logger *zap.Logger) *PersonalAssembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PersonalAssembler{resolver: resolver, logger: logger, now: time.Now}
}

// WithClock overrides the time source used when the result has no block timestamp.
func (a *PersonalAssembler) WithClock(now func() time.Time) *PersonalAssembler {
	a.now = now
	return a
}

// Airdrops resolves the proof-backed sections, which do not depend on the subgraph.
func (a *PersonalAssembler) Airdrops(address string, claims []model.AirdropClaim, events *model.UserVestingAirdropEvents) ([]model.UserAirdrop, model.UserVestingAirdrop, []string) {
	var unavailable []string

	airdrops := airdrop.ApplyClaims(a.resolver.Resolve(address), claims)
	if !a.resolver.Available(model.SectionAirdrops) {
		unavailable = append(unavailable, model.SectionAirdrops)
	}

	vesting := model.EmptyUserVestingAirdrop()
	if a.resolver.Available(model.SectionVestingAirdrop) {
		var source airdrop.VestingClaimSource
		if events != nil {
			source = airdrop.SubgraphVestingClaims{Address: address, Events: events}
		}
		vesting = a.resolver.ResolveVesting(address, source)
	} else {
		unavailable = append(unavailable, model.SectionVestingAirdrop)
	}
	return airdrops, vesting, unavailable
}

// EmptyEthereum is the Ethereum document for an address the subgraph could
// not serve, with the proof-backed sections still resolved.
func (a *PersonalAssembler) EmptyEthereum(address string, status model.Status) model.PersonalStatsEthereum {
	airdrops, vesting, unavailable := a.Airdrops(address, nil, nil)
	doc := EmptyEthereumUser(strconv.FormatInt(a.now().Unix(), 10), address, status, airdrops, vesting)
	doc.UnavailableSections = unavailable
	return doc
}

// AssembleEthereum returns ErrMissingField when the result lacks protocol
// data. An address without a user entity yields an ok empty document.
func (a *PersonalAssembler) AssembleEthereum(address string, res model.PersonalStatsResult) (model.PersonalStatsEthereum, error) {
	if err := requireCollections(
		collection{"masterDatas", len(res.MasterDatas)},
		collection{"prices", len(res.Prices)},
		collection{"factors", len(res.Factors)},
	); err != nil {
		return model.PersonalStatsEthereum{}, err
	}

	address = strings.ToLower(address)
	now := blockTime(res.Meta, a.now)
	master := res.MasterDatas[0]
	price := res.Prices[0]
	status := statusOf(master.Status)
	if res.Meta.HasIndexingErrors && status == model.StatusOK {
		status = model.StatusWarning
	}

	var user model.SubgraphUser
	if len(res.Users) > 0 {
		user = res.Users[0]
	}
	airdrops, vesting, unavailable := a.Airdrops(address, user.AirdropClaims, user.VestingAirdrop)

	doc := EmptyEthereumUser(strconv.FormatInt(now.Unix(), 10), address, status, airdrops, vesting)
	doc.Prices = personalPrices(price)

	sections := newSectionGuard(a.logger)
	sections.unavailable = unavailable
	if len(res.Users) == 0 {
		sections.run(model.SectionPools, func() {
			doc.Pools = a.pools(nil, res.StakerDatas, price, master)
		})
	} else {
		doc.Transaction = splitTransfers(user.Transfers, user.Approvals, true, a.logger)
		if user.Totals != nil {
			ethereumTotals(&doc, *user.Totals, res.Factors[0], price)
		}
		sections.run(model.SectionVestBonus, func() {
			doc.VestBonus = vestBonus(user.VestingBonus, master, now)
		})
		sections.run(model.SectionPools, func() {
			doc.Pools = a.pools(user.PoolPositions(), res.StakerDatas, price, master)
		})
	}

	doc.UnavailableSections = sections.unavailable
	if len(doc.UnavailableSections) > 0 && doc.Status == model.StatusOK {
		doc.Status = model.StatusWarning
	}
	return doc, nil
}

func personalPrices(price model.Price) model.PersonalPrices {
	str := func(v model.FlexString) string { return amount.Str(amount.Parse(v.String())) }
	return model.PersonalPrices{
		Gvt:             str(price.Gvt),
		Gro:             str(price.Gro),
		BalancerGroWeth: str(price.BalancerGroWeth),
		UniswapGvtGro:   str(price.UniswapGvtGro),
		UniswapGroUsdc:  str(price.UniswapGroUsdc),
		CurvePwrd3crv:   str(price.CurvePwrd3crv),
	}
}

func ethereumTotals(doc *model.PersonalStatsEthereum, totals model.UserTotals, factor model.Factor, price model.Price) {
	parse := func(v model.FlexString) decimal.Decimal { return amount.Parse(v.String()) }

	netPwrd := parse(totals.NetValuePwrd)
	netGvt := parse(totals.NetValueGvt)
	netTotal := parse(totals.NetValueTotal)

	balancePwrd := amount.Div(parse(totals.NetBasedAmountPwrd), parse(factor.Pwrd))
	balanceGvt := parse(totals.NetAmountGvt).Mul(parse(price.Gvt))
	balanceTotal := balancePwrd.Add(balanceGvt)

	doc.AmountAdded = tokenTotalsOf(parse(totals.ValueAddedPwrd), parse(totals.ValueAddedGvt), parse(totals.ValueAddedTotal))
	doc.AmountRemoved = tokenTotalsOf(parse(totals.ValueRemovedPwrd), parse(totals.ValueRemovedGvt), parse(totals.ValueRemovedTotal))
	doc.NetAmountAdded = tokenTotalsOf(netPwrd, netGvt, netTotal)
	doc.CurrentBalance = tokenTotalsOf(balancePwrd, balanceGvt, balanceTotal)
	doc.NetReturns = tokenTotalsOf(balancePwrd.Sub(netPwrd), balanceGvt.Sub(netGvt), balanceTotal.Sub(netTotal))
}

func tokenTotalsOf(pwrd, gvt, total decimal.Decimal) model.TokenTotals {
	return model.TokenTotals{Pwrd: amount.Str(pwrd), Gvt: amount.Str(gvt), Total: amount.Str(total)}
}

func initUnlocked(master model.MasterData) decimal.Decimal {
	return clampFraction(amount.Parse(master.InitUnlockedPercent.String()))
}

func clampFraction(d decimal.Decimal) decimal.Decimal {
	one := decimal.NewFromInt(1)
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(one) {
		return one
	}
	return d
}

// vestBonus values the user's vesting position. The unlocked fraction grows
// linearly from init_unlocked_percent to one over a year from latest_start_time.
func vestBonus(bonus *model.UserVestingBonus, master model.MasterData, now time.Time) model.VestBonus {
	if bonus == nil {
		return model.VestBonus{
			LockedGro: "0",
			NetReward: "0",
			Rewards:   model.Rewards{ClaimNow: "0", VestAll: "0"},
		}
	}

	vesting := amount.Parse(bonus.VestingGro.String())
	reward := amount.Parse(bonus.NetReward.String())
	initial := initUnlocked(master)

	elapsed := decimal.Zero
	if start, err := strconv.ParseInt(strings.TrimSpace(bonus.LatestStartTime.String()), 10, 64); err == nil && start > 0 {
		seconds := now.Unix() - start
		elapsed = clampFraction(decimal.NewFromInt(seconds).Div(decimal.NewFromFloat(vestingPeriod.Seconds())))
	}
	unlocked := initial.Add(decimal.NewFromInt(1).Sub(initial).Mul(elapsed))

	return model.VestBonus{
		LockedGro: amount.Str(vesting),
		NetReward: amount.Str(reward),
		Rewards: model.Rewards{
			ClaimNow: amount.Str(vesting.Mul(unlocked)),
			VestAll:  amount.Str(vesting.Add(reward)),
		},
	}
}

// pools values every known staking pool for the user plus an "all" total.
// A pool with no staker row is NoPool; a pool the user never entered is EmptyPool.
func (a *PersonalAssembler) pools(positions [][]model.UserPool, stakers []model.StakerData, price model.Price, master model.MasterData) map[string]model.UserPoolStat {
	byID := make(map[int]model.StakerData, len(stakers))
	for _, s := range stakers {
		if pid, err := strconv.Atoi(strings.TrimSpace(s.ID.String())); err == nil {
			byID[pid] = s
		}
	}
	initial := initUnlocked(master)

	pools := make(map[string]model.UserPoolStat, len(aggregate.PoolNames)+1)
	var netReward, balance, coinBalance, claimNow, vestAll decimal.Decimal
	coinKnown := true
	for pid, name := range aggregate.PoolNames {
		staker, ok := byID[pid]
		if !ok {
			pools[name] = NoPool()
			continue
		}
		if pid >= len(positions) || len(positions[pid]) == 0 {
			pools[name] = EmptyPool()
			continue
		}

		position := positions[pid][0]
		bal := amount.Parse(position.Balance.String())
		reward := amount.Parse(position.NetReward.String())
		pending := bal.Mul(amount.Parse(staker.AccGroPerShare.String())).Sub(amount.Parse(position.RewardDebt.String()))
		if pending.IsNegative() {
			pending = decimal.Zero
		}
		stat := model.UserPoolStat{
			NetReward:   amount.Str(reward),
			Balance:     amount.Str(bal),
			CoinBalance: model.NA,
			Rewards: model.Rewards{
				ClaimNow: amount.Str(pending.Mul(initial)),
				VestAll:  amount.Str(pending),
			},
		}
		if lpUSD, ok := aggregate.PoolPrice(pid, price); ok {
			coin := bal.Mul(lpUSD)
			stat.CoinBalance = amount.Str(coin)
			coinBalance = coinBalance.Add(coin)
		} else {
			coinKnown = false
		}
		pools[name] = stat

		netReward = netReward.Add(reward)
		balance = balance.Add(bal)
		claimNow = claimNow.Add(pending.Mul(initial))
		vestAll = vestAll.Add(pending)
	}

	all := model.UserPoolStat{
		NetReward:   amount.Str(netReward),
		Balance:     amount.Str(balance),
		CoinBalance: amount.Str(coinBalance),
		Rewards:     model.Rewards{ClaimNow: amount.Str(claimNow), VestAll: amount.Str(vestAll)},
	}
	if !coinKnown {
		all.CoinBalance = model.NA
	}
	pools[PoolAll] = all
	return pools
}

func splitTransfers(transfers []model.UserTransfer, approvals []model.UserApproval, withStaker bool, logger *zap.Logger) model.Transactions {
	tx := model.EmptyTransactions(withStaker)
	for _, t := range transfers {
		entry := model.Transaction{
			Token:       t.Token,
			Hash:        t.Hash,
			Timestamp:   t.Timestamp.String(),
			UsdAmount:   amount.Str(amount.Parse(t.UsdAmount.String())),
			CoinAmount:  amount.Str(amount.Parse(t.CoinAmount.String())),
			BlockNumber: t.BlockNumber.String(),
		}
		switch t.Type {
		case transferCoreDeposit:
			tx.Deposits = append(tx.Deposits, entry)
		case transferCoreWithdrawal:
			tx.Withdrawals = append(tx.Withdrawals, entry)
		case transferIn:
			tx.TransfersIn = append(tx.TransfersIn, entry)
		case transferOut:
			tx.TransfersOut = append(tx.TransfersOut, entry)
		case transferStakerDeposit:
			if withStaker {
				tx.StakerDeposits = append(tx.StakerDeposits, entry)
			}
		case transferStakerWithdrawal:
			if withStaker {
				tx.StakerWithdrawals = append(tx.StakerWithdrawals, entry)
			}
		default:
			logger.Debug("unknown transfer type", zap.String("type", t.Type), zap.String("hash", t.Hash))
		}
	}
	for _, ap := range approvals {
		tx.Approvals = append(tx.Approvals, model.Transaction{
			Token:       ap.Token,
			Hash:        ap.Hash,
			Timestamp:   ap.Timestamp.String(),
			UsdAmount:   amount.Str(amount.Parse(ap.UsdAmount.String())),
			CoinAmount:  amount.Str(amount.Parse(ap.CoinAmount.String())),
			BlockNumber: ap.BlockNumber.String(),
			Spender:     ap.Spender,
		})
	}
	return tx
}

// AssembleAvalanche builds the per-vault Avalanche document. Deposit
// allowances are not tracked, so gro_gate stays N/A.
func (a *PersonalAssembler) AssembleAvalanche(address string, res model.AvaxPersonalStatsResult) (model.PersonalStatsAvalanche, error) {
	status := model.StatusOK
	if res.Meta.HasIndexingErrors {
		status = model.StatusWarning
	}
	doc := EmptyAvalancheUser(status)
	doc.Status = status
	if len(res.Users) == 0 {
		return doc, nil
	}
	user := res.Users[0]

	known := make(map[string]bool, len(AvaxVaults))
	for _, v := range AvaxVaults {
		known[v] = true
	}
	var added, removed, net, balance decimal.Decimal
	for _, total := range user.Totals {
		if !known[total.VaultName] {
			a.logger.Debug("unknown avalanche vault",
				zap.String("vault", total.VaultName),
				zap.String("address", address),
			)
			continue
		}
		va := amount.Parse(total.ValueAdded.String())
		vr := amount.Parse(total.ValueRemoved.String())
		vn := amount.Parse(total.NetValue.String())
		vb := amount.Parse(total.Balance.String())

		doc.AmountAdded[total.VaultName] = amount.Str(va)
		doc.AmountRemoved[total.VaultName] = amount.Str(vr)
		doc.NetAmountAdded[total.VaultName] = amount.Str(vn)
		doc.CurrentBalance[total.VaultName] = amount.Str(vb)
		doc.NetReturns[total.VaultName] = amount.Str(vb.Sub(vn))

		added = added.Add(va)
		removed = removed.Add(vr)
		net = net.Add(vn)
		balance = balance.Add(vb)
	}
	doc.AmountAdded["total"] = amount.Str(added)
	doc.AmountRemoved["total"] = amount.Str(removed)
	doc.NetAmountAdded["total"] = amount.Str(net)
	doc.CurrentBalance["total"] = amount.Str(balance)
	doc.NetReturns["total"] = amount.Str(balance.Sub(net))

	doc.Transaction = splitTransfers(user.Transfers, user.Approvals, false, a.logger)
	return doc, nil
}
