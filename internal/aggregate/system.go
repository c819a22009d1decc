package aggregate

import (
	"time"

	"github.com/shopspring/decimal"

	"groStats/internal/amount"
	"groStats/internal/model"
)

// SystemSummary is the system section plus the values other components derive from.
type SystemSummary struct {
	System    model.System
	Last3dApy decimal.Decimal
	Total     decimal.Decimal
}

type strategyTotals struct {
	model.Strategy
	amount    decimal.Decimal
	last3dApy decimal.Decimal
}

type vaultTotals struct {
	model.Vault
	amount    decimal.Decimal
	last3dApy decimal.Decimal
}

// ComputeSystem rolls strategy debt, recent harvests and locked profit into
// vault and system totals. The system last3d_apy is the trailing yield signal
// used by the APY estimator.
func ComputeSystem(gvaults []model.GVault, now time.Time) SystemSummary {
	now = now.UTC()
	vaults := make([]vaultTotals, 0, len(gvaults))
	systemTotal := decimal.Zero
	weightedApy := decimal.Zero

	for _, gv := range gvaults {
		vt := computeVault(gv, now)
		systemTotal = systemTotal.Add(vt.amount)
		weightedApy = weightedApy.Add(vt.amount.Mul(vt.last3dApy))
		vaults = append(vaults, vt)
	}

	last3d := amount.Div(weightedApy, systemTotal)

	out := make([]model.Vault, 0, len(vaults))
	for _, vt := range vaults {
		vault := vt.Vault
		vault.Share = amount.Str(amount.Div(vt.amount, systemTotal))
		out = append(out, vault)
	}

	totalShare := decimal.Zero
	if systemTotal.IsPositive() {
		totalShare = one
	}

	return SystemSummary{
		System: model.System{
			TotalShare:  amount.Str(totalShare),
			TotalAmount: amount.Str(systemTotal),
			Last3dApy:   amount.Str(last3d),
			Lifeguard:   EmptyLifeguard("0"),
			Vaults:      out,
		},
		Last3dApy: last3d,
		Total:     systemTotal,
	}
}

func computeVault(gv model.GVault, now time.Time) vaultTotals {
	vt := vaultTotals{
		Vault: model.Vault{
			Name:        gv.ID,
			DisplayName: gv.ID,
			Address:     gv.ID,
		},
	}

	strategies := make([]strategyTotals, 0, len(gv.Strategies))
	weightedApy := decimal.Zero
	for _, gs := range gv.Strategies {
		st := computeStrategy(gs, now)
		vt.amount = vt.amount.Add(st.amount)
		weightedApy = weightedApy.Add(st.amount.Mul(st.last3dApy))
		strategies = append(strategies, st)
		if gs.VaultName != "" {
			vt.Name = gs.VaultName
		}
		if gs.VaultDisplayName != "" {
			vt.DisplayName = gs.VaultDisplayName
		}
	}
	vt.last3dApy = amount.Div(weightedApy, vt.amount)

	vt.Strategies = make([]model.Strategy, 0, len(strategies))
	for _, st := range strategies {
		strat := st.Strategy
		strat.Share = amount.Str(amount.Div(st.amount, vt.amount))
		vt.Strategies = append(vt.Strategies, strat)
	}

	vt.Amount = amount.Str(vt.amount)
	vt.Last3dApy = amount.Str(vt.last3dApy)
	vt.LockedProfit = amount.Str(remainingLockedProfit(gv, now))
	return vt
}

func computeStrategy(gs model.GStrategy, now time.Time) strategyTotals {
	debt := amount.Parse(gs.StrategyDebt.String())
	netGain15d := decimal.Zero
	debtChange15d := decimal.Zero
	netGain3d := decimal.Zero

	for _, h := range gs.Harvests {
		ts, ok := parseUnix(h.BlockTimestamp)
		if !ok || ts.After(now) {
			continue
		}
		age := now.Sub(ts)
		if age > harvestWindow {
			continue
		}
		net := amount.Parse(h.Gain.String()).Sub(amount.Parse(h.Loss.String()))
		netGain15d = netGain15d.Add(net)
		debtChange15d = debtChange15d.Add(amount.Parse(h.DebtAdded.String())).Sub(amount.Parse(h.DebtPaid.String()))
		if age <= apyWindow {
			netGain3d = netGain3d.Add(net)
		}
	}

	apy := amount.Div(netGain3d, debt).Mul(apyScale)

	return strategyTotals{
		Strategy: model.Strategy{
			Name:          gs.StratName,
			DisplayName:   gs.StratDisplayName,
			Address:       gs.ID,
			Amount:        amount.Str(debt),
			Last3dApy:     amount.Str(apy),
			NetGain15d:    amount.Str(netGain15d),
			DebtChange15d: amount.Str(debtChange15d),
			Metacoin:      gs.Metacoin,
			Protocol:      gs.Protocol,
		},
		amount:    debt,
		last3dApy: apy,
	}
}

// Locked profit is released linearly at release_factor per second since the
// last report.
func remainingLockedProfit(gv model.GVault, now time.Time) decimal.Decimal {
	locked := amount.Parse(gv.LockedProfit.String())
	if !locked.IsPositive() {
		return decimal.Zero
	}
	ts, ok := parseUnix(gv.LockedProfitTimestamp)
	if !ok {
		return locked
	}
	elapsed := decimal.NewFromFloat(now.Sub(ts).Seconds())
	if elapsed.IsNegative() {
		elapsed = decimal.Zero
	}
	released := clamp01(elapsed.Mul(amount.Parse(gv.ReleaseFactor.String())))
	return locked.Mul(one.Sub(released))
}

// EmptyLifeguard is the lifeguard section filled with value.
func EmptyLifeguard(value string) model.Lifeguard {
	stablecoins := make([]model.LifeguardStablecoin, 0, len(baseStablecoins))
	for _, coin := range baseStablecoins {
		stablecoins = append(stablecoins, model.LifeguardStablecoin{
			Name:        coin,
			DisplayName: coin,
			Amount:      value,
		})
	}
	return model.Lifeguard{
		Stablecoins: stablecoins,
		Name:        model.NA,
		DisplayName: model.NA,
		Amount:      value,
		Share:       value,
		Last3dApy:   value,
	}
}

// EmptySystem is the system section when vault data is unavailable.
func EmptySystem(value string) model.System {
	return model.System{
		TotalShare:  value,
		TotalAmount: value,
		Last3dApy:   value,
		Lifeguard:   EmptyLifeguard(value),
		Vaults:      []model.Vault{},
	}
}
