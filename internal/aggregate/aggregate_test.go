package aggregate

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groStats/internal/model"
)

func vaultWith(strategies ...model.Strategy) model.Vault {
	return model.Vault{Name: "vault", Strategies: strategies}
}

func strat(amount, metacoin, protocol string) model.Strategy {
	return model.Strategy{Amount: amount, Metacoin: metacoin, Protocol: protocol}
}

func TestExposureZeroTotal(t *testing.T) {
	exposure := ComputeExposure([]model.Vault{
		vaultWith(strat("0", "dai", "convex"), strat("0", "usdc", "aave")),
		vaultWith(),
	})

	require.Len(t, exposure.Stablecoins, 5)
	require.Len(t, exposure.Protocols, 3)
	for _, item := range exposure.Stablecoins[3:] {
		assert.Equal(t, "0", item.Concentration, item.Name)
	}
	for _, item := range exposure.Protocols[1:] {
		assert.Equal(t, "0", item.Concentration, item.Name)
	}
}

func TestExposureBaseEntries(t *testing.T) {
	exposure := ComputeExposure(nil)

	require.Len(t, exposure.Stablecoins, 3)
	for i, coin := range []string{"DAI", "USDC", "USDT"} {
		assert.Equal(t, coin, exposure.Stablecoins[i].Name)
		assert.Equal(t, "1", exposure.Stablecoins[i].Concentration)
	}
	require.Len(t, exposure.Protocols, 1)
	assert.Equal(t, "Curve", exposure.Protocols[0].Name)
	assert.Equal(t, "1", exposure.Protocols[0].Concentration)
}

func TestExposureGroupsAndSumsToOne(t *testing.T) {
	exposure := ComputeExposure([]model.Vault{
		vaultWith(strat("100", "frax", "convex"), strat("50", "lusd", "convex")),
		vaultWith(strat("50", "Frax", "aave"), strat("100.5", "mim", "Harvest")),
	})

	protocols := map[string]string{}
	sum := decimal.Zero
	for _, item := range exposure.Protocols[1:] {
		protocols[item.Name] = item.Concentration
		sum = sum.Add(decimal.RequireFromString(item.Concentration))
	}
	assert.Equal(t, []string{"AAVE", "CONVEX", "HARVEST"}, []string{exposure.Protocols[1].Name, exposure.Protocols[2].Name, exposure.Protocols[3].Name})
	assert.True(t, sum.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.RequireFromString("0.0000001")), sum.String())

	coins := map[string]string{}
	for _, item := range exposure.Stablecoins[3:] {
		coins[item.Name] = item.Concentration
	}
	assert.Contains(t, coins, "FRAX")
	assert.Contains(t, coins, "LUSD")
	assert.Contains(t, coins, "MIM")
	assert.Len(t, coins, 3)
}

func TestExposureProtocolSumProperty(t *testing.T) {
	for n := 1; n <= 20; n++ {
		var strategies []model.Strategy
		for i := 0; i < n; i++ {
			strategies = append(strategies, strat(fmt.Sprintf("%d.%d", i*7+1, i), "dai", fmt.Sprintf("p%d", i%5)))
		}
		exposure := ComputeExposure([]model.Vault{vaultWith(strategies...)})
		sum := decimal.Zero
		for _, item := range exposure.Protocols[1:] {
			sum = sum.Add(decimal.RequireFromString(item.Concentration))
		}
		assert.True(t, sum.Sub(decimal.NewFromInt(1)).Abs().LessThan(decimal.RequireFromString("0.0000001")), "n=%d sum=%s", n, sum)
	}
}

func TestComputeSystem(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	ts := func(ago time.Duration) model.FlexString {
		return model.FlexString(fmt.Sprintf("%d", now.Add(-ago).Unix()))
	}

	summary := ComputeSystem([]model.GVault{
		{
			ID:                    "0xvault",
			ReleaseFactor:         "0.001",
			LockedProfit:          "100",
			LockedProfitTimestamp: ts(100 * time.Second),
			Strategies: []model.GStrategy{{
				ID:               "0xstrat",
				Metacoin:         "frax",
				Protocol:         "convex",
				StratName:        "convex_frax",
				StratDisplayName: "Convex FRAX",
				VaultName:        "gro_3crv_vault",
				VaultDisplayName: "3CRV vault",
				StrategyDebt:     "1000",
				Harvests: []model.Harvest{
					{BlockTimestamp: ts(24 * time.Hour), Gain: "10", Loss: "0", DebtAdded: "100", DebtPaid: "0"},
					{BlockTimestamp: ts(10 * day), Gain: "5", Loss: "1", DebtAdded: "0", DebtPaid: "50"},
					{BlockTimestamp: ts(20 * day), Gain: "100", Loss: "0"},
				},
			}},
		},
		{ID: "0xempty"},
	}, now)

	system := summary.System
	assert.Equal(t, "1000", system.TotalAmount)
	assert.Equal(t, "1", system.TotalShare)
	assert.Equal(t, "1.21666667", system.Last3dApy)
	assert.Equal(t, "1.21666667", summary.Last3dApy.Round(8).String())

	require.Len(t, system.Vaults, 2)
	vault := system.Vaults[0]
	assert.Equal(t, "gro_3crv_vault", vault.Name)
	assert.Equal(t, "3CRV vault", vault.DisplayName)
	assert.Equal(t, "1000", vault.Amount)
	assert.Equal(t, "1", vault.Share)
	assert.Equal(t, "90", vault.LockedProfit)

	require.Len(t, vault.Strategies, 1)
	st := vault.Strategies[0]
	assert.Equal(t, "14", st.NetGain15d)
	assert.Equal(t, "50", st.DebtChange15d)
	assert.Equal(t, "1", st.Share)

	empty := system.Vaults[1]
	assert.Equal(t, "0xempty", empty.Name)
	assert.Equal(t, "0", empty.Amount)
	assert.Equal(t, "0", empty.Share)
	assert.Empty(t, empty.Strategies)
}

func TestComputeSystemNoVaults(t *testing.T) {
	summary := ComputeSystem(nil, time.Now())
	assert.Equal(t, "0", summary.System.TotalAmount)
	assert.Equal(t, "0", summary.System.TotalShare)
	assert.True(t, summary.Last3dApy.IsZero())
	assert.NotNil(t, summary.System.Vaults)
}

func TestComputePoolsOrdersAndJoinsPrices(t *testing.T) {
	pools := ComputePools([]model.StakerData{
		{ID: "10", LpSupply: "1"},
		{ID: "3", LpSupply: "10", AllocPoint: "30", PoolShare: "0.3", AccGroPerShare: "0.5"},
		{ID: "0", LpSupply: "100", AllocPoint: "10", PoolShare: "0.1"},
	}, model.Price{Gro: "2", Gvt: "1.5"})

	require.Len(t, pools, 3)
	assert.Equal(t, "0", pools[0].PID)
	assert.Equal(t, "single_staking_100_gro_0", pools[0].Name)
	assert.Equal(t, "2", pools[0].LpUSD)
	assert.Equal(t, "200", pools[0].Tvl)

	assert.Equal(t, "3", pools[1].PID)
	assert.Equal(t, "single_staking_100_gvt_3", pools[1].Name)
	assert.Equal(t, "15", pools[1].Tvl)
	assert.Equal(t, "0.5", pools[1].AccGroPerShare)

	assert.Equal(t, "10", pools[2].PID)
	assert.Equal(t, model.NA, pools[2].LpUSD)
	assert.Equal(t, model.NA, pools[2].Tvl)
}

func TestApyEstimator(t *testing.T) {
	est := NewApyEstimator(DefaultPwrdYieldShare)

	apy := est.Compute(decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.RequireFromString("0.1"))
	assert.Equal(t, "0.02", apy.Current.Pwrd)
	assert.Equal(t, "0.26", apy.Current.Gvt)
	assert.Equal(t, "0", apy.HodlBonus)
	assert.Equal(t, "0", apy.Last7d.Gvt)

	again := est.Compute(decimal.NewFromInt(100), decimal.NewFromInt(200), decimal.RequireFromString("0.1"))
	assert.Equal(t, apy, again)

	noGvt := est.Compute(decimal.Zero, decimal.NewFromInt(200), decimal.RequireFromString("0.1"))
	assert.Equal(t, "0.1", noGvt.Current.Gvt)
}

func TestApyEstimatorRejectsInvalidShare(t *testing.T) {
	est := NewApyEstimator(decimal.NewFromInt(2))
	assert.True(t, est.PwrdYieldShare.Equal(DefaultPwrdYieldShare))
}

func TestComputeTvl(t *testing.T) {
	tvl, values := ComputeTvl(
		model.CoreData{TotalSupplyPwrdBased: "200", TotalSupplyGvt: "50"},
		model.Factor{Pwrd: "1.0"},
		model.Price{Gvt: "2.0"},
		model.MasterData{UtilRatioLimit: "0.95"},
	)

	assert.Equal(t, "200", tvl.Pwrd)
	assert.Equal(t, "100", tvl.Gvt)
	assert.Equal(t, "300", tvl.Total)
	assert.Equal(t, "2", tvl.UtilRatio)
	assert.Equal(t, "0.95", tvl.UtilRatioLimitPD)
	assert.True(t, values.Total.Equal(decimal.NewFromInt(300)))
}

func TestComputeTvlZeroGvt(t *testing.T) {
	tvl, _ := ComputeTvl(
		model.CoreData{TotalSupplyPwrdBased: "200", TotalSupplyGvt: "0"},
		model.Factor{Pwrd: "0"},
		model.Price{Gvt: "2.0"},
		model.MasterData{},
	)
	assert.Equal(t, "0", tvl.Pwrd)
	assert.Equal(t, "0", tvl.UtilRatio)
}
