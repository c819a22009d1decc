package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"groStats/internal/amount"
	"groStats/internal/model"
)

// PoolNames are the staking pool keys, indexed by pool id.
var PoolNames = []string{
	"single_staking_100_gro_0",
	"uniswap_v2_5050_gro_gvt_1",
	"uniswap_v2_5050_gro_usdc_2",
	"single_staking_100_gvt_3",
	"curve_meta_pwrd_3crv_4",
	"balancer_v2_8020_gro_weth_5",
	"single_staking_100_pwrd_6",
}

// PoolName returns the key of a pool id, or "" when unknown.
func PoolName(pid int) string {
	if pid < 0 || pid >= len(PoolNames) {
		return ""
	}
	return PoolNames[pid]
}

// PoolPrice returns the USD price of one LP token of the given pool.
func PoolPrice(pid int, price model.Price) (decimal.Decimal, bool) {
	var raw model.FlexString
	switch pid {
	case 0:
		raw = price.Gro
	case 1:
		raw = price.UniswapGvtGro
	case 2:
		raw = price.UniswapGroUsdc
	case 3:
		raw = price.Gvt
	case 4:
		raw = price.CurvePwrd3crv
	case 5:
		raw = price.BalancerGroWeth
	case 6:
		raw = price.Pwrd
	default:
		return decimal.Zero, false
	}
	return amount.ParseStrict(raw.String())
}

// ComputePools joins staker rows with LP prices, ordered by pool id.
func ComputePools(stakers []model.StakerData, price model.Price) []model.PoolStat {
	rows := append([]model.StakerData(nil), stakers...)
	sort.SliceStable(rows, func(i, j int) bool {
		a, aok := parseID(rows[i].ID)
		b, bok := parseID(rows[j].ID)
		switch {
		case aok && bok:
			return a < b
		case aok != bok:
			return aok
		default:
			return rows[i].ID < rows[j].ID
		}
	})

	pools := make([]model.PoolStat, 0, len(rows))
	for _, row := range rows {
		pid, _ := parseID(row.ID)
		name := PoolName(pid)
		if name == "" {
			name = row.ID.String()
		}

		stat := model.PoolStat{
			PID:            row.ID.String(),
			Name:           name,
			LpUSD:          model.NA,
			LpSupply:       amount.Str(amount.Parse(row.LpSupply.String())),
			Tvl:            model.NA,
			AllocPoint:     row.AllocPoint.String(),
			PoolShare:      amount.Str(amount.Parse(row.PoolShare.String())),
			AccGroPerShare: amount.Str(amount.Parse(row.AccGroPerShare.String())),
		}
		if lpUSD, ok := PoolPrice(pid, price); ok {
			stat.LpUSD = amount.Str(lpUSD)
			stat.Tvl = amount.Str(amount.Parse(row.LpSupply.String()).Mul(lpUSD))
		}
		pools = append(pools, stat)
	}
	return pools
}
