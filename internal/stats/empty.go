package stats

import (
	"groStats/internal/aggregate"
	"groStats/internal/model"
)

// AvaxVaults are the Avalanche vault keys reported in personal stats.
var AvaxVaults = []string{
	"groDAI.e_vault",
	"groUSDC.e_vault",
	"groUSDT.e_vault",
	"groDAI.e_vault_v1_7",
	"groUSDC.e_vault_v1_7",
	"groUSDT.e_vault_v1_7",
}

// PoolAll is the aggregate key of the personal pools section.
const PoolAll = "all"

// sentinel is "0" for a healthy document without data and N/A otherwise.
func sentinel(status model.Status) string {
	if status == model.StatusOK {
		return "0"
	}
	return model.NA
}

func tokenTotals(value string) model.TokenTotals {
	return model.TokenTotals{Pwrd: value, Gvt: value, Total: value}
}

// NoPool is a pool whose staking data is unavailable.
func NoPool() model.UserPoolStat {
	return poolFilled(model.NA)
}

// EmptyPool is a pool the user never entered.
func EmptyPool() model.UserPoolStat {
	return poolFilled("0")
}

func poolFilled(value string) model.UserPoolStat {
	return model.UserPoolStat{
		NetReward:   value,
		Balance:     value,
		CoinBalance: value,
		Rewards:     model.Rewards{ClaimNow: value, VestAll: value},
	}
}

func noPools() map[string]model.UserPoolStat {
	pools := make(map[string]model.UserPoolStat, len(aggregate.PoolNames)+1)
	pools[PoolAll] = NoPool()
	for _, name := range aggregate.PoolNames {
		pools[name] = NoPool()
	}
	return pools
}

func emptyPrices(value string) model.PersonalPrices {
	return model.PersonalPrices{
		Gvt:             value,
		Gro:             value,
		BalancerGroWeth: value,
		UniswapGvtGro:   value,
		UniswapGroUsdc:  value,
		CurvePwrd3crv:   value,
	}
}

// EmptyEthereumUser is the Ethereum personal document without subgraph data.
// Airdrops and the vesting airdrop come from the proof store and are passed in
// so a subgraph failure does not hide them.
func EmptyEthereumUser(currentTimestamp, address string, status model.Status, airdrops []model.UserAirdrop, vesting model.UserVestingAirdrop) model.PersonalStatsEthereum {
	value := sentinel(status)
	if airdrops == nil {
		airdrops = []model.UserAirdrop{}
	}
	return model.PersonalStatsEthereum{
		Status:           status,
		NetworkID:        model.NetworkIDMainnet,
		Network:          model.NetworkMainnet,
		LaunchTimestamp:  model.LaunchTimestampEth,
		CurrentTimestamp: currentTimestamp,
		Address:          address,
		Prices:           emptyPrices("0"),
		Airdrops:         airdrops,
		Transaction:      model.EmptyTransactions(true),
		AmountAdded:      tokenTotals(value),
		AmountRemoved:    tokenTotals(value),
		NetAmountAdded:   tokenTotals(value),
		CurrentBalance:   tokenTotals(value),
		NetReturns:       tokenTotals(value),
		VestBonus: model.VestBonus{
			LockedGro: value,
			NetReward: value,
			Rewards:   model.Rewards{ClaimNow: value, VestAll: value},
		},
		Pools:          noPools(),
		VestingAirdrop: vesting,
	}
}

func vaultValues(value string) map[string]string {
	values := make(map[string]string, len(AvaxVaults)+1)
	for _, vault := range AvaxVaults {
		values[vault] = value
	}
	values["total"] = value
	return values
}

func emptyGroGate(status model.Status) model.GroGate {
	vaults := make(map[string]model.GroGateVault, 3)
	for _, vault := range AvaxVaults[:3] {
		vaults[vault] = model.GroGateVault{
			ClaimableAllowance:   model.NA,
			RemainingAllowance:   model.NA,
			Claimable:            model.NA,
			BaseAllowance:        model.NA,
			BaseAllowanceClaimed: model.NA,
		}
	}
	return model.GroGate{
		Status:                  status,
		TotalClaimableAllowance: model.NA,
		TotalRemainingAllowance: model.NA,
		SnapshotTs:              model.NA,
		GroBalanceAtSnapshot:    model.NA,
		GroGateAtSnapshot:       model.NA,
		Proofs:                  []string{},
		Root:                    model.NA,
		RootMatched:             model.NA,
		Vaults:                  vaults,
	}
}

// EmptyAvalancheUser is the Avalanche personal document without subgraph data.
func EmptyAvalancheUser(status model.Status) model.PersonalStatsAvalanche {
	value := sentinel(status)
	return model.PersonalStatsAvalanche{
		Status:          status,
		NetworkID:       model.NetworkIDAvalanche,
		LaunchTimestamp: model.LaunchTimestampAvax,
		AmountAdded:     vaultValues(value),
		AmountRemoved:   vaultValues(value),
		NetAmountAdded:  vaultValues(value),
		CurrentBalance:  vaultValues(value),
		NetReturns:      vaultValues(value),
		Transaction:     model.EmptyTransactions(false),
		GroGate:         emptyGroGate(status),
	}
}

// EmptyProtocolStats is the protocol document when the stats query fails.
func EmptyProtocolStats(currentTimestamp string, status model.Status) model.ProtocolStats {
	value := sentinel(status)
	return model.ProtocolStats{
		Status:           status,
		CurrentTimestamp: currentTimestamp,
		LaunchTimestamp:  model.LaunchTimestampEth,
		Network:          model.NetworkMainnet,
		Apy:              aggregate.EmptyApy(value),
		Tvl:              aggregate.EmptyTvl(value),
		System:           aggregate.EmptySystem(value),
		Exposure:         aggregate.EmptyExposure(),
		TokenPriceUSD:    model.TokenPriceUSD{Pwrd: model.NA, Gvt: model.NA, Gro: model.NA},
		Pools:            []model.PoolStat{},
		PwrdBoost:        model.Boost{UpperBoostApy: value, LowerBoostApy: value},
		GvtBoost:         model.Boost{UpperBoostApy: value, LowerBoostApy: value},
	}
}
