package subgraph

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultTransfers caps the transfers returned per user.
	DefaultTransfers = 1000

	harvestLookback = 15 * 24 * time.Hour
	swapLookback    = 2.1 * 24 * 60 * 60
)

// GroStatsEthereum builds the protocol stats query. With gvtAgoBlock zero the
// historical gvt price is read at the latest block.
func GroStatsEthereum(now time.Time, gvtAgoBlock uint64) string {
	pricesAgo := "prices_ago: prices"
	if gvtAgoBlock > 0 {
		pricesAgo = fmt.Sprintf("prices_ago: prices(block: {number: %d})", gvtAgoBlock)
	}
	swapsFrom := now.Unix() - int64(swapLookback)
	harvestsFrom := now.Add(-harvestLookback).Unix()

	return fmt.Sprintf(`{
  _meta { hasIndexingErrors block { number timestamp } }
  masterDatas {
    status network_id launch_timestamp gro_per_block total_alloc util_ratio util_ratio_limit
  }
  prices {
    pwrd gvt gro uniswap_gvt_gro uniswap_gro_usdc balancer_gro_weth curve_pwrd3crv three_crv
  }
  %s { gvt_ago: gvt }
  factors { pwrd }
  coreDatas {
    total_supply_gvt total_supply_pwrd_based total_supply_gro total_supply_uniswap_gvt_gro
    total_supply_uniswap_gro_usdc total_supply_curve_pwrd3crv total_supply_balancer_gro_weth
  }
  poolDatas { id reserve0 reserve1 total_supply }
  stakerDatas(orderBy: id, orderDirection: asc) {
    id lp_supply pool_share alloc_point acc_gro_per_share
  }
  poolSwaps(orderBy: block_timestamp, orderDirection: desc, where: {block_timestamp_gte: %d}) {
    pool_id amount0_in amount1_in amount0_out amount1_out block_timestamp virtual_price
  }
  gvaults {
    id release_factor locked_profit locked_profit_timestamp
    strategies {
      id coin metacoin protocol strat_name strat_display_name vault_name vault_display_name
      vault_address { id }
      strategy_debt block_strategy_reported block_strategy_withdraw
      harvests(orderBy: block_timestamp, orderDirection: desc, where: {block_timestamp_gt: %d}) {
        block_timestamp gain loss debt_paid debt_added locked_profit locked_profit_before_loss
        strategy_address { id }
      }
    }
  }
}`, pricesAgo, swapsFrom, harvestsFrom)
}

// PersonalStatsEthereum builds the per-address Ethereum query. The account is
// lower-cased to match subgraph entity ids.
func PersonalStatsEthereum(account string, first int, fromTimestamp int64) string {
	if first <= 0 {
		first = DefaultTransfers
	}
	var pools strings.Builder
	for pid := 0; pid < 7; pid++ {
		fmt.Fprintf(&pools, "    pool_%d: pools(where: {pool_id: %d}) { net_reward balance reward_debt }\n", pid, pid)
	}

	return fmt.Sprintf(`{
  _meta { hasIndexingErrors block { number timestamp } }
  masterDatas {
    status network_id network_name launch_timestamp gro_per_block total_alloc
    total_locked_amount total_bonus global_start_time init_unlocked_percent
  }
  prices { gvt gro curve_pwrd3crv uniswap_gvt_gro uniswap_gro_usdc balancer_gro_weth }
  poolDatas { id reserve0 reserve1 total_supply }
  stakerDatas { id lp_supply acc_gro_per_share alloc_point pool_share block_number block_timestamp }
  factors { pwrd }
  users(where: {id: %q}) {
    address: id
    totals {
      value_added_gvt value_added_pwrd value_added_total
      value_removed_gvt value_removed_pwrd value_removed_total
      net_value_gvt net_value_pwrd net_value_total
      net_amount_gvt net_based_amount_pwrd amount_total_gro amount_vest_team_gro
    }
    vestingBonus { net_reward vesting_gro latest_start_time }
    vestingAirdrop { claim_initialized claimed_amount total_claim_amount }
    airdrop_claims(orderBy: block_timestamp, orderDirection: asc) {
      id tranche_id amount contract_address block_timestamp
    }
%s%s
%s  }
}`, strings.ToLower(account), transfersFragment(first, fromTimestamp), approvalsFragment, pools.String())
}

// PersonalStatsAvalanche builds the per-address Avalanche query.
func PersonalStatsAvalanche(account string, first int, fromTimestamp int64) string {
	if first <= 0 {
		first = DefaultTransfers
	}
	return fmt.Sprintf(`{
  _meta { hasIndexingErrors block { number timestamp } }
  users(where: {id: %q}) {
    address: id
    totals { vault_name value_added value_removed net_value balance }
%s%s
  }
}`, strings.ToLower(account), transfersFragment(first, fromTimestamp), approvalsFragment)
}

func transfersFragment(first int, fromTimestamp int64) string {
	return fmt.Sprintf(`    transfers(first: %d, where: {block_timestamp_gte: %d}, orderBy: block_timestamp, orderDirection: asc) {
      token hash timestamp: block_timestamp usd_amount coin_amount block_number type
    }
`, first, fromTimestamp)
}

const approvalsFragment = `    approvals(orderBy: block_timestamp, orderDirection: desc) {
      token hash timestamp: block_timestamp spender: spender_address usd_amount coin_amount block_number
    }`
