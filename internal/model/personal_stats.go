package model

// TokenTotals holds per-token amounts plus their sum.
type TokenTotals struct {
	Pwrd  string `json:"pwrd"`
	Gvt   string `json:"gvt"`
	Total string `json:"total"`
}

// Rewards holds GRO reward amounts depending on exit timing.
type Rewards struct {
	ClaimNow string `json:"claim_now"`
	VestAll  string `json:"vest_all"`
}

// VestBonus is the user's vesting bonus section.
type VestBonus struct {
	LockedGro string  `json:"locked_gro"`
	NetReward string  `json:"net_reward"`
	Rewards   Rewards `json:"rewards"`
}

// UserPoolStat is the user's position in one staking pool.
type UserPoolStat struct {
	NetReward   string  `json:"net_reward"`
	Balance     string  `json:"balance"`
	CoinBalance string  `json:"coinBalance"`
	Rewards     Rewards `json:"rewards"`
}

// Transaction is one user transaction entry.
type Transaction struct {
	Token       string `json:"token"`
	Hash        string `json:"hash"`
	Timestamp   string `json:"timestamp"`
	UsdAmount   string `json:"usd_amount"`
	CoinAmount  string `json:"coin_amount"`
	BlockNumber string `json:"block_number"`
	Spender     string `json:"spender,omitempty"`
}

// Transactions groups user transactions by kind.
type Transactions struct {
	Deposits          []Transaction `json:"deposits"`
	Withdrawals       []Transaction `json:"withdrawals"`
	TransfersIn       []Transaction `json:"transfers_in"`
	TransfersOut      []Transaction `json:"transfers_out"`
	Approvals         []Transaction `json:"approvals"`
	StakerDeposits    []Transaction `json:"staker_deposits,omitempty"`
	StakerWithdrawals []Transaction `json:"staker_withdrawals,omitempty"`
	Failures          []Transaction `json:"failures"`
}

// EmptyTransactions returns a Transactions value with every list non-nil.
func EmptyTransactions(withStaker bool) Transactions {
	tx := Transactions{
		Deposits:     []Transaction{},
		Withdrawals:  []Transaction{},
		TransfersIn:  []Transaction{},
		TransfersOut: []Transaction{},
		Approvals:    []Transaction{},
		Failures:     []Transaction{},
	}
	if withStaker {
		tx.StakerDeposits = []Transaction{}
		tx.StakerWithdrawals = []Transaction{}
	}
	return tx
}

// PersonalPrices are the prices used to value the user's positions.
type PersonalPrices struct {
	Gvt             string `json:"gvt"`
	Gro             string `json:"gro"`
	BalancerGroWeth string `json:"balancer_gro_weth"`
	UniswapGvtGro   string `json:"uniswap_gvt_gro"`
	UniswapGroUsdc  string `json:"uniswap_gro_usdc"`
	CurvePwrd3crv   string `json:"curve_pwrd3crv"`
}

// PersonalStatsEthereum is the user statistics document for Ethereum.
type PersonalStatsEthereum struct {
	Status              Status                  `json:"status"`
	NetworkID           string                  `json:"network_id"`
	Network             string                  `json:"network"`
	LaunchTimestamp     string                  `json:"launch_timestamp"`
	CurrentTimestamp    string                  `json:"current_timestamp"`
	Address             string                  `json:"address"`
	Prices              PersonalPrices          `json:"prices"`
	Airdrops            []UserAirdrop           `json:"airdrops"`
	Transaction         Transactions            `json:"transaction"`
	AmountAdded         TokenTotals             `json:"amount_added"`
	AmountRemoved       TokenTotals             `json:"amount_removed"`
	NetAmountAdded      TokenTotals             `json:"net_amount_added"`
	CurrentBalance      TokenTotals             `json:"current_balance"`
	NetReturns          TokenTotals             `json:"net_returns"`
	VestBonus           VestBonus               `json:"vest_bonus"`
	Pools               map[string]UserPoolStat `json:"pools"`
	VestingAirdrop      UserVestingAirdrop      `json:"vesting_airdrop"`
	UnavailableSections []string                `json:"unavailable_sections,omitempty"`
}

// GroGateVault is the per-vault deposit allowance.
type GroGateVault struct {
	ClaimableAllowance   string `json:"claimable_allowance"`
	RemainingAllowance   string `json:"remaining_allowance"`
	Claimable            string `json:"claimable"`
	BaseAllowance        string `json:"base_allowance"`
	BaseAllowanceClaimed string `json:"base_allowance_claimed"`
}

// GroGate is the Avalanche deposit allowance section.
type GroGate struct {
	Status                  Status                  `json:"status"`
	TotalClaimableAllowance string                  `json:"total_claimable_allowance"`
	TotalRemainingAllowance string                  `json:"total_remaining_allowance"`
	SnapshotTs              string                  `json:"snapshot_ts"`
	GroBalanceAtSnapshot    string                  `json:"gro_balance_at_snapshot"`
	GroGateAtSnapshot       string                  `json:"gro_gate_at_snapshot"`
	Proofs                  []string                `json:"proofs"`
	Root                    string                  `json:"root"`
	RootMatched             string                  `json:"root_matched"`
	Vaults                  map[string]GroGateVault `json:"vaults"`
}

// PersonalStatsAvalanche is the user statistics document for Avalanche.
type PersonalStatsAvalanche struct {
	Status          Status            `json:"status"`
	NetworkID       string            `json:"network_id"`
	LaunchTimestamp string            `json:"launch_timestamp"`
	AmountAdded     map[string]string `json:"amount_added"`
	AmountRemoved   map[string]string `json:"amount_removed"`
	NetAmountAdded  map[string]string `json:"net_amount_added"`
	CurrentBalance  map[string]string `json:"current_balance"`
	NetReturns      map[string]string `json:"net_returns"`
	Transaction     Transactions      `json:"transaction"`
	GroGate         GroGate           `json:"gro_gate"`
}

// PersonalPosition is the multichain personal stats document.
type PersonalPosition struct {
	Status           Status                 `json:"status"`
	CurrentTimestamp string                 `json:"current_timestamp"`
	Address          string                 `json:"address"`
	Network          string                 `json:"network"`
	Ethereum         PersonalStatsEthereum  `json:"ethereum"`
	Avalanche        PersonalStatsAvalanche `json:"avalanche"`
}

// ApySnapshot is one persisted APY/TVL observation.
type ApySnapshot struct {
	Network     string `json:"network"`
	Timestamp   uint64 `json:"current_timestamp"`
	ApyPwrd     string `json:"apy_pwrd"`
	ApyGvt      string `json:"apy_gvt"`
	TvlPwrd     string `json:"tvl_pwrd"`
	TvlGvt      string `json:"tvl_gvt"`
	TvlTotal    string `json:"tvl_total"`
	Last3dApy   string `json:"last3d_apy"`
	CreatedAtTs string `json:"created_at,omitempty"`
}
