package model

// SubgraphMeta is the _meta block returned by every subgraph query.
type SubgraphMeta struct {
	HasIndexingErrors bool `json:"hasIndexingErrors"`
	Block             struct {
		Number    uint64 `json:"number"`
		Timestamp uint64 `json:"timestamp"`
	} `json:"block"`
}

// MasterData holds protocol-wide settings.
type MasterData struct {
	Status              string     `json:"status"`
	NetworkID           FlexString `json:"network_id"`
	NetworkName         string     `json:"network_name"`
	LaunchTimestamp     FlexString `json:"launch_timestamp"`
	GroPerBlock         FlexString `json:"gro_per_block"`
	TotalAlloc          FlexString `json:"total_alloc"`
	UtilRatio           FlexString `json:"util_ratio"`
	UtilRatioLimit      FlexString `json:"util_ratio_limit"`
	TotalLockedAmount   FlexString `json:"total_locked_amount"`
	TotalBonus          FlexString `json:"total_bonus"`
	GlobalStartTime     FlexString `json:"global_start_time"`
	InitUnlockedPercent FlexString `json:"init_unlocked_percent"`
}

// Price holds token and LP prices in USD.
type Price struct {
	Pwrd            FlexString `json:"pwrd"`
	Gvt             FlexString `json:"gvt"`
	Gro             FlexString `json:"gro"`
	UniswapGvtGro   FlexString `json:"uniswap_gvt_gro"`
	UniswapGroUsdc  FlexString `json:"uniswap_gro_usdc"`
	BalancerGroWeth FlexString `json:"balancer_gro_weth"`
	CurvePwrd3crv   FlexString `json:"curve_pwrd3crv"`
	ThreeCrv        FlexString `json:"three_crv"`
}

// PriceAgo is the gvt price some blocks in the past.
type PriceAgo struct {
	GvtAgo FlexString `json:"gvt_ago"`
}

// Factor holds the pwrd rebasing factor.
type Factor struct {
	Pwrd FlexString `json:"pwrd"`
}

// CoreData holds token supplies.
type CoreData struct {
	TotalSupplyGvt             FlexString `json:"total_supply_gvt"`
	TotalSupplyPwrdBased       FlexString `json:"total_supply_pwrd_based"`
	TotalSupplyGro             FlexString `json:"total_supply_gro"`
	TotalSupplyUniswapGvtGro   FlexString `json:"total_supply_uniswap_gvt_gro"`
	TotalSupplyUniswapGroUsdc  FlexString `json:"total_supply_uniswap_gro_usdc"`
	TotalSupplyCurvePwrd3crv   FlexString `json:"total_supply_curve_pwrd3crv"`
	TotalSupplyBalancerGroWeth FlexString `json:"total_supply_balancer_gro_weth"`
}

// PoolData holds LP reserves per staking pool.
type PoolData struct {
	ID          FlexString `json:"id"`
	Reserve0    FlexString `json:"reserve0"`
	Reserve1    FlexString `json:"reserve1"`
	TotalSupply FlexString `json:"total_supply"`
}

// StakerData holds LP staking state per pool.
type StakerData struct {
	ID             FlexString `json:"id"`
	LpSupply       FlexString `json:"lp_supply"`
	PoolShare      FlexString `json:"pool_share"`
	AllocPoint     FlexString `json:"alloc_point"`
	AccGroPerShare FlexString `json:"acc_gro_per_share"`
	BlockNumber    FlexString `json:"block_number"`
	BlockTimestamp FlexString `json:"block_timestamp"`
}

// PoolSwap is a recent swap in one of the staking pools.
type PoolSwap struct {
	PoolID         FlexString `json:"pool_id"`
	Amount0In      FlexString `json:"amount0_in"`
	Amount1In      FlexString `json:"amount1_in"`
	Amount0Out     FlexString `json:"amount0_out"`
	Amount1Out     FlexString `json:"amount1_out"`
	BlockTimestamp FlexString `json:"block_timestamp"`
	VirtualPrice   FlexString `json:"virtual_price"`
}

// EntityRef is a nested {id} reference.
type EntityRef struct {
	ID string `json:"id"`
}

// Harvest is one strategy report.
type Harvest struct {
	BlockTimestamp         FlexString `json:"block_timestamp"`
	Gain                   FlexString `json:"gain"`
	Loss                   FlexString `json:"loss"`
	DebtPaid               FlexString `json:"debt_paid"`
	DebtAdded              FlexString `json:"debt_added"`
	LockedProfit           FlexString `json:"locked_profit"`
	LockedProfitBeforeLoss FlexString `json:"locked_profit_before_loss"`
	StrategyAddress        EntityRef  `json:"strategy_address"`
}

// GStrategy is a strategy attached to a gvault.
type GStrategy struct {
	ID                    string     `json:"id"`
	Coin                  string     `json:"coin"`
	Metacoin              string     `json:"metacoin"`
	Protocol              string     `json:"protocol"`
	StratName             string     `json:"strat_name"`
	StratDisplayName      string     `json:"strat_display_name"`
	VaultName             string     `json:"vault_name"`
	VaultDisplayName      string     `json:"vault_display_name"`
	VaultAddress          EntityRef  `json:"vault_address"`
	StrategyDebt          FlexString `json:"strategy_debt"`
	BlockStrategyReported FlexString `json:"block_strategy_reported"`
	BlockStrategyWithdraw FlexString `json:"block_strategy_withdraw"`
	Harvests              []Harvest  `json:"harvests"`
}

// GVault is a vault with its strategies.
type GVault struct {
	ID                    string      `json:"id"`
	ReleaseFactor         FlexString  `json:"release_factor"`
	LockedProfit          FlexString  `json:"locked_profit"`
	LockedProfitTimestamp FlexString  `json:"locked_profit_timestamp"`
	Strategies            []GStrategy `json:"strategies"`
}

// GroStatsResult is the protocol-wide stats query result.
type GroStatsResult struct {
	Meta        SubgraphMeta `json:"_meta"`
	MasterDatas []MasterData `json:"masterDatas"`
	Prices      []Price      `json:"prices"`
	PricesAgo   []PriceAgo   `json:"prices_ago"`
	Factors     []Factor     `json:"factors"`
	CoreDatas   []CoreData   `json:"coreDatas"`
	PoolDatas   []PoolData   `json:"poolDatas"`
	StakerDatas []StakerData `json:"stakerDatas"`
	PoolSwaps   []PoolSwap   `json:"poolSwaps"`
	GVaults     []GVault     `json:"gvaults"`
}

// UserTotals are the cumulative per-user amounts.
type UserTotals struct {
	ValueAddedGvt      FlexString `json:"value_added_gvt"`
	ValueAddedPwrd     FlexString `json:"value_added_pwrd"`
	ValueAddedTotal    FlexString `json:"value_added_total"`
	ValueRemovedGvt    FlexString `json:"value_removed_gvt"`
	ValueRemovedPwrd   FlexString `json:"value_removed_pwrd"`
	ValueRemovedTotal  FlexString `json:"value_removed_total"`
	NetValueGvt        FlexString `json:"net_value_gvt"`
	NetValuePwrd       FlexString `json:"net_value_pwrd"`
	NetValueTotal      FlexString `json:"net_value_total"`
	NetAmountGvt       FlexString `json:"net_amount_gvt"`
	NetBasedAmountPwrd FlexString `json:"net_based_amount_pwrd"`
	AmountTotalGro     FlexString `json:"amount_total_gro"`
	AmountVestTeamGro  FlexString `json:"amount_vest_team_gro"`
}

// UserVestingBonus is the user's GRO vesting position.
type UserVestingBonus struct {
	NetReward       FlexString `json:"net_reward"`
	VestingGro      FlexString `json:"vesting_gro"`
	LatestStartTime FlexString `json:"latest_start_time"`
}

// UserVestingAirdropEvents mirrors the vesting claim entity indexed from chain events.
type UserVestingAirdropEvents struct {
	ClaimInitialized FlexBool   `json:"claim_initialized"`
	ClaimedAmount    FlexString `json:"claimed_amount"`
	TotalClaimAmount FlexString `json:"total_claim_amount"`
}

// AirdropClaim is an on-chain airdrop claim by the user.
type AirdropClaim struct {
	ID              string     `json:"id"`
	TrancheID       FlexString `json:"tranche_id"`
	Amount          FlexString `json:"amount"`
	ContractAddress string     `json:"contract_address"`
	BlockTimestamp  FlexString `json:"block_timestamp"`
}

// UserTransfer is a deposit, withdrawal or transfer.
type UserTransfer struct {
	Token       string     `json:"token"`
	Hash        string     `json:"hash"`
	Timestamp   FlexString `json:"timestamp"`
	UsdAmount   FlexString `json:"usd_amount"`
	CoinAmount  FlexString `json:"coin_amount"`
	BlockNumber FlexString `json:"block_number"`
	Type        string     `json:"type"`
}

// UserApproval is a token approval.
type UserApproval struct {
	Token       string     `json:"token"`
	Hash        string     `json:"hash"`
	Timestamp   FlexString `json:"timestamp"`
	Spender     string     `json:"spender"`
	UsdAmount   FlexString `json:"usd_amount"`
	CoinAmount  FlexString `json:"coin_amount"`
	BlockNumber FlexString `json:"block_number"`
}

// UserPool is the user's position in one staking pool.
type UserPool struct {
	NetReward  FlexString `json:"net_reward"`
	Balance    FlexString `json:"balance"`
	RewardDebt FlexString `json:"reward_debt"`
}

// SubgraphUser is the per-address entity of the personal stats query.
type SubgraphUser struct {
	Address        string                    `json:"address"`
	Totals         *UserTotals               `json:"totals"`
	VestingBonus   *UserVestingBonus         `json:"vestingBonus"`
	VestingAirdrop *UserVestingAirdropEvents `json:"vestingAirdrop"`
	AirdropClaims  []AirdropClaim            `json:"airdrop_claims"`
	Transfers      []UserTransfer            `json:"transfers"`
	Approvals      []UserApproval            `json:"approvals"`
	Pool0          []UserPool                `json:"pool_0"`
	Pool1          []UserPool                `json:"pool_1"`
	Pool2          []UserPool                `json:"pool_2"`
	Pool3          []UserPool                `json:"pool_3"`
	Pool4          []UserPool                `json:"pool_4"`
	Pool5          []UserPool                `json:"pool_5"`
	Pool6          []UserPool                `json:"pool_6"`
}

// PoolPositions returns the user's pool entries indexed by pool id.
func (u SubgraphUser) PoolPositions() [][]UserPool {
	return [][]UserPool{u.Pool0, u.Pool1, u.Pool2, u.Pool3, u.Pool4, u.Pool5, u.Pool6}
}

// PersonalStatsResult is the per-address stats query result (Ethereum).
type PersonalStatsResult struct {
	Meta        SubgraphMeta   `json:"_meta"`
	MasterDatas []MasterData   `json:"masterDatas"`
	Prices      []Price        `json:"prices"`
	PoolDatas   []PoolData     `json:"poolDatas"`
	StakerDatas []StakerData   `json:"stakerDatas"`
	Factors     []Factor       `json:"factors"`
	Users       []SubgraphUser `json:"users"`
}

// AvaxVaultTotal is the user's cumulative position in one Avalanche vault.
type AvaxVaultTotal struct {
	VaultName    string     `json:"vault_name"`
	ValueAdded   FlexString `json:"value_added"`
	ValueRemoved FlexString `json:"value_removed"`
	NetValue     FlexString `json:"net_value"`
	Balance      FlexString `json:"balance"`
}

// AvaxUser is the per-address entity of the Avalanche personal stats query.
type AvaxUser struct {
	Address   string           `json:"address"`
	Totals    []AvaxVaultTotal `json:"totals"`
	Transfers []UserTransfer   `json:"transfers"`
	Approvals []UserApproval   `json:"approvals"`
}

// AvaxPersonalStatsResult is the per-address stats query result (Avalanche).
type AvaxPersonalStatsResult struct {
	Meta  SubgraphMeta `json:"_meta"`
	Users []AvaxUser   `json:"users"`
}
