package model

// TokenPair holds a pwrd/gvt pair of values.
type TokenPair struct {
	Pwrd string `json:"pwrd"`
	Gvt  string `json:"gvt"`
}

// Apy is the APY breakdown across time horizons.
type Apy struct {
	Last24h   TokenPair `json:"last24h"`
	Last7d    TokenPair `json:"last7d"`
	Daily     TokenPair `json:"daily"`
	Weekly    TokenPair `json:"weekly"`
	Monthly   TokenPair `json:"monthly"`
	AllTime   TokenPair `json:"all_time"`
	Current   TokenPair `json:"current"`
	HodlBonus string    `json:"hodl_bonus"`
}

// Boost holds the staking boost APY range for a token.
type Boost struct {
	UpperBoostApy string `json:"upperBoostApy"`
	LowerBoostApy string `json:"lowerBoostApy"`
}

// Tvl is the total value locked breakdown.
type Tvl struct {
	Pwrd             string `json:"pwrd"`
	Gvt              string `json:"gvt"`
	Total            string `json:"total"`
	UtilRatio        string `json:"util_ratio"`
	UtilRatioLimitPD string `json:"util_ratio_limit_PD"`
	UtilRatioLimitGW string `json:"util_ratio_limit_GW"`
}

// LifeguardStablecoin is one stablecoin held by the lifeguard.
type LifeguardStablecoin struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Amount      string `json:"amount"`
}

// Lifeguard is the buffer held outside the vaults.
type Lifeguard struct {
	Stablecoins []LifeguardStablecoin `json:"stablecoins"`
	Name        string                `json:"name"`
	DisplayName string                `json:"display_name"`
	Amount      string                `json:"amount"`
	Share       string                `json:"share"`
	Last3dApy   string                `json:"last3d_apy"`
}

// Strategy is a strategy snapshot inside a vault.
type Strategy struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Address       string `json:"address"`
	Amount        string `json:"amount"`
	Share         string `json:"share"`
	Last3dApy     string `json:"last3d_apy"`
	NetGain15d    string `json:"net_gain_15d"`
	DebtChange15d string `json:"debt_change_15d"`
	Metacoin      string `json:"metacoin"`
	Protocol      string `json:"protocol"`
}

// Vault is a vault snapshot with its strategies.
type Vault struct {
	Name         string     `json:"name"`
	DisplayName  string     `json:"display_name"`
	Address      string     `json:"address"`
	Amount       string     `json:"amount"`
	Share        string     `json:"share"`
	Last3dApy    string     `json:"last3d_apy"`
	LockedProfit string     `json:"locked_profit"`
	Strategies   []Strategy `json:"strategies"`
}

// System is the system-level summary of all vaults.
type System struct {
	TotalShare  string    `json:"total_share"`
	TotalAmount string    `json:"total_amount"`
	Last3dApy   string    `json:"last3d_apy"`
	Lifeguard   Lifeguard `json:"lifeguard"`
	Vaults      []Vault   `json:"vault"`
}

// ExposureItem is the concentration of strategy value in one stablecoin or protocol.
type ExposureItem struct {
	Name          string `json:"name"`
	DisplayName   string `json:"display_name"`
	Concentration string `json:"concentration"`
}

// Exposure groups stablecoin and protocol concentrations.
type Exposure struct {
	Stablecoins []ExposureItem `json:"stablecoins"`
	Protocols   []ExposureItem `json:"protocols"`
}

// TokenPriceUSD holds the protocol token prices.
type TokenPriceUSD struct {
	Pwrd string `json:"pwrd"`
	Gvt  string `json:"gvt"`
	Gro  string `json:"gro"`
}

// PoolStat is the financial snapshot of one staking pool.
type PoolStat struct {
	PID            string `json:"pid"`
	Name           string `json:"name"`
	LpUSD          string `json:"lp_usd"`
	LpSupply       string `json:"lp_supply"`
	Tvl            string `json:"tvl"`
	AllocPoint     string `json:"alloc_point"`
	PoolShare      string `json:"pool_share"`
	AccGroPerShare string `json:"acc_gro_per_share"`
}

// ProtocolStats is the protocol-wide statistics document.
type ProtocolStats struct {
	Status              Status        `json:"status"`
	CurrentTimestamp    string        `json:"current_timestamp"`
	LaunchTimestamp     string        `json:"launch_timestamp"`
	Network             string        `json:"network"`
	Apy                 Apy           `json:"apy"`
	Tvl                 Tvl           `json:"tvl"`
	System              System        `json:"system"`
	Exposure            Exposure      `json:"exposure"`
	TokenPriceUSD       TokenPriceUSD `json:"token_price_usd"`
	Pools               []PoolStat    `json:"pools"`
	PwrdBoost           Boost         `json:"pwrdBoost"`
	GvtBoost            Boost         `json:"gvtBoost"`
	UnavailableSections []string      `json:"unavailable_sections,omitempty"`
}
