package model

// NA marks a value whose upstream data is unavailable.
const NA = "N/A"

// Status is the document-level health flag.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Network identifiers used in documents.
const (
	NetworkMainnet   = "mainnet"
	NetworkAvalanche = "avalanche"

	NetworkIDMainnet   = "1"
	NetworkIDAvalanche = "43114"
)

// Launch timestamps (unix seconds) per network.
const (
	LaunchTimestampEth  = "1622204347"
	LaunchTimestampAvax = "1638483222"
)

// Sections that can degrade independently in the output documents.
const (
	SectionAirdrops       = "airdrops"
	SectionVestingAirdrop = "vesting_airdrop"
	SectionSystem         = "system"
	SectionExposure       = "exposure"
	SectionPools          = "pools"
	SectionVestBonus      = "vest_bonus"
	SectionPrices         = "prices"
)
