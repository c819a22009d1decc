package model

// AirdropProof is one address entry of an airdrop round.
type AirdropProof struct {
	Amount FlexString `json:"amount"`
	Proof  []string   `json:"proof"`
}

// AirdropDefinition is one airdrop round as stored in the proof files.
type AirdropDefinition struct {
	Name        string                  `json:"name"`
	DisplayName string                  `json:"display_name"`
	Token       string                  `json:"token"`
	Timestamp   FlexString              `json:"timestamp"`
	ExpiryTs    FlexString              `json:"expiry_ts"`
	MerkleIndex FlexString              `json:"merkleIndex"`
	Claimable   FlexBool                `json:"claimable"`
	Proofs      map[string]AirdropProof `json:"proofs"`
}

// VestingAirdropEntry is one address entry of the vesting airdrop.
type VestingAirdropEntry struct {
	Address string     `json:"address"`
	Amount  FlexString `json:"amount"`
	Proofs  []string   `json:"proofs"`
}

// VestingAirdropDefinition is the vesting airdrop program.
type VestingAirdropDefinition struct {
	Name     string                `json:"name"`
	Token    string                `json:"token"`
	Root     string                `json:"root"`
	Total    FlexString            `json:"total"`
	Airdrops []VestingAirdropEntry `json:"airdrops"`
}

// EmptyVestingDefinition is used when the vesting proof file cannot be loaded.
// Its single entry carries the N/A address so it never matches a real user.
func EmptyVestingDefinition() VestingAirdropDefinition {
	return VestingAirdropDefinition{
		Name:  NA,
		Token: NA,
		Root:  NA,
		Total: NA,
		Airdrops: []VestingAirdropEntry{{
			Address: NA,
			Amount:  NA,
			Proofs:  []string{},
		}},
	}
}

// UserAirdrop is a user's state against one airdrop round.
type UserAirdrop struct {
	Amount          string   `json:"amount"`
	AmountToClaim   string   `json:"amount_to_claim"`
	Claimable       string   `json:"claimable"`
	Claimed         string   `json:"claimed"`
	DisplayName     string   `json:"display_name"`
	Expired         string   `json:"expired"`
	ExpiryTs        string   `json:"expiry_ts"`
	Hash            string   `json:"hash"`
	LaunchTs        string   `json:"launch_ts"`
	MerkleRootIndex string   `json:"merkle_root_index"`
	Name            string   `json:"name"`
	Participated    string   `json:"participated"`
	Proofs          []string `json:"proofs"`
	Token           string   `json:"token"`
}

// UserVestingAirdrop is a user's state against the vesting airdrop.
type UserVestingAirdrop struct {
	Name             string   `json:"name"`
	Token            string   `json:"token"`
	Amount           string   `json:"amount"`
	ClaimInitialized string   `json:"claim_initialized"`
	ClaimedAmount    string   `json:"claimed_amount"`
	ClaimableAmount  string   `json:"claimable_amount"`
	Proofs           []string `json:"proofs"`
}

// EmptyUserVestingAirdrop is the vesting section when no vesting data is available.
func EmptyUserVestingAirdrop() UserVestingAirdrop {
	return UserVestingAirdrop{
		Name:             NA,
		Token:            NA,
		Amount:           NA,
		ClaimInitialized: NA,
		ClaimedAmount:    NA,
		ClaimableAmount:  NA,
		Proofs:           []string{},
	}
}
