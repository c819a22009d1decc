package airdrop

import (
	"strings"

	"groStats/internal/model"
)

// ApplyClaims marks rounds the user already claimed on chain. A claim matches a
// round when its tranche id equals the round's merkle root index.
func ApplyClaims(airdrops []model.UserAirdrop, claims []model.AirdropClaim) []model.UserAirdrop {
	if len(claims) == 0 {
		return airdrops
	}
	byTranche := make(map[string]model.AirdropClaim, len(claims))
	for _, claim := range claims {
		byTranche[strings.TrimSpace(claim.TrancheID.String())] = claim
	}
	for i := range airdrops {
		claim, ok := byTranche[airdrops[i].MerkleRootIndex]
		if !ok {
			continue
		}
		airdrops[i].Claimed = "true"
		airdrops[i].Hash = claimTxHash(claim.ID)
	}
	return airdrops
}

// claim ids are "<tx hash>-<log index>".
func claimTxHash(id string) string {
	if idx := strings.Index(id, "-"); idx > 0 {
		return id[:idx]
	}
	return id
}

// SubgraphVestingClaims exposes the indexed vesting claim events of one user.
type SubgraphVestingClaims struct {
	Address string
	Events  *model.UserVestingAirdropEvents
}

// VestingClaim implements VestingClaimSource. The claimable amount depends on
// the vesting schedule and stays empty.
func (s SubgraphVestingClaims) VestingClaim(address string) (VestingClaim, bool) {
	if s.Events == nil || !strings.EqualFold(s.Address, address) {
		return VestingClaim{}, false
	}
	return VestingClaim{
		ClaimInitialized: bool(s.Events.ClaimInitialized),
		ClaimedAmount:    s.Events.ClaimedAmount.String(),
	}, true
}
