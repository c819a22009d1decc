package airdrop

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"groStats/internal/amount"
	"groStats/internal/model"
	"groStats/internal/proof"
)

// ErrResolution marks a resolver call against a missing or unusable proof store.
var ErrResolution = errors.New("airdrop resolution failure")

// StoreSource returns the current proof store. *proof.Registry satisfies it.
type StoreSource interface {
	Current() *proof.Store
}

// VestingClaimSource supplies the on-chain claim state of the vesting airdrop.
// Claim reconciliation from chain events happens outside this package; without
// a source the claim fields stay empty.
type VestingClaimSource interface {
	VestingClaim(address string) (VestingClaim, bool)
}

// VestingClaim is the reconciled claim state of one address.
type VestingClaim struct {
	ClaimInitialized bool
	ClaimedAmount    string
	ClaimableAmount  string
}

// Resolver computes a user's airdrop and vesting airdrop state.
type Resolver struct {
	stores StoreSource
	logger *zap.Logger
	now    func() time.Time
}

func NewResolver(stores StoreSource, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{stores: stores, logger: logger, now: time.Now}
}

// WithClock overrides the time source used for expiry checks.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Available reports whether a proof section is loaded.
func (r *Resolver) Available(section string) bool {
	return r.store().Available(section)
}

// Resolve returns the user's state for every loaded airdrop round. An empty
// result means the section is unavailable; it is logged and never an error.
func (r *Resolver) Resolve(address string) []model.UserAirdrop {
	result, err := r.resolve(address)
	if err != nil {
		r.logger.Warn("airdrops section excluded",
			zap.String("address", address),
			zap.Error(err),
		)
		return []model.UserAirdrop{}
	}
	return result
}

func (r *Resolver) resolve(address string) (result []model.UserAirdrop, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			result = nil
			err = fmt.Errorf("%w: %v", ErrResolution, rec)
		}
	}()

	store := r.store()
	if store == nil {
		return nil, fmt.Errorf("%w: proof store not loaded", ErrResolution)
	}

	now := r.now().UTC()
	airdrops := store.Airdrops()
	result = make([]model.UserAirdrop, 0, len(airdrops))
	for _, drop := range airdrops {
		entry, found := drop.Lookup(address)

		item := model.UserAirdrop{
			Amount:          "0",
			AmountToClaim:   "0",
			Claimable:       model.BoolString(bool(drop.Claimable)),
			Claimed:         "false",
			DisplayName:     drop.DisplayName,
			Expired:         model.BoolString(isExpired(drop.ExpiryTs.String(), now)),
			ExpiryTs:        drop.ExpiryTs.String(),
			Hash:            "",
			LaunchTs:        drop.Timestamp.String(),
			MerkleRootIndex: drop.MerkleIndex.String(),
			Name:            drop.Name,
			Participated:    model.BoolString(found),
			Proofs:          []string{},
			Token:           drop.Token,
		}
		if found {
			item.Amount = amount.Scale(entry.Amount.String(), amount.TokenDecimals, 2)
			item.AmountToClaim = entry.Amount.String()
			if entry.Proof != nil {
				item.Proofs = entry.Proof
			}
		}
		result = append(result, item)
	}
	return result, nil
}

// ResolveVesting returns the user's vesting airdrop entry. The scan is linear
// over the vesting list, which holds a single program.
func (r *Resolver) ResolveVesting(address string, claims VestingClaimSource) model.UserVestingAirdrop {
	vesting := r.store().VestingDefinition()
	lower := strings.ToLower(address)

	for _, entry := range vesting.Airdrops {
		if strings.ToLower(entry.Address) != lower {
			continue
		}
		result := model.UserVestingAirdrop{
			Name:   vesting.Name,
			Token:  vesting.Token,
			Amount: entry.Amount.String(),
			Proofs: entry.Proofs,
		}
		if result.Proofs == nil {
			result.Proofs = []string{}
		}
		if claims != nil {
			if claim, ok := claims.VestingClaim(lower); ok {
				result.ClaimInitialized = model.BoolString(claim.ClaimInitialized)
				result.ClaimedAmount = claim.ClaimedAmount
				result.ClaimableAmount = claim.ClaimableAmount
			}
		}
		return result
	}

	return model.UserVestingAirdrop{
		Name:             vesting.Name,
		Token:            vesting.Token,
		Amount:           "0",
		ClaimInitialized: "false",
		ClaimedAmount:    "0",
		ClaimableAmount:  "0",
		Proofs:           []string{},
	}
}

func (r *Resolver) store() *proof.Store {
	if r == nil || r.stores == nil {
		return nil
	}
	return r.stores.Current()
}

func isExpired(expiryTs string, now time.Time) bool {
	ts, err := strconv.ParseInt(strings.TrimSpace(expiryTs), 10, 64)
	if err != nil {
		return false
	}
	return now.After(time.Unix(ts, 0).UTC())
}
