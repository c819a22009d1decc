package proof

import (
	"strings"

	"groStats/internal/model"
)

// Airdrop is a loaded airdrop round with a lower-cased address index.
type Airdrop struct {
	model.AirdropDefinition
	byAddress map[string]model.AirdropProof
}

func newAirdrop(def model.AirdropDefinition) *Airdrop {
	index := make(map[string]model.AirdropProof, len(def.Proofs))
	for addr, p := range def.Proofs {
		index[strings.ToLower(addr)] = p
	}
	return &Airdrop{AirdropDefinition: def, byAddress: index}
}

// Lookup finds the proof entry for an address, ignoring case.
func (a *Airdrop) Lookup(address string) (model.AirdropProof, bool) {
	if a == nil {
		return model.AirdropProof{}, false
	}
	p, ok := a.byAddress[strings.ToLower(address)]
	return p, ok
}

// Store holds airdrop and vesting airdrop definitions. It is never mutated after
// construction; reloads build a new Store and swap it in the Registry.
type Store struct {
	airdrops    []*Airdrop
	vesting     model.VestingAirdropDefinition
	unavailable map[string]struct{}
}

// NewStore builds a Store from already-decoded definitions.
func NewStore(airdrops []model.AirdropDefinition, vesting model.VestingAirdropDefinition, unavailable ...string) *Store {
	s := &Store{
		airdrops:    make([]*Airdrop, 0, len(airdrops)),
		vesting:     vesting,
		unavailable: make(map[string]struct{}, len(unavailable)),
	}
	for _, def := range airdrops {
		s.airdrops = append(s.airdrops, newAirdrop(def))
	}
	for _, section := range unavailable {
		s.unavailable[section] = struct{}{}
	}
	return s
}

// Airdrops returns the loaded airdrop rounds in file order.
func (s *Store) Airdrops() []*Airdrop {
	if s == nil {
		return nil
	}
	return s.airdrops
}

// VestingDefinition returns the vesting airdrop, or the empty definition when
// the store is nil.
func (s *Store) VestingDefinition() model.VestingAirdropDefinition {
	if s == nil {
		return model.EmptyVestingDefinition()
	}
	return s.vesting
}

// Available reports whether a section loaded without failure.
func (s *Store) Available(section string) bool {
	if s == nil {
		return false
	}
	_, missing := s.unavailable[section]
	return !missing
}
