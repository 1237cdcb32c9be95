package ledger

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// childKey addresses one balance record in the arena
type childKey struct {
	parent   uint256.Int
	registry common.Address
	asset    uint256.Int
}

// registryKey addresses the asset id index of one (parent, registry) pair
type registryKey struct {
	parent   uint256.Int
	registry common.Address
}

// state is the nested balance arena and its enumeration indices.
// Zero balances are never stored; index membership mirrors a positive balance.
type state struct {
	balances   map[childKey]uint256.Int
	registries map[uint256.Int]*orderedSet[common.Address]
	assets     map[registryKey]*orderedSet[uint256.Int]
	// next is the next unused index position, shared by both indices
	next uint64
}

func newState() *state {
	return &state{
		balances:   make(map[childKey]uint256.Int),
		registries: make(map[uint256.Int]*orderedSet[common.Address]),
		assets:     make(map[registryKey]*orderedSet[uint256.Int]),
		next:       1,
	}
}

func (s *state) registryPosition(k registryKey) (uint64, bool) {
	if set, ok := s.registries[k.parent]; ok {
		return set.position(k.registry)
	}
	return 0, false
}

func (s *state) assetPosition(k childKey) (uint64, bool) {
	if set, ok := s.assets[registryKey{parent: k.parent, registry: k.registry}]; ok {
		return set.position(k.asset)
	}
	return 0, false
}

// claim returns the position an add mutation inserts at and advances next past it
func (s *state) claim(position uint64) uint64 {
	if position == 0 {
		position = s.next
	}
	if position >= s.next {
		s.next = position + 1
	}
	return position
}

func (s *state) balance(k childKey) uint256.Int {
	return s.balances[k]
}

func (s *state) assetCount(k registryKey) int {
	if set, ok := s.assets[k]; ok {
		return set.len()
	}
	return 0
}

// apply performs one mutation. Mutations come from a validated plan, so an inconsistent
// mutation indicates a bug and is reported rather than silently ignored.
func (s *state) apply(m domain.LedgerMutation) error {
	switch m.Kind {
	case domain.MutationSetBalance:
		k := childKey{parent: m.ParentID, registry: m.Registry, asset: m.AssetID}
		if m.Balance.IsZero() {
			delete(s.balances, k)
		} else {
			s.balances[k] = m.Balance
		}

	case domain.MutationAddRegistry:
		set, ok := s.registries[m.ParentID]
		if !ok {
			set = newOrderedSet[common.Address]()
			s.registries[m.ParentID] = set
		}
		if position := s.claim(m.Position); !set.add(m.Registry, position) {
			return fmt.Errorf("registry %s already indexed under parent %s or position %d taken", m.Registry.Hex(), m.ParentID.Dec(), position)
		}

	case domain.MutationRemoveRegistry:
		set, ok := s.registries[m.ParentID]
		if !ok {
			return fmt.Errorf("registry %s not indexed under parent %s", m.Registry.Hex(), m.ParentID.Dec())
		}
		if _, removed := set.remove(m.Registry); !removed {
			return fmt.Errorf("registry %s not indexed under parent %s", m.Registry.Hex(), m.ParentID.Dec())
		}
		if set.len() == 0 {
			delete(s.registries, m.ParentID)
		}

	case domain.MutationAddAsset:
		k := registryKey{parent: m.ParentID, registry: m.Registry}
		set, ok := s.assets[k]
		if !ok {
			set = newOrderedSet[uint256.Int]()
			s.assets[k] = set
		}
		if position := s.claim(m.Position); !set.add(m.AssetID, position) {
			return fmt.Errorf("asset %s already indexed under parent %s registry %s or position %d taken", m.AssetID.Dec(), m.ParentID.Dec(), m.Registry.Hex(), position)
		}

	case domain.MutationRemoveAsset:
		k := registryKey{parent: m.ParentID, registry: m.Registry}
		set, ok := s.assets[k]
		if !ok {
			return fmt.Errorf("asset %s not indexed under parent %s registry %s", m.AssetID.Dec(), m.ParentID.Dec(), m.Registry.Hex())
		}
		if _, removed := set.remove(m.AssetID); !removed {
			return fmt.Errorf("asset %s not indexed under parent %s registry %s", m.AssetID.Dec(), m.ParentID.Dec(), m.Registry.Hex())
		}
		if set.len() == 0 {
			delete(s.assets, k)
		}

	default:
		return fmt.Errorf("unknown mutation kind: %s", m.Kind)
	}

	return nil
}
