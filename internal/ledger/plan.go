package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// plan stages the effect of one operation against a read-only view of the state.
// Every credit and debit is validated against the balances as they would be after the
// preceding steps of the same plan, so a batch is checked cumulatively. Nothing touches
// the state until the plan is committed.
type plan struct {
	st        *state
	balances  map[childKey]uint256.Int
	counts    map[registryKey]int
	mutations []domain.LedgerMutation

	// next is the next index position this plan hands out, zero until the first one
	next uint64
	// positions of index entries added by this plan
	registryPositions map[registryKey]uint64
	assetPositions    map[childKey]uint64
	// positions to reuse when an entry removed by a reverted plan is indexed again
	restoreRegistries map[registryKey]uint64
	restoreAssets     map[childKey]uint64
}

func newPlan(st *state) *plan {
	return &plan{
		st:                st,
		balances:          make(map[childKey]uint256.Int),
		counts:            make(map[registryKey]int),
		registryPositions: make(map[registryKey]uint64),
		assetPositions:    make(map[childKey]uint64),
	}
}

// newRevertPlan prepares a plan that re-indexes entries removed by detach at the positions
// they held, so crediting the detached amounts back restores the original order
func newRevertPlan(st *state, detach *plan) *plan {
	p := newPlan(st)
	p.restoreRegistries = make(map[registryKey]uint64)
	p.restoreAssets = make(map[childKey]uint64)
	for _, m := range detach.mutations {
		switch m.Kind {
		case domain.MutationRemoveRegistry:
			p.restoreRegistries[registryKey{parent: m.ParentID, registry: m.Registry}] = m.Position
		case domain.MutationRemoveAsset:
			p.restoreAssets[childKey{parent: m.ParentID, registry: m.Registry, asset: m.AssetID}] = m.Position
		}
	}
	return p
}

func (p *plan) balance(k childKey) uint256.Int {
	if b, ok := p.balances[k]; ok {
		return b
	}
	return p.st.balance(k)
}

func (p *plan) assetCount(k registryKey) int {
	if c, ok := p.counts[k]; ok {
		return c
	}
	return p.st.assetCount(k)
}

func (p *plan) allocate() uint64 {
	if p.next == 0 {
		p.next = p.st.next
	}
	n := p.next
	p.next++
	return n
}

func (p *plan) registryPosition(k registryKey) uint64 {
	if pos, ok := p.registryPositions[k]; ok {
		return pos
	}
	pos, _ := p.st.registryPosition(k)
	return pos
}

func (p *plan) assetPosition(k childKey) uint64 {
	if pos, ok := p.assetPositions[k]; ok {
		return pos
	}
	pos, _ := p.st.assetPosition(k)
	return pos
}

// credit adds amount to a balance. A zero credit leaves balances and indices untouched.
func (p *plan) credit(parent uint256.Int, registry common.Address, asset, amount uint256.Int) error {
	if amount.IsZero() {
		return nil
	}

	k := childKey{parent: parent, registry: registry, asset: asset}
	before := p.balance(k)
	var after uint256.Int
	if _, overflow := after.AddOverflow(&before, &amount); overflow {
		return domain.ErrBalanceOverflow
	}

	if before.IsZero() {
		rk := registryKey{parent: parent, registry: registry}
		count := p.assetCount(rk)
		if count == 0 {
			pos, ok := p.restoreRegistries[rk]
			if !ok {
				pos = p.allocate()
			}
			p.registryPositions[rk] = pos
			p.mutations = append(p.mutations, domain.LedgerMutation{
				Kind:     domain.MutationAddRegistry,
				ParentID: parent,
				Registry: registry,
				Position: pos,
			})
		}
		pos, ok := p.restoreAssets[k]
		if !ok {
			pos = p.allocate()
		}
		p.assetPositions[k] = pos
		p.mutations = append(p.mutations, domain.LedgerMutation{
			Kind:     domain.MutationAddAsset,
			ParentID: parent,
			Registry: registry,
			AssetID:  asset,
			Position: pos,
		})
		p.counts[rk] = count + 1
	}

	p.setBalance(k, after)
	return nil
}

// debit subtracts amount from an attached balance. The asset must be attached and the
// amount must be positive and covered by the balance.
func (p *plan) debit(parent uint256.Int, registry common.Address, asset, amount uint256.Int) error {
	k := childKey{parent: parent, registry: registry, asset: asset}
	before := p.balance(k)
	if before.IsZero() {
		return domain.ErrChildNotAttached
	}
	if amount.IsZero() || before.Lt(&amount) {
		return domain.ErrInsufficientOrZeroAmount
	}

	var after uint256.Int
	after.Sub(&before, &amount)
	p.setBalance(k, after)

	if after.IsZero() {
		rk := registryKey{parent: parent, registry: registry}
		p.mutations = append(p.mutations, domain.LedgerMutation{
			Kind:     domain.MutationRemoveAsset,
			ParentID: parent,
			Registry: registry,
			AssetID:  asset,
			Position: p.assetPosition(k),
		})
		delete(p.assetPositions, k)
		count := p.assetCount(rk) - 1
		p.counts[rk] = count
		if count == 0 {
			p.mutations = append(p.mutations, domain.LedgerMutation{
				Kind:     domain.MutationRemoveRegistry,
				ParentID: parent,
				Registry: registry,
				Position: p.registryPosition(rk),
			})
			delete(p.registryPositions, rk)
		}
	}

	return nil
}

func (p *plan) setBalance(k childKey, b uint256.Int) {
	p.balances[k] = b
	p.mutations = append(p.mutations, domain.LedgerMutation{
		Kind:     domain.MutationSetBalance,
		ParentID: k.parent,
		Registry: k.registry,
		AssetID:  k.asset,
		Balance:  b,
	})
}

func (p *plan) empty() bool {
	return len(p.mutations) == 0
}
