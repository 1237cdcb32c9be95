package ledger

import (
	"errors"
	"fmt"

	"github.com/holiman/uint256"
)

// ErrIndexInconsistent is returned when a parent's indices disagree with its balances
var ErrIndexInconsistent = errors.New("child index inconsistent with balances")

// CheckConsistency verifies, for one parent, that every indexed registry has a non-empty id
// index, that every indexed id has a positive balance, and that every positive balance is indexed.
func (l *ledger) CheckConsistency(parentID uint256.Int) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	st := l.state
	registries := st.registries[parentID]

	if registries != nil {
		for _, registry := range registries.items {
			assets, ok := st.assets[registryKey{parent: parentID, registry: registry}]
			if !ok || assets.len() == 0 {
				return fmt.Errorf("%w: parent %s registry %s indexed without assets", ErrIndexInconsistent, parentID.Dec(), registry.Hex())
			}
			for _, asset := range assets.items {
				b := st.balance(childKey{parent: parentID, registry: registry, asset: asset})
				if b.IsZero() {
					return fmt.Errorf("%w: parent %s registry %s asset %s indexed with zero balance", ErrIndexInconsistent, parentID.Dec(), registry.Hex(), asset.Dec())
				}
			}
		}
	}

	for k := range st.assets {
		if k.parent != parentID {
			continue
		}
		if registries == nil || !registries.contains(k.registry) {
			return fmt.Errorf("%w: parent %s registry %s has assets but is not indexed", ErrIndexInconsistent, parentID.Dec(), k.registry.Hex())
		}
	}

	for k, b := range st.balances {
		if k.parent != parentID {
			continue
		}
		if b.IsZero() {
			return fmt.Errorf("%w: parent %s registry %s asset %s stored with zero balance", ErrIndexInconsistent, parentID.Dec(), k.registry.Hex(), k.asset.Dec())
		}
		assets, ok := st.assets[registryKey{parent: k.parent, registry: k.registry}]
		if !ok || !assets.contains(k.asset) {
			return fmt.Errorf("%w: parent %s registry %s asset %s has balance but is not indexed", ErrIndexInconsistent, parentID.Dec(), k.registry.Hex(), k.asset.Dec())
		}
	}

	return nil
}
