package multitoken

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// ErrRegistryExists is returned when a registry address is already taken
var ErrRegistryExists = errors.New("registry already exists")

// Receiver is notified when tokens arrive at an address it is registered for.
// Returning an error rejects the delivery and the transfer is reverted.
type Receiver interface {
	OnReceived(ctx context.Context, registry, operator, from common.Address, id, amount uint256.Int, data []byte) error
	OnBatchReceived(ctx context.Context, registry, operator, from common.Address, ids, amounts []uint256.Int, data []byte) error
}

// Directory keeps the registries of the process and the receivers that hold tokens in them
type Directory struct {
	mu         sync.RWMutex
	registries map[common.Address]*Registry
	receivers  map[common.Address]Receiver
}

// NewDirectory creates an empty directory
func NewDirectory() *Directory {
	return &Directory{
		registries: make(map[common.Address]*Registry),
		receivers:  make(map[common.Address]Receiver),
	}
}

// NewRegistry creates a registry at address and adds it to the directory
func (d *Directory) NewRegistry(address common.Address) (*Registry, error) {
	if address == (common.Address{}) {
		return nil, domain.ErrInvalidRecipient
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.registries[address]; ok {
		return nil, fmt.Errorf("%w: %s", ErrRegistryExists, address.Hex())
	}

	r := newRegistry(address, d)
	d.registries[address] = r
	return r, nil
}

// Lookup returns the registry at address
func (d *Directory) Lookup(address common.Address) (*Registry, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.registries[address]
	return r, ok
}

// Resolve returns the transfer capability of the registry at address
func (d *Directory) Resolve(address common.Address) (domain.ChildRegistry, error) {
	r, ok := d.Lookup(address)
	if !ok {
		return nil, domain.ErrUnknownRegistry
	}
	return r, nil
}

// Registries returns every registry address, sorted
func (d *Directory) Registries() []common.Address {
	d.mu.RLock()
	defer d.mu.RUnlock()

	addresses := make([]common.Address, 0, len(d.registries))
	for a := range d.registries {
		addresses = append(addresses, a)
	}
	slices.SortFunc(addresses, func(a, b common.Address) int {
		return a.Cmp(b)
	})
	return addresses
}

// RegisterReceiver routes deliveries to address through receiver
func (d *Directory) RegisterReceiver(address common.Address, receiver Receiver) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.receivers[address] = receiver
}

func (d *Directory) receiver(address common.Address) (Receiver, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	r, ok := d.receivers[address]
	return r, ok
}
