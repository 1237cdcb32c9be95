package multitoken

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
)

// Registry is an in-process multi-token registry: every holder has a fungible balance per
// token id. Deliveries to an address with a registered Receiver invoke its hook after the
// balances have moved; a failing hook reverts the delivery.
type Registry struct {
	address   common.Address
	directory *Directory

	mu        sync.Mutex
	balances  map[uint256.Int]map[common.Address]uint256.Int
	operators map[common.Address]map[common.Address]struct{}
}

func newRegistry(address common.Address, directory *Directory) *Registry {
	return &Registry{
		address:   address,
		directory: directory,
		balances:  make(map[uint256.Int]map[common.Address]uint256.Int),
		operators: make(map[common.Address]map[common.Address]struct{}),
	}
}

// Address returns the registry's own address
func (r *Registry) Address() common.Address {
	return r.address
}

// BalanceOf returns the balance of owner for id
func (r *Registry) BalanceOf(owner common.Address, id uint256.Int) uint256.Int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.balances[id][owner]
}

// BalanceOfBatch returns the balance of each (owner, id) pair
func (r *Registry) BalanceOfBatch(owners []common.Address, ids []uint256.Int) ([]uint256.Int, error) {
	if len(owners) != len(ids) {
		return nil, domain.ErrArrayLengthMismatch
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]uint256.Int, len(owners))
	for i := range owners {
		out[i] = r.balances[ids[i]][owners[i]]
	}
	return out, nil
}

// SetApprovalForAll lets operator move every token of owner
func (r *Registry) SetApprovalForAll(ctx context.Context, owner, operator common.Address, approved bool) error {
	if owner == operator {
		return domain.ErrInvalidApproval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if approved {
		if r.operators[owner] == nil {
			r.operators[owner] = make(map[common.Address]struct{})
		}
		r.operators[owner][operator] = struct{}{}
		return nil
	}

	delete(r.operators[owner], operator)
	return nil
}

// IsApprovedForAll reports whether operator may move every token of owner
func (r *Registry) IsApprovedForAll(owner, operator common.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.operators[owner][operator]
	return ok
}

// Mint creates amount of id for to
func (r *Registry) Mint(ctx context.Context, operator, to common.Address, id, amount uint256.Int, data []byte) error {
	return r.mint(ctx, operator, to, []uint256.Int{id}, []uint256.Int{amount}, data, false)
}

// MintBatch creates several ids for to at once
func (r *Registry) MintBatch(ctx context.Context, operator, to common.Address, ids, amounts []uint256.Int, data []byte) error {
	if len(ids) != len(amounts) {
		return domain.ErrArrayLengthMismatch
	}
	return r.mint(ctx, operator, to, ids, amounts, data, true)
}

func (r *Registry) mint(ctx context.Context, operator, to common.Address, ids, amounts []uint256.Int, data []byte, batch bool) error {
	if to == (common.Address{}) {
		return domain.ErrInvalidRecipient
	}

	r.mu.Lock()
	m := r.newMove(common.Address{}, to)
	for i := range ids {
		if err := m.add(ids[i], amounts[i]); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	m.apply()
	r.mu.Unlock()

	logger.DebugCtx(ctx, "Tokens minted",
		zap.String("registry", r.address.Hex()),
		zap.String("to", to.Hex()),
		zap.Strings("ids", domain.DecimalStrings(ids)),
	)

	return r.deliver(ctx, m, operator, ids, amounts, data, batch)
}

// SafeTransferFrom moves amount of id from one holder to another. The operator must be the
// holder or one of its approved operators.
func (r *Registry) SafeTransferFrom(ctx context.Context, operator, from, to common.Address, id, amount uint256.Int, data []byte) error {
	return r.transfer(ctx, operator, from, to, []uint256.Int{id}, []uint256.Int{amount}, data, false)
}

// SafeBatchTransferFrom moves several ids at once, all or nothing
func (r *Registry) SafeBatchTransferFrom(ctx context.Context, operator, from, to common.Address, ids, amounts []uint256.Int, data []byte) error {
	if len(ids) != len(amounts) {
		return domain.ErrArrayLengthMismatch
	}
	return r.transfer(ctx, operator, from, to, ids, amounts, data, true)
}

func (r *Registry) transfer(ctx context.Context, operator, from, to common.Address, ids, amounts []uint256.Int, data []byte, batch bool) error {
	if to == (common.Address{}) {
		return domain.ErrInvalidRecipient
	}

	r.mu.Lock()
	if operator != from {
		if _, ok := r.operators[from][operator]; !ok {
			r.mu.Unlock()
			return domain.ErrTransferNotAllowed
		}
	}

	m := r.newMove(from, to)
	for i := range ids {
		if err := m.add(ids[i], amounts[i]); err != nil {
			r.mu.Unlock()
			return err
		}
	}
	m.apply()
	r.mu.Unlock()

	logger.DebugCtx(ctx, "Tokens transferred",
		zap.String("registry", r.address.Hex()),
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
		zap.Strings("ids", domain.DecimalStrings(ids)),
	)

	return r.deliver(ctx, m, operator, ids, amounts, data, batch)
}

// deliver runs the receiver hook of the recipient, if any, without holding the lock so the
// hook may call back into the registry. A rejected delivery is reverted.
func (r *Registry) deliver(ctx context.Context, m *move, operator common.Address, ids, amounts []uint256.Int, data []byte, batch bool) error {
	receiver, ok := r.directory.receiver(m.to)
	if !ok {
		return nil
	}

	var err error
	if batch {
		err = receiver.OnBatchReceived(ctx, r.address, operator, m.from, ids, amounts, data)
	} else {
		err = receiver.OnReceived(ctx, r.address, operator, m.from, ids[0], amounts[0], data)
	}
	if err == nil {
		return nil
	}

	rejected := fmt.Errorf("receiver rejected tokens: %w", err)

	r.mu.Lock()
	defer r.mu.Unlock()

	back := r.newMove(m.to, m.from)
	for i := range ids {
		if addErr := back.add(ids[i], amounts[i]); addErr != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to revert rejected delivery: %w", addErr),
				zap.String("registry", r.address.Hex()),
				zap.String("to", m.to.Hex()),
			)
			return errors.Join(rejected, addErr)
		}
	}
	back.apply()

	return rejected
}

// move stages balance changes from one holder to another. The zero address stands for
// minting on the sending side and burning on the receiving side.
type move struct {
	r        *Registry
	from, to common.Address
	staged   map[uint256.Int][2]uint256.Int
	order    []uint256.Int
}

func (r *Registry) newMove(from, to common.Address) *move {
	return &move{r: r, from: from, to: to, staged: make(map[uint256.Int][2]uint256.Int)}
}

func (m *move) add(id, amount uint256.Int) error {
	pair, ok := m.staged[id]
	if !ok {
		pair = [2]uint256.Int{m.r.balances[id][m.from], m.r.balances[id][m.to]}
		m.order = append(m.order, id)
	}

	minting := m.from == (common.Address{})
	if !minting && pair[0].Lt(&amount) {
		return domain.ErrInsufficientBalance
	}
	// a holder sending to itself keeps its balance
	if m.from == m.to {
		m.staged[id] = pair
		return nil
	}
	if !minting {
		pair[0].Sub(&pair[0], &amount)
	}
	if m.to != (common.Address{}) {
		if _, overflow := pair[1].AddOverflow(&pair[1], &amount); overflow {
			return domain.ErrBalanceOverflow
		}
	}

	m.staged[id] = pair
	return nil
}

func (m *move) apply() {
	for _, id := range m.order {
		pair := m.staged[id]
		holders := m.r.balances[id]
		if holders == nil {
			holders = make(map[common.Address]uint256.Int)
			m.r.balances[id] = holders
		}
		if m.from != (common.Address{}) {
			setOrDelete(holders, m.from, pair[0])
		}
		if m.to != (common.Address{}) {
			setOrDelete(holders, m.to, pair[1])
		}
		if len(holders) == 0 {
			delete(m.r.balances, id)
		}
	}
}

func setOrDelete(holders map[common.Address]uint256.Int, holder common.Address, balance uint256.Int) {
	if balance.IsZero() {
		delete(holders, holder)
		return
	}
	holders[holder] = balance
}
