package ledger

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/adapter"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

// ParentRegistry is the view of the parent token registry the ledger consults.
// The ledger never writes parent ownership or approvals.
//
//go:generate mockgen -source=ledger.go -destination=../mocks/ledger.go -package=mocks -mock_names=ParentRegistry=MockParentRegistry,ChildRegistryResolver=MockChildRegistryResolver,Ledger=MockLedger
type ParentRegistry interface {
	// Exists reports whether the parent token has been minted
	Exists(ctx context.Context, parentID uint256.Int) (bool, error)
	// OwnerOf returns the parent token owner
	OwnerOf(ctx context.Context, parentID uint256.Int) (common.Address, error)
	// IsApprovedOrOwner reports whether caller owns the parent token or is approved for it
	IsApprovedOrOwner(ctx context.Context, caller common.Address, parentID uint256.Int) (bool, error)
}

// ChildRegistryResolver resolves a child registry reference to its transfer capability
type ChildRegistryResolver interface {
	Resolve(registry common.Address) (domain.ChildRegistry, error)
}

// Config holds the configuration for the ledger
type Config struct {
	// Address is the custody address the ledger occupies in child registries
	Address common.Address
}

// Ledger is the nested custody ledger. Child balances attach to parent tokens when a child
// registry delivers tokens to the ledger's address, and detach when an authorized caller
// moves them back out.
type Ledger interface {
	// Address returns the ledger's custody address
	Address() common.Address
	// Load rebuilds the in-memory balances and indices from the store
	Load(ctx context.Context) error

	// OnReceived attaches a single inbound child transfer to the parent named by data
	OnReceived(ctx context.Context, registry, operator, from common.Address, assetID, amount uint256.Int, data []byte) error
	// OnBatchReceived attaches an inbound batch transfer to the parent named by data, all or nothing
	OnBatchReceived(ctx context.Context, registry, operator, from common.Address, assetIDs, amounts []uint256.Int, data []byte) error

	// TransferChild detaches amount of a child token from a parent and sends it to the recipient
	TransferChild(ctx context.Context, caller common.Address, parentID uint256.Int, to, registry common.Address, assetID, amount uint256.Int, data []byte) error
	// TransferChildren detaches several child tokens of one registry from a parent, all or nothing
	TransferChildren(ctx context.Context, caller common.Address, parentID uint256.Int, to, registry common.Address, assetIDs, amounts []uint256.Int, data []byte) error

	// ChildBalance returns the attached balance, zero when nothing is attached
	ChildBalance(parentID uint256.Int, registry common.Address, assetID uint256.Int) uint256.Int
	// ChildRegistries returns the registries with a positive balance under the parent, in attach order
	ChildRegistries(parentID uint256.Int) []common.Address
	// ChildIDs returns the asset ids with a positive balance under the parent and registry, in attach order
	ChildIDs(parentID uint256.Int, registry common.Address) []uint256.Int

	// AttachedParents returns every parent holding at least one child, ascending
	AttachedParents() []uint256.Int
	// CheckConsistency verifies the indices of a parent against its balances
	CheckConsistency(parentID uint256.Int) error
}

type ledger struct {
	config     Config
	parents    ParentRegistry
	registries ChildRegistryResolver
	store      store.Store
	clock      adapter.Clock

	// opMu serializes operations. It stays held across the outbound registry call;
	// calls re-entering through that call carry the operation in their context.
	opMu sync.Mutex
	// mu guards state for readers
	mu         sync.RWMutex
	state      *state
	lastDigest []byte
}

// NewLedger creates a new ledger with empty state. Call Load to restore persisted state.
func NewLedger(cfg Config, parents ParentRegistry, registries ChildRegistryResolver, st store.Store, clock adapter.Clock) Ledger {
	return &ledger{
		config:     cfg,
		parents:    parents,
		registries: registries,
		store:      st,
		clock:      clock,
		state:      newState(),
	}
}

type operationKey struct{}

// begin enters an operation. A call made from inside an operation of the same ledger
// (an outbound transfer delivering tokens back to the ledger) joins it instead of waiting.
func (l *ledger) begin(ctx context.Context) (context.Context, func()) {
	if owner, _ := ctx.Value(operationKey{}).(*ledger); owner == l {
		return ctx, func() {}
	}
	l.opMu.Lock()
	return context.WithValue(ctx, operationKey{}, l), l.opMu.Unlock
}

// Address returns the ledger's custody address
func (l *ledger) Address() common.Address {
	return l.config.Address
}

// Load rebuilds the in-memory balances and indices from the store
func (l *ledger) Load(ctx context.Context) error {
	ctx, done := l.begin(ctx)
	defer done()

	snapshot, err := l.store.LoadLedger(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}

	st := newState()
	for _, m := range snapshot.Mutations {
		if err := st.apply(m); err != nil {
			return fmt.Errorf("failed to restore ledger: %w", err)
		}
	}

	l.mu.Lock()
	l.state = st
	l.lastDigest = snapshot.LastDigest
	l.mu.Unlock()

	logger.InfoCtx(ctx, "Ledger restored",
		zap.Int("balances", len(st.balances)),
		zap.Int("parents", len(st.registries)),
	)

	return nil
}

// OnReceived attaches a single inbound child transfer to the parent named by data
func (l *ledger) OnReceived(ctx context.Context, registry, operator, from common.Address, assetID, amount uint256.Int, data []byte) error {
	ctx, done := l.begin(ctx)
	defer done()

	parentID, err := domain.DecodeParentID(data)
	if err != nil {
		return err
	}
	if err := l.requireParent(ctx, parentID); err != nil {
		return err
	}

	p := newPlan(l.state)
	if err := p.credit(parentID, registry, assetID, amount); err != nil {
		return err
	}

	return l.commit(ctx, p, domain.NewChildReceivedEvent(from, parentID, registry, assetID, amount))
}

// OnBatchReceived attaches an inbound batch transfer to the parent named by data, all or nothing
func (l *ledger) OnBatchReceived(ctx context.Context, registry, operator, from common.Address, assetIDs, amounts []uint256.Int, data []byte) error {
	ctx, done := l.begin(ctx)
	defer done()

	parentID, err := domain.DecodeParentID(data)
	if err != nil {
		return err
	}
	if err := l.requireParent(ctx, parentID); err != nil {
		return err
	}
	if len(assetIDs) != len(amounts) {
		return domain.ErrArrayLengthMismatch
	}

	p := newPlan(l.state)
	for i := range assetIDs {
		if err := p.credit(parentID, registry, assetIDs[i], amounts[i]); err != nil {
			return err
		}
	}

	return l.commit(ctx, p, domain.NewChildrenReceivedEvent(from, parentID, registry, assetIDs, amounts))
}

// TransferChild detaches amount of a child token from a parent and sends it to the recipient.
// Balances, indices and the transfer event are committed before the child registry is called.
func (l *ledger) TransferChild(ctx context.Context, caller common.Address, parentID uint256.Int, to, registry common.Address, assetID, amount uint256.Int, data []byte) error {
	ctx, done := l.begin(ctx)
	defer done()

	if err := l.requireParent(ctx, parentID); err != nil {
		return err
	}
	if err := l.requireManager(ctx, caller, parentID); err != nil {
		return err
	}

	p := newPlan(l.state)
	if err := p.debit(parentID, registry, assetID, amount); err != nil {
		return err
	}

	child, err := l.resolve(registry)
	if err != nil {
		return err
	}

	event := domain.NewChildTransferredEvent(parentID, to, registry, assetID, amount)
	if err := l.commit(ctx, p, event); err != nil {
		return err
	}

	if err := child.SafeTransferFrom(ctx, l.config.Address, l.config.Address, to, assetID, amount, data); err != nil {
		return l.revert(ctx, err, p, event, parentID, registry, []uint256.Int{assetID}, []uint256.Int{amount})
	}

	return nil
}

// TransferChildren detaches several child tokens of one registry from a parent, all or nothing
func (l *ledger) TransferChildren(ctx context.Context, caller common.Address, parentID uint256.Int, to, registry common.Address, assetIDs, amounts []uint256.Int, data []byte) error {
	ctx, done := l.begin(ctx)
	defer done()

	if err := l.requireParent(ctx, parentID); err != nil {
		return err
	}
	if err := l.requireManager(ctx, caller, parentID); err != nil {
		return err
	}
	if len(assetIDs) != len(amounts) {
		return domain.ErrArrayLengthMismatch
	}

	p := newPlan(l.state)
	for i := range assetIDs {
		if err := p.debit(parentID, registry, assetIDs[i], amounts[i]); err != nil {
			return err
		}
	}

	child, err := l.resolve(registry)
	if err != nil {
		return err
	}

	event := domain.NewChildrenTransferredEvent(parentID, to, registry, assetIDs, amounts)
	if err := l.commit(ctx, p, event); err != nil {
		return err
	}

	if err := child.SafeBatchTransferFrom(ctx, l.config.Address, l.config.Address, to, assetIDs, amounts, data); err != nil {
		return l.revert(ctx, err, p, event, parentID, registry, assetIDs, amounts)
	}

	return nil
}

// ChildBalance returns the attached balance, zero when nothing is attached
func (l *ledger) ChildBalance(parentID uint256.Int, registry common.Address, assetID uint256.Int) uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.state.balance(childKey{parent: parentID, registry: registry, asset: assetID})
}

// ChildRegistries returns the registries with a positive balance under the parent, in attach order
func (l *ledger) ChildRegistries(parentID uint256.Int) []common.Address {
	l.mu.RLock()
	defer l.mu.RUnlock()

	set, ok := l.state.registries[parentID]
	if !ok {
		return []common.Address{}
	}
	return set.snapshot()
}

// ChildIDs returns the asset ids with a positive balance under the parent and registry, in attach order
func (l *ledger) ChildIDs(parentID uint256.Int, registry common.Address) []uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	set, ok := l.state.assets[registryKey{parent: parentID, registry: registry}]
	if !ok {
		return []uint256.Int{}
	}
	return set.snapshot()
}

// AttachedParents returns every parent holding at least one child, ascending
func (l *ledger) AttachedParents() []uint256.Int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	parents := make([]uint256.Int, 0, len(l.state.registries))
	for id := range l.state.registries {
		parents = append(parents, id)
	}
	slices.SortFunc(parents, func(a, b uint256.Int) int {
		return a.Cmp(&b)
	})
	return parents
}

// requireParent fails with ErrUnknownParent when the parent has not been minted
func (l *ledger) requireParent(ctx context.Context, parentID uint256.Int) error {
	exists, err := l.parents.Exists(ctx, parentID)
	if err != nil {
		return fmt.Errorf("failed to check parent %s: %w", parentID.Dec(), err)
	}
	if !exists {
		return domain.ErrUnknownParent
	}
	return nil
}

// requireManager is the authorization guard shared by every detach variant
func (l *ledger) requireManager(ctx context.Context, caller common.Address, parentID uint256.Int) error {
	ok, err := l.parents.IsApprovedOrOwner(ctx, caller, parentID)
	if err != nil {
		return fmt.Errorf("failed to check approval for parent %s: %w", parentID.Dec(), err)
	}
	if !ok {
		return domain.ErrNotAuthorized
	}
	return nil
}

func (l *ledger) resolve(registry common.Address) (domain.ChildRegistry, error) {
	child, err := l.registries.Resolve(registry)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrUnknownRegistry, registry.Hex(), err)
	}
	return child, nil
}

// commit persists the plan and events in one store transaction, then applies the plan
// to the in-memory state. On store failure nothing changes.
func (l *ledger) commit(ctx context.Context, p *plan, events ...*domain.LedgerEvent) error {
	if p.empty() && len(events) == 0 {
		return nil
	}

	now := l.clock.Now().UTC()
	prev := l.lastDigest
	for _, event := range events {
		event.EventID = ulid.MustNewDefault(now).String()
		event.Timestamp = now

		digest, err := domain.ChainDigest(prev, event)
		if err != nil {
			return fmt.Errorf("failed to digest event: %w", err)
		}
		event.Digest = hex.EncodeToString(digest)
		prev = digest
	}

	err := l.store.CommitLedger(ctx, store.CommitLedgerInput{
		Mutations: p.mutations,
		Events:    events,
	})
	if err != nil {
		return fmt.Errorf("failed to commit ledger changes: %w", err)
	}

	l.mu.Lock()
	for _, m := range p.mutations {
		if err := l.state.apply(m); err != nil {
			// the store already holds the change; the next Load realigns memory with it
			logger.ErrorCtx(ctx, fmt.Errorf("failed to apply committed mutation: %w", err),
				zap.String("parent_id", m.ParentID.Dec()),
				zap.String("registry", m.Registry.Hex()),
			)
		}
	}
	l.lastDigest = prev
	l.mu.Unlock()

	for _, event := range events {
		logger.DebugCtx(ctx, "Ledger event committed",
			zap.String("event_id", event.EventID),
			zap.String("type", string(event.Type)),
			zap.Uint64("sequence", event.Sequence),
			zap.String("parent_id", event.ParentID),
			zap.String("registry", event.Registry),
		)
	}

	return nil
}

// revert undoes a committed detach whose outbound transfer failed. The amounts are credited back
// with every removed index entry restored at its old position, and the detach event is compensated
// by a transfer_reverted event in the same commit.
func (l *ledger) revert(ctx context.Context, cause error, detach *plan, event *domain.LedgerEvent, parentID uint256.Int, registry common.Address, assetIDs, amounts []uint256.Int) error {
	logger.WarnCtx(ctx, "Child registry transfer failed, reverting detach",
		zap.Error(cause),
		zap.String("event_id", event.EventID),
		zap.String("parent_id", parentID.Dec()),
		zap.String("registry", registry.Hex()),
	)

	transferErr := fmt.Errorf("failed to transfer child tokens: %w", cause)

	p := newRevertPlan(l.state, detach)
	for i := range assetIDs {
		if err := p.credit(parentID, registry, assetIDs[i], amounts[i]); err != nil {
			return errors.Join(transferErr, fmt.Errorf("failed to plan revert: %w", err))
		}
	}
	if err := l.commit(ctx, p, domain.NewTransferRevertedEvent(event)); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to revert detach: %w", err),
			zap.String("event_id", event.EventID),
			zap.String("parent_id", parentID.Dec()),
			zap.String("registry", registry.Hex()),
		)
		return errors.Join(transferErr, err)
	}

	return transferErr
}
