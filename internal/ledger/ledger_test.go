package ledger_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/ledger"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/mocks"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

var (
	ledgerAddress = common.HexToAddress("0x00000000000000000000000000000000000000a1")
	registryA     = common.HexToAddress("0x00000000000000000000000000000000000000c1")
	registryB     = common.HexToAddress("0x00000000000000000000000000000000000000c2")
	alice         = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob           = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	mallory       = common.HexToAddress("0x0000000000000000000000000000000000000bad")
)

func u(n uint64) uint256.Int {
	return *uint256.NewInt(n)
}

func us(ns ...uint64) []uint256.Int {
	out := make([]uint256.Int, len(ns))
	for i, n := range ns {
		out[i] = u(n)
	}
	return out
}

func parentData(n uint64) []byte {
	return domain.EncodeParentID(u(n))
}

// testLedgerMocks contains all the mocks needed for testing the ledger
type testLedgerMocks struct {
	ctrl       *gomock.Controller
	parents    *mocks.MockParentRegistry
	resolver   *mocks.MockChildRegistryResolver
	store      *mocks.MockStore
	clock      *mocks.MockClock
	childA     *mocks.MockChildRegistry
	ledger     ledger.Ledger
	committed  []store.CommitLedgerInput
	commitFail error
}

// setupTestLedger creates all the mocks and a ledger whose store records every commit
func setupTestLedger(t *testing.T) *testLedgerMocks {
	ctrl := gomock.NewController(t)

	tm := &testLedgerMocks{
		ctrl:     ctrl,
		parents:  mocks.NewMockParentRegistry(ctrl),
		resolver: mocks.NewMockChildRegistryResolver(ctrl),
		store:    mocks.NewMockStore(ctrl),
		clock:    mocks.NewMockClock(ctrl),
		childA:   mocks.NewMockChildRegistry(ctrl),
	}

	tm.clock.EXPECT().Now().Return(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)).AnyTimes()
	tm.store.EXPECT().
		CommitLedger(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input store.CommitLedgerInput) error {
			if tm.commitFail != nil {
				return tm.commitFail
			}
			for _, e := range input.Events {
				e.Sequence = uint64(len(tm.committed) + 1)
			}
			tm.committed = append(tm.committed, input)
			return nil
		}).
		AnyTimes()

	tm.ledger = ledger.NewLedger(ledger.Config{Address: ledgerAddress}, tm.parents, tm.resolver, tm.store, tm.clock)

	return tm
}

func (tm *testLedgerMocks) parentExists(ids ...uint64) {
	for _, id := range ids {
		tm.parents.EXPECT().Exists(gomock.Any(), u(id)).Return(true, nil).AnyTimes()
	}
}

func (tm *testLedgerMocks) manager(caller common.Address, id uint64, ok bool) {
	tm.parents.EXPECT().IsApprovedOrOwner(gomock.Any(), caller, u(id)).Return(ok, nil).AnyTimes()
}

func (tm *testLedgerMocks) attach(t *testing.T, parent uint64, registry common.Address, asset, amount uint64) {
	t.Helper()
	err := tm.ledger.OnReceived(context.Background(), registry, alice, alice, u(asset), u(amount), parentData(parent))
	require.NoError(t, err)
}

func (tm *testLedgerMocks) lastEvents() []*domain.LedgerEvent {
	for i := len(tm.committed) - 1; i >= 0; i-- {
		if len(tm.committed[i].Events) > 0 {
			return tm.committed[i].Events
		}
	}
	return nil
}

// journal returns every committed event in commit order
func (tm *testLedgerMocks) journal() []*domain.LedgerEvent {
	var out []*domain.LedgerEvent
	for _, c := range tm.committed {
		out = append(out, c.Events...)
	}
	return out
}

func eventTypes(events []*domain.LedgerEvent) []domain.EventType {
	out := make([]domain.EventType, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func kinds(ms []domain.LedgerMutation) []domain.MutationKind {
	out := make([]domain.MutationKind, len(ms))
	for i, m := range ms {
		out[i] = m.Kind
	}
	return out
}

func TestLedger_OnReceived(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	tm.attach(t, 1, registryA, 7, 5)

	assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, []common.Address{registryA}, tm.ledger.ChildRegistries(u(1)))
	assert.Equal(t, us(7), tm.ledger.ChildIDs(u(1), registryA))

	require.Len(t, tm.committed, 1)
	assert.Equal(t, []domain.MutationKind{
		domain.MutationAddRegistry,
		domain.MutationAddAsset,
		domain.MutationSetBalance,
	}, kinds(tm.committed[0].Mutations))

	events := tm.committed[0].Events
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeChildReceived, events[0].Type)
	assert.Equal(t, alice.Hex(), events[0].From)
	assert.Equal(t, "1", events[0].ParentID)
	assert.Equal(t, registryA.Hex(), events[0].Registry)
	assert.Equal(t, "7", events[0].AssetID)
	assert.Equal(t, "5", events[0].Amount)
	assert.NotEmpty(t, events[0].EventID)
	assert.NotEmpty(t, events[0].Digest)

	// a second credit only moves the balance
	tm.attach(t, 1, registryA, 7, 3)
	assert.Equal(t, u(8), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, []domain.MutationKind{domain.MutationSetBalance}, kinds(tm.committed[1].Mutations))
	assert.Equal(t, us(7), tm.ledger.ChildIDs(u(1), registryA))
}

func TestLedger_OnReceived_DigestChain(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	tm.attach(t, 1, registryA, 7, 5)
	tm.attach(t, 1, registryA, 8, 1)

	events := []*domain.LedgerEvent{tm.committed[0].Events[0], tm.committed[1].Events[0]}
	broken, err := domain.VerifyDigestChain(nil, events)
	require.NoError(t, err)
	assert.Equal(t, -1, broken)
}

func TestLedger_OnReceived_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		setup   func(tm *testLedgerMocks)
		wantErr error
	}{
		{
			name:    "data too short",
			data:    make([]byte, 31),
			wantErr: domain.ErrMalformedData,
		},
		{
			name:    "data too long",
			data:    make([]byte, 64),
			wantErr: domain.ErrMalformedData,
		},
		{
			name:    "empty data",
			data:    nil,
			wantErr: domain.ErrMalformedData,
		},
		{
			name: "unknown parent",
			data: parentData(9),
			setup: func(tm *testLedgerMocks) {
				tm.parents.EXPECT().Exists(gomock.Any(), u(9)).Return(false, nil)
			},
			wantErr: domain.ErrUnknownParent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tm.ctrl.Finish()
			if tt.setup != nil {
				tt.setup(tm)
			}

			err := tm.ledger.OnReceived(context.Background(), registryA, alice, alice, u(7), u(5), tt.data)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, tm.committed)
		})
	}
}

func TestLedger_OnReceived_ParentLookupFailure(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	lookupErr := errors.New("registry unavailable")
	tm.parents.EXPECT().Exists(gomock.Any(), u(1)).Return(false, lookupErr)

	err := tm.ledger.OnReceived(context.Background(), registryA, alice, alice, u(7), u(5), parentData(1))
	assert.ErrorIs(t, err, lookupErr)
	assert.Empty(t, tm.committed)
}

func TestLedger_OnReceived_ZeroAmount(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	tm.attach(t, 1, registryA, 7, 0)

	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Empty(t, tm.ledger.ChildRegistries(u(1)))
	assert.Empty(t, tm.ledger.ChildIDs(u(1), registryA))

	require.Len(t, tm.committed, 1)
	assert.Empty(t, tm.committed[0].Mutations)
	require.Len(t, tm.committed[0].Events, 1)
	assert.Equal(t, "0", tm.committed[0].Events[0].Amount)
}

func TestLedger_OnReceived_StoreFailureLeavesStateUntouched(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	tm.commitFail = errors.New("connection reset")
	err := tm.ledger.OnReceived(context.Background(), registryA, alice, alice, u(7), u(5), parentData(1))
	assert.ErrorIs(t, err, tm.commitFail)

	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Empty(t, tm.ledger.ChildRegistries(u(1)))
	assert.Empty(t, tm.ledger.AttachedParents())
}

func TestLedger_OnReceived_Overflow(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	maxAmount := new(uint256.Int).SetAllOne()
	err := tm.ledger.OnReceived(context.Background(), registryA, alice, alice, u(7), *maxAmount, parentData(1))
	require.NoError(t, err)

	err = tm.ledger.OnReceived(context.Background(), registryA, alice, alice, u(7), u(1), parentData(1))
	assert.ErrorIs(t, err, domain.ErrBalanceOverflow)
	assert.Equal(t, *maxAmount, tm.ledger.ChildBalance(u(1), registryA, u(7)))
}

func TestLedger_OnBatchReceived(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)

	err := tm.ledger.OnBatchReceived(context.Background(), registryA, alice, bob, us(7, 8, 7, 9), us(1, 2, 3, 0), parentData(1))
	require.NoError(t, err)

	assert.Equal(t, u(4), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, u(2), tm.ledger.ChildBalance(u(1), registryA, u(8)))
	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(9)))
	assert.Equal(t, us(7, 8), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []common.Address{registryA}, tm.ledger.ChildRegistries(u(1)))

	events := tm.lastEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeChildrenReceived, events[0].Type)
	assert.Equal(t, bob.Hex(), events[0].From)
	assert.Equal(t, []string{"7", "8", "7", "9"}, events[0].AssetIDs)
	assert.Equal(t, []string{"1", "2", "3", "0"}, events[0].Amounts)
}

func TestLedger_OnBatchReceived_Errors(t *testing.T) {
	t.Run("malformed data is checked first", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		err := tm.ledger.OnBatchReceived(context.Background(), registryA, alice, alice, us(1), us(1, 2), []byte{1})
		assert.ErrorIs(t, err, domain.ErrMalformedData)
	})

	t.Run("unknown parent before length mismatch", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()
		tm.parents.EXPECT().Exists(gomock.Any(), u(2)).Return(false, nil)

		err := tm.ledger.OnBatchReceived(context.Background(), registryA, alice, alice, us(1), us(1, 2), parentData(2))
		assert.ErrorIs(t, err, domain.ErrUnknownParent)
	})

	t.Run("length mismatch", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()
		tm.parentExists(1)

		err := tm.ledger.OnBatchReceived(context.Background(), registryA, alice, alice, us(1, 2), us(1), parentData(1))
		assert.ErrorIs(t, err, domain.ErrArrayLengthMismatch)
		assert.Empty(t, tm.committed)
	})

	t.Run("all or nothing", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()
		tm.parentExists(1)

		maxAmount := new(uint256.Int).SetAllOne()
		tm.attach(t, 1, registryA, 8, 1)

		err := tm.ledger.OnBatchReceived(context.Background(), registryA, alice, alice,
			[]uint256.Int{u(7), u(8)}, []uint256.Int{u(5), *maxAmount}, parentData(1))
		assert.ErrorIs(t, err, domain.ErrBalanceOverflow)

		assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
		assert.Equal(t, u(1), tm.ledger.ChildBalance(u(1), registryA, u(8)))
		assert.Equal(t, us(8), tm.ledger.ChildIDs(u(1), registryA))
		assert.Len(t, tm.committed, 1)
	})
}

func TestLedger_TransferChild(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil).AnyTimes()

	tm.attach(t, 1, registryA, 7, 5)
	tm.attach(t, 1, registryA, 8, 1)

	tm.childA.EXPECT().
		SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, u(7), u(2), []byte("memo")).
		DoAndReturn(func(ctx context.Context, operator, from, to common.Address, id, amount uint256.Int, data []byte) error {
			// the debit and its event are committed when the registry is called
			assert.Equal(t, u(3), tm.ledger.ChildBalance(u(1), registryA, u(7)))
			require.Len(t, tm.committed, 3)
			assert.Equal(t, []domain.EventType{domain.EventTypeChildTransferred}, eventTypes(tm.committed[2].Events))
			return nil
		})

	err := tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(7), u(2), []byte("memo"))
	require.NoError(t, err)
	assert.Len(t, tm.committed, 3)
	assert.Equal(t, u(3), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, us(7, 8), tm.ledger.ChildIDs(u(1), registryA))

	events := tm.lastEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeChildTransferred, events[0].Type)
	assert.Equal(t, bob.Hex(), events[0].To)
	assert.Equal(t, "7", events[0].AssetID)
	assert.Equal(t, "2", events[0].Amount)

	// draining a balance removes the id and keeps the order of the rest
	tm.childA.EXPECT().SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, u(7), u(3), gomock.Any()).Return(nil)
	require.NoError(t, tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(7), u(3), nil))
	assert.Equal(t, us(8), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []common.Address{registryA}, tm.ledger.ChildRegistries(u(1)))

	// draining the last id removes the registry
	tm.childA.EXPECT().SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, u(8), u(1), gomock.Any()).Return(nil)
	require.NoError(t, tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(8), u(1), nil))
	assert.Empty(t, tm.ledger.ChildIDs(u(1), registryA))
	assert.Empty(t, tm.ledger.ChildRegistries(u(1)))
	assert.Empty(t, tm.ledger.AttachedParents())
	assert.NoError(t, tm.ledger.CheckConsistency(u(1)))
}

func TestLedger_TransferChild_Errors(t *testing.T) {
	tests := []struct {
		name    string
		caller  common.Address
		parent  uint64
		asset   uint64
		amount  uint64
		wantErr error
	}{
		{name: "unknown parent", caller: alice, parent: 9, asset: 7, amount: 1, wantErr: domain.ErrUnknownParent},
		{name: "not authorized for attached child", caller: mallory, parent: 1, asset: 7, amount: 1, wantErr: domain.ErrNotAuthorized},
		{name: "not authorized for missing child", caller: mallory, parent: 1, asset: 99, amount: 1, wantErr: domain.ErrNotAuthorized},
		{name: "child not attached", caller: alice, parent: 1, asset: 99, amount: 1, wantErr: domain.ErrChildNotAttached},
		{name: "zero amount", caller: alice, parent: 1, asset: 7, amount: 0, wantErr: domain.ErrInsufficientOrZeroAmount},
		{name: "amount above balance", caller: alice, parent: 1, asset: 7, amount: 6, wantErr: domain.ErrInsufficientOrZeroAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tm.ctrl.Finish()
			tm.parentExists(1)
			tm.parents.EXPECT().Exists(gomock.Any(), u(9)).Return(false, nil).AnyTimes()
			tm.manager(alice, 1, true)
			tm.manager(mallory, 1, false)

			tm.attach(t, 1, registryA, 7, 5)

			err := tm.ledger.TransferChild(context.Background(), tt.caller, u(tt.parent), bob, registryA, u(tt.asset), u(tt.amount), nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
			assert.Len(t, tm.committed, 1)
		})
	}
}

func TestLedger_TransferChild_UnknownRegistry(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(nil, errors.New("not found"))

	tm.attach(t, 1, registryA, 7, 5)

	err := tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(7), u(5), nil)
	assert.ErrorIs(t, err, domain.ErrUnknownRegistry)
	assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Len(t, tm.committed, 1)
}

func TestLedger_TransferChild_RevertsOnRegistryFailure(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(bob, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil).Times(2)

	tm.attach(t, 1, registryA, 7, 5)
	tm.attach(t, 1, registryA, 8, 2)
	tm.attach(t, 1, registryB, 1, 1)

	transferErr := errors.New("recipient rejected tokens")

	t.Run("drained asset keeps its place", func(t *testing.T) {
		tm.childA.EXPECT().
			SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, u(7), u(5), gomock.Any()).
			Return(transferErr)

		err := tm.ledger.TransferChild(context.Background(), bob, u(1), bob, registryA, u(7), u(5), nil)
		assert.ErrorIs(t, err, transferErr)

		assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
		assert.Equal(t, us(7, 8), tm.ledger.ChildIDs(u(1), registryA))
		assert.Equal(t, []common.Address{registryA, registryB}, tm.ledger.ChildRegistries(u(1)))
		assert.NoError(t, tm.ledger.CheckConsistency(u(1)))
	})

	t.Run("drained registry keeps its place", func(t *testing.T) {
		tm.childA.EXPECT().
			SafeBatchTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, us(8, 7), us(2, 5), gomock.Any()).
			Return(transferErr)

		err := tm.ledger.TransferChildren(context.Background(), bob, u(1), bob, registryA, us(8, 7), us(2, 5), nil)
		assert.ErrorIs(t, err, transferErr)

		assert.Equal(t, us(7, 8), tm.ledger.ChildIDs(u(1), registryA))
		assert.Equal(t, []common.Address{registryA, registryB}, tm.ledger.ChildRegistries(u(1)))
		assert.Equal(t, u(2), tm.ledger.ChildBalance(u(1), registryA, u(8)))
		assert.NoError(t, tm.ledger.CheckConsistency(u(1)))
	})

	// each failed detach is journaled with its debit and compensated together with the re-credit
	journal := tm.journal()
	assert.Equal(t, []domain.EventType{
		domain.EventTypeChildReceived,
		domain.EventTypeChildReceived,
		domain.EventTypeChildReceived,
		domain.EventTypeChildTransferred,
		domain.EventTypeTransferReverted,
		domain.EventTypeChildrenTransferred,
		domain.EventTypeTransferReverted,
	}, eventTypes(journal))
	assert.Equal(t, journal[3].EventID, journal[4].Reverts)
	assert.Equal(t, "7", journal[4].AssetID)
	assert.Equal(t, "5", journal[4].Amount)
	assert.Equal(t, journal[5].EventID, journal[6].Reverts)
	assert.Equal(t, []string{"8", "7"}, journal[6].AssetIDs)

	revert := tm.committed[len(tm.committed)-1]
	assert.NotEmpty(t, revert.Mutations)
	assert.Len(t, revert.Events, 1)

	broken, err := domain.VerifyDigestChain(nil, journal)
	require.NoError(t, err)
	assert.Equal(t, -1, broken)

	// a restart restores the same order from the persisted positions
	var persisted []domain.LedgerMutation
	for _, c := range tm.committed {
		persisted = append(persisted, c.Mutations...)
	}
	restored := setupTestLedger(t)
	defer restored.ctrl.Finish()
	restored.store.EXPECT().LoadLedger(gomock.Any()).Return(&store.LedgerSnapshot{Mutations: persisted}, nil)
	require.NoError(t, restored.ledger.Load(context.Background()))
	assert.Equal(t, us(7, 8), restored.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []common.Address{registryA, registryB}, restored.ledger.ChildRegistries(u(1)))
}

func TestLedger_TransferChild_StoreFailure(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil)

	tm.attach(t, 1, registryA, 7, 5)

	// the registry is never called when the debit cannot be committed
	tm.commitFail = errors.New("db down")
	err := tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(7), u(5), nil)
	assert.ErrorIs(t, err, tm.commitFail)

	assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, us(7), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []domain.EventType{domain.EventTypeChildReceived}, eventTypes(tm.journal()))
}

func TestLedger_TransferChild_NoStoreWriteAfterRegistryCall(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil)

	tm.attach(t, 1, registryA, 7, 5)

	tm.childA.EXPECT().
		SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, u(7), u(5), gomock.Any()).
		DoAndReturn(func(ctx context.Context, operator, from, to common.Address, id, amount uint256.Int, data []byte) error {
			// the database goes away once the tokens have moved
			tm.commitFail = errors.New("db down")
			return nil
		})

	err := tm.ledger.TransferChild(context.Background(), alice, u(1), bob, registryA, u(7), u(5), nil)
	require.NoError(t, err)

	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, []domain.EventType{
		domain.EventTypeChildReceived,
		domain.EventTypeChildTransferred,
	}, eventTypes(tm.journal()))
}

func TestLedger_TransferChild_Reentrant(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1, 2)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil)

	tm.attach(t, 1, registryA, 7, 5)

	// the registry delivers the tokens straight back to the ledger for parent 2
	tm.childA.EXPECT().
		SafeTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, ledgerAddress, u(7), u(5), gomock.Any()).
		DoAndReturn(func(ctx context.Context, operator, from, to common.Address, id, amount uint256.Int, data []byte) error {
			return tm.ledger.OnReceived(ctx, registryA, operator, from, id, amount, data)
		})

	done := make(chan error, 1)
	go func() {
		done <- tm.ledger.TransferChild(context.Background(), alice, u(1), ledgerAddress, registryA, u(7), u(5), parentData(2))
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("reentrant transfer deadlocked")
	}

	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, u(5), tm.ledger.ChildBalance(u(2), registryA, u(7)))
	assert.Equal(t, us(2), tm.ledger.AttachedParents())

	// the detach from parent 1 is journaled before the attach it causes
	journal := tm.journal()
	require.Len(t, journal, 3)
	assert.Equal(t, domain.EventTypeChildReceived, journal[0].Type)
	assert.Equal(t, domain.EventTypeChildTransferred, journal[1].Type)
	assert.Equal(t, "1", journal[1].ParentID)
	assert.Equal(t, domain.EventTypeChildReceived, journal[2].Type)
	assert.Equal(t, "2", journal[2].ParentID)
}

func TestLedger_TransferChildren(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil)

	tm.attach(t, 1, registryA, 7, 5)
	tm.attach(t, 1, registryA, 8, 2)
	tm.attach(t, 1, registryB, 1, 1)

	tm.childA.EXPECT().
		SafeBatchTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, us(7, 8), us(5, 1), gomock.Any()).
		Return(nil)

	err := tm.ledger.TransferChildren(context.Background(), alice, u(1), bob, registryA, us(7, 8), us(5, 1), nil)
	require.NoError(t, err)

	assert.Zero(t, tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, u(1), tm.ledger.ChildBalance(u(1), registryA, u(8)))
	assert.Equal(t, us(8), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []common.Address{registryA, registryB}, tm.ledger.ChildRegistries(u(1)))

	events := tm.lastEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeChildrenTransferred, events[0].Type)
	assert.Equal(t, []string{"7", "8"}, events[0].AssetIDs)
}

func TestLedger_TransferChildren_Errors(t *testing.T) {
	tests := []struct {
		name    string
		caller  common.Address
		ids     []uint256.Int
		amounts []uint256.Int
		wantErr error
	}{
		{name: "not authorized before length check", caller: mallory, ids: us(7), amounts: us(1, 1), wantErr: domain.ErrNotAuthorized},
		{name: "length mismatch", caller: alice, ids: us(7), amounts: us(1, 1), wantErr: domain.ErrArrayLengthMismatch},
		{name: "child not attached", caller: alice, ids: us(7, 99), amounts: us(1, 1), wantErr: domain.ErrChildNotAttached},
		{name: "zero amount", caller: alice, ids: us(7, 8), amounts: us(1, 0), wantErr: domain.ErrInsufficientOrZeroAmount},
		{name: "cumulative amount above balance", caller: alice, ids: us(7, 7), amounts: us(3, 3), wantErr: domain.ErrInsufficientOrZeroAmount},
		{name: "repeated id after drain", caller: alice, ids: us(8, 8), amounts: us(2, 1), wantErr: domain.ErrChildNotAttached},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := setupTestLedger(t)
			defer tm.ctrl.Finish()
			tm.parentExists(1)
			tm.manager(alice, 1, true)
			tm.manager(mallory, 1, false)

			tm.attach(t, 1, registryA, 7, 5)
			tm.attach(t, 1, registryA, 8, 2)

			err := tm.ledger.TransferChildren(context.Background(), tt.caller, u(1), bob, registryA, tt.ids, tt.amounts, nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
			assert.Equal(t, u(2), tm.ledger.ChildBalance(u(1), registryA, u(8)))
			assert.Len(t, tm.committed, 2)
		})
	}
}

func TestLedger_TransferChildren_RevertsOnRegistryFailure(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1)
	tm.manager(alice, 1, true)
	tm.resolver.EXPECT().Resolve(registryA).Return(tm.childA, nil)

	tm.attach(t, 1, registryA, 7, 5)
	tm.attach(t, 1, registryA, 8, 2)

	transferErr := errors.New("batch rejected")
	tm.childA.EXPECT().SafeBatchTransferFrom(gomock.Any(), ledgerAddress, ledgerAddress, bob, us(7, 8), us(5, 2), gomock.Any()).Return(transferErr)

	err := tm.ledger.TransferChildren(context.Background(), alice, u(1), bob, registryA, us(7, 8), us(5, 2), nil)
	assert.ErrorIs(t, err, transferErr)

	assert.Equal(t, u(5), tm.ledger.ChildBalance(u(1), registryA, u(7)))
	assert.Equal(t, u(2), tm.ledger.ChildBalance(u(1), registryA, u(8)))
	assert.Equal(t, us(7, 8), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, []common.Address{registryA}, tm.ledger.ChildRegistries(u(1)))
	assert.NoError(t, tm.ledger.CheckConsistency(u(1)))

	events := tm.lastEvents()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventTypeTransferReverted, events[0].Type)
	assert.Equal(t, []string{"5", "2"}, events[0].Amounts)
}

func TestLedger_Queries(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()
	tm.parentExists(1, 2, 300)

	assert.NotNil(t, tm.ledger.ChildRegistries(u(1)))
	assert.NotNil(t, tm.ledger.ChildIDs(u(1), registryA))
	assert.Empty(t, tm.ledger.AttachedParents())
	assert.Equal(t, ledgerAddress, tm.ledger.Address())

	tm.attach(t, 300, registryB, 1, 1)
	tm.attach(t, 2, registryA, 1, 1)
	tm.attach(t, 2, registryB, 1, 1)
	tm.attach(t, 1, registryA, 3, 1)

	assert.Equal(t, us(1, 2, 300), tm.ledger.AttachedParents())
	assert.Equal(t, []common.Address{registryA, registryB}, tm.ledger.ChildRegistries(u(2)))
	for _, p := range tm.ledger.AttachedParents() {
		assert.NoError(t, tm.ledger.CheckConsistency(p))
	}
	// parents without children are trivially consistent
	assert.NoError(t, tm.ledger.CheckConsistency(u(42)))
}

func TestLedger_Load(t *testing.T) {
	tm := setupTestLedger(t)
	defer tm.ctrl.Finish()

	tm.store.EXPECT().LoadLedger(gomock.Any()).Return(&store.LedgerSnapshot{
		Mutations: []domain.LedgerMutation{
			{Kind: domain.MutationAddRegistry, ParentID: u(1), Registry: registryB},
			{Kind: domain.MutationAddRegistry, ParentID: u(1), Registry: registryA},
			{Kind: domain.MutationAddAsset, ParentID: u(1), Registry: registryA, AssetID: u(9)},
			{Kind: domain.MutationAddAsset, ParentID: u(1), Registry: registryA, AssetID: u(3)},
			{Kind: domain.MutationAddAsset, ParentID: u(1), Registry: registryB, AssetID: u(1)},
			{Kind: domain.MutationSetBalance, ParentID: u(1), Registry: registryA, AssetID: u(9), Balance: u(4)},
			{Kind: domain.MutationSetBalance, ParentID: u(1), Registry: registryA, AssetID: u(3), Balance: u(2)},
			{Kind: domain.MutationSetBalance, ParentID: u(1), Registry: registryB, AssetID: u(1), Balance: u(1)},
		},
		LastDigest: []byte{0xaa},
	}, nil)

	require.NoError(t, tm.ledger.Load(context.Background()))

	assert.Equal(t, []common.Address{registryB, registryA}, tm.ledger.ChildRegistries(u(1)))
	assert.Equal(t, us(9, 3), tm.ledger.ChildIDs(u(1), registryA))
	assert.Equal(t, u(4), tm.ledger.ChildBalance(u(1), registryA, u(9)))
	assert.NoError(t, tm.ledger.CheckConsistency(u(1)))
}

func TestLedger_Load_Errors(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		tm.store.EXPECT().LoadLedger(gomock.Any()).Return(nil, errors.New("timeout"))
		assert.Error(t, tm.ledger.Load(context.Background()))
	})

	t.Run("inconsistent snapshot", func(t *testing.T) {
		tm := setupTestLedger(t)
		defer tm.ctrl.Finish()

		tm.store.EXPECT().LoadLedger(gomock.Any()).Return(&store.LedgerSnapshot{
			Mutations: []domain.LedgerMutation{
				{Kind: domain.MutationRemoveAsset, ParentID: u(1), Registry: registryA, AssetID: u(9)},
			},
		}, nil)
		assert.Error(t, tm.ledger.Load(context.Background()))
	})
}
