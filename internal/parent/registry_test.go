package parent_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/golang/mock/gomock"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/mocks"
	"github.com/feral-file/ff-composable-ledger/internal/parent"
	"github.com/feral-file/ff-composable-ledger/internal/store"
	"github.com/feral-file/ff-composable-ledger/internal/store/schema"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var (
	alice = common.HexToAddress("0x0000000000000000000000000000000000000a11")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	carol = common.HexToAddress("0x0000000000000000000000000000000000000ca1")
)

func id(n uint64) uint256.Int {
	return *uint256.NewInt(n)
}

type testRegistryMocks struct {
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	registry parent.Registry
}

func setupTestRegistry(t *testing.T) *testRegistryMocks {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStore(ctrl)

	return &testRegistryMocks{
		ctrl:  ctrl,
		store: st,
		registry: parent.NewRegistry(parent.Config{
			Name:    "Bundles",
			Symbol:  "BND",
			BaseURI: "https://example.com/bundles/",
		}, st),
	}
}

func (tm *testRegistryMocks) allowWrites() {
	tm.store.EXPECT().SaveParent(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	tm.store.EXPECT().SetParentOperator(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func TestRegistry_Metadata(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	tm.allowWrites()
	ctx := context.Background()

	assert.Equal(t, "Bundles", tm.registry.Name())
	assert.Equal(t, "BND", tm.registry.Symbol())
	assert.Equal(t, "https://example.com/bundles/", tm.registry.BaseURI())

	_, err := tm.registry.TokenURI(ctx, id(1))
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)

	require.NoError(t, tm.registry.Mint(ctx, alice, id(1)))
	uri, err := tm.registry.TokenURI(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/bundles/1", uri)
}

func TestRegistry_Mint(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	tm.store.EXPECT().SaveParent(gomock.Any(), store.SaveParentInput{TokenID: "1", Owner: alice.Hex()}).Return(nil)

	require.NoError(t, tm.registry.Mint(ctx, alice, id(1)))

	exists, err := tm.registry.Exists(ctx, id(1))
	require.NoError(t, err)
	assert.True(t, exists)

	owner, err := tm.registry.OwnerOf(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, alice, owner)

	balance, err := tm.registry.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), balance)

	assert.ErrorIs(t, tm.registry.Mint(ctx, bob, id(1)), domain.ErrTokenAlreadyExists)
	assert.ErrorIs(t, tm.registry.Mint(ctx, common.Address{}, id(2)), domain.ErrInvalidRecipient)

	exists, err = tm.registry.Exists(ctx, id(2))
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = tm.registry.OwnerOf(ctx, id(2))
	assert.ErrorIs(t, err, domain.ErrTokenNotFound)
}

func TestRegistry_Mint_StoreFailure(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	storeErr := errors.New("db down")
	tm.store.EXPECT().SaveParent(gomock.Any(), gomock.Any()).Return(storeErr)

	assert.ErrorIs(t, tm.registry.Mint(ctx, alice, id(1)), storeErr)

	exists, err := tm.registry.Exists(ctx, id(1))
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegistry_Approvals(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	tm.allowWrites()
	ctx := context.Background()

	require.NoError(t, tm.registry.Mint(ctx, alice, id(1)))

	ok, err := tm.registry.IsApprovedOrOwner(ctx, alice, id(1))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = tm.registry.IsApprovedOrOwner(ctx, bob, id(1))
	require.NoError(t, err)
	assert.False(t, ok)

	// single approval
	assert.ErrorIs(t, tm.registry.Approve(ctx, bob, bob, id(1)), domain.ErrNotAuthorized)
	assert.ErrorIs(t, tm.registry.Approve(ctx, alice, alice, id(1)), domain.ErrInvalidApproval)
	assert.ErrorIs(t, tm.registry.Approve(ctx, alice, bob, id(9)), domain.ErrTokenNotFound)
	require.NoError(t, tm.registry.Approve(ctx, alice, bob, id(1)))

	approved, err := tm.registry.GetApproved(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, bob, approved)

	ok, err = tm.registry.IsApprovedOrOwner(ctx, bob, id(1))
	require.NoError(t, err)
	assert.True(t, ok)

	// clearing the approval
	require.NoError(t, tm.registry.Approve(ctx, alice, common.Address{}, id(1)))
	ok, err = tm.registry.IsApprovedOrOwner(ctx, bob, id(1))
	require.NoError(t, err)
	assert.False(t, ok)

	// operator approval
	assert.ErrorIs(t, tm.registry.SetApprovalForAll(ctx, alice, alice, true), domain.ErrInvalidApproval)
	require.NoError(t, tm.registry.SetApprovalForAll(ctx, alice, carol, true))

	all, err := tm.registry.IsApprovedForAll(ctx, alice, carol)
	require.NoError(t, err)
	assert.True(t, all)

	ok, err = tm.registry.IsApprovedOrOwner(ctx, carol, id(1))
	require.NoError(t, err)
	assert.True(t, ok)

	// operators may approve on behalf of the owner
	require.NoError(t, tm.registry.Approve(ctx, carol, bob, id(1)))

	require.NoError(t, tm.registry.SetApprovalForAll(ctx, alice, carol, false))
	ok, err = tm.registry.IsApprovedOrOwner(ctx, carol, id(1))
	require.NoError(t, err)
	assert.False(t, ok)

	// unknown tokens are never approved
	ok, err = tm.registry.IsApprovedOrOwner(ctx, alice, id(9))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistry_TransferFrom(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	tm.allowWrites()
	ctx := context.Background()

	require.NoError(t, tm.registry.Mint(ctx, alice, id(1)))
	require.NoError(t, tm.registry.Approve(ctx, alice, bob, id(1)))

	tests := []struct {
		name    string
		caller  common.Address
		from    common.Address
		to      common.Address
		token   uint64
		wantErr error
	}{
		{name: "zero recipient", caller: alice, from: alice, to: common.Address{}, token: 1, wantErr: domain.ErrInvalidRecipient},
		{name: "unknown token", caller: alice, from: alice, to: bob, token: 9, wantErr: domain.ErrTokenNotFound},
		{name: "incorrect owner", caller: alice, from: bob, to: carol, token: 1, wantErr: domain.ErrIncorrectOwner},
		{name: "not approved", caller: carol, from: alice, to: carol, token: 1, wantErr: domain.ErrNotAuthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tm.registry.TransferFrom(ctx, tt.caller, tt.from, tt.to, id(tt.token))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// the approved address moves the token and the approval is cleared
	require.NoError(t, tm.registry.TransferFrom(ctx, bob, alice, carol, id(1)))

	owner, err := tm.registry.OwnerOf(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, carol, owner)

	approved, err := tm.registry.GetApproved(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, common.Address{}, approved)

	aliceBalance, err := tm.registry.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), aliceBalance)

	carolBalance, err := tm.registry.BalanceOf(ctx, carol)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), carolBalance)

	_, err = tm.registry.BalanceOf(ctx, common.Address{})
	assert.ErrorIs(t, err, domain.ErrInvalidRecipient)
}

func TestRegistry_Load(t *testing.T) {
	tm := setupTestRegistry(t)
	defer tm.ctrl.Finish()
	ctx := context.Background()

	approved := bob.Hex()
	tm.store.EXPECT().LoadParents(gomock.Any()).Return(&store.ParentSnapshot{
		Parents: []schema.Parent{
			{TokenID: "1", Owner: alice.Hex(), Approved: &approved},
			{TokenID: "2", Owner: alice.Hex()},
		},
		Operators: []schema.ParentOperator{
			{Owner: alice.Hex(), Operator: carol.Hex()},
		},
	}, nil)

	require.NoError(t, tm.registry.Load(ctx))

	balance, err := tm.registry.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), balance)

	got, err := tm.registry.GetApproved(ctx, id(1))
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	ok, err := tm.registry.IsApprovedOrOwner(ctx, carol, id(2))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegistry_Load_Errors(t *testing.T) {
	t.Run("store failure", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tm.ctrl.Finish()

		tm.store.EXPECT().LoadParents(gomock.Any()).Return(nil, errors.New("timeout"))
		assert.Error(t, tm.registry.Load(context.Background()))
	})

	t.Run("invalid token id", func(t *testing.T) {
		tm := setupTestRegistry(t)
		defer tm.ctrl.Finish()

		tm.store.EXPECT().LoadParents(gomock.Any()).Return(&store.ParentSnapshot{
			Parents: []schema.Parent{{TokenID: "not-a-number", Owner: alice.Hex()}},
		}, nil)
		assert.Error(t, tm.registry.Load(context.Background()))
	})
}
