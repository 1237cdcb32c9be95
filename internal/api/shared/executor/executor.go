package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/api/shared/constants"
	"github.com/feral-file/ff-composable-ledger/internal/api/shared/dto"
	apierrors "github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/ledger"
	"github.com/feral-file/ff-composable-ledger/internal/multitoken"
	"github.com/feral-file/ff-composable-ledger/internal/parent"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

// Executor is the interface for the API executor
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/mock_api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// GetParent retrieves a parent token with its attached registries
	GetParent(ctx context.Context, parentID uint256.Int) (*dto.ParentResponse, error)
	// GetChildRegistries lists the registries with children attached to a parent
	GetChildRegistries(ctx context.Context, parentID uint256.Int) (*dto.ChildRegistriesResponse, error)
	// GetChildren lists the assets of one registry attached to a parent with their balances
	GetChildren(ctx context.Context, parentID uint256.Int, registry common.Address) (*dto.ChildrenResponse, error)
	// GetChildBalance retrieves the attached balance of one asset
	GetChildBalance(ctx context.Context, parentID uint256.Int, registry common.Address, assetID uint256.Int) (*dto.ChildBalanceResponse, error)

	// TransferChild detaches one child token on behalf of caller
	TransferChild(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferChildInput) (*dto.TransferResponse, error)
	// TransferChildren detaches several child tokens on behalf of caller
	TransferChildren(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferChildrenInput) (*dto.TransferResponse, error)

	// MintParent mints a parent token
	MintParent(ctx context.Context, input dto.MintParentInput) (*dto.ParentResponse, error)
	// ApproveParent approves an address for a parent token on behalf of caller
	ApproveParent(ctx context.Context, caller common.Address, parentID uint256.Int, to common.Address) (*dto.ParentResponse, error)
	// TransferParent transfers a parent token on behalf of caller
	TransferParent(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferParentInput) (*dto.ParentResponse, error)
	// SetParentOperator grants or revokes an operator for every parent token of caller
	SetParentOperator(ctx context.Context, caller, operator common.Address, approved bool) (*dto.OperatorResponse, error)

	// MintChild mints child tokens in a registry
	MintChild(ctx context.Context, registry common.Address, input dto.MintChildInput) (*dto.TransferResponse, error)
	// TransferInRegistry moves child tokens inside a registry on behalf of caller
	TransferInRegistry(ctx context.Context, caller, registry common.Address, input dto.RegistryTransferInput, batch bool) (*dto.TransferResponse, error)
	// GetRegistryBalance retrieves a holder balance inside a registry
	GetRegistryBalance(ctx context.Context, registry, owner common.Address, assetID uint256.Int) (*dto.RegistryBalanceResponse, error)

	// GetEvents lists journal entries after a sequence
	GetEvents(ctx context.Context, after uint64, limit int, parentID *uint256.Int, types []domain.EventType) (*dto.EventListResponse, error)
}

type executor struct {
	ledger     ledger.Ledger
	parents    parent.Registry
	registries *multitoken.Directory
	store      store.Store
}

// NewExecutor creates the executor shared by the REST handlers
func NewExecutor(l ledger.Ledger, parents parent.Registry, registries *multitoken.Directory, st store.Store) Executor {
	return &executor{ledger: l, parents: parents, registries: registries, store: st}
}

func (e *executor) GetParent(ctx context.Context, parentID uint256.Int) (*dto.ParentResponse, error) {
	owner, err := e.parents.OwnerOf(ctx, parentID)
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, nil
		}
		return nil, apierrors.FromError("Failed to get parent token", err)
	}

	approved, err := e.parents.GetApproved(ctx, parentID)
	if err != nil {
		return nil, apierrors.FromError("Failed to get parent approval", err)
	}

	tokenURI, err := e.parents.TokenURI(ctx, parentID)
	if err != nil {
		return nil, apierrors.FromError("Failed to get token URI", err)
	}

	resp := &dto.ParentResponse{
		TokenID:    parentID.Dec(),
		Owner:      owner.Hex(),
		TokenURI:   tokenURI,
		Registries: dto.MapAddresses(e.ledger.ChildRegistries(parentID)),
	}
	if approved != (common.Address{}) {
		hex := approved.Hex()
		resp.Approved = &hex
	}

	return resp, nil
}

func (e *executor) GetChildRegistries(ctx context.Context, parentID uint256.Int) (*dto.ChildRegistriesResponse, error) {
	return &dto.ChildRegistriesResponse{
		ParentID:   parentID.Dec(),
		Registries: dto.MapAddresses(e.ledger.ChildRegistries(parentID)),
	}, nil
}

func (e *executor) GetChildren(ctx context.Context, parentID uint256.Int, registry common.Address) (*dto.ChildrenResponse, error) {
	ids := e.ledger.ChildIDs(parentID, registry)
	children := make([]dto.ChildBalance, len(ids))
	for i, id := range ids {
		balance := e.ledger.ChildBalance(parentID, registry, id)
		children[i] = dto.ChildBalance{AssetID: id.Dec(), Balance: balance.Dec()}
	}

	return &dto.ChildrenResponse{
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		Children: children,
	}, nil
}

func (e *executor) GetChildBalance(ctx context.Context, parentID uint256.Int, registry common.Address, assetID uint256.Int) (*dto.ChildBalanceResponse, error) {
	balance := e.ledger.ChildBalance(parentID, registry, assetID)
	return &dto.ChildBalanceResponse{
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		AssetID:  assetID.Dec(),
		Balance:  balance.Dec(),
	}, nil
}

func (e *executor) TransferChild(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferChildInput) (*dto.TransferResponse, error) {
	err := e.ledger.TransferChild(ctx, caller, parentID, input.To, input.Registry, input.AssetID, input.Amount, input.Data)
	if err != nil {
		return nil, apierrors.FromError("Failed to transfer child token", err)
	}

	return dto.NewTransferResponse(e.ledger.Address(), input.To, input.Registry,
		[]uint256.Int{input.AssetID}, []uint256.Int{input.Amount}), nil
}

func (e *executor) TransferChildren(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferChildrenInput) (*dto.TransferResponse, error) {
	err := e.ledger.TransferChildren(ctx, caller, parentID, input.To, input.Registry, input.AssetIDs, input.Amounts, input.Data)
	if err != nil {
		return nil, apierrors.FromError("Failed to transfer child tokens", err)
	}

	return dto.NewTransferResponse(e.ledger.Address(), input.To, input.Registry, input.AssetIDs, input.Amounts), nil
}

func (e *executor) MintParent(ctx context.Context, input dto.MintParentInput) (*dto.ParentResponse, error) {
	if err := e.parents.Mint(ctx, input.To, input.TokenID); err != nil {
		return nil, apierrors.FromError("Failed to mint parent token", err)
	}
	return e.GetParent(ctx, input.TokenID)
}

func (e *executor) ApproveParent(ctx context.Context, caller common.Address, parentID uint256.Int, to common.Address) (*dto.ParentResponse, error) {
	if err := e.parents.Approve(ctx, caller, to, parentID); err != nil {
		return nil, apierrors.FromError("Failed to approve parent token", err)
	}
	return e.GetParent(ctx, parentID)
}

func (e *executor) TransferParent(ctx context.Context, caller common.Address, parentID uint256.Int, input dto.TransferParentInput) (*dto.ParentResponse, error) {
	if err := e.parents.TransferFrom(ctx, caller, input.From, input.To, parentID); err != nil {
		return nil, apierrors.FromError("Failed to transfer parent token", err)
	}
	return e.GetParent(ctx, parentID)
}

func (e *executor) SetParentOperator(ctx context.Context, caller, operator common.Address, approved bool) (*dto.OperatorResponse, error) {
	if err := e.parents.SetApprovalForAll(ctx, caller, operator, approved); err != nil {
		return nil, apierrors.FromError("Failed to set operator", err)
	}
	return &dto.OperatorResponse{
		Owner:    caller.Hex(),
		Operator: operator.Hex(),
		Approved: approved,
	}, nil
}

func (e *executor) MintChild(ctx context.Context, registry common.Address, input dto.MintChildInput) (*dto.TransferResponse, error) {
	r, err := e.lookupRegistry(registry)
	if err != nil {
		return nil, err
	}

	// minting has no operator identity behind an API key; the zero address stands in for it
	minter := common.Address{}
	if len(input.AssetIDs) == 1 {
		err = r.Mint(ctx, minter, input.To, input.AssetIDs[0], input.Amounts[0], input.Data)
	} else {
		err = r.MintBatch(ctx, minter, input.To, input.AssetIDs, input.Amounts, input.Data)
	}
	if err != nil {
		return nil, apierrors.FromError("Failed to mint child tokens", err)
	}

	return dto.NewTransferResponse(minter, input.To, registry, input.AssetIDs, input.Amounts), nil
}

func (e *executor) TransferInRegistry(ctx context.Context, caller, registry common.Address, input dto.RegistryTransferInput, batch bool) (*dto.TransferResponse, error) {
	r, err := e.lookupRegistry(registry)
	if err != nil {
		return nil, err
	}

	if batch {
		err = r.SafeBatchTransferFrom(ctx, caller, input.From, input.To, input.AssetIDs, input.Amounts, input.Data)
	} else {
		err = r.SafeTransferFrom(ctx, caller, input.From, input.To, input.AssetIDs[0], input.Amounts[0], input.Data)
	}
	if err != nil {
		return nil, apierrors.FromError("Failed to transfer child tokens", err)
	}

	return dto.NewTransferResponse(input.From, input.To, registry, input.AssetIDs, input.Amounts), nil
}

func (e *executor) GetRegistryBalance(ctx context.Context, registry, owner common.Address, assetID uint256.Int) (*dto.RegistryBalanceResponse, error) {
	r, err := e.lookupRegistry(registry)
	if err != nil {
		return nil, err
	}

	balance := r.BalanceOf(owner, assetID)
	return &dto.RegistryBalanceResponse{
		Registry: registry.Hex(),
		Owner:    owner.Hex(),
		AssetID:  assetID.Dec(),
		Balance:  balance.Dec(),
	}, nil
}

func (e *executor) GetEvents(ctx context.Context, after uint64, limit int, parentID *uint256.Int, types []domain.EventType) (*dto.EventListResponse, error) {
	if limit <= 0 {
		limit = constants.DEFAULT_EVENTS_LIMIT
	}

	filter := store.EventFilter{
		AfterSequence: after,
		Limit:         limit,
		Types:         types,
	}
	if parentID != nil {
		id := parentID.Dec()
		filter.ParentID = &id
	}

	events, err := e.store.GetEvents(ctx, filter)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get events: %v", err))
	}

	resp := &dto.EventListResponse{Events: make([]dto.EventResponse, len(events))}
	for i, event := range events {
		resp.Events[i] = dto.MapEventToDTO(event)
	}
	if len(events) == limit {
		next := events[len(events)-1].Sequence
		resp.NextAfter = &next
	}

	return resp, nil
}

func (e *executor) lookupRegistry(registry common.Address) (*multitoken.Registry, error) {
	r, ok := e.registries.Lookup(registry)
	if !ok {
		return nil, apierrors.NewNotFoundError("Registry not found", registry.Hex())
	}
	return r, nil
}
