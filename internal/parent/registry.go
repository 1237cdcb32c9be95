package parent

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

// Config holds the collection metadata of the parent registry
type Config struct {
	Name    string
	Symbol  string
	BaseURI string
}

// Registry is a non-fungible registry of parent tokens. Each parent has exactly one owner,
// at most one approved address, and owners may grant operators control of all their tokens.
type Registry interface {
	Name() string
	Symbol() string
	BaseURI() string
	// TokenURI returns the base URI followed by the decimal token id
	TokenURI(ctx context.Context, tokenID uint256.Int) (string, error)

	// Load restores tokens and operator approvals from the store
	Load(ctx context.Context) error

	Mint(ctx context.Context, to common.Address, tokenID uint256.Int) error
	Exists(ctx context.Context, tokenID uint256.Int) (bool, error)
	OwnerOf(ctx context.Context, tokenID uint256.Int) (common.Address, error)
	BalanceOf(ctx context.Context, owner common.Address) (uint64, error)

	Approve(ctx context.Context, caller, to common.Address, tokenID uint256.Int) error
	GetApproved(ctx context.Context, tokenID uint256.Int) (common.Address, error)
	SetApprovalForAll(ctx context.Context, owner, operator common.Address, approved bool) error
	IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)

	// TransferFrom moves a token and clears its single approval
	TransferFrom(ctx context.Context, caller, from, to common.Address, tokenID uint256.Int) error
	// IsApprovedOrOwner reports whether caller is the owner, the approved address or an operator of the owner
	IsApprovedOrOwner(ctx context.Context, caller common.Address, tokenID uint256.Int) (bool, error)
}

type token struct {
	owner    common.Address
	approved common.Address
}

type registry struct {
	config Config
	store  store.Store

	mu        sync.RWMutex
	tokens    map[uint256.Int]token
	balances  map[common.Address]uint64
	operators map[common.Address]map[common.Address]struct{}
}

// NewRegistry creates an empty parent registry backed by the store
func NewRegistry(cfg Config, st store.Store) Registry {
	return &registry{
		config:    cfg,
		store:     st,
		tokens:    make(map[uint256.Int]token),
		balances:  make(map[common.Address]uint64),
		operators: make(map[common.Address]map[common.Address]struct{}),
	}
}

func (r *registry) Name() string {
	return r.config.Name
}

func (r *registry) Symbol() string {
	return r.config.Symbol
}

func (r *registry) BaseURI() string {
	return r.config.BaseURI
}

func (r *registry) TokenURI(ctx context.Context, tokenID uint256.Int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.tokens[tokenID]; !ok {
		return "", domain.ErrTokenNotFound
	}
	if r.config.BaseURI == "" {
		return "", nil
	}
	return r.config.BaseURI + tokenID.Dec(), nil
}

func (r *registry) Load(ctx context.Context) error {
	snapshot, err := r.store.LoadParents(ctx)
	if err != nil {
		return fmt.Errorf("failed to load parents: %w", err)
	}

	tokens := make(map[uint256.Int]token, len(snapshot.Parents))
	balances := make(map[common.Address]uint64)
	for _, p := range snapshot.Parents {
		id, err := domain.ParseTokenID(p.TokenID)
		if err != nil {
			return fmt.Errorf("invalid parent token id %q: %w", p.TokenID, err)
		}
		t := token{owner: common.HexToAddress(p.Owner)}
		if p.Approved != nil {
			t.approved = common.HexToAddress(*p.Approved)
		}
		tokens[id] = t
		balances[t.owner]++
	}

	operators := make(map[common.Address]map[common.Address]struct{})
	for _, o := range snapshot.Operators {
		owner := common.HexToAddress(o.Owner)
		if operators[owner] == nil {
			operators[owner] = make(map[common.Address]struct{})
		}
		operators[owner][common.HexToAddress(o.Operator)] = struct{}{}
	}

	r.mu.Lock()
	r.tokens = tokens
	r.balances = balances
	r.operators = operators
	r.mu.Unlock()

	logger.InfoCtx(ctx, "Parent registry restored", zap.Int("tokens", len(tokens)))

	return nil
}

func (r *registry) Mint(ctx context.Context, to common.Address, tokenID uint256.Int) error {
	if to == (common.Address{}) {
		return domain.ErrInvalidRecipient
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[tokenID]; ok {
		return domain.ErrTokenAlreadyExists
	}

	t := token{owner: to}
	if err := r.save(ctx, tokenID, t); err != nil {
		return err
	}
	r.tokens[tokenID] = t
	r.balances[to]++

	logger.InfoCtx(ctx, "Parent token minted",
		zap.String("token_id", tokenID.Dec()),
		zap.String("owner", to.Hex()),
	)

	return nil
}

func (r *registry) Exists(ctx context.Context, tokenID uint256.Int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[tokenID]
	return ok, nil
}

func (r *registry) OwnerOf(ctx context.Context, tokenID uint256.Int) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[tokenID]
	if !ok {
		return common.Address{}, domain.ErrTokenNotFound
	}
	return t.owner, nil
}

func (r *registry) BalanceOf(ctx context.Context, owner common.Address) (uint64, error) {
	if owner == (common.Address{}) {
		return 0, domain.ErrInvalidRecipient
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.balances[owner], nil
}

// Approve sets or, with the zero address, clears the single approval of a token.
// Only the owner or an operator of the owner may approve.
func (r *registry) Approve(ctx context.Context, caller, to common.Address, tokenID uint256.Int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if to == t.owner {
		return domain.ErrInvalidApproval
	}
	if caller != t.owner && !r.isOperator(t.owner, caller) {
		return domain.ErrNotAuthorized
	}

	t.approved = to
	if err := r.save(ctx, tokenID, t); err != nil {
		return err
	}
	r.tokens[tokenID] = t

	return nil
}

func (r *registry) GetApproved(ctx context.Context, tokenID uint256.Int) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[tokenID]
	if !ok {
		return common.Address{}, domain.ErrTokenNotFound
	}
	return t.approved, nil
}

func (r *registry) SetApprovalForAll(ctx context.Context, owner, operator common.Address, approved bool) error {
	if owner == operator || operator == (common.Address{}) {
		return domain.ErrInvalidApproval
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.SetParentOperator(ctx, store.SetParentOperatorInput{
		Owner:    owner.Hex(),
		Operator: operator.Hex(),
		Approved: approved,
	})
	if err != nil {
		return fmt.Errorf("failed to persist operator approval: %w", err)
	}

	if approved {
		if r.operators[owner] == nil {
			r.operators[owner] = make(map[common.Address]struct{})
		}
		r.operators[owner][operator] = struct{}{}
	} else if ops, ok := r.operators[owner]; ok {
		delete(ops, operator)
		if len(ops) == 0 {
			delete(r.operators, owner)
		}
	}

	return nil
}

func (r *registry) IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.isOperator(owner, operator), nil
}

func (r *registry) TransferFrom(ctx context.Context, caller, from, to common.Address, tokenID uint256.Int) error {
	if to == (common.Address{}) {
		return domain.ErrInvalidRecipient
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tokens[tokenID]
	if !ok {
		return domain.ErrTokenNotFound
	}
	if t.owner != from {
		return domain.ErrIncorrectOwner
	}
	if !r.approvedOrOwner(t, caller) {
		return domain.ErrNotAuthorized
	}

	moved := token{owner: to}
	if err := r.save(ctx, tokenID, moved); err != nil {
		return err
	}
	r.tokens[tokenID] = moved
	r.balances[from]--
	if r.balances[from] == 0 {
		delete(r.balances, from)
	}
	r.balances[to]++

	logger.InfoCtx(ctx, "Parent token transferred",
		zap.String("token_id", tokenID.Dec()),
		zap.String("from", from.Hex()),
		zap.String("to", to.Hex()),
	)

	return nil
}

// IsApprovedOrOwner is false for tokens that do not exist
func (r *registry) IsApprovedOrOwner(ctx context.Context, caller common.Address, tokenID uint256.Int) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tokens[tokenID]
	if !ok {
		return false, nil
	}
	return r.approvedOrOwner(t, caller), nil
}

func (r *registry) approvedOrOwner(t token, caller common.Address) bool {
	if caller == (common.Address{}) {
		return false
	}
	return caller == t.owner || caller == t.approved || r.isOperator(t.owner, caller)
}

func (r *registry) isOperator(owner, operator common.Address) bool {
	_, ok := r.operators[owner][operator]
	return ok
}

// save persists a token before memory is updated
func (r *registry) save(ctx context.Context, tokenID uint256.Int, t token) error {
	input := store.SaveParentInput{
		TokenID: tokenID.Dec(),
		Owner:   t.owner.Hex(),
	}
	if t.approved != (common.Address{}) {
		approved := t.approved.Hex()
		input.Approved = &approved
	}

	if err := r.store.SaveParent(ctx, input); err != nil {
		return fmt.Errorf("failed to persist parent token: %w", err)
	}
	return nil
}
