package dto

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/api/shared/constants"
	apierrors "github.com/feral-file/ff-composable-ledger/internal/api/shared/errors"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// TransferChildRequest represents the request body for detaching one child token from a parent
type TransferChildRequest struct {
	To       string `json:"to"`
	Registry string `json:"registry"`
	AssetID  string `json:"asset_id"`
	Amount   string `json:"amount"`
	Data     string `json:"data,omitempty"` // 0x-prefixed hex, forwarded to the recipient
}

// TransferChildInput is a validated TransferChildRequest
type TransferChildInput struct {
	To       common.Address
	Registry common.Address
	AssetID  uint256.Int
	Amount   uint256.Int
	Data     []byte
}

// Validate validates the request body and returns the parsed input
func (r *TransferChildRequest) Validate() (*TransferChildInput, error) {
	var in TransferChildInput
	var err error

	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}
	if in.Registry, err = parseAddress("registry", r.Registry); err != nil {
		return nil, err
	}
	if in.AssetID, err = parseTokenID("asset_id", r.AssetID); err != nil {
		return nil, err
	}
	if in.Amount, err = parseAmount("amount", r.Amount); err != nil {
		return nil, err
	}
	if in.Data, err = parseData(r.Data); err != nil {
		return nil, err
	}

	return &in, nil
}

// TransferChildrenRequest represents the request body for detaching several child tokens of one registry
type TransferChildrenRequest struct {
	To       string   `json:"to"`
	Registry string   `json:"registry"`
	AssetIDs []string `json:"asset_ids"`
	Amounts  []string `json:"amounts"`
	Data     string   `json:"data,omitempty"`
}

// TransferChildrenInput is a validated TransferChildrenRequest
type TransferChildrenInput struct {
	To       common.Address
	Registry common.Address
	AssetIDs []uint256.Int
	Amounts  []uint256.Int
	Data     []byte
}

// Validate validates the request body and returns the parsed input.
// Mismatched id and amount counts are left to the ledger, which rejects them with its own error.
func (r *TransferChildrenRequest) Validate() (*TransferChildrenInput, error) {
	var in TransferChildrenInput
	var err error

	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}
	if in.Registry, err = parseAddress("registry", r.Registry); err != nil {
		return nil, err
	}
	if in.AssetIDs, in.Amounts, err = parseBatch(r.AssetIDs, r.Amounts); err != nil {
		return nil, err
	}
	if in.Data, err = parseData(r.Data); err != nil {
		return nil, err
	}

	return &in, nil
}

// MintParentRequest represents the request body for minting a parent token
type MintParentRequest struct {
	To      string `json:"to"`
	TokenID string `json:"token_id"`
}

// MintParentInput is a validated MintParentRequest
type MintParentInput struct {
	To      common.Address
	TokenID uint256.Int
}

// Validate validates the request body and returns the parsed input
func (r *MintParentRequest) Validate() (*MintParentInput, error) {
	var in MintParentInput
	var err error

	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}
	if in.TokenID, err = parseTokenID("token_id", r.TokenID); err != nil {
		return nil, err
	}

	return &in, nil
}

// ApproveParentRequest represents the request body for approving an address for a parent token.
// The zero address clears the approval.
type ApproveParentRequest struct {
	To string `json:"to"`
}

// Validate validates the request body and returns the approved address
func (r *ApproveParentRequest) Validate() (common.Address, error) {
	return parseAddress("to", r.To)
}

// TransferParentRequest represents the request body for transferring a parent token
type TransferParentRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// TransferParentInput is a validated TransferParentRequest
type TransferParentInput struct {
	From common.Address
	To   common.Address
}

// Validate validates the request body and returns the parsed input
func (r *TransferParentRequest) Validate() (*TransferParentInput, error) {
	var in TransferParentInput
	var err error

	if in.From, err = parseAddress("from", r.From); err != nil {
		return nil, err
	}
	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}

	return &in, nil
}

// SetOperatorRequest represents the request body for granting or revoking an operator
type SetOperatorRequest struct {
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// Validate validates the request body and returns the operator address
func (r *SetOperatorRequest) Validate() (common.Address, error) {
	return parseAddress("operator", r.Operator)
}

// MintChildRequest represents the request body for minting child tokens in a registry.
// A single id is minted with a single delivery, several ids with a batch delivery.
type MintChildRequest struct {
	To       string   `json:"to"`
	AssetIDs []string `json:"asset_ids"`
	Amounts  []string `json:"amounts"`
	Data     string   `json:"data,omitempty"`
}

// MintChildInput is a validated MintChildRequest
type MintChildInput struct {
	To       common.Address
	AssetIDs []uint256.Int
	Amounts  []uint256.Int
	Data     []byte
}

// Validate validates the request body and returns the parsed input
func (r *MintChildRequest) Validate() (*MintChildInput, error) {
	var in MintChildInput
	var err error

	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}
	if len(r.AssetIDs) != len(r.Amounts) {
		return nil, apierrors.NewValidationError("asset_ids and amounts must have the same length")
	}
	if in.AssetIDs, in.Amounts, err = parseBatch(r.AssetIDs, r.Amounts); err != nil {
		return nil, err
	}
	if in.Data, err = parseData(r.Data); err != nil {
		return nil, err
	}

	return &in, nil
}

// RegistryTransferRequest represents the request body for a transfer inside a child registry.
// Sending to the ledger address with a parent id as data attaches the tokens.
type RegistryTransferRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	AssetIDs []string `json:"asset_ids"`
	Amounts  []string `json:"amounts"`
	Data     string   `json:"data,omitempty"`
}

// RegistryTransferInput is a validated RegistryTransferRequest
type RegistryTransferInput struct {
	From     common.Address
	To       common.Address
	AssetIDs []uint256.Int
	Amounts  []uint256.Int
	Data     []byte
}

// Validate validates the request body and returns the parsed input.
// With batch unset exactly one asset id is accepted.
func (r *RegistryTransferRequest) Validate(batch bool) (*RegistryTransferInput, error) {
	var in RegistryTransferInput
	var err error

	if in.From, err = parseAddress("from", r.From); err != nil {
		return nil, err
	}
	if in.To, err = parseAddress("to", r.To); err != nil {
		return nil, err
	}
	if !batch && (len(r.AssetIDs) != 1 || len(r.Amounts) != 1) {
		return nil, apierrors.NewValidationError("exactly one asset id and amount is required")
	}
	if in.AssetIDs, in.Amounts, err = parseBatch(r.AssetIDs, r.Amounts); err != nil {
		return nil, err
	}
	if in.Data, err = parseData(r.Data); err != nil {
		return nil, err
	}

	return &in, nil
}

func parseAddress(field, value string) (common.Address, error) {
	if value == "" {
		return common.Address{}, apierrors.NewValidationError(fmt.Sprintf("%s is required", field))
	}
	addr, err := domain.ParseAddress(value)
	if err != nil {
		return common.Address{}, apierrors.NewValidationError(fmt.Sprintf("invalid %s: %v", field, err))
	}
	return addr, nil
}

func parseTokenID(field, value string) (uint256.Int, error) {
	id, err := domain.ParseTokenID(value)
	if err != nil {
		return uint256.Int{}, apierrors.NewValidationError(fmt.Sprintf("invalid %s: %v", field, err))
	}
	return id, nil
}

func parseAmount(field, value string) (uint256.Int, error) {
	amount, err := domain.ParseAmount(value)
	if err != nil {
		return uint256.Int{}, apierrors.NewValidationError(fmt.Sprintf("invalid %s: %v", field, err))
	}
	return amount, nil
}

func parseBatch(ids, amounts []string) ([]uint256.Int, []uint256.Int, error) {
	if len(ids) == 0 {
		return nil, nil, apierrors.NewValidationError("asset_ids is required")
	}
	if len(ids) > constants.MAX_CHILDREN_PER_REQUEST || len(amounts) > constants.MAX_CHILDREN_PER_REQUEST {
		return nil, nil, apierrors.NewValidationError(fmt.Sprintf("maximum %d asset ids allowed", constants.MAX_CHILDREN_PER_REQUEST))
	}

	parsedIDs := make([]uint256.Int, len(ids))
	for i, s := range ids {
		id, err := parseTokenID("asset_ids", s)
		if err != nil {
			return nil, nil, err
		}
		parsedIDs[i] = id
	}

	parsedAmounts := make([]uint256.Int, len(amounts))
	for i, s := range amounts {
		amount, err := parseAmount("amounts", s)
		if err != nil {
			return nil, nil, err
		}
		parsedAmounts[i] = amount
	}

	return parsedIDs, parsedAmounts, nil
}

func parseData(value string) ([]byte, error) {
	if value == "" {
		return nil, nil
	}
	data, err := hexutil.Decode(value)
	if err != nil {
		return nil, apierrors.NewValidationError(fmt.Sprintf("invalid data: %v", err))
	}
	return data, nil
}
