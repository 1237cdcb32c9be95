package dto

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
)

// ParentResponse represents a parent token and the registries attached to it
type ParentResponse struct {
	TokenID    string   `json:"token_id"`
	Owner      string   `json:"owner"`
	Approved   *string  `json:"approved,omitempty"`
	TokenURI   string   `json:"token_uri"`
	Registries []string `json:"registries"`
}

// ChildRegistriesResponse lists the registries with attached children, in attach order
type ChildRegistriesResponse struct {
	ParentID   string   `json:"parent_id"`
	Registries []string `json:"registries"`
}

// ChildBalance is one attached asset and its balance
type ChildBalance struct {
	AssetID string `json:"asset_id"`
	Balance string `json:"balance"`
}

// ChildrenResponse lists the assets of one registry attached to a parent, in attach order
type ChildrenResponse struct {
	ParentID string         `json:"parent_id"`
	Registry string         `json:"registry"`
	Children []ChildBalance `json:"children"`
}

// ChildBalanceResponse is the attached balance of one asset
type ChildBalanceResponse struct {
	ParentID string `json:"parent_id"`
	Registry string `json:"registry"`
	AssetID  string `json:"asset_id"`
	Balance  string `json:"balance"`
}

// TransferResponse describes a completed transfer
type TransferResponse struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Registry string   `json:"registry"`
	AssetIDs []string `json:"asset_ids"`
	Amounts  []string `json:"amounts"`
}

// OperatorResponse describes an operator approval
type OperatorResponse struct {
	Owner    string `json:"owner"`
	Operator string `json:"operator"`
	Approved bool   `json:"approved"`
}

// RegistryBalanceResponse is a holder balance inside a child registry
type RegistryBalanceResponse struct {
	Registry string `json:"registry"`
	Owner    string `json:"owner"`
	AssetID  string `json:"asset_id"`
	Balance  string `json:"balance"`
}

// EventResponse is one journal entry
type EventResponse struct {
	Sequence  uint64    `json:"sequence"`
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	ParentID  string    `json:"parent_id"`
	Registry  string    `json:"registry"`
	AssetID   string    `json:"asset_id,omitempty"`
	Amount    string    `json:"amount,omitempty"`
	AssetIDs  []string  `json:"asset_ids,omitempty"`
	Amounts   []string  `json:"amounts,omitempty"`
	Reverts   string    `json:"reverts,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Digest    string    `json:"digest"`
}

// EventListResponse is a page of journal entries
type EventListResponse struct {
	Events []EventResponse `json:"events"`
	// NextAfter is the cursor for the next page, nil when the page was not full
	NextAfter *uint64 `json:"next_after,omitempty"`
}

// MapAddresses formats addresses as checksummed hex
func MapAddresses(addrs []common.Address) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Hex()
	}
	return out
}

// NewTransferResponse builds a TransferResponse
func NewTransferResponse(from, to, registry common.Address, ids, amounts []uint256.Int) *TransferResponse {
	return &TransferResponse{
		From:     from.Hex(),
		To:       to.Hex(),
		Registry: registry.Hex(),
		AssetIDs: domain.DecimalStrings(ids),
		Amounts:  domain.DecimalStrings(amounts),
	}
}

// MapEventToDTO maps a journal entry to its response
func MapEventToDTO(e *domain.LedgerEvent) EventResponse {
	return EventResponse{
		Sequence:  e.Sequence,
		EventID:   e.EventID,
		Type:      string(e.Type),
		From:      e.From,
		To:        e.To,
		ParentID:  e.ParentID,
		Registry:  e.Registry,
		AssetID:   e.AssetID,
		Amount:    e.Amount,
		AssetIDs:  e.AssetIDs,
		Amounts:   e.Amounts,
		Reverts:   e.Reverts,
		Timestamp: e.Timestamp,
		Digest:    e.Digest,
	}
}
