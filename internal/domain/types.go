package domain

import (
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// EventType represents the type of ledger notification
type EventType string

const (
	EventTypeChildReceived       EventType = "child_received"
	EventTypeChildrenReceived    EventType = "children_received"
	EventTypeChildTransferred    EventType = "child_transferred"
	EventTypeChildrenTransferred EventType = "children_transferred"
	// EventTypeTransferReverted compensates a journaled detach whose outbound transfer failed
	EventTypeTransferReverted EventType = "transfer_reverted"
)

// IsValidEventType checks if an event type is one the ledger emits
func IsValidEventType(t EventType) bool {
	return t == EventTypeChildReceived ||
		t == EventTypeChildrenReceived ||
		t == EventTypeChildTransferred ||
		t == EventTypeChildrenTransferred ||
		t == EventTypeTransferReverted
}

// ParseTokenID parses a token id given in decimal or as 0x-prefixed hex
func ParseTokenID(s string) (uint256.Int, error) {
	var id uint256.Int
	s = strings.TrimSpace(s)
	if s == "" {
		return id, fmt.Errorf("empty token id")
	}

	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		b, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return id, fmt.Errorf("invalid hex token id: %s", s)
		}
		v, overflow := uint256.FromBig(b)
		if overflow {
			return id, fmt.Errorf("token id out of range: %s", s)
		}
		return *v, nil
	}

	v, err := uint256.FromDecimal(s)
	if err != nil {
		return id, fmt.Errorf("invalid token id %s: %w", s, err)
	}
	return *v, nil
}

// ParseAmount parses a decimal token amount
func ParseAmount(s string) (uint256.Int, error) {
	var amount uint256.Int
	v, err := uint256.FromDecimal(strings.TrimSpace(s))
	if err != nil {
		return amount, fmt.Errorf("invalid amount %s: %w", s, err)
	}
	return *v, nil
}

// ParseAddress parses a hex address, rejecting anything that is not 20 bytes of hex
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("invalid address: %s", s)
	}
	return common.HexToAddress(s), nil
}

// DecimalStrings formats values as decimal strings
func DecimalStrings(values []uint256.Int) []string {
	out := make([]string, len(values))
	for i := range values {
		out[i] = values[i].Dec()
	}
	return out
}

// LedgerEvent is the normalized notification emitted for every successful attach or detach.
// This is the format persisted to the event journal and published to NATS
type LedgerEvent struct {
	Sequence  uint64    `json:"sequence"`            // journal position, assigned on commit
	EventID   string    `json:"event_id"`            // ULID
	Type      EventType `json:"type"`                // child_received, children_received, ...
	From      string    `json:"from,omitempty"`      // sender of an inbound transfer
	To        string    `json:"to,omitempty"`        // recipient of an outbound transfer
	ParentID  string    `json:"parent_id"`           // decimal parent token id
	Registry  string    `json:"registry"`            // child registry address
	AssetID   string    `json:"asset_id,omitempty"`  // single variants only
	Amount    string    `json:"amount,omitempty"`    // single variants only
	AssetIDs  []string  `json:"asset_ids,omitempty"` // batch variants only
	Amounts   []string  `json:"amounts,omitempty"`   // batch variants only
	Reverts   string    `json:"reverts,omitempty"`   // event id of the reverted detach, transfer_reverted only
	Timestamp time.Time `json:"timestamp"`           // ledger clock at emission
	Digest    string    `json:"digest,omitempty"`    // hex sha256 chain digest
}

// NewChildReceivedEvent builds a child_received notification
func NewChildReceivedEvent(from common.Address, parentID uint256.Int, registry common.Address, assetID, amount uint256.Int) *LedgerEvent {
	return &LedgerEvent{
		Type:     EventTypeChildReceived,
		From:     from.Hex(),
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		AssetID:  assetID.Dec(),
		Amount:   amount.Dec(),
	}
}

// NewChildrenReceivedEvent builds a children_received notification
func NewChildrenReceivedEvent(from common.Address, parentID uint256.Int, registry common.Address, assetIDs, amounts []uint256.Int) *LedgerEvent {
	return &LedgerEvent{
		Type:     EventTypeChildrenReceived,
		From:     from.Hex(),
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		AssetIDs: DecimalStrings(assetIDs),
		Amounts:  DecimalStrings(amounts),
	}
}

// NewChildTransferredEvent builds a child_transferred notification
func NewChildTransferredEvent(parentID uint256.Int, to common.Address, registry common.Address, assetID, amount uint256.Int) *LedgerEvent {
	return &LedgerEvent{
		Type:     EventTypeChildTransferred,
		To:       to.Hex(),
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		AssetID:  assetID.Dec(),
		Amount:   amount.Dec(),
	}
}

// NewChildrenTransferredEvent builds a children_transferred notification
func NewChildrenTransferredEvent(parentID uint256.Int, to common.Address, registry common.Address, assetIDs, amounts []uint256.Int) *LedgerEvent {
	return &LedgerEvent{
		Type:     EventTypeChildrenTransferred,
		To:       to.Hex(),
		ParentID: parentID.Dec(),
		Registry: registry.Hex(),
		AssetIDs: DecimalStrings(assetIDs),
		Amounts:  DecimalStrings(amounts),
	}
}

// NewTransferRevertedEvent builds the compensation for a committed detach event. It carries the
// same parent, registry, ids and amounts, now credited back to the parent.
func NewTransferRevertedEvent(detach *LedgerEvent) *LedgerEvent {
	return &LedgerEvent{
		Type:     EventTypeTransferReverted,
		To:       detach.To,
		ParentID: detach.ParentID,
		Registry: detach.Registry,
		AssetID:  detach.AssetID,
		Amount:   detach.Amount,
		AssetIDs: detach.AssetIDs,
		Amounts:  detach.Amounts,
		Reverts:  detach.EventID,
	}
}

// MutationKind identifies one primitive change to the ledger's balances or indices
type MutationKind string

const (
	MutationSetBalance     MutationKind = "set_balance"
	MutationAddRegistry    MutationKind = "add_registry"
	MutationRemoveRegistry MutationKind = "remove_registry"
	MutationAddAsset       MutationKind = "add_asset"
	MutationRemoveAsset    MutationKind = "remove_asset"
)

// LedgerMutation is a single staged change. A committed operation is an ordered list of these,
// applied in order to both the database and the in-memory arena.
type LedgerMutation struct {
	Kind     MutationKind
	ParentID uint256.Int
	Registry common.Address
	AssetID  uint256.Int
	Balance  uint256.Int // new balance, MutationSetBalance only
	// Position orders index entries. Add mutations insert at it (zero appends) and remove
	// mutations record the position the entry held, so a revert can put it back.
	Position uint64
}
