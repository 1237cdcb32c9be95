package store

import (
	"context"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/store/schema"
)

// CommitLedgerInput is one atomic ledger change: staged mutations and the events they emit
type CommitLedgerInput struct {
	// Mutations are applied in order
	Mutations []domain.LedgerMutation
	// Events are appended to the journal in order; their Sequence is filled in on success
	Events []*domain.LedgerEvent
}

// LedgerSnapshot is the persisted ledger expressed as a replay: registry index entries and
// asset index entries in insertion order, then balances
type LedgerSnapshot struct {
	Mutations  []domain.LedgerMutation
	LastDigest []byte
}

// EventFilter selects journal entries
type EventFilter struct {
	// AfterSequence returns only events with a greater sequence
	AfterSequence uint64
	// Limit caps the number of events, defaults to 100
	Limit int
	// ParentID restricts events to one parent (decimal)
	ParentID *string
	// Types restricts events to the given types
	Types []domain.EventType
}

// SaveParentInput is the full state of one parent token
type SaveParentInput struct {
	TokenID  string
	Owner    string
	Approved *string
}

// SetParentOperatorInput grants or revokes an owner-wide operator
type SetParentOperatorInput struct {
	Owner    string
	Operator string
	Approved bool
}

// ParentSnapshot is every persisted parent token and operator approval
type ParentSnapshot struct {
	Parents   []schema.Parent
	Operators []schema.ParentOperator
}

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// LoadLedger reads balances and indices for restoring the in-memory ledger
	LoadLedger(ctx context.Context) (*LedgerSnapshot, error)
	// CommitLedger applies mutations and appends events in one transaction
	CommitLedger(ctx context.Context, input CommitLedgerInput) error
	// GetEvents lists journal entries in sequence order
	GetEvents(ctx context.Context, filter EventFilter) ([]*domain.LedgerEvent, error)

	// LoadParents reads every parent token and operator approval
	LoadParents(ctx context.Context) (*ParentSnapshot, error)
	// SaveParent inserts or replaces a parent token
	SaveParent(ctx context.Context, input SaveParentInput) error
	// SetParentOperator grants or revokes an operator approval
	SetParentOperator(ctx context.Context, input SetParentOperatorInput) error

	// GetEventCursor retrieves the last relayed event sequence for a consumer
	GetEventCursor(ctx context.Context, consumer string) (uint64, error)
	// SetEventCursor stores the last relayed event sequence for a consumer
	SetEventCursor(ctx context.Context, consumer string, sequence uint64) error
}
