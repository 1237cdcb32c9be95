package schema

import (
	"time"

	"gorm.io/datatypes"
)

// LedgerEvent represents the ledger_events table - the ordered, append-only journal of
// ledger notifications, chained by digest
type LedgerEvent struct {
	// Sequence is an auto-incrementing position used as the relay cursor
	Sequence int64 `gorm:"column:sequence;primaryKey;autoIncrement"`
	// EventID is the ULID of the event
	EventID string `gorm:"column:event_id;not null;type:text;uniqueIndex"`
	// EventType is child_received, children_received, child_transferred, children_transferred
	// or transfer_reverted
	EventType string `gorm:"column:event_type;not null;type:text"`
	// ParentID is the parent token the event concerns
	ParentID string `gorm:"column:parent_id;not null;type:numeric(78,0);index"`
	// Registry is the child registry address
	Registry string `gorm:"column:registry;not null;type:text"`
	// Payload is the full event as JSON
	Payload datatypes.JSON `gorm:"column:payload;not null;type:jsonb"`
	// Digest is the hex sha256 chain digest of the event
	Digest string `gorm:"column:digest;not null;type:text"`
	// OccurredAt is the ledger clock at emission
	OccurredAt time.Time `gorm:"column:occurred_at;not null;type:timestamptz"`
	// CreatedAt is the timestamp when the row was written
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the LedgerEvent model
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
