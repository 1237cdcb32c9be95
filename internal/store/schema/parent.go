package schema

import (
	"time"
)

// Parent represents the parents table - parent tokens minted by the parent registry
type Parent struct {
	// TokenID is the parent token id
	TokenID string `gorm:"column:token_id;primaryKey;type:numeric(78,0)"`
	// Owner is the checksummed owner address
	Owner string `gorm:"column:owner;not null;type:text;index"`
	// Approved is the single approved address, if any
	Approved *string `gorm:"column:approved;type:text"`
	// CreatedAt is the timestamp when the token was minted
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when ownership or approval last changed
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Parent model
func (Parent) TableName() string {
	return "parents"
}

// ParentOperator represents the parent_operators table - owner-wide operator approvals
type ParentOperator struct {
	Owner     string    `gorm:"column:owner;primaryKey;type:text"`
	Operator  string    `gorm:"column:operator;primaryKey;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ParentOperator model
func (ParentOperator) TableName() string {
	return "parent_operators"
}
