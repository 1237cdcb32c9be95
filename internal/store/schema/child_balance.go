package schema

import (
	"time"
)

// ChildBalance represents the child_balances table - the arena of attached child balances,
// one row per (parent, registry, asset) with a positive amount
type ChildBalance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ParentID is the parent token id (stored as numeric to hold the full uint256 range)
	ParentID string `gorm:"column:parent_id;not null;type:numeric(78,0);uniqueIndex:idx_child_balances_key,priority:1"`
	// Registry is the checksummed address of the child registry
	Registry string `gorm:"column:registry;not null;type:text;uniqueIndex:idx_child_balances_key,priority:2"`
	// AssetID is the child asset id within the registry
	AssetID string `gorm:"column:asset_id;not null;type:numeric(78,0);uniqueIndex:idx_child_balances_key,priority:3"`
	// Amount is the attached balance, always positive; zero balances are deleted
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// CreatedAt is the timestamp when the balance first became positive
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ChildBalance model
func (ChildBalance) TableName() string {
	return "child_balances"
}

// ChildRegistryIndex represents the child_registry_index table - per parent, the registries
// with at least one positive balance. Seq is the index position assigned by the ledger; a
// reverted detach re-inserts the row with the seq it had, keeping the original order.
type ChildRegistryIndex struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ParentID  string    `gorm:"column:parent_id;not null;type:numeric(78,0);uniqueIndex:idx_child_registry_index_key,priority:1"`
	Registry  string    `gorm:"column:registry;not null;type:text;uniqueIndex:idx_child_registry_index_key,priority:2"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ChildRegistryIndex model
func (ChildRegistryIndex) TableName() string {
	return "child_registry_index"
}

// ChildAssetIndex represents the child_asset_index table - per (parent, registry), the asset
// ids with a positive balance. Seq is the ledger-assigned index position, as for ChildRegistryIndex.
type ChildAssetIndex struct {
	Seq       int64     `gorm:"column:seq;primaryKey;autoIncrement"`
	ParentID  string    `gorm:"column:parent_id;not null;type:numeric(78,0);uniqueIndex:idx_child_asset_index_key,priority:1"`
	Registry  string    `gorm:"column:registry;not null;type:text;uniqueIndex:idx_child_asset_index_key,priority:2"`
	AssetID   string    `gorm:"column:asset_id;not null;type:numeric(78,0);uniqueIndex:idx_child_asset_index_key,priority:3"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the ChildAssetIndex model
func (ChildAssetIndex) TableName() string {
	return "child_asset_index"
}
