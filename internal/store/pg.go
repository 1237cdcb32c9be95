package store

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/store/schema"
)

const (
	DEFAULT_EVENT_LIMIT = 100
	MAX_EVENT_LIMIT     = 1000
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// If any of the pool settings are 0, the defaults of NormalizeConnectionPoolSettings are used.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// RegisterReadReplica routes plain reads to a replica. Reads that must observe the latest
// commit use the dbresolver.Write clause.
func RegisterReadReplica(db *gorm.DB, replica gorm.Dialector) error {
	err := db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{replica},
		Policy:   dbresolver.RandomPolicy{},
	}))
	if err != nil {
		return fmt.Errorf("failed to register read replica: %w", err)
	}
	return nil
}

// LoadLedger reads balances and indices for restoring the in-memory ledger
func (s *pgStore) LoadLedger(ctx context.Context) (*LedgerSnapshot, error) {
	db := s.db.WithContext(ctx).Clauses(dbresolver.Write).Session(&gorm.Session{})

	var registries []schema.ChildRegistryIndex
	if err := db.Order("seq ASC").Find(&registries).Error; err != nil {
		return nil, fmt.Errorf("failed to load child registry index: %w", err)
	}

	var assets []schema.ChildAssetIndex
	if err := db.Order("seq ASC").Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("failed to load child asset index: %w", err)
	}

	var balances []schema.ChildBalance
	if err := db.Order("id ASC").Find(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to load child balances: %w", err)
	}

	snapshot := &LedgerSnapshot{
		Mutations: make([]domain.LedgerMutation, 0, len(registries)+len(assets)+len(balances)),
	}

	for _, r := range registries {
		parentID, err := domain.ParseTokenID(r.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id in registry index: %w", err)
		}
		snapshot.Mutations = append(snapshot.Mutations, domain.LedgerMutation{
			Kind:     domain.MutationAddRegistry,
			ParentID: parentID,
			Registry: common.HexToAddress(r.Registry),
			Position: uint64(r.Seq), //nolint:gosec,G115
		})
	}

	for _, a := range assets {
		parentID, err := domain.ParseTokenID(a.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id in asset index: %w", err)
		}
		assetID, err := domain.ParseTokenID(a.AssetID)
		if err != nil {
			return nil, fmt.Errorf("invalid asset id in asset index: %w", err)
		}
		snapshot.Mutations = append(snapshot.Mutations, domain.LedgerMutation{
			Kind:     domain.MutationAddAsset,
			ParentID: parentID,
			Registry: common.HexToAddress(a.Registry),
			AssetID:  assetID,
			Position: uint64(a.Seq), //nolint:gosec,G115
		})
	}

	for _, b := range balances {
		parentID, err := domain.ParseTokenID(b.ParentID)
		if err != nil {
			return nil, fmt.Errorf("invalid parent id in balances: %w", err)
		}
		assetID, err := domain.ParseTokenID(b.AssetID)
		if err != nil {
			return nil, fmt.Errorf("invalid asset id in balances: %w", err)
		}
		amount, err := domain.ParseAmount(b.Amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount in balances: %w", err)
		}
		snapshot.Mutations = append(snapshot.Mutations, domain.LedgerMutation{
			Kind:     domain.MutationSetBalance,
			ParentID: parentID,
			Registry: common.HexToAddress(b.Registry),
			AssetID:  assetID,
			Balance:  amount,
		})
	}

	var last schema.LedgerEvent
	err := db.Order("sequence DESC").Limit(1).First(&last).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
	case err != nil:
		return nil, fmt.Errorf("failed to load last event: %w", err)
	default:
		snapshot.LastDigest, err = hex.DecodeString(last.Digest)
		if err != nil {
			return nil, fmt.Errorf("invalid digest on event %d: %w", last.Sequence, err)
		}
	}

	return snapshot, nil
}

// CommitLedger applies mutations and appends events in one transaction
func (s *pgStore) CommitLedger(ctx context.Context, input CommitLedgerInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range input.Mutations {
			if err := applyMutation(tx, m); err != nil {
				return err
			}
		}

		for _, event := range input.Events {
			payload, err := json.Marshal(event)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}

			row := schema.LedgerEvent{
				EventID:    event.EventID,
				EventType:  string(event.Type),
				ParentID:   event.ParentID,
				Registry:   event.Registry,
				Payload:    payload,
				Digest:     event.Digest,
				OccurredAt: event.Timestamp,
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to append event: %w", err)
			}
			event.Sequence = uint64(row.Sequence) //nolint:gosec,G115
		}

		return nil
	})
}

// applyMutation writes a single staged change within a transaction
func applyMutation(tx *gorm.DB, m domain.LedgerMutation) error {
	parentID := m.ParentID.Dec()
	registry := m.Registry.Hex()
	assetID := m.AssetID.Dec()

	switch m.Kind {
	case domain.MutationSetBalance:
		if m.Balance.IsZero() {
			err := tx.Where("parent_id = ? AND registry = ? AND asset_id = ?", parentID, registry, assetID).
				Delete(&schema.ChildBalance{}).Error
			if err != nil {
				return fmt.Errorf("failed to delete child balance: %w", err)
			}
			return nil
		}

		row := schema.ChildBalance{
			ParentID: parentID,
			Registry: registry,
			AssetID:  assetID,
			Amount:   m.Balance.Dec(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "parent_id"}, {Name: "registry"}, {Name: "asset_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"amount":     row.Amount,
				"updated_at": gorm.Expr("now()"),
			}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to upsert child balance: %w", err)
		}

	case domain.MutationAddRegistry:
		row := schema.ChildRegistryIndex{Seq: int64(m.Position), ParentID: parentID, Registry: registry} //nolint:gosec,G115
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to index child registry: %w", err)
		}

	case domain.MutationRemoveRegistry:
		err := tx.Where("parent_id = ? AND registry = ?", parentID, registry).
			Delete(&schema.ChildRegistryIndex{}).Error
		if err != nil {
			return fmt.Errorf("failed to unindex child registry: %w", err)
		}

	case domain.MutationAddAsset:
		row := schema.ChildAssetIndex{Seq: int64(m.Position), ParentID: parentID, Registry: registry, AssetID: assetID} //nolint:gosec,G115
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to index child asset: %w", err)
		}

	case domain.MutationRemoveAsset:
		err := tx.Where("parent_id = ? AND registry = ? AND asset_id = ?", parentID, registry, assetID).
			Delete(&schema.ChildAssetIndex{}).Error
		if err != nil {
			return fmt.Errorf("failed to unindex child asset: %w", err)
		}

	default:
		return fmt.Errorf("unknown mutation kind: %s", m.Kind)
	}

	return nil
}

// GetEvents lists journal entries in sequence order
func (s *pgStore) GetEvents(ctx context.Context, filter EventFilter) ([]*domain.LedgerEvent, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = DEFAULT_EVENT_LIMIT
	}
	if limit > MAX_EVENT_LIMIT {
		limit = MAX_EVENT_LIMIT
	}

	query := s.db.WithContext(ctx).
		Where("sequence > ?", filter.AfterSequence).
		Order("sequence ASC").
		Limit(limit)
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}
	if len(filter.Types) > 0 {
		types := make([]string, len(filter.Types))
		for i, t := range filter.Types {
			types[i] = string(t)
		}
		query = query.Where("event_type IN ?", types)
	}

	var rows []schema.LedgerEvent
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}

	events := make([]*domain.LedgerEvent, 0, len(rows))
	for _, row := range rows {
		var event domain.LedgerEvent
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to unmarshal event payload: %w", err),
				zap.Int64("sequence", row.Sequence),
				zap.String("event_id", row.EventID),
			)
			return nil, fmt.Errorf("failed to unmarshal event %d: %w", row.Sequence, err)
		}
		event.Sequence = uint64(row.Sequence) //nolint:gosec,G115
		event.Digest = row.Digest
		events = append(events, &event)
	}

	return events, nil
}

// LoadParents reads every parent token and operator approval
func (s *pgStore) LoadParents(ctx context.Context) (*ParentSnapshot, error) {
	db := s.db.WithContext(ctx).Clauses(dbresolver.Write).Session(&gorm.Session{})

	var snapshot ParentSnapshot
	if err := db.Order("token_id ASC").Find(&snapshot.Parents).Error; err != nil {
		return nil, fmt.Errorf("failed to load parents: %w", err)
	}
	if err := db.Find(&snapshot.Operators).Error; err != nil {
		return nil, fmt.Errorf("failed to load parent operators: %w", err)
	}

	return &snapshot, nil
}

// SaveParent inserts or replaces a parent token
func (s *pgStore) SaveParent(ctx context.Context, input SaveParentInput) error {
	row := schema.Parent{
		TokenID:  input.TokenID,
		Owner:    input.Owner,
		Approved: input.Approved,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "token_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"owner":      input.Owner,
			"approved":   input.Approved,
			"updated_at": gorm.Expr("now()"),
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save parent: %w", err)
	}

	return nil
}

// SetParentOperator grants or revokes an operator approval
func (s *pgStore) SetParentOperator(ctx context.Context, input SetParentOperatorInput) error {
	db := s.db.WithContext(ctx)

	if !input.Approved {
		err := db.Where("owner = ? AND operator = ?", input.Owner, input.Operator).
			Delete(&schema.ParentOperator{}).Error
		if err != nil {
			return fmt.Errorf("failed to revoke parent operator: %w", err)
		}
		return nil
	}

	row := schema.ParentOperator{Owner: input.Owner, Operator: input.Operator}
	err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to grant parent operator: %w", err)
	}

	return nil
}
