package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"

	"github.com/feral-file/ff-composable-ledger/internal/store/schema"
)

func eventCursorKey(consumer string) string {
	return fmt.Sprintf("event_cursor:%s", consumer)
}

// GetEventCursor retrieves the last relayed event sequence for a consumer
func (s *pgStore) GetEventCursor(ctx context.Context, consumer string) (uint64, error) {
	var kv schema.KeyValueStore
	err := s.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("key = ?", eventCursorKey(consumer)).
		First(&kv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // Return 0 if no cursor exists
		}
		return 0, fmt.Errorf("failed to get event cursor: %w", err)
	}

	sequence, err := strconv.ParseUint(kv.Value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse event cursor: %w", err)
	}

	return sequence, nil
}

// SetEventCursor stores the last relayed event sequence for a consumer
func (s *pgStore) SetEventCursor(ctx context.Context, consumer string, sequence uint64) error {
	kv := schema.KeyValueStore{
		Key:   eventCursorKey(consumer),
		Value: strconv.FormatUint(sequence, 10),
	}

	if err := s.db.WithContext(ctx).Save(&kv).Error; err != nil {
		return fmt.Errorf("failed to set event cursor: %w", err)
	}

	return nil
}
