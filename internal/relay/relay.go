package relay

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/adapter"
	"github.com/feral-file/ff-composable-ledger/internal/domain"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
	"github.com/feral-file/ff-composable-ledger/internal/messaging"
	"github.com/feral-file/ff-composable-ledger/internal/store"
)

// Config holds the configuration for the journal relay
type Config struct {
	// BatchSize is the number of journal entries read per poll
	BatchSize int
	// PollInterval is how long the relay waits once it has caught up with the journal
	PollInterval time.Duration
	// CursorKey names the relay's cursor in the store
	CursorKey string
	// MaxElapsed bounds the retries of a single publish
	MaxElapsed time.Duration
	// RetryInterval is the first delay between publish attempts
	RetryInterval time.Duration
}

// Relay defines the interface for the journal relay
type Relay interface {
	// Run relays journal entries until the context is cancelled
	Run(ctx context.Context) error
	// Close closes the relay and cleans up resources
	Close()
}

// relay publishes committed ledger events from the journal to the message bus, in sequence
// order and at least once. The cursor advances only after a successful publish.
type relay struct {
	publisher messaging.Publisher
	store     store.Store
	config    Config
	clock     adapter.Clock
}

// NewRelay creates a new journal relay
func NewRelay(pub messaging.Publisher, st store.Store, cfg Config, clock adapter.Clock) Relay {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = time.Second
	}
	return &relay{
		publisher: pub,
		store:     st,
		config:    cfg,
		clock:     clock,
	}
}

// Run starts relaying from the stored cursor
func (r *relay) Run(ctx context.Context) error {
	cursor, err := r.store.GetEventCursor(ctx, r.config.CursorKey)
	if err != nil {
		return fmt.Errorf("failed to get event cursor: %w", err)
	}

	logger.InfoCtx(ctx, "Starting journal relay",
		zap.String("cursor_key", r.config.CursorKey),
		zap.Uint64("after_sequence", cursor),
	)

	for {
		relayed, err := r.relayBatch(ctx, &cursor)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.ErrorCtx(ctx, err, zap.Uint64("cursor", cursor))
		}

		// keep draining while full batches come back
		if err == nil && relayed == r.config.BatchSize {
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-r.clock.After(r.config.PollInterval):
		}
	}
}

// relayBatch publishes the next batch of journal entries and returns how many were relayed
func (r *relay) relayBatch(ctx context.Context, cursor *uint64) (int, error) {
	events, err := r.store.GetEvents(ctx, store.EventFilter{
		AfterSequence: *cursor,
		Limit:         r.config.BatchSize,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get events: %w", err)
	}

	for i, event := range events {
		if err := r.publishWithRetry(ctx, event); err != nil {
			return i, fmt.Errorf("failed to publish event %d: %w", event.Sequence, err)
		}

		if err := r.store.SetEventCursor(ctx, r.config.CursorKey, event.Sequence); err != nil {
			return i, fmt.Errorf("failed to save event cursor: %w", err)
		}
		*cursor = event.Sequence
	}

	if len(events) > 0 {
		logger.DebugCtx(ctx, "Relayed journal entries",
			zap.Int("count", len(events)),
			zap.Uint64("cursor", *cursor),
		)
	}

	return len(events), nil
}

// publishWithRetry publishes one event with exponential backoff
func (r *relay) publishWithRetry(ctx context.Context, event *domain.LedgerEvent) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.config.RetryInterval
	b.MaxInterval = 30 * time.Second
	b.MaxElapsedTime = r.config.MaxElapsed
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	operation := func() error {
		return r.publisher.PublishEvent(ctx, event)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Publish failed, retrying",
			zap.Error(err),
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	if err := backoff.RetryNotify(operation, backoff.WithContext(b, ctx), notifyOnError); err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount+1, err)
	}
	return nil
}

// Close closes the publisher
func (r *relay) Close() {
	r.publisher.Close()
}
