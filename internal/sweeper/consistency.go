package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/holiman/uint256"
	"go.uber.org/zap"

	"github.com/feral-file/ff-composable-ledger/internal/adapter"
	"github.com/feral-file/ff-composable-ledger/internal/ledger"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
)

// ErrOrphanedChildren is reported when children are attached to a parent the registry no longer knows
var ErrOrphanedChildren = errors.New("children attached to a missing parent token")

// ParentSource is the part of the parent registry the sweeper reads
//
//go:generate mockgen -source=consistency.go -destination=../mocks/sweeper.go -package=mocks -mock_names=ParentSource=MockParentSource
type ParentSource interface {
	// Load refreshes parent tokens from the store
	Load(ctx context.Context) error
	// Exists reports whether the parent token has been minted
	Exists(ctx context.Context, parentID uint256.Int) (bool, error)
}

// ConsistencySweeperConfig holds configuration for the consistency sweeper
type ConsistencySweeperConfig struct {
	Interval        time.Duration // Time to sleep between sweep cycles
	WorkerPoolSize  int           // Concurrent parent checks
	WorkerQueueSize int           // Pending parent checks
}

// CycleResult summarizes one sweep cycle
type CycleResult struct {
	Checked      int
	Inconsistent int
	Orphaned     int
	Failed       int
}

type consistencySweeper struct {
	config    *ConsistencySweeperConfig
	ledger    ledger.Ledger
	parents   ParentSource
	clock     adapter.Clock
	running   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewConsistencySweeper creates a sweeper that periodically restores the ledger from the store
// and verifies, for every parent holding children, that its indices agree with its balances and
// that the parent token still exists.
func NewConsistencySweeper(
	config *ConsistencySweeperConfig,
	l ledger.Ledger,
	parents ParentSource,
	clock adapter.Clock,
) Sweeper {
	return &consistencySweeper{
		config:    config,
		ledger:    l,
		parents:   parents,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *consistencySweeper) Name() string {
	return "consistency-sweeper"
}

// Start runs sweep cycles until the context is canceled or Stop is called
func (s *consistencySweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting consistency sweeper",
		zap.Duration("interval", s.config.Interval),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
	)

	for {
		if _, err := s.runSweepCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !s.sleep(ctx, s.config.Interval) {
			logger.InfoCtx(ctx, "Consistency sweeper stopping")
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *consistencySweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping consistency sweeper")
	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Consistency sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Consistency sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle restores the ledger and checks every attached parent in a worker pool
func (s *consistencySweeper) runSweepCycle(ctx context.Context) (CycleResult, error) {
	startTime := s.clock.Now()

	if err := s.parents.Load(ctx); err != nil {
		return CycleResult{}, fmt.Errorf("failed to load parent tokens: %w", err)
	}
	if err := s.ledger.Load(ctx); err != nil {
		return CycleResult{}, fmt.Errorf("failed to load ledger: %w", err)
	}

	parentIDs := s.ledger.AttachedParents()
	logger.InfoCtx(ctx, "Starting sweep cycle", zap.Int("parents", len(parentIDs)))

	var inconsistent, orphaned, failed atomic.Int32

	pool := pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.WorkerQueueSize),
		pond.WithContext(ctx),
	)
	for _, parentID := range parentIDs {
		pool.Submit(func() {
			if err := s.ledger.CheckConsistency(parentID); err != nil {
				inconsistent.Add(1)
				logger.ErrorCtx(ctx, err, zap.String("parent_id", parentID.Dec()))
			}

			exists, err := s.parents.Exists(ctx, parentID)
			switch {
			case err != nil:
				failed.Add(1)
				logger.ErrorCtx(ctx, fmt.Errorf("failed to check parent: %w", err), zap.String("parent_id", parentID.Dec()))
			case !exists:
				orphaned.Add(1)
				logger.ErrorCtx(ctx, ErrOrphanedChildren, zap.String("parent_id", parentID.Dec()))
			}
		})
	}
	pool.StopAndWait()

	result := CycleResult{
		Checked:      len(parentIDs),
		Inconsistent: int(inconsistent.Load()),
		Orphaned:     int(orphaned.Load()),
		Failed:       int(failed.Load()),
	}

	logger.InfoCtx(ctx, "Sweep cycle completed",
		zap.Duration("duration", s.clock.Since(startTime)),
		zap.Int("checked", result.Checked),
		zap.Int("inconsistent", result.Inconsistent),
		zap.Int("orphaned", result.Orphaned),
		zap.Int("failed", result.Failed),
	)

	return result, ctx.Err()
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *consistencySweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
