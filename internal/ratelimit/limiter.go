package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/feral-file/ff-composable-ledger/internal/adapter"
	"github.com/feral-file/ff-composable-ledger/internal/logger"
)

// ErrLimiterClosed is returned by Allow after Close
var ErrLimiterClosed = errors.New("rate limiter is closed")

// maxLocalKeys bounds the number of per-caller local limiters kept in memory
const maxLocalKeys = 10000

// Config holds the rate limiter configuration
type Config struct {
	// RequestsPerSecond is the sustained rate allowed per caller
	RequestsPerSecond int
	// Burst is the number of requests a caller may make at once, defaults to RequestsPerSecond
	Burst int
	// KeyPrefix namespaces the Redis keys
	KeyPrefix string
	// EnableLocalFallback limits in-process while Redis is unreachable
	EnableLocalFallback bool
	// LocalFallbackMultiplier scales the per-instance rate used by the local fallback
	LocalFallbackMultiplier float64
	// HealthCheckInterval is how often an unreachable Redis is checked again
	HealthCheckInterval time.Duration
}

// Decision is the outcome of one Allow call
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter limits how often a caller may perform ledger writes
//
//go:generate mockgen -source=limiter.go -destination=../mocks/rate_limiter.go -package=mocks -mock_names=Limiter=MockRateLimiter
type Limiter interface {
	// Allow consumes one request for key and reports whether it may proceed
	Allow(ctx context.Context, key string) (Decision, error)

	// Close stops the health check and closes the Redis connection
	Close() error
}

type limiter struct {
	config         Config
	redis          adapter.RedisClient
	distributed    adapter.RedisRateLimiter
	clock          adapter.Clock
	redisAvailable atomic.Bool
	closed         atomic.Bool
	closeOnce      sync.Once
	closeCh        chan struct{}
	doneCh         chan struct{}

	mu    sync.Mutex
	local map[string]*rate.Limiter
}

// NewLimiter creates a rate limiter that counts requests in Redis and, when enabled, falls back
// to per-instance limiters while Redis is unreachable
func NewLimiter(cfg Config, rc adapter.RedisClient, clock adapter.Clock) (Limiter, error) {
	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisAvailable := true
	if err := rc.Ping(ctx); err != nil {
		redisAvailable = false
		if !cfg.EnableLocalFallback {
			return nil, fmt.Errorf("redis unavailable and fallback disabled: %w", err)
		}
		logger.Warn("Redis unavailable, will use local fallback", zap.Error(err))
	}

	l := &limiter{
		config:      cfg,
		redis:       rc,
		distributed: rc.NewRateLimiter(),
		clock:       clock,
		closeCh:     make(chan struct{}),
		doneCh:      make(chan struct{}),
		local:       make(map[string]*rate.Limiter),
	}
	l.redisAvailable.Store(redisAvailable)

	go l.monitorRedisHealth()

	logger.Info("Rate limiter initialized",
		zap.Int("requests_per_second", cfg.RequestsPerSecond),
		zap.Int("burst", cfg.Burst),
		zap.Bool("local_fallback", cfg.EnableLocalFallback),
	)

	return l, nil
}

func (l *limiter) Allow(ctx context.Context, key string) (Decision, error) {
	if l.closed.Load() {
		return Decision{}, ErrLimiterClosed
	}

	if l.redisAvailable.Load() {
		d, err := l.allowDistributed(ctx, key)
		if err == nil {
			return d, nil
		}
		if ctx.Err() != nil {
			return Decision{}, ctx.Err()
		}

		// Redis error - mark as unavailable and fall back to local if enabled
		l.redisAvailable.Store(false)
		if !l.config.EnableLocalFallback {
			return Decision{}, fmt.Errorf("redis rate limiter unavailable: %w", err)
		}
		logger.WarnCtx(ctx, "Redis rate limiter error, falling back to local", zap.Error(err))
	}

	if !l.config.EnableLocalFallback {
		return Decision{}, errors.New("redis rate limiter unavailable")
	}

	return l.allowLocal(key), nil
}

func (l *limiter) allowDistributed(ctx context.Context, key string) (Decision, error) {
	res, err := l.distributed.Allow(ctx, l.config.KeyPrefix+key, redis_rate.Limit{
		Rate:   l.config.RequestsPerSecond,
		Burst:  l.config.Burst,
		Period: time.Second,
	})
	if err != nil {
		return Decision{}, err
	}

	if res.Allowed == 0 {
		logger.DebugCtx(ctx, "Rate limit exceeded",
			zap.String("key", key),
			zap.Duration("retry_after", res.RetryAfter),
		)
	}

	return Decision{
		Allowed:    res.Allowed > 0,
		Remaining:  res.Remaining,
		RetryAfter: res.RetryAfter,
	}, nil
}

func (l *limiter) allowLocal(key string) Decision {
	l.mu.Lock()
	lim, ok := l.local[key]
	if !ok {
		if len(l.local) >= maxLocalKeys {
			l.local = make(map[string]*rate.Limiter)
		}
		// Minimum rate of 1.0
		localRate := max(float64(l.config.RequestsPerSecond)*l.config.LocalFallbackMultiplier, 1.0)
		lim = rate.NewLimiter(rate.Limit(localRate), l.config.Burst)
		l.local[key] = lim
	}
	l.mu.Unlock()

	now := l.clock.Now()
	r := lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return Decision{Allowed: false, RetryAfter: delay}
	}

	return Decision{Allowed: true, Remaining: int(lim.TokensAt(now))}
}

// monitorRedisHealth pings Redis while it is marked unavailable and restores distributed limiting
func (l *limiter) monitorRedisHealth() {
	defer close(l.doneCh)

	for {
		select {
		case <-l.closeCh:
			return
		case <-l.clock.After(l.config.HealthCheckInterval):
		}

		if l.redisAvailable.Load() {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := l.redis.Ping(ctx)
		cancel()

		if err == nil {
			l.redisAvailable.Store(true)
			logger.Info("Redis connection restored")
		}
	}
}

func (l *limiter) Close() error {
	var err error
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.closeCh)
		<-l.doneCh

		if closeErr := l.redis.Close(); closeErr != nil {
			logger.Warn("Error closing Redis connection", zap.Error(closeErr))
			err = closeErr
		}

		logger.Info("Rate limiter shutdown complete")
	})
	return err
}

// validateConfig validates and sets defaults for the configuration
func validateConfig(cfg *Config) error {
	if cfg.RequestsPerSecond <= 0 {
		return errors.New("requests_per_second must be positive")
	}
	if cfg.Burst <= 0 {
		cfg.Burst = cfg.RequestsPerSecond
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "ff:ledger:limiter:"
	}
	if cfg.LocalFallbackMultiplier <= 0 {
		cfg.LocalFallbackMultiplier = 0.5
	}
	if cfg.HealthCheckInterval <= 0 {
		cfg.HealthCheckInterval = 10 * time.Second
	}
	return nil
}
