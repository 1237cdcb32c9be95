package adapter

import (
	"context"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
)

// RedisClient defines the Redis operations used by the API rate limiter
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient,RedisRateLimiter=MockRedisRateLimiter
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// NewRateLimiter creates a GCRA rate limiter backed by this client
	NewRateLimiter() RedisRateLimiter

	// Close closes the Redis connection
	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(addr, password string, db int) RedisClient {
	return &redisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClient) NewRateLimiter() RedisRateLimiter {
	return &redisRateLimiter{limiter: redis_rate.NewLimiter(r.client)}
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

// RedisRateLimiter defines the distributed rate limiting operations
type RedisRateLimiter interface {
	// Allow consumes one request for key under limit
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type redisRateLimiter struct {
	limiter *redis_rate.Limiter
}

func (r *redisRateLimiter) Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error) {
	return r.limiter.Allow(ctx, key, limit)
}
