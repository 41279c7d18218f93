package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// RedisCache is a Redis-backed translation cache. Expiry is delegated to
// Redis key TTLs and capacity to the server's maxmemory policy, so it needs no
// snapshot: the server is the durable copy.
type RedisCache struct {
	client    *redis.Client
	ttl       time.Duration
	keyPrefix string
	timeout   time.Duration
	logger    *logrus.Logger
}

// RedisConfig holds configuration for the Redis cache.
type RedisConfig struct {
	URL       string        // Redis connection URL (e.g., "redis://localhost:6379")
	TTL       time.Duration // Key lifetime (0 = no expiration)
	KeyPrefix string        // Prefix for all keys (default: "transly:")
}

const defaultRedisPrefix = "transly:"

// NewRedisCache creates a new Redis cache with the given configuration.
func NewRedisCache(ctx context.Context, cfg RedisConfig) (*RedisCache, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	// Test connection
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return NewRedisCacheFromClient(client, cfg.TTL, cfg.KeyPrefix), nil
}

// NewRedisCacheFromClient creates a RedisCache from an existing Redis client.
func NewRedisCacheFromClient(client *redis.Client, ttl time.Duration, keyPrefix string) *RedisCache {
	if keyPrefix == "" {
		keyPrefix = defaultRedisPrefix
	}
	if ttl < 0 {
		ttl = 0
	}

	return &RedisCache{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
		timeout:   5 * time.Second,
		logger:    logrus.New(),
	}
}

// WithLogger sets the logger that reports server errors.
func (c *RedisCache) WithLogger(logger *logrus.Logger) *RedisCache {
	if logger != nil {
		c.logger = logger
	}
	return c
}

// Get retrieves a value from Redis. Server errors are logged and reported as misses.
func (c *RedisCache) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	val, err := c.client.Get(ctx, c.redisKey(key)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		c.logger.WithError(err).Warn("Redis lookup failed, treating as cache miss")
		return "", false
	}
	return val, true
}

// Put stores a value in Redis.
func (c *RedisCache) Put(key string, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	return c.client.Set(ctx, c.redisKey(key), value, c.ttl).Err()
}

// Persist is a no-op: writes already went to the server.
func (c *RedisCache) Persist(ctx context.Context) error {
	return nil
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Ping tests the Redis connection.
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// redisKey hashes the composite key; raw texts can be long and contain anything.
func (c *RedisCache) redisKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return c.keyPrefix + hex.EncodeToString(sum[:])
}

// Verify RedisCache implements Store
var _ Store = (*RedisCache)(nil)
