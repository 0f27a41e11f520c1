package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gym_backend/internal/models"
)

// ClientListKey stores the JSON-encoded client list.
const ClientListKey = "gym:clientes:lista"

const opTimeout = 2 * time.Second

// RedisClientListCache keeps GET /clientes results in Redis until a client write.
type RedisClientListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClientListCache connects to addr and pings it.
func NewRedisClientListCache(ctx context.Context, addr, password string, db int, ttl time.Duration) (*RedisClientListCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return newRedisClientListCache(client, ttl), nil
}

func newRedisClientListCache(client *redis.Client, ttl time.Duration) *RedisClientListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisClientListCache{client: client, ttl: ttl}
}

// Get returns the cached list; ok is false on a miss.
func (c *RedisClientListCache) Get(ctx context.Context) ([]models.Client, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	raw, err := c.client.Get(ctx, ClientListKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get client list from Redis: %w", err)
	}

	var clients []models.Client
	if err := json.Unmarshal(raw, &clients); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached client list: %w", err)
	}
	return clients, true, nil
}

func (c *RedisClientListCache) Set(ctx context.Context, clients []models.Client) error {
	raw, err := json.Marshal(clients)
	if err != nil {
		return fmt.Errorf("failed to encode client list: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return c.client.Set(ctx, ClientListKey, raw, c.ttl).Err()
}

func (c *RedisClientListCache) Invalidate(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()
	return c.client.Del(ctx, ClientListKey).Err()
}

func (c *RedisClientListCache) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}
