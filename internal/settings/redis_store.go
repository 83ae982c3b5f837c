package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key settings are stored under
const DefaultRedisKey = "klondike:settings"

// RedisStore keeps settings as a YAML blob under a single Redis key
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store using an existing client
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// DialRedis connects to addr and checks the server is reachable
func DialRedis(ctx context.Context, addr, key string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return NewRedisStore(client, key), nil
}

// Load fetches the blob, returning defaults if the key is absent
func (rs *RedisStore) Load(ctx context.Context) (Settings, error) {
	data, err := rs.client.Get(ctx, rs.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("failed to load settings: %w", err)
	}
	return decode(data)
}

// Save stores the blob without expiry
func (rs *RedisStore) Save(ctx context.Context, s Settings) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := rs.client.Set(ctx, rs.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Close closes the client
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
