package cart

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// KV is the narrow key-value surface the cart store needs. The second Get
// return reports whether the key existed.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// RedisKV adapts a redis client to KV with a fixed TTL per cart.
type RedisKV struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisKV wraps a redis client.
func NewRedisKV(client *redis.Client, ttl time.Duration) *RedisKV {
	return &RedisKV{Client: client, TTL: ttl}
}

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, value string) error {
	return r.Client.Set(ctx, key, value, r.TTL).Err()
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}

// Store caches one cart per customer so a relaunch restores the last cart.
// Reads fail open: a missing, corrupt, or unreachable entry is an empty
// cart, never an error for the caller.
type Store struct {
	kv KV
}

// NewStore constructs a Store over the given KV backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

func cartKey(customerID string) string {
	return "cart:" + customerID
}

// Load returns the cached cart for the customer, or an empty cart.
func (s *Store) Load(ctx context.Context, customerID string) Cart {
	raw, found, err := s.kv.Get(ctx, cartKey(customerID))
	if err != nil {
		log.Printf("[Cart] cache read failed for %s: %v", customerID, err)
		return Cart{}
	}
	if !found {
		return Cart{}
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		log.Printf("[Cart] corrupt cache entry for %s, dropping: %v", customerID, err)
		if delErr := s.kv.Del(ctx, cartKey(customerID)); delErr != nil {
			log.Printf("[Cart] failed to drop corrupt entry for %s: %v", customerID, delErr)
		}
		return Cart{}
	}
	return c
}

// Save writes the cart back to the cache.
func (s *Store) Save(ctx context.Context, customerID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, cartKey(customerID), string(raw))
}

// Clear removes the cached cart, used after checkout or a confirmed
// restaurant switch.
func (s *Store) Clear(ctx context.Context, customerID string) error {
	return s.kv.Del(ctx, cartKey(customerID))
}
