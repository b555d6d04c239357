package lib

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

var redisClient *redis.Client

func GetRedisClient() *redis.Client {
	if redisClient != nil {
		return redisClient
	}
	redisHost := os.Getenv("REDIS_HOST")
	opt, err := redis.ParseURL(redisHost)
	if err != nil {
		log.Printf("[redis] Error parsing connection string: %s\n", err.Error())
		return nil
	}
	rdb := redis.NewClient(opt)
	redisClient = rdb
	return rdb
}

// NewRedisClient Replace redis instance with custom client implementation
func NewRedisClient(c *redis.Client) *redis.Client {
	redisClient = c
	return redisClient
}

// Guard marks a key as busy for at most ttl. Acquire reports false when
// the key is already held.
type Guard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

const guardPrefix = "acelera:inflight:"

type RedisGuard struct {
	client *redis.Client
}

func NewRedisGuard(c *redis.Client) *RedisGuard {
	return &RedisGuard{client: c}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardPrefix+key, time.Now().UnixMilli(), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("[redis] could not acquire %s: %w", key, err)
	}
	return ok, nil
}

func (g *RedisGuard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, guardPrefix+key).Err()
}

type MemoryGuard struct {
	mu   sync.Mutex
	keys map[string]time.Time
}

func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{keys: map[string]time.Time{}}
}

func (g *MemoryGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now()
	if exp, ok := g.keys[key]; ok && now.Before(exp) {
		return false, nil
	}
	g.keys[key] = now.Add(ttl)
	return true, nil
}

func (g *MemoryGuard) Release(ctx context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, key)
	return nil
}

// NewGuard uses redis when REDIS_HOST is set.
func NewGuard() Guard {
	if os.Getenv("REDIS_HOST") != "" {
		if c := GetRedisClient(); c != nil {
			return NewRedisGuard(c)
		}
	}
	return NewMemoryGuard()
}
