// Package cache 报表结果缓存
package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Cache 报表缓存接口，值为序列化后的报表
// 缓存失败只影响性能，所以 Set 不返回错误
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache 进程内 TTL 缓存
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]memoryEntry
	now   func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{items: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = memoryEntry{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

// RedisCache Redis 缓存，多实例部署时共享
// Redis 故障按未命中处理，但会记录 Warn 日志
type RedisCache struct {
	client *redis.Client
	prefix string
	logger *zap.Logger
}

func NewRedisCache(client *redis.Client, prefix string, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{client: client, prefix: prefix, logger: logger}
}

// NewRedisClient 初始化 Redis 连接并 Ping
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Report cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		c.logger.Warn("Report cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// NoopCache 关闭缓存时使用
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (NoopCache) Set(context.Context, string, []byte, time.Duration) {}

// New 按配置选择缓存后端：memory / redis / none
func New(ctx context.Context, backend, redisAddr, redisPassword string, redisDB int, logger *zap.Logger) (Cache, error) {
	switch backend {
	case "memory", "":
		return NewMemoryCache(), nil
	case "redis":
		client, err := NewRedisClient(ctx, redisAddr, redisPassword, redisDB)
		if err != nil {
			return nil, err
		}
		return NewRedisCache(client, "finscale:reports:", logger), nil
	case "none":
		return NoopCache{}, nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", backend)
	}
}
