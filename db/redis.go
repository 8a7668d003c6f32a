package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// Cache key namespaces. Everything this service writes lives under the
// newslens: prefix so ClearCache cannot touch other tenants.
const (
	KeyPrefix       = "newslens:"
	ArticleCacheKey = KeyPrefix + "articles:"
	TLDRCacheKey    = KeyPrefix + "tldr:"
)

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(context.Background()).Result()
	if err != nil {
		Redis = nil
	}
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// CacheEnabled reports whether a redis connection is available. All cache
// helpers are no-ops (misses) when it is not.
func CacheEnabled() bool {
	return Redis != nil
}

func CacheGet(ctx context.Context, key string) (string, bool, error) {
	if Redis == nil {
		return "", false, nil
	}

	val, err := Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	if Redis == nil {
		return nil
	}
	return Redis.Set(ctx, key, value, ttl).Err()
}

// CacheDeleteByPrefix removes every key under prefix and returns how many
// were deleted.
func CacheDeleteByPrefix(ctx context.Context, prefix string) (int, error) {
	if Redis == nil {
		return 0, nil
	}

	deleted := 0
	iter := Redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := Redis.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}

// CacheCount returns the number of keys under prefix.
func CacheCount(ctx context.Context, prefix string) (int, error) {
	if Redis == nil {
		return 0, nil
	}

	count := 0
	iter := Redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		count++
	}
	return count, iter.Err()
}
