package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// BlacklistToken marks a JWT as revoked until it would have expired anyway.
func BlacklistToken(token string, ttl time.Duration) error {
	return Client.Set(Ctx, "blacklist:"+token, "1", ttl).Err()
}

// IsTokenBlacklisted reports whether a token was revoked via logout.
func IsTokenBlacklisted(token string) bool {
	exists, err := Client.Exists(Ctx, "blacklist:"+token).Result()
	return err == nil && exists > 0
}

// CacheReport stores a rendered report payload under a short TTL.
func CacheReport(key string, payload []byte, ttl time.Duration) error {
	return Client.Set(Ctx, "report:"+key, payload, ttl).Err()
}

// GetCachedReport returns a cached report payload, or nil on a miss.
func GetCachedReport(key string) []byte {
	data, err := Client.Get(Ctx, "report:"+key).Bytes()
	if err != nil {
		return nil
	}
	return data
}
