package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Catalog cache keys
const (
	PickerKey      = "catalog:picker"
	CatalogTreeKey = "catalog:tree"
)

var client *redis.Client

// Init initializes the Redis connection
func Init() error {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Close the failed client and set to nil for graceful degradation
		client.Close()
		client = nil
		return err
	}
	return nil
}

// hashCredentials creates a hash of username+password for cache key
func hashCredentials(username, password string) string {
	h := sha256.New()
	h.Write([]byte(username + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if credentials are cached and valid
func GetCachedAuth(ctx context.Context, username, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(username, password)
	userID, err := client.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, username, password string, userID int) {
	if client == nil {
		return
	}
	key := hashCredentials(username, password)
	client.Set(ctx, key, userID, 15*time.Minute)
}

// GetCachedCatalog returns a cached catalog payload if available
func GetCachedCatalog(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// CacheCatalog caches a catalog payload for 10 minutes. Any catalog
// mutation calls InvalidateCatalog, so the TTL only covers external
// writes to the database.
func CacheCatalog(ctx context.Context, key string, data []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, 10*time.Minute)
}

// InvalidateCatalog drops the cached picker and tree payloads
func InvalidateCatalog(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, PickerKey, CatalogTreeKey)
}
