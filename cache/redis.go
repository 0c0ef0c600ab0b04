package cache

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const statusTTL = 5 * time.Minute

func Connect(addr string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "",
		DB:       0,
	})

	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	log.Println("Redis connected (payment-intent service)")
	return rdb
}

func statusKey(transactionID string) string {
	return "payment_status:" + transactionID
}

// GetStatus returns the cached status, or "" on a miss. Cache errors
// count as misses.
func GetStatus(ctx context.Context, rdb *redis.Client, transactionID string) string {
	if rdb == nil {
		return ""
	}
	v, err := rdb.Get(ctx, statusKey(transactionID)).Result()
	if err != nil {
		return ""
	}
	return v
}

func SetStatus(ctx context.Context, rdb *redis.Client, transactionID, status string) {
	if rdb == nil {
		return
	}
	rdb.Set(ctx, statusKey(transactionID), status, statusTTL)
}

// InvalidateStatus drops the cached status after a transition so the
// next poll reads the fresh value from the store.
func InvalidateStatus(ctx context.Context, rdb *redis.Client, transactionID string) {
	if rdb == nil {
		return
	}
	rdb.Del(ctx, statusKey(transactionID))
}
