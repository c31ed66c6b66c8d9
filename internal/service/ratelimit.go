package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit atomically claims a per-user action slot in redis.
// Returns false when the window is still held. A nil client disables the
// limiter (single-instance development without redis).
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, userID uint64, action string, window time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}
	key := fmt.Sprintf("rate_limit:user:%d:%s", userID, action)
	wasSet, err := rdb.SetNX(ctx, key, "locked", window).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	return wasSet, nil
}
