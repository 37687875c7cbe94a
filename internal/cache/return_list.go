package cache

import (
	"context"
	"fmt"
)

// Return and refund list caching. Each user/role pair owns a generation
// counter; bumping it on mutation invalidates every cached page at once.

func returnListGenKey(userID uint, role string) string {
	return fmt.Sprintf("returns:gen:%d:%s", userID, role)
}

// ReturnListKey builds the cache key for one page of a return list.
func ReturnListKey(userID uint, role, status string, page, pageSize int, gen int64) string {
	return fmt.Sprintf("returns:list:%d:%s:%s:%d:%d:g%d", userID, role, status, page, pageSize, gen)
}

// RefundListKey builds the cache key for one page of a refund list.
func RefundListKey(userID uint, role string, page, pageSize int, gen int64) string {
	return fmt.Sprintf("refunds:list:%d:%s:%d:%d:g%d", userID, role, page, pageSize, gen)
}

// ReturnListGen reads the list generation for a user/role pair. A missing
// counter reads as zero.
func ReturnListGen(ctx context.Context, userID uint, role string) int64 {
	if !Enabled() || userID == 0 {
		return 0
	}
	gen, err := redisClient.Get(ctx, buildKey(returnListGenKey(userID, role))).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// BumpReturnListGen invalidates every cached return and refund page for the
// given users by advancing their generation counters.
func BumpReturnListGen(ctx context.Context, userIDs ...uint) {
	if !Enabled() {
		return
	}
	for _, userID := range userIDs {
		if userID == 0 {
			continue
		}
		for _, role := range []string{"buyer", "seller", ""} {
			redisClient.Incr(ctx, buildKey(returnListGenKey(userID, role)))
		}
	}
}
