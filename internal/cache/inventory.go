package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix            = "user:%d"
	TripcardKeyPrefix        = "tripcard:%d"
	TopDestinationsKeyPrefix = "top_destinations:%d"
	DirectorySearchPrefix    = "directory:search:%s:%s"
)

const (
	UserTTL            = 5 * time.Minute
	TripcardTTL        = 5 * time.Minute
	TopDestinationsTTL = 2 * time.Minute
	DirectorySearchTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TripcardKey(tripcardID uint) string {
	return fmt.Sprintf(TripcardKeyPrefix, tripcardID)
}

func TopDestinationsKey(limit int) string {
	return fmt.Sprintf(TopDestinationsKeyPrefix, limit)
}

func DirectorySearchKey(term, location string) string {
	return fmt.Sprintf(DirectorySearchPrefix, term, location)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateTripcard(ctx context.Context, tripcardID uint) {
	Invalidate(ctx, TripcardKey(tripcardID))
}

// InvalidateTopDestinations drops every cached top-destinations window.
// Limits are small and bounded so a scan is unnecessary.
func InvalidateTopDestinations(ctx context.Context) {
	for limit := 1; limit <= 20; limit++ {
		Invalidate(ctx, TopDestinationsKey(limit))
	}
}
