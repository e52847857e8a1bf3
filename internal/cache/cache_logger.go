package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern safely invalidates cache pattern with logging
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete safely deletes cache keys with logging
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateNoteCache drops every cache entry a note mutation can stale:
// the record itself, list results, and the metadata sets.
func InvalidateNoteCache(ctx context.Context, cm *CacheManager, noteID string) {
	SafeDelete(ctx, cm.Note, fmt.Sprintf("id:%s", noteID))
	SafeInvalidatePattern(ctx, cm.Note, "list:*")
	SafeInvalidatePattern(ctx, cm.Metadata, "*")
}

// InvalidateUserCache drops cached user lookups after approval changes.
func InvalidateUserCache(ctx context.Context, cm *CacheManager, userID string) {
	SafeDelete(ctx, cm.User, fmt.Sprintf("id:%s", userID))
	SafeInvalidatePattern(ctx, cm.User, "pending:*")
}
