package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	postKeyPrefix = "post:%d"
	postsListKey  = "posts:list"
)

const (
	// PostTTL bounds staleness of the post detail cache.
	PostTTL = 30 * time.Minute
	// PostsListTTL is short because the listing is the landing page.
	PostsListTTL = 5 * time.Minute
)

// PostKey returns the cache key for a post detail entry.
func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

// PostsListKey returns the cache key for the post listing.
func PostsListKey() string {
	return postsListKey
}

// Invalidate removes a single key, ignoring errors and a nil client.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePost drops the cached detail entry for a post and the listing.
func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID))
	Invalidate(ctx, postsListKey)
}

// InvalidatePostsList drops only the cached listing.
func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}
