package feed

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/schema"
)

// currentCacheVersion defines the version of the cached feed layout
const currentCacheVersion = 1

// CachedSource stores every successful fetch and, when offline, serves only
// from the store.
type CachedSource struct {
	next    contract.FeedSource
	store   contract.CacheStore
	offline bool
	now     func() time.Time
}

var _ contract.FeedSource = &CachedSource{} // Compile-time check

// NewCachedSource wraps next with store. A nil store returns next unchanged.
func NewCachedSource(next contract.FeedSource, store contract.CacheStore, offline bool) contract.FeedSource {
	if store == nil {
		return next
	}
	return &CachedSource{next: next, store: store, offline: offline, now: time.Now}
}

// Fetch implements contract.FeedSource.
func (s *CachedSource) Fetch(ctx context.Context, url string) ([]byte, error) {
	key := cacheKey(url)
	if s.offline {
		data, version, _, err := s.store.Get(key)
		if err != nil || version != currentCacheVersion {
			return nil, fmt.Errorf("%w: %s is not cached", schema.ErrFeedUnavailable, url)
		}
		return data, nil
	}

	data, err := s.next.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := s.store.Set(key, data, currentCacheVersion, s.now().Unix()); err != nil {
		contract.LogWarn("Failed to cache feed", err)
	}
	return data, nil
}

// cacheKey derives the store key for a feed URL.
func cacheKey(url string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte("feed:"+url)))
}
