// Package iocache persists feed bodies and update run history.
package iocache

import (
	"sync"

	"github.com/huangsam/relicdb/internal/contract"
)

// StoreManager manages the feed cache and run history stores.
type StoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	feeds        contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &StoreManager{} // Compile-time check

// GetFeedStore returns the feed CacheStore, or nil when caching is disabled.
func (mgr *StoreManager) GetFeedStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.feeds
}

// GetRunStore returns the RunStore, or nil when run tracking is disabled.
func (mgr *StoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
