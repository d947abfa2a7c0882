// Package iocache is for caching I/O calls.
package iocache

import (
	"sync"

	"github.com/huangsam/groupstats/internal/contract"
)

// CacheStoreManager manages the history CacheStore.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointer during initialization
	history      contract.CacheStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetHistoryStore returns the history CacheStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
