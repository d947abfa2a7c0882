package core

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/huangsam/groupstats/internal/contract"
)

// currentCacheVersion defines the version of the cached log format
const currentCacheVersion = 1

// cacheTTL bounds how long a cached log is trusted
const cacheTTL = 7 * 24 * time.Hour

// cachedCommitLog returns the raw commit log of cfg.RepoPath at cfg.Ref,
// reading it from the history store when a fresh entry exists.
func cachedCommitLog(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) ([]byte, error) {
	var history contract.CacheStore
	if mgr != nil {
		history = mgr.GetHistoryStore()
	}
	if history == nil {
		// Fallback to direct retrieval
		return client.GetCommitLog(ctx, cfg.RepoPath, cfg.Ref)
	}

	key, ok := generateCacheKey(ctx, cfg, client)
	if !ok {
		return client.GetCommitLog(ctx, cfg.RepoPath, cfg.Ref)
	}

	// Check for cache hit
	if data := checkCacheHit(history, key, time.Now()); data != nil {
		return data, nil
	}

	// Cache miss: fetch and store
	data, err := client.GetCommitLog(ctx, cfg.RepoPath, cfg.Ref)
	if err != nil {
		return nil, err
	}
	if err := history.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
		contract.LogWarn("Could not cache commit log", err)
	}
	return data, nil
}

// checkCacheHit returns a cached log that matches the current version and is
// younger than cacheTTL, or nil.
func checkCacheHit(history contract.CacheStore, key string, now time.Time) []byte {
	data, version, ts, err := history.Get(key)
	if err != nil || data == nil {
		return nil // Cache miss
	}
	if version != currentCacheVersion {
		return nil
	}
	if now.Sub(time.Unix(ts, 0)) > cacheTTL {
		return nil
	}
	return data
}

// generateCacheKey hashes the repository, the ref and the commit the ref
// points to, so any new commit invalidates the entry. It reports false when
// the commit cannot be resolved.
func generateCacheKey(ctx context.Context, cfg *contract.Config, client contract.GitClient) (string, bool) {
	repoHash, err := client.GetRepoHash(ctx, cfg.RepoPath, cfg.Ref)
	if err != nil || repoHash == "" {
		return "", false
	}
	key := fmt.Sprintf("%s:%s:%s", cfg.RepoPath, cfg.Ref, repoHash)
	return fmt.Sprintf("%x", sha256.Sum256([]byte(key))), true
}
