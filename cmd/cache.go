package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/internal/iocache"
	"github.com/huangsam/groupstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(strings.ToLower(strings.TrimSpace(viper.GetString("cache-backend"))))
	if _, ok := schema.ValidCacheBackends[backend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite or none", backend)
	}
	connStr := viper.GetString("cache-db-connect")

	if err := iocache.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr
	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the commit history cache",
	Long: `Manage the optional cache of raw commit history.

With --cache-backend sqlite, groupstats stores the output of git log keyed by
repository, ref and HEAD commit, so repeated runs skip the history walk.
Statistics are always recomputed. The default backend is none.

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  groupstats cache status --cache-backend sqlite
  GROUPSTATS_CACHE_BACKEND=sqlite groupstats cache clear`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:     "clear",
	Short:   "Remove all cached commit history",
	Long:    `Delete the SQLite cache file. Use this after history was rewritten.`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// The open handle would keep the file alive on some platforms
		iocache.CloseCaching()
		dbFile := cfg.CacheDBConnect
		if dbFile == "" {
			dbFile = iocache.GetDBFilePath()
		}
		if err := iocache.ClearCache(cfg.CacheBackend, dbFile); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show the backend, the number of cached logs, the newest and oldest
entry and the size of the cache table.`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := iocache.Manager.GetHistoryStore()
		if store == nil {
			contract.LogFatal("Failed to get cache status", fmt.Errorf("cache is not initialized"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
