// Package core has the orchestration for contributor statistics runs.
package core

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/groupstats/core/agg"
	"github.com/huangsam/groupstats/core/classify"
	"github.com/huangsam/groupstats/internal/aliasstore"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/internal/outwriter"
	"github.com/huangsam/groupstats/schema"
)

// ExecuteStats runs a statistics pass and prints the results using the configured output.
// It serves as the main entry point for the 'stats' command.
func ExecuteStats(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) error {
	start := time.Now()
	result, err := GetStatsResult(ctx, cfg, client, mgr)
	if err != nil {
		return err
	}
	duration := time.Since(start)
	return outwriter.NewOutWriter().WriteStats(result, cfg, duration)
}

// GetStatsResult classifies every commit reachable from cfg.Ref, aggregates
// the credited ones and returns the finalized rows.
func GetStatsResult(ctx context.Context, cfg *contract.Config, client contract.GitClient, mgr contract.CacheManager) (schema.StatsResult, error) {
	if !shouldSuppressHeader(ctx) {
		logStatsHeader(cfg)
	}

	aliases, err := loadAliases(cfg)
	if err != nil {
		return schema.StatsResult{}, err
	}

	out, err := cachedCommitLog(ctx, cfg, client, mgr)
	if err != nil {
		return schema.StatsResult{}, fmt.Errorf("failed to read commit history: %w", err)
	}

	classifier := classify.New(cfg.Filter, cfg.Now, aliases)
	aggregator := agg.Aggregate(withContext(ctx, agg.CommitRecords(out)), classifier.Classify)
	if err := ctx.Err(); err != nil {
		return schema.StatsResult{}, err
	}

	return schema.StatsResult{
		RepoPath: cfg.RepoPath,
		Scanned:  aggregator.Scanned(),
		Rows:     agg.Finalize(aggregator.Stats()),
	}, nil
}

// GetAliasListing returns the content of the alias store at cfg.StorePath.
func GetAliasListing(cfg *contract.Config) (schema.AliasListing, error) {
	return aliasstore.New(cfg.StorePath, nil).Listing()
}

// loadAliases reads the alias records unless the run never consults them.
func loadAliases(cfg *contract.Config) ([]schema.AliasRecord, error) {
	if cfg.Filter.Autogenerate || cfg.Filter.IgnoreConfig {
		return nil, nil
	}
	records, err := aliasstore.New(cfg.StorePath, nil).Records()
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	return records, nil
}

// withContext stops the sequence once ctx is done.
func withContext(ctx context.Context, seq iter.Seq[schema.CommitRecord]) iter.Seq[schema.CommitRecord] {
	return func(yield func(schema.CommitRecord) bool) {
		for c := range seq {
			if ctx.Err() != nil || !yield(c) {
				return
			}
		}
	}
}

// modeLabel names the resolution mode for the header.
func modeLabel(f contract.FilterConfig) string {
	switch {
	case f.Autogenerate:
		return "autogenerate"
	case f.IgnoreConfig && f.ExclusiveConfig:
		return "exclusive, ignore-config"
	case f.IgnoreConfig:
		return "ignore-config"
	case f.ExclusiveConfig:
		return "exclusive"
	default:
		return "config"
	}
}

// logStatsHeader prints a concise, 2-line header for the run.
func logStatsHeader(cfg *contract.Config) {
	repoName := filepath.Base(cfg.RepoPath)
	if repoName == "" || repoName == "." {
		repoName = "current"
	}
	_, _ = fmt.Fprintf(os.Stderr, "🔎 Repo: %s (Ref: %s, Mode: %s)\n", repoName, cfg.Ref, modeLabel(cfg.Filter))
	if cfg.Filter.TimeWindow {
		since := cfg.Now.Add(-time.Duration(cfg.Filter.TimeBudgetSeconds) * time.Second)
		_, _ = fmt.Fprintf(os.Stderr, "📅 Range: %s → %s\n", since.Format(time.DateTime), cfg.Now.Format(time.DateTime))
	}
}
