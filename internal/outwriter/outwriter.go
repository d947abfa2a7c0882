// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteStats prints a statistics run using the configured output format.
func (ow *OutWriter) WriteStats(result schema.StatsResult, cfg *contract.Config, duration time.Duration) error {
	return WriteStatsResults(result, cfg, duration)
}

// WriteAliases prints the alias store content in the given format.
func (ow *OutWriter) WriteAliases(listing schema.AliasListing, mode schema.OutputMode, outputFile string) error {
	return WriteAliasListing(listing, mode, outputFile)
}
