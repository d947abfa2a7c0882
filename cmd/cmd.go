// Package cmd defines the command-line interface for groupstats.
package cmd

import (
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(aliasCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the alias subcommands to the parent alias command
	aliasCmd.AddCommand(aliasAddCmd)
	aliasCmd.AddCommand(aliasDeleteCmd)
	aliasCmd.AddCommand(aliasResetCmd)
	aliasCmd.AddCommand(aliasPathCmd)
	aliasCmd.AddCommand(aliasListCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("store", "", "Path to the alias store (default $HOME/.groupstats_aliases)")
	rootCmd.PersistentFlags().StringP("output", "o", string(schema.TextOut), "Output format: text or csv or json or parquet (alias list: text or json or yaml)")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("color", "yes", "Highlight column maxima and minima in table output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.NoneBackend), "History cache backend: sqlite or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "SQLite file for the history cache (default $HOME/.groupstats_cache.db)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of statsCmd to Viper
	statsCmd.Flags().StringP("path", "p", "", "Repository path, overriding the path stored in the alias store")
	statsCmd.Flags().BoolP("exclusive", "e", false, "Only credit contributors listed in the alias store")
	statsCmd.Flags().BoolP("ignore-config", "i", false, "Credit raw committer names without alias folding")
	statsCmd.Flags().BoolP("autogenerate", "a", false, "Credit the bracketed name list in each commit header")
	statsCmd.Flags().StringSliceP("filter", "f", nil, "Header keywords; a commit must match one (case-sensitive)")
	statsCmd.Flags().StringSliceP("search", "s", nil, "Terms searched in header and body (case-sensitive)")
	statsCmd.Flags().StringSliceP("ci-search", "c", nil, "Terms searched in header and body (case-insensitive)")
	statsCmd.Flags().StringSliceP("exclude", "x", nil, "Identities that are never credited")
	statsCmd.Flags().StringSliceP("branch", "b", nil, "Branch names (accepted but ignored)")
	statsCmd.Flags().StringP("time", "t", "", "Only count commits within this window, e.g. '2 weeks' or '3d'")
	if err := viper.BindPFlags(statsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding stats flags", err)
	}
}
