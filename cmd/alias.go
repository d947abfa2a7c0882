package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/groupstats/core"
	"github.com/huangsam/groupstats/internal/aliasstore"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/internal/outwriter"
	"github.com/huangsam/groupstats/schema"
	"github.com/spf13/cobra"
)

// aliasCmd edits the alias store.
//
// Alias subcommands use storeSetup instead of sharedSetup, so they work
// outside of a repository and never open the cache.
var aliasCmd = &cobra.Command{
	Use:   "alias",
	Short: "Manage canonical contributor names and the default repository",
	Long: `Manage the alias store, a plain text file with one canonical name per line:

  # /path/to/default/repository
  core: Alice, Bob
  ops: Carol

The first line optionally remembers the repository used when stats runs
without a path. Every other line maps a canonical name to its members.

Subcommands:
  add    - Add members to a canonical name
  delete - Remove canonical names
  reset  - Delete the alias store
  path   - Show or set the default repository
  list   - Print the aliases`,
}

// aliasAddCmd adds members to a canonical name.
var aliasAddCmd = &cobra.Command{
	Use:   "add CANONICAL MEMBER...",
	Short: "Add members to a canonical name",
	Long: `Add members to a canonical name. Existing members are kept and the
new ones are appended.

Examples:
  groupstats alias add core Alice Bob
  groupstats alias add "Web Team" "Jane Doe"`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		store := aliasstore.New(cfg.StorePath, os.Stdout)
		if err := store.AddAlias(args); err != nil {
			contract.LogFatal("Cannot add alias", err)
		}
		members, err := store.GetNamesWithAlias(args[0])
		if err != nil {
			contract.LogFatal("Cannot read alias store", err)
		}
		fmt.Printf("✅ %s: %s\n", strings.TrimSpace(args[0]), strings.Join(members, aliasstore.MemberSep))
	},
}

// aliasDeleteCmd removes canonical names.
var aliasDeleteCmd = &cobra.Command{
	Use:     "delete NAME...",
	Short:   "Remove canonical names from the alias store",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		if err := aliasstore.New(cfg.StorePath, os.Stdout).DeleteAlias(args, false); err != nil {
			contract.LogFatal("Cannot delete alias", err)
		}
	},
}

// aliasResetCmd deletes the alias store.
var aliasResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Delete the alias store, including the stored repository path",
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := aliasstore.New(cfg.StorePath, os.Stdout).Reset(); err != nil {
			contract.LogFatal("Cannot reset alias store", err)
		}
		fmt.Printf("🧹 Reset alias store %s\n", cfg.StorePath)
	},
}

// aliasPathCmd shows or stores the default repository.
var aliasPathCmd = &cobra.Command{
	Use:   "path [REPO-PATH]",
	Short: "Show or set the repository used when stats runs without a path",
	Long: `Without an argument, print the stored repository path. With one
argument, store its absolute form on the first line of the alias store.
Paths containing whitespace cannot be stored.`,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, args []string) {
		store := aliasstore.New(cfg.StorePath, os.Stdout)
		if len(args) == 0 {
			path, err := store.GetPath()
			if err != nil {
				contract.LogFatal("Cannot read alias store", err)
			}
			fmt.Println(path)
			return
		}
		if err := store.SetPath(args...); err != nil {
			if errors.Is(err, aliasstore.ErrPathArgCount) {
				contract.LogWarn("Ignoring repository path", err)
				return
			}
			contract.LogFatal("Cannot set repository path", err)
		}
		path, _ := store.GetPath()
		fmt.Printf("📁 Repository path set to %s\n", path)
	},
}

// aliasListCmd prints the alias store.
var aliasListCmd = &cobra.Command{
	Use:     "list",
	Short:   "Print the aliases as a table, JSON or YAML",
	Args:    cobra.NoArgs,
	PreRunE: storeSetup,
	Run: func(_ *cobra.Command, _ []string) {
		mode := schema.OutputMode(strings.ToLower(strings.TrimSpace(input.Output)))
		if mode == "" {
			mode = schema.TextOut
		}
		if _, ok := schema.ValidAliasOutputModes[mode]; !ok {
			contract.LogFatal("Cannot list aliases", fmt.Errorf("invalid output format '%s'. must be text, json, yaml", input.Output))
		}
		listing, err := core.GetAliasListing(cfg)
		if err != nil {
			contract.LogFatal("Cannot read alias store", err)
		}
		if err := outwriter.NewOutWriter().WriteAliases(listing, mode, input.OutputFile); err != nil {
			contract.LogFatal("Cannot write aliases", err)
		}
	},
}
