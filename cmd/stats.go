package cmd

import (
	"github.com/huangsam/groupstats/core"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/spf13/cobra"
)

// statsCmd aggregates commit history per contributor.
var statsCmd = &cobra.Command{
	Use:   "stats [repo-path]",
	Short: "Show commits and line churn per contributor.",
	Long: `Walk the history reachable from HEAD and credit every commit to one or more contributors.

By default committer names are folded through the alias store, so that
"core: Alice, Bob" credits commits by Alice and Bob to "core". Names without
an alias are credited as they are unless --exclusive is set.

Each row shows commits, insertions, deletions, the average and the median
lines changed per commit. Column maxima and minima are highlighted.

Examples:
  # Statistics for the repository stored in the alias store
  groupstats stats

  # Raw committer names for another repository
  groupstats stats ../project --ignore-config

  # Team statistics from "[Alice, Bob] feat: ..." style headers
  groupstats stats --autogenerate

  # Only fixes from the last two weeks, as CSV
  groupstats stats --filter fix --time "2 weeks" --output csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteStats(rootCtx, cfg, gitClient, cacheManager); err != nil {
			contract.LogFatal("Cannot compute contributor statistics", err)
		}
	},
}
