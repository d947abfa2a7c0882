package outwriter

import (
	"os"

	"github.com/huangsam/groupstats/internal/contract"
	"golang.org/x/term"
)

// Bounds for the identity column of the statistics table.
const (
	minIdentityWidth = 12
	maxIdentityWidth = contract.DefaultIdentWidth
)

// GetMaxIdentityWidth calculates the maximum width for identities in table output
// based on terminal width and the fixed numeric columns.
func GetMaxIdentityWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Commits, Insertions, Deletions, Avg and Median with borders/padding
	baseWidth := 60

	available := termWidth - baseWidth
	if available < minIdentityWidth {
		return minIdentityWidth
	}
	if available > maxIdentityWidth {
		return maxIdentityWidth
	}
	return available
}
