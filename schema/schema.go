// Package schema has models and constants shared by all parts of groupstats.
package schema

import "time"

// CommitRecord is a single commit as yielded by the history provider.
// Header and Body are the commit message split at its first colon.
type CommitRecord struct {
	Hash       string    `json:"hash"`
	Author     string    `json:"author"`
	Header     string    `json:"header"`
	Body       string    `json:"body"`
	Timestamp  time.Time `json:"timestamp"`
	Insertions int       `json:"insertions"`
	Deletions  int       `json:"deletions"`
}

// Churn returns the number of lines touched by the commit.
func (c CommitRecord) Churn() int {
	return c.Insertions + c.Deletions
}

// AliasRecord maps one canonical identity to the raw committer names folded into it.
type AliasRecord struct {
	Canonical string   `json:"canonical" yaml:"canonical"`
	Members   []string `json:"members" yaml:"members"`
}

// AliasListing is the logical content of the alias store.
type AliasListing struct {
	Path    string        `json:"path,omitempty" yaml:"path,omitempty"`
	Aliases []AliasRecord `json:"aliases" yaml:"aliases"`
}

// ContributorStats holds the running totals for one canonical identity.
type ContributorStats struct {
	Commits     int   // Number of credited commits
	Insertions  int   // Lines added across credited commits
	Deletions   int   // Lines removed across credited commits
	SampleSizes []int // Insertions+deletions of each credited commit, in credit order
}

// StatColumn identifies one of the derived columns of a FinalizedRow.
type StatColumn int

// Derived columns that take part in min/max highlighting.
const (
	CommitsColumn StatColumn = iota
	InsertionsColumn
	DeletionsColumn
	AverageColumn
	MedianColumn
	NumStatColumns
)

// Extremum flags whether a cell holds its column's maximum and/or minimum.
type Extremum uint8

// Extremum flags.
const (
	IsMax Extremum = 1 << iota
	IsMin
)

// FinalizedRow is the presentation-ready summary for one identity.
type FinalizedRow struct {
	Identity   string `json:"identity"`
	Commits    int    `json:"commits"`
	Insertions int    `json:"insertions"`
	Deletions  int    `json:"deletions"`
	Average    int    `json:"avg_lines_per_commit"`
	Median     int    `json:"median_lines_per_commit"`

	// Extrema is filled by the second pass and only drives highlighting.
	Extrema [NumStatColumns]Extremum `json:"-"`
}

// Value returns the row's value in the given column.
func (r FinalizedRow) Value(col StatColumn) int {
	switch col {
	case CommitsColumn:
		return r.Commits
	case InsertionsColumn:
		return r.Insertions
	case DeletionsColumn:
		return r.Deletions
	case AverageColumn:
		return r.Average
	case MedianColumn:
		return r.Median
	default:
		return 0
	}
}

// IsMax reports whether the row holds the column's maximum.
func (r FinalizedRow) IsMax(col StatColumn) bool {
	return r.Extrema[col]&IsMax != 0
}

// IsMin reports whether the row holds the column's minimum.
func (r FinalizedRow) IsMin(col StatColumn) bool {
	return r.Extrema[col]&IsMin != 0
}

// StatsResult is the outcome of one statistics run.
type StatsResult struct {
	RepoPath string         `json:"repo_path"`
	Scanned  int            `json:"commits_scanned"`
	Rows     []FinalizedRow `json:"contributors"`
}
