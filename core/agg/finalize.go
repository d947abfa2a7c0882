package agg

import (
	"slices"
	"strings"

	"github.com/huangsam/groupstats/schema"
)

// Median returns the element at index len/2 of the sorted samples, which is
// the upper median for even lengths. It returns 0 for no samples.
func Median(samples []int) int {
	if len(samples) == 0 {
		return 0
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

// FinalizeRow derives average and median for one identity.
// stats.Commits must be positive.
func FinalizeRow(identity string, stats schema.ContributorStats) schema.FinalizedRow {
	return schema.FinalizedRow{
		Identity:   identity,
		Commits:    stats.Commits,
		Insertions: stats.Insertions,
		Deletions:  stats.Deletions,
		Average:    (stats.Insertions + stats.Deletions) / stats.Commits,
		Median:     Median(stats.SampleSizes),
	}
}

// Finalize builds one row per identity, sorted by commits descending then
// identity, and marks the column extrema.
func Finalize(stats map[string]schema.ContributorStats) []schema.FinalizedRow {
	rows := make([]schema.FinalizedRow, 0, len(stats))
	for id, s := range stats {
		if s.Commits == 0 {
			continue
		}
		rows = append(rows, FinalizeRow(id, s))
	}
	slices.SortFunc(rows, func(a, b schema.FinalizedRow) int {
		if a.Commits != b.Commits {
			return b.Commits - a.Commits
		}
		return strings.Compare(a.Identity, b.Identity)
	})
	MarkExtrema(rows)
	return rows
}

// MarkExtrema flags every cell equal to its column's maximum or minimum.
// Ties are all flagged.
func MarkExtrema(rows []schema.FinalizedRow) {
	if len(rows) == 0 {
		return
	}
	for col := schema.StatColumn(0); col < schema.NumStatColumns; col++ {
		lo, hi := rows[0].Value(col), rows[0].Value(col)
		for _, r := range rows[1:] {
			lo = min(lo, r.Value(col))
			hi = max(hi, r.Value(col))
		}
		for i := range rows {
			v := rows[i].Value(col)
			rows[i].Extrema[col] = 0
			if v == hi {
				rows[i].Extrema[col] |= schema.IsMax
			}
			if v == lo {
				rows[i].Extrema[col] |= schema.IsMin
			}
		}
	}
}
