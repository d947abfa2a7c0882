// Package agg turns commit history into per-contributor statistics.
package agg

import (
	"iter"

	"github.com/huangsam/groupstats/schema"
)

// Aggregator accumulates running totals per credited identity. It has a
// single owner and is not safe for concurrent use.
type Aggregator struct {
	stats   map[string]*schema.ContributorStats
	scanned int
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{stats: make(map[string]*schema.ContributorStats)}
}

// Credit adds one commit to every identity given.
func (a *Aggregator) Credit(identities []string, c schema.CommitRecord) {
	a.scanned++
	churn := c.Churn()
	for _, id := range identities {
		s, ok := a.stats[id]
		if !ok {
			s = &schema.ContributorStats{}
			a.stats[id] = s
		}
		s.Commits++
		s.Insertions += c.Insertions
		s.Deletions += c.Deletions
		s.SampleSizes = append(s.SampleSizes, churn)
	}
}

// Scanned returns the number of commits seen, credited or not.
func (a *Aggregator) Scanned() int {
	return a.scanned
}

// Stats returns the totals keyed by identity.
func (a *Aggregator) Stats() map[string]schema.ContributorStats {
	out := make(map[string]schema.ContributorStats, len(a.stats))
	for id, s := range a.stats {
		out[id] = *s
	}
	return out
}

// Aggregate folds a commit sequence into an aggregator. classify returns the
// identities credited for each commit.
func Aggregate(commits iter.Seq[schema.CommitRecord], classify func(schema.CommitRecord) []string) *Aggregator {
	a := NewAggregator()
	for c := range commits {
		a.Credit(classify(c), c)
	}
	return a
}
