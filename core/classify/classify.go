// Package classify decides, commit by commit, which contributors get credit.
package classify

import (
	"time"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
)

// Classifier pairs the predicates of a run with its resolution mode.
type Classifier struct {
	filter *Filter
	mode   ResolutionMode
}

// New builds the classifier for one run.
func New(cfg contract.FilterConfig, now time.Time, aliases []schema.AliasRecord) *Classifier {
	return &Classifier{
		filter: NewFilter(cfg, now),
		mode:   ModeFor(cfg, aliases),
	}
}

// Mode returns the resolution mode in use.
func (c *Classifier) Mode() ResolutionMode {
	return c.mode
}

// Classify returns the identities credited for a commit. The result is empty
// when a predicate rejects the commit or every candidate is excluded.
func (c *Classifier) Classify(commit schema.CommitRecord) []string {
	if !c.filter.Passes(commit) {
		return nil
	}
	var credited []string
	for _, identity := range c.mode.Candidates(commit) {
		if c.filter.Admitted(identity) {
			credited = append(credited, identity)
		}
	}
	return credited
}
