package classify

import (
	"slices"
	"strings"
	"time"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
)

// Filter evaluates the commit predicates of a run. A predicate whose toggle
// is off admits every commit.
type Filter struct {
	cfg      contract.FilterConfig
	now      time.Time
	ciTerms  []string            // lower-cased case-insensitive terms
	excluded map[string]struct{} // identities never credited
}

// NewFilter prepares the predicates for one run relative to now.
func NewFilter(cfg contract.FilterConfig, now time.Time) *Filter {
	f := &Filter{cfg: cfg, now: now}
	for _, term := range cfg.CISearchTerms {
		f.ciTerms = append(f.ciTerms, strings.ToLower(term))
	}
	if cfg.ExcludeList {
		f.excluded = make(map[string]struct{}, len(cfg.Excludes))
		for _, name := range cfg.Excludes {
			f.excluded[name] = struct{}{}
		}
	}
	return f
}

// KeywordOK reports whether the header contains one of the keywords.
func (f *Filter) KeywordOK(c schema.CommitRecord) bool {
	if !f.cfg.KeywordFilter {
		return true
	}
	return containsAny(c.Header, f.cfg.Keywords)
}

// CISearchOK reports whether the header or body contains one of the
// case-insensitive terms.
func (f *Filter) CISearchOK(c schema.CommitRecord) bool {
	if !f.cfg.CaseInsensitiveSearch {
		return true
	}
	return containsAny(strings.ToLower(c.Header), f.ciTerms) ||
		containsAny(strings.ToLower(c.Body), f.ciTerms)
}

// SearchOK reports whether the header or body contains one of the search terms.
func (f *Filter) SearchOK(c schema.CommitRecord) bool {
	if !f.cfg.FreeTextSearch {
		return true
	}
	return containsAny(c.Header, f.cfg.SearchTerms) || containsAny(c.Body, f.cfg.SearchTerms)
}

// TimeOK reports whether the commit is no older than the time budget.
func (f *Filter) TimeOK(c schema.CommitRecord) bool {
	if !f.cfg.TimeWindow {
		return true
	}
	return f.now.Unix()-c.Timestamp.Unix() <= f.cfg.TimeBudgetSeconds
}

// Passes combines every commit-level predicate.
func (f *Filter) Passes(c schema.CommitRecord) bool {
	return f.KeywordOK(c) && f.CISearchOK(c) && f.SearchOK(c) && f.TimeOK(c)
}

// Admitted reports whether an identity survives the exclusion list.
func (f *Filter) Admitted(identity string) bool {
	if !f.cfg.ExcludeList {
		return true
	}
	_, excluded := f.excluded[identity]
	return !excluded
}

func containsAny(s string, terms []string) bool {
	return slices.ContainsFunc(terms, func(term string) bool {
		return strings.Contains(s, term)
	})
}
