package classify

import (
	"regexp"
	"slices"
	"strings"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
)

// ResolutionMode decides which identities a commit is credited to.
// It is chosen once per run.
type ResolutionMode interface {
	// Candidates returns the identities a commit may be credited to.
	Candidates(c schema.CommitRecord) []string
}

// bracketListRe matches a bracketed name list like "[Alice, Bob]".
var bracketListRe = regexp.MustCompile(`\[([^,\]]+(?:, [^,\]]+)*)\]`)

// AutogenerateMode credits every name of the bracket list in the header, or
// schema.UntaggedIdentity when there is none.
type AutogenerateMode struct{}

// Candidates implements ResolutionMode.
func (AutogenerateMode) Candidates(c schema.CommitRecord) []string {
	m := bracketListRe.FindStringSubmatch(c.Header)
	if m == nil {
		return []string{schema.UntaggedIdentity}
	}
	var names []string
	for name := range strings.SplitSeq(m[1], ", ") {
		name = strings.TrimSpace(name)
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return []string{schema.UntaggedIdentity}
	}
	return names
}

// ConfigMode credits every alias whose canonical name or members hold the
// author. Without a match the author is credited, unless Exclusive is set.
type ConfigMode struct {
	IgnoreConfig bool
	Exclusive    bool
	Aliases      []schema.AliasRecord
}

// Candidates implements ResolutionMode.
func (m ConfigMode) Candidates(c schema.CommitRecord) []string {
	var names []string
	if !m.IgnoreConfig {
		for _, alias := range m.Aliases {
			if alias.Canonical == c.Author || slices.Contains(alias.Members, c.Author) {
				names = append(names, alias.Canonical)
			}
		}
	}
	if len(names) == 0 && !m.Exclusive {
		names = []string{c.Author}
	}
	return names
}

// ModeFor selects the resolution mode of a run.
func ModeFor(cfg contract.FilterConfig, aliases []schema.AliasRecord) ResolutionMode {
	if cfg.Autogenerate {
		return AutogenerateMode{}
	}
	return ConfigMode{
		IgnoreConfig: cfg.IgnoreConfig,
		Exclusive:    cfg.ExclusiveConfig,
		Aliases:      aliases,
	}
}
