package classify

import (
	"testing"
	"time"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/stretchr/testify/assert"
)

func TestFilter_Keyword(t *testing.T) {
	f := NewFilter(contract.FilterConfig{KeywordFilter: true, Keywords: []string{"feat", "fix"}}, fixedNow)
	assert.True(t, f.KeywordOK(commit("A", "feat(cli)", "", 0)))
	assert.True(t, f.KeywordOK(commit("A", "bugfix", "", 0)), "substring match")
	assert.False(t, f.KeywordOK(commit("A", "Feat", "", 0)), "case-sensitive")
	assert.False(t, f.KeywordOK(commit("A", "docs", " feat in body", 0)), "header only")
}

func TestFilter_CISearch(t *testing.T) {
	f := NewFilter(contract.FilterConfig{CaseInsensitiveSearch: true, CISearchTerms: []string{"PaRsEr"}}, fixedNow)
	assert.True(t, f.CISearchOK(commit("A", "PARSER", "", 0)))
	assert.True(t, f.CISearchOK(commit("A", "feat", " rewrite the parser", 0)))
	assert.False(t, f.CISearchOK(commit("A", "feat", " lexer", 0)))
}

func TestFilter_Search(t *testing.T) {
	f := NewFilter(contract.FilterConfig{FreeTextSearch: true, SearchTerms: []string{"Parser"}}, fixedNow)
	assert.True(t, f.SearchOK(commit("A", "Parser", "", 0)))
	assert.True(t, f.SearchOK(commit("A", "feat", " new Parser", 0)))
	assert.False(t, f.SearchOK(commit("A", "feat", " new parser", 0)), "case-sensitive")
}

func TestFilter_TimeWindow(t *testing.T) {
	f := NewFilter(contract.FilterConfig{TimeWindow: true, TimeBudgetSeconds: 86400}, fixedNow)
	assert.True(t, f.TimeOK(commit("A", "", "", 0)))
	assert.True(t, f.TimeOK(commit("A", "", "", 24*time.Hour)), "boundary is inclusive")
	assert.False(t, f.TimeOK(commit("A", "", "", 24*time.Hour+time.Second)))
	assert.False(t, f.TimeOK(commit("A", "", "", 30*24*time.Hour)))
}

func TestFilter_PassesCombinesWithAnd(t *testing.T) {
	f := NewFilter(contract.FilterConfig{
		KeywordFilter:  true,
		Keywords:       []string{"feat"},
		FreeTextSearch: true,
		SearchTerms:    []string{"cache"},
	}, fixedNow)
	assert.True(t, f.Passes(commit("A", "feat", " cache layer", 0)))
	assert.False(t, f.Passes(commit("A", "feat", " parser", 0)))
	assert.False(t, f.Passes(commit("A", "fix", " cache layer", 0)))
}

func TestFilter_Admitted(t *testing.T) {
	off := NewFilter(contract.FilterConfig{Excludes: []string{"bot"}}, fixedNow)
	assert.True(t, off.Admitted("bot"), "list is inactive without its toggle")

	on := NewFilter(contract.FilterConfig{ExcludeList: true, Excludes: []string{"bot"}}, fixedNow)
	assert.False(t, on.Admitted("bot"))
	assert.True(t, on.Admitted("Alice"))
}
