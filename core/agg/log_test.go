package agg

import (
	_ "embed"
	"testing"
	"time"

	"github.com/huangsam/groupstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//go:embed testdata/commit_log.txt
var commitLogFixture []byte

func TestParseCommitLog_Fixture(t *testing.T) {
	records := ParseCommitLog(commitLogFixture)
	require.Len(t, records, 4)

	chore := records[0]
	assert.Equal(t, "Dave", chore.Author)
	assert.Equal(t, "chore", chore.Header)
	assert.Equal(t, " bump deps", chore.Body)
	assert.Equal(t, time.Unix(1700000200, 0).UTC(), chore.Timestamp)
	assert.Equal(t, 0, chore.Insertions)
	assert.Equal(t, 2, chore.Deletions)

	fix := records[1]
	assert.Equal(t, "fix(parser)", fix.Header)
	assert.Equal(t, " handle empty input\n\nAlso adds tests.", fix.Body)
	assert.Equal(t, 5, fix.Insertions, "binary numstat counts as zero")
	assert.Equal(t, 0, fix.Deletions)

	merge := records[2]
	assert.Equal(t, "Bob", merge.Author)
	assert.Empty(t, merge.Header, "no colon means no header")
	assert.Equal(t, "Merge branch 'feature'", merge.Body)
	assert.Equal(t, 3, merge.Churn())

	root := records[3]
	assert.Equal(t, "initial commit", root.Body)
	assert.Zero(t, root.Churn(), "root commit is diffed against itself")
}

func TestParseCommitLog_Generated(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	records := ParseCommitLog(generateTestGitLog(threeCommitScenario(base)))
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ccc", "bbb", "aaa"}, []string{records[0].Hash, records[1].Hash, records[2].Hash})
	assert.Equal(t, 5, records[1].Insertions)
	assert.Equal(t, 3, records[2].Insertions)
	assert.Equal(t, 1, records[2].Deletions)
	assert.Equal(t, base, records[2].Timestamp)
}

func TestParseCommitLog_SkipsMalformed(t *testing.T) {
	log := "\x1egarbage without terminator" +
		"\x1eonly\x1ftwo fields\x1d\n" +
		"\x1eabc\x1fp\x1fAlice\x1fnot-a-time\x1fmsg\x1d\n" +
		"\x1eabc\x1fp\x1fAlice\x1f100\x1ffeat: ok\x1d\n\n1\t2\tf.go\nnot numstat\n"
	records := ParseCommitLog([]byte(log))
	require.Len(t, records, 1)
	assert.Equal(t, schema.CommitRecord{
		Hash:       "abc",
		Author:     "Alice",
		Header:     "feat",
		Body:       " ok",
		Timestamp:  time.Unix(100, 0).UTC(),
		Insertions: 1,
		Deletions:  2,
	}, records[0])
}

func TestParseCommitLog_Empty(t *testing.T) {
	assert.Empty(t, ParseCommitLog(nil))
	assert.Empty(t, ParseCommitLog([]byte("\n")))
}

func TestCommitRecords_StopsEarly(t *testing.T) {
	base := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	seen := 0
	for range CommitRecords(generateTestGitLog(threeCommitScenario(base))) {
		seen++
		if seen == 2 {
			break
		}
	}
	assert.Equal(t, 2, seen)
}

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		message string
		header  string
		body    string
	}{
		{"feat: add parser", "feat", " add parser"},
		{"fix(cli): a: b", "fix(cli)", " a: b"},
		{"no colon here", "", "no colon here"},
		{"", "", ""},
		{":leading", "", "leading"},
	}
	for _, tt := range tests {
		header, body := SplitMessage(tt.message)
		assert.Equal(t, tt.header, header, tt.message)
		assert.Equal(t, tt.body, body, tt.message)
	}
}

func TestParseChurnValue(t *testing.T) {
	assert.Equal(t, 0, parseChurnValue("-"))
	assert.Equal(t, 12, parseChurnValue("12"))
	assert.Equal(t, 0, parseChurnValue("-5"))
	assert.Equal(t, 0, parseChurnValue("abc"))
}
