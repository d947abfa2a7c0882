package agg

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/groupstats/internal/contract"
)

// gitLogScenario represents a single commit scenario for test data generation.
type gitLogScenario struct {
	commitHash string
	parents    string
	committer  string
	date       time.Time
	message    string
	files      []fileChange
}

// fileChange represents a single file change in a commit.
type fileChange struct {
	path      string
	additions int
	deletions int
}

// generateTestGitLog creates a programmatic commit log fixture in the format
// produced by contract.CommitLogFormat.
func generateTestGitLog(scenarios []gitLogScenario) []byte {
	var b strings.Builder
	for _, s := range scenarios {
		b.WriteString(contract.CommitRecordSep)
		b.WriteString(strings.Join([]string{
			s.commitHash, s.parents, s.committer, fmt.Sprint(s.date.Unix()), s.message + "\n",
		}, contract.CommitFieldSep))
		b.WriteString(contract.CommitMsgEnd)
		b.WriteString("\n\n")
		for _, f := range s.files {
			fmt.Fprintf(&b, "%d\t%d\t%s\n", f.additions, f.deletions, f.path)
		}
	}
	return []byte(b.String())
}

// threeCommitScenario is two commits by Alice and one by Dave.
func threeCommitScenario(base time.Time) []gitLogScenario {
	return []gitLogScenario{
		{
			commitHash: "ccc", parents: "bbb", committer: "Dave", date: base.Add(2 * time.Hour),
			message: "chore: tidy", files: []fileChange{{"go.sum", 0, 2}},
		},
		{
			commitHash: "bbb", parents: "aaa", committer: "Alice", date: base.Add(time.Hour),
			message: "feat: parser", files: []fileChange{{"parser.go", 4, 0}, {"lexer.go", 1, 0}},
		},
		{
			commitHash: "aaa", parents: "root", committer: "Alice", date: base,
			message: "fix: typo", files: []fileChange{{"main.go", 2, 1}, {"doc.go", 1, 0}},
		},
	}
}
