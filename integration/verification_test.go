//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statsOutput mirrors the JSON document printed by "groupstats stats --output json".
type statsOutput struct {
	Scanned int `json:"commits_scanned"`
	Rows    []struct {
		Identity   string `json:"identity"`
		Commits    int    `json:"commits"`
		Insertions int    `json:"insertions"`
		Deletions  int    `json:"deletions"`
	} `json:"contributors"`
}

// runGroupstats runs the binary in dir against a private alias store and returns stdout.
func runGroupstats(t *testing.T, dir, store string, args ...string) string {
	t.Helper()
	cmd := exec.Command(getBinary(), append(args, "--store", store)...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), "HOME="+t.TempDir())
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	require.NoError(t, cmd.Run(), stderr.String())
	return stdout.String()
}

// commitAs creates one commit in dir with the given committer.
func commitAs(t *testing.T, dir, name, file, content, message string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	env := append(os.Environ(),
		"GIT_AUTHOR_NAME="+name, "GIT_AUTHOR_EMAIL="+strings.ToLower(name)+"@example.com",
		"GIT_COMMITTER_NAME="+name, "GIT_COMMITTER_EMAIL="+strings.ToLower(name)+"@example.com",
	)
	for _, args := range [][]string{{"add", "."}, {"commit", "-q", "-m", message}} {
		cmd := exec.Command("git", append([]string{"-C", dir}, args...)...)
		cmd.Env = env
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
}

// newTestRepo builds a repository with commits by Alice, Bob and Carol.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
	dir := t.TempDir()
	out, err := exec.Command("git", "init", "-q", dir).CombinedOutput()
	require.NoError(t, err, string(out))

	commitAs(t, dir, "Alice", "a.txt", "1\n", "chore: init")
	commitAs(t, dir, "Alice", "a.txt", "1\n2\n3\n", "[Alice, Bob] feat: grow a")
	commitAs(t, dir, "Bob", "b.txt", "x\n", "fix: add b")
	commitAs(t, dir, "Carol", "a.txt", "1\n", "refactor: shrink a")
	return dir
}

// shortlogCounts returns committer commit counts according to git.
func shortlogCounts(t *testing.T, dir string) map[string]int {
	t.Helper()
	out, err := exec.Command("git", "-C", dir, "shortlog", "-s", "-c", "HEAD").Output()
	require.NoError(t, err)
	counts := make(map[string]int)
	for line := range strings.SplitSeq(strings.TrimSpace(string(out)), "\n") {
		fields := strings.SplitN(strings.TrimSpace(line), "\t", 2)
		if len(fields) != 2 {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		require.NoError(t, err)
		counts[fields[1]] = n
	}
	return counts
}

// TestStatsVerification compares raw committer counts against git shortlog.
func TestStatsVerification(t *testing.T) {
	repo := newTestRepo(t)
	store := filepath.Join(t.TempDir(), "aliases")

	var result statsOutput
	out := runGroupstats(t, repo, store, "stats", "--ignore-config", "--output", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	expected := shortlogCounts(t, repo)
	assert.Equal(t, 4, result.Scanned)
	require.Len(t, result.Rows, len(expected))
	for _, row := range result.Rows {
		assert.Equal(t, expected[row.Identity], row.Commits, "commit count mismatch for %s", row.Identity)
	}
}

// TestAliasWorkflow folds two committers through the alias store.
func TestAliasWorkflow(t *testing.T) {
	repo := newTestRepo(t)
	store := filepath.Join(t.TempDir(), "aliases")
	elsewhere := t.TempDir()

	runGroupstats(t, elsewhere, store, "alias", "path", repo)
	runGroupstats(t, elsewhere, store, "alias", "add", "core", "Alice", "Bob")

	var result statsOutput
	out := runGroupstats(t, elsewhere, store, "stats", "--exclusive", "--output", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Rows, 1)
	assert.Equal(t, "core", result.Rows[0].Identity)
	assert.Equal(t, 3, result.Rows[0].Commits)

	listing := runGroupstats(t, elsewhere, store, "alias", "list", "--output", "yaml")
	assert.Contains(t, listing, "canonical: core")

	deleted := runGroupstats(t, elsewhere, store, "alias", "delete", "core", "ghost")
	assert.Contains(t, deleted, "Deleted entry for 'core'")
	assert.Contains(t, deleted, "No entry for 'ghost'")
}

// TestAutogenerateVerification credits the bracket list of each header.
func TestAutogenerateVerification(t *testing.T) {
	repo := newTestRepo(t)
	store := filepath.Join(t.TempDir(), "aliases")

	var result statsOutput
	out := runGroupstats(t, repo, store, "stats", "--autogenerate", "--output", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	commits := make(map[string]int)
	for _, row := range result.Rows {
		commits[row.Identity] = row.Commits
	}
	assert.Equal(t, map[string]int{"untagged": 3, "Alice": 1, "Bob": 1}, commits)
}

// TestExternalRepoVerification clones a small public repo and compares against git.
func TestExternalRepoVerification(t *testing.T) {
	repoDir := filepath.Join(t.TempDir(), "go-homedir")
	cloneCmd := exec.Command("git", "clone", "-q", "https://github.com/mitchellh/go-homedir", repoDir)
	if err := cloneCmd.Run(); err != nil {
		t.Skipf("failed to clone test repo: %v", err)
	}

	var result statsOutput
	out := runGroupstats(t, repoDir, filepath.Join(t.TempDir(), "aliases"), "stats", "--ignore-config", "--output", "json")
	require.NoError(t, json.Unmarshal([]byte(out), &result))

	expected := shortlogCounts(t, repoDir)
	total := 0
	for _, row := range result.Rows {
		assert.Equal(t, expected[row.Identity], row.Commits, "commit count mismatch for %s", row.Identity)
		total += row.Commits
	}
	assert.Equal(t, result.Scanned, total)
}
