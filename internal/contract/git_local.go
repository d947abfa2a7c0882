package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Delimiters of the commit log produced by GetCommitLog. Control characters
// cannot appear in names and are vanishingly rare in commit messages.
const (
	CommitRecordSep = "\x1e" // starts every commit
	CommitFieldSep  = "\x1f" // separates hash, parents, committer, time and message
	CommitMsgEnd    = "\x1d" // terminates the message; numstat lines follow
)

// CommitLogFormat is the pretty format passed to git log.
// Fields: hash, parent hashes, committer name, committer unix time, raw message.
const CommitLogFormat = "%x1e%H%x1f%P%x1f%cn%x1f%ct%x1f%B%x1d"

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.CommandContext(ctx, "git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetCommitLog implements the GitClient interface.
// Merge commits are diffed against their first parent only.
func (c *LocalGitClient) GetCommitLog(ctx context.Context, repoPath string, ref string) ([]byte, error) {
	args := []string{
		"log",
		ref,
		"--numstat",
		"--diff-merges=first-parent",
		"--no-renames",
		"--pretty=format:" + CommitLogFormat,
	}
	return c.Run(ctx, repoPath, args...)
}

// GetRepoHash implements the GitClient interface.
func (c *LocalGitClient) GetRepoHash(ctx context.Context, repoPath string, ref string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", ref)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}
