// Package aliasstore manages the line-oriented file that folds raw committer
// names into canonical contributors and remembers a default repository path.
package aliasstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/groupstats/schema"
)

// Errors returned by Store operations.
var (
	ErrPathArgCount   = errors.New("exactly one repository path is required")
	ErrPathWhitespace = errors.New("repository path must not contain whitespace")
	ErrInvalidName    = errors.New("names must not be empty or contain ':' or ','")
	ErrNoMembers      = errors.New("an alias needs at least one member")
)

// Store is the alias store backed by a single text file. The file is read and
// rewritten whole on every operation; concurrent writers race and the last
// write wins.
type Store struct {
	path string
	out  io.Writer
}

// New returns a store for the file at path. Notices are written to out.
func New(path string, out io.Writer) *Store {
	if out == nil {
		out = io.Discard
	}
	return &Store{path: path, out: out}
}

// FilePath returns the location of the store file.
func (s *Store) FilePath() string {
	return s.path
}

// readLines returns the lines of the store. A missing file reads as empty.
func (s *Store) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read alias store %s: %w", s.path, err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// writeLines replaces the store with the given lines.
func (s *Store) writeLines(lines []string) error {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(s.path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write alias store %s: %w", s.path, err)
	}
	return nil
}

// GetPath returns the repository path held by the first line, or "" when the
// store is missing, empty or has no path record.
func (s *Store) GetPath() (string, error) {
	lines, err := s.readLines()
	if err != nil || len(lines) == 0 {
		return "", err
	}
	path, _ := ParsePathRecord(lines[0])
	return path, nil
}

// SetPath stores the repository path on the first line, replacing an existing
// path record. It takes the raw argument list and requires exactly one entry.
func (s *Store) SetPath(args ...string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: got %d", ErrPathArgCount, len(args))
	}
	path := strings.TrimSpace(args[0])
	if path == "" {
		return fmt.Errorf("%w: got 0", ErrPathArgCount)
	}
	if strings.ContainsFunc(path, isSpace) {
		return fmt.Errorf("%w: %q", ErrPathWhitespace, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if strings.ContainsFunc(abs, isSpace) {
		return fmt.Errorf("%w: %q", ErrPathWhitespace, abs)
	}

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	record := PathPrefix + abs
	if len(lines) > 0 && strings.HasPrefix(lines[0], PathPrefix) {
		lines[0] = record
	} else {
		lines = append([]string{record}, lines...)
	}
	return s.writeLines(lines)
}

// AddAlias adds members to a canonical name. args[0] is the canonical name and
// the rest are members. Members of an existing entry come first, in order and
// without deduplication, and the older lines are replaced by one merged line.
func (s *Store) AddAlias(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing canonical name", ErrInvalidName)
	}
	canonical := strings.TrimSpace(args[0])
	if canonical == "" || strings.HasPrefix(canonical, "#") || strings.ContainsAny(canonical, ":,") {
		return fmt.Errorf("%w: %q", ErrInvalidName, args[0])
	}

	var members []string
	for _, m := range args[1:] {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if strings.ContainsAny(m, ":,") {
			return fmt.Errorf("%w: %q", ErrInvalidName, m)
		}
		members = append(members, m)
	}
	if len(members) == 0 {
		return fmt.Errorf("%w: %s", ErrNoMembers, canonical)
	}

	old, err := s.GetNamesWithAlias(canonical)
	if err != nil {
		return err
	}
	if len(old) > 0 {
		members = append(old, members...)
		if err := s.DeleteAlias([]string{canonical}, true); err != nil {
			return err
		}
	}

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	lines = append(lines, FormatRecord(schema.AliasRecord{Canonical: canonical, Members: members}))
	return s.writeLines(lines)
}

// DeleteAlias removes every line whose first colon-delimited token is one of
// names. The path record is always kept. Unless quiet, one notice is printed
// per name.
func (s *Store) DeleteAlias(names []string, quiet bool) error {
	targets := make(map[string]bool, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			targets[n] = false
		}
	}

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if i == 0 && strings.HasPrefix(line, PathPrefix) {
			kept = append(kept, line)
			continue
		}
		token := firstToken(line)
		if _, ok := targets[token]; ok {
			targets[token] = true
			continue
		}
		kept = append(kept, line)
	}
	if err := s.writeLines(kept); err != nil {
		return err
	}

	if quiet {
		return nil
	}
	seen := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		if targets[n] {
			_, _ = fmt.Fprintf(s.out, "Deleted entry for '%s'\n", n)
		} else {
			_, _ = fmt.Fprintf(s.out, "No entry for '%s'\n", n)
		}
	}
	return nil
}

// Reset deletes the store file. A missing file is not an error.
func (s *Store) Reset() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("reset alias store %s: %w", s.path, err)
	}
	return nil
}

// Records returns the logical alias records in store order, last line wins.
func (s *Store) Records() ([]schema.AliasRecord, error) {
	lines, err := s.readLines()
	if err != nil {
		return nil, err
	}
	return parseRecords(lines), nil
}

// GetMap returns the canonical name to members mapping.
func (s *Store) GetMap() (map[string][]string, error) {
	records, err := s.Records()
	if err != nil {
		return nil, err
	}
	m := make(map[string][]string, len(records))
	for _, r := range records {
		m[r.Canonical] = r.Members
	}
	return m, nil
}

// GetNamesWithAlias returns the members of a canonical name, or nil.
func (s *Store) GetNamesWithAlias(name string) ([]string, error) {
	m, err := s.GetMap()
	if err != nil {
		return nil, err
	}
	return m[strings.TrimSpace(name)], nil
}

// Listing returns the path record together with the logical records.
func (s *Store) Listing() (schema.AliasListing, error) {
	path, err := s.GetPath()
	if err != nil {
		return schema.AliasListing{}, err
	}
	records, err := s.Records()
	if err != nil {
		return schema.AliasListing{}, err
	}
	return schema.AliasListing{Path: path, Aliases: records}, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
