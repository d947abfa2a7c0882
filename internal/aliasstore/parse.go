package aliasstore

import (
	"errors"
	"strings"

	"github.com/huangsam/groupstats/schema"
)

// PathPrefix marks the repository path record on the first line of a store.
const PathPrefix = "# "

// MemberSep joins members of a persisted alias record.
const MemberSep = ", "

// ErrMalformedLine is returned by ParseLine for lines that are not alias records.
var ErrMalformedLine = errors.New("malformed alias line")

// ParseLine parses one store line of the form "canonical: m1, m2".
// Path records, lines without exactly one colon and lines with an empty
// canonical name return ErrMalformedLine.
func ParseLine(line string) (schema.AliasRecord, error) {
	if strings.HasPrefix(line, PathPrefix) || strings.Count(line, ":") != 1 {
		return schema.AliasRecord{}, ErrMalformedLine
	}
	canonical, rest, _ := strings.Cut(line, ":")
	canonical = strings.TrimSpace(canonical)
	if canonical == "" {
		return schema.AliasRecord{}, ErrMalformedLine
	}

	var members []string
	for m := range strings.SplitSeq(strings.TrimSpace(rest), MemberSep) {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	return schema.AliasRecord{Canonical: canonical, Members: members}, nil
}

// FormatRecord renders a record the way ParseLine reads it, without a newline.
func FormatRecord(r schema.AliasRecord) string {
	return r.Canonical + ": " + strings.Join(r.Members, MemberSep)
}

// ParsePathRecord returns the path held by a path record line. The path is
// the second space-delimited token, so it cannot contain spaces.
func ParsePathRecord(line string) (string, bool) {
	if !strings.HasPrefix(line, PathPrefix) {
		return "", false
	}
	tokens := strings.Split(line, " ")
	if len(tokens) < 2 {
		return "", true
	}
	return tokens[1], true
}

// parseRecords resolves all alias lines into logical records. When a
// canonical name appears on several lines the last one wins and takes the
// position of that last line.
func parseRecords(lines []string) []schema.AliasRecord {
	var records []schema.AliasRecord
	index := make(map[string]int)
	for _, line := range lines {
		record, err := ParseLine(line)
		if err != nil {
			continue
		}
		if i, ok := index[record.Canonical]; ok {
			records[i].Canonical = ""
		}
		index[record.Canonical] = len(records)
		records = append(records, record)
	}

	out := records[:0]
	for _, r := range records {
		if r.Canonical != "" {
			out = append(out, r)
		}
	}
	return out
}

// firstToken returns the text before the first colon of a line.
func firstToken(line string) string {
	token, _, _ := strings.Cut(line, ":")
	return strings.TrimSpace(token)
}
