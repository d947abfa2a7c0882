package agg

import (
	"iter"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/schema"
)

// CommitRecords yields one record per commit of the output of
// contract.GitClient.GetCommitLog, in traversal order. Malformed records are
// skipped.
func CommitRecords(out []byte) iter.Seq[schema.CommitRecord] {
	return func(yield func(schema.CommitRecord) bool) {
		for raw := range strings.SplitSeq(string(out), contract.CommitRecordSep) {
			record, ok := parseCommitRecord(raw)
			if !ok {
				continue
			}
			if !yield(record) {
				return
			}
		}
	}
}

// ParseCommitLog collects every record of a commit log.
func ParseCommitLog(out []byte) []schema.CommitRecord {
	var records []schema.CommitRecord
	for r := range CommitRecords(out) {
		records = append(records, r)
	}
	return records
}

// parseCommitRecord parses the metadata fields, the message and the numstat
// lines of one commit.
func parseCommitRecord(raw string) (schema.CommitRecord, bool) {
	meta, numstat, found := strings.Cut(raw, contract.CommitMsgEnd)
	if !found {
		return schema.CommitRecord{}, false
	}
	fields := strings.SplitN(meta, contract.CommitFieldSep, 5)
	if len(fields) != 5 {
		return schema.CommitRecord{}, false
	}
	hash, parents, committer, ts, message := fields[0], fields[1], fields[2], fields[3], fields[4]

	hash = strings.TrimSpace(hash)
	if hash == "" {
		return schema.CommitRecord{}, false
	}
	secs, err := strconv.ParseInt(strings.TrimSpace(ts), 10, 64)
	if err != nil {
		return schema.CommitRecord{}, false
	}

	header, body := SplitMessage(strings.TrimRight(message, "\n"))
	record := schema.CommitRecord{
		Hash:      hash,
		Author:    committer,
		Header:    header,
		Body:      body,
		Timestamp: time.Unix(secs, 0).UTC(),
	}

	// A root commit is diffed against itself
	if strings.TrimSpace(parents) != "" {
		record.Insertions, record.Deletions = sumNumstat(numstat)
	}
	return record, true
}

// SplitMessage splits a commit message at its first colon. Without a colon
// the header is empty and the body is the whole message.
func SplitMessage(message string) (header, body string) {
	header, body, found := strings.Cut(message, ":")
	if !found {
		return "", message
	}
	return header, body
}

// sumNumstat adds up the "added\tdeleted\tpath" lines of a commit.
func sumNumstat(numstat string) (insertions, deletions int) {
	for line := range strings.SplitSeq(numstat, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "\t", 3)
		if len(parts) < 3 {
			continue
		}
		insertions += parseChurnValue(parts[0])
		deletions += parseChurnValue(parts[1])
	}
	return insertions, deletions
}

// parseChurnValue converts a churn string to int, handling "-" as 0.
func parseChurnValue(s string) int {
	if s == "-" {
		return 0
	}
	if val, err := strconv.Atoi(s); err == nil && val >= 0 {
		return val
	}
	return 0
}
