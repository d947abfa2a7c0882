// Package parquet exports finalized contributor statistics to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/groupstats/schema"
	"github.com/parquet-go/parquet-go"
)

// ContributorRow is one finalized contributor of a statistics run.
type ContributorRow struct {
	// RepoPath is the repository root the run was computed over
	RepoPath string `parquet:"repo_path,snappy,dict"`

	// GeneratedAt is when the run finished (stored as TIMESTAMP with nanosecond precision)
	GeneratedAt time.Time `parquet:"generated_at,snappy"`

	// Identity is the canonical contributor name
	Identity string `parquet:"identity,snappy"`

	Commits    int64 `parquet:"commits,snappy"`
	Insertions int64 `parquet:"insertions,snappy"`
	Deletions  int64 `parquet:"deletions,snappy"`

	// AvgLines is (insertions+deletions)/commits with integer division
	AvgLines int64 `parquet:"avg_lines,snappy"`

	// MedianLines is the upper median of per-commit line changes
	MedianLines int64 `parquet:"median_lines,snappy"`
}

// ConvertFinalizedRows converts finalized rows to ContributorRow for Parquet export.
func ConvertFinalizedRows(result schema.StatsResult, generatedAt time.Time) []ContributorRow {
	rows := make([]ContributorRow, len(result.Rows))
	for i, r := range result.Rows {
		rows[i] = ContributorRow{
			RepoPath:    result.RepoPath,
			GeneratedAt: generatedAt,
			Identity:    r.Identity,
			Commits:     int64(r.Commits),
			Insertions:  int64(r.Insertions),
			Deletions:   int64(r.Deletions),
			AvgLines:    int64(r.Average),
			MedianLines: int64(r.Median),
		}
	}
	return rows
}

// WriteContributors writes rows to w in Parquet format.
func WriteContributors(w io.Writer, data []ContributorRow) error {
	// The schema is derived from the ContributorRow struct tags
	writer := parquet.NewGenericWriter[ContributorRow](w)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finish parquet file: %w", err)
	}
	return nil
}

// WriteContributorsParquet writes rows to a new Parquet file at outputPath.
func WriteContributorsParquet(data []ContributorRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteContributors(file, data); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// ReadContributorsParquet reads every row of a Parquet file written by
// WriteContributorsParquet.
func ReadContributorsParquet(path string) ([]ContributorRow, error) {
	rows, err := parquet.ReadFile[ContributorRow](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows, nil
}
