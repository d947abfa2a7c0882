package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/huangsam/groupstats/internal/contract"
	"github.com/huangsam/groupstats/internal/parquet"
	"github.com/huangsam/groupstats/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// statColumns lists the highlighted columns in table order with their headers.
var statColumns = []struct {
	col    schema.StatColumn
	header string
}{
	{schema.CommitsColumn, "Commits"},
	{schema.InsertionsColumn, "Insertions"},
	{schema.DeletionsColumn, "Deletions"},
	{schema.AverageColumn, "Avg"},
	{schema.MedianColumn, "Median"},
}

// WriteStatsResults outputs a statistics run, dispatching based on the output format configured.
func WriteStatsResults(result schema.StatsResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForStats(w, result.Rows)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return fmt.Errorf("parquet output requires an output file")
		}
		rows := parquet.ConvertFinalizedRows(result, time.Now())
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return parquet.WriteContributors(w, rows)
		}, "Wrote Parquet"); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeStatsTable(w, result, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeStatsTable generates and writes the human-readable table. Column
// extrema are colored when cfg.UseColors is set.
func writeStatsTable(w io.Writer, result schema.StatsResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)

	headers := []string{"Identity"}
	for _, sc := range statColumns {
		headers = append(headers, sc.header)
	}
	table.Header(headers)
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// Plain values first so every cell of a column can be padded to the same width
	widths := make([]int, len(statColumns))
	plain := make([][]string, len(result.Rows))
	for i, r := range result.Rows {
		plain[i] = make([]string, len(statColumns))
		for j, sc := range statColumns {
			text := humanize.Comma(int64(r.Value(sc.col)))
			plain[i][j] = text
			widths[j] = max(widths[j], utf8.RuneCountInString(text))
		}
	}

	identWidth := GetMaxIdentityWidth(cfg)
	var data [][]string
	totalInsertions, totalDeletions := 0, 0
	for i, r := range result.Rows {
		row := []string{contract.TruncateName(r.Identity, identWidth)}
		for j, sc := range statColumns {
			row = append(row, padCell(plain[i][j], widths[j], r.Extrema[sc.col], cfg.UseColors))
		}
		data = append(data, row)
		totalInsertions += r.Insertions
		totalDeletions += r.Deletions
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d contributors from %s commits scanned (insertions: %s, deletions: %s)\n",
		len(result.Rows), humanize.Comma(int64(result.Scanned)),
		humanize.Comma(int64(totalInsertions)), humanize.Comma(int64(totalDeletions))); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Analysis completed in %v. Cache backend: %s\n", duration, cfg.CacheBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForStats writes the finalized rows in CSV format.
func writeCSVResultsForStats(w io.Writer, rows []schema.FinalizedRow) error {
	header := []string{
		"identity",
		"commits",
		"insertions",
		"deletions",
		"avg_lines_per_commit",
		"median_lines_per_commit",
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{r.Identity}
			for _, sc := range statColumns {
				rec = append(rec, strconv.Itoa(r.Value(sc.col)))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
