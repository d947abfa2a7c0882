package parquet

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/groupstats/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleResult = schema.StatsResult{
	RepoPath: "/repo",
	Scanned:  3,
	Rows: []schema.FinalizedRow{
		{Identity: "core", Commits: 2, Insertions: 8, Deletions: 1, Average: 4, Median: 5},
		{Identity: "Dave", Commits: 1, Insertions: 0, Deletions: 2, Average: 2, Median: 2},
	},
}

func TestContributorRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ContributorRow))
	require.NotNil(t, s)

	expectedColumns := []string{
		"repo_path",
		"generated_at",
		"identity",
		"commits",
		"insertions",
		"deletions",
		"avg_lines",
		"median_lines",
	}
	for _, colName := range expectedColumns {
		_, ok := s.Lookup(colName)
		assert.True(t, ok, "Column %s should exist in schema", colName)
	}
}

func TestConvertFinalizedRows(t *testing.T) {
	now := time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC)
	rows := ConvertFinalizedRows(sampleResult, now)
	require.Len(t, rows, 2)
	assert.Equal(t, ContributorRow{
		RepoPath:    "/repo",
		GeneratedAt: now,
		Identity:    "core",
		Commits:     2,
		Insertions:  8,
		Deletions:   1,
		AvgLines:    4,
		MedianLines: 5,
	}, rows[0])
}

func TestWriteContributorsParquet_RoundTrip(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "contributors.parquet")
	now := time.Now()
	data := ConvertFinalizedRows(sampleResult, now)

	require.NoError(t, WriteContributorsParquet(data, outputPath))

	readData, err := ReadContributorsParquet(outputPath)
	require.NoError(t, err)
	require.Len(t, readData, len(data))
	for i := range data {
		assert.Equal(t, data[i].Identity, readData[i].Identity)
		assert.Equal(t, data[i].Commits, readData[i].Commits)
		assert.Equal(t, data[i].AvgLines, readData[i].AvgLines)
		assert.Equal(t, data[i].MedianLines, readData[i].MedianLines)
		assert.WithinDuration(t, data[i].GeneratedAt, readData[i].GeneratedAt, time.Microsecond)
	}
}

func TestWriteContributors_Buffer(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteContributors(&buf, ConvertFinalizedRows(sampleResult, time.Now())))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PAR1")), "parquet magic header")
}

func TestWriteContributorsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")
	require.NoError(t, WriteContributorsParquet(nil, outputPath))

	readData, err := ReadContributorsParquet(outputPath)
	require.NoError(t, err)
	assert.Empty(t, readData)
}

func TestWriteContributorsParquet_InvalidPath(t *testing.T) {
	err := WriteContributorsParquet(nil, "/nonexistent/directory/file.parquet")
	assert.Error(t, err)
}
