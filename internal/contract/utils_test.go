package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/huangsam/groupstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightCell(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	assert.Equal(t, "42", HighlightCell("42", 0))
	assert.Equal(t, MaxColor.Sprint("42"), HighlightCell("42", schema.IsMax))
	assert.Equal(t, MinColor.Sprint("42"), HighlightCell("42", schema.IsMin))
	// Maximum wins when a cell is both
	assert.Equal(t, MaxColor.Sprint("42"), HighlightCell("42", schema.IsMax|schema.IsMin))
}

func TestTruncateName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{name: "short name untouched", input: "core", width: 10, expected: "core"},
		{name: "exact fit untouched", input: "abcdefghij", width: 10, expected: "abcdefghij"},
		{name: "long name truncated", input: "abcdefghijkl", width: 10, expected: "abcdefg..."},
		{name: "multibyte runes", input: "ñandúñandúñandú", width: 8, expected: "ñandú..."},
		{name: "width too small", input: "abcdef", width: 3, expected: "abcdef"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateName(tt.input, tt.width))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.True(t, got, s)
	}
	for _, s := range []string{"no", "False", "0"} {
		got, err := ParseBoolString(s)
		require.NoError(t, err)
		assert.False(t, got, s)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSelectOutputFile(t *testing.T) {
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	path := filepath.Join(t.TempDir(), "out.csv")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, f.Name())
	require.NoError(t, f.Close())
}

func TestDefaultFilePaths(t *testing.T) {
	assert.True(t, strings.HasSuffix(GetAliasStoreFilePath(), ".groupstats_aliases"))
	assert.True(t, strings.HasSuffix(GetCacheDBFilePath(), ".groupstats_cache.db"))
}
