package contract

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/groupstats/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newRawInput returns a raw input that passes validation and never touches the home directory.
func newRawInput(t *testing.T) *ConfigRawInput {
	t.Helper()
	return &ConfigRawInput{
		Store:        filepath.Join(t.TempDir(), "aliases"),
		Output:       "text",
		CacheBackend: string(schema.NoneBackend),
	}
}

func TestProcessAndValidate(t *testing.T) {
	workDir, err := filepath.Abs(".")
	require.NoError(t, err)

	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
		setupMock   func(*MockGitClient)
		verify      func(*testing.T, *Config)
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("/mock/repo/root", nil)
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "/mock/repo/root", cfg.RepoPath)
				assert.Equal(t, DefaultRef, cfg.Ref)
				assert.Equal(t, schema.TextOut, cfg.Output)
				assert.True(t, cfg.UseColors)
				assert.False(t, cfg.Filter.ManualPath)
				assert.False(t, cfg.Filter.TimeWindow)
			},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without output file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "invalid cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "mysql" },
			expectError: true,
		},
		{
			name:        "negative width",
			mutate:      func(in *ConfigRawInput) { in.Width = -1 },
			expectError: true,
		},
		{
			name:        "invalid time unit",
			mutate:      func(in *ConfigRawInput) { in.Time = "3 fortnights" },
			expectError: true,
		},
		{
			name: "filters and time window",
			mutate: func(in *ConfigRawInput) {
				in.Filter = []string{"feat", " "}
				in.CISearch = []string{"Parser"}
				in.Search = []string{"bug"}
				in.Exclude = []string{"bot"}
				in.Time = "2 d"
				in.Color = "no"
				in.Output = "JSON"
			},
			setupMock: func(m *MockGitClient) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("/mock/repo/root", nil)
			},
			verify: func(t *testing.T, cfg *Config) {
				f := cfg.Filter
				assert.True(t, f.KeywordFilter)
				assert.Equal(t, []string{"feat"}, f.Keywords)
				assert.True(t, f.CaseInsensitiveSearch)
				assert.True(t, f.FreeTextSearch)
				assert.True(t, f.ExcludeList)
				assert.True(t, f.TimeWindow)
				assert.Equal(t, int64(2*schema.DaySeconds), f.TimeBudgetSeconds)
				assert.False(t, cfg.UseColors)
				assert.Equal(t, schema.JSONOut, cfg.Output)
			},
		},
		{
			name:   "manual path from positional arg",
			mutate: func(in *ConfigRawInput) { in.RepoPathArgs = []string{"."} },
			setupMock: func(m *MockGitClient) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("/manual/root", nil)
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.Filter.ManualPath)
				assert.Equal(t, "/manual/root", cfg.RepoPath)
			},
		},
		{
			name: "too many manual paths are ignored",
			mutate: func(in *ConfigRawInput) {
				in.RepoPathArgs = []string{"/a"}
				in.Path = "/b"
			},
			setupMock: func(m *MockGitClient) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("/mock/repo/root", nil)
			},
			verify: func(t *testing.T, cfg *Config) {
				assert.False(t, cfg.Filter.ManualPath)
			},
		},
		{
			name:   "repository not found",
			mutate: func(*ConfigRawInput) {},
			setupMock: func(m *MockGitClient) {
				m.On("GetRepoRoot", mock.Anything, workDir).Return("", errors.New("not a git repository"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := new(MockGitClient)
			if tt.setupMock != nil {
				tt.setupMock(mockClient)
			}

			input := newRawInput(t)
			tt.mutate(input)

			cfg := &Config{}
			err := ProcessAndValidate(context.Background(), cfg, mockClient, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				if tt.verify != nil {
					tt.verify(t, cfg)
				}
			}

			if tt.setupMock != nil {
				mockClient.AssertExpectations(t)
			}
		})
	}
}

func TestProcessAndValidate_StorePathRecord(t *testing.T) {
	repoDir := t.TempDir()
	input := newRawInput(t)
	require.NoError(t, os.WriteFile(input.Store, []byte("# "+repoDir+"\ncore: Alice, Bob\n"), 0o644))

	mockClient := new(MockGitClient)
	mockClient.On("GetRepoRoot", mock.Anything, repoDir).Return(repoDir, nil)

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(context.Background(), cfg, mockClient, input))
	assert.Equal(t, repoDir, cfg.RepoPath)
	assert.False(t, cfg.Filter.ManualPath)
	mockClient.AssertExpectations(t)
}

func TestProcessStoreInputs(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessStoreInputs(cfg, &ConfigRawInput{Store: " /tmp/aliases "}))
	assert.Equal(t, "/tmp/aliases", cfg.StorePath)

	cfg = &Config{}
	require.NoError(t, ProcessStoreInputs(cfg, &ConfigRawInput{}))
	assert.Equal(t, GetAliasStoreFilePath(), cfg.StorePath)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{Filter: FilterConfig{Keywords: []string{"feat"}, Excludes: []string{"bot"}}}
	clone := cfg.Clone()
	clone.Filter.Keywords[0] = "fix"
	clone.Filter.Excludes = append(clone.Filter.Excludes, "ci")

	assert.Equal(t, []string{"feat"}, cfg.Filter.Keywords)
	assert.Equal(t, []string{"bot"}, cfg.Filter.Excludes)
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "run"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "run", profile.Prefix)
}
