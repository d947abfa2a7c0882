package contract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/huangsam/groupstats/internal/aliasstore"
	"github.com/huangsam/groupstats/schema"
)

// Default values for configuration.
const (
	DefaultRef        = "HEAD"
	DefaultRepoPath   = "."
	DefaultIdentWidth = 40
)

// configValidate checks the struct tags on ConfigRawInput.
var configValidate = validator.New()

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// FilterConfig holds every toggle of the classification pipeline with its arguments.
// A predicate whose toggle is off admits every commit.
type FilterConfig struct {
	ExclusiveConfig bool // Only credit identities found in the alias store
	ManualPath      bool // Repository path was given on the command line
	IgnoreConfig    bool // Skip alias matching entirely

	KeywordFilter bool     // Header must contain one of Keywords
	Keywords      []string // Case-sensitive header keywords

	CaseInsensitiveSearch bool     // Header or body must contain one of CISearchTerms, ignoring case
	CISearchTerms         []string // Case-insensitive search terms

	Autogenerate bool // Resolve identities from a bracketed name list in the header

	ExcludeList bool     // Drop the identities listed in Excludes
	Excludes    []string // Identities never credited

	FreeTextSearch bool     // Header or body must contain one of SearchTerms
	SearchTerms    []string // Case-sensitive search terms

	BranchFilter bool     // Accepted for compatibility; branch-scoped filtering is not supported
	Branches     []string // Branch names, unused

	TimeWindow        bool  // Only credit commits younger than the budget
	TimeBudgetSeconds int64 // Maximum commit age in seconds
}

// Config holds the runtime configuration for a statistics run.
// This struct is the "final, validated" config.
type Config struct {
	StorePath string // Alias store file
	RepoPath  string // Repository root
	Ref       string // Traversal start point

	Filter FilterConfig
	Now    time.Time // Reference time for the time window

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathArgs []string

	// --- Fields from rootCmd.PersistentFlags() ---
	Store          string `mapstructure:"store"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	Color          string `mapstructure:"color" validate:"omitempty,oneof=yes no true false 1 0"`
	Width          int    `mapstructure:"width" validate:"gte=0"`
	CacheBackend   string `mapstructure:"cache-backend" validate:"oneof=sqlite none"`
	CacheDBConnect string `mapstructure:"cache-db-connect"`

	// --- Fields from statsCmd.Flags() ---
	Path         string   `mapstructure:"path"`
	Exclusive    bool     `mapstructure:"exclusive"`
	IgnoreConfig bool     `mapstructure:"ignore-config"`
	Autogenerate bool     `mapstructure:"autogenerate"`
	Filter       []string `mapstructure:"filter"`
	Search       []string `mapstructure:"search"`
	CISearch     []string `mapstructure:"ci-search"`
	Exclude      []string `mapstructure:"exclude"`
	Branch       []string `mapstructure:"branch"`
	Time         string   `mapstructure:"time"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Filter.Keywords = slices.Clone(c.Filter.Keywords)
	clone.Filter.CISearchTerms = slices.Clone(c.Filter.CISearchTerms)
	clone.Filter.Excludes = slices.Clone(c.Filter.Excludes)
	clone.Filter.SearchTerms = slices.Clone(c.Filter.SearchTerms)
	clone.Filter.Branches = slices.Clone(c.Filter.Branches)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := ProcessFilterInputs(cfg, input); err != nil {
		return err
	}
	if err := resolveRepoPath(ctx, cfg, client, input); err != nil {
		return err
	}
	return nil
}

// ProcessStoreInputs resolves only what the alias commands need.
func ProcessStoreInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.StorePath = strings.TrimSpace(input.Store)
	if cfg.StorePath == "" {
		cfg.StorePath = GetAliasStoreFilePath()
	}
	return nil
}

// validateSimpleInputs processes and validates all non-filter, non-path fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Normalize enumerations so tag validation is case-insensitive ---
	input.Color = strings.ToLower(strings.TrimSpace(input.Color))
	input.CacheBackend = strings.ToLower(strings.TrimSpace(input.CacheBackend))
	input.Output = strings.ToLower(strings.TrimSpace(input.Output))

	if err := configValidate.Struct(input); err != nil {
		return formatValidationError(err)
	}

	// --- 1. Transfer simple fields from input -> cfg ---
	if err := ProcessStoreInputs(cfg, input); err != nil {
		return err
	}
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Ref = DefaultRef
	cfg.Now = time.Now()

	colors := true
	if input.Color != "" {
		parsed, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		colors = parsed
	}
	cfg.UseColors = colors

	// --- 2. Output Validation ---
	cfg.Output = schema.OutputMode(input.Output)
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidStatsOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return errors.New("parquet output requires --output-file")
	}

	// --- 3. Cache Backend ---
	cfg.CacheBackend = schema.DatabaseBackend(input.CacheBackend)
	cfg.CacheDBConnect = input.CacheDBConnect

	return nil
}

// formatValidationError turns validator field errors into a flag-oriented message.
func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	parts := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		parts = append(parts, fmt.Sprintf("invalid %s value %q (rule: %s %s)", strings.ToLower(fe.Field()), fmt.Sprint(fe.Value()), fe.Tag(), fe.Param()))
	}
	return errors.New(strings.Join(parts, "; "))
}

// ProcessFilterInputs fills cfg.Filter from the raw inputs.
func ProcessFilterInputs(cfg *Config, input *ConfigRawInput) error {
	f := FilterConfig{
		ExclusiveConfig: input.Exclusive,
		IgnoreConfig:    input.IgnoreConfig,
		Autogenerate:    input.Autogenerate,
	}

	f.Keywords = cleanTerms(input.Filter)
	f.KeywordFilter = len(f.Keywords) > 0

	f.CISearchTerms = cleanTerms(input.CISearch)
	f.CaseInsensitiveSearch = len(f.CISearchTerms) > 0

	f.SearchTerms = cleanTerms(input.Search)
	f.FreeTextSearch = len(f.SearchTerms) > 0

	f.Excludes = cleanTerms(input.Exclude)
	f.ExcludeList = len(f.Excludes) > 0

	f.Branches = cleanTerms(input.Branch)
	f.BranchFilter = len(f.Branches) > 0
	if f.BranchFilter {
		LogWarn("Ignoring --branch", errors.New("branch-scoped filtering is not supported"))
	}

	if strings.TrimSpace(input.Time) != "" {
		budget, err := ParseTimeWindow(input.Time)
		if err != nil {
			return err
		}
		f.TimeWindow = true
		f.TimeBudgetSeconds = budget
	}

	if f.ExclusiveConfig && f.IgnoreConfig {
		LogWarn("Conflicting options", errors.New("--exclusive with --ignore-config credits no commits"))
	}

	cfg.Filter = f
	return nil
}

// cleanTerms trims every term and drops empty ones.
func cleanTerms(terms []string) []string {
	var out []string
	for _, t := range terms {
		if trimmed := strings.TrimSpace(t); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// resolveRepoPath picks the repository from the command line, the alias store
// path record or the working directory, then resolves it to the repository root.
func resolveRepoPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	candidates := cleanTerms(input.RepoPathArgs)
	if p := strings.TrimSpace(input.Path); p != "" {
		candidates = append(candidates, p)
	}

	searchPath := lookupStorePath(cfg.StorePath)
	switch len(candidates) {
	case 0:
	case 1:
		searchPath = candidates[0]
		cfg.Filter.ManualPath = true
	default:
		LogWarn("Ignoring repository path override", fmt.Errorf("too many paths provided: %s", strings.Join(candidates, ", ")))
	}
	if searchPath == "" {
		searchPath = DefaultRepoPath
	}

	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return err
	}
	absSearchPath = filepath.Clean(absSearchPath)

	gitContextPath := absSearchPath
	if info, statErr := os.Stat(absSearchPath); statErr == nil && !info.IsDir() {
		gitContextPath = filepath.Dir(absSearchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, gitContextPath)
	if err != nil {
		return fmt.Errorf("could not find repository at %q: %w", searchPath, err)
	}
	cfg.RepoPath = gitRoot
	return nil
}

// lookupStorePath reads the path record of the alias store. Failures degrade
// to an empty path.
func lookupStorePath(storePath string) string {
	path, err := aliasstore.New(storePath, os.Stdout).GetPath()
	if err != nil {
		LogWarn("Could not read repository path from alias store", err)
		return ""
	}
	return path
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
