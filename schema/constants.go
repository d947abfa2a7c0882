package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching.
	DatabaseBackend string

	// TimeUnit represents the unit of a time window such as "d" in "2 d".
	TimeUnit string
)

// UntaggedIdentity is credited in autogenerate mode when a commit header
// carries no bracketed name list.
const UntaggedIdentity = "untagged"

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml" // alias listing only
	ParquetOut OutputMode = "parquet"
)

// All cache backends supported.
const (
	SQLiteBackend DatabaseBackend = "sqlite"
	NoneBackend   DatabaseBackend = "none" // default
)

// All time units accepted by the time window.
const (
	HourUnit  TimeUnit = "h"
	DayUnit   TimeUnit = "d"
	WeekUnit  TimeUnit = "w"
	MonthUnit TimeUnit = "m"
	YearUnit  TimeUnit = "y"
)

// Seconds per time unit. A month is 30 days and a year is 52 weeks.
const (
	HourSeconds  int64 = 60 * 60
	DaySeconds         = 24 * HourSeconds
	WeekSeconds        = 7 * DaySeconds
	MonthSeconds       = 30 * DaySeconds
	YearSeconds        = 52 * WeekSeconds
)

// TimeUnitSeconds maps each time unit to its length in seconds.
var TimeUnitSeconds = map[TimeUnit]int64{
	HourUnit:  HourSeconds,
	DayUnit:   DaySeconds,
	WeekUnit:  WeekSeconds,
	MonthUnit: MonthSeconds,
	YearUnit:  YearSeconds,
}

// ValidStatsOutputModes lists all valid output modes for contributor statistics.
var ValidStatsOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidAliasOutputModes lists all valid output modes for alias listings.
var ValidAliasOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	YAMLOut: {},
}

// ValidCacheBackends lists all valid cache backends.
var ValidCacheBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend: {},
	NoneBackend:   {},
}
