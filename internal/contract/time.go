package contract

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/huangsam/groupstats/schema"
)

// timeWindowRe captures "N unit" or "Nunit", e.g. "2 d", "3w", "1 month".
var timeWindowRe = regexp.MustCompile(`^(\d+)\s*([a-z]+)$`)

// timeUnitAliases maps accepted spellings to their time unit.
var timeUnitAliases = map[string]schema.TimeUnit{
	"h": schema.HourUnit, "hour": schema.HourUnit, "hours": schema.HourUnit,
	"d": schema.DayUnit, "day": schema.DayUnit, "days": schema.DayUnit,
	"w": schema.WeekUnit, "week": schema.WeekUnit, "weeks": schema.WeekUnit,
	"m": schema.MonthUnit, "month": schema.MonthUnit, "months": schema.MonthUnit,
	"y": schema.YearUnit, "year": schema.YearUnit, "years": schema.YearUnit,
}

// ParseTimeWindow converts strings like "2 d" or "3 weeks" into a budget in seconds.
// An unknown unit is an error rather than a zero budget.
func ParseTimeWindow(s string) (int64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	matches := timeWindowRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid time window %q: expected a number followed by a unit ([h]ours, [d]ays, [w]eeks, [m]onths or [y]ears)", s)
	}

	value, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid time window %q: %w", s, err)
	}

	unit, ok := timeUnitAliases[matches[2]]
	if !ok {
		return 0, fmt.Errorf("invalid time unit %q: use h, d, w, m or y", matches[2])
	}
	seconds := schema.TimeUnitSeconds[unit]
	if value > math.MaxInt64/seconds {
		return 0, fmt.Errorf("invalid time window %q: too large", s)
	}
	return value * seconds, nil
}
