package analytics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

const (
	DayLayout   = "2006-01-02"
	MonthLayout = "2006-01"

	// DefaultWindowDays is the trailing window used when a request names no dates.
	DefaultWindowDays = 30

	// maxFilledBuckets caps gap filling so a wide daily window cannot explode the series.
	maxFilledBuckets = 3700
)

// ParseGranularity accepts daily|day, weekly|week and monthly|month.
// An empty value yields def.
func ParseGranularity(s string, def entity.Granularity) (entity.Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return def, nil
	case "daily", "day":
		return entity.GranularityDaily, nil
	case "weekly", "week":
		return entity.GranularityWeekly, nil
	case "monthly", "month":
		return entity.GranularityMonthly, nil
	default:
		return "", gerr.Validation("invalid granularity %q", s)
	}
}

// BucketKey maps t to its bucket label in UTC.
// Daily keys are YYYY-MM-DD, monthly YYYY-MM and weekly YYYY-Www with the ISO year.
func BucketKey(t time.Time, g entity.Granularity) string {
	t = t.UTC()
	switch g {
	case entity.GranularityWeekly:
		y, w := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", y, w)
	case entity.GranularityMonthly:
		return t.Format(MonthLayout)
	default:
		return t.Format(DayLayout)
	}
}

// BucketStart truncates t to the first instant of its bucket in UTC.
// Weeks start on Monday.
func BucketStart(t time.Time, g entity.Granularity) time.Time {
	t = t.UTC()
	switch g {
	case entity.GranularityWeekly:
		daysBack := (int(t.Weekday()) + 6) % 7
		return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, time.UTC)
	case entity.GranularityMonthly:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
}

func bucketNext(t time.Time, g entity.Granularity) time.Time {
	switch g {
	case entity.GranularityWeekly:
		return t.AddDate(0, 0, 7)
	case entity.GranularityMonthly:
		return t.AddDate(0, 1, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// BucketKeys lists every bucket key of a bounded window in chronological order.
// Open or oversized windows yield nil.
func BucketKeys(tr entity.TimeRange, g entity.Granularity) []string {
	if !tr.Bounded() || tr.To.Before(tr.From) {
		return nil
	}
	var keys []string
	end := BucketStart(tr.To, g)
	for cur := BucketStart(tr.From, g); !cur.After(end); cur = bucketNext(cur, g) {
		if len(keys) == maxFilledBuckets {
			return nil
		}
		keys = append(keys, BucketKey(cur, g))
	}
	return keys
}

// FillGaps returns one row per bucket of the window, keeping the existing rows
// and inserting zero rows for empty buckets. Rows outside the window are kept at the end.
func FillGaps(rows []Row, tr entity.TimeRange, g entity.Granularity) []Row {
	keys := BucketKeys(tr, g)
	if keys == nil {
		return rows
	}
	byKey := make(map[string]Row, len(rows))
	for _, r := range rows {
		byKey[r.Key] = r
	}
	out := make([]Row, 0, len(keys))
	for _, k := range keys {
		if r, ok := byKey[k]; ok {
			out = append(out, r)
			delete(byKey, k)
			continue
		}
		out = append(out, NewRow(k))
	}
	for _, r := range rows {
		if _, ok := byKey[r.Key]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ParseDate parses YYYY-MM-DD or RFC3339. A date-only value is moved to the
// last instant of its day when endOfDay is set.
func ParseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, gerr.Validation("invalid date %q: expected YYYY-MM-DD or RFC3339", s)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

// ResolveWindow turns optional startDate/endDate parameters into a window.
// Without bounds it covers the trailing DefaultWindowDays up to now.
func ResolveWindow(startDate, endDate string, now time.Time) (entity.TimeRange, error) {
	if startDate == "" && endDate == "" {
		return TrailingWindow(DefaultWindowDays, now), nil
	}
	return ResolveOptionalWindow(startDate, endDate)
}

// ResolveOptionalWindow is ResolveWindow for full-history reports:
// without bounds the window is open on both ends.
func ResolveOptionalWindow(startDate, endDate string) (entity.TimeRange, error) {
	var (
		tr  entity.TimeRange
		err error
	)
	if startDate != "" {
		if tr.From, err = ParseDate(startDate, false); err != nil {
			return tr, err
		}
	}
	if endDate != "" {
		if tr.To, err = ParseDate(endDate, true); err != nil {
			return tr, err
		}
	}
	if tr.Bounded() && tr.From.After(tr.To) {
		return entity.TimeRange{}, gerr.Validation("startDate %s is after endDate %s", startDate, endDate)
	}
	return tr, nil
}

// TrailingWindow covers the last days days up to now.
func TrailingWindow(days int, now time.Time) entity.TimeRange {
	now = now.UTC()
	return entity.TimeRange{
		From: now.AddDate(0, 0, -days),
		To:   now,
	}
}

// ParsePeriodDays parses the numeric "last N days" period parameter.
// ok is false when s is not numeric, so callers can read it as a granularity instead.
func ParsePeriodDays(s string) (days int, ok bool, err error) {
	n, convErr := strconv.Atoi(strings.TrimSpace(s))
	if convErr != nil {
		return 0, false, nil
	}
	if n <= 0 {
		return 0, true, gerr.Validation("period must be a positive number of days, got %d", n)
	}
	return n, true, nil
}
