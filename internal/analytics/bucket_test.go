package analytics

import (
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestBucketKey(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		g    entity.Granularity
		want string
	}{
		{"daily", date(2024, 1, 15), entity.GranularityDaily, "2024-01-15"},
		{"monthly", date(2024, 1, 15), entity.GranularityMonthly, "2024-01"},
		{"weekly", date(2024, 1, 15), entity.GranularityWeekly, "2024-W03"},
		{"weekly iso year rollover", date(2024, 12, 30), entity.GranularityWeekly, "2025-W01"},
		{"weekly iso year back", date(2021, 1, 1), entity.GranularityWeekly, "2020-W53"},
		{"utc normalization", time.Date(2024, 1, 31, 23, 30, 0, 0, time.FixedZone("x", -2*3600)), entity.GranularityDaily, "2024-02-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BucketKey(tt.t, tt.g))
		})
	}
}

func TestBucketKeyOrdering(t *testing.T) {
	for _, g := range []entity.Granularity{entity.GranularityDaily, entity.GranularityWeekly, entity.GranularityMonthly} {
		prev := ""
		for cur := date(2023, 12, 1); cur.Before(date(2025, 2, 1)); cur = cur.AddDate(0, 0, 1) {
			k := BucketKey(cur, g)
			assert.GreaterOrEqual(t, k, prev, "granularity %s at %s", g, cur)
			prev = k
		}
	}
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("", entity.GranularityMonthly)
	require.NoError(t, err)
	assert.Equal(t, entity.GranularityMonthly, g)

	for in, want := range map[string]entity.Granularity{
		"day":     entity.GranularityDaily,
		"Daily":   entity.GranularityDaily,
		"week":    entity.GranularityWeekly,
		"weekly":  entity.GranularityWeekly,
		"month":   entity.GranularityMonthly,
		"monthly": entity.GranularityMonthly,
	} {
		g, err := ParseGranularity(in, entity.GranularityDaily)
		require.NoError(t, err)
		assert.Equal(t, want, g, in)
	}

	_, err = ParseGranularity("hourly", entity.GranularityDaily)
	assert.True(t, gerr.IsValidation(err))
}

func TestResolveWindow(t *testing.T) {
	now := time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC)

	t.Run("default trailing window", func(t *testing.T) {
		tr, err := ResolveWindow("", "", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -30), tr.From)
		assert.Equal(t, now, tr.To)
	})

	t.Run("date only end covers the whole day", func(t *testing.T) {
		tr, err := ResolveWindow("2024-01-01", "2024-01-31", now)
		require.NoError(t, err)
		assert.Equal(t, date(2024, 1, 1), tr.From)
		assert.True(t, tr.Contains(time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)))
		assert.False(t, tr.Contains(date(2024, 2, 1)))
	})

	t.Run("rfc3339", func(t *testing.T) {
		tr, err := ResolveWindow("2024-01-01T10:00:00Z", "2024-01-01T12:00:00+02:00", now)
		require.NoError(t, err)
		assert.Equal(t, tr.From, tr.To)
	})

	t.Run("single bound stays open", func(t *testing.T) {
		tr, err := ResolveWindow("2024-01-01", "", now)
		require.NoError(t, err)
		assert.True(t, tr.To.IsZero())
		assert.True(t, tr.Contains(date(2030, 1, 1)))
	})

	t.Run("start after end", func(t *testing.T) {
		_, err := ResolveWindow("2024-02-01", "2024-01-01", now)
		assert.True(t, gerr.IsValidation(err))
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ResolveWindow("yesterday", "", now)
		assert.True(t, gerr.IsValidation(err))
	})

	t.Run("optional window without bounds is open", func(t *testing.T) {
		tr, err := ResolveOptionalWindow("", "")
		require.NoError(t, err)
		assert.True(t, tr.IsZero())
	})
}

func TestParsePeriodDays(t *testing.T) {
	n, ok, err := ParsePeriodDays("7")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok, err = ParsePeriodDays("monthly")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ParsePeriodDays("0")
	assert.True(t, ok)
	assert.True(t, gerr.IsValidation(err))
}

func TestFillGaps(t *testing.T) {
	jan := NewRow("2024-01")
	jan.Set("revenue", dec("300"))
	mar := NewRow("2024-03")
	mar.Set("revenue", dec("50"))

	rows := FillGaps([]Row{mar, jan}, entity.TimeRange{From: date(2024, 1, 10), To: date(2024, 3, 5)}, entity.GranularityMonthly)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, []string{rows[0].Key, rows[1].Key, rows[2].Key})
	assert.True(t, rows[1].Value("revenue").IsZero())
	assert.Equal(t, "50", rows[2].Value("revenue").String())

	open := FillGaps([]Row{mar}, entity.TimeRange{From: date(2024, 1, 1)}, entity.GranularityMonthly)
	assert.Len(t, open, 1)
}

func TestBucketKeysWeekly(t *testing.T) {
	keys := BucketKeys(entity.TimeRange{From: date(2024, 12, 25), To: date(2025, 1, 8)}, entity.GranularityWeekly)
	assert.Equal(t, []string{"2024-W52", "2025-W01", "2025-W02"}, keys)
}
