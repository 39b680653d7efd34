package form

import (
	"net/url"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func TestReportParamsDefaults(t *testing.T) {
	q, err := ReportParamsFromQuery(url.Values{}).Query(now, false)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -30), q.Window.From)
	assert.Equal(t, now, q.Window.To)
	assert.Equal(t, entity.Granularity(""), q.Granularity)
	assert.Zero(t, q.Limit)

	q, err = ReportParamsFromQuery(url.Values{}).Query(now, true)
	require.NoError(t, err)
	assert.True(t, q.Window.IsZero())
}

func TestReportParamsExplicitWindow(t *testing.T) {
	q, err := ReportParamsFromQuery(url.Values{
		"startDate": {"2024-01-01"},
		"endDate":   {"2024-01-31"},
		"period":    {"week"},
		"limit":     {"5"},
		"sortBy":    {"totalSold"},
	}).Query(now, false)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), q.Window.From)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), q.Window.To)
	assert.Equal(t, entity.GranularityWeekly, q.Granularity)
	assert.Equal(t, 5, q.Limit)
	assert.Equal(t, "totalSold", q.SortBy)
}

func TestReportParamsNumericPeriod(t *testing.T) {
	q, err := ReportParamsFromQuery(url.Values{"period": {"7"}}).Query(now, false)
	require.NoError(t, err)
	assert.Equal(t, now.AddDate(0, 0, -7), q.Window.From)
	assert.Equal(t, entity.Granularity(""), q.Granularity)
}

func TestReportParamsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		query url.Values
	}{
		{"bad start date", url.Values{"startDate": {"yesterday"}}},
		{"start after end", url.Values{"startDate": {"2024-02-01"}, "endDate": {"2024-01-01"}}},
		{"bad period", url.Values{"period": {"hourly"}}},
		{"zero period", url.Values{"period": {"0"}}},
		{"zero limit", url.Values{"limit": {"0"}}},
		{"huge limit", url.Values{"limit": {"100000"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReportParamsFromQuery(tt.query).Query(now, false)
			require.Error(t, err)
			assert.True(t, gerr.IsValidation(err), err.Error())
		})
	}
}

func TestReportParamsSortKeys(t *testing.T) {
	query := url.Values{"sortBy": {"rating"}}

	q, err := ReportParamsFromQuery(query).Query(now, false)
	require.NoError(t, err, "sortBy is ignored unless the report sorts")
	assert.Equal(t, "rating", q.SortBy)

	_, err = ReportParamsFromQuery(query).WithSortKeys([]string{"totalSold", "totalRevenue"}).Query(now, false)
	require.Error(t, err)
	assert.True(t, gerr.IsValidation(err), err.Error())

	q, err = ReportParamsFromQuery(url.Values{"sortBy": {"totalRevenue"}}).WithSortKeys([]string{"totalSold", "totalRevenue"}).Query(now, false)
	require.NoError(t, err)
	assert.Equal(t, "totalRevenue", q.SortBy)
}

func TestForecastMonths(t *testing.T) {
	n, err := ReportParamsFromQuery(url.Values{}).ForecastMonths()
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = ReportParamsFromQuery(url.Values{"months": {"3"}}).ForecastMonths()
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, err = ReportParamsFromQuery(url.Values{"months": {"37"}}).ForecastMonths()
	assert.True(t, gerr.IsValidation(err))
}

func TestCustomReportRequest(t *testing.T) {
	r := &CustomReportRequest{ReportType: "sales", StartDate: "2024-01-01", Filters: map[string]any{"channel": "web"}}
	w, err := r.Window()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), w.From)
	assert.True(t, w.To.IsZero())
	assert.Equal(t, map[string]any{"channel": "web", "startDate": "2024-01-01"}, r.Echo())

	for _, bad := range []*CustomReportRequest{
		{},
		{ReportType: "refunds"},
		{ReportType: "products", EndDate: "31/01/2024"},
	} {
		err := bad.Validate()
		require.Error(t, err)
		assert.True(t, gerr.IsValidation(err))
	}
}

func TestExportRequest(t *testing.T) {
	w, err := (&ExportRequest{Type: "products"}).Window()
	require.NoError(t, err)
	assert.True(t, w.IsZero())

	err = (&ExportRequest{Type: "users"}).Validate()
	assert.True(t, gerr.IsValidation(err))
}

func TestComparisonRequest(t *testing.T) {
	r := &ComparisonRequest{
		Period1Start: "2024-01-01",
		Period1End:   "2024-01-31",
		Period2Start: "2024-02-01",
		Period2End:   "2024-02-29",
	}
	p1, p2, err := r.Periods()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC), p1.To)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p2.From)

	r.Period2End = ""
	err = r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Period2End")
}
