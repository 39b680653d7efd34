package form

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/report"
)

const maxLimit = 1000

// ReportParams are the query parameters shared by the report endpoints.
type ReportParams struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Period    string `json:"period"`
	Limit     string `json:"limit"`
	SortBy    string `json:"sortBy"`
	Months    string `json:"months"`

	sortKeys []string
}

// ReportParamsFromQuery reads ReportParams from a request query.
func ReportParamsFromQuery(q url.Values) *ReportParams {
	return &ReportParams{
		StartDate: strings.TrimSpace(q.Get("startDate")),
		EndDate:   strings.TrimSpace(q.Get("endDate")),
		Period:    strings.TrimSpace(q.Get("period")),
		Limit:     strings.TrimSpace(q.Get("limit")),
		SortBy:    strings.TrimSpace(q.Get("sortBy")),
		Months:    strings.TrimSpace(q.Get("months")),
	}
}

// WithSortKeys restricts sortBy to keys. Without it sortBy is passed through unchecked.
func (r *ReportParams) WithSortKeys(keys []string) *ReportParams {
	r.sortKeys = keys
	return r
}

func (r *ReportParams) Validate() error {
	rules := []*v.FieldRules{
		v.Field(&r.StartDate, v.By(isDate)),
		v.Field(&r.EndDate, v.By(isDate)),
		v.Field(&r.Period, v.By(isPeriod)),
		v.Field(&r.Limit, v.By(isCount(maxLimit))),
		v.Field(&r.Months, v.By(isCount(analytics.MaxForecastPeriods))),
	}
	if len(r.sortKeys) > 0 {
		keys := make([]interface{}, 0, len(r.sortKeys))
		for _, k := range r.sortKeys {
			keys = append(keys, k)
		}
		rules = append(rules, v.Field(&r.SortBy, v.In(keys...)))
	}
	return ValidateStruct(r, rules...)
}

// Query resolves the parameters into a report query.
// A numeric period selects a trailing window of that many days when no explicit dates are given;
// otherwise period names the granularity. fullHistory leaves the window open when no bounds are given.
func (r *ReportParams) Query(now time.Time, fullHistory bool) (report.Query, error) {
	var q report.Query
	if err := r.Validate(); err != nil {
		return q, err
	}

	days, numeric, err := analytics.ParsePeriodDays(r.Period)
	if err != nil {
		return q, err
	}
	switch {
	case numeric && r.StartDate == "" && r.EndDate == "":
		q.Window = analytics.TrailingWindow(days, now)
	case fullHistory:
		q.Window, err = analytics.ResolveOptionalWindow(r.StartDate, r.EndDate)
	default:
		q.Window, err = analytics.ResolveWindow(r.StartDate, r.EndDate, now)
	}
	if err != nil {
		return q, err
	}

	if !numeric {
		if q.Granularity, err = analytics.ParseGranularity(r.Period, ""); err != nil {
			return q, err
		}
	}
	if r.Limit != "" {
		q.Limit, _ = strconv.Atoi(r.Limit)
	}
	q.SortBy = r.SortBy
	return q, nil
}

// ForecastMonths is the requested projection length, zero when left to the default.
func (r *ReportParams) ForecastMonths() (int, error) {
	if err := r.Validate(); err != nil {
		return 0, err
	}
	if r.Months == "" {
		return 0, nil
	}
	n, _ := strconv.Atoi(r.Months)
	return n, nil
}

func isDate(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if govalidator.IsRFC3339(s) || govalidator.IsTime(s, analytics.DayLayout) {
		return nil
	}
	return v.NewError("validation_is_date", "must be a date in YYYY-MM-DD or RFC3339 format")
}

func isPeriod(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if govalidator.IsInt(s) {
		if n, _ := strconv.Atoi(s); n > 0 {
			return nil
		}
		return v.NewError("validation_period_days", "must be a positive number of days")
	}
	if _, err := analytics.ParseGranularity(s, ""); err != nil {
		return v.NewError("validation_period", "must be daily, weekly, monthly or a number of days")
	}
	return nil
}

func isCount(max int) v.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > max {
			return v.NewError("validation_count", "must be a whole number between 1 and "+strconv.Itoa(max))
		}
		return nil
	}
}
