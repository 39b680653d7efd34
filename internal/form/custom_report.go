package form

import (
	"github.com/asaskevich/govalidator"
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
)

// CustomReportRequest is the body of a custom report request.
type CustomReportRequest struct {
	ReportType string         `json:"reportType" valid:"required,in(sales|products)"`
	StartDate  string         `json:"startDate" valid:"-"`
	EndDate    string         `json:"endDate" valid:"-"`
	Filters    map[string]any `json:"filters,omitempty" valid:"-"`
}

func (r *CustomReportRequest) Validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		return gerr.Validation("%s", formatErrMsg(err.Error()))
	}
	return ValidateStruct(r,
		v.Field(&r.StartDate, v.By(isDate)),
		v.Field(&r.EndDate, v.By(isDate)),
	)
}

// Window is the report range, open on the sides the request leaves out.
func (r *CustomReportRequest) Window() (entity.TimeRange, error) {
	if err := r.Validate(); err != nil {
		return entity.TimeRange{}, err
	}
	return analytics.ResolveOptionalWindow(r.StartDate, r.EndDate)
}

// Echo returns the filters with the requested dates merged in, as the report echoes them back.
func (r *CustomReportRequest) Echo() map[string]any {
	out := make(map[string]any, len(r.Filters)+2)
	for k, val := range r.Filters {
		out[k] = val
	}
	if r.StartDate != "" {
		out["startDate"] = r.StartDate
	}
	if r.EndDate != "" {
		out["endDate"] = r.EndDate
	}
	return out
}

// ExportRequest selects the dataset and range of an export.
type ExportRequest struct {
	Type      string `json:"type"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func (r *ExportRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Type, v.Required, v.In("sales", "products")),
		v.Field(&r.StartDate, v.By(isDate)),
		v.Field(&r.EndDate, v.By(isDate)),
	)
}

// Window is the export range; without dates the full history is exported.
func (r *ExportRequest) Window() (entity.TimeRange, error) {
	if err := r.Validate(); err != nil {
		return entity.TimeRange{}, err
	}
	return analytics.ResolveOptionalWindow(r.StartDate, r.EndDate)
}

// ComparisonRequest names the two periods of a comparison. All bounds are required.
type ComparisonRequest struct {
	Period1Start string `json:"period1Start"`
	Period1End   string `json:"period1End"`
	Period2Start string `json:"period2Start"`
	Period2End   string `json:"period2End"`
}

func (r *ComparisonRequest) Validate() error {
	return ValidateStruct(r,
		v.Field(&r.Period1Start, v.Required, v.By(isDate)),
		v.Field(&r.Period1End, v.Required, v.By(isDate)),
		v.Field(&r.Period2Start, v.Required, v.By(isDate)),
		v.Field(&r.Period2End, v.Required, v.By(isDate)),
	)
}

// Periods resolves both periods. End dates given as days include the whole day.
func (r *ComparisonRequest) Periods() (p1, p2 entity.TimeRange, err error) {
	if err = r.Validate(); err != nil {
		return
	}
	if p1, err = analytics.ResolveOptionalWindow(r.Period1Start, r.Period1End); err != nil {
		return
	}
	p2, err = analytics.ResolveOptionalWindow(r.Period2Start, r.Period2End)
	return
}
