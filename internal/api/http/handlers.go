package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/render"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/jekabolt/grbpwr-analytics/internal/form"
	"github.com/jekabolt/grbpwr-analytics/internal/report"
)

type healthStatus struct {
	Status string `json:"status"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if err := s.reports.Ping(r.Context()); err != nil {
		respond(w, r, nil, err)
		return
	}
	respond(w, r, healthStatus{Status: "ok"}, nil)
}

// queryReport parses the shared report parameters and runs fn with them.
func queryReport[T any](s *Server, fullHistory bool, fn func(ctx context.Context, q report.Query) (T, error)) http.HandlerFunc {
	return sortedReport(s, fullHistory, nil, fn)
}

// sortedReport is queryReport for reports that only accept sortKeys as sortBy.
func sortedReport[T any](s *Server, fullHistory bool, sortKeys []string, fn func(ctx context.Context, q report.Query) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := form.ReportParamsFromQuery(r.URL.Query()).WithSortKeys(sortKeys).Query(s.reports.Now(), fullHistory)
		if err != nil {
			respond(w, r, nil, err)
			return
		}
		res, err := fn(r.Context(), q)
		respond(w, r, res, err)
	}
}

// plainReport runs a report that takes no parameters.
func plainReport[T any](fn func(ctx context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := fn(r.Context())
		respond(w, r, res, err)
	}
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	plainReport(s.reports.Dashboard)(w, r)
}

func (s *Server) sales(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.Sales)(w, r)
}

func (s *Server) revenue(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.Revenue)(w, r)
}

func (s *Server) productPerformance(w http.ResponseWriter, r *http.Request) {
	sortedReport(s, false, report.ProductSortKeys, s.reports.ProductPerformance)(w, r)
}

func (s *Server) topSellingProducts(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.TopSellingProducts)(w, r)
}

func (s *Server) salesByCategory(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.SalesByCategory)(w, r)
}

func (s *Server) topCategories(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.TopCategories)(w, r)
}

func (s *Server) customers(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.Customers)(w, r)
}

func (s *Server) customerSegments(w http.ResponseWriter, r *http.Request) {
	queryReport(s, true, s.reports.CustomerSegments)(w, r)
}

func (s *Server) customerLifetimeValue(w http.ResponseWriter, r *http.Request) {
	queryReport(s, true, s.reports.CustomerLifetimeValue)(w, r)
}

func (s *Server) inventory(w http.ResponseWriter, r *http.Request) {
	plainReport(s.reports.Inventory)(w, r)
}

func (s *Server) inventoryTurnover(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.InventoryTurnover)(w, r)
}

func (s *Server) orderTrends(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.OrderTrends)(w, r)
}

func (s *Server) seasonalTrends(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.SeasonalTrends)(w, r)
}

func (s *Server) profitability(w http.ResponseWriter, r *http.Request) {
	queryReport(s, false, s.reports.Profitability)(w, r)
}

func (s *Server) cohorts(w http.ResponseWriter, r *http.Request) {
	plainReport(s.reports.Cohorts)(w, r)
}

func (s *Server) rfm(w http.ResponseWriter, r *http.Request) {
	plainReport(s.reports.RFM)(w, r)
}

func (s *Server) forecast(w http.ResponseWriter, r *http.Request) {
	months, err := form.ReportParamsFromQuery(r.URL.Query()).ForecastMonths()
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	res, err := s.reports.Forecast(r.Context(), months)
	respond(w, r, res, err)
}

func (s *Server) comparison(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &form.ComparisonRequest{
		Period1Start: q.Get("period1Start"),
		Period1End:   q.Get("period1End"),
		Period2Start: q.Get("period2Start"),
		Period2End:   q.Get("period2End"),
	}
	p1, p2, err := req.Periods()
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	res, err := s.reports.Comparison(r.Context(), p1, p2)
	respond(w, r, res, err)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := &form.ExportRequest{
		Type:      q.Get("type"),
		StartDate: q.Get("startDate"),
		EndDate:   q.Get("endDate"),
	}
	window, err := req.Window()
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	res, err := s.reports.Export(r.Context(), req.Type, window)
	respond(w, r, res, err)
}

func (s *Server) customReport(w http.ResponseWriter, r *http.Request) {
	req := &form.CustomReportRequest{}
	if err := render.DecodeJSON(r.Body, req); err != nil {
		respond(w, r, nil, gerr.Validation("invalid request body: %v", err))
		return
	}
	window, err := req.Window()
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	res, err := s.reports.CustomReport(r.Context(), req.ReportType, window, req.Echo())
	respond(w, r, res, err)
}
