package report

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"log/slog"

	"github.com/google/uuid"
	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"golang.org/x/exp/slices"
)

const (
	ReportTypeSales    = "sales"
	ReportTypeProducts = "products"
)

// ReportTypes are the datasets custom reports and exports can be built from.
var ReportTypes = []string{ReportTypeSales, ReportTypeProducts}

// CustomReport builds an ad hoc report of reportType over the orders of window.
// filters are echoed back untouched.
func (s *Service) CustomReport(ctx context.Context, reportType string, window entity.TimeRange, filters map[string]any) (*entity.CustomReport, error) {
	return run(ctx, s, "custom_report", func(ctx context.Context) (*entity.CustomReport, error) {
		var (
			results any
			err     error
		)
		switch reportType {
		case ReportTypeSales:
			results, err = s.dailySales(ctx, window)
		case ReportTypeProducts:
			results, err = s.productQuantities(ctx, window)
		default:
			return nil, fmt.Errorf("%w %q", gerr.ErrInvalidReportType, reportType)
		}
		if err != nil {
			return nil, err
		}
		return &entity.CustomReport{
			ReportID:    uuid.NewString(),
			ReportType:  reportType,
			GeneratedAt: s.Now(),
			Range:       window,
			Filters:     filters,
			Results:     results,
		}, nil
	})
}

func (s *Service) dailySales(ctx context.Context, window entity.TimeRange) ([]entity.DailySales, error) {
	snap, err := s.load(ctx, need{orders: true, window: window})
	if err != nil {
		return nil, err
	}
	rows, err := analytics.AggregateContext(ctx, snap.orders, bucketOf(entity.GranularityDaily),
		analytics.Sum("totalSales", analytics.OrderRevenue),
		analytics.Count[entity.Order]("orderCount"),
	)
	if err != nil {
		return nil, err
	}
	rows = analytics.SortByKey(rows)
	out := make([]entity.DailySales, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.DailySales{
			Date:       r.Key,
			TotalSales: r.Value("totalSales"),
			OrderCount: r.Int("orderCount"),
		})
	}
	return out, nil
}

// productQuantities keeps lines of products missing from the catalog, with an empty name.
func (s *Service) productQuantities(ctx context.Context, window entity.TimeRange) ([]entity.ProductQuantity, error) {
	snap, err := s.load(ctx, need{orders: true, window: window, products: true})
	if err != nil {
		return nil, err
	}
	rows, err := analytics.AggregateContext(ctx, analytics.Lines(snap.orders),
		func(l analytics.Line) string { return l.ProductID },
		analytics.Sum("totalQuantity", analytics.LineQuantity),
		analytics.Sum("totalRevenue", analytics.LineRevenue),
	)
	if err != nil {
		return nil, err
	}
	rows = analytics.Enrich(rows, analytics.Join{
		Ref:           analytics.ByKey,
		Table:         productTable(snap.products),
		Fields:        []string{"name"},
		KeepUnmatched: true,
	})
	rows = analytics.SortDesc(rows, "totalRevenue")
	out := make([]entity.ProductQuantity, 0, len(rows))
	for _, r := range rows {
		out = append(out, entity.ProductQuantity{
			ProductID:     r.Key,
			ProductName:   r.Attr("name"),
			TotalQuantity: r.Int("totalQuantity"),
			TotalRevenue:  r.Value("totalRevenue"),
		})
	}
	return out, nil
}

// Export snapshots the orders or the catalog as JSON records.
// When an exporter is configured the snapshot is also uploaded and its URL returned.
func (s *Service) Export(ctx context.Context, exportType string, window entity.TimeRange) (*entity.Export, error) {
	return run(ctx, s, "export", func(ctx context.Context) (*entity.Export, error) {
		var (
			records any
			count   int
		)
		switch exportType {
		case ReportTypeSales:
			orders, err := s.exportOrders(ctx, window)
			if err != nil {
				return nil, err
			}
			records, count = orders, len(orders)
		case ReportTypeProducts:
			products, err := s.exportProducts(ctx, window)
			if err != nil {
				return nil, err
			}
			records, count = products, len(products)
		default:
			return nil, fmt.Errorf("%w %q", gerr.ErrInvalidExportType, exportType)
		}

		exp := &entity.Export{
			ExportID:   uuid.NewString(),
			Type:       exportType,
			ExportedAt: s.Now(),
			Count:      count,
			Records:    records,
		}
		if s.exporter == nil {
			return exp, nil
		}

		payload, err := json.Marshal(exp)
		if err != nil {
			return nil, fmt.Errorf("can't marshal export: %w", err)
		}
		folder := path.Join(s.c.ExportFolder, exportType)
		name := fmt.Sprintf("%s-%s", exp.ExportedAt.Format("20060102T150405Z"), exp.ExportID)
		url, err := s.exporter.UploadExport(ctx, payload, folder, name, "application/json")
		if err != nil {
			slog.Default().ErrorContext(ctx, "can't upload export",
				slog.String("type", exportType),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("can't upload export: %w", err)
		}
		exp.ObjectURL = url
		return exp, nil
	})
}

// exportOrders lists the orders of window newest first. Orders of unknown customers are kept.
func (s *Service) exportOrders(ctx context.Context, window entity.TimeRange) ([]entity.OrderExport, error) {
	snap, err := s.load(ctx, need{orders: true, window: window, customers: true})
	if err != nil {
		return nil, err
	}
	customers := analytics.IndexBy(snap.customers, customerID)
	joined := analytics.JoinRecords(snap.orders, customerOf, customers, true)
	slices.SortStableFunc(joined, func(a, b analytics.Joined[entity.Order, entity.Customer]) int {
		if c := b.Record.CreatedAt.Compare(a.Record.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Record.ID, b.Record.ID)
	})

	out := make([]entity.OrderExport, 0, len(joined))
	for _, j := range joined {
		o := j.Record
		out = append(out, entity.OrderExport{
			OrderID:       o.ID,
			CreatedAt:     o.CreatedAt,
			CustomerID:    o.CustomerID,
			CustomerName:  j.Ref.Name,
			CustomerEmail: j.Ref.Email,
			Status:        string(o.Status),
			PaymentStatus: string(o.PaymentStatus),
			PaymentMethod: o.PaymentMethod,
			Items:         len(o.Items),
			TotalPrice:    o.Revenue(),
		})
	}
	return out, nil
}

// exportProducts lists the catalog by units sold in window, best sellers first.
func (s *Service) exportProducts(ctx context.Context, window entity.TimeRange) ([]entity.ProductExport, error) {
	snap, err := s.load(ctx, need{orders: true, window: window, products: true, categories: true})
	if err != nil {
		return nil, err
	}
	sold, err := analytics.AggregateContext(ctx, analytics.Lines(snap.orders),
		func(l analytics.Line) string { return l.ProductID },
		analytics.Sum("unitsSold", analytics.LineQuantity),
	)
	if err != nil {
		return nil, err
	}
	soldBy := analytics.IndexBy(sold, analytics.ByKey)

	rows := make([]analytics.Row, 0, len(snap.products))
	for _, p := range snap.products {
		r := analytics.NewRow(p.ID)
		r.Attrs = map[string]string{"categoryId": p.CategoryID}
		r.Set("unitsSold", soldBy[p.ID].Value("unitsSold"))
		rows = append(rows, r)
	}
	rows = analytics.Enrich(rows, analytics.Join{
		Ref:           analytics.ByAttr("categoryId"),
		Table:         categoryTable(snap.categories),
		Fields:        []string{"categoryName"},
		KeepUnmatched: true,
	})
	rows = analytics.SortDesc(rows, "unitsSold")

	products := analytics.IndexBy(snap.products, productID)
	out := make([]entity.ProductExport, 0, len(rows))
	for _, r := range rows {
		p := products[r.Key]
		out = append(out, entity.ProductExport{
			ProductID:     p.ID,
			Name:          p.Name,
			SKU:           p.SKU,
			CategoryName:  r.Attr("categoryName"),
			Price:         p.Price,
			CostPrice:     p.CostPrice,
			StockQuantity: p.StockQuantity,
			UnitsSold:     r.Int("unitsSold"),
		})
	}
	return out, nil
}

// ValidReportType reports whether t names a custom report or export dataset.
func ValidReportType(t string) bool {
	return slices.Contains(ReportTypes, t)
}
