package report

import (
	"context"
	"time"

	"log/slog"

	"github.com/jekabolt/grbpwr-analytics/internal/analytics"
	"github.com/jekabolt/grbpwr-analytics/internal/dependency"
	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/jekabolt/grbpwr-analytics/internal/metrics"
)

// Config tunes report computation.
type Config struct {
	ComputeTimeout        time.Duration `mapstructure:"compute_timeout"`
	ForecastHistoryMonths int           `mapstructure:"forecast_history_months"`
	ExportFolder          string        `mapstructure:"export_folder"`
}

// DefaultConfig returns the settings used when the config file leaves them out.
func DefaultConfig() *Config {
	return &Config{
		ComputeTimeout:        30 * time.Second,
		ForecastHistoryMonths: 12,
		ExportFolder:          "exports",
	}
}

// Query holds the parsed parameters shared by the list style reports.
type Query struct {
	Window      entity.TimeRange
	Granularity entity.Granularity
	Limit       int
	SortBy      string
}

// Service computes reports over snapshots read from the record store.
// It keeps no state between calls.
type Service struct {
	c        *Config
	repo     dependency.Records
	exporter dependency.Exporter
	now      func() time.Time
	rnd      analytics.RandSource
}

// New creates a report service. exporter may be nil, exports are then returned inline only.
func New(c *Config, repo dependency.Records, exporter dependency.Exporter) *Service {
	def := DefaultConfig()
	if c == nil {
		c = def
	}
	if c.ComputeTimeout <= 0 {
		c.ComputeTimeout = def.ComputeTimeout
	}
	if c.ForecastHistoryMonths <= 0 {
		c.ForecastHistoryMonths = def.ForecastHistoryMonths
	}
	if c.ExportFolder == "" {
		c.ExportFolder = def.ExportFolder
	}
	return &Service{
		c:        c,
		repo:     repo,
		exporter: exporter,
		now:      time.Now,
		rnd:      analytics.DefaultRand,
	}
}

// WithClock replaces the wall clock.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// WithRand replaces the forecast noise source.
func (s *Service) WithRand(rnd analytics.RandSource) *Service {
	s.rnd = rnd
	return s
}

// Now is the current time in UTC as seen by the service.
func (s *Service) Now() time.Time {
	return s.now().UTC()
}

// Ping checks the record store.
func (s *Service) Ping(ctx context.Context) error {
	return gerr.StoreAccess("ping", s.repo.Ping(ctx))
}

// run bounds a report by the compute timeout and records its outcome.
func run[T any](ctx context.Context, s *Service, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, s.c.ComputeTimeout)
	defer cancel()

	start := time.Now()
	res, err := fn(ctx)
	if err == nil {
		err = ctx.Err()
	}
	metrics.RecordReport(name, time.Since(start), err)
	if err != nil {
		slog.Default().ErrorContext(ctx, "report failed",
			slog.String("report", name),
			slog.String("err", err.Error()),
		)
		var zero T
		return zero, err
	}
	return res, nil
}

func (s *Service) orders(ctx context.Context, tr entity.TimeRange) ([]entity.Order, error) {
	start := time.Now()
	orders, err := s.repo.ListOrders(ctx, tr)
	if err != nil {
		return nil, gerr.StoreAccess("list orders", err)
	}
	metrics.RecordStoreRead("list_orders", time.Since(start), len(orders))
	return analytics.FilterOrders(orders, analytics.InWindow(tr)), nil
}

func (s *Service) products(ctx context.Context) ([]entity.Product, error) {
	start := time.Now()
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, gerr.StoreAccess("list products", err)
	}
	metrics.RecordStoreRead("list_products", time.Since(start), len(products))
	return products, nil
}

func (s *Service) categories(ctx context.Context) ([]entity.Category, error) {
	start := time.Now()
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, gerr.StoreAccess("list categories", err)
	}
	metrics.RecordStoreRead("list_categories", time.Since(start), len(categories))
	return categories, nil
}

func (s *Service) customers(ctx context.Context) ([]entity.Customer, error) {
	start := time.Now()
	customers, err := s.repo.ListCustomers(ctx)
	if err != nil {
		return nil, gerr.StoreAccess("list customers", err)
	}
	metrics.RecordStoreRead("list_customers", time.Since(start), len(customers))
	return customers, nil
}
