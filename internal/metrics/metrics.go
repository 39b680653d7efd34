package metrics

import (
	"strconv"
	"time"

	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_report_duration_seconds",
			Help:    "Duration of report computations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"report"},
	)

	ReportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_report_errors_total",
			Help: "Total number of failed report computations",
		},
		[]string{"report", "kind"},
	)

	StoreReadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "analytics_store_read_duration_seconds",
			Help:    "Duration of record store reads in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreRecordsRead = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_store_records_read_total",
			Help: "Total number of records read from the record store",
		},
		[]string{"operation"},
	)

	APIRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analytics_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"route", "status"},
	)
)

// RecordReport records one report computation.
func RecordReport(report string, duration time.Duration, err error) {
	ReportDuration.WithLabelValues(report).Observe(duration.Seconds())
	if err != nil {
		kind := gerr.KindOf(err).String()
		if gerr.IsCanceled(err) {
			kind = "canceled"
		}
		ReportErrors.WithLabelValues(report, kind).Inc()
	}
}

// RecordStoreRead records one record store read.
func RecordStoreRead(operation string, duration time.Duration, records int) {
	StoreReadDuration.WithLabelValues(operation).Observe(duration.Seconds())
	StoreRecordsRead.WithLabelValues(operation).Add(float64(records))
}

// RecordAPIRequest counts one API response.
func RecordAPIRequest(route string, status int) {
	APIRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}
