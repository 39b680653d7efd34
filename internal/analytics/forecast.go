package analytics

import (
	"math/rand/v2"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/shopspring/decimal"
)

const (
	// MaxForecastPeriods bounds how far ahead a forecast may look.
	MaxForecastPeriods = 36

	forecastNoise = 0.1
)

var (
	baseConfidence  = decimal.RequireFromString("0.8")
	confidenceDecay = decimal.RequireFromString("0.1")
)

// RandSource yields uniform numbers in [0, 1).
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 {
	return rand.Float64()
}

// DefaultRand draws from the process wide generator and is safe for concurrent use.
var DefaultRand RandSource = globalRand{}

// ValidateForecastPeriods checks a requested projection length.
func ValidateForecastPeriods(n int) error {
	if n <= 0 || n > MaxForecastPeriods {
		return gerr.Validation("forecast periods must be between 1 and %d, got %d", MaxForecastPeriods, n)
	}
	return nil
}

// Forecast projects n months from the mean of history with uniform noise
// of +-10% per month. Confidence starts at 0.7 and drops 0.1 per month, never below 0.
// Periods are counted from the first day of start's month.
func Forecast(history []decimal.Decimal, n int, start time.Time, rnd RandSource) ([]entity.ForecastPoint, error) {
	if err := ValidateForecastPeriods(n); err != nil {
		return nil, err
	}
	if rnd == nil {
		rnd = DefaultRand
	}

	avg := decimal.Zero
	if len(history) > 0 {
		avg = decimal.Sum(decimal.Zero, history...).Div(decimal.NewFromInt(int64(len(history))))
	}

	start = start.UTC()
	first := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	points := make([]entity.ForecastPoint, 0, n)
	for i := 1; i <= n; i++ {
		noise := rnd.Float64()*2*forecastNoise - forecastNoise
		confidence := baseConfidence.Sub(confidenceDecay.Mul(decimal.NewFromInt(int64(i))))
		if confidence.IsNegative() {
			confidence = decimal.Zero
		}
		points = append(points, entity.ForecastPoint{
			Period:           first.AddDate(0, i, 0).Format(MonthLayout),
			PredictedRevenue: avg.Mul(decimal.NewFromFloat(1 + noise)).Round(2),
			Confidence:       confidence,
		})
	}
	return points, nil
}
