package analytics

import (
	"context"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/shopspring/decimal"
)

// Tier is a spend based customer segment.
type Tier string

const (
	TierVIP     Tier = "VIP"
	TierPremium Tier = "Premium"
	TierRegular Tier = "Regular"
	TierNew     Tier = "New"
)

// Tiers lists the spend tiers from highest to lowest.
var Tiers = []Tier{TierVIP, TierPremium, TierRegular, TierNew}

type tierRule struct {
	min  decimal.Decimal
	tier Tier
}

var tierRules = []tierRule{
	{decimal.NewFromInt(1000), TierVIP},
	{decimal.NewFromInt(500), TierPremium},
	{decimal.NewFromInt(100), TierRegular},
}

// SpendTier places a customer by total spend. Lower bounds are inclusive.
func SpendTier(totalSpent decimal.Decimal) Tier {
	for _, r := range tierRules {
		if totalSpent.GreaterThanOrEqual(r.min) {
			return r.tier
		}
	}
	return TierNew
}

type threshold struct {
	bound decimal.Decimal
	score int
}

var (
	recencyScores = []threshold{
		{decimal.NewFromInt(30), 5},
		{decimal.NewFromInt(60), 4},
		{decimal.NewFromInt(90), 3},
		{decimal.NewFromInt(180), 2},
	}
	frequencyScores = []threshold{
		{decimal.NewFromInt(10), 5},
		{decimal.NewFromInt(5), 4},
		{decimal.NewFromInt(3), 3},
		{decimal.NewFromInt(2), 2},
	}
	monetaryScores = []threshold{
		{decimal.NewFromInt(1000), 5},
		{decimal.NewFromInt(500), 4},
		{decimal.NewFromInt(250), 3},
		{decimal.NewFromInt(100), 2},
	}
)

func scoreAtMost(v decimal.Decimal, table []threshold) int {
	for _, t := range table {
		if v.LessThanOrEqual(t.bound) {
			return t.score
		}
	}
	return 1
}

func scoreAtLeast(v decimal.Decimal, table []threshold) int {
	for _, t := range table {
		if v.GreaterThanOrEqual(t.bound) {
			return t.score
		}
	}
	return 1
}

// RFMScore holds the 1..5 recency, frequency and monetary scores of a customer.
type RFMScore struct {
	Recency   int `json:"recency"`
	Frequency int `json:"frequency"`
	Monetary  int `json:"monetary"`
}

// ScoreRFM scores a customer. Recent, frequent and big spenders score higher.
func ScoreRFM(recencyDays decimal.Decimal, orderCount int, totalSpent decimal.Decimal) RFMScore {
	return RFMScore{
		Recency:   scoreAtMost(recencyDays, recencyScores),
		Frequency: scoreAtLeast(decimal.NewFromInt(int64(orderCount)), frequencyScores),
		Monetary:  scoreAtLeast(totalSpent, monetaryScores),
	}
}

// Segment is an RFM customer segment.
type Segment string

const (
	SegmentChampions Segment = "Champions"
	SegmentLoyal     Segment = "Loyal Customers"
	SegmentNew       Segment = "New Customers"
	SegmentAtRisk    Segment = "At Risk"
	SegmentOthers    Segment = "Others"
)

type segmentRule struct {
	segment Segment
	match   func(RFMScore) bool
}

// segmentRules are evaluated in order; the first match wins.
var segmentRules = []segmentRule{
	{SegmentChampions, func(s RFMScore) bool { return s.Recency >= 4 && s.Frequency >= 4 && s.Monetary >= 4 }},
	{SegmentLoyal, func(s RFMScore) bool { return s.Recency >= 3 && s.Frequency >= 3 && s.Monetary >= 3 }},
	{SegmentNew, func(s RFMScore) bool { return s.Recency >= 4 && s.Frequency <= 2 }},
	{SegmentAtRisk, func(s RFMScore) bool { return s.Recency <= 2 && s.Frequency >= 3 }},
}

// Segments lists the RFM segments in rule order.
var Segments = []Segment{SegmentChampions, SegmentLoyal, SegmentNew, SegmentAtRisk, SegmentOthers}

// Segment maps the score to its segment.
func (s RFMScore) Segment() Segment {
	for _, r := range segmentRules {
		if r.match(s) {
			return r.segment
		}
	}
	return SegmentOthers
}

// AssignSegment scores a customer and returns its segment.
func AssignSegment(recencyDays decimal.Decimal, orderCount int, totalSpent decimal.Decimal) Segment {
	return ScoreRFM(recencyDays, orderCount, totalSpent).Segment()
}

// CustomerActivity is the order history of one customer folded into totals.
type CustomerActivity struct {
	CustomerID string
	OrderCount int
	TotalSpent decimal.Decimal
	FirstOrder time.Time
	LastOrder  time.Time
}

var msPerDay = decimal.NewFromInt(int64(24 * time.Hour / time.Millisecond))

// RecencyDays is the fractional number of days since the last order.
func (c CustomerActivity) RecencyDays(now time.Time) decimal.Decimal {
	return decimal.NewFromInt(now.Sub(c.LastOrder).Milliseconds()).Div(msPerDay)
}

// LifetimeDays is the fractional number of days between the first and last order.
func (c CustomerActivity) LifetimeDays() decimal.Decimal {
	return decimal.NewFromInt(c.LastOrder.Sub(c.FirstOrder).Milliseconds()).Div(msPerDay)
}

// AverageOrderValue is the spend per order.
func (c CustomerActivity) AverageOrderValue() decimal.Decimal {
	if c.OrderCount == 0 {
		return decimal.Zero
	}
	return c.TotalSpent.Div(decimal.NewFromInt(int64(c.OrderCount)))
}

// Score is the RFM score of the customer at now.
func (c CustomerActivity) Score(now time.Time) RFMScore {
	return ScoreRFM(c.RecencyDays(now), c.OrderCount, c.TotalSpent)
}

// CustomerActivities folds orders per customer in first-seen order.
func CustomerActivities(ctx context.Context, orders []entity.Order) ([]CustomerActivity, error) {
	rows, err := AggregateContext(ctx, orders,
		func(o entity.Order) string { return o.CustomerID },
		Count[entity.Order]("orderCount"),
		Sum("totalSpent", OrderRevenue),
		Min("firstOrder", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
		Max("lastOrder", func(o entity.Order) decimal.Decimal { return TimeValue(o.CreatedAt) }),
	)
	if err != nil {
		return nil, err
	}
	acts := make([]CustomerActivity, 0, len(rows))
	for _, r := range rows {
		acts = append(acts, CustomerActivity{
			CustomerID: r.Key,
			OrderCount: r.Int("orderCount"),
			TotalSpent: r.Value("totalSpent"),
			FirstOrder: ValueTime(r.Value("firstOrder")),
			LastOrder:  ValueTime(r.Value("lastOrder")),
		})
	}
	return acts, nil
}
