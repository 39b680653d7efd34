package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/jekabolt/grbpwr-analytics/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpendTier(t *testing.T) {
	tests := []struct {
		spent string
		want  Tier
	}{
		{"1000", TierVIP},
		{"5000", TierVIP},
		{"999.99", TierPremium},
		{"500", TierPremium},
		{"499.99", TierRegular},
		{"100", TierRegular},
		{"99.99", TierNew},
		{"0", TierNew},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			assert.Equal(t, tt.want, SpendTier(dec(tt.spent)))
		})
	}
}

func TestScoreRFM(t *testing.T) {
	tests := []struct {
		name    string
		recency string
		orders  int
		spent   string
		want    RFMScore
	}{
		{"top", "0", 10, "1000", RFMScore{5, 5, 5}},
		{"bounds inclusive", "30", 5, "500", RFMScore{5, 4, 4}},
		{"just past bounds", "30.01", 4, "499.99", RFMScore{4, 3, 3}},
		{"mid", "90", 3, "250", RFMScore{3, 3, 3}},
		{"low", "180", 2, "100", RFMScore{2, 2, 2}},
		{"lowest", "181", 1, "99", RFMScore{1, 1, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScoreRFM(dec(tt.recency), tt.orders, dec(tt.spent)))
		})
	}
}

func TestAssignSegment(t *testing.T) {
	tests := []struct {
		name    string
		recency string
		orders  int
		spent   string
		want    Segment
	}{
		{"champion", "10", 10, "1500", SegmentChampions},
		{"loyal", "75", 5, "600", SegmentLoyal},
		{"new customer", "10", 1, "50", SegmentNew},
		{"new customer with two orders", "5", 2, "2000", SegmentNew},
		{"at risk", "200", 5, "800", SegmentAtRisk},
		{"others", "100", 1, "50", SegmentOthers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssignSegment(dec(tt.recency), tt.orders, dec(tt.spent)))
		})
	}
}

func TestSegmentRuleOrder(t *testing.T) {
	// Every score combination gets exactly the first matching rule.
	for r := 1; r <= 5; r++ {
		for f := 1; f <= 5; f++ {
			for m := 1; m <= 5; m++ {
				s := RFMScore{r, f, m}
				want := SegmentOthers
				for _, rule := range segmentRules {
					if rule.match(s) {
						want = rule.segment
						break
					}
				}
				assert.Equal(t, want, s.Segment())
				if r >= 4 && f >= 4 && m >= 4 {
					assert.Equal(t, SegmentChampions, s.Segment())
				}
			}
		}
	}
}

func TestCustomerActivities(t *testing.T) {
	orders := []entity.Order{
		order("o1", "c1", date(2024, 1, 1), entity.OrderStatusDelivered, item("p1", 1, "100")),
		order("o2", "c2", date(2024, 1, 5), entity.OrderStatusDelivered, item("p1", 1, "40")),
		order("o3", "c1", date(2024, 1, 11), entity.OrderStatusDelivered, item("p1", 2, "100")),
	}
	acts, err := CustomerActivities(context.Background(), orders)
	require.NoError(t, err)
	require.Len(t, acts, 2)

	c1 := acts[0]
	assert.Equal(t, "c1", c1.CustomerID)
	assert.Equal(t, 2, c1.OrderCount)
	assert.Equal(t, "300", c1.TotalSpent.String())
	assert.Equal(t, date(2024, 1, 1), c1.FirstOrder)
	assert.Equal(t, date(2024, 1, 11), c1.LastOrder)
	assert.Equal(t, "10", c1.LifetimeDays().String())
	assert.Equal(t, "150", c1.AverageOrderValue().String())

	now := date(2024, 1, 11).Add(36 * time.Hour)
	assert.Equal(t, "1.5", c1.RecencyDays(now).String())
	assert.Equal(t, RFMScore{5, 2, 3}, c1.Score(now))
}
