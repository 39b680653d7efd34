package analytics

import (
	"strings"

	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"golang.org/x/exp/slices"
)

func descBy(metric string) func(a, b Row) int {
	return func(a, b Row) int {
		if c := b.Values[metric].Cmp(a.Values[metric]); c != 0 {
			return c
		}
		return strings.Compare(a.Key, b.Key)
	}
}

// SortDesc returns a copy of rows ordered by metric descending, ties by key ascending.
func SortDesc(rows []Row, metric string) []Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, descBy(metric))
	return out
}

// SortByKey returns a copy of rows ordered by key ascending.
func SortByKey(rows []Row) []Row {
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

// TopN returns the n highest rows by metric. Fewer rows are returned when the input is shorter.
func TopN(rows []Row, metric string, n int) ([]Row, error) {
	if n <= 0 {
		return nil, gerr.Validation("limit must be positive, got %d", n)
	}
	sorted := SortDesc(rows, metric)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted, nil
}
