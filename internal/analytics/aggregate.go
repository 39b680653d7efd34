package analytics

import (
	"context"

	gerr "github.com/jekabolt/grbpwr-analytics/internal/errors"
	"github.com/shopspring/decimal"
)

// ctxCheckEvery is how many records are folded between context checks.
const ctxCheckEvery = 1024

// Row is one group produced by an aggregation pass.
type Row struct {
	Key    string                     `json:"key"`
	Values map[string]decimal.Decimal `json:"values"`
	Attrs  map[string]string          `json:"attrs,omitempty"`
}

// NewRow returns an empty row for key.
func NewRow(key string) Row {
	return Row{Key: key, Values: map[string]decimal.Decimal{}}
}

// Value returns the named metric, zero when absent.
func (r Row) Value(name string) decimal.Decimal {
	return r.Values[name]
}

// Int returns the named metric truncated to an int.
func (r Row) Int(name string) int {
	return int(r.Values[name].IntPart())
}

// Attr returns the named attribute, empty when absent.
func (r Row) Attr(name string) string {
	return r.Attrs[name]
}

// Set stores a metric on the row.
func (r Row) Set(name string, v decimal.Decimal) {
	r.Values[name] = v
}

func (r Row) clone() Row {
	c := Row{
		Key:    r.Key,
		Values: make(map[string]decimal.Decimal, len(r.Values)),
		Attrs:  make(map[string]string, len(r.Attrs)),
	}
	for k, v := range r.Values {
		c.Values[k] = v
	}
	for k, v := range r.Attrs {
		c.Attrs[k] = v
	}
	return c
}

// Field reads a metric of a row; it lets a second pass aggregate over rows.
func Field(name string) func(Row) decimal.Decimal {
	return func(r Row) decimal.Decimal {
		return r.Values[name]
	}
}

type accKind int

const (
	accSum accKind = iota
	accCount
	accAvg
	accCountIf
	accMin
	accMax
)

// Accumulator folds the records of a group into one named value.
type Accumulator[T any] struct {
	name  string
	kind  accKind
	field func(T) decimal.Decimal
	pred  func(T) bool
}

// Name is the key the result is stored under.
func (a Accumulator[T]) Name() string {
	return a.name
}

// Sum adds field over the group.
func Sum[T any](name string, field func(T) decimal.Decimal) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accSum, field: field}
}

// Count counts the records of the group.
func Count[T any](name string) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accCount}
}

// Avg is the arithmetic mean of field, zero for an empty group.
func Avg[T any](name string, field func(T) decimal.Decimal) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accAvg, field: field}
}

// CountIf counts the records matching pred.
func CountIf[T any](name string, pred func(T) bool) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accCountIf, pred: pred}
}

// Min is the smallest field value, zero for an empty group.
func Min[T any](name string, field func(T) decimal.Decimal) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accMin, field: field}
}

// Max is the largest field value, zero for an empty group.
func Max[T any](name string, field func(T) decimal.Decimal) Accumulator[T] {
	return Accumulator[T]{name: name, kind: accMax, field: field}
}

type accState struct {
	sum  decimal.Decimal
	n    int64
	best decimal.Decimal
	seen bool
}

func (a Accumulator[T]) add(st *accState, rec T) {
	switch a.kind {
	case accSum, accAvg:
		st.sum = st.sum.Add(a.field(rec))
		st.n++
	case accCount:
		st.n++
	case accCountIf:
		if a.pred(rec) {
			st.n++
		}
	case accMin:
		if v := a.field(rec); !st.seen || v.LessThan(st.best) {
			st.best = v
		}
		st.seen = true
	case accMax:
		if v := a.field(rec); !st.seen || v.GreaterThan(st.best) {
			st.best = v
		}
		st.seen = true
	}
}

func (a Accumulator[T]) result(st *accState) decimal.Decimal {
	switch a.kind {
	case accSum:
		return st.sum
	case accCount, accCountIf:
		return decimal.NewFromInt(st.n)
	case accAvg:
		if st.n == 0 {
			return decimal.Zero
		}
		return st.sum.Div(decimal.NewFromInt(st.n))
	case accMin, accMax:
		if !st.seen {
			return decimal.Zero
		}
		return st.best
	}
	return decimal.Zero
}

func checkNames[T any](accs []Accumulator[T]) error {
	seen := make(map[string]struct{}, len(accs))
	for _, a := range accs {
		if _, ok := seen[a.name]; ok {
			return gerr.Computation("duplicate accumulator %q", a.name)
		}
		seen[a.name] = struct{}{}
	}
	return nil
}

type group struct {
	row    Row
	states []accState
}

// Aggregate groups records by key and folds each group with accs.
// Rows come back in first-seen key order.
func Aggregate[T any](records []T, key func(T) string, accs ...Accumulator[T]) ([]Row, error) {
	return AggregateContext(context.Background(), records, key, accs...)
}

// AggregateContext is Aggregate that stops with the context error when ctx is done.
func AggregateContext[T any](ctx context.Context, records []T, key func(T) string, accs ...Accumulator[T]) ([]Row, error) {
	if err := checkNames(accs); err != nil {
		return nil, err
	}
	index := make(map[string]int)
	groups := make([]*group, 0)
	for i, rec := range records {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		k := key(rec)
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, &group{row: NewRow(k), states: make([]accState, len(accs))})
		}
		g := groups[gi]
		for ai, a := range accs {
			a.add(&g.states[ai], rec)
		}
	}
	rows := make([]Row, 0, len(groups))
	for _, g := range groups {
		for ai, a := range accs {
			g.row.Values[a.name] = a.result(&g.states[ai])
		}
		rows = append(rows, g.row)
	}
	return rows, nil
}

// Summarize folds all records into a single row. Empty input yields zero values.
func Summarize[T any](records []T, accs ...Accumulator[T]) (Row, error) {
	if err := checkNames(accs); err != nil {
		return Row{}, err
	}
	states := make([]accState, len(accs))
	for _, rec := range records {
		for ai, a := range accs {
			a.add(&states[ai], rec)
		}
	}
	row := NewRow("")
	for ai, a := range accs {
		row.Values[a.name] = a.result(&states[ai])
	}
	return row, nil
}
