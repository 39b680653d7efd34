package analytics

import (
	"github.com/shopspring/decimal"
)

// Reference is the looked-up side of a join.
type Reference struct {
	Attrs  map[string]string
	Values map[string]decimal.Decimal
}

// Table indexes references by id.
type Table map[string]Reference

// TableOf builds a lookup table from a reference collection.
func TableOf[E any](items []E, id func(E) string, ref func(E) Reference) Table {
	t := make(Table, len(items))
	for _, it := range items {
		t[id(it)] = ref(it)
	}
	return t
}

// Join describes how rows are resolved against a table.
// Rows whose reference is missing are dropped unless KeepUnmatched is set,
// in which case they are kept without the requested fields.
type Join struct {
	Ref           func(Row) string
	Table         Table
	Fields        []string
	KeepUnmatched bool
}

// ByKey references the table by the row key.
func ByKey(r Row) string {
	return r.Key
}

// ByAttr references the table by a row attribute.
func ByAttr(name string) func(Row) string {
	return func(r Row) string {
		return r.Attrs[name]
	}
}

// Enrich copies the requested reference fields onto each resolved row.
// Fields are looked up in the reference attributes first, then in its values.
// The input rows are not modified.
func Enrich(rows []Row, j Join) []Row {
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		ref, ok := j.Table[j.Ref(r)]
		if !ok && !j.KeepUnmatched {
			continue
		}
		er := r.clone()
		if ok {
			for _, f := range j.Fields {
				if v, found := ref.Attrs[f]; found {
					er.Attrs[f] = v
					continue
				}
				if v, found := ref.Values[f]; found {
					er.Values[f] = v
				}
			}
		}
		out = append(out, er)
	}
	return out
}

// Joined is a raw record paired with the entity it references.
type Joined[T, R any] struct {
	Record  T
	Ref     R
	Matched bool
}

// JoinRecords resolves each record against an index before aggregation.
// Unresolved records are dropped unless keepUnmatched is set.
func JoinRecords[T, R any](records []T, ref func(T) string, index map[string]R, keepUnmatched bool) []Joined[T, R] {
	out := make([]Joined[T, R], 0, len(records))
	for _, rec := range records {
		r, ok := index[ref(rec)]
		if !ok && !keepUnmatched {
			continue
		}
		out = append(out, Joined[T, R]{Record: rec, Ref: r, Matched: ok})
	}
	return out
}

// IndexBy maps items by id.
func IndexBy[E any](items []E, id func(E) string) map[string]E {
	m := make(map[string]E, len(items))
	for _, it := range items {
		m[id(it)] = it
	}
	return m
}
