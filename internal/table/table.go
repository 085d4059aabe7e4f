// Package table holds the sortable grids shown on the dashboard and exported
// as CSV.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

type Column[T any] struct {
	Key    string
	Header string
	// Value is used for sorting.
	Value func(T) any
	// Format renders the cell. When nil the sort value is printed.
	Format func(T) string
}

type Table[T any] struct {
	Columns []Column[T]
	Rows    []T
}

func New[T any](columns []Column[T], rows []T) *Table[T] {
	return &Table[T]{Columns: columns, Rows: rows}
}

func (t *Table[T]) column(key string) (Column[T], bool) {
	for _, c := range t.Columns {
		if c.Key == key {
			return c, true
		}
	}
	return Column[T]{}, false
}

// SortBy orders the rows by the column with the given key. Equal rows keep
// their relative order.
func (t *Table[T]) SortBy(key string, desc bool) error {
	col, ok := t.column(key)
	if !ok {
		return fmt.Errorf("unknown column %q", key)
	}

	coll := collate.New(language.Und, collate.IgnoreCase)
	sort.SliceStable(t.Rows, func(i, j int) bool {
		c := compare(coll, col.Value(t.Rows[i]), col.Value(t.Rows[j]))
		if desc {
			return c > 0
		}
		return c < 0
	})
	return nil
}

func compare(coll *collate.Collator, a, b any) int {
	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return coll.CompareString(av, bv)
		}
	case int:
		if bv, ok := b.(int); ok {
			return cmpOrdered(av, bv)
		}
	case int64:
		if bv, ok := b.(int64); ok {
			return cmpOrdered(av, bv)
		}
	case float64:
		if bv, ok := b.(float64); ok {
			return cmpOrdered(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			return cmpBool(av, bv)
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}
	return coll.CompareString(formatValue(a), formatValue(b))
}

func cmpOrdered[N int | int64 | float64](a, b N) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	}
	return 1
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.UTC().Format(time.RFC3339)
	}
	return fmt.Sprint(v)
}

func (c Column[T]) cell(row T) string {
	if c.Format != nil {
		return c.Format(row)
	}
	return formatValue(c.Value(row))
}

// Records returns the header followed by one formatted record per row.
func (t *Table[T]) Records() [][]string {
	records := make([][]string, 0, len(t.Rows)+1)

	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Header
	}
	records = append(records, header)

	for _, row := range t.Rows {
		rec := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			rec[i] = c.cell(row)
		}
		records = append(records, rec)
	}
	return records
}

func (t *Table[T]) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.Records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
