package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Row is an ordered record of column values, used both for tabular data rows
// and for permutation factors. Column order drives generated names.
type Row struct {
	columns []string
	values  map[string]any
}

// RowOf builds a row from alternating column names and values.
// It panics when a column name is not a string or the pairs are uneven.
func RowOf(kv ...any) Row {
	if len(kv)%2 != 0 {
		panic("domain.RowOf: odd number of arguments")
	}
	r := Row{values: make(map[string]any, len(kv)/2)}
	for i := 0; i < len(kv); i += 2 {
		col, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("domain.RowOf: column %d is %T, not string", i/2, kv[i]))
		}
		r.Set(col, kv[i+1])
	}
	return r
}

// RowFromMap builds a row with columns in sorted order.
func RowFromMap(m map[string]any) Row {
	cols := make([]string, 0, len(m))
	for k := range m {
		cols = append(cols, k)
	}
	sort.Strings(cols)
	r := Row{values: make(map[string]any, len(m))}
	for _, c := range cols {
		r.Set(c, m[c])
	}
	return r
}

// Set assigns a column value, appending the column when it is new.
func (r *Row) Set(col string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[col]; !ok {
		r.columns = append(r.columns, col)
	}
	r.values[col] = v
}

// Columns returns the column names in order.
func (r Row) Columns() []string { return append([]string(nil), r.columns...) }

// Get returns the value of col.
func (r Row) Get(col string) (any, bool) {
	v, ok := r.values[col]
	return v, ok
}

// Len returns the number of columns.
func (r Row) Len() int { return len(r.columns) }

// Map returns the row as a plain map.
func (r Row) Map() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// Encode joins "column:value" pairs with sep, in column order.
func (r Row) Encode(sep string) string {
	parts := make([]string, len(r.columns))
	for i, c := range r.columns {
		parts[i] = c + ":" + formatValue(r.values[c])
	}
	return strings.Join(parts, sep)
}

// formatValue renders v for generated names. Integral floats keep a decimal
// point so 1.0 and 1 encode differently.
func formatValue(v any) string {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	default:
		return fmt.Sprint(v)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".") {
		s += ".0"
	}
	return s
}

func (r Row) String() string { return "{" + r.Encode(", ") + "}" }
