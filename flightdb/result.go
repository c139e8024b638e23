// Package flightdb executes read-only SQL against the flight-operations
// SQLite database and returns tabular results.
package flightdb

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// Row is one result row keyed by column name.
type Row map[string]any

// Result is a complete tabular result set. Columns keeps the select order.
type Result struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows.
func (r *Result) Len() int { return len(r.Rows) }

// Column returns the values of the named column in row order.
func (r *Result) Column(name string) []any {
	out := make([]any, 0, len(r.Rows))
	for _, row := range r.Rows {
		out = append(out, row[name])
	}
	return out
}

// Strings renders each row as strings in column order. NULL becomes "".
func (r *Result) Strings() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rec := make([]string, len(r.Columns))
		for i, c := range r.Columns {
			rec[i] = FormatValue(row[c])
		}
		out = append(out, rec)
	}
	return out
}

// WriteCSV writes a header row of Columns followed by every row.
func (r *Result) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(r.Columns); err != nil {
		return err
	}
	return cw.WriteAll(r.Strings())
}

// FormatValue renders a column value for display.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", x), "0"), ".")
	default:
		return fmt.Sprint(x)
	}
}

// Source executes a SQL statement with positional args and returns the full result.
type Source interface {
	Query(ctx context.Context, query string, args ...any) (*Result, error)
	Close() error
}

func newResult(cols []string) *Result {
	return &Result{Columns: cols, Rows: []Row{}}
}

// normalizeQuery trims whitespace and a single trailing semicolon so the
// statement prepares as exactly one statement.
func normalizeQuery(query string) string {
	q := strings.TrimSpace(query)
	q = strings.TrimSuffix(q, ";")
	return strings.TrimSpace(q)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
