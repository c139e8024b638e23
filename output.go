package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"flightdash/catalog"
	"flightdash/flightdb"
)

const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
)

func validFormat(f string) bool {
	return f == formatTable || f == formatCSV || f == formatJSON
}

// printer writes command output in the selected format.
type printer struct {
	w      io.Writer
	format string
}

func (p *printer) result(res *flightdb.Result) error {
	switch p.format {
	case formatJSON:
		return p.writeJSON(res)
	case formatCSV:
		return res.WriteCSV(p.w)
	}
	if res.Len() == 0 {
		_, err := fmt.Fprintln(p.w, "(no rows)")
		return err
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(res.Columns, "\t"))
	for _, rec := range res.Strings() {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	return tw.Flush()
}

func (p *printer) reports(reports []catalog.Report) error {
	if p.format == formatJSON {
		return p.writeJSON(reports)
	}
	res := &flightdb.Result{Columns: []string{"id", "key", "label"}}
	for _, r := range reports {
		res.Rows = append(res.Rows, flightdb.Row{"id": strconv.Itoa(r.ID), "key": r.Key, "label": r.Label})
	}
	return p.result(res)
}

func (p *printer) list(column string, values []string) error {
	if p.format == formatJSON {
		return p.writeJSON(values)
	}
	res := &flightdb.Result{Columns: []string{column}}
	for _, v := range values {
		res.Rows = append(res.Rows, flightdb.Row{column: v})
	}
	return p.result(res)
}

func (p *printer) counts(counts []flightdb.TableCount) error {
	res := &flightdb.Result{Columns: []string{"table", "rows"}}
	for _, c := range counts {
		res.Rows = append(res.Rows, flightdb.Row{"table": c.Table, "rows": c.Rows})
	}
	return p.result(res)
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
