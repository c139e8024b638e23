package main

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"flightdash/flightdb"
	"flightdash/views"
)

var barStyle = chart.Style{
	FillColor:   drawing.ColorFromHex("0b3d91"),
	StrokeColor: drawing.ColorFromHex("0b3d91"),
	StrokeWidth: 1,
}

func (a *App) handleChart(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleChart"

	kind := views.Kind(pathParam(r, "kind"))
	city := r.URL.Query().Get("city")
	if !kind.IsChart() {
		a.writeError(w, r, flightdb.Errorf(op, flightdb.ErrValidation, city, "%q is not a chart view", kind))
		return
	}
	res, err := a.svc.RunView(r.Context(), kind, city)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	v, _ := views.Lookup(kind)

	var buf bytes.Buffer
	if err := renderStatusChart(&buf, v.TitleFor(city), res); err != nil {
		a.writeError(w, r, &flightdb.Error{Op: op, Ref: city, Kind: flightdb.ErrQuery, Err: err})
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}

// renderStatusChart draws a flight_status/count result as a PNG bar chart.
// An empty result draws a single empty bar.
func renderStatusChart(buf *bytes.Buffer, title string, res *flightdb.Result) error {
	bars := make([]chart.Value, 0, res.Len())
	top := 0.0
	for _, row := range res.Rows {
		n := toFloat(row["count"])
		label := flightdb.FormatValue(row["flight_status"])
		if label == "" {
			label = "(none)"
		}
		bars = append(bars, chart.Value{Label: label, Value: n, Style: barStyle})
		top = max(top, n)
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no flights", Value: 0, Style: barStyle})
	}

	graph := chart.BarChart{
		Title:      title,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10}},
		Width:      640,
		Height:     360,
		BarWidth:   48,
		YAxis: chart.YAxis{
			Range:          &chart.ContinuousRange{Min: 0, Max: top + 1},
			ValueFormatter: func(v any) string { return fmt.Sprintf("%.0f", v) },
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, buf)
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case int64:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}
