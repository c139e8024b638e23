package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"flightdash/flightdb"
	"flightdash/internal/lib/logger/sl"
	"flightdash/views"
)

func (a *App) handleQueries(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, a.svc.ListQueries())
}

func (a *App) handleRunQuery(w http.ResponseWriter, r *http.Request) {
	ref := pathParam(r, "ref")
	report, res, err := a.svc.RunQuery(r.Context(), ref)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	switch format := r.URL.Query().Get("format"); format {
	case "", "json":
		writeJSON(w, res)
	case "csv":
		a.writeCSV(w, report.Key+".csv", res)
	default:
		a.writeError(w, r, flightdb.Errorf("server.handleRunQuery", flightdb.ErrValidation, ref, "unknown format %q", format))
	}
}

func (a *App) handleCities(w http.ResponseWriter, r *http.Request) {
	cities, err := a.svc.Cities(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	writeJSON(w, cities)
}

func (a *App) handleCityView(w http.ResponseWriter, r *http.Request) {
	kind := views.Kind(pathParam(r, "kind"))
	res, err := a.svc.RunView(r.Context(), kind, pathParam(r, "city"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("format") == "csv" {
		a.writeCSV(w, string(kind)+".csv", res)
		return
	}
	writeJSON(w, res)
}

// pathParam returns the decoded chi URL parameter. chi matches on RawPath
// when the request has one, and only then is the parameter still escaped.
func pathParam(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if r.URL.RawPath == "" {
		return v
	}
	if s, err := url.PathUnescape(v); err == nil {
		return s
	}
	return v
}

// statusFor maps an error kind to an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, flightdb.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, flightdb.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, flightdb.ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		a.log.Error("request failed", slog.String("path", r.URL.Path), sl.Err(err))
	}
	http.Error(w, err.Error(), status)
}

func (a *App) writeCSV(w http.ResponseWriter, filename string, res *flightdb.Result) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := res.WriteCSV(w); err != nil {
		a.log.Warn("write csv", slog.String("file", filename), sl.Err(err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
