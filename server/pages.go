package main

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/url"

	"flightdash/catalog"
	"flightdash/flightdb"
	"flightdash/internal/lib/logger/sl"
	"flightdash/views"
)

type homePage struct {
	Reports []catalog.Report
	City    string
	Cities  []string
}

type tablePage struct {
	Title  string
	Result *flightdb.Result
	CSV    string
}

type cityPage struct {
	City   string
	Cities []string
	Tables []tablePage
	Charts []chartLink
}

type chartLink struct {
	Title string
	Src   string
}

func (a *App) handleHome(w http.ResponseWriter, r *http.Request) {
	cities, err := a.svc.Cities(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.render(w, r, "home", homePage{Reports: a.svc.ListQueries(), Cities: cities})
}

func (a *App) handleQueryPage(w http.ResponseWriter, r *http.Request) {
	report, res, err := a.svc.RunQuery(r.Context(), pathParam(r, "ref"))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	a.render(w, r, "query", tablePage{
		Title:  report.Label,
		Result: res,
		CSV:    "/api/queries/" + url.PathEscape(report.Key) + "?format=csv",
	})
}

func (a *App) handleCityPage(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	page := cityPage{City: city}

	for _, kind := range []views.Kind{views.Arrivals, views.Departures} {
		res, err := a.svc.RunView(r.Context(), kind, city)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		v, _ := views.Lookup(kind)
		page.Tables = append(page.Tables, tablePage{
			Title:  v.TitleFor(city),
			Result: res,
			CSV:    "/api/cities/" + url.PathEscape(city) + "/" + string(kind) + "?format=csv",
		})
	}
	for _, v := range views.All() {
		if v.Kind.IsChart() {
			page.Charts = append(page.Charts, chartLink{
				Title: v.TitleFor(city),
				Src:   "/charts/" + string(v.Kind) + ".png?" + url.Values{"city": {city}}.Encode(),
			})
		}
	}

	cities, err := a.svc.Cities(r.Context())
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	page.Cities = cities
	a.render(w, r, "city", page)
}

// render executes the named template into a buffer, then writes it out.
func (a *App) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	var buf bytes.Buffer
	if err := a.pages.ExecuteTemplate(&buf, name, data); err != nil {
		a.log.Error("render page", slog.String("page", name), slog.String("path", r.URL.Path), sl.Err(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
