package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdash/catalog"
	"flightdash/dashboard"
	"flightdash/flightdb"
	"flightdash/flightdb/flightdbtest"
	"flightdash/internal/lib/logger/sl"
)

// setupTestApp serves the sample flight database.
func setupTestApp(t *testing.T) http.Handler {
	t.Helper()
	return newTestApp(t, flightdb.NewConn(flightdbtest.Write(t, flightdbtest.Sample())))
}

func newTestApp(t *testing.T, src flightdb.Source) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	svc := dashboard.New(sl.Discard(), src, catalog.Default(), dashboard.NewMetrics(reg))
	return NewApp(sl.Discard(), svc, reg).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) flightdb.Result {
	t.Helper()
	var res flightdb.Result
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	return res
}

func TestAPI_Queries(t *testing.T) {
	rec := get(t, setupTestApp(t), "/api/queries")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))

	var reports []catalog.Report
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&reports))
	require.Len(t, reports, 11)
	assert.Equal(t, catalog.Report{ID: 1, Key: "flights-per-model", Label: "Total flights per aircraft model"}, reports[0])
	for _, r := range reports {
		assert.Empty(t, r.SQL, "SQL is not part of the API")
	}
}

func TestAPI_RunQuery(t *testing.T) {
	h := setupTestApp(t)
	for _, ref := range []string{
		"top-destinations",
		"4",
		"Top%203%20destination%20airports%20by%20arriving%20flights",
	} {
		rec := get(t, h, "/api/queries/"+ref)
		require.Equal(t, http.StatusOK, rec.Code, ref)
		res := decodeResult(t, rec)
		assert.Equal(t, []string{"destination_airport_name", "destination_airport_city", "total_arriving_flights"}, res.Columns)
		require.Len(t, res.Rows, 3)
		assert.Equal(t, flightdbtest.NameDEL, res.Rows[0]["destination_airport_name"])
		assert.Equal(t, 7.0, res.Rows[0]["total_arriving_flights"])
	}
}

func TestAPI_RunQuery_NotFound(t *testing.T) {
	rec := get(t, setupTestApp(t), "/api/queries/99")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_RunQuery_CSV(t *testing.T) {
	rec := get(t, setupTestApp(t), "/api/queries/top-destinations?format=csv")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `filename="top-destinations.csv"`)

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, []string{"destination_airport_name", "destination_airport_city", "total_arriving_flights"}, records[0])
	assert.Equal(t, []string{flightdbtest.NameDEL, "Delhi", "7"}, records[1])
}

func TestAPI_RunQuery_UnknownFormat(t *testing.T) {
	rec := get(t, setupTestApp(t), "/api/queries/1?format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_Cities(t *testing.T) {
	rec := get(t, setupTestApp(t), "/api/cities")
	require.Equal(t, http.StatusOK, rec.Code)
	var cities []string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&cities))
	assert.Len(t, cities, 9)
	assert.Contains(t, cities, flightdbtest.CityWithQuote)
}

func TestAPI_CityView(t *testing.T) {
	h := setupTestApp(t)
	for _, target := range []string{
		"/api/cities/Fort%20Qu'Appelle/arrivals",
		"/api/cities/Fort%20Qu%27Appelle/arrivals",
	} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		res := decodeResult(t, rec)
		require.Len(t, res.Rows, 2, target)
		assert.Equal(t, "AC874", res.Rows[0]["flight_number"])
	}

	rec := get(t, h, "/api/cities/Atlantis/departures")
	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeResult(t, rec)
	assert.Empty(t, res.Rows)
	assert.NotEmpty(t, res.Columns)
}

func TestAPI_CityView_Invalid(t *testing.T) {
	h := setupTestApp(t)
	tests := []struct {
		name   string
		target string
	}{
		{"unknown kind", "/api/cities/Delhi/gates"},
		{"blank city", "/api/cities/%20/arrivals"},
		{"long city", "/api/cities/" + strings.Repeat("x", 129) + "/arrivals"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, h, tt.target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAPI_ConnectionFailure(t *testing.T) {
	h := newTestApp(t, flightdb.NewConn(filepath.Join(t.TempDir(), "missing.db")))
	rec := get(t, h, "/api/queries/1")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAPI_StatusMapping(t *testing.T) {
	path := flightdbtest.Write(t, flightdbtest.Dataset{})
	src, err := flightdb.OpenDB(path)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	rec := get(t, newTestApp(t, src), "/api/cities")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	statusTests := map[error]int{
		flightdb.ErrNotFound:   http.StatusNotFound,
		flightdb.ErrValidation: http.StatusBadRequest,
		flightdb.ErrConnection: http.StatusServiceUnavailable,
		flightdb.ErrQuery:      http.StatusInternalServerError,
	}
	for kind, want := range statusTests {
		assert.Equal(t, want, statusFor(&flightdb.Error{Op: "test", Kind: kind}), kind.Error())
	}
}

func TestAPI_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/queries", nil)
	rec := httptest.NewRecorder()
	setupTestApp(t).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "GET, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
}

func parseHTML(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestPage_Home(t *testing.T) {
	doc := parseHTML(t, get(t, setupTestApp(t), "/"))

	links := doc.Find("ol.reports li a")
	require.Equal(t, 11, links.Length())
	href, _ := links.First().Attr("href")
	assert.Equal(t, "/queries/flights-per-model", href)
	assert.Equal(t, "Total flights per aircraft model", links.First().Text())

	assert.Equal(t, 9, doc.Find("select#city option").Length())
}

func TestPage_Query(t *testing.T) {
	doc := parseHTML(t, get(t, setupTestApp(t), "/queries/top-destinations"))

	assert.Equal(t, "Top 3 destination airports by arriving flights", doc.Find("h1").Text())
	assert.Equal(t, 3, doc.Find("table thead th").Length())
	rows := doc.Find("table tbody tr")
	require.Equal(t, 3, rows.Length())
	assert.Equal(t, flightdbtest.NameDEL, rows.First().Find("td").First().Text())
	href, _ := doc.Find("p.meta a").Attr("href")
	assert.Equal(t, "/api/queries/top-destinations?format=csv", href)
}

func TestPage_QueryNotFound(t *testing.T) {
	rec := get(t, setupTestApp(t), "/queries/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPage_City(t *testing.T) {
	doc := parseHTML(t, get(t, setupTestApp(t), "/cities?city=Delhi"))

	sections := doc.Find("section.result")
	require.Equal(t, 2, sections.Length())
	assert.Equal(t, "Arrivals to Delhi", sections.First().Find("h2").Text())
	assert.Equal(t, 7, sections.First().Find("tbody tr").Length())
	assert.Equal(t, "Departures to Delhi", sections.Eq(1).Find("h2").Text())

	imgs := doc.Find(".charts img")
	require.Equal(t, 2, imgs.Length())
	src, _ := imgs.First().Attr("src")
	assert.Equal(t, "/charts/status-counts.png?city=Delhi", src)

	selected, _ := doc.Find("select#city option[selected]").Attr("value")
	assert.Equal(t, "Delhi", selected)
}

func TestPage_CityEscapesName(t *testing.T) {
	doc := parseHTML(t, get(t, setupTestApp(t), "/cities?city=Fort+Qu%27Appelle"))
	assert.Equal(t, flightdbtest.CityWithQuote, doc.Find("h1").Text())
	assert.Equal(t, 2, doc.Find("section.result").First().Find("tbody tr").Length())
}

func TestPage_CityRequiresCity(t *testing.T) {
	rec := get(t, setupTestApp(t), "/cities")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChart(t *testing.T) {
	h := setupTestApp(t)
	for _, target := range []string{
		"/charts/status-counts.png?city=Delhi",
		"/charts/arrival-status-counts.png?city=Delhi",
		"/charts/status-counts.png?city=Atlantis",
	} {
		rec := get(t, h, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")), target)
	}
}

func TestChart_Invalid(t *testing.T) {
	h := setupTestApp(t)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/charts/arrivals.png?city=Delhi").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/charts/status-counts.png").Code)
}

func TestStatic(t *testing.T) {
	rec := get(t, setupTestApp(t), "/static/style.css")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "table")
}

func TestMetrics(t *testing.T) {
	h := setupTestApp(t)
	require.Equal(t, http.StatusOK, get(t, h, "/api/queries/1").Code)

	rec := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `flightdash_queries_total{outcome="ok",ref="flights-per-model"} 1`)
	assert.Contains(t, rec.Body.String(), "flightdash_query_duration_seconds_bucket")
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("DB_PATH", "/data/flight_data.db")
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ENV", "")

	cfg, err := loadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, config{dbPath: "/data/flight_data.db", driver: flightdb.DriverConn, port: "8080", env: sl.EnvLocal}, cfg)

	cfg, err = loadConfig([]string{"-db", "other.db", "-port", "9000", "-driver", "sql"})
	require.NoError(t, err)
	assert.Equal(t, "other.db", cfg.dbPath)
	assert.Equal(t, "9000", cfg.port)
	assert.Equal(t, flightdb.DriverSQL, cfg.driver)

	t.Setenv("DB_PATH", "")
	_, err = loadConfig(nil)
	assert.Error(t, err)
}

func TestPathParam(t *testing.T) {
	tests := []struct {
		name   string
		target string
		param  string
		want   string
	}{
		{"raw path escaped", "/api/cities/Fort%20Qu%27Appelle/arrivals", "Fort%20Qu%27Appelle", flightdbtest.CityWithQuote},
		{"decoded path keeps percent", "/api/cities/Delhi%2541/arrivals", "Delhi%41", "Delhi%41"},
		{"plain", "/api/cities/Delhi/arrivals", "Delhi", "Delhi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("city", tt.param)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			assert.Equal(t, tt.want, pathParam(req, "city"))
		})
	}
}
