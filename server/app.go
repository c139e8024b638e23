package main

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flightdash/dashboard"
	"flightdash/flightdb"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// App holds server dependencies.
type App struct {
	log      *slog.Logger
	svc      *dashboard.Service
	gatherer prometheus.Gatherer
	pages    *template.Template
}

// NewApp creates an App serving svc. gatherer backs /metrics and may be nil.
func NewApp(log *slog.Logger, svc *dashboard.Service, gatherer prometheus.Gatherer) *App {
	return &App{
		log:      log,
		svc:      svc,
		gatherer: gatherer,
		pages: template.Must(template.New("").Funcs(template.FuncMap{
			"cell": cell,
		}).ParseFS(templateFS, "templates/*.html")),
	}
}

// Handler returns the HTTP handler (router with CORS, recovery, routes).
func (a *App) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(a.requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware)
		r.Get("/queries", a.handleQueries)
		r.Get("/queries/{ref}", a.handleRunQuery)
		r.Get("/cities", a.handleCities)
		r.Get("/cities/{city}/{kind}", a.handleCityView)
	})

	r.Get("/", a.handleHome)
	r.Get("/queries/{ref}", a.handleQueryPage)
	r.Get("/cities", a.handleCityPage)
	r.Get("/charts/{kind}.png", a.handleChart)

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	if a.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(a.gatherer, promhttp.HandlerOpts{}))
	}

	return r
}

// corsMiddleware sets CORS headers for API so frontend on another port can call.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *App) requestLogger(next http.Handler) http.Handler {
	log := a.log.With(slog.String("component", "middleware/logger"))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			log.Info("request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}

func cell(v any) string { return flightdb.FormatValue(v) }
