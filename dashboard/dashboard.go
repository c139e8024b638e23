// Package dashboard is the boundary the presentation layers call: it resolves
// a report or view, runs it against the flight database, and logs and times
// the execution.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"flightdash/catalog"
	"flightdash/flightdb"
	"flightdash/internal/lib/logger/sl"
	"flightdash/views"
)

// Service runs catalog reports and city views against one Source.
type Service struct {
	log     *slog.Logger
	src     flightdb.Source
	catalog *catalog.Catalog
	metrics *Metrics
}

// New returns a Service. metrics may be nil.
func New(log *slog.Logger, src flightdb.Source, cat *catalog.Catalog, metrics *Metrics) *Service {
	return &Service{
		log:     log,
		src:     src,
		catalog: cat,
		metrics: metrics,
	}
}

// ListQueries returns the catalog reports in order.
func (s *Service) ListQueries() []catalog.Report {
	return s.catalog.Reports()
}

// Labels returns the report labels in order.
func (s *Service) Labels() []string {
	return s.catalog.Labels()
}

// RunQuery resolves ref and runs the report. An unknown ref fails with
// flightdb.ErrNotFound before the database is touched.
func (s *Service) RunQuery(ctx context.Context, ref string) (catalog.Report, *flightdb.Result, error) {
	const op = "dashboard.RunQuery"
	log := s.log.With(slog.String("op", op), slog.String("ref", ref))

	start := time.Now()
	report, err := s.catalog.Resolve(ref)
	if err != nil {
		s.metrics.observe("unknown", time.Since(start).Seconds(), err)
		log.Warn("unknown report")
		return catalog.Report{}, nil, err
	}

	res, err := s.src.Query(ctx, report.SQL)
	s.metrics.observe(report.Key, time.Since(start).Seconds(), err)
	if err != nil {
		log.Error("report failed", slog.String("report", report.Key), sl.Err(err))
		return report, nil, &flightdb.Error{Op: op, Ref: report.Label, Kind: kindOf(err), Err: err}
	}
	log.Debug("report done",
		slog.String("report", report.Key),
		slog.Int("rows", res.Len()),
		slog.Duration("took", time.Since(start)),
	)
	return report, res, nil
}

// RunView runs the by-city view of the given kind.
func (s *Service) RunView(ctx context.Context, kind views.Kind, city string) (*flightdb.Result, error) {
	const op = "dashboard.RunView"
	log := s.log.With(slog.String("op", op), slog.String("kind", string(kind)), slog.String("city", city))

	ref := "view:" + string(kind)
	if _, ok := views.Lookup(kind); !ok {
		ref = "unknown"
	}

	start := time.Now()
	res, err := views.Run(ctx, s.src, kind, city)
	s.metrics.observe(ref, time.Since(start).Seconds(), err)
	if err != nil {
		log.Warn("view failed", sl.Err(err))
		return nil, err
	}
	log.Debug("view done", slog.Int("rows", res.Len()), slog.Duration("took", time.Since(start)))
	return res, nil
}

// Cities lists the municipalities a view can be run for.
func (s *Service) Cities(ctx context.Context) ([]string, error) {
	cities, err := views.Cities(ctx, s.src)
	if err != nil {
		s.log.Error("list cities", slog.String("op", "dashboard.Cities"), sl.Err(err))
		return nil, err
	}
	return cities, nil
}

// Check verifies the database schema.
func (s *Service) Check(ctx context.Context) error {
	return flightdb.CheckSchema(ctx, s.src)
}

func kindOf(err error) error {
	for _, k := range []error{flightdb.ErrConnection, flightdb.ErrNotFound, flightdb.ErrValidation} {
		if errors.Is(err, k) {
			return k
		}
	}
	return flightdb.ErrQuery
}
