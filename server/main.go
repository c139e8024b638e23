package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"flightdash/catalog"
	"flightdash/dashboard"
	"flightdash/flightdb"
	"flightdash/internal/lib/logger/sl"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	dbPath string
	driver string
	port   string
	env    string
}

func loadConfig(args []string) (config, error) {
	fs := flag.NewFlagSet("flightdash-server", flag.ContinueOnError)
	var cfg config
	fs.StringVar(&cfg.dbPath, "db", "", "Path to the flight SQLite database. Can be set via DB_PATH env.")
	fs.StringVar(&cfg.driver, "driver", "", "Data source: conn (per-query connection) or sql (database/sql pool). Can be set via DB_DRIVER env.")
	fs.StringVar(&cfg.port, "port", "", "HTTP port. Can be set via PORT env.")
	fs.StringVar(&cfg.env, "env", "", "Logging environment: local, development or production. Can be set via ENV env.")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	cfg.dbPath = orEnv(cfg.dbPath, "DB_PATH", "")
	cfg.driver = orEnv(cfg.driver, "DB_DRIVER", flightdb.DriverConn)
	cfg.port = orEnv(cfg.port, "PORT", "8080")
	cfg.env = orEnv(cfg.env, "ENV", sl.EnvLocal)

	if cfg.dbPath == "" {
		return config{}, errors.New("DB path required: set -db or DB_PATH")
	}
	return cfg, nil
}

func orEnv(v, key, def string) string {
	if v != "" {
		return v
	}
	if e := os.Getenv(key); e != "" {
		return e
	}
	return def
}

func run() error {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		return err
	}
	log := sl.New(cfg.env, os.Stdout)

	src, err := flightdb.Open(cfg.driver, cfg.dbPath)
	if err != nil {
		return err
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = flightdb.CheckSchema(ctx, src)
	cancel()
	if err != nil {
		return fmt.Errorf("check schema: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	svc := dashboard.New(log, src, catalog.Default(), dashboard.NewMetrics(reg))

	app := NewApp(log, svc, reg)
	srv := &http.Server{
		Addr:         ":" + cfg.port,
		Handler:      app.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("listening",
			slog.String("addr", "http://localhost:"+cfg.port),
			slog.String("db", cfg.dbPath),
			slog.String("driver", cfg.driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errc:
		return fmt.Errorf("server: %w", err)
	case <-quit:
	}

	log.Info("shutting down")
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("bye")
	return nil
}
