package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"flightdash/catalog"
	"flightdash/dashboard"
	"flightdash/flightdb"
	"flightdash/internal/lib/logger/sl"
	"flightdash/views"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

// run is the real entry point; main only maps its error to an exit status.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("flightdash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	dbPath := fs.String("db", "", "Path to the flight SQLite database. Can be set via DB_PATH env.")
	driver := fs.String("driver", "", "Data source: conn or sql. Can be set via DB_DRIVER env.")
	format := fs.String("format", formatTable, "Output format: table, csv or json")
	verbose := fs.Bool("verbose", false, "Print timings and debug logs to stderr")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: flightdash [flags] <command>\n\n")
		fmt.Fprintf(stderr, "Commands:\n")
		fmt.Fprintf(stderr, "  queries              list the reports\n")
		fmt.Fprintf(stderr, "  run <ref>            run a report by id, key or label\n")
		fmt.Fprintf(stderr, "  cities               list the cities views can be run for\n")
		fmt.Fprintf(stderr, "  view <kind> <city>   run a city view (arrivals, departures, status-counts, arrival-status-counts)\n")
		fmt.Fprintf(stderr, "  check                verify the database schema and count rows\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if *dbPath == "" {
		*dbPath = os.Getenv("DB_PATH")
	}
	if *dbPath == "" {
		return errors.New("DB path required: set -db or DB_PATH")
	}
	if *driver == "" {
		*driver = os.Getenv("DB_DRIVER")
	}
	if !validFormat(*format) {
		return fmt.Errorf("unknown format %q (want table, csv or json)", *format)
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("%w: missing command", errUsage)
	}

	prog := NewProgress(stderr, *verbose)
	log := sl.Discard()
	if *verbose {
		log = sl.New(sl.EnvLocal, stderr)
	}

	src, err := flightdb.Open(*driver, *dbPath)
	if err != nil {
		return err
	}
	defer src.Close()
	prog.Verbose("Opened %s (driver=%s)", *dbPath, driverName(*driver))

	svc := dashboard.New(log, src, catalog.Default(), nil)
	out := &printer{w: stdout, format: *format}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	switch cmd {
	case "queries":
		return out.reports(svc.ListQueries())

	case "run":
		if len(rest) != 1 {
			return fmt.Errorf("%w: run takes exactly one report ref", errUsage)
		}
		report, res, err := svc.RunQuery(ctx, rest[0])
		if err != nil {
			return err
		}
		prog.Verbose("%s: %d rows", report.Label, res.Len())
		return out.result(res)

	case "cities":
		cities, err := svc.Cities(ctx)
		if err != nil {
			return err
		}
		return out.list("city", cities)

	case "view":
		if len(rest) != 2 {
			return fmt.Errorf("%w: view takes a kind and a city", errUsage)
		}
		res, err := svc.RunView(ctx, views.Kind(rest[0]), rest[1])
		if err != nil {
			return err
		}
		prog.Verbose("%s %s: %d rows", rest[0], rest[1], res.Len())
		return out.result(res)

	case "check":
		if err := svc.Check(ctx); err != nil {
			return err
		}
		counts, err := flightdb.Summarize(ctx, src)
		if err != nil {
			return err
		}
		prog.Log("Schema OK")
		return out.counts(counts)

	default:
		fs.Usage()
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func driverName(d string) string {
	if d == "" {
		return flightdb.DriverConn
	}
	return d
}
