package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flightdash/catalog"
	"flightdash/flightdb"
	"flightdash/flightdb/flightdbtest"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func sampleDB(t *testing.T) string {
	t.Helper()
	return flightdbtest.Write(t, flightdbtest.Sample())
}

func TestRun_Queries(t *testing.T) {
	out, _, err := runCLI(t, "-db", sampleDB(t), "queries")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, []string{"id", "key", "label"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "1 "))
	assert.Contains(t, lines[1], "Total flights per aircraft model")
}

func TestRun_QueriesJSON(t *testing.T) {
	out, _, err := runCLI(t, "-db", sampleDB(t), "-format", "json", "queries")
	require.NoError(t, err)

	var reports []catalog.Report
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	assert.Len(t, reports, 11)
	assert.Equal(t, "delay-percentage", reports[10].Key)
}

func TestRun_ReportCSV(t *testing.T) {
	for _, driver := range []string{flightdb.DriverConn, flightdb.DriverSQL} {
		out, _, err := runCLI(t, "-db", sampleDB(t), "-driver", driver, "-format", "csv", "run", "multi-model-routes")
		require.NoError(t, err, driver)
		assert.Equal(t,
			"origin_airport,destination_airport,distinct_aircraft_models\n"+
				flightdbtest.NameDEL+","+flightdbtest.NameBOM+",3\n",
			out, driver)
	}
}

func TestRun_ReportTable(t *testing.T) {
	out, _, err := runCLI(t, "-db", sampleDB(t), "run", "Top 3 destination airports by arriving flights")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[1], flightdbtest.NameDEL))
	assert.True(t, strings.HasSuffix(lines[1], "7"))
}

func TestRun_UnknownReport(t *testing.T) {
	_, _, err := runCLI(t, "-db", sampleDB(t), "run", "42")
	assert.ErrorIs(t, err, flightdb.ErrNotFound)
}

func TestRun_ViewJSON(t *testing.T) {
	out, _, err := runCLI(t, "-db", sampleDB(t), "-format", "json", "view", "status-counts", flightdbtest.CityWithQuote)
	require.NoError(t, err)

	var res flightdb.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, []string{"flight_status", "count"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Delayed", res.Rows[0]["flight_status"])
}

func TestRun_ViewEmptyAndInvalid(t *testing.T) {
	db := sampleDB(t)

	out, _, err := runCLI(t, "-db", db, "view", "arrivals", "Atlantis")
	require.NoError(t, err)
	assert.Equal(t, "(no rows)\n", out)

	_, _, err = runCLI(t, "-db", db, "view", "arrivals", "  ")
	assert.ErrorIs(t, err, flightdb.ErrValidation)

	_, _, err = runCLI(t, "-db", db, "view", "landings", "Delhi")
	assert.ErrorIs(t, err, flightdb.ErrValidation)
}

func TestRun_Cities(t *testing.T) {
	out, _, err := runCLI(t, "-db", sampleDB(t), "-format", "csv", "cities")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "city\nBengaluru\nChicago\nDelhi\n"))
	assert.Contains(t, out, flightdbtest.CityWithQuote+"\n")
}

func TestRun_Check(t *testing.T) {
	out, stderr, err := runCLI(t, "-db", sampleDB(t), "check")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Schema OK")
	assert.Contains(t, out, "new_departures_data")
	assert.Contains(t, out, "airports_data")
}

func TestRun_Verbose(t *testing.T) {
	_, stderr, err := runCLI(t, "-db", sampleDB(t), "-verbose", "run", "1")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Opened ")
	assert.Contains(t, stderr, "Total flights per aircraft model: 6 rows")
}

func TestRun_Errors(t *testing.T) {
	db := sampleDB(t)
	t.Setenv("DB_PATH", "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no db", []string{"queries"}, "DB path required"},
		{"no command", []string{"-db", db}, "missing command"},
		{"unknown command", []string{"-db", db, "fly"}, `unknown command "fly"`},
		{"bad format", []string{"-db", db, "-format", "xml", "queries"}, `unknown format "xml"`},
		{"run arity", []string{"-db", db, "run"}, "exactly one report ref"},
		{"view arity", []string{"-db", db, "view", "arrivals"}, "a kind and a city"},
		{"bad driver", []string{"-db", db, "-driver", "pg", "queries"}, "pg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCLI(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRun_MissingDatabase(t *testing.T) {
	_, _, err := runCLI(t, "-db", filepath.Join(t.TempDir(), "none.db"), "queries")
	assert.ErrorIs(t, err, flightdb.ErrConnection)
}

func TestRun_EnvFallback(t *testing.T) {
	t.Setenv("DB_PATH", sampleDB(t))
	t.Setenv("DB_DRIVER", flightdb.DriverSQL)
	out, _, err := runCLI(t, "-format", "csv", "run", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "destination_airport_name,destination_airport_city,total_arriving_flights\n")
}

func TestRun_Help(t *testing.T) {
	_, stderr, err := runCLI(t, "-h")
	assert.NoError(t, err)
	assert.Contains(t, stderr, "Usage: flightdash")
}
