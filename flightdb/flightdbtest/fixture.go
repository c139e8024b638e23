// Package flightdbtest writes small flight-operations databases for tests.
package flightdbtest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Schema mirrors the upstream loader's tables.
const Schema = `
CREATE TABLE airports_data (
    iata_code TEXT PRIMARY KEY,
    full_name TEXT,
    municipality_name TEXT,
    country_name TEXT
);

CREATE TABLE new_departures_data (
    flight_number TEXT,
    aircraft_model TEXT,
    aircraft_registration TEXT,
    origin_airport_iata TEXT,
    origin_airport_name TEXT,
    destination_airport_iata TEXT,
    destination_airport_name TEXT,
    scheduled_departure_time_utc TEXT,
    flight_status TEXT,
    airline_name TEXT
);

CREATE TABLE new_arrivals_data (
    flight_number TEXT,
    aircraft_model TEXT,
    aircraft_registration TEXT,
    origin_airport_iata TEXT,
    origin_airport_name TEXT,
    arrival_airport_iata TEXT,
    arrival_airport_name TEXT,
    scheduled_arrival_time_utc TEXT,
    flight_status TEXT,
    airline_name TEXT
);

CREATE INDEX idx_departures_origin ON new_departures_data(origin_airport_iata);
CREATE INDEX idx_departures_destination ON new_departures_data(destination_airport_iata);
CREATE INDEX idx_arrivals_airport ON new_arrivals_data(arrival_airport_iata);
`

// Airport is one airports_data row.
type Airport struct {
	IATA, Name, City, Country string
}

// Flight is one departure or arrival row. For arrivals Dest is the arrival
// airport. Empty strings are stored as NULL.
type Flight struct {
	Number       string
	Model        string
	Registration string
	Origin       string
	OriginName   string
	Dest         string
	DestName     string
	Scheduled    string
	Status       string
	Airline      string
}

// Dataset is the full content of a fixture database.
type Dataset struct {
	Airports   []Airport
	Departures []Flight
	Arrivals   []Flight
}

// Write creates a database holding ds under t.TempDir and returns its path.
func Write(t testing.TB, ds Dataset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "flight_data.db")
	require.NoError(t, WriteFile(path, ds))
	return path
}

// WriteFile creates (or replaces) the database at path and fills it with ds.
func WriteFile(path string, ds Dataset) (err error) {
	_ = os.Remove(path)

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate, sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = conn.Close() }()

	if err := sqlitex.ExecuteScript(conn, Schema, nil); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}

	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer endFn(&err)

	if err = insertAirports(conn, ds.Airports); err != nil {
		return err
	}
	if err = insertFlights(conn, departuresInsert, ds.Departures); err != nil {
		return err
	}
	if err = insertFlights(conn, arrivalsInsert, ds.Arrivals); err != nil {
		return err
	}
	return nil
}

const departuresInsert = `INSERT INTO new_departures_data (flight_number, aircraft_model, aircraft_registration,
origin_airport_iata, origin_airport_name, destination_airport_iata, destination_airport_name,
scheduled_departure_time_utc, flight_status, airline_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

const arrivalsInsert = `INSERT INTO new_arrivals_data (flight_number, aircraft_model, aircraft_registration,
origin_airport_iata, origin_airport_name, arrival_airport_iata, arrival_airport_name,
scheduled_arrival_time_utc, flight_status, airline_name) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func insertAirports(conn *sqlite.Conn, airports []Airport) error {
	stmt, _, err := conn.PrepareTransient(`INSERT INTO airports_data (iata_code, full_name, municipality_name, country_name) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare airport insert: %w", err)
	}
	defer func() { _ = stmt.Finalize() }()

	for _, a := range airports {
		stmt.BindText(1, a.IATA)
		bindTextOrNull(stmt, 2, a.Name)
		bindTextOrNull(stmt, 3, a.City)
		bindTextOrNull(stmt, 4, a.Country)
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("insert airport %s: %w", a.IATA, err)
		}
		_ = stmt.Reset()
	}
	return nil
}

func insertFlights(conn *sqlite.Conn, query string, flights []Flight) error {
	stmt, _, err := conn.PrepareTransient(query)
	if err != nil {
		return fmt.Errorf("prepare flight insert: %w", err)
	}
	defer func() { _ = stmt.Finalize() }()

	for _, f := range flights {
		for i, v := range []string{f.Number, f.Model, f.Registration, f.Origin, f.OriginName,
			f.Dest, f.DestName, f.Scheduled, f.Status, f.Airline} {
			bindTextOrNull(stmt, i+1, v)
		}
		if _, err := stmt.Step(); err != nil {
			return fmt.Errorf("insert flight %s: %w", f.Number, err)
		}
		_ = stmt.Reset()
	}
	return nil
}

func bindTextOrNull(stmt *sqlite.Stmt, param int, val string) {
	if val == "" {
		stmt.BindNull(param)
	} else {
		stmt.BindText(param, val)
	}
}
