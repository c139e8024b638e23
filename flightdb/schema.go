package flightdb

import (
	"context"
	"fmt"
	"strings"
)

// Table names of the flight-operations database.
const (
	TableDepartures = "new_departures_data"
	TableArrivals   = "new_arrivals_data"
	TableAirports   = "airports_data"
)

// TableSpec lists the columns the reports and views read from a table.
type TableSpec struct {
	Name    string
	Columns []string
}

// RequiredTables is the schema every report and view relies on.
var RequiredTables = []TableSpec{
	{
		Name: TableDepartures,
		Columns: []string{
			"flight_number", "aircraft_model", "aircraft_registration",
			"origin_airport_iata", "destination_airport_iata", "destination_airport_name",
			"scheduled_departure_time_utc", "flight_status", "airline_name",
		},
	},
	{
		Name: TableArrivals,
		Columns: []string{
			"flight_number", "aircraft_model", "aircraft_registration",
			"origin_airport_iata", "origin_airport_name", "arrival_airport_iata",
			"scheduled_arrival_time_utc", "flight_status",
		},
	},
	{
		Name:    TableAirports,
		Columns: []string{"iata_code", "full_name", "municipality_name", "country_name"},
	},
}

// CheckSchema verifies that every required table (or view) and column exists.
// The returned error lists everything missing.
func CheckSchema(ctx context.Context, src Source) error {
	const op = "flightdb.CheckSchema"

	var missing []string
	for _, t := range RequiredTables {
		res, err := src.Query(ctx, `SELECT name FROM pragma_table_info(?)`, t.Name)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if res.Len() == 0 {
			missing = append(missing, "table "+t.Name)
			continue
		}
		have := make(map[string]bool, res.Len())
		for _, v := range res.Column("name") {
			have[FormatValue(v)] = true
		}
		for _, c := range t.Columns {
			if !have[c] {
				missing = append(missing, "column "+t.Name+"."+c)
			}
		}
	}
	if len(missing) > 0 {
		return Errorf(op, ErrQuery, "", "missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// TableCount is the row count of one table.
type TableCount struct {
	Table string
	Rows  int64
}

// Summarize counts rows in each required table.
func Summarize(ctx context.Context, src Source) ([]TableCount, error) {
	const op = "flightdb.Summarize"

	out := make([]TableCount, 0, len(RequiredTables))
	for _, t := range RequiredTables {
		// Table names come from RequiredTables, never from input.
		res, err := src.Query(ctx, fmt.Sprintf(`SELECT COUNT(*) AS n FROM %q`, t.Name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		n, _ := res.Rows[0]["n"].(int64)
		out = append(out, TableCount{Table: t.Name, Rows: n})
	}
	return out, nil
}
