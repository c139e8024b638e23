// Package catalog holds the fixed set of analytical reports the dashboard can run.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"flightdash/flightdb"
)

// Report is one named, parameter-free SQL statement.
type Report struct {
	ID    int    `json:"id"`
	Key   string `json:"key"`
	Label string `json:"label"`
	SQL   string `json:"-"`
}

// Catalog is an ordered, read-only collection of reports.
type Catalog struct {
	reports []Report
	byLabel map[string]int
	byKey   map[string]int
	byID    map[int]int
}

// New builds a catalog in the given order. IDs, keys and labels must be unique.
func New(reports ...Report) (*Catalog, error) {
	const op = "catalog.New"

	c := &Catalog{
		reports: make([]Report, 0, len(reports)),
		byLabel: make(map[string]int, len(reports)),
		byKey:   make(map[string]int, len(reports)),
		byID:    make(map[int]int, len(reports)),
	}
	for i, r := range reports {
		switch {
		case r.ID <= 0:
			return nil, flightdb.Errorf(op, flightdb.ErrValidation, r.Label, "report id must be positive")
		case r.Key == "" || r.Label == "" || strings.TrimSpace(r.SQL) == "":
			return nil, flightdb.Errorf(op, flightdb.ErrValidation, strconv.Itoa(r.ID), "report needs key, label and sql")
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, flightdb.Errorf(op, flightdb.ErrValidation, strconv.Itoa(r.ID), "duplicate report id")
		}
		if _, dup := c.byKey[r.Key]; dup {
			return nil, flightdb.Errorf(op, flightdb.ErrValidation, r.Key, "duplicate report key")
		}
		if _, dup := c.byLabel[r.Label]; dup {
			return nil, flightdb.Errorf(op, flightdb.ErrValidation, r.Label, "duplicate report label")
		}
		c.byID[r.ID] = i
		c.byKey[r.Key] = i
		c.byLabel[r.Label] = i
		c.reports = append(c.reports, r)
	}
	return c, nil
}

// Default returns the eleven flight-operations reports.
func Default() *Catalog {
	c, err := New(defaultReports...)
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid default reports: %v", err))
	}
	return c
}

var defaultReports = []Report{
	{1, "flights-per-model", "Total flights per aircraft model", queryFlightsPerModel},
	{2, "busy-aircraft", "Aircraft assigned to more than 5 flights", queryBusyAircraft},
	{3, "busy-outbound-airports", "Airports with more than 5 outbound flights", queryBusyOutboundAirports},
	{4, "top-destinations", "Top 3 destination airports by arriving flights", queryTopDestinations},
	{5, "flight-types", "Domestic or international classification per flight", queryFlightTypes},
	{6, "recent-arrivals", "5 most recent arrivals at " + RecentArrivalsAirport, queryRecentArrivals},
	{7, "airports-without-arrivals", "Airports with no arriving flights", queryAirportsWithoutArrivals},
	{8, "airline-status", "Flights per airline by status", queryAirlineStatus},
	{9, "delayed-departures", "All delayed departures", queryDelayedDepartures},
	{10, "multi-model-routes", "Airport pairs served by more than 2 aircraft models", queryMultiModelRoutes},
	{11, "delay-percentage", "Delayed arrival percentage per destination airport", queryDelayPercentage},
}

// Len returns the number of reports.
func (c *Catalog) Len() int { return len(c.reports) }

// Reports returns the reports in catalog order.
func (c *Catalog) Reports() []Report {
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// Labels returns the report labels in catalog order.
func (c *Catalog) Labels() []string {
	out := make([]string, len(c.reports))
	for i, r := range c.reports {
		out[i] = r.Label
	}
	return out
}

// Lookup returns the SQL of the report with the given label.
func (c *Catalog) Lookup(label string) (string, error) {
	i, ok := c.byLabel[label]
	if !ok {
		return "", &flightdb.Error{Op: "catalog.Lookup", Ref: label, Kind: flightdb.ErrNotFound}
	}
	return c.reports[i].SQL, nil
}

// Resolve finds a report by label, key or numeric ID, in that order.
func (c *Catalog) Resolve(ref string) (Report, error) {
	if i, ok := c.byLabel[ref]; ok {
		return c.reports[i], nil
	}
	if i, ok := c.byKey[ref]; ok {
		return c.reports[i], nil
	}
	if id, err := strconv.Atoi(strings.TrimSpace(ref)); err == nil {
		if i, ok := c.byID[id]; ok {
			return c.reports[i], nil
		}
	}
	return Report{}, &flightdb.Error{Op: "catalog.Resolve", Ref: ref, Kind: flightdb.ErrNotFound}
}
