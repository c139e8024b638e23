// Package views builds the by-city flight views. The city is always passed
// as a bound parameter.
package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"flightdash/flightdb"
)

// Kind names a view template.
type Kind string

const (
	Arrivals            Kind = "arrivals"
	Departures          Kind = "departures"
	StatusCounts        Kind = "status-counts"
	ArrivalStatusCounts Kind = "arrival-status-counts"
)

// View is a query template restricted to one city.
type View struct {
	Kind  Kind
	Title string // format with the city name
	SQL   string // exactly one ? placeholder
}

var all = []View{
	{Arrivals, "Arrivals to %s", queryArrivalsByCity},
	{Departures, "Departures to %s", queryDeparturesByCity},
	{StatusCounts, "Departure status for %s", queryDepartureStatusByCity},
	{ArrivalStatusCounts, "Arrival status for %s", queryArrivalStatusByCity},
}

// All returns every view in display order.
func All() []View {
	out := make([]View, len(all))
	copy(out, all)
	return out
}

// Lookup returns the view of the given kind.
func Lookup(kind Kind) (View, bool) {
	for _, v := range all {
		if v.Kind == kind {
			return v, true
		}
	}
	return View{}, false
}

// TitleFor returns the view title for city.
func (v View) TitleFor(city string) string {
	return fmt.Sprintf(v.Title, city)
}

// IsChart reports whether the view yields status/count pairs.
func (k Kind) IsChart() bool {
	return k == StatusCounts || k == ArrivalStatusCounts
}

// Query is SQL plus the args bound to its placeholders.
type Query struct {
	SQL  string
	Args []any
}

type params struct {
	Kind string `validate:"required,oneof=arrivals departures status-counts arrival-status-counts"`
	City string `validate:"required,max=128"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Build validates the city and returns the view query for it. Surrounding
// whitespace is trimmed from the city before it is bound.
func Build(kind Kind, city string) (Query, error) {
	const op = "views.Build"

	p := params{Kind: string(kind), City: strings.TrimSpace(city)}
	if err := validate.Struct(p); err != nil {
		return Query{}, &flightdb.Error{Op: op, Ref: city, Kind: flightdb.ErrValidation, Err: describe(err)}
	}
	v, _ := Lookup(kind)
	return Query{SQL: v.SQL, Args: []any{p.City}}, nil
}

// Run builds the view for city and executes it against src.
func Run(ctx context.Context, src flightdb.Source, kind Kind, city string) (*flightdb.Result, error) {
	q, err := Build(kind, city)
	if err != nil {
		return nil, err
	}
	return src.Query(ctx, q.SQL, q.Args...)
}

// Cities returns every municipality in the airport reference table, sorted.
func Cities(ctx context.Context, src flightdb.Source) ([]string, error) {
	const op = "views.Cities"

	res, err := src.Query(ctx, queryCities)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]string, 0, res.Len())
	for _, v := range res.Column("municipality_name") {
		out = append(out, flightdb.FormatValue(v))
	}
	return out, nil
}

func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s longer than %s characters", field, fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("unknown %s %q", field, fe.Value()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s", field, fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
