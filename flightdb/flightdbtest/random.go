package flightdbtest

import (
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
)

var (
	models   = []string{"A320", "A321", "A388", "B738", "B77W", "B789", "E190"}
	statuses = []string{"Departed", "Expected", "Delayed", "Landed", "Cancelled", "Scheduled"}
)

// Random returns a reproducible dataset of the given size drawn from seed.
// Some names, models and statuses are left NULL and some flights reference
// airports missing from airports_data.
func Random(seed uint64, airports, flights int) Dataset {
	f := gofakeit.New(seed)
	var ds Dataset

	seen := map[string]bool{}
	for len(ds.Airports) < airports {
		code := strings.ToUpper(f.LetterN(3))
		if seen[code] {
			continue
		}
		seen[code] = true
		ds.Airports = append(ds.Airports, Airport{
			IATA:    code,
			Name:    f.LastName() + " Airport",
			City:    f.City(),
			Country: f.RandomString([]string{"India", "Canada", "Japan", "France", "Kenya"}),
		})
	}

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)
	flight := func() Flight {
		orig := pickAirport(f, ds.Airports)
		dest := pickAirport(f, ds.Airports)
		model := f.RandomString(models)
		if f.Number(0, 9) == 0 {
			model = ""
		}
		return Flight{
			Number:       f.Numerify(strings.ToUpper(f.LetterN(2)) + "####"),
			Model:        model,
			Registration: strings.ToUpper(f.Lexify("??-???")),
			Origin:       orig.IATA,
			OriginName:   orig.Name,
			Dest:         dest.IATA,
			DestName:     dest.Name,
			Scheduled:    f.DateRange(start, end).Format("2006-01-02 15:04:05"),
			Status:       f.RandomString(statuses),
			Airline:      f.Company(),
		}
	}
	for i := 0; i < flights; i++ {
		ds.Departures = append(ds.Departures, flight())
		ds.Arrivals = append(ds.Arrivals, flight())
	}
	return ds
}

func pickAirport(f *gofakeit.Faker, airports []Airport) Airport {
	if f.Number(0, 19) == 0 {
		return Airport{IATA: "QQQ"}
	}
	return airports[f.Number(0, len(airports)-1)]
}
