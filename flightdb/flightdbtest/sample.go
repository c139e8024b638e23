package flightdbtest

// Airport names used by Sample.
const (
	NameDEL = "Indira Gandhi International Airport"
	NameBOM = "Chhatrapati Shivaji Maharaj International Airport"
	NameBLR = "Kempegowda International Airport"
	NameDXB = "Dubai International Airport"
	NameLHR = "Heathrow Airport"
	NameORD = "O'Hare International Airport"
	NameXQT = "Qu'Appelle Field"
)

// CityWithQuote is a municipality in Sample whose name contains a single quote.
const CityWithQuote = "Fort Qu'Appelle"

// Sample returns a small hand-checked dataset:
//   - DEL receives 7 arrivals, BOM 3, Fort Qu'Appelle 2; SIN, NRT and BLR receive none.
//   - Six departures fly DEL→BOM on three aircraft models.
//   - Two departures go to an airport missing from airports_data ("ZZZ").
//   - Airport ORD and city Fort Qu'Appelle carry quote characters.
func Sample() Dataset {
	return Dataset{
		Airports: []Airport{
			{"DEL", NameDEL, "Delhi", "India"},
			{"BOM", NameBOM, "Mumbai", "India"},
			{"BLR", NameBLR, "Bengaluru", "India"},
			{"DXB", NameDXB, "Dubai", "United Arab Emirates"},
			{"LHR", NameLHR, "London", "United Kingdom"},
			{"ORD", NameORD, "Chicago", "United States"},
			{"XQT", NameXQT, CityWithQuote, "Canada"},
			{"SIN", "Changi Airport", "Singapore", "Singapore"},
			{"NRT", "Narita International Airport", "Tokyo", "Japan"},
		},
		Departures: []Flight{
			{"AI101", "A320", "VT-A20", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 06:00:00", "Departed", "Air India"},
			{"AI103", "B738", "VT-B38", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 07:00:00", "Departed", "Air India"},
			{"AI105", "A321", "VT-A21", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 08:00:00", "Delayed", "Air India"},
			{"6E201", "A320", "VT-A20", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 09:00:00", "Expected", "IndiGo"},
			{"6E203", "A320", "VT-A20", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 10:00:00", "Expected", "IndiGo"},
			{"6E205", "A320", "VT-A20", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 11:00:00", "Departed", "IndiGo"},
			{"EK511", "B77W", "A6-EGO", "DEL", NameDEL, "DXB", NameDXB, "2025-03-01 12:00:00", "Departed", "Emirates"},
			{"EK513", "B77W", "A6-EGO", "DEL", NameDEL, "DXB", NameDXB, "2025-03-01 13:00:00", "Delayed", "Emirates"},
			{"EK515", "A388", "A6-EUA", "DEL", NameDEL, "DXB", NameDXB, "2025-03-01 14:00:00", "Scheduled", "Emirates"},
			{"BA142", "B77W", "G-STBA", "DEL", NameDEL, "LHR", NameLHR, "2025-03-01 15:00:00", "Departed", "British Airways"},
			{"AI131", "A320", "VT-A20", "BOM", NameBOM, "DEL", NameDEL, "2025-03-01 16:00:00", "Departed", "Air India"},
			{"AC871", "A320", "C-FXQT", "XQT", NameXQT, "ORD", NameORD, "2025-03-01 17:00:00", "Expected", "Air Canada"},
			{"AC873", "A320", "C-FXQT", "XQT", NameXQT, "ORD", NameORD, "2025-03-01 18:00:00", "Delayed", "Air Canada"},
			{"ZZ001", "", "", "BLR", NameBLR, "ZZZ", "Unknown", "2025-03-01 19:00:00", "Cancelled", ""},
			{"ZZ003", "A320", "VT-A20", "BLR", NameBLR, "ZZZ", "Unknown", "2025-03-01 20:00:00", "Departed", "IndiGo"},
		},
		Arrivals: []Flight{
			{"AI102", "A320", "VT-A20", "BOM", NameBOM, "DEL", NameDEL, "2025-03-01 05:00:00", "Landed", "Air India"},
			{"AI104", "B738", "VT-B38", "BOM", NameBOM, "DEL", NameDEL, "2025-03-01 06:30:00", "Delayed", "Air India"},
			{"EK512", "B77W", "A6-EGO", "DXB", NameDXB, "DEL", NameDEL, "2025-03-01 07:30:00", "Landed", "Emirates"},
			{"EK514", "A388", "A6-EUA", "DXB", NameDXB, "DEL", NameDEL, "2025-03-01 08:30:00", "Delayed", "Emirates"},
			{"BA143", "B77W", "G-STBA", "LHR", NameLHR, "DEL", NameDEL, "2025-03-01 09:30:00", "Expected", "British Airways"},
			{"6E202", "A320", "VT-A20", "BLR", NameBLR, "DEL", NameDEL, "2025-03-01 10:30:00", "Landed", "IndiGo"},
			{"6E204", "A320", "VT-A20", "BLR", NameBLR, "DEL", NameDEL, "2025-03-01 11:30:00", "Expected", "IndiGo"},
			{"AI132", "A320", "VT-A20", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 12:00:00", "Landed", "Air India"},
			{"6E206", "A321", "VT-A21", "BLR", NameBLR, "BOM", NameBOM, "2025-03-01 12:30:00", "Delayed", "IndiGo"},
			{"6E208", "A321", "VT-A21", "DEL", NameDEL, "BOM", NameBOM, "2025-03-01 13:00:00", "Landed", "IndiGo"},
			{"EK516", "B77W", "A6-EGO", "DEL", NameDEL, "DXB", NameDXB, "2025-03-01 14:00:00", "Landed", "Emirates"},
			{"AC872", "A320", "C-FXQT", "ORD", NameORD, "XQT", NameXQT, "2025-03-01 15:00:00", "Delayed", "Air Canada"},
			{"AC874", "A320", "C-FXQT", "ORD", NameORD, "XQT", NameXQT, "2025-03-01 16:00:00", "Landed", "Air Canada"},
			{"BA144", "B77W", "G-STBA", "DEL", NameDEL, "LHR", NameLHR, "2025-03-01 17:00:00", "Delayed", "British Airways"},
			{"UA001", "B789", "N-UA01", "ZZZ", "", "ORD", NameORD, "2025-03-01 18:00:00", "Landed", "United"},
		},
	}
}
