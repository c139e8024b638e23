package catalog

// Report SQL. Every statement is parameter-free; table and column names
// follow the upstream loader (see flightdb.RequiredTables).

const queryFlightsPerModel = `
SELECT
    aircraft_model,
    COUNT(*) AS total_flights
FROM (
    SELECT aircraft_model FROM new_departures_data
    UNION ALL
    SELECT aircraft_model FROM new_arrivals_data
)
WHERE aircraft_model IS NOT NULL
GROUP BY aircraft_model
ORDER BY total_flights DESC
`

const queryBusyAircraft = `
SELECT
    aircraft_registration AS registration,
    aircraft_model AS model,
    COUNT(*) AS total_assignments
FROM (
    SELECT aircraft_registration, aircraft_model FROM new_departures_data WHERE aircraft_registration IS NOT NULL
    UNION ALL
    SELECT aircraft_registration, aircraft_model FROM new_arrivals_data WHERE aircraft_registration IS NOT NULL
)
GROUP BY registration, model
HAVING total_assignments > 5
ORDER BY total_assignments DESC
`

const queryBusyOutboundAirports = `
SELECT
    destination_airport_name AS airport_name,
    COUNT(*) AS outbound_flights_count
FROM new_departures_data
WHERE destination_airport_name IS NOT NULL AND destination_airport_name != 'Unknown'
GROUP BY airport_name
HAVING outbound_flights_count > 5
ORDER BY outbound_flights_count DESC
`

const queryTopDestinations = `
SELECT
    ad.full_name AS destination_airport_name,
    ad.municipality_name AS destination_airport_city,
    COUNT(*) AS total_arriving_flights
FROM new_arrivals_data na
LEFT JOIN airports_data ad ON na.arrival_airport_iata = ad.iata_code
WHERE ad.full_name IS NOT NULL
GROUP BY destination_airport_name, destination_airport_city
ORDER BY total_arriving_flights DESC
LIMIT 3
`

const queryFlightTypes = `
SELECT
    nd.flight_number AS flight_number,
    ad_orig.full_name AS origin_airport,
    ad_dest.full_name AS destination_airport,
    CASE
        WHEN ad_orig.country_name = ad_dest.country_name THEN 'Domestic'
        ELSE 'International'
    END AS flight_type
FROM new_departures_data nd
LEFT JOIN airports_data ad_orig ON nd.origin_airport_iata = ad_orig.iata_code
LEFT JOIN airports_data ad_dest ON nd.destination_airport_iata = ad_dest.iata_code
WHERE ad_orig.full_name IS NOT NULL AND ad_dest.full_name IS NOT NULL
ORDER BY flight_number ASC
`

// RecentArrivalsAirport is the airport report 6 looks at.
const RecentArrivalsAirport = "DEL"

const queryRecentArrivals = `
SELECT
    flight_number,
    aircraft_model,
    origin_airport_name AS departure_airport_name,
    scheduled_arrival_time_utc AS scheduled_arrival_time
FROM new_arrivals_data
WHERE arrival_airport_iata = '` + RecentArrivalsAirport + `'
ORDER BY scheduled_arrival_time DESC
LIMIT 5
`

const queryAirportsWithoutArrivals = `
SELECT
    ad.full_name AS airport_name,
    ad.iata_code AS airport_iata
FROM airports_data ad
LEFT JOIN new_arrivals_data na ON ad.iata_code = na.arrival_airport_iata
WHERE na.arrival_airport_iata IS NULL
ORDER BY airport_iata
`

// Statuses outside Departed/Expected land in other_status_flights; the
// status set is open.
const queryAirlineStatus = `
SELECT
    airline_name,
    COUNT(CASE WHEN flight_status = 'Departed' THEN 1 ELSE NULL END) AS departed_flights,
    COUNT(CASE WHEN flight_status = 'Expected' THEN 1 ELSE NULL END) AS expected_flights,
    COUNT(CASE WHEN flight_status NOT IN ('Departed', 'Expected') THEN 1 ELSE NULL END) AS other_status_flights,
    COUNT(*) AS total_flights
FROM new_departures_data
WHERE airline_name IS NOT NULL
GROUP BY airline_name
ORDER BY total_flights DESC
`

const queryDelayedDepartures = `
SELECT
    nd.flight_number,
    nd.aircraft_model,
    ad_origin.full_name AS origin_airport,
    ad_destination.full_name AS destination_airport,
    nd.scheduled_departure_time_utc
FROM new_departures_data nd
LEFT JOIN airports_data ad_origin ON nd.origin_airport_iata = ad_origin.iata_code
LEFT JOIN airports_data ad_destination ON nd.destination_airport_iata = ad_destination.iata_code
WHERE nd.flight_status = 'Delayed'
ORDER BY nd.scheduled_departure_time_utc DESC
`

const queryMultiModelRoutes = `
SELECT
    ad_orig.full_name AS origin_airport,
    ad_dest.full_name AS destination_airport,
    COUNT(DISTINCT nd.aircraft_model) AS distinct_aircraft_models
FROM new_departures_data nd
JOIN airports_data ad_orig ON nd.origin_airport_iata = ad_orig.iata_code
JOIN airports_data ad_dest ON nd.destination_airport_iata = ad_dest.iata_code
WHERE nd.aircraft_model IS NOT NULL
GROUP BY origin_airport, destination_airport
HAVING COUNT(DISTINCT nd.aircraft_model) > 2
ORDER BY distinct_aircraft_models DESC
`

// HAVING keeps zero-arrival groups out so the division is always defined.
const queryDelayPercentage = `
SELECT
    ad.full_name AS destination_airport_name,
    SUM(CASE WHEN na.flight_status = 'Delayed' THEN 1 ELSE 0 END) AS delayed_arrivals_count,
    COUNT(na.flight_number) AS total_arrivals_count,
    CAST(SUM(CASE WHEN na.flight_status = 'Delayed' THEN 1 ELSE 0 END) AS REAL) * 100 / COUNT(na.flight_number) AS percentage_delayed
FROM new_arrivals_data na
JOIN airports_data ad ON na.arrival_airport_iata = ad.iata_code
GROUP BY ad.full_name
HAVING total_arrivals_count > 0
ORDER BY percentage_delayed DESC
`
