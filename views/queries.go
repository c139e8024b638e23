package views

// Departures are matched on their destination city, arrivals on their
// arrival city, departure status on the origin city.

const queryArrivalsByCity = `
SELECT
    na.flight_number,
    na.aircraft_model,
    ad_origin.full_name AS origin_airport,
    ad_dest.full_name AS destination_airport,
    na.scheduled_arrival_time_utc AS scheduled_arrival_time,
    na.flight_status
FROM new_arrivals_data na
LEFT JOIN airports_data ad_origin ON na.origin_airport_iata = ad_origin.iata_code
LEFT JOIN airports_data ad_dest ON na.arrival_airport_iata = ad_dest.iata_code
WHERE ad_dest.municipality_name = ? AND ad_origin.full_name IS NOT NULL
ORDER BY na.scheduled_arrival_time_utc DESC
`

const queryDeparturesByCity = `
SELECT
    nd.flight_number,
    nd.aircraft_model,
    ad_origin.full_name AS origin_airport,
    ad_dest.full_name AS destination_airport,
    nd.scheduled_departure_time_utc AS scheduled_departure_time,
    nd.flight_status
FROM new_departures_data nd
LEFT JOIN airports_data ad_origin ON nd.origin_airport_iata = ad_origin.iata_code
LEFT JOIN airports_data ad_dest ON nd.destination_airport_iata = ad_dest.iata_code
WHERE ad_dest.municipality_name = ?
ORDER BY nd.scheduled_departure_time_utc DESC
`

const queryDepartureStatusByCity = `
SELECT
    nd.flight_status,
    COUNT(*) AS count
FROM new_departures_data nd
LEFT JOIN airports_data ad_orig ON nd.origin_airport_iata = ad_orig.iata_code
WHERE ad_orig.municipality_name = ?
GROUP BY nd.flight_status
ORDER BY nd.flight_status
`

const queryArrivalStatusByCity = `
SELECT
    na.flight_status,
    COUNT(*) AS count
FROM new_arrivals_data na
LEFT JOIN airports_data ad_dest ON na.arrival_airport_iata = ad_dest.iata_code
WHERE ad_dest.municipality_name = ?
GROUP BY na.flight_status
ORDER BY na.flight_status
`

const queryCities = `
SELECT DISTINCT municipality_name
FROM airports_data
WHERE municipality_name IS NOT NULL
ORDER BY municipality_name
`
