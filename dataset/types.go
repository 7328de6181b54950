package dataset

import "time"

// RouteSummary is one row of the pre-aggregated route summary table.
// Route is an "AAA-BBB" origin-destination pair.
type RouteSummary struct {
	Route          string  `json:"route"`
	PrimaryCarrier string  `json:"primary_carrier"`
	NumFlights     int     `json:"num_flights"`
	TotalDelayCost float64 `json:"total_delay_cost"`
	AvgDelayCost   float64 `json:"avg_delay_cost"`
	AvgDelayMin    float64 `json:"avg_delay_min"`
	DelayRate      float64 `json:"delay_rate"`
	Distance       float64 `json:"distance"`
}

// AirlineSummary is one row of the pre-aggregated carrier summary table.
type AirlineSummary struct {
	Carrier        string  `json:"carrier"`
	NumFlights     int     `json:"num_flights"`
	TotalDelayCost float64 `json:"total_delay_cost"`
	AvgDelayCost   float64 `json:"avg_delay_cost"`
	AvgDelayMin    float64 `json:"avg_delay_min"`
	DelayRate      float64 `json:"delay_rate"`
	AvgCostPerMile float64 `json:"avg_cost_per_mile"`
}

// AirportSummary is one row of the pre-aggregated airport summary table.
type AirportSummary struct {
	Airport      string  `json:"airport"`
	NumFlights   int     `json:"num_flights"`
	AvgDelayCost float64 `json:"avg_delay_cost"`
	AvgDelayMin  float64 `json:"avg_delay_min"`
}

// Flight is one row of the per-flight dataset. Only the columns the
// analytics layer consumes are carried; everything else is skipped at
// parse time.
type Flight struct {
	Year       int
	Month      int
	DayOfMonth int
	Carrier    string
	Origin     string
	Dest       string
	ArrDelay   float64
	DelayCost  float64
	IsDelayed  bool
}

// Date returns the flight's calendar date in UTC.
func (f Flight) Date() time.Time {
	return time.Date(f.Year, time.Month(f.Month), f.DayOfMonth, 0, 0, 0, 0, time.UTC)
}

// Coordinate is one row of the optional airport coordinates table.
type Coordinate struct {
	IATA string
	Lat  float64
	Lon  float64
}
