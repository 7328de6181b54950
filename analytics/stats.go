package analytics

import (
	"sort"

	"github.com/delaynomics/delaynomics-api/dataset"
)

// TopAirportsByDelayCost returns up to n airports ranked by average
// delay cost, worst first. Ties keep input order.
func TopAirportsByDelayCost(airports []dataset.AirportSummary, n int) []dataset.AirportSummary {
	if n <= 0 || len(airports) == 0 {
		return nil
	}
	sorted := make([]dataset.AirportSummary, len(airports))
	copy(sorted, airports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgDelayCost > sorted[j].AvgDelayCost
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// SortAirlinesByCostPerMile orders the carrier table cheapest-first,
// the default presentation order for the efficiency chart.
func SortAirlinesByCostPerMile(airlines []dataset.AirlineSummary) []dataset.AirlineSummary {
	sorted := make([]dataset.AirlineSummary, len(airlines))
	copy(sorted, airlines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AvgCostPerMile < sorted[j].AvgCostPerMile
	})
	return sorted
}
