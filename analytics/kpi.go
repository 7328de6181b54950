package analytics

import (
	"sort"
	"strings"

	"github.com/delaynomics/delaynomics-api/carriers"
	"github.com/delaynomics/delaynomics-api/dataset"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// kpiPrinter formats totals with thousands separators for display.
var kpiPrinter = message.NewPrinter(language.AmericanEnglish)

// KPIs is the headline card payload: best and worst carrier by cost per
// mile, the mean delay cost across carriers, and the total flight count.
type KPIs struct {
	BestCarrier       string  `json:"best_carrier"`
	BestCarrierName   string  `json:"best_carrier_name"`
	BestCostPerMile   float64 `json:"best_cost_per_mile"`
	WorstCarrier      string  `json:"worst_carrier"`
	WorstCarrierName  string  `json:"worst_carrier_name"`
	WorstCostPerMile  float64 `json:"worst_cost_per_mile"`
	AvgDelayCost      float64 `json:"avg_delay_cost"`
	TotalFlights      int     `json:"total_flights"`
	TotalFlightsLabel string  `json:"total_flights_label"`
}

// ComputeKPIs rolls the carrier summary up into the dashboard's
// headline numbers. Best/worst are the min/max of avg cost per mile; an
// optional carrier filter narrows the field first. Empty input (or a
// filter that excludes everything) returns ErrNoData wrapped in the
// dataset sentinel so the API layer can render a placeholder.
func ComputeKPIs(airlines []dataset.AirlineSummary, filter []string) (*KPIs, error) {
	rows := filterAirlines(airlines, filter)
	if len(rows) == 0 {
		return nil, dataset.ErrNoData
	}

	best, worst := rows[0], rows[0]
	var costSum float64
	var totalFlights int
	for _, a := range rows {
		if a.AvgCostPerMile < best.AvgCostPerMile {
			best = a
		}
		if a.AvgCostPerMile > worst.AvgCostPerMile {
			worst = a
		}
		costSum += a.AvgDelayCost
		totalFlights += a.NumFlights
	}

	return &KPIs{
		BestCarrier:       best.Carrier,
		BestCarrierName:   carriers.Name(best.Carrier),
		BestCostPerMile:   best.AvgCostPerMile,
		WorstCarrier:      worst.Carrier,
		WorstCarrierName:  carriers.Name(worst.Carrier),
		WorstCostPerMile:  worst.AvgCostPerMile,
		AvgDelayCost:      costSum / float64(len(rows)),
		TotalFlights:      totalFlights,
		TotalFlightsLabel: kpiPrinter.Sprintf("%d", totalFlights),
	}, nil
}

// FilterAirlines keeps rows whose carrier is in the filter set, or all
// rows for an empty filter.
func FilterAirlines(airlines []dataset.AirlineSummary, filter []string) []dataset.AirlineSummary {
	return filterAirlines(airlines, filter)
}

func filterAirlines(airlines []dataset.AirlineSummary, filter []string) []dataset.AirlineSummary {
	if len(filter) == 0 {
		return airlines
	}
	set := make(map[string]struct{}, len(filter))
	for _, c := range filter {
		set[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}
	out := make([]dataset.AirlineSummary, 0, len(airlines))
	for _, a := range airlines {
		if _, ok := set[a.Carrier]; ok {
			out = append(out, a)
		}
	}
	return out
}

// BestByCostPerMile returns up to n carriers ranked cheapest-first by
// avg cost per mile. Used by the insights prompt builder.
func BestByCostPerMile(airlines []dataset.AirlineSummary, n int) []dataset.AirlineSummary {
	return rankByCostPerMile(airlines, n, true)
}

// WorstByCostPerMile returns up to n carriers ranked costliest-first.
func WorstByCostPerMile(airlines []dataset.AirlineSummary, n int) []dataset.AirlineSummary {
	return rankByCostPerMile(airlines, n, false)
}

func rankByCostPerMile(airlines []dataset.AirlineSummary, n int, ascending bool) []dataset.AirlineSummary {
	if n <= 0 || len(airlines) == 0 {
		return nil
	}
	sorted := make([]dataset.AirlineSummary, len(airlines))
	copy(sorted, airlines)
	sort.SliceStable(sorted, func(i, j int) bool {
		if ascending {
			return sorted[i].AvgCostPerMile < sorted[j].AvgCostPerMile
		}
		return sorted[i].AvgCostPerMile > sorted[j].AvgCostPerMile
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
