package analytics

import (
	"context"
	"strings"
	"time"

	"github.com/delaynomics/delaynomics-api/dataset"
)

// FlightStreamer is the slice of the dataset store the weekday
// aggregator needs.
type FlightStreamer interface {
	StreamFlights(ctx context.Context, fn func(dataset.Flight) error) error
}

// WeekdayStat is the per-weekday rollup of the per-flight dataset.
type WeekdayStat struct {
	Day         string  `json:"day"`
	Flights     int     `json:"flights"`
	AvgArrDelay float64 `json:"avg_arr_delay"`
	AvgCost     float64 `json:"avg_cost"`
	DelayRate   float64 `json:"delay_rate"`
}

// WeekdayStats streams the per-flight dataset and accumulates mean
// arrival delay, mean delay cost, and delay rate per weekday, Monday
// first. The file is processed row-at-a-time so memory stays bounded
// regardless of dataset size. An empty carrier filter keeps all rows.
func WeekdayStats(ctx context.Context, store FlightStreamer, carriers []string) ([]WeekdayStat, error) {
	filter := make(map[string]struct{}, len(carriers))
	for _, c := range carriers {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			filter[c] = struct{}{}
		}
	}

	type acc struct {
		flights  int
		arrDelay float64
		cost     float64
		delayed  int
	}
	var byDay [7]acc

	err := store.StreamFlights(ctx, func(f dataset.Flight) error {
		if len(filter) > 0 {
			if _, ok := filter[f.Carrier]; !ok {
				return nil
			}
		}
		i := mondayIndex(f.Date().Weekday())
		byDay[i].flights++
		byDay[i].arrDelay += f.ArrDelay
		byDay[i].cost += f.DelayCost
		if f.IsDelayed {
			byDay[i].delayed++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]WeekdayStat, 0, 7)
	for i, a := range byDay {
		stat := WeekdayStat{
			// Monday-first ordering: column 0 is Monday.
			Day:     time.Weekday((i + 1) % 7).String(),
			Flights: a.flights,
		}
		if a.flights > 0 {
			n := float64(a.flights)
			stat.AvgArrDelay = a.arrDelay / n
			stat.AvgCost = a.cost / n
			stat.DelayRate = float64(a.delayed) / n
		}
		out = append(out, stat)
	}

	return out, nil
}
