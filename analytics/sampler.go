package analytics

import (
	"math/rand"
	"sort"
	"strings"

	"github.com/delaynomics/delaynomics-api/dataset"
)

// Sampling mix for the network map. Pure top-cost selection concentrates
// on a handful of corridors; reserving a random slice keeps the map
// geographically interesting.
const (
	costShare      = 0.4
	volumeShare    = 0.4
	diversityShare = 0.2
)

// DefaultSamplerSeed keeps route sampling reproducible across requests.
const DefaultSamplerSeed = 42

// SamplerOptions controls route selection for the network map.
type SamplerOptions struct {
	// TopN is the target number of routes. Zero or negative falls back
	// to 200.
	TopN int
	// Carriers keeps only routes whose primary carrier is listed. Empty
	// means no carrier filter.
	Carriers []string
	// MinFlights drops routes with fewer flights before sampling.
	MinFlights int
	// Seed feeds the diversity draw. Zero uses DefaultSamplerSeed.
	Seed int64
}

// SampleRoutes selects up to opts.TopN routes by mixing three
// strategies: the top 40% by total delay cost, the top 40% by flight
// volume, and a seeded random 20% drawn from whatever the first two
// passes did not take. The union is de-duplicated by route id in
// first-occurrence order and truncated to TopN. Given identical inputs
// and seed the output is identical.
//
// When the remainder pool is smaller than the diversity share the draw
// simply comes up short; the cost and volume subsets are not widened to
// compensate.
func SampleRoutes(routes []dataset.RouteSummary, opts SamplerOptions) []dataset.RouteSummary {
	topN := opts.TopN
	if topN <= 0 {
		topN = 200
	}
	seed := opts.Seed
	if seed == 0 {
		seed = DefaultSamplerSeed
	}

	eligible := filterRoutes(routes, opts.Carriers, opts.MinFlights)
	if len(eligible) == 0 {
		return nil
	}

	costRoutes := topBy(eligible, int(float64(topN)*costShare), func(r dataset.RouteSummary) float64 {
		return r.TotalDelayCost
	})
	volumeRoutes := topBy(eligible, int(float64(topN)*volumeShare), func(r dataset.RouteSummary) float64 {
		return float64(r.NumFlights)
	})

	used := make(map[string]struct{}, len(costRoutes)+len(volumeRoutes))
	for _, r := range costRoutes {
		used[r.Route] = struct{}{}
	}
	for _, r := range volumeRoutes {
		used[r.Route] = struct{}{}
	}

	var remaining []dataset.RouteSummary
	for _, r := range eligible {
		if _, ok := used[r.Route]; !ok {
			remaining = append(remaining, r)
		}
	}

	diversityN := int(float64(topN) * diversityShare)
	if diversityN > len(remaining) {
		diversityN = len(remaining)
	}

	var diversity []dataset.RouteSummary
	if diversityN > 0 {
		rng := rand.New(rand.NewSource(seed))
		perm := rng.Perm(len(remaining))[:diversityN]
		sort.Ints(perm)
		diversity = make([]dataset.RouteSummary, 0, diversityN)
		for _, i := range perm {
			diversity = append(diversity, remaining[i])
		}
	}

	// Union in selection order, first occurrence wins.
	seen := make(map[string]struct{}, topN)
	out := make([]dataset.RouteSummary, 0, topN)
	for _, group := range [][]dataset.RouteSummary{costRoutes, volumeRoutes, diversity} {
		for _, r := range group {
			if _, ok := seen[r.Route]; ok {
				continue
			}
			seen[r.Route] = struct{}{}
			out = append(out, r)
			if len(out) == topN {
				return out
			}
		}
	}

	return out
}

// filterRoutes applies the carrier and minimum-flight filters, keeping
// input order.
func filterRoutes(routes []dataset.RouteSummary, carriers []string, minFlights int) []dataset.RouteSummary {
	filter := make(map[string]struct{}, len(carriers))
	for _, c := range carriers {
		c = strings.ToUpper(strings.TrimSpace(c))
		if c != "" {
			filter[c] = struct{}{}
		}
	}

	out := make([]dataset.RouteSummary, 0, len(routes))
	for _, r := range routes {
		if r.NumFlights < minFlights {
			continue
		}
		if len(filter) > 0 {
			if _, ok := filter[strings.ToUpper(r.PrimaryCarrier)]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

// topBy returns the n highest routes by the given key. Ties keep input
// order so the selection stays deterministic.
func topBy(routes []dataset.RouteSummary, n int, key func(dataset.RouteSummary) float64) []dataset.RouteSummary {
	if n <= 0 {
		return nil
	}
	sorted := make([]dataset.RouteSummary, len(routes))
	copy(sorted, routes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(sorted[i]) > key(sorted[j])
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
