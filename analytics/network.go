package analytics

import (
	"github.com/delaynomics/delaynomics-api/airports"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/pkg/geo"
)

// Hub tier thresholds: how many distinct sampled routes must touch an
// airport for it to count as a medium or major hub.
const (
	majorHubRoutes  = 5
	mediumHubRoutes = 3
)

// Severity tiers split the cost-ratio range into thirds for line
// coloring.
const (
	severityLowMax    = 0.33
	severityMediumMax = 0.66
)

// MapRoute is a sampled route with both endpoints resolved, ready for
// geographic line plotting.
type MapRoute struct {
	Route       string               `json:"route"`
	Origin      string               `json:"origin"`
	Dest        string               `json:"dest"`
	OriginCoord airports.Coordinates `json:"origin_coord"`
	DestCoord   airports.Coordinates `json:"dest_coord"`
	DelayCost   float64              `json:"delay_cost"`
	NumFlights  int                  `json:"num_flights"`
	AvgDelayMin float64              `json:"avg_delay_min"`
	DelayRate   float64              `json:"delay_rate"`
	Carrier     string               `json:"carrier"`
	DistanceMi  float64              `json:"distance_miles"`
	LineWidth   float64              `json:"line_width"`
	Severity    string               `json:"severity"`
}

// AirportAggregate is the per-airport rollup of the sampled routes,
// ready for marker plotting. Each route contributes its full cost and
// flight count to both endpoints, so totals are double-counted across
// airports by design.
type AirportAggregate struct {
	Code         string               `json:"code"`
	Coord        airports.Coordinates `json:"coord"`
	TotalCost    float64              `json:"total_cost"`
	TotalFlights int                  `json:"total_flights"`
	RouteCount   int                  `json:"route_count"`
	MarkerSize   float64              `json:"marker_size"`
	HubTier      string               `json:"hub_tier"`
}

// Network is the full payload for the geographic map.
type Network struct {
	Routes   []MapRoute         `json:"routes"`
	Airports []AirportAggregate `json:"airports"`
}

// BuildNetwork resolves coordinates for the sampled routes and folds
// them into per-airport aggregates. Routes whose route string fails to
// parse, or whose endpoints cannot both be resolved, are dropped
// silently: no partial-coordinate route reaches the map. Negative delay
// costs are clamped to zero before scaling.
func BuildNetwork(sampled []dataset.RouteSummary, resolver *airports.Resolver) Network {
	routes := make([]MapRoute, 0, len(sampled))
	for _, r := range sampled {
		origin, dest, ok := ParseRoute(r.Route)
		if !ok {
			continue
		}
		oc, ok := resolver.Resolve(origin)
		if !ok {
			continue
		}
		dc, ok := resolver.Resolve(dest)
		if !ok {
			continue
		}

		cost := r.TotalDelayCost
		if cost < 0 {
			cost = 0
		}
		flights := r.NumFlights
		if flights < 0 {
			flights = 0
		}

		distance := r.Distance
		if distance <= 0 {
			distance = geo.DistanceBetween(oc, dc)
		}

		carrier := r.PrimaryCarrier
		if carrier == "" {
			carrier = "Unknown"
		}

		routes = append(routes, MapRoute{
			Route:       r.Route,
			Origin:      origin,
			Dest:        dest,
			OriginCoord: oc,
			DestCoord:   dc,
			DelayCost:   cost,
			NumFlights:  flights,
			AvgDelayMin: r.AvgDelayMin,
			DelayRate:   r.DelayRate,
			Carrier:     carrier,
			DistanceMi:  distance,
		})
	}

	scaleRoutes(routes)

	return Network{
		Routes:   routes,
		Airports: aggregateAirports(routes),
	}
}

// scaleRoutes assigns line widths (2-10px) and severity tiers from each
// route's position in the observed cost range. Scaling is relative: the
// costliest route in the sample gets the widest line, whatever its
// absolute cost.
func scaleRoutes(routes []MapRoute) {
	if len(routes) == 0 {
		return
	}

	minCost, maxCost := routes[0].DelayCost, routes[0].DelayCost
	for _, r := range routes[1:] {
		if r.DelayCost < minCost {
			minCost = r.DelayCost
		}
		if r.DelayCost > maxCost {
			maxCost = r.DelayCost
		}
	}

	for i := range routes {
		ratio := 0.0
		if maxCost > minCost {
			ratio = (routes[i].DelayCost - minCost) / (maxCost - minCost)
		}
		routes[i].LineWidth = 2 + ratio*8

		switch {
		case ratio < severityLowMax:
			routes[i].Severity = "low"
		case ratio < severityMediumMax:
			routes[i].Severity = "medium"
		default:
			routes[i].Severity = "high"
		}
	}
}

// aggregateAirports folds the resolved routes into per-airport totals,
// creating an aggregate on first reference to either endpoint.
func aggregateAirports(routes []MapRoute) []AirportAggregate {
	byCode := make(map[string]*AirportAggregate)
	var order []string

	touch := func(code string, coord airports.Coordinates, r MapRoute) {
		agg, ok := byCode[code]
		if !ok {
			agg = &AirportAggregate{Code: code, Coord: coord}
			byCode[code] = agg
			order = append(order, code)
		}
		agg.TotalCost += r.DelayCost
		agg.TotalFlights += r.NumFlights
		agg.RouteCount++
	}

	for _, r := range routes {
		touch(r.Origin, r.OriginCoord, r)
		touch(r.Dest, r.DestCoord, r)
	}

	var maxCost float64
	for _, agg := range byCode {
		if agg.TotalCost > maxCost {
			maxCost = agg.TotalCost
		}
	}

	out := make([]AirportAggregate, 0, len(order))
	for _, code := range order {
		agg := byCode[code]

		ratio := 0.0
		if maxCost > 0 {
			ratio = agg.TotalCost / maxCost
		}
		// 8-28px marker range.
		agg.MarkerSize = 8 + ratio*20

		switch {
		case agg.RouteCount >= majorHubRoutes:
			agg.HubTier = "major"
		case agg.RouteCount >= mediumHubRoutes:
			agg.HubTier = "medium"
		default:
			agg.HubTier = "small"
		}

		out = append(out, *agg)
	}

	return out
}
