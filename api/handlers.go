package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/carriers"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/pkg/buildinfo"
	"github.com/delaynomics/delaynomics-api/pkg/logger"
)

const defaultAirportLimit = 15

// noData writes the 200 placeholder the dashboard renders when a view
// has nothing to show. Missing files and filters that exclude
// everything both land here; neither is a server error.
func noData(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"no_data": true, "message": message})
}

// respondStoreError answers every dataset failure with the placeholder.
// Infrastructure errors are logged first; the dashboard always renders.
func respondStoreError(c *gin.Context, err error, message string) {
	if !errors.Is(err, dataset.ErrNoData) {
		logger.Error(err, "Dataset read failed", "path", c.Request.URL.Path)
	}
	noData(c, message)
}

// carrierFilter parses the optional carriers query parameter.
func carrierFilter(c *gin.Context) []string {
	return carriers.ParseFilter(c.Query("carriers"))
}

// intQuery parses an integer query parameter with a default, rejecting
// non-numeric and non-positive values.
func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter: must be a positive integer"})
		return 0, false
	}
	return n, true
}

// GetKPIs returns a handler for the headline KPI card.
func GetKPIs(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		airlines, err := deps.Store.Airlines()
		if err != nil {
			respondStoreError(c, err, "Airline summary not available. Run the data pipeline first.")
			return
		}

		kpis, err := analytics.ComputeKPIs(airlines, carrierFilter(c))
		if err != nil {
			respondStoreError(c, err, "No carriers match the current filters.")
			return
		}

		c.JSON(http.StatusOK, kpis)
	}
}

// airlineRow is an airline summary row with its display name attached.
type airlineRow struct {
	dataset.AirlineSummary
	Name string `json:"name"`
}

// GetAirlines returns a handler for the carrier summary table.
func GetAirlines(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		airlines, err := deps.Store.Airlines()
		if err != nil {
			respondStoreError(c, err, "Airline summary not available. Run the data pipeline first.")
			return
		}

		rows := analytics.FilterAirlines(airlines, carrierFilter(c))
		if len(rows) == 0 {
			noData(c, "No carriers match the current filters.")
			return
		}

		out := make([]airlineRow, 0, len(rows))
		for _, a := range analytics.SortAirlinesByCostPerMile(rows) {
			out = append(out, airlineRow{AirlineSummary: a, Name: carriers.Name(a.Carrier)})
		}
		c.JSON(http.StatusOK, gin.H{"airlines": out, "count": len(out)})
	}
}

// GetAirports returns a handler for the worst-airports table.
func GetAirports(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, ok := intQuery(c, "limit", defaultAirportLimit)
		if !ok {
			return
		}

		airportRows, err := deps.Store.Airports()
		if err != nil {
			respondStoreError(c, err, "Airport summary not available. Run the data pipeline first.")
			return
		}
		if len(airportRows) == 0 {
			noData(c, "Airport summary is empty.")
			return
		}

		top := analytics.TopAirportsByDelayCost(airportRows, limit)
		c.JSON(http.StatusOK, gin.H{"airports": top, "count": len(top)})
	}
}

// GetCarriers returns a handler listing the known carriers for filter UIs.
func GetCarriers() gin.HandlerFunc {
	type carrierEntry struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	return func(c *gin.Context) {
		codes := carriers.All()
		out := make([]carrierEntry, 0, len(codes))
		for _, code := range codes {
			out = append(out, carrierEntry{Code: code, Name: carriers.Name(code)})
		}
		c.JSON(http.StatusOK, gin.H{"carriers": out, "count": len(out)})
	}
}

// GetNetworkMap returns a handler for the geographic route map.
func GetNetworkMap(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		topN, ok := intQuery(c, "top_n", deps.Cfg.MapConfig.DefaultRoutes)
		if !ok {
			return
		}
		minFlights, ok := intQuery(c, "min_flights", deps.Cfg.MapConfig.MinFlights)
		if !ok {
			return
		}
		filter := carrierFilter(c)

		routes, err := deps.Store.Routes()
		if err != nil {
			respondStoreError(c, err, "Route summary not available. Run the data pipeline first.")
			return
		}

		sampled := analytics.SampleRoutes(routes, analytics.SamplerOptions{
			TopN:       topN,
			Carriers:   filter,
			MinFlights: minFlights,
			Seed:       deps.Cfg.MapConfig.SamplerSeed,
		})
		network := analytics.BuildNetwork(sampled, deps.Resolver)
		if len(network.Routes) == 0 {
			noData(c, "No routes match the current filters.")
			return
		}

		c.JSON(http.StatusOK, network)
	}
}

// GetCalendar returns a handler for the daily cost calendar of the most
// recent year in the dataset.
func GetCalendar(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		daily, err := deps.Store.DailyCosts(c.Request.Context(), carrierFilter(c))
		if err != nil {
			respondStoreError(c, err, "Full dataset not available. Run the data pipeline first.")
			return
		}

		year, ok := analytics.LatestYear(daily)
		if !ok {
			noData(c, "No flights match the current filters.")
			return
		}

		c.JSON(http.StatusOK, analytics.BuildCalendar(year, daily))
	}
}

// GetWeekdays returns a handler for the day-of-week statistics.
func GetWeekdays(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := analytics.WeekdayStats(c.Request.Context(), deps.Store, carrierFilter(c))
		if err != nil {
			respondStoreError(c, err, "Full dataset not available. Run the data pipeline first.")
			return
		}

		c.JSON(http.StatusOK, gin.H{"weekdays": stats})
	}
}

// GetVersion returns a handler exposing build information.
func GetVersion() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, buildinfo.Info())
	}
}
