package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaynomics/delaynomics-api/airports"
	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore serves canned summaries without touching disk.
type fakeStore struct {
	routes    []dataset.RouteSummary
	airlines  []dataset.AirlineSummary
	airports  []dataset.AirportSummary
	daily     map[time.Time]float64
	flights   []dataset.Flight
	streamErr error
	loadErr   error
}

func (f *fakeStore) Routes() ([]dataset.RouteSummary, error) {
	return f.routes, f.loadErr
}

func (f *fakeStore) Airlines() ([]dataset.AirlineSummary, error) {
	return f.airlines, f.loadErr
}

func (f *fakeStore) Airports() ([]dataset.AirportSummary, error) {
	return f.airports, f.loadErr
}

func (f *fakeStore) DailyCosts(ctx context.Context, carriers []string) (map[time.Time]float64, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.daily, nil
}

func (f *fakeStore) StreamFlights(ctx context.Context, fn func(dataset.Flight) error) error {
	if f.streamErr != nil {
		return f.streamErr
	}
	for _, fl := range f.flights {
		if err := fn(fl); err != nil {
			return err
		}
	}
	return nil
}

// fakeAnalyst answers with canned text, recording calls.
type fakeAnalyst struct {
	enabled   bool
	answer    string
	answerErr error
	calls     int
}

func (f *fakeAnalyst) Enabled() bool { return f.enabled }

func (f *fakeAnalyst) Insights(ctx context.Context, airlines []dataset.AirlineSummary) insights.Result {
	f.calls++
	if !f.enabled {
		return insights.Result{Markdown: "**AI Insights Unavailable**"}
	}
	return insights.Result{Markdown: "insight text", Generated: true}
}

func (f *fakeAnalyst) Answer(ctx context.Context, question string, airlines []dataset.AirlineSummary, airportRows []dataset.AirportSummary, weekdays []analytics.WeekdayStat) (string, error) {
	f.calls++
	if f.answerErr != nil {
		return "", f.answerErr
	}
	return f.answer, nil
}

func testAirlines() []dataset.AirlineSummary {
	return []dataset.AirlineSummary{
		{Carrier: "WN", NumFlights: 1200, AvgDelayCost: 410, AvgCostPerMile: 0.42, AvgDelayMin: 11.2, DelayRate: 0.31},
		{Carrier: "DL", NumFlights: 900, AvgDelayCost: 390, AvgCostPerMile: 0.35, AvgDelayMin: 9.8, DelayRate: 0.27},
		{Carrier: "F9", NumFlights: 400, AvgDelayCost: 640, AvgCostPerMile: 0.71, AvgDelayMin: 17.5, DelayRate: 0.41},
	}
}

func testRoutes() []dataset.RouteSummary {
	return []dataset.RouteSummary{
		{Route: "ORD-ATL", PrimaryCarrier: "DL", NumFlights: 900, TotalDelayCost: 60000, AvgDelayCost: 66, AvgDelayMin: 12, DelayRate: 0.3},
		{Route: "ORD-DEN", PrimaryCarrier: "WN", NumFlights: 700, TotalDelayCost: 40000, AvgDelayCost: 57, AvgDelayMin: 10, DelayRate: 0.25},
		{Route: "LAX-JFK", PrimaryCarrier: "DL", NumFlights: 500, TotalDelayCost: 30000, AvgDelayCost: 60, AvgDelayMin: 11, DelayRate: 0.22},
	}
}

// newTestDeps builds Deps over fakes plus a miniredis-backed cache.
func newTestDeps(t *testing.T, store *fakeStore, analyst *fakeAnalyst) Deps {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.TestConfig()
	return Deps{
		Store:    store,
		Resolver: airports.NewResolver(nil),
		Analyst:  analyst,
		Cache:    cache.NewManager(cache.NewRedisCache(client, "test")),
		Cfg:      cfg,
	}
}

func newTestRouter(deps Deps) *gin.Engine {
	router := gin.New()
	RegisterRoutes(router, deps)
	return router
}

func doGET(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		body = nil
	}
	return w, body
}

func TestGetKPIs(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/kpis")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "DL", body["best_carrier"])
	assert.Equal(t, "Delta Air Lines", body["best_carrier_name"])
	assert.Equal(t, "F9", body["worst_carrier"])
	assert.Equal(t, "2,500", body["total_flights_label"])
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestGetKPIsReflectsDatasetChanges(t *testing.T) {
	store := &fakeStore{airlines: testAirlines()}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	_, body := doGET(t, router, "/api/v1/kpis")
	require.Equal(t, "DL", body["best_carrier"])

	// Regenerating the summary files must be visible on the very next
	// request; aggregates are never served from a cache.
	store.airlines = []dataset.AirlineSummary{
		{Carrier: "WN", NumFlights: 1200, AvgDelayCost: 410, AvgCostPerMile: 0.12, AvgDelayMin: 11.2, DelayRate: 0.31},
		{Carrier: "DL", NumFlights: 900, AvgDelayCost: 390, AvgCostPerMile: 0.35, AvgDelayMin: 9.8, DelayRate: 0.27},
	}

	w, body := doGET(t, router, "/api/v1/kpis")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WN", body["best_carrier"])
}

func TestGetKPIsCarrierFilter(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/kpis?carriers=WN,DL")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "WN", body["worst_carrier"])

	w, body = doGET(t, router, "/api/v1/kpis?carriers=ZZ")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
}

func TestGetKPIsMissingFile(t *testing.T) {
	store := &fakeStore{loadErr: &dataset.MissingFileError{Path: "airline_summary.csv"}}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/kpis")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
	assert.Contains(t, body["message"], "pipeline")
}

func TestGetKPIsReadFailure(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("read airline_summary.csv: input/output error")}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	// Infrastructure failures degrade to the same placeholder as
	// missing data; read endpoints never answer with a 5xx.
	w, body := doGET(t, router, "/api/v1/kpis")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
}

func TestGetAirlinesSortedWithNames(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/airlines")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["count"])

	rows := body["airlines"].([]interface{})
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "DL", first["carrier"])
	assert.Equal(t, "Delta Air Lines", first["name"])
	last := rows[2].(map[string]interface{})
	assert.Equal(t, "F9", last["carrier"])
}

func TestGetAirportsLimit(t *testing.T) {
	store := &fakeStore{airports: []dataset.AirportSummary{
		{Airport: "ORD", AvgDelayCost: 900},
		{Airport: "ATL", AvgDelayCost: 700},
		{Airport: "DEN", AvgDelayCost: 800},
	}}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/airports?limit=2")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), body["count"])
	rows := body["airports"].([]interface{})
	assert.Equal(t, "ORD", rows[0].(map[string]interface{})["airport"])
	assert.Equal(t, "DEN", rows[1].(map[string]interface{})["airport"])
}

func TestGetAirportsBadLimit(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{}, &fakeAnalyst{})
	router := newTestRouter(deps)

	for _, limit := range []string{"abc", "0", "-3"} {
		w, body := doGET(t, router, "/api/v1/airports?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, body["error"], "limit")
	}
}

func TestGetCarriers(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/carriers")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(15), body["count"])
	first := body["carriers"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "9E", first["code"])
	assert.Equal(t, "Endeavor Air", first["name"])
}

func TestGetNetworkMap(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{routes: testRoutes()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, _ := doGET(t, router, "/api/v1/network/map?top_n=10&min_flights=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))

	var network analytics.Network
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &network))
	assert.Len(t, network.Routes, 3)
	assert.NotEmpty(t, network.Airports)
	for _, r := range network.Routes {
		assert.NotZero(t, r.OriginCoord.Lat)
		assert.NotEmpty(t, r.Severity)
	}
}

func TestGetNetworkMapBadParams(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{routes: testRoutes()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, _ := doGET(t, router, "/api/v1/network/map?top_n=zero")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doGET(t, router, "/api/v1/network/map?min_flights=-1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetNetworkMapNoRoutes(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{routes: testRoutes()}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/network/map?carriers=ZZ")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
}

func TestGetCalendar(t *testing.T) {
	daily := map[time.Time]float64{
		time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC): 1200,
		time.Date(2023, 3, 2, 0, 0, 0, 0, time.UTC): 800,
	}
	deps := newTestDeps(t, &fakeStore{daily: daily}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, _ := doGET(t, router, "/api/v1/calendar")
	require.Equal(t, http.StatusOK, w.Code)

	var cal analytics.Calendar
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
	assert.Equal(t, 2023, cal.Year)
	assert.Len(t, cal.Months, 12)
}

func TestGetCalendarNoData(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{daily: map[time.Time]float64{}}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/calendar")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
}

func TestGetWeekdays(t *testing.T) {
	store := &fakeStore{flights: []dataset.Flight{
		{Year: 2023, Month: 3, DayOfMonth: 6, Carrier: "WN", ArrDelay: 20, DelayCost: 500, IsDelayed: true},
		{Year: 2023, Month: 3, DayOfMonth: 7, Carrier: "DL", ArrDelay: -5, DelayCost: 0},
	}}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/weekdays")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("X-Cache"))
	days := body["weekdays"].([]interface{})
	require.Len(t, days, 7)
	monday := days[0].(map[string]interface{})
	assert.Equal(t, "Monday", monday["day"])
	assert.Equal(t, float64(1), monday["flights"])
}

func TestGetWeekdaysMissingDataset(t *testing.T) {
	store := &fakeStore{streamErr: &dataset.MissingFileError{Path: "full_dataset_for_tableau.csv"}}
	deps := newTestDeps(t, store, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/weekdays")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["no_data"])
}

func TestGetVersion(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/version")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "commit")
}

func TestGetInsights(t *testing.T) {
	analyst := &fakeAnalyst{enabled: true}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/insights")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "insight text", body["markdown"])
	assert.Equal(t, true, body["generated"])
	assert.Equal(t, 1, analyst.calls)

	// Cached on the second call.
	w, _ = doGET(t, router, "/api/v1/insights")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, analyst.calls)

	// force=true regenerates.
	w, _ = doGET(t, router, "/api/v1/insights?force=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, analyst.calls)
}

func TestGetInsightsDisabledNotCached(t *testing.T) {
	analyst := &fakeAnalyst{enabled: false}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/api/v1/insights")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["generated"])

	// Fallback results are recomputed, never cached.
	doGET(t, router, "/api/v1/insights")
	assert.Equal(t, 2, analyst.calls)
}

func postChat(t *testing.T, router *gin.Engine, payload string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		body = nil
	}
	return w, body
}

func TestPostChat(t *testing.T) {
	analyst := &fakeAnalyst{enabled: true, answer: "**Answer:**\n\nWN is cheapest."}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	w, body := postChat(t, router, `{"question": "which carrier is cheapest?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["answer"], "WN is cheapest")
	assert.Equal(t, false, body["cached"])

	w, body = postChat(t, router, `{"question": "which carrier is cheapest?"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, body["cached"])
	assert.Equal(t, 1, analyst.calls)
}

func TestPostChatValidation(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, &fakeAnalyst{enabled: true})
	router := newTestRouter(deps)

	w, _ := postChat(t, router, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = postChat(t, router, `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostChatDisabled(t *testing.T) {
	analyst := &fakeAnalyst{enabled: false}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	// No API key is not an error condition: the chat panel shows the
	// setup instructions as a normal answer, and nothing is cached.
	w, body := postChat(t, router, `{"question": "anything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["answer"], "AI Insights Unavailable")
	assert.Equal(t, false, body["cached"])
	assert.Equal(t, 0, analyst.calls)

	w, body = postChat(t, router, `{"question": "anything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, body["cached"])
}

func TestPostChatKeyRemovedMidFlight(t *testing.T) {
	analyst := &fakeAnalyst{enabled: true, answerErr: insights.ErrNoAPIKey}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	w, body := postChat(t, router, `{"question": "anything"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body["answer"], "AI Insights Unavailable")
}

func TestPostChatUpstreamFailure(t *testing.T) {
	analyst := &fakeAnalyst{enabled: true, answerErr: assert.AnError}
	deps := newTestDeps(t, &fakeStore{airlines: testAirlines()}, analyst)
	router := newTestRouter(deps)

	w, body := postChat(t, router, `{"question": "anything"}`)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, body["error"], "unavailable")
}

func TestHealthEndpointWithoutChecker(t *testing.T) {
	deps := newTestDeps(t, &fakeStore{}, &fakeAnalyst{})
	router := newTestRouter(deps)

	w, body := doGET(t, router, "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
}
