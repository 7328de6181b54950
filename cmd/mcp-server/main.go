package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/delaynomics/delaynomics-api/airports"
	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/carriers"
	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/buildinfo"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	store := dataset.NewStore(cfg.DataConfig)
	coords, _ := store.Coords()
	resolver := airports.NewResolver(coords)

	geminiClient := insights.New(
		cfg.GeminiConfig.APIKey,
		cfg.GeminiConfig.Timeout,
		cfg.GeminiConfig.MaxRetries,
		insights.WithModels(cfg.GeminiConfig.Models),
	)
	analyst := insights.NewAnalyst(geminiClient)

	s := server.NewMCPServer(
		"delaynomics-mcp",
		buildinfo.Version,
		server.WithLogging(),
	)

	registerKPITool(s, store)
	registerNetworkTool(s, store, resolver, cfg)
	registerAnalystTool(s, store, analyst)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
	}
}

func registerKPITool(s *server.MCPServer, store *dataset.Store) {
	tool := mcp.NewTool("get_kpis",
		mcp.WithDescription("Get headline delay-cost KPIs: best and worst carrier by cost per mile, mean delay cost, total flights"),
		mcp.WithString("carriers",
			mcp.Description("Optional comma-separated carrier codes to filter by (e.g. 'WN,DL')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}

		filter := carrierArg(argsMap)
		airlines, err := store.Airlines()
		if err != nil {
			return datasetError(err), nil
		}

		kpis, err := analytics.ComputeKPIs(airlines, filter)
		if err != nil {
			return datasetError(err), nil
		}
		return jsonResult(kpis)
	})
}

func registerNetworkTool(s *server.MCPServer, store *dataset.Store, resolver *airports.Resolver, cfg *config.Config) {
	tool := mcp.NewTool("get_network_routes",
		mcp.WithDescription("Get the sampled delay-cost route network with coordinates and per-airport aggregates"),
		mcp.WithNumber("top_n",
			mcp.Description(fmt.Sprintf("Number of routes to sample (default %d)", cfg.MapConfig.DefaultRoutes)),
		),
		mcp.WithNumber("min_flights",
			mcp.Description(fmt.Sprintf("Minimum flights per route (default %d)", cfg.MapConfig.MinFlights)),
		),
		mcp.WithString("carriers",
			mcp.Description("Optional comma-separated carrier codes to filter by"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}

		topN := cfg.MapConfig.DefaultRoutes
		if v, ok := argsMap["top_n"].(float64); ok && v > 0 {
			topN = int(v)
		}
		minFlights := cfg.MapConfig.MinFlights
		if v, ok := argsMap["min_flights"].(float64); ok && v > 0 {
			minFlights = int(v)
		}

		routes, err := store.Routes()
		if err != nil {
			return datasetError(err), nil
		}

		sampled := analytics.SampleRoutes(routes, analytics.SamplerOptions{
			TopN:       topN,
			Carriers:   carrierArg(argsMap),
			MinFlights: minFlights,
			Seed:       cfg.MapConfig.SamplerSeed,
		})
		network := analytics.BuildNetwork(sampled, resolver)
		if len(network.Routes) == 0 {
			return mcp.NewToolResultText(`{"no_data": true, "message": "No routes match the given filters."}`), nil
		}
		return jsonResult(network)
	})
}

func registerAnalystTool(s *server.MCPServer, store *dataset.Store, analyst *insights.Analyst) {
	tool := mcp.NewTool("ask_analyst",
		mcp.WithDescription("Ask the AI flight delay analyst a free-form question about the dataset"),
		mcp.WithString("question",
			mcp.Description("The question to answer (e.g. 'Which carrier has the worst delays on Fridays?')"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("Invalid arguments format"), nil
		}

		question, _ := argsMap["question"].(string)
		if question == "" {
			return mcp.NewToolResultError("question is required"), nil
		}

		airlines, err := store.Airlines()
		if err != nil {
			return datasetError(err), nil
		}

		// Airport and weekday context is best-effort.
		airportRows, _ := store.Airports()
		weekdays, _ := analytics.WeekdayStats(ctx, store, nil)

		answer, err := analyst.Answer(ctx, question, airlines, airportRows, weekdays)
		if err != nil {
			if errors.Is(err, insights.ErrNoAPIKey) {
				return mcp.NewToolResultError("AI analyst is not configured: set GEMINI_API_KEY"), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Error answering question: %v", err)), nil
		}
		return mcp.NewToolResultText(answer), nil
	})
}

func carrierArg(argsMap map[string]interface{}) []string {
	raw, _ := argsMap["carriers"].(string)
	return carriers.ParseFilter(raw)
}

func datasetError(err error) *mcp.CallToolResult {
	if errors.Is(err, dataset.ErrNoData) {
		return mcp.NewToolResultText(`{"no_data": true, "message": "Dataset not available. Run the data pipeline first."}`)
	}
	return mcp.NewToolResultError(fmt.Sprintf("Error reading dataset: %v", err))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error marshaling response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
