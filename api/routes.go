// Package api exposes the dashboard's read endpoints, the AI analyst,
// and the admin surface over gin.
package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/delaynomics/delaynomics-api/airports"
	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
	"github.com/delaynomics/delaynomics-api/pkg/health"
	"github.com/delaynomics/delaynomics-api/pkg/middleware"
	"github.com/delaynomics/delaynomics-api/pkg/worker_registry"
	"github.com/delaynomics/delaynomics-api/queue"
	"github.com/delaynomics/delaynomics-api/worker"
)

// Store is the slice of the dataset store the handlers consume.
type Store interface {
	Routes() ([]dataset.RouteSummary, error)
	Airlines() ([]dataset.AirlineSummary, error)
	Airports() ([]dataset.AirportSummary, error)
	DailyCosts(ctx context.Context, carriers []string) (map[time.Time]float64, error)
	StreamFlights(ctx context.Context, fn func(dataset.Flight) error) error
}

// Analyst generates AI insights and chat answers.
type Analyst interface {
	Enabled() bool
	Insights(ctx context.Context, airlines []dataset.AirlineSummary) insights.Result
	Answer(ctx context.Context, question string, airlines []dataset.AirlineSummary, airportRows []dataset.AirportSummary, weekdays []analytics.WeekdayStat) (string, error)
}

// Deps carries everything the route handlers need. Cache, Queue,
// Scheduler, and Registry may be nil; the endpoints that need them
// degrade or report unavailable.
type Deps struct {
	Store    Store
	Resolver *airports.Resolver
	Analyst  Analyst
	Cache    *cache.Manager
	Queue    queue.Queue
	Sched    *worker.Scheduler
	Registry *worker_registry.Registry
	Health   *health.HealthChecker
	Cfg      *config.Config
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Deps) {
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())
	router.Use(corsMiddleware(deps.Cfg))

	registerHealthRoutes(router, deps.Health)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/kpis", GetKPIs(deps))
		v1.GET("/airlines", GetAirlines(deps))
		v1.GET("/airports", GetAirports(deps))
		v1.GET("/carriers", GetCarriers())
		v1.GET("/network/map", GetNetworkMap(deps))
		v1.GET("/calendar", GetCalendar(deps))
		v1.GET("/weekdays", GetWeekdays(deps))
		v1.GET("/insights", GetInsights(deps))
		v1.POST("/chat", PostChat(deps))
		v1.GET("/version", GetVersion())

		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(deps.Cfg.AdminAuth))
		{
			admin.POST("/refresh", TriggerRefresh(deps.Queue))
			admin.POST("/insights/refresh", TriggerInsightsRefresh(deps.Queue))
			admin.GET("/queue/stats", GetQueueStats(deps.Queue))
			admin.GET("/jobs", ListJobs(deps.Queue))
			admin.GET("/jobs/:id", GetJob(deps.Queue))
			admin.POST("/jobs/failed/retry", RetryFailedJobs(deps.Queue))
			admin.DELETE("/jobs/failed", ClearFailedJobs(deps.Queue))
			admin.GET("/workers", GetWorkerStatus(deps.Registry))
			admin.GET("/scheduler", GetSchedulerEntries(deps.Sched))
		}
	}
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader}

	origins := "*"
	if cfg != nil && cfg.CORSOrigins != "" {
		origins = cfg.CORSOrigins
	}
	if origins == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = strings.Split(origins, ",")
	}
	return cors.New(corsCfg)
}

func registerHealthRoutes(router *gin.Engine, checker *health.HealthChecker) {
	if checker == nil {
		router.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		return
	}

	report := func(c *gin.Context, r health.HealthReport) {
		status := http.StatusOK
		if r.Status == health.StatusDown {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, r)
	}

	router.GET("/health", func(c *gin.Context) {
		report(c, checker.CheckHealth(c.Request.Context()))
	})
	router.GET("/health/ready", func(c *gin.Context) {
		report(c, checker.CheckReadiness(c.Request.Context()))
	})
	router.GET("/health/live", func(c *gin.Context) {
		report(c, checker.CheckLiveness(c.Request.Context()))
	})
}
