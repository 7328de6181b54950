package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/pkg/worker_registry"
	"github.com/delaynomics/delaynomics-api/queue"
	"github.com/redis/go-redis/v9"
)

// Status represents the health status of a component
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Check represents a single health check
type Check struct {
	Name      string            `json:"name"`
	Status    Status            `json:"status"`
	Message   string            `json:"message,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Duration  time.Duration     `json:"duration"`
	Timestamp time.Time         `json:"timestamp"`
}

// HealthReport represents the overall health of the application
type HealthReport struct {
	Status    Status           `json:"status"`
	Version   string           `json:"version"`
	Timestamp time.Time        `json:"timestamp"`
	Checks    map[string]Check `json:"checks"`
	Uptime    time.Duration    `json:"uptime"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// DatasetChecker verifies the summary CSV files the dashboard reads
// from are present on disk.
type DatasetChecker struct {
	Paths config.DataConfig
	Name  string
}

func (c *DatasetChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}

	required := []string{
		c.Paths.RouteSummaryPath(),
		c.Paths.AirlineSummaryPath(),
		c.Paths.AirportSummaryPath(),
	}
	var missing []string
	for _, path := range required {
		if _, err := os.Stat(path); err != nil {
			missing = append(missing, filepath.Base(path))
		}
	}
	check.Duration = time.Since(start)

	if len(missing) > 0 {
		check.Status = StatusDown
		check.Message = fmt.Sprintf("Missing dataset files: %v", missing)
		check.Details["data_dir"] = c.Paths.DataDir
	} else {
		check.Status = StatusUp
		check.Message = "Dataset files present"
		check.Details["data_dir"] = c.Paths.DataDir
		if _, err := os.Stat(c.Paths.FullDatasetPath()); err == nil {
			check.Details["full_dataset"] = "present"
		} else {
			check.Details["full_dataset"] = "absent"
		}
	}

	return check
}

// RedisChecker checks Redis connectivity
type RedisChecker struct {
	Client *redis.Client
	Name   string
}

func (c *RedisChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}

	pong, err := c.Client.Ping(ctx).Result()
	duration := time.Since(start)
	check.Duration = duration

	if err != nil {
		check.Status = StatusDown
		check.Message = fmt.Sprintf("Redis connection failed: %v", err)
		check.Details["error"] = err.Error()
	} else {
		check.Status = StatusUp
		check.Message = "Redis connection successful"
		check.Details["response_time"] = duration.String()
		check.Details["ping_response"] = pong
	}

	return check
}

// QueueChecker checks queue connectivity and status
type QueueChecker struct {
	Queue queue.Queue
	Name  string
}

func (c *QueueChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}

	stats, err := c.Queue.GetQueueStats(ctx, queue.JobCombineDataset)
	duration := time.Since(start)
	check.Duration = duration

	if err != nil {
		check.Status = StatusDown
		check.Message = fmt.Sprintf("Queue connectivity check failed: %v", err)
		check.Details["error"] = err.Error()
	} else {
		check.Status = StatusUp
		check.Message = "Queue is operational"
		check.Details["response_time"] = duration.String()
		if pending, ok := stats["pending"]; ok {
			check.Details["pending_jobs"] = fmt.Sprintf("%d", pending)
		}
		if processing, ok := stats["processing"]; ok {
			check.Details["processing_jobs"] = fmt.Sprintf("%d", processing)
		}
	}

	return check
}

// WorkerChecker reports whether any worker has heartbeated recently.
type WorkerChecker struct {
	Registry *worker_registry.Registry
	Window   time.Duration
	Name     string
}

func (c *WorkerChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}

	window := c.Window
	if window <= 0 {
		window = time.Minute
	}
	workers, err := c.Registry.ListActive(ctx, window, 100)
	duration := time.Since(start)
	check.Duration = duration

	if err != nil {
		check.Status = StatusDown
		check.Message = fmt.Sprintf("Worker registry check failed: %v", err)
		check.Details["error"] = err.Error()
	} else if len(workers) == 0 {
		check.Status = StatusDown
		check.Message = "No active workers"
		check.Details["window"] = window.String()
	} else {
		check.Status = StatusUp
		check.Message = fmt.Sprintf("%d active workers", len(workers))
		check.Details["active_workers"] = fmt.Sprintf("%d", len(workers))
	}

	return check
}

// InsightsChecker reports whether the Gemini integration is configured.
// It never calls the API, so an upstream outage cannot flip the overall
// status.
type InsightsChecker struct {
	Config config.GeminiConfig
	Name   string
}

func (c *InsightsChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:      c.Name,
		Timestamp: start,
		Details:   make(map[string]string),
	}
	check.Duration = time.Since(start)

	check.Status = StatusUp
	if c.Config.Enabled() {
		check.Message = "AI insights configured"
		check.Details["models"] = fmt.Sprintf("%d", len(c.Config.Models))
	} else {
		check.Message = "AI insights disabled (no API key)"
		check.Details["configured"] = "false"
	}

	return check
}

// HealthChecker orchestrates multiple health checks
type HealthChecker struct {
	checkers  []Checker
	version   string
	startTime time.Time
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(version string) *HealthChecker {
	return &HealthChecker{
		checkers:  make([]Checker, 0),
		version:   version,
		startTime: time.Now(),
	}
}

// AddChecker adds a health checker
func (h *HealthChecker) AddChecker(checker Checker) {
	h.checkers = append(h.checkers, checker)
}

// CheckHealth performs all health checks
func (h *HealthChecker) CheckHealth(ctx context.Context) HealthReport {
	checks := make(map[string]Check)
	overallStatus := StatusUp

	for _, checker := range h.checkers {
		check := checker.Check(ctx)
		checks[check.Name] = check

		// If any check fails, overall status is down
		if check.Status == StatusDown {
			overallStatus = StatusDown
		}
	}

	return HealthReport{
		Status:    overallStatus,
		Version:   h.version,
		Timestamp: time.Now(),
		Checks:    checks,
		Uptime:    time.Since(h.startTime),
	}
}

// CheckReadiness performs readiness checks (subset of health checks)
func (h *HealthChecker) CheckReadiness(ctx context.Context) HealthReport {
	// The API can serve traffic as long as the dataset and Redis are
	// reachable. Worker and insights problems degrade, not block.
	readinessCheckers := make([]Checker, 0)
	for _, checker := range h.checkers {
		switch checker.(type) {
		case *DatasetChecker, *RedisChecker:
			readinessCheckers = append(readinessCheckers, checker)
		}
	}

	checks := make(map[string]Check)
	overallStatus := StatusUp

	for _, checker := range readinessCheckers {
		check := checker.Check(ctx)
		checks[check.Name] = check

		if check.Status == StatusDown {
			overallStatus = StatusDown
		}
	}

	return HealthReport{
		Status:    overallStatus,
		Version:   h.version,
		Timestamp: time.Now(),
		Checks:    checks,
		Uptime:    time.Since(h.startTime),
	}
}

// CheckLiveness performs liveness checks (basic application health)
func (h *HealthChecker) CheckLiveness(ctx context.Context) HealthReport {
	return HealthReport{
		Status:    StatusUp,
		Version:   h.version,
		Timestamp: time.Now(),
		Checks: map[string]Check{
			"application": {
				Name:      "application",
				Status:    StatusUp,
				Message:   "Application is running",
				Timestamp: time.Now(),
				Duration:  0,
			},
		},
		Uptime: time.Since(h.startTime),
	}
}
