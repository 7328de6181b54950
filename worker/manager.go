// Package worker runs the background job pool: dequeueing dataset
// combine and insight prewarm jobs from Redis, executing them, and
// publishing heartbeats for the admin status endpoint.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/buildinfo"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
	"github.com/delaynomics/delaynomics-api/pkg/logger"
	"github.com/delaynomics/delaynomics-api/pkg/notify"
	"github.com/delaynomics/delaynomics-api/pkg/worker_registry"
	"github.com/delaynomics/delaynomics-api/queue"
)

const heartbeatInterval = 15 * time.Second

// Queues lists the job streams the pool drains, in polling order.
var Queues = []string{queue.JobCombineDataset, queue.JobInsightsPrewarm}

// AirlineLoader is the slice of the dataset store the insight prewarm
// job needs.
type AirlineLoader interface {
	Airlines() ([]dataset.AirlineSummary, error)
	Paths() config.DataConfig
}

// InsightsGenerator produces the cached insight payload.
type InsightsGenerator interface {
	Insights(ctx context.Context, airlines []dataset.AirlineSummary) insights.Result
}

// Deps are the collaborators a Manager needs. Cache, Notifier, and
// Registry may be nil; the corresponding side effects are skipped.
type Deps struct {
	Queue    queue.Queue
	Store    AirlineLoader
	Analyst  InsightsGenerator
	Cache    *cache.Manager
	Notifier *notify.NTFYClient
	Registry *worker_registry.Registry
}

// Manager manages a pool of workers
type Manager struct {
	deps      Deps
	config    config.WorkerConfig
	scheduler *Scheduler

	stopChan chan struct{}
	workerWg sync.WaitGroup

	mu        sync.Mutex
	processed int
	current   string
	startedAt time.Time
	workerID  string
}

// NewManager creates a new worker manager
func NewManager(deps Deps, cfg config.WorkerConfig, scheduler *Scheduler) *Manager {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "worker"
	}
	return &Manager{
		deps:      deps,
		config:    cfg,
		scheduler: scheduler,
		stopChan:  make(chan struct{}),
		workerID:  fmt.Sprintf("%s-%d", hostname, os.Getpid()),
	}
}

// Start starts the worker pool and scheduler
func (m *Manager) Start() {
	logger.Info("starting worker pool", "concurrency", m.config.Concurrency)

	m.mu.Lock()
	m.startedAt = time.Now().UTC()
	m.mu.Unlock()

	for i := 0; i < m.config.Concurrency; i++ {
		m.workerWg.Add(1)
		go m.runWorker(i)
	}

	if m.deps.Registry != nil {
		m.workerWg.Add(1)
		go m.runHeartbeat()
	}

	if m.scheduler != nil {
		if err := m.scheduler.Start(); err != nil {
			logger.Error(err, "failed to start scheduler")
		}
	}
}

// Stop stops the worker pool and scheduler
func (m *Manager) Stop() {
	logger.Info("stopping worker pool")

	if m.scheduler != nil {
		m.scheduler.Stop()
	}

	close(m.stopChan)

	done := make(chan struct{})
	go func() {
		m.workerWg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Info("all workers stopped gracefully")
	case <-time.After(m.config.ShutdownTimeout):
		logger.Warn("worker shutdown timed out")
	}
}

// GetScheduler returns the scheduler instance
func (m *Manager) GetScheduler() *Scheduler {
	return m.scheduler
}

// runWorker polls each queue in turn until stopped.
func (m *Manager) runWorker(id int) {
	defer m.workerWg.Done()
	logger.Debug("worker started", "worker", id)

	for {
		select {
		case <-m.stopChan:
			logger.Debug("worker stopping", "worker", id)
			return
		default:
			for _, queueName := range Queues {
				if err := m.processQueue(queueName); err != nil {
					logger.Error(err, "queue processing error", "worker", id, "queue", queueName)
				}
			}
			time.Sleep(100 * time.Millisecond)
		}
	}
}

// processQueue dequeues and runs at most one job from the named queue.
func (m *Manager) processQueue(queueName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), m.config.JobTimeout)
	defer cancel()

	job, err := m.deps.Queue.Dequeue(ctx, queueName)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil
		}
		return fmt.Errorf("failed to dequeue job: %w", err)
	}
	if job == nil {
		return nil
	}

	logger.Info("processing job", "queue", queueName, "job_id", job.ID, "attempt", job.Attempts)
	m.setCurrent(job.ID)
	defer m.setCurrent("")

	if err := m.processJob(ctx, job); err != nil {
		logger.Error(err, "job failed", "job_id", job.ID)
		if job.Attempts >= job.MaxAttempts && m.deps.Notifier != nil {
			_ = m.deps.Notifier.AlertJobFailed(job.Type, job.ID, err)
		}
		if nackErr := m.deps.Queue.Nack(ctx, queueName, job.ID); nackErr != nil {
			logger.Error(nackErr, "failed to nack job", "job_id", job.ID)
		}
		return fmt.Errorf("failed to process job: %w", err)
	}

	if ackErr := m.deps.Queue.Ack(ctx, queueName, job.ID); ackErr != nil {
		return fmt.Errorf("failed to ack job: %w", ackErr)
	}

	m.mu.Lock()
	m.processed++
	m.mu.Unlock()

	logger.Info("completed job", "queue", queueName, "job_id", job.ID)
	return nil
}

// processJob dispatches a job by type.
func (m *Manager) processJob(ctx context.Context, job *queue.Job) error {
	switch job.Type {
	case queue.JobCombineDataset:
		var payload CombinePayload
		if len(job.Payload) > 0 {
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return fmt.Errorf("failed to unmarshal combine payload: %w", err)
			}
		}
		return m.runCombine(ctx, payload)

	case queue.JobInsightsPrewarm:
		var payload InsightsPrewarmPayload
		if len(job.Payload) > 0 {
			if err := json.Unmarshal(job.Payload, &payload); err != nil {
				return fmt.Errorf("failed to unmarshal prewarm payload: %w", err)
			}
		}
		return m.runInsightsPrewarm(ctx, payload)

	default:
		return fmt.Errorf("unknown job type: %s", job.Type)
	}
}

// runCombine merges the monthly input files into the combined dataset
// and flushes cached model output, which was prompted with the old data.
func (m *Manager) runCombine(ctx context.Context, payload CombinePayload) error {
	paths := m.deps.Store.Paths()
	dir := payload.DataDir
	if dir == "" {
		dir = paths.DataDir
	}
	out := payload.Output
	if out == "" {
		out = paths.CombinedPath()
	}

	start := time.Now()
	result, err := dataset.Combine(dir, out)
	if err != nil {
		if m.deps.Notifier != nil {
			_ = m.deps.Notifier.AlertCombineFailed(err)
		}
		return fmt.Errorf("combine %s: %w", dir, err)
	}

	logger.Info("combined dataset",
		"inputs", len(result.Inputs), "rows", result.TotalRows, "output", result.Output)

	if m.deps.Cache != nil {
		if err := m.deps.Cache.Clear(ctx); err != nil {
			logger.Error(err, "failed to clear cache after combine")
		}
	}
	if m.deps.Notifier != nil {
		_ = m.deps.Notifier.AlertCombineComplete(len(result.Inputs), result.TotalRows, time.Since(start))
	}
	return nil
}

// runInsightsPrewarm generates the insight payload off the request path
// and caches it so the dashboard's first paint never waits on the model.
func (m *Manager) runInsightsPrewarm(ctx context.Context, payload InsightsPrewarmPayload) error {
	if m.deps.Cache != nil && !payload.Force {
		exists, err := m.deps.Cache.Exists(ctx, cache.InsightsKey())
		if err == nil && exists {
			logger.Debug("insights already cached, skipping prewarm")
			return nil
		}
	}

	airlines, err := m.deps.Store.Airlines()
	if err != nil {
		return fmt.Errorf("load airline summary: %w", err)
	}

	result := m.deps.Analyst.Insights(ctx, airlines)

	if m.deps.Cache != nil {
		if err := m.deps.Cache.SetJSON(ctx, cache.InsightsKey(), result, cache.InsightsTTL); err != nil {
			return fmt.Errorf("cache insights: %w", err)
		}
	}
	if m.deps.Notifier != nil {
		_ = m.deps.Notifier.AlertInsightsRefreshed(result.Generated)
	}
	return nil
}

func (m *Manager) setCurrent(jobID string) {
	m.mu.Lock()
	m.current = jobID
	m.mu.Unlock()
}

// runHeartbeat publishes this process's status to the worker registry
// until the pool stops.
func (m *Manager) runHeartbeat() {
	defer m.workerWg.Done()

	ticker := time.NewTicker(heartbeatInterval)
	defer ticker.Stop()

	publish := func(status string) {
		m.mu.Lock()
		hb := worker_registry.WorkerHeartbeat{
			ID:            m.workerID,
			Hostname:      m.workerID,
			Status:        status,
			Queues:        Queues,
			CurrentJob:    m.current,
			ProcessedJobs: m.processed,
			Concurrency:   m.config.Concurrency,
			StartedAt:     m.startedAt,
			LastHeartbeat: time.Now().UTC(),
			Version:       buildinfo.Version,
		}
		m.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := m.deps.Registry.Publish(ctx, hb, heartbeatInterval*3); err != nil {
			logger.Debug("heartbeat publish failed", "error", err)
		}
	}

	publish("active")
	for {
		select {
		case <-m.stopChan:
			publish("stopping")
			return
		case <-ticker.C:
			publish("active")
		}
	}
}
