package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/delaynomics/delaynomics-api/pkg/middleware"
	"github.com/delaynomics/delaynomics-api/pkg/worker_registry"
	"github.com/delaynomics/delaynomics-api/queue"
	"github.com/delaynomics/delaynomics-api/worker"
)

// activeWorkerWindow bounds how stale a heartbeat may be before a
// worker drops out of the admin listing.
const activeWorkerWindow = time.Minute

func enqueueMetaContext(c *gin.Context) context.Context {
	return queue.WithEnqueueMeta(c.Request.Context(), queue.EnqueueMeta{
		Actor:     "http",
		RequestID: middleware.GetRequestID(c),
		Method:    c.Request.Method,
		Path:      c.Request.URL.Path,
	})
}

// TriggerRefresh returns a handler that enqueues a dataset combine job.
func TriggerRefresh(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		jobID, err := q.Enqueue(enqueueMetaContext(c), queue.JobCombineDataset, worker.CombinePayload{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue job: " + err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": jobID, "type": queue.JobCombineDataset, "status": "pending"})
	}
}

// TriggerInsightsRefresh returns a handler that enqueues an insights
// prewarm job. force=true regenerates even when a cached copy exists.
func TriggerInsightsRefresh(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		payload := worker.InsightsPrewarmPayload{Force: c.DefaultQuery("force", "false") == "true"}
		jobID, err := q.Enqueue(enqueueMetaContext(c), queue.JobInsightsPrewarm, payload)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to enqueue job: " + err.Error()})
			return
		}
		c.JSON(http.StatusAccepted, gin.H{"job_id": jobID, "type": queue.JobInsightsPrewarm, "status": "pending"})
	}
}

// GetQueueStats returns a handler reporting per-queue depth counters.
func GetQueueStats(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		stats := make(map[string]map[string]int64, len(worker.Queues))
		for _, name := range worker.Queues {
			s, err := q.GetQueueStats(c.Request.Context(), name)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get queue stats: " + err.Error()})
				return
			}
			stats[name] = s
		}
		c.JSON(http.StatusOK, gin.H{"queues": stats})
	}
}

// ListJobs returns a handler listing jobs by state, most recent first.
func ListJobs(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		queueName := c.DefaultQuery("queue", queue.JobCombineDataset)
		state := c.DefaultQuery("state", "pending")
		limit, ok := intQuery(c, "limit", 50)
		if !ok {
			return
		}
		offset := 0
		if raw := c.Query("offset"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter: must be a non-negative integer"})
				return
			}
			offset = n
		}

		jobs, err := q.ListJobs(c.Request.Context(), queueName, state, limit, offset)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"jobs": jobs, "count": len(jobs), "state": state})
	}
}

// GetJob returns a handler fetching one job by ID.
func GetJob(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		job, err := q.GetJob(c.Request.Context(), c.Param("id"))
		if err != nil {
			if errors.Is(err, redis.Nil) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get job: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, job)
	}
}

// RetryFailedJobs returns a handler re-enqueueing failed jobs.
func RetryFailedJobs(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		queueName := c.DefaultQuery("queue", queue.JobCombineDataset)
		limit, ok := intQuery(c, "limit", 50)
		if !ok {
			return
		}

		retried, err := q.RetryFailed(c.Request.Context(), queueName, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retry jobs: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"retried": retried, "queue": queueName})
	}
}

// ClearFailedJobs returns a handler dropping all failed jobs.
func ClearFailedJobs(q queue.Queue) gin.HandlerFunc {
	return func(c *gin.Context) {
		if q == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job queue is not available"})
			return
		}

		queueName := c.DefaultQuery("queue", queue.JobCombineDataset)
		cleared, err := q.ClearFailed(c.Request.Context(), queueName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear jobs: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": cleared, "queue": queueName})
	}
}

// GetWorkerStatus returns a handler listing recently heartbeating
// workers.
func GetWorkerStatus(registry *worker_registry.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if registry == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Worker registry is not available"})
			return
		}

		workers, err := registry.ListActive(c.Request.Context(), activeWorkerWindow, 100)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list workers: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"workers": workers, "count": len(workers)})
	}
}

// GetSchedulerEntries returns a handler listing scheduled jobs with
// their next run times.
func GetSchedulerEntries(sched *worker.Scheduler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sched == nil {
			c.JSON(http.StatusOK, gin.H{"entries": []worker.Entry{}, "count": 0})
			return
		}

		entries := sched.Entries()
		c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
	}
}
