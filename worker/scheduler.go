package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/delaynomics/delaynomics-api/pkg/logger"
	"github.com/delaynomics/delaynomics-api/queue"
)

// ScheduledJob is one recurring enqueue: a cron expression and the job
// it produces when fired.
type ScheduledJob struct {
	Name     string
	CronExpr string
	JobType  string
	Payload  interface{}
}

// Entry is the admin-facing view of one scheduled job.
type Entry struct {
	Name     string    `json:"name"`
	CronExpr string    `json:"cron"`
	JobType  string    `json:"job_type"`
	NextRun  time.Time `json:"next_run"`
}

// Scheduler fires recurring jobs into the queue on cron schedules.
type Scheduler struct {
	queue queue.Queue
	cron  *cron.Cron

	mutex sync.Mutex
	jobs  map[string]cron.EntryID
	specs map[string]ScheduledJob
}

// NewScheduler creates a new scheduler
func NewScheduler(q queue.Queue) *Scheduler {
	return &Scheduler{
		queue: q,
		cron:  cron.New(),
		jobs:  make(map[string]cron.EntryID),
		specs: make(map[string]ScheduledJob),
	}
}

// Start starts the cron loop. Jobs registered later are picked up
// automatically.
func (s *Scheduler) Start() error {
	s.cron.Start()
	logger.Info("scheduler started")
	return nil
}

// Stop stops the scheduler and waits for in-flight fires to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("scheduler stopped")
}

// AddJob registers or replaces a named recurring job. An empty cron
// expression removes the job.
func (s *Scheduler) AddJob(job ScheduledJob) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if entryID, exists := s.jobs[job.Name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, job.Name)
		delete(s.specs, job.Name)
	}

	if job.CronExpr == "" {
		return nil
	}

	entryID, err := s.cron.AddFunc(job.CronExpr, func() {
		s.fire(job)
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job %s: %w", job.Name, err)
	}

	s.jobs[job.Name] = entryID
	s.specs[job.Name] = job
	logger.Info("scheduled job", "name", job.Name, "cron", job.CronExpr, "type", job.JobType)

	return nil
}

// RemoveJob removes a job from the scheduler
func (s *Scheduler) RemoveJob(name string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if entryID, exists := s.jobs[name]; exists {
		s.cron.Remove(entryID)
		delete(s.jobs, name)
		delete(s.specs, name)
		logger.Info("removed scheduled job", "name", name)
	}
}

// Entries returns the registered jobs with their next fire times.
func (s *Scheduler) Entries() []Entry {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	out := make([]Entry, 0, len(s.jobs))
	for name, entryID := range s.jobs {
		spec := s.specs[name]
		out = append(out, Entry{
			Name:     name,
			CronExpr: spec.CronExpr,
			JobType:  spec.JobType,
			NextRun:  s.cron.Entry(entryID).Next,
		})
	}
	return out
}

// fire enqueues one occurrence of a scheduled job.
func (s *Scheduler) fire(job ScheduledJob) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	ctx = queue.WithEnqueueMeta(ctx, queue.EnqueueMeta{Actor: "scheduler"})
	jobID, err := s.queue.Enqueue(ctx, job.JobType, job.Payload)
	if err != nil {
		logger.Error(err, "failed to enqueue scheduled job", "name", job.Name)
		return
	}
	logger.Info("enqueued scheduled job", "name", job.Name, "job_id", jobID)
}
