package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaynomics/delaynomics-api/queue"
)

type recordingQueue struct {
	queue.Queue
	mu      sync.Mutex
	entries []string
}

func (q *recordingQueue) Enqueue(ctx context.Context, jobType string, payload interface{}) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.entries = append(q.entries, jobType)
	return jobType + "-1", nil
}

func (q *recordingQueue) enqueued() []string {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]string(nil), q.entries...)
}

func TestSchedulerAddRemove(t *testing.T) {
	s := NewScheduler(&recordingQueue{})

	require.NoError(t, s.AddJob(ScheduledJob{
		Name:     "nightly-combine",
		CronExpr: "0 3 * * *",
		JobType:  queue.JobCombineDataset,
	}))
	require.NoError(t, s.AddJob(ScheduledJob{
		Name:     "insights-prewarm",
		CronExpr: "15 * * * *",
		JobType:  queue.JobInsightsPrewarm,
	}))

	entries := s.Entries()
	require.Len(t, entries, 2)

	names := map[string]string{}
	for _, e := range entries {
		names[e.Name] = e.CronExpr
	}
	assert.Equal(t, "0 3 * * *", names["nightly-combine"])
	assert.Equal(t, "15 * * * *", names["insights-prewarm"])

	s.RemoveJob("nightly-combine")
	assert.Len(t, s.Entries(), 1)
}

func TestSchedulerReplaceJob(t *testing.T) {
	s := NewScheduler(&recordingQueue{})

	require.NoError(t, s.AddJob(ScheduledJob{Name: "j", CronExpr: "0 3 * * *", JobType: queue.JobCombineDataset}))
	require.NoError(t, s.AddJob(ScheduledJob{Name: "j", CronExpr: "0 4 * * *", JobType: queue.JobCombineDataset}))

	entries := s.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "0 4 * * *", entries[0].CronExpr)
}

func TestSchedulerEmptyExprRemoves(t *testing.T) {
	s := NewScheduler(&recordingQueue{})

	require.NoError(t, s.AddJob(ScheduledJob{Name: "j", CronExpr: "0 3 * * *", JobType: queue.JobCombineDataset}))
	require.NoError(t, s.AddJob(ScheduledJob{Name: "j", CronExpr: "", JobType: queue.JobCombineDataset}))
	assert.Empty(t, s.Entries())
}

func TestSchedulerInvalidExpr(t *testing.T) {
	s := NewScheduler(&recordingQueue{})
	assert.Error(t, s.AddJob(ScheduledJob{Name: "j", CronExpr: "not a cron", JobType: queue.JobCombineDataset}))
}

func TestSchedulerFires(t *testing.T) {
	q := &recordingQueue{}
	s := NewScheduler(q)

	// @every fires without waiting for a wall-clock boundary.
	require.NoError(t, s.AddJob(ScheduledJob{
		Name:     "fast",
		CronExpr: "@every 100ms",
		JobType:  queue.JobInsightsPrewarm,
	}))

	require.NoError(t, s.Start())
	defer s.Stop()

	require.Eventually(t, func() bool {
		return len(q.enqueued()) >= 1
	}, 2*time.Second, 20*time.Millisecond)
	assert.Equal(t, queue.JobInsightsPrewarm, q.enqueued()[0])
}
