package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/dataset"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
	"github.com/delaynomics/delaynomics-api/queue"
)

type fakeStore struct {
	paths    config.DataConfig
	airlines []dataset.AirlineSummary
	err      error
}

func (s fakeStore) Airlines() ([]dataset.AirlineSummary, error) { return s.airlines, s.err }
func (s fakeStore) Paths() config.DataConfig                    { return s.paths }

type fakeAnalyst struct {
	result insights.Result
	calls  int
}

func (a *fakeAnalyst) Insights(ctx context.Context, airlines []dataset.AirlineSummary) insights.Result {
	a.calls++
	return a.result
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func testWorkerConfig() config.WorkerConfig {
	return config.WorkerConfig{
		Concurrency:     1,
		JobTimeout:      5 * time.Second,
		ShutdownTimeout: 2 * time.Second,
	}
}

func TestRunCombine(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airline_ontime_2023_01.csv"),
		[]byte("carrier,origin\nWN,MDW\n"), 0o644))

	paths := config.DataConfig{DataDir: dir, OutputDir: dir}
	m := NewManager(Deps{Store: fakeStore{paths: paths}}, testWorkerConfig(), nil)

	require.NoError(t, m.runCombine(context.Background(), CombinePayload{}))

	data, err := os.ReadFile(paths.CombinedPath())
	require.NoError(t, err)
	assert.Equal(t, "carrier,origin\nWN,MDW\n", string(data))
}

func TestRunCombineNoInputs(t *testing.T) {
	dir := t.TempDir()
	paths := config.DataConfig{DataDir: dir, OutputDir: dir}
	m := NewManager(Deps{Store: fakeStore{paths: paths}}, testWorkerConfig(), nil)

	err := m.runCombine(context.Background(), CombinePayload{})
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrNoData)
}

func TestRunInsightsPrewarm(t *testing.T) {
	client := newTestRedis(t)
	mgr := cache.NewManager(cache.NewRedisCache(client, "test"))
	analyst := &fakeAnalyst{result: insights.Result{Markdown: "three points", Generated: true}}

	m := NewManager(Deps{
		Store:   fakeStore{airlines: []dataset.AirlineSummary{{Carrier: "WN"}}},
		Analyst: analyst,
		Cache:   mgr,
	}, testWorkerConfig(), nil)

	ctx := context.Background()
	require.NoError(t, m.runInsightsPrewarm(ctx, InsightsPrewarmPayload{}))
	assert.Equal(t, 1, analyst.calls)

	var cached insights.Result
	require.NoError(t, mgr.GetJSON(ctx, cache.InsightsKey(), &cached))
	assert.Equal(t, "three points", cached.Markdown)

	// Second run without force skips generation.
	require.NoError(t, m.runInsightsPrewarm(ctx, InsightsPrewarmPayload{}))
	assert.Equal(t, 1, analyst.calls)

	// Force regenerates.
	require.NoError(t, m.runInsightsPrewarm(ctx, InsightsPrewarmPayload{Force: true}))
	assert.Equal(t, 2, analyst.calls)
}

func TestRunInsightsPrewarmStoreError(t *testing.T) {
	m := NewManager(Deps{
		Store:   fakeStore{err: errors.New("no summary")},
		Analyst: &fakeAnalyst{},
	}, testWorkerConfig(), nil)

	err := m.runInsightsPrewarm(context.Background(), InsightsPrewarmPayload{})
	assert.Error(t, err)
}

func TestProcessJobUnknownType(t *testing.T) {
	m := NewManager(Deps{}, testWorkerConfig(), nil)
	err := m.processJob(context.Background(), &queue.Job{Type: "bogus"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown job type")
}

func TestManagerProcessesEnqueuedJob(t *testing.T) {
	client := newTestRedis(t)
	q := queue.NewRedisQueueWithClient(client, config.RedisConfig{
		QueueGroup:             "test_workers",
		QueueStreamPrefix:      "test",
		QueueBlockTimeout:      20 * time.Millisecond,
		QueueVisibilityTimeout: 30 * time.Second,
	})

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "airline_ontime_2023_01.csv"),
		[]byte("carrier\nWN\n"), 0o644))
	paths := config.DataConfig{DataDir: dir, OutputDir: dir}

	m := NewManager(Deps{Queue: q, Store: fakeStore{paths: paths}}, testWorkerConfig(), nil)

	jobID, err := q.Enqueue(context.Background(), queue.JobCombineDataset, nil)
	require.NoError(t, err)

	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool {
		status, err := q.GetJobStatus(context.Background(), jobID)
		return err == nil && status == "completed"
	}, 3*time.Second, 50*time.Millisecond)

	_, err = os.Stat(paths.CombinedPath())
	assert.NoError(t, err)
}
