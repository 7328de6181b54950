package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/delaynomics/delaynomics-api/config"
	"github.com/delaynomics/delaynomics-api/queue"
)

func newAdminRouter(t *testing.T) (*gin.Engine, queue.Queue) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.TestConfig()
	cfg.RedisConfig.QueueBlockTimeout = 50 * time.Millisecond
	q := queue.NewRedisQueueWithClient(client, cfg.RedisConfig)

	deps := Deps{
		Store:   &fakeStore{},
		Analyst: &fakeAnalyst{},
		Queue:   q,
		Cfg:     cfg,
	}
	router := gin.New()
	RegisterRoutes(router, deps)
	return router, q
}

func doRequest(t *testing.T, router *gin.Engine, method, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		body = nil
	}
	return w, body
}

func TestTriggerRefresh(t *testing.T) {
	router, q := newAdminRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/refresh")

	require.Equal(t, http.StatusAccepted, w.Code)
	jobID := body["job_id"].(string)
	assert.NotEmpty(t, jobID)
	assert.Equal(t, queue.JobCombineDataset, body["type"])

	job, err := q.GetJob(context.Background(), jobID)
	require.NoError(t, err)
	assert.Equal(t, queue.JobCombineDataset, job.Type)
	require.NotNil(t, job.EnqueueMeta)
	assert.Equal(t, "http", job.EnqueueMeta.Actor)
	assert.Equal(t, "/api/v1/admin/refresh", job.EnqueueMeta.Path)
}

func TestTriggerInsightsRefreshForce(t *testing.T) {
	router, q := newAdminRouter(t)

	w, body := doRequest(t, router, http.MethodPost, "/api/v1/admin/insights/refresh?force=true")

	require.Equal(t, http.StatusAccepted, w.Code)
	job, err := q.GetJob(context.Background(), body["job_id"].(string))
	require.NoError(t, err)
	assert.Equal(t, queue.JobInsightsPrewarm, job.Type)
	assert.Contains(t, string(job.Payload), `"force":true`)
}

func TestGetQueueStats(t *testing.T) {
	router, q := newAdminRouter(t)

	_, err := q.Enqueue(context.Background(), queue.JobCombineDataset, nil)
	require.NoError(t, err)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/admin/queue/stats")

	require.Equal(t, http.StatusOK, w.Code)
	queues := body["queues"].(map[string]interface{})
	combine := queues[queue.JobCombineDataset].(map[string]interface{})
	assert.Equal(t, float64(1), combine["pending"])
	assert.Contains(t, queues, queue.JobInsightsPrewarm)
}

func TestListJobs(t *testing.T) {
	router, q := newAdminRouter(t)

	id, err := q.Enqueue(context.Background(), queue.JobCombineDataset, nil)
	require.NoError(t, err)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/admin/jobs?state=pending")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["count"])
	first := body["jobs"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, id, first["id"])

	w, _ = doRequest(t, router, http.MethodGet, "/api/v1/admin/jobs?state=bogus")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetJobNotFound(t *testing.T) {
	router, _ := newAdminRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/admin/jobs/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, body["error"], "not found")
}

func TestWorkersUnavailableWithoutRegistry(t *testing.T) {
	router, _ := newAdminRouter(t)

	w, _ := doRequest(t, router, http.MethodGet, "/api/v1/admin/workers")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestSchedulerEntriesEmptyWithoutScheduler(t *testing.T) {
	router, _ := newAdminRouter(t)

	w, body := doRequest(t, router, http.MethodGet, "/api/v1/admin/scheduler")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["count"])
}

func TestAdminEndpointsRequireAuthWhenEnabled(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	cfg := config.TestConfig()
	cfg.AdminAuth = config.AdminAuthConfig{Enabled: true, Token: "secret"}
	q := queue.NewRedisQueueWithClient(client, cfg.RedisConfig)

	router := gin.New()
	RegisterRoutes(router, Deps{Store: &fakeStore{}, Analyst: &fakeAnalyst{}, Queue: q, Cfg: cfg})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/refresh", nil)
	req.Header.Set("Authorization", "Bearer secret")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}
