package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/delaynomics/delaynomics-api/analytics"
	"github.com/delaynomics/delaynomics-api/insights"
	"github.com/delaynomics/delaynomics-api/pkg/cache"
	"github.com/delaynomics/delaynomics-api/pkg/logger"
)

// ChatRequest is the analyst question payload.
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// cachedJSON serves key from the cache when possible. Only model output
// is ever cached: summary-derived payloads are recomputed on every
// request so the dashboard always reflects the files on disk. The dest
// pointer receives the cached value; a false return means compute fresh.
func cachedJSON(c *gin.Context, m *cache.Manager, key string, dest interface{}) bool {
	if m == nil {
		return false
	}
	err := m.GetJSON(c.Request.Context(), key, dest)
	if err == nil {
		c.Header("X-Cache", "HIT")
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logger.WithField("cache_key", key).Warn("Cache get failed", "error", err)
	}
	return false
}

// storeJSON best-effort caches a computed payload.
func storeJSON(c *gin.Context, m *cache.Manager, key string, value interface{}, ttl time.Duration) {
	if m == nil {
		return
	}
	if err := m.SetJSON(c.Request.Context(), key, value, ttl); err != nil {
		logger.WithField("cache_key", key).Warn("Cache set failed", "error", err)
	}
	c.Header("X-Cache", "MISS")
}

// GetInsights returns a handler serving the AI insights panel. Answers
// are cached; force=true regenerates.
func GetInsights(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		force, _ := strconv.ParseBool(c.DefaultQuery("force", "false"))
		key := cache.InsightsKey()

		if !force {
			var cached insights.Result
			if cachedJSON(c, deps.Cache, key, &cached) {
				c.JSON(http.StatusOK, cached)
				return
			}
		}

		airlines, err := deps.Store.Airlines()
		if err != nil {
			respondStoreError(c, err, "Airline summary not available. Run the data pipeline first.")
			return
		}

		result := deps.Analyst.Insights(c.Request.Context(), airlines)
		if result.Generated {
			storeJSON(c, deps.Cache, key, result, cache.InsightsTTL)
		}
		c.JSON(http.StatusOK, result)
	}
}

// PostChat returns a handler answering free-form questions about the
// dataset. Answers are cached by normalized question hash.
func PostChat(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
			return
		}

		// An unconfigured analyst is not an error: the chat panel
		// renders the setup instructions like any other answer.
		if !deps.Analyst.Enabled() {
			c.JSON(http.StatusOK, gin.H{"answer": insights.DisabledMarkdown, "cached": false})
			return
		}

		key := cache.ChatKey(req.Question)
		var cached string
		if cachedJSON(c, deps.Cache, key, &cached) {
			c.JSON(http.StatusOK, gin.H{"answer": cached, "cached": true})
			return
		}

		airlines, err := deps.Store.Airlines()
		if err != nil {
			respondStoreError(c, err, "Airline summary not available. Run the data pipeline first.")
			return
		}

		// Airport and weekday context is best-effort: the analyst can
		// answer carrier questions without them.
		airportRows, err := deps.Store.Airports()
		if err != nil {
			airportRows = nil
		}
		weekdays, err := analytics.WeekdayStats(c.Request.Context(), deps.Store, nil)
		if err != nil {
			weekdays = nil
		}

		answer, err := deps.Analyst.Answer(c.Request.Context(), req.Question, airlines, airportRows, weekdays)
		if err != nil {
			if errors.Is(err, insights.ErrNoAPIKey) {
				c.JSON(http.StatusOK, gin.H{"answer": insights.DisabledMarkdown, "cached": false})
				return
			}
			logger.Error(err, "Chat answer failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": "AI assistant is temporarily unavailable"})
			return
		}

		storeJSON(c, deps.Cache, key, answer, cache.ChatTTL)
		c.JSON(http.StatusOK, gin.H{"answer": answer, "cached": false})
	}
}
