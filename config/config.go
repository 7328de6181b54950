package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Port          string
	HTTPBindAddr  string
	Environment   string
	CORSOrigins   string
	LoggingConfig LoggingConfig
	DataConfig    DataConfig
	MapConfig     MapConfig
	GeminiConfig  GeminiConfig
	RedisConfig   RedisConfig
	WorkerConfig  WorkerConfig
	NTFYConfig    NTFYConfig
	AdminAuth     AdminAuthConfig
	CacheEnabled  bool
	WorkerEnabled bool
}

// AdminAuthConfig holds credentials for the admin API. When Enabled is
// false every admin request passes through.
type AdminAuthConfig struct {
	Enabled  bool
	Username string
	Password string
	Token    string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// DataConfig holds the locations of the flat-file dataset.
// DataDir holds raw monthly inputs and the optional airport coordinate
// table; OutputDir holds the pre-aggregated summary CSVs.
type DataConfig struct {
	DataDir   string
	OutputDir string
}

// RouteSummaryPath returns the path to the per-route summary CSV.
func (d DataConfig) RouteSummaryPath() string {
	return filepath.Join(d.OutputDir, "route_summary.csv")
}

// AirlineSummaryPath returns the path to the per-carrier summary CSV.
func (d DataConfig) AirlineSummaryPath() string {
	return filepath.Join(d.OutputDir, "airline_summary.csv")
}

// AirportSummaryPath returns the path to the per-airport summary CSV.
func (d DataConfig) AirportSummaryPath() string {
	return filepath.Join(d.OutputDir, "airport_summary.csv")
}

// FullDatasetPath returns the path to the per-flight dataset CSV.
func (d DataConfig) FullDatasetPath() string {
	return filepath.Join(d.OutputDir, "full_dataset_for_tableau.csv")
}

// CoordsPath returns the path to the optional airport coordinates CSV.
func (d DataConfig) CoordsPath() string {
	return filepath.Join(d.DataDir, "airport_coords.csv")
}

// CombinedPath returns the path the dataset combiner writes to.
func (d DataConfig) CombinedPath() string {
	return filepath.Join(d.DataDir, "airline_ontime.csv")
}

// MapConfig holds network-map sampling configuration
type MapConfig struct {
	DefaultRoutes int
	MinFlights    int
	SamplerSeed   int64
}

// GeminiConfig holds Gemini API configuration. An empty APIKey disables
// AI features; everything degrades to deterministic fallbacks.
type GeminiConfig struct {
	APIKey           string
	Models           []string
	Timeout          time.Duration
	MaxRetries       int
	InsightsSchedule string
}

// Enabled reports whether the Gemini integration is configured.
func (g GeminiConfig) Enabled() bool {
	return g.APIKey != ""
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host                   string
	Port                   string
	Password               string
	DB                     int
	QueueGroup             string
	QueueStreamPrefix      string
	QueueBlockTimeout      time.Duration
	QueueVisibilityTimeout time.Duration
}

// Addr returns the host:port address for the Redis client.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	Concurrency     int
	MaxRetries      int
	RetryDelay      time.Duration
	JobTimeout      time.Duration
	ShutdownTimeout time.Duration
	CombineSchedule string
}

// NTFYConfig holds NTFY push notification configuration
type NTFYConfig struct {
	ServerURL string
	Topic     string
	Username  string
	Password  string
	Enabled   bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	port := getEnv("PORT", "8080")
	httpBindAddr := getEnv("HTTP_BIND_ADDR", "")
	environment := getEnv("ENVIRONMENT", "development")
	corsOrigins := getEnv("CORS_ORIGINS", "*")
	cacheEnabled, _ := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	workerEnabled, _ := strconv.ParseBool(getEnv("WORKER_ENABLED", "true"))

	loggingConfig := LoggingConfig{
		Level:  getEnv("LOG_LEVEL", "info"),
		Format: getEnv("LOG_FORMAT", "json"),
	}

	dataConfig := DataConfig{
		DataDir:   getEnv("DATA_DIR", "data"),
		OutputDir: getEnv("OUTPUT_DIR", "outputs"),
	}

	defaultRoutes, _ := strconv.Atoi(getEnv("MAP_DEFAULT_ROUTES", "300"))
	if defaultRoutes < 1 {
		defaultRoutes = 300
	}
	minFlights, _ := strconv.Atoi(getEnv("MAP_MIN_FLIGHTS", "25"))
	samplerSeed, err := strconv.ParseInt(getEnv("MAP_SAMPLER_SEED", "42"), 10, 64)
	if err != nil {
		samplerSeed = 42
	}

	mapConfig := MapConfig{
		DefaultRoutes: defaultRoutes,
		MinFlights:    minFlights,
		SamplerSeed:   samplerSeed,
	}

	geminiTimeout, err := time.ParseDuration(getEnv("GEMINI_TIMEOUT", "30s"))
	if err != nil {
		geminiTimeout = 30 * time.Second
	}
	geminiRetries, _ := strconv.Atoi(getEnv("GEMINI_MAX_RETRIES", "3"))
	geminiModels := splitList(getEnv("GEMINI_MODELS", "gemini-2.0-flash-exp,gemini-1.5-flash,gemini-1.5-pro"))

	geminiConfig := GeminiConfig{
		APIKey:           getEnv("GEMINI_API_KEY", ""),
		Models:           geminiModels,
		Timeout:          geminiTimeout,
		MaxRetries:       geminiRetries,
		InsightsSchedule: getEnv("INSIGHTS_PREWARM_SCHEDULE", ""),
	}

	queueBlockTimeout, err := time.ParseDuration(getEnv("REDIS_QUEUE_BLOCK_TIMEOUT", "5s"))
	if err != nil {
		queueBlockTimeout = 5 * time.Second
	}
	queueVisibilityTimeout, err := time.ParseDuration(getEnv("REDIS_QUEUE_VISIBILITY_TIMEOUT", "2m"))
	if err != nil {
		queueVisibilityTimeout = 2 * time.Minute
	}
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	redisConfig := RedisConfig{
		Host:                   getEnv("REDIS_HOST", "redis"),
		Port:                   getEnv("REDIS_PORT", "6379"),
		Password:               getEnv("REDIS_PASSWORD", ""),
		DB:                     redisDB,
		QueueGroup:             getEnv("REDIS_QUEUE_GROUP", "delaynomics_workers"),
		QueueStreamPrefix:      getEnv("REDIS_QUEUE_STREAM_PREFIX", "delaynomics"),
		QueueBlockTimeout:      queueBlockTimeout,
		QueueVisibilityTimeout: queueVisibilityTimeout,
	}

	concurrency, _ := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "2"))
	maxRetries, _ := strconv.Atoi(getEnv("WORKER_MAX_RETRIES", "3"))
	retryDelay, _ := time.ParseDuration(getEnv("WORKER_RETRY_DELAY", "30s"))
	jobTimeout, _ := time.ParseDuration(getEnv("WORKER_JOB_TIMEOUT", "10m"))
	shutdownTimeout, _ := time.ParseDuration(getEnv("WORKER_SHUTDOWN_TIMEOUT", "30s"))

	workerConfig := WorkerConfig{
		Concurrency:     concurrency,
		MaxRetries:      maxRetries,
		RetryDelay:      retryDelay,
		JobTimeout:      jobTimeout,
		ShutdownTimeout: shutdownTimeout,
		CombineSchedule: getEnv("COMBINE_SCHEDULE", ""),
	}

	adminAuthEnabled, _ := strconv.ParseBool(getEnv("ADMIN_AUTH_ENABLED", "false"))
	adminAuth := AdminAuthConfig{
		Enabled:  adminAuthEnabled,
		Username: getEnv("ADMIN_USERNAME", ""),
		Password: getEnv("ADMIN_PASSWORD", ""),
		Token:    getEnv("ADMIN_TOKEN", ""),
	}

	ntfyEnabled, _ := strconv.ParseBool(getEnv("NTFY_ENABLED", "false"))
	ntfyConfig := NTFYConfig{
		ServerURL: getEnv("NTFY_SERVER_URL", "https://ntfy.sh"),
		Topic:     getEnv("NTFY_TOPIC", ""),
		Username:  getEnv("NTFY_USERNAME", ""),
		Password:  getEnv("NTFY_PASSWORD", ""),
		Enabled:   ntfyEnabled,
	}

	return &Config{
		Port:          port,
		HTTPBindAddr:  httpBindAddr,
		Environment:   environment,
		CORSOrigins:   corsOrigins,
		LoggingConfig: loggingConfig,
		DataConfig:    dataConfig,
		MapConfig:     mapConfig,
		GeminiConfig:  geminiConfig,
		RedisConfig:   redisConfig,
		WorkerConfig:  workerConfig,
		NTFYConfig:    ntfyConfig,
		AdminAuth:     adminAuth,
		CacheEnabled:  cacheEnabled,
		WorkerEnabled: workerEnabled,
	}, nil
}

// LoadTestConfig loads test configuration
func LoadTestConfig() *Config {
	return &Config{
		Environment: "test",
		DataConfig: DataConfig{
			DataDir:   getEnv("DATA_DIR", "testdata"),
			OutputDir: getEnv("OUTPUT_DIR", "testdata"),
		},
		MapConfig: MapConfig{
			DefaultRoutes: 300,
			MinFlights:    25,
			SamplerSeed:   42,
		},
		RedisConfig: RedisConfig{
			Host:                   getEnv("REDIS_HOST", "localhost"),
			Port:                   getEnv("REDIS_PORT", "6379"),
			QueueGroup:             getEnv("REDIS_QUEUE_GROUP", "delaynomics_workers"),
			QueueStreamPrefix:      getEnv("REDIS_QUEUE_STREAM_PREFIX", "delaynomics"),
			QueueBlockTimeout:      5 * time.Second,
			QueueVisibilityTimeout: 2 * time.Minute,
		},
		WorkerConfig: WorkerConfig{
			Concurrency:     1,
			MaxRetries:      3,
			RetryDelay:      time.Second,
			JobTimeout:      time.Minute,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// TestConfig returns a default test configuration
func TestConfig() *Config {
	cfg := LoadTestConfig()
	cfg.WorkerEnabled = false
	return cfg
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if len(strings.TrimSpace(value)) == 0 {
		return defaultValue
	}
	return strings.TrimSpace(value)
}

// splitList splits a comma-separated env value into trimmed, non-empty items.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
