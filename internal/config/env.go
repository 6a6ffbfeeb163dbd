package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string

	AIAPIKey   string
	GenModel   string
	SerpAPIKey string

	CacheDir string
	CacheTTL time.Duration

	RateLimitMax    int
	RateLimitWindow time.Duration

	MaxChunkChars  int
	SummaryWorkers int
	StageTimeout   time.Duration
}

// LoadConfig loads the environment variables and returns the config
func LoadConfig() *Config {

	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Env:            getEnv("APP_ENV", "dev"),
		LogLevel:       getEnv("LOG_LEVEL", ""),
		AllowedOrigins: strings.Split(getEnv("ALLOWED_ORIGINS", "http://localhost:3000"), ","),

		AIAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GenModel:   getEnv("GEN_MODEL", "gemini-1.5-flash"),
		SerpAPIKey: getEnv("SERPAPI_KEY", ""),

		CacheDir: getEnv("CACHE_DIR", "./cache"),
		CacheTTL: time.Duration(getEnvInt("CACHE_TTL_HOURS", 24)) * time.Hour,

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 10),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,

		MaxChunkChars:  getEnvInt("MAX_CHUNK_CHARS", 1024),
		SummaryWorkers: getEnvInt("SUMMARY_WORKERS", 4),
		StageTimeout:   time.Duration(getEnvInt("STAGE_TIMEOUT_SECONDS", 60)) * time.Second,
	}
}

// CheckEnvironment warns about missing keys for the external services. The
// server still starts; the affected stages will just fall back at runtime.
func (c *Config) CheckEnvironment(log *zap.Logger) {
	if c.AIAPIKey == "" {
		log.Warn("GEMINI_API_KEY not set; summarize/explain/flashcard stages will fail")
	}
	if c.SerpAPIKey == "" {
		log.Warn("SERPAPI_KEY not set; web search stage will fail")
	}
}

// Helper to read environment variables with a default fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, def int) int {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
