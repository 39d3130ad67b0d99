package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config carries every knob the pipeline needs. It is built once in main
// and handed to constructors; components never read the environment
// themselves.
type Config struct {
	// Naver search API
	NaverClientID     string
	NaverClientSecret string
	NaverAPIURL       string

	// Gemini settings
	GeminiAPIKey      string
	MaxGeminiRequests int // per run, 0 = unlimited

	// Database
	DatabaseURL string

	// Ingestion settings
	KeywordsConfigPath string
	MaxPerKeyword      int
	KeywordDelay       time.Duration // pause between keywords

	// Network settings
	RequestTimeout time.Duration // search API calls
	MediaTimeout   time.Duration // origin page fetches
	RetryAttempts  int
	RetryDelay     time.Duration

	// Media cache settings
	MediaCacheTTL  time.Duration
	MediaCacheSize int

	// App settings
	Debug          bool
	MonitoringPort string
	Monitoring     bool
}

func Load() (*Config, error) {
	cfg := &Config{
		NaverAPIURL:        "https://openapi.naver.com/v1/search/news.json",
		KeywordsConfigPath: "configs/keywords.yaml",
		MaxPerKeyword:      25,
		KeywordDelay:       time.Second,
		RequestTimeout:     30 * time.Second,
		MediaTimeout:       10 * time.Second,
		RetryAttempts:      3,
		RetryDelay:         2 * time.Second,
		MediaCacheTTL:      30 * time.Minute,
		MediaCacheSize:     512,
		MonitoringPort:     "8080",
	}

	cfg.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	cfg.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if path := os.Getenv("KEYWORDS_CONFIG_PATH"); path != "" {
		cfg.KeywordsConfigPath = path
	}

	cfg.MaxPerKeyword = getEnvIntOrDefault("MAX_PER_KEYWORD", cfg.MaxPerKeyword)
	cfg.MaxGeminiRequests = getEnvIntOrDefault("MAX_GEMINI_REQUESTS", 0)
	cfg.MediaCacheSize = getEnvIntOrDefault("MEDIA_CACHE_SIZE", cfg.MediaCacheSize)

	if v := os.Getenv("KEYWORD_DELAY_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.KeywordDelay = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("MEDIA_CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MediaCacheTTL = time.Duration(val) * time.Minute
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		cfg.Monitoring = true
	}
	if port := os.Getenv("MONITORING_PORT"); port != "" {
		cfg.MonitoringPort = port
	}

	return cfg, cfg.Validate()
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.NaverClientID == "" {
		return fmt.Errorf("NAVER_CLIENT_ID is required")
	}
	if c.NaverClientSecret == "" {
		return fmt.Errorf("NAVER_CLIENT_SECRET is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	// GeminiAPIKey may be empty: the pipeline then runs with the
	// summarizer in its unavailable-fallback mode.
	if c.MaxPerKeyword <= 0 {
		return fmt.Errorf("MAX_PER_KEYWORD must be positive")
	}
	return nil
}
