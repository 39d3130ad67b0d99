package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/deusflow/newsboard/internal/collector"
	"github.com/deusflow/newsboard/internal/config"
	"github.com/deusflow/newsboard/internal/gemini"
	"github.com/deusflow/newsboard/internal/logger"
	"github.com/deusflow/newsboard/internal/media"
	"github.com/deusflow/newsboard/internal/metrics"
	"github.com/deusflow/newsboard/internal/naver"
	"github.com/deusflow/newsboard/internal/ratelimit"
	"github.com/deusflow/newsboard/internal/storage"
	"github.com/deusflow/newsboard/internal/summarize"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Init(false)
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Init(cfg.Debug)

	if cfg.Monitoring {
		go startMonitoringServer(cfg.MonitoringPort)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logger.Error("Run failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	keywords, err := config.LoadKeywords(cfg.KeywordsConfigPath)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer store.Close()

	var model summarize.Model
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			logger.Warn("Gemini client unavailable, articles will be stored without AI summaries", "error", err)
		} else {
			defer client.Close()
			model = client
		}
	} else {
		logger.Warn("GEMINI_API_KEY not set, articles will be stored without AI summaries")
	}
	summarizer := summarize.NewAdapter(model, ratelimit.NewBudget(cfg.MaxGeminiRequests))

	extractor := media.NewExtractor(cfg)
	extractor.SetCacheCounters(metrics.Global.IncrementMediaCacheHits, metrics.Global.IncrementMediaCacheMisses)

	c := collector.New(cfg, collector.NaverSearcher{Client: naver.NewClient(cfg)}, extractor, summarizer, store)
	stats := c.Run(ctx, keywords, cfg.MaxPerKeyword)

	logger.Info("Collection completed", "collected", stats.TotalCollected, "new", stats.TotalNew)

	if counts, err := store.Stats(ctx); err == nil {
		logger.Info("Database totals", "articles", counts["articles"], "keywords", counts["keywords"])
	}
	return nil
}

func startMonitoringServer(port string) {
	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("Starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("Monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
