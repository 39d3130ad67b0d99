package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("NAVER_CLIENT_ID", "id")
	t.Setenv("NAVER_CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/newsboard")
	for _, key := range []string{
		"MAX_PER_KEYWORD", "KEYWORD_DELAY_SECONDS", "MEDIA_CACHE_TTL_MINUTES",
		"MEDIA_CACHE_SIZE", "MAX_GEMINI_REQUESTS", "DEBUG", "GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPerKeyword != 25 {
		t.Errorf("MaxPerKeyword = %d, want 25", cfg.MaxPerKeyword)
	}
	if cfg.MediaCacheTTL != 30*time.Minute {
		t.Errorf("MediaCacheTTL = %v, want 30m", cfg.MediaCacheTTL)
	}
	if cfg.KeywordDelay != time.Second {
		t.Errorf("KeywordDelay = %v, want 1s", cfg.KeywordDelay)
	}
	if cfg.GeminiAPIKey != "" && os.Getenv("GEMINI_API_KEY") == "" {
		t.Error("GeminiAPIKey should default to empty")
	}
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv("NAVER_CLIENT_ID", "")
	t.Setenv("NAVER_CLIENT_SECRET", "secret")
	t.Setenv("DATABASE_URL", "postgres://localhost/newsboard")

	if _, err := Load(); err == nil {
		t.Fatal("expected validation error for missing NAVER_CLIENT_ID")
	}
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("MAX_PER_KEYWORD", "100")
	t.Setenv("KEYWORD_DELAY_SECONDS", "3")
	t.Setenv("MEDIA_CACHE_TTL_MINUTES", "5")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxPerKeyword != 100 {
		t.Errorf("MaxPerKeyword = %d, want 100", cfg.MaxPerKeyword)
	}
	if cfg.KeywordDelay != 3*time.Second {
		t.Errorf("KeywordDelay = %v, want 3s", cfg.KeywordDelay)
	}
	if cfg.MediaCacheTTL != 5*time.Minute {
		t.Errorf("MediaCacheTTL = %v, want 5m", cfg.MediaCacheTTL)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoadKeywords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	data := "keywords:\n  - 정치\n  - 경제\n  - IT\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	keywords, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	want := []string{"정치", "경제", "IT"}
	if len(keywords) != len(want) {
		t.Fatalf("got %d keywords, want %d", len(keywords), len(want))
	}
	for i := range want {
		if keywords[i] != want[i] {
			t.Errorf("keywords[%d] = %q, want %q", i, keywords[i], want[i])
		}
	}
}

func TestLoadKeywords_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keywords.yaml")
	if err := os.WriteFile(path, []byte("keywords: []\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKeywords(path); err == nil {
		t.Fatal("expected error for empty keyword list")
	}
}
