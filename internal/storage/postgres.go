// Package storage persists articles and their keyword associations in
// PostgreSQL. One article plus its keyword links is one transaction.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/lib/pq"

	"github.com/deusflow/newsboard/internal/news"
)

// ErrConflict marks a write that lost to an already-persisted duplicate.
// Callers treat it as "already have this one", not as a failure.
var ErrConflict = errors.New("duplicate record")

type Store struct {
	db *sql.DB
}

func New(databaseURL string) (*Store, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("postgres store connected")
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS news_articles (
		id BIGSERIAL PRIMARY KEY,
		title VARCHAR(500) NOT NULL,
		content TEXT,
		summary TEXT,
		ai_summary TEXT,
		short_ai_summary VARCHAR(50),
		url VARCHAR(1000) UNIQUE NOT NULL,
		origin_url VARCHAR(1000),
		media_urls JSONB DEFAULT '{"images": [], "videos": []}',
		source VARCHAR(100),
		category VARCHAR(50),
		pub_date TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_news_articles_url ON news_articles(url);
	CREATE INDEX IF NOT EXISTS idx_news_articles_category ON news_articles(category);
	CREATE INDEX IF NOT EXISTS idx_news_articles_source ON news_articles(source);
	CREATE INDEX IF NOT EXISTS idx_news_articles_pub_date ON news_articles(pub_date);
	CREATE INDEX IF NOT EXISTS idx_news_articles_created_at ON news_articles(created_at);

	CREATE TABLE IF NOT EXISTS keywords (
		id SERIAL PRIMARY KEY,
		keyword VARCHAR(100) UNIQUE NOT NULL,
		frequency INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_keywords_frequency ON keywords(frequency);

	CREATE TABLE IF NOT EXISTS news_keywords (
		news_id BIGINT NOT NULL REFERENCES news_articles(id) ON DELETE CASCADE,
		keyword_id INTEGER NOT NULL REFERENCES keywords(id) ON DELETE CASCADE,
		relevance FLOAT NOT NULL DEFAULT 1.0,
		PRIMARY KEY (news_id, keyword_id)
	);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Exists reports whether an article with this canonical URL is already
// persisted.
func (s *Store) Exists(ctx context.Context, url string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM news_articles WHERE url = $1`, url).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking url existence: %w", err)
	}
	return true, nil
}

// SaveArticle writes the article and links its keywords in a single
// transaction. Keyword rows are created on first occurrence and their
// frequency incremented on every later occurrence; an already-present
// link is a no-op. Any failure rolls the whole article back, including
// the frequency increments. A duplicate URL surfaces as ErrConflict.
func (s *Store) SaveArticle(ctx context.Context, a *news.Article, keywords []string) (int64, error) {
	mediaJSON, err := json.Marshal(a.Media)
	if err != nil {
		return 0, fmt.Errorf("encoding media urls: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO news_articles
			(title, content, summary, ai_summary, short_ai_summary,
			 url, origin_url, media_urls, source, category, pub_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`,
		a.Title, a.Content, a.Summary,
		nullable(a.AISummary), nullable(a.ShortAISummary),
		a.URL, a.OriginURL, mediaJSON,
		nullable(a.Source), a.Category, a.PubDate,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("inserting article: %w", err)
	}

	for _, kw := range keywords {
		if utf8.RuneCountInString(kw) < 2 {
			continue
		}

		var keywordID int64
		err = tx.QueryRowContext(ctx, `
			INSERT INTO keywords (keyword) VALUES ($1)
			ON CONFLICT (keyword) DO UPDATE SET frequency = keywords.frequency + 1
			RETURNING id`, kw,
		).Scan(&keywordID)
		if err != nil {
			return 0, fmt.Errorf("upserting keyword %q: %w", kw, err)
		}

		// A repeat link for the same article is expected, not an error.
		_, err = tx.ExecContext(ctx, `
			INSERT INTO news_keywords (news_id, keyword_id, relevance)
			VALUES ($1, $2, 1.0)
			ON CONFLICT DO NOTHING`, id, keywordID,
		)
		if err != nil {
			return 0, fmt.Errorf("linking keyword %q: %w", kw, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing article: %w", err)
	}
	return id, nil
}

// Stats returns persisted row counts, for end-of-run logging.
func (s *Store) Stats(ctx context.Context) (map[string]int, error) {
	stats := make(map[string]int)
	for name, query := range map[string]string{
		"articles": `SELECT COUNT(*) FROM news_articles`,
		"keywords": `SELECT COUNT(*) FROM keywords`,
	} {
		var n int
		if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
			return nil, err
		}
		stats[name] = n
	}
	return stats, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
