// Package leaderboard keeps a cross-platform top-scores table in
// Postgres. It is a read model fed by the front ends after every correct
// answer; the session store stays authoritative for scores.
package leaderboard

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ilyashirko/quiz-bot/pkg/store"
)

var sqlOpen = sql.Open

// Entry is one leaderboard row.
type Entry struct {
	Platform store.Platform
	UserID   string
	Score    int64
}

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sqlOpen("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	s := &PostgresStore{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS quiz_scores (
  platform TEXT NOT NULL,
  user_id TEXT NOT NULL,
  score BIGINT NOT NULL,
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  PRIMARY KEY (platform, user_id)
);
`
	_, err := s.db.Exec(schema)
	return err
}

// UpsertScore records the latest known score for a session. Scores only
// grow, so a stale concurrent write is harmless: GREATEST keeps the max.
func (s *PostgresStore) UpsertScore(ctx context.Context, key store.SessionKey, score int64) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO quiz_scores(platform, user_id, score, updated_at)
VALUES($1,$2,$3,NOW())
ON CONFLICT (platform, user_id)
DO UPDATE SET score=GREATEST(quiz_scores.score, EXCLUDED.score), updated_at=NOW()
`, string(key.Platform), key.UserID, score)
	if err != nil {
		return fmt.Errorf("upsert score: %w", err)
	}
	return nil
}

// Top returns the highest scores across platforms, best first.
func (s *PostgresStore) Top(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT platform, user_id, score FROM quiz_scores ORDER BY score DESC, updated_at ASC LIMIT $1
`, limit)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var platform string
		if err := rows.Scan(&platform, &e.UserID, &e.Score); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		e.Platform = store.Platform(platform)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score rows: %w", err)
	}
	return entries, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
