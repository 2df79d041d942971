package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"IndexIndicator/internal/model"
)

// SQLiteStore persists data to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex // serializes writers
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets the HTTP readers proceed while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite store opened")
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_records (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol     TEXT NOT NULL COLLATE NOCASE,
			date       TEXT NOT NULL,
			open       TEXT NOT NULL,
			high       TEXT NOT NULL,
			low        TEXT NOT NULL,
			close      TEXT NOT NULL,
			volume     INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL,
			UNIQUE (symbol, date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_daily_symbol_date ON daily_records(symbol, date)`,

		`CREATE TABLE IF NOT EXISTS fear_greed (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			date       TEXT NOT NULL UNIQUE,
			score      REAL NOT NULL,
			rating     TEXT,
			created_at INTEGER NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", strings.TrimSpace(stmt)[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) UpsertDaily(ctx context.Context, records []model.DailyRecord) error {
	if len(records) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO daily_records
		(symbol, date, open, high, low, close, volume, created_at)
		VALUES (?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, date) DO UPDATE SET
			open = excluded.open, high = excluded.high, low = excluded.low,
			close = excluded.close, volume = excluded.volume`)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Symbol, r.Date,
			r.Open.String(), r.High.String(), r.Low.String(), r.Close.String(),
			r.Volume, now); err != nil {
			return fmt.Errorf("upsert %s %s: %w", r.Symbol, r.Date, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListDaily(ctx context.Context, symbol, from, to string) ([]model.DailyRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, symbol, date, open, high, low, close, volume, created_at
		FROM daily_records
		WHERE symbol = ?
			AND (? = '' OR date >= ?)
			AND (? = '' OR date <= ?)
		ORDER BY date ASC`,
		symbol, from, from, to, to)
	if err != nil {
		return nil, fmt.Errorf("query daily records: %w", err)
	}
	defer rows.Close()

	var out []model.DailyRecord
	for rows.Next() {
		var r model.DailyRecord
		if err := rows.Scan(&r.ID, &r.Symbol, &r.Date, &r.Open, &r.High, &r.Low, &r.Close, &r.Volume, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan daily record: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveFearGreed(ctx context.Context, fg *model.FearGreed) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if fg.CreatedAt.IsZero() {
		fg.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `INSERT INTO fear_greed (date, score, rating, created_at)
		VALUES (?,?,?,?)
		ON CONFLICT(date) DO UPDATE SET score = excluded.score, rating = excluded.rating, created_at = excluded.created_at`,
		fg.Date, fg.Score, fg.Rating, fg.CreatedAt.Unix(),
	)
	return err
}

func (s *SQLiteStore) ListFearGreed(ctx context.Context, limit int) ([]model.FearGreed, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT date, score, rating, created_at
		FROM fear_greed ORDER BY date DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query fear & greed: %w", err)
	}
	defer rows.Close()

	var out []model.FearGreed
	for rows.Next() {
		var fg model.FearGreed
		var rating sql.NullString
		var created int64
		if err := rows.Scan(&fg.Date, &fg.Score, &rating, &created); err != nil {
			return nil, fmt.Errorf("scan fear & greed: %w", err)
		}
		fg.Rating = rating.String
		fg.CreatedAt = time.Unix(created, 0).UTC()
		out = append(out, fg)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Info().Msg("closing sqlite store")
	return s.db.Close()
}
