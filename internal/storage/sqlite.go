// Package storage provides SQLite-based persistence for pinball runs and
// achievements. Uses the pure-Go modernc.org/sqlite driver to avoid CGO
// dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run outcomes.
const (
	OutcomeTimeUp   = "time_up"
	OutcomeBallLost = "ball_lost"
	OutcomeQuit     = "quit"
)

// Run is one finished round.
type Run struct {
	ID        string
	Survived  float64 // Seconds survived
	BossWins  int
	Outcome   string
	Skin      string
	Seed      int64
	CreatedAt time.Time
}

// Achievement is an unlocked achievement row.
type Achievement struct {
	ID         string
	UnlockedAt time.Time
}

// Stats aggregates every recorded run.
type Stats struct {
	Runs       int
	Best       float64
	TotalPlay  float64
	BossWins   int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			survived REAL NOT NULL,
			boss_wins INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			skin TEXT NOT NULL DEFAULT '',
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_survived ON runs(survived DESC);

		CREATE TABLE IF NOT EXISTS achievements (
			id TEXT PRIMARY KEY,
			unlocked_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its generated ID.
func (s *Store) SaveRun(r Run) (string, error) {
	if r.Outcome == "" {
		return "", errors.New("storage: run outcome is required")
	}
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO runs (id, survived, boss_wins, outcome, skin, seed) VALUES (?, ?, ?, ?, ?, ?)",
		id, r.Survived, r.BossWins, r.Outcome, r.Skin, r.Seed,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// TopRuns retrieves the N longest runs. Ties keep insertion order.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, survived, boss_wins, outcome, skin, seed, created_at
		 FROM runs
		 ORDER BY survived DESC, rowid ASC
		 LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the N most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT id, survived, boss_wins, outcome, skin, seed, created_at
		 FROM runs
		 ORDER BY rowid DESC
		 LIMIT ?`,
		limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Survived, &r.BossWins, &r.Outcome, &r.Skin, &r.Seed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// TotalPlayTime returns the seconds survived across every run.
func (s *Store) TotalPlayTime() (float64, error) {
	var total float64
	err := s.db.QueryRow("SELECT COALESCE(SUM(survived), 0) FROM runs").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query play time: %w", err)
	}
	return total, nil
}

// TotalBossWins returns the boss fights won across every run.
func (s *Store) TotalBossWins() (int, error) {
	var total int
	err := s.db.QueryRow("SELECT COALESCE(SUM(boss_wins), 0) FROM runs").Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query boss wins: %w", err)
	}
	return total, nil
}

// GetStats aggregates every recorded run.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(survived), 0), COALESCE(SUM(survived), 0),
		        COALESCE(SUM(boss_wins), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.Best, &stats.TotalPlay, &stats.BossWins, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// ClearRuns deletes every recorded run. Achievements are kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Unlock records an achievement. Returns false if it was already unlocked.
func (s *Store) Unlock(id string) (bool, error) {
	res, err := s.db.Exec("INSERT OR IGNORE INTO achievements (id) VALUES (?)", id)
	if err != nil {
		return false, fmt.Errorf("storage: cannot unlock achievement: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	return n == 1, nil
}

// IsUnlocked reports whether the achievement has been recorded.
func (s *Store) IsUnlocked(id string) (bool, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM achievements WHERE id = ?", id).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("storage: cannot query achievement: %w", err)
	}
	return n > 0, nil
}

// Achievements lists unlocked achievements in unlock order.
func (s *Store) Achievements() ([]Achievement, error) {
	rows, err := s.db.Query("SELECT id, unlocked_at FROM achievements ORDER BY rowid ASC")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query achievements: %w", err)
	}
	defer rows.Close()

	var list []Achievement
	for rows.Next() {
		var a Achievement
		var at any
		if err := rows.Scan(&a.ID, &at); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		a.UnlockedAt = parseTime(at)
		list = append(list, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return list, nil
}

// UnlockedAchievements returns the IDs of every unlocked achievement.
func (s *Store) UnlockedAchievements() ([]string, error) {
	list, err := s.Achievements()
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.ID
	}
	return ids, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
