// Package storage provides SQLite-based persistence for finished matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPath is where the CLI keeps its database unless told otherwise.
const DefaultPath = "~/.arcade/pong.db"

// Match modes.
const (
	ModeLocal = "local"
	ModeSSH   = "ssh"
	ModeSim   = "sim"
)

// End reasons.
const (
	EndCompleted  = "completed"  // win score reached
	EndQuit       = "quit"       // player left an unfinished match
	EndDisconnect = "disconnect" // ssh session dropped
	EndTickLimit  = "tick_limit" // simulation ran out of steps
)

// Store manages the SQLite database connection for match history.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished or abandoned match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Mode      string
	Player1   string
	Player2   string
	Score1    int
	Score2    int
	Winner    string // Player1, Player2 or empty for an undecided match
	EndReason string
	Ticks     int64
	Seed      int64
	Duration  time.Duration
	CreatedAt time.Time
}

// PlayerStats aggregates a player's history across both sides.
type PlayerStats struct {
	Player        string
	Played        int
	Wins          int
	Losses        int
	PointsFor     int
	PointsAgainst int
	LastPlayed    time.Time
}

// NewMatchID returns a fresh random match identifier.
func NewMatchID() string {
	return uuid.NewString()
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_player1 ON matches(player1);
		CREATE INDEX IF NOT EXISTS idx_matches_player2 ON matches(player2);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
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

// SaveMatch records a match. An empty MatchID is replaced with a new one.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(rec MatchRecord) (int64, error) {
	if rec.MatchID == "" {
		rec.MatchID = NewMatchID()
	}
	if rec.Winner != "" && rec.Winner != rec.Player1 && rec.Winner != rec.Player2 {
		return 0, fmt.Errorf("storage: winner %q is not a participant", rec.Winner)
	}

	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, player1, player2, score1, score2, winner, end_reason, ticks, seed, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.MatchID,
		rec.Mode,
		rec.Player1,
		rec.Player2,
		rec.Score1,
		rec.Score2,
		nullString(rec.Winner),
		rec.EndReason,
		rec.Ticks,
		rec.Seed,
		rec.Duration.Milliseconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const matchColumns = `id, match_id, mode, player1, player2, score1, score2,
	winner, end_reason, ticks, seed, duration_ms, created_at`

// MatchByID retrieves a match by its match ID. Returns nil if not found.
func (s *Store) MatchByID(matchID string) (*MatchRecord, error) {
	row := s.db.QueryRow(`SELECT `+matchColumns+` FROM matches WHERE match_id = ?`, matchID)
	rec, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &rec, nil
}

// RecentMatches retrieves the most recent matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	return collectMatches(rows)
}

// PlayerMatches retrieves the match history of one player on either side.
func (s *Store) PlayerMatches(player string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE player1 = ? OR player2 = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player matches: %w", err)
	}
	return collectMatches(rows)
}

// GetPlayerStats aggregates a player's record. A player with no matches
// gets zero stats.
func (s *Store) GetPlayerStats(player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner IS NOT NULL AND winner != ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN player1 = ? THEN score1 ELSE score2 END), 0),
		        COALESCE(SUM(CASE WHEN player1 = ? THEN score2 ELSE score1 END), 0),
		        MAX(created_at)
		 FROM matches
		 WHERE player1 = ? OR player2 = ?`,
		player, player, player, player, player, player,
	).Scan(&stats.Played, &stats.Wins, &stats.Losses, &stats.PointsFor, &stats.PointsAgainst, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearMatches deletes the whole history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMatch(row scanner) (MatchRecord, error) {
	var rec MatchRecord
	var winner sql.NullString
	var durationMS int64
	var createdAt any

	err := row.Scan(
		&rec.ID,
		&rec.MatchID,
		&rec.Mode,
		&rec.Player1,
		&rec.Player2,
		&rec.Score1,
		&rec.Score2,
		&winner,
		&rec.EndReason,
		&rec.Ticks,
		&rec.Seed,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return MatchRecord{}, err
	}

	if winner.Valid {
		rec.Winner = winner.String
	}
	rec.Duration = time.Duration(durationMS) * time.Millisecond
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

func collectMatches(rows *sql.Rows) ([]MatchRecord, error) {
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// parseTime handles both time.Time and string datetimes.
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

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
