// Package history provides SQLite persistence for the local watch
// history. It mirrors the server's (media, user) uniqueness so that offline
// or restarted sessions still know what was already completed.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Watch is one completed watch, recorded at most once per (media, user).
type Watch struct {
	MediaID   string
	UserID    string
	MediaName string
	Reward    int
	WatchedAt time.Time
}

// Stats aggregates a user's watch history.
type Stats struct {
	Watched int
	Reward  int
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// For in-memory databases, use shared cache mode so all connections
		// in the pool see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	// Enable WAL mode for file-based databases (not :memory:)
	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS watches (
		media_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		media_name TEXT,
		reward INTEGER DEFAULT 0,
		watched_at DATETIME NOT NULL,
		PRIMARY KEY (media_id, user_id)
	);

	CREATE INDEX IF NOT EXISTS idx_watches_user ON watches(user_id);
	CREATE INDEX IF NOT EXISTS idx_watches_time ON watches(watched_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Record stores a completed watch, returning true if it was new.
// Duplicates (by media and user) are silently ignored via INSERT OR IGNORE,
// which keeps the at-most-once property across restarts.
// Thread-safe: acquires write lock.
func (s *Store) Record(w Watch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.Exec(`
		INSERT OR IGNORE INTO watches (media_id, user_id, media_name, reward, watched_at)
		VALUES (?, ?, ?, ?, ?)
	`, w.MediaID, w.UserID, w.MediaName, w.Reward, w.WatchedAt)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// HasWatched reports whether the user's watch of the media is on record.
// Thread-safe: acquires read lock.
func (s *Store) HasWatched(userID, mediaID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(1) FROM watches WHERE user_id = ? AND media_id = ?",
		userID, mediaID,
	).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// WatchedSet returns the ids of every media the user has watched.
// Thread-safe: acquires read lock.
func (s *Store) WatchedSet(userID string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT media_id FROM watches WHERE user_id = ?", userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

// Recent returns the user's watches, newest first.
// Thread-safe: acquires read lock.
func (s *Store) Recent(userID string, limit int) ([]Watch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT media_id, user_id, media_name, reward, watched_at
		FROM watches
		WHERE user_id = ?
		ORDER BY watched_at DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var watches []Watch
	for rows.Next() {
		var w Watch
		if err := rows.Scan(&w.MediaID, &w.UserID, &w.MediaName, &w.Reward, &w.WatchedAt); err != nil {
			return nil, err
		}
		watches = append(watches, w)
	}
	return watches, rows.Err()
}

// UserStats aggregates the user's watch count and accumulated reward.
// Thread-safe: acquires read lock.
func (s *Store) UserStats(userID string) (Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st Stats
	err := s.db.QueryRow(
		"SELECT COUNT(1), COALESCE(SUM(reward), 0) FROM watches WHERE user_id = ?",
		userID,
	).Scan(&st.Watched, &st.Reward)
	if err != nil {
		return Stats{}, err
	}
	return st, nil
}
