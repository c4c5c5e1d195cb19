// Package store provides the SQLite cache behind the download and collect
// stages: fetched tweet texts keyed by id, and collected news headlines.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Tweet is one cached status. Unavailable tweets are kept so a resumed
// download does not ask for them again.
type Tweet struct {
	ID          string
	Text        string
	Unavailable bool
	Fetched     time.Time
}

// Headline is one collected news title.
type Headline struct {
	ID        string
	Source    string
	Title     string
	URL       string
	Published time.Time
	Fetched   time.Time
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for file-based databases.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// shared cache so all pooled connections see the same database
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

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS tweets (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		unavailable INTEGER DEFAULT 0,
		fetched_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS headlines (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT,
		published_at DATETIME NOT NULL,
		fetched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_headlines_published ON headlines(published_at);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveTweet inserts or replaces one cached tweet.
func (s *Store) SaveTweet(t Tweet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Fetched.IsZero() {
		t.Fetched = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO tweets (id, text, unavailable, fetched_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			unavailable = excluded.unavailable,
			fetched_at = excluded.fetched_at
	`, t.ID, t.Text, boolToInt(t.Unavailable), t.Fetched)
	if err != nil {
		return fmt.Errorf("save tweet %s: %w", t.ID, err)
	}
	return nil
}

// GetTweet returns the cached tweet with the given id. ok is false when the
// id was never fetched.
func (s *Store) GetTweet(id string) (t Tweet, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var unavailable int
	err = s.db.QueryRow(
		"SELECT id, text, unavailable, fetched_at FROM tweets WHERE id = ?", id,
	).Scan(&t.ID, &t.Text, &unavailable, &t.Fetched)
	if errors.Is(err, sql.ErrNoRows) {
		return Tweet{}, false, nil
	}
	if err != nil {
		return Tweet{}, false, err
	}
	t.Unavailable = unavailable != 0
	return t, true, nil
}

// HasTweet reports whether id is cached, available or not.
func (s *Store) HasTweet(id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM tweets WHERE id = ?", id).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountTweets returns the number of cached tweets and how many of them are
// unavailable.
func (s *Store) CountTweets() (total, unavailable int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	err = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(SUM(unavailable), 0) FROM tweets",
	).Scan(&total, &unavailable)
	return total, unavailable, err
}

// Texts returns the text of every available cached tweet by id.
func (s *Store) Texts() (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, text FROM tweets WHERE unavailable = 0")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	texts := make(map[string]string)
	for rows.Next() {
		var id, text string
		if err := rows.Scan(&id, &text); err != nil {
			return nil, err
		}
		texts[id] = text
	}
	return texts, rows.Err()
}

// SaveHeadlines stores headlines, returning count of new ones inserted.
// Known ids are silently ignored via INSERT OR IGNORE.
func (s *Store) SaveHeadlines(items []Headline) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(items) == 0 {
		return 0, nil
	}

	stmt, err := s.db.Prepare(`
		INSERT OR IGNORE INTO headlines (id, source, title, url, published_at, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	newCount := 0
	for _, h := range items {
		result, err := stmt.Exec(h.ID, h.Source, h.Title, h.URL, h.Published, h.Fetched)
		if err != nil {
			return newCount, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return newCount, err
		}
		if affected > 0 {
			newCount++
		}
	}
	return newCount, nil
}

// HeadlinesBetween returns headlines published in [from, to), oldest first.
func (s *Store) HeadlinesBetween(from, to time.Time) ([]Headline, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, source, title, url, published_at, fetched_at
		FROM headlines
		WHERE published_at >= ? AND published_at < ?
		ORDER BY published_at, id
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Headline
	for rows.Next() {
		var h Headline
		if err := rows.Scan(&h.ID, &h.Source, &h.Title, &h.URL, &h.Published, &h.Fetched); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
