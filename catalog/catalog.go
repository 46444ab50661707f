package catalog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry is one known chart series.
type Entry struct {
	ChartID      uuid.UUID `json:"chart_id"`
	Slug         string    `json:"slug"`
	DiscoveredAt time.Time `json:"discovered_at"`
	LastSeenAt   time.Time `json:"last_seen_at"`
}

// Store persists discovered chart slugs using SQLite, so callers can list
// known series without re-scraping the index on every run.
type Store struct {
	db *sql.DB
}

// NewStore creates a catalog store with the given database path.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the charts table if it doesn't exist.
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS charts (
		chart_id TEXT PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		discovered_at TEXT NOT NULL,
		last_seen_at TEXT NOT NULL
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Refresh upserts a scrape result: unknown slugs are inserted, known ones get
// their last-seen timestamp bumped. Returns the number of newly discovered
// series.
func (s *Store) Refresh(slugs []string) (int, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	added := 0

	for _, slug := range slugs {
		var existing string
		err := s.db.QueryRow("SELECT chart_id FROM charts WHERE slug = ?", slug).Scan(&existing)
		switch {
		case err == sql.ErrNoRows:
			_, err = s.db.Exec(
				"INSERT INTO charts (chart_id, slug, discovered_at, last_seen_at) VALUES (?, ?, ?, ?)",
				uuid.New().String(), slug, now, now,
			)
			if err != nil {
				return added, fmt.Errorf("failed to insert chart %s: %w", slug, err)
			}
			added++
		case err != nil:
			return added, fmt.Errorf("failed to query chart %s: %w", slug, err)
		default:
			_, err = s.db.Exec("UPDATE charts SET last_seen_at = ? WHERE slug = ?", now, slug)
			if err != nil {
				return added, fmt.Errorf("failed to update chart %s: %w", slug, err)
			}
		}
	}

	return added, nil
}

// List returns all known chart series ordered by slug.
func (s *Store) List() ([]Entry, error) {
	rows, err := s.db.Query("SELECT chart_id, slug, discovered_at, last_seen_at FROM charts ORDER BY slug")
	if err != nil {
		return nil, fmt.Errorf("failed to query charts: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			id, slug, discovered, lastSeen string
		)
		if err := rows.Scan(&id, &slug, &discovered, &lastSeen); err != nil {
			return nil, fmt.Errorf("failed to scan chart row: %w", err)
		}

		entry := Entry{Slug: slug}
		if entry.ChartID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("invalid chart_id for %s: %w", slug, err)
		}
		if entry.DiscoveredAt, err = time.Parse(time.RFC3339, discovered); err != nil {
			return nil, fmt.Errorf("invalid discovered_at for %s: %w", slug, err)
		}
		if entry.LastSeenAt, err = time.Parse(time.RFC3339, lastSeen); err != nil {
			return nil, fmt.Errorf("invalid last_seen_at for %s: %w", slug, err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// SlugList returns just the known slugs, ordered.
func (s *Store) SlugList() ([]string, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	slugs := make([]string, 0, len(entries))
	for _, e := range entries {
		slugs = append(slugs, e.Slug)
	}
	return slugs, nil
}
