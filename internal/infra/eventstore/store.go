// Package eventstore persists analytics events in SQLite so a host can audit
// what the player reported.
package eventstore

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/rs/zerolog/log"

	"github.com/edumarques81/avplayer-sdk/internal/domain/analytics"
)

const (
	// SchemaVersion is the current database schema version.
	SchemaVersion = "1"

	// DefaultPath is used when NewStore is given an empty path.
	DefaultPath = "data/analytics.db"

	// MemoryPath keeps the store in memory for the lifetime of the process.
	MemoryPath = ":memory:"
)

// ErrNotOpen is returned by queries on a closed store.
var ErrNotOpen = errors.New("eventstore: database not open")

// Kind is the category of a stored entry.
type Kind string

const (
	KindAction Kind = "action"
	KindEvent  Kind = "event"
	KindError  Kind = "error"
)

// Entry is one persisted analytics call.
type Entry struct {
	ID        int64              `json:"id"`
	Kind      Kind               `json:"kind"`
	Name      string             `json:"name"`
	Value     int64              `json:"value,omitempty"`
	Detail    string             `json:"detail,omitempty"`
	SessionID string             `json:"sessionId,omitempty"`
	ChannelID string             `json:"channelId,omitempty"`
	Metadata  analytics.Metadata `json:"metadata,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
}

// Store is an analytics.Provider backed by SQLite.
type Store struct {
	mu   sync.RWMutex
	db   *sql.DB
	path string
}

var _ analytics.Provider = (*Store)(nil)

// NewStore creates a store for path. Call Open before tracking.
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Open opens the database and creates the schema.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dsn := s.path
	if s.path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
			return fmt.Errorf("failed to create event store directory: %w", err)
		}
		dsn += "?_journal=WAL&_busy_timeout=5000"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open event store: %w", err)
	}

	// One connection: SQLite has a single writer and an in-memory database
	// lives only as long as its connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	s.db = db
	log.Info().Str("path", s.path).Msg("Event store opened")
	return nil
}

// Close closes the database. Tracking on a closed store is dropped.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		name TEXT NOT NULL,
		value INTEGER DEFAULT 0,
		detail TEXT,
		session_id TEXT,
		channel_id TEXT,
		metadata TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS store_meta (
		key TEXT PRIMARY KEY,
		value TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id);
	CREATE INDEX IF NOT EXISTS idx_events_kind ON events(kind, name);
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var current string
	if err := db.QueryRow("SELECT value FROM store_meta WHERE key = 'schema_version'").Scan(&current); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if current != "" && current != SchemaVersion {
		log.Info().Str("current", current).Str("target", SchemaVersion).Msg("Migrating event store schema")
	}
	_, err = db.Exec(`INSERT INTO store_meta (key, value) VALUES ('schema_version', ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, SchemaVersion)
	return err
}

func (s *Store) TrackUserAction(action analytics.UserAction, metadata analytics.Metadata) {
	s.insert(Entry{Kind: KindAction, Name: string(action.Kind), Value: action.Seconds, Metadata: metadata})
}

func (s *Store) TrackStreamEvent(event analytics.StreamEvent, metadata analytics.Metadata) {
	s.insert(Entry{Kind: KindEvent, Name: string(event.Kind), Value: event.DurationMs, Detail: event.StreamURL, Metadata: metadata})
}

func (s *Store) TrackError(err analytics.PlaybackError, metadata analytics.Metadata) {
	detail := err.Message
	if err.Cause != nil {
		detail = fmt.Sprintf("%s: %v", err.Message, err.Cause)
	}
	s.insert(Entry{Kind: KindError, Name: "playback_error", Value: int64(err.Code), Detail: detail, Metadata: metadata})
}

func metaString(md analytics.Metadata, key string) string {
	if v, ok := md[key].(string); ok {
		return v
	}
	return ""
}

func (s *Store) insert(e Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		log.Debug().Str("kind", string(e.Kind)).Str("name", e.Name).Msg("Event store closed, dropping event")
		return
	}

	var metadata []byte
	if len(e.Metadata) > 0 {
		var err error
		if metadata, err = json.Marshal(e.Metadata); err != nil {
			log.Warn().Err(err).Str("name", e.Name).Msg("Event metadata not encodable")
			metadata = nil
		}
	}

	_, err := s.db.Exec(`INSERT INTO events (kind, name, value, detail, session_id, channel_id, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Kind, e.Name, e.Value, e.Detail,
		metaString(e.Metadata, "sessionId"), metaString(e.Metadata, "channelId"),
		string(metadata), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		log.Error().Err(err).Str("name", e.Name).Msg("Failed to store analytics event")
	}
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	return s.query("SELECT id, kind, name, value, detail, session_id, channel_id, metadata, created_at FROM events ORDER BY id DESC LIMIT ?", limit)
}

// Session returns every entry of a load session in the order tracked.
func (s *Store) Session(sessionID string) ([]Entry, error) {
	return s.query("SELECT id, kind, name, value, detail, session_id, channel_id, metadata, created_at FROM events WHERE session_id = ? ORDER BY id", sessionID)
}

// Counts returns the number of entries per kind.
func (s *Store) Counts() (map[Kind]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.Query("SELECT kind, COUNT(*) FROM events GROUP BY kind")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Kind]int)
	for rows.Next() {
		var kind Kind
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[kind] = n
	}
	return counts, rows.Err()
}

func (s *Store) query(q string, args ...any) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotOpen
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail, session, ch, md, stamp sql.NullString
		if err := rows.Scan(&e.ID, &e.Kind, &e.Name, &e.Value, &detail, &session, &ch, &md, &stamp); err != nil {
			return nil, err
		}
		e.Detail, e.SessionID, e.ChannelID = detail.String, session.String, ch.String
		if md.String != "" {
			if err := json.Unmarshal([]byte(md.String), &e.Metadata); err != nil {
				log.Debug().Err(err).Int64("id", e.ID).Msg("Stored metadata not decodable")
			}
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, stamp.String)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
