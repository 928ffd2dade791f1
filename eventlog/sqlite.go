package eventlog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists event streams in a SQLite database. Use ":memory:"
// as the path for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS events (
	stream TEXT NOT NULL,
	seq    INTEGER NOT NULL,
	id     TEXT NOT NULL,
	type   TEXT NOT NULL,
	at     TEXT NOT NULL,
	data   TEXT,
	PRIMARY KEY (stream, seq)
);
`

// NewSQLiteStore opens (creating if necessary) a SQLite-backed store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// The driver multiplexes connections over one file; serialize writes.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	current, err := streamVersionTx(ctx, tx, stream)
	if err != nil {
		return 0, err
	}
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	for i, e := range events {
		seq := expectedVersion + 1 + i
		data, err := json.Marshal(e.Data)
		if err != nil {
			return 0, fmt.Errorf("encoding event data: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO events (stream, seq, id, type, at, data) VALUES (?, ?, ?, ?, ?, ?)`,
			stream, seq, e.ID, e.Type, e.At.Format(time.RFC3339Nano), string(data))
		if err != nil {
			return 0, fmt.Errorf("inserting event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing: %w", err)
	}
	return expectedVersion + len(events), nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, stream string, from int) ([]*Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stream, seq, id, type, at, data FROM events WHERE stream = ? AND seq >= ? ORDER BY seq`,
		stream, from)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var out []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// StreamVersion implements Store.
func (s *SQLiteStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	var version int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) FROM events WHERE stream = ?`, stream).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("querying stream version: %w", err)
	}
	return version, nil
}

// Streams implements Store.
func (s *SQLiteStore) Streams(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT stream FROM events GROUP BY stream ORDER BY MIN(rowid)`)
	if err != nil {
		return nil, fmt.Errorf("querying streams: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var stream string
		if err := rows.Scan(&stream); err != nil {
			return nil, err
		}
		out = append(out, stream)
	}
	return out, rows.Err()
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func streamVersionTx(ctx context.Context, tx *sql.Tx, stream string) (int, error) {
	var version int
	err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), -1) FROM events WHERE stream = ?`, stream).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("querying stream version: %w", err)
	}
	return version, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (*Event, error) {
	var e Event
	var at, data string
	if err := row.Scan(&e.Stream, &e.Seq, &e.ID, &e.Type, &at, &data); err != nil {
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, at)
	if err != nil {
		return nil, fmt.Errorf("parsing timestamp: %w", err)
	}
	e.At = t
	if data != "" && data != "null" {
		if err := json.Unmarshal([]byte(data), &e.Data); err != nil {
			return nil, fmt.Errorf("decoding event data: %w", err)
		}
	}
	return &e, nil
}
