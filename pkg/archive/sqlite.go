package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements Storage using SQLite. History is append-only,
// so the table carries no update path at all; retention pruning is the
// only deletion.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) a history database at the path.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	storage := &SQLiteStorage{db: db}
	if err := storage.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return storage, nil
}

func (s *SQLiteStorage) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS statute_history (
		record_id TEXT PRIMARY KEY,
		statute_id TEXT NOT NULL,
		version INTEGER NOT NULL,
		event TEXT NOT NULL,
		actor TEXT NOT NULL DEFAULT '',
		detail TEXT NOT NULL DEFAULT '',
		payload BLOB NOT NULL,
		payload_hash TEXT NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_history_statute ON statute_history(statute_id, timestamp);
	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON statute_history(timestamp);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append writes one record.
func (s *SQLiteStorage) Append(ctx context.Context, record *Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO statute_history
			(record_id, statute_id, version, event, actor, detail, payload, payload_hash, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RecordID, record.StatuteID, record.Version, string(record.Event),
		record.Actor, record.Detail, record.Payload, record.PayloadHash,
		record.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history record: %w", err)
	}
	return nil
}

// ListByStatute returns the records for one statute id, oldest first.
func (s *SQLiteStorage) ListByStatute(ctx context.Context, statuteID string) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT record_id, statute_id, version, event, actor, detail, payload, payload_hash, timestamp
		FROM statute_history WHERE statute_id = ? ORDER BY timestamp`, statuteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list history for %q: %w", statuteID, err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		var (
			record Record
			event  string
			nanos  int64
		)
		err := rows.Scan(&record.RecordID, &record.StatuteID, &record.Version,
			&event, &record.Actor, &record.Detail, &record.Payload,
			&record.PayloadHash, &nanos)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		record.Event = EventType(event)
		record.Timestamp = time.Unix(0, nanos).UTC()
		out = append(out, &record)
	}
	return out, rows.Err()
}

// Count returns the total number of records.
func (s *SQLiteStorage) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statute_history`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count history records: %w", err)
	}
	return count, nil
}

// PruneOlderThan deletes records older than the cutoff.
func (s *SQLiteStorage) PruneOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM statute_history WHERE timestamp < ?`, cutoff.UnixNano())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

// Close closes the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

var _ Storage = (*SQLiteStorage)(nil)
