package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"veritas-hq/praetor/pkg/sdl/ast"
)

// SQLiteBackend implements Backend using SQLite, for single-instance
// deployments that need statutes to survive restarts. WAL mode keeps
// reads cheap while the registry syncs.
type SQLiteBackend struct {
	db *sql.DB
}

// SQLiteConfig configures the SQLite backend.
type SQLiteConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// NewSQLiteBackend opens (or creates) a statute database at the path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	return NewSQLiteBackendWithConfig(SQLiteConfig{DBPath: dbPath})
}

// NewSQLiteBackendWithConfig opens a statute database with custom settings.
func NewSQLiteBackendWithConfig(cfg SQLiteConfig) (*SQLiteBackend, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports a single writer only.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	backend := &SQLiteBackend{db: db}
	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return backend, nil
}

func (s *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS statutes (
		id TEXT PRIMARY KEY,
		jurisdiction TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL,
		effective_date TEXT NOT NULL DEFAULT '',
		expiry_date TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_statutes_jurisdiction ON statutes(jurisdiction);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save persists a record, replacing any record with the same id while
// preserving the original created_at.
func (s *SQLiteBackend) Save(ctx context.Context, record *Record) error {
	payload, err := json.Marshal(record.Statute)
	if err != nil {
		return fmt.Errorf("failed to encode statute: %w", err)
	}

	now := time.Now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO statutes (id, jurisdiction, version, effective_date, expiry_date, payload, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			jurisdiction = excluded.jurisdiction,
			version = excluded.version,
			effective_date = excluded.effective_date,
			expiry_date = excluded.expiry_date,
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		record.ID, record.Jurisdiction, record.Version,
		record.EffectiveDate, record.ExpiryDate, string(payload),
		now.Unix(), now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to save statute %q: %w", record.ID, err)
	}
	return nil
}

// Get retrieves a record by statute id.
func (s *SQLiteBackend) Get(ctx context.Context, id string) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, jurisdiction, version, effective_date, expiry_date, payload, created_at, updated_at
		FROM statutes WHERE id = ?`, id)

	record, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load statute %q: %w", id, err)
	}
	return record, nil
}

// List returns records matching the filter, sorted by id.
func (s *SQLiteBackend) List(ctx context.Context, filter Filter) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, jurisdiction, version, effective_date, expiry_date, payload, created_at, updated_at
		FROM statutes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list statutes: %w", err)
	}
	defer rows.Close()

	var out []*Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statute: %w", err)
		}
		if filter.matches(record) {
			out = append(out, record)
		}
	}
	return out, rows.Err()
}

// Delete removes a record by id.
func (s *SQLiteBackend) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM statutes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete statute %q: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the database.
func (s *SQLiteBackend) Close() error {
	return s.db.Close()
}

// scanner abstracts *sql.Row and *sql.Rows for scanRecord.
type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		record    Record
		payload   string
		createdAt int64
		updatedAt int64
	)
	err := row.Scan(&record.ID, &record.Jurisdiction, &record.Version,
		&record.EffectiveDate, &record.ExpiryDate, &payload, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	var statute ast.StatuteNode
	if err := json.Unmarshal([]byte(payload), &statute); err != nil {
		return nil, fmt.Errorf("corrupt statute payload: %w", err)
	}
	record.Statute = &statute
	record.CreatedAt = time.Unix(createdAt, 0).UTC()
	record.UpdatedAt = time.Unix(updatedAt, 0).UTC()
	return &record, nil
}
