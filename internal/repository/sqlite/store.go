// Package sqlite implements the repository interfaces over an embedded
// pure-Go SQLite database. It backs the local batch CLI and the service
// tests; the SQL mirrors the postgres package with dialect differences only.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Open opens (or creates) a SQLite database at path and migrates the schema.
// Use ":memory:" for an ephemeral database.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// a single connection keeps :memory: databases coherent and sidesteps
	// SQLite writer contention
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	logger.Info("sqlite store ready", "path", path)
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS companies (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	timezone   TEXT NOT NULL DEFAULT 'UTC',
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS locations (
	id         TEXT PRIMARY KEY,
	company_id TEXT NOT NULL REFERENCES companies(id),
	name       TEXT NOT NULL,
	address    TEXT,
	created_at TIMESTAMP NOT NULL,
	UNIQUE (company_id, name)
);
CREATE TABLE IF NOT EXISTS machine_types (
	id         TEXT PRIMARY KEY,
	company_id TEXT NOT NULL REFERENCES companies(id),
	name       TEXT NOT NULL,
	category   TEXT,
	created_at TIMESTAMP NOT NULL,
	UNIQUE (company_id, name)
);
CREATE TABLE IF NOT EXISTS machines (
	id              TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL REFERENCES companies(id),
	code            TEXT NOT NULL,
	name            TEXT NOT NULL,
	location_id     TEXT REFERENCES locations(id),
	machine_type_id TEXT REFERENCES machine_types(id),
	created_at      TIMESTAMP NOT NULL,
	UNIQUE (company_id, code)
);
CREATE TABLE IF NOT EXISTS skus (
	id              TEXT PRIMARY KEY,
	company_id      TEXT NOT NULL REFERENCES companies(id),
	code            TEXT NOT NULL,
	name            TEXT NOT NULL,
	sku_type        TEXT,
	shelf_life_days INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMP NOT NULL,
	UNIQUE (company_id, code)
);
CREATE TABLE IF NOT EXISTS coils (
	id         TEXT PRIMARY KEY,
	machine_id TEXT NOT NULL REFERENCES machines(id),
	code       TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	UNIQUE (machine_id, code)
);
CREATE TABLE IF NOT EXISTS coil_items (
	id         TEXT PRIMARY KEY,
	coil_id    TEXT NOT NULL REFERENCES coils(id),
	sku_id     TEXT NOT NULL REFERENCES skus(id),
	created_at TIMESTAMP NOT NULL,
	UNIQUE (coil_id, sku_id)
);
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	company_id    TEXT NOT NULL REFERENCES companies(id),
	scheduled_for TIMESTAMP,
	created_at    TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS pick_entries (
	id           TEXT PRIMARY KEY,
	run_id       TEXT NOT NULL REFERENCES runs(id),
	coil_item_id TEXT NOT NULL REFERENCES coil_items(id),
	status       TEXT NOT NULL DEFAULT 'PENDING',
	count        INTEGER,
	current      INTEGER,
	par          INTEGER,
	need         INTEGER,
	forecast     INTEGER,
	notes        TEXT,
	expiry_date  TEXT,
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_pick_entries_run ON pick_entries (run_id, status);
CREATE TABLE IF NOT EXISTS expiry_overrides (
	id            TEXT PRIMARY KEY,
	pick_entry_id TEXT NOT NULL REFERENCES pick_entries(id),
	expiry_date   TEXT NOT NULL,
	quantity      INTEGER NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	UNIQUE (pick_entry_id, expiry_date)
);
CREATE TABLE IF NOT EXISTS expiry_ignores (
	id           TEXT PRIMARY KEY,
	company_id   TEXT NOT NULL REFERENCES companies(id),
	coil_item_id TEXT NOT NULL REFERENCES coil_items(id),
	expiry_date  TEXT NOT NULL,
	quantity     INTEGER NOT NULL,
	ignored_at   TIMESTAMP NOT NULL,
	UNIQUE (company_id, coil_item_id, expiry_date)
);
`

func (s *Store) CreateCompany(ctx context.Context, name, timezone string) (*entity.Company, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	c := &entity.Company{ID: uuid.New(), Name: name, Timezone: timezone, CreatedAt: time.Now().UTC()}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO companies (id, name, timezone, created_at) VALUES (?, ?, ?, ?)`,
		c.ID.String(), c.Name, c.Timezone, c.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create company", "name", name, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Store) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var c entity.Company
	var rawID string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, timezone, created_at FROM companies WHERE id = ?`, id.String(),
	).Scan(&rawID, &c.Name, &c.Timezone, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.ID, err = uuid.Parse(rawID)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
