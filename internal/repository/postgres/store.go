// Package postgres implements the repository interfaces with hand-written
// SQL over a pgx pool.
package postgres

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

var _ repository.Store = (*Store)(nil)

type Store struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewStore(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{pool: pool, logger: logger}
}

func (s *Store) CreateCompany(ctx context.Context, name, timezone string) (*entity.Company, error) {
	if timezone == "" {
		timezone = "UTC"
	}
	c := &entity.Company{ID: uuid.New(), Name: name, Timezone: timezone, CreatedAt: time.Now().UTC()}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO companies (id, name, timezone, created_at) VALUES ($1, $2, $3, $4)`,
		c.ID, c.Name, c.Timezone, c.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create company", "name", name, "error", err)
		return nil, err
	}
	return c, nil
}

func (s *Store) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var c entity.Company
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, timezone, created_at FROM companies WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.Timezone, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
