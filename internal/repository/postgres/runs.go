package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/constants"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

func (s *Store) CreateRun(ctx context.Context, companyID uuid.UUID, scheduledFor *time.Time) (*entity.Run, error) {
	r := &entity.Run{ID: uuid.New(), CompanyID: companyID, ScheduledFor: scheduledFor, CreatedAt: time.Now().UTC()}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, company_id, scheduled_for, created_at) VALUES ($1, $2, $3, $4)`,
		r.ID, r.CompanyID, r.ScheduledFor, r.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create run", "company_id", companyID, "error", err)
		return nil, err
	}
	return r, nil
}

func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	var r entity.Run
	err := s.pool.QueryRow(ctx,
		`SELECT id, company_id, scheduled_for, created_at FROM runs WHERE id = $1`, id,
	).Scan(&r.ID, &r.CompanyID, &r.ScheduledFor, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Store) CreatePickEntry(ctx context.Context, req repository.CreatePickEntryRequest) (*entity.PickEntry, error) {
	e := &entity.PickEntry{
		ID:         uuid.New(),
		RunID:      req.RunID,
		CoilItemID: req.CoilItemID,
		Status:     constants.StatusPending,
		Count:      req.Count,
		Current:    req.Current,
		Par:        req.Par,
		Need:       req.Need,
		Forecast:   req.Forecast,
		Notes:      req.Notes,
		ExpiryDate: req.ExpiryDate,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pick_entries
			(id, run_id, coil_item_id, status, count, current, par, need, forecast, notes, expiry_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		e.ID, e.RunID, e.CoilItemID, string(e.Status), e.Count, e.Current, e.Par, e.Need, e.Forecast, e.Notes, e.ExpiryDate, e.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create pick entry", "run_id", req.RunID, "error", err)
		return nil, err
	}
	return e, nil
}

func (s *Store) GetPickEntry(ctx context.Context, id uuid.UUID) (*entity.PickEntry, error) {
	var e entity.PickEntry
	var status string
	err := s.pool.QueryRow(ctx, `
		SELECT id, run_id, coil_item_id, status, count, current, par, need, forecast, notes, expiry_date, created_at
		FROM pick_entries WHERE id = $1`, id,
	).Scan(&e.ID, &e.RunID, &e.CoilItemID, &status, &e.Count, &e.Current, &e.Par, &e.Need, &e.Forecast, &e.Notes, &e.ExpiryDate, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Status = constants.Status(status)
	return &e, nil
}

func (s *Store) SetPickEntryStatus(ctx context.Context, id uuid.UUID, status constants.Status) error {
	_, err := s.pool.Exec(ctx, `UPDATE pick_entries SET status = $2 WHERE id = $1`, id, string(status))
	return err
}

func (s *Store) ListPending(ctx context.Context, runID uuid.UUID) ([]*entity.PendingPickEntry, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT pe.id, pe.coil_item_id, pe.count, l.name, m.code, c.code, sk.name, sk.sku_type, pe.expiry_date
		FROM pick_entries pe
		JOIN coil_items ci ON ci.id = pe.coil_item_id
		JOIN coils c ON c.id = ci.coil_id
		JOIN machines m ON m.id = c.machine_id
		LEFT JOIN locations l ON l.id = m.location_id
		LEFT JOIN skus sk ON sk.id = ci.sku_id
		WHERE pe.run_id = $1 AND pe.status = $2 AND pe.count > 0
		ORDER BY pe.created_at, pe.id`,
		runID, string(constants.StatusPending),
	)
	if err != nil {
		s.logger.Error("failed to list pending pick entries", "run_id", runID, "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []*entity.PendingPickEntry
	for rows.Next() {
		var e entity.PendingPickEntry
		if err := rows.Scan(&e.PickEntryID, &e.CoilItemID, &e.Count, &e.LocationName, &e.MachineCode, &e.CoilCode, &e.SkuName, &e.SkuType, &e.ExpiryDate); err != nil {
			return nil, err
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}
