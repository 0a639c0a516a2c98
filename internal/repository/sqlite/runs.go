package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/constants"
	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

func (s *Store) CreateRun(ctx context.Context, companyID uuid.UUID, scheduledFor *time.Time) (*entity.Run, error) {
	r := &entity.Run{ID: uuid.New(), CompanyID: companyID, ScheduledFor: scheduledFor, CreatedAt: time.Now().UTC()}
	var sched any
	if scheduledFor != nil {
		sched = scheduledFor.UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, company_id, scheduled_for, created_at) VALUES (?, ?, ?, ?)`,
		r.ID.String(), r.CompanyID.String(), sched, r.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create run", "company_id", companyID, "error", err)
		return nil, err
	}
	return r, nil
}

func (s *Store) GetRun(ctx context.Context, id uuid.UUID) (*entity.Run, error) {
	var (
		rawID, rawCompany string
		sched             sql.NullTime
		r                 entity.Run
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, company_id, scheduled_for, created_at FROM runs WHERE id = ?`, id.String(),
	).Scan(&rawID, &rawCompany, &sched, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	r.ID, r.CompanyID = parseUUID(rawID), parseUUID(rawCompany)
	if sched.Valid {
		t := sched.Time
		r.ScheduledFor = &t
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
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pick_entries
			(id, run_id, coil_item_id, status, count, current, par, need, forecast, notes, expiry_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID.String(), e.RunID.String(), e.CoilItemID.String(), string(e.Status),
		nullInt(e.Count), nullInt(e.Current), nullInt(e.Par), nullInt(e.Need), nullInt(e.Forecast),
		nullStr(e.Notes), nullStr(e.ExpiryDate), e.CreatedAt,
	)
	if err != nil {
		s.logger.Error("failed to create pick entry", "run_id", req.RunID, "error", err)
		return nil, err
	}
	return e, nil
}

func (s *Store) GetPickEntry(ctx context.Context, id uuid.UUID) (*entity.PickEntry, error) {
	var (
		rawID, rawRun, rawItem, status string
		count, current, par            sql.NullInt64
		need, forecast                 sql.NullInt64
		notes, expiry                  sql.NullString
		e                              entity.PickEntry
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, run_id, coil_item_id, status, count, current, par, need, forecast, notes, expiry_date, created_at
		FROM pick_entries WHERE id = ?`, id.String(),
	).Scan(&rawID, &rawRun, &rawItem, &status, &count, &current, &par, &need, &forecast, &notes, &expiry, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.ID, e.RunID, e.CoilItemID = parseUUID(rawID), parseUUID(rawRun), parseUUID(rawItem)
	e.Status = constants.Status(status)
	e.Count, e.Current, e.Par = ptrInt(count), ptrInt(current), ptrInt(par)
	e.Need, e.Forecast = ptrInt(need), ptrInt(forecast)
	e.Notes, e.ExpiryDate = ptrStr(notes), ptrStr(expiry)
	return &e, nil
}

func (s *Store) SetPickEntryStatus(ctx context.Context, id uuid.UUID, status constants.Status) error {
	_, err := s.db.ExecContext(ctx, `UPDATE pick_entries SET status = ? WHERE id = ?`, string(status), id.String())
	return err
}

func (s *Store) ListPending(ctx context.Context, runID uuid.UUID) ([]*entity.PendingPickEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pe.id, pe.coil_item_id, pe.count, l.name, m.code, c.code, sk.name, sk.sku_type, pe.expiry_date
		FROM pick_entries pe
		JOIN coil_items ci ON ci.id = pe.coil_item_id
		JOIN coils c ON c.id = ci.coil_id
		JOIN machines m ON m.id = c.machine_id
		LEFT JOIN locations l ON l.id = m.location_id
		LEFT JOIN skus sk ON sk.id = ci.sku_id
		WHERE pe.run_id = ? AND pe.status = ? AND pe.count > 0
		ORDER BY pe.created_at, pe.id`,
		runID.String(), string(constants.StatusPending),
	)
	if err != nil {
		s.logger.Error("failed to list pending pick entries", "run_id", runID, "error", err)
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.PendingPickEntry
	for rows.Next() {
		var (
			rawID, rawItem             string
			count                      sql.NullInt64
			loc, mach, skuName, skuTyp sql.NullString
			expiry                     sql.NullString
			e                          entity.PendingPickEntry
		)
		if err := rows.Scan(&rawID, &rawItem, &count, &loc, &mach, &e.CoilCode, &skuName, &skuTyp, &expiry); err != nil {
			return nil, err
		}
		e.PickEntryID, e.CoilItemID = parseUUID(rawID), parseUUID(rawItem)
		if count.Valid {
			e.Count = int(count.Int64)
		}
		e.LocationName, e.MachineCode = ptrStr(loc), ptrStr(mach)
		e.SkuName, e.SkuType, e.ExpiryDate = ptrStr(skuName), ptrStr(skuTyp), ptrStr(expiry)
		out = append(out, &e)
	}
	return out, rows.Err()
}
