package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

func (s *Store) ReplaceOverrides(ctx context.Context, pickEntryID uuid.UUID, overrides []*entity.ExpiryOverride) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM expiry_overrides WHERE pick_entry_id = $1`, pickEntryID); err != nil {
		return err
	}
	for _, o := range overrides {
		if _, err := tx.Exec(ctx, `
			INSERT INTO expiry_overrides (id, pick_entry_id, expiry_date, quantity, created_at)
			VALUES ($1, $2, $3, $4, $5)`,
			o.ID, pickEntryID, o.ExpiryDate, o.Quantity, o.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *Store) ListOverrides(ctx context.Context, pickEntryID uuid.UUID) ([]*entity.ExpiryOverride, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, pick_entry_id, expiry_date, quantity, created_at
		FROM expiry_overrides WHERE pick_entry_id = $1
		ORDER BY expiry_date`,
		pickEntryID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.ExpiryOverride
	for rows.Next() {
		var o entity.ExpiryOverride
		if err := rows.Scan(&o.ID, &o.PickEntryID, &o.ExpiryDate, &o.Quantity, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (s *Store) UpsertIgnore(ctx context.Context, companyID, coilItemID uuid.UUID, expiryDate string, quantity int) (*entity.ExpiryIgnore, error) {
	var ig entity.ExpiryIgnore
	err := s.pool.QueryRow(ctx, `
		INSERT INTO expiry_ignores (id, company_id, coil_item_id, expiry_date, quantity, ignored_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (company_id, coil_item_id, expiry_date)
		DO UPDATE SET quantity = EXCLUDED.quantity, ignored_at = EXCLUDED.ignored_at
		RETURNING id, company_id, coil_item_id, expiry_date, quantity, ignored_at`,
		uuid.New(), companyID, coilItemID, expiryDate, quantity, time.Now().UTC(),
	).Scan(&ig.ID, &ig.CompanyID, &ig.CoilItemID, &ig.ExpiryDate, &ig.Quantity, &ig.IgnoredAt)
	if err != nil {
		s.logger.Error("failed to upsert expiry ignore", "company_id", companyID, "coil_item_id", coilItemID, "error", err)
		return nil, err
	}
	return &ig, nil
}

func (s *Store) ListIgnores(ctx context.Context, companyID uuid.UUID) ([]*entity.ExpiryIgnore, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, company_id, coil_item_id, expiry_date, quantity, ignored_at
		FROM expiry_ignores WHERE company_id = $1
		ORDER BY coil_item_id, expiry_date`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*entity.ExpiryIgnore
	for rows.Next() {
		var ig entity.ExpiryIgnore
		if err := rows.Scan(&ig.ID, &ig.CompanyID, &ig.CoilItemID, &ig.ExpiryDate, &ig.Quantity, &ig.IgnoredAt); err != nil {
			return nil, err
		}
		out = append(out, &ig)
	}
	return out, rows.Err()
}

func (s *Store) ListCandidates(ctx context.Context, companyID uuid.UUID) ([]*repository.ExpiryCandidate, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT pe.id, pe.coil_item_id, pe.count, pe.expiry_date, sk.name
		FROM pick_entries pe
		JOIN runs r ON r.id = pe.run_id
		JOIN coil_items ci ON ci.id = pe.coil_item_id
		LEFT JOIN skus sk ON sk.id = ci.sku_id
		WHERE r.company_id = $1
		  AND (pe.expiry_date IS NOT NULL
		       OR EXISTS (SELECT 1 FROM expiry_overrides o WHERE o.pick_entry_id = pe.id))
		ORDER BY pe.created_at, pe.id`,
		companyID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*repository.ExpiryCandidate
	for rows.Next() {
		var c repository.ExpiryCandidate
		if err := rows.Scan(&c.PickEntryID, &c.CoilItemID, &c.Count, &c.ExpiryDate, &c.SkuName); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
