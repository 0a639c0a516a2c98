package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

func (s *Store) ReplaceOverrides(ctx context.Context, pickEntryID uuid.UUID, overrides []*entity.ExpiryOverride) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM expiry_overrides WHERE pick_entry_id = ?`, pickEntryID.String()); err != nil {
		return err
	}
	for _, o := range overrides {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO expiry_overrides (id, pick_entry_id, expiry_date, quantity, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			o.ID.String(), pickEntryID.String(), o.ExpiryDate, o.Quantity, o.CreatedAt,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) ListOverrides(ctx context.Context, pickEntryID uuid.UUID) ([]*entity.ExpiryOverride, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pick_entry_id, expiry_date, quantity, created_at
		FROM expiry_overrides WHERE pick_entry_id = ?
		ORDER BY expiry_date`,
		pickEntryID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.ExpiryOverride
	for rows.Next() {
		var (
			rawID, rawEntry string
			o               entity.ExpiryOverride
		)
		if err := rows.Scan(&rawID, &rawEntry, &o.ExpiryDate, &o.Quantity, &o.CreatedAt); err != nil {
			return nil, err
		}
		o.ID, o.PickEntryID = parseUUID(rawID), parseUUID(rawEntry)
		out = append(out, &o)
	}
	return out, rows.Err()
}

func (s *Store) UpsertIgnore(ctx context.Context, companyID, coilItemID uuid.UUID, expiryDate string, quantity int) (*entity.ExpiryIgnore, error) {
	var (
		rawID, rawCompany, rawItem string
		ig                         entity.ExpiryIgnore
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO expiry_ignores (id, company_id, coil_item_id, expiry_date, quantity, ignored_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, coil_item_id, expiry_date)
		DO UPDATE SET quantity = excluded.quantity, ignored_at = excluded.ignored_at
		RETURNING id, company_id, coil_item_id, expiry_date, quantity, ignored_at`,
		uuid.New().String(), companyID.String(), coilItemID.String(), expiryDate, quantity, time.Now().UTC(),
	).Scan(&rawID, &rawCompany, &rawItem, &ig.ExpiryDate, &ig.Quantity, &ig.IgnoredAt)
	if err != nil {
		s.logger.Error("failed to upsert expiry ignore", "company_id", companyID, "coil_item_id", coilItemID, "error", err)
		return nil, err
	}
	ig.ID, ig.CompanyID, ig.CoilItemID = parseUUID(rawID), parseUUID(rawCompany), parseUUID(rawItem)
	return &ig, nil
}

func (s *Store) ListIgnores(ctx context.Context, companyID uuid.UUID) ([]*entity.ExpiryIgnore, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, company_id, coil_item_id, expiry_date, quantity, ignored_at
		FROM expiry_ignores WHERE company_id = ?
		ORDER BY coil_item_id, expiry_date`,
		companyID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.ExpiryIgnore
	for rows.Next() {
		var (
			rawID, rawCompany, rawItem string
			ig                         entity.ExpiryIgnore
		)
		if err := rows.Scan(&rawID, &rawCompany, &rawItem, &ig.ExpiryDate, &ig.Quantity, &ig.IgnoredAt); err != nil {
			return nil, err
		}
		ig.ID, ig.CompanyID, ig.CoilItemID = parseUUID(rawID), parseUUID(rawCompany), parseUUID(rawItem)
		out = append(out, &ig)
	}
	return out, rows.Err()
}

func (s *Store) ListCandidates(ctx context.Context, companyID uuid.UUID) ([]*repository.ExpiryCandidate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pe.id, pe.coil_item_id, pe.count, pe.expiry_date, sk.name
		FROM pick_entries pe
		JOIN runs r ON r.id = pe.run_id
		JOIN coil_items ci ON ci.id = pe.coil_item_id
		LEFT JOIN skus sk ON sk.id = ci.sku_id
		WHERE r.company_id = ?
		  AND (pe.expiry_date IS NOT NULL
		       OR EXISTS (SELECT 1 FROM expiry_overrides o WHERE o.pick_entry_id = pe.id))
		ORDER BY pe.created_at, pe.id`,
		companyID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []*repository.ExpiryCandidate
	for rows.Next() {
		var (
			rawID, rawItem  string
			count           sql.NullInt64
			expiry, skuName sql.NullString
			c               repository.ExpiryCandidate
		)
		if err := rows.Scan(&rawID, &rawItem, &count, &expiry, &skuName); err != nil {
			return nil, err
		}
		c.PickEntryID, c.CoilItemID = parseUUID(rawID), parseUUID(rawItem)
		c.Count, c.ExpiryDate, c.SkuName = ptrInt(count), ptrStr(expiry), ptrStr(skuName)
		out = append(out, &c)
	}
	return out, rows.Err()
}
