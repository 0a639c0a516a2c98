package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

func (s *Store) FindOrCreateLocation(ctx context.Context, companyID uuid.UUID, name string, address *string) (*entity.Location, error) {
	var (
		rawID, rawCompany string
		addr              sql.NullString
		l                 entity.Location
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO locations (id, company_id, name, address, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (company_id, name)
		DO UPDATE SET address = COALESCE(excluded.address, locations.address)
		RETURNING id, company_id, name, address, created_at`,
		uuid.New().String(), companyID.String(), name, nullStr(address), time.Now().UTC(),
	).Scan(&rawID, &rawCompany, &l.Name, &addr, &l.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve location", "company_id", companyID, "name", name, "error", err)
		return nil, err
	}
	l.ID, l.CompanyID, l.Address = parseUUID(rawID), parseUUID(rawCompany), ptrStr(addr)
	return &l, nil
}

func (s *Store) FindOrCreateMachineType(ctx context.Context, companyID uuid.UUID, name string, category *string) (*entity.MachineType, error) {
	var (
		rawID, rawCompany string
		cat               sql.NullString
		mt                entity.MachineType
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO machine_types (id, company_id, name, category, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (company_id, name)
		DO UPDATE SET category = COALESCE(excluded.category, machine_types.category)
		RETURNING id, company_id, name, category, created_at`,
		uuid.New().String(), companyID.String(), name, nullStr(category), time.Now().UTC(),
	).Scan(&rawID, &rawCompany, &mt.Name, &cat, &mt.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve machine type", "company_id", companyID, "name", name, "error", err)
		return nil, err
	}
	mt.ID, mt.CompanyID, mt.Category = parseUUID(rawID), parseUUID(rawCompany), ptrStr(cat)
	return &mt, nil
}

func (s *Store) FindOrCreateMachine(ctx context.Context, req repository.FindOrCreateMachineRequest) (*entity.Machine, error) {
	var (
		rawID, rawCompany string
		locID, typeID     sql.NullString
		m                 entity.Machine
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO machines (id, company_id, code, name, location_id, machine_type_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (company_id, code)
		DO UPDATE SET
			name = excluded.name,
			location_id = COALESCE(excluded.location_id, machines.location_id),
			machine_type_id = COALESCE(excluded.machine_type_id, machines.machine_type_id)
		RETURNING id, company_id, code, name, location_id, machine_type_id, created_at`,
		uuid.New().String(), req.CompanyID.String(), req.Code, req.Name, nullUUID(req.LocationID), nullUUID(req.MachineTypeID), time.Now().UTC(),
	).Scan(&rawID, &rawCompany, &m.Code, &m.Name, &locID, &typeID, &m.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve machine", "company_id", req.CompanyID, "code", req.Code, "error", err)
		return nil, err
	}
	m.ID, m.CompanyID = parseUUID(rawID), parseUUID(rawCompany)
	if m.LocationID, err = ptrUUID(locID); err != nil {
		return nil, err
	}
	if m.MachineTypeID, err = ptrUUID(typeID); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *Store) FindOrCreateSku(ctx context.Context, companyID uuid.UUID, code, name string, skuType *string) (*entity.Sku, error) {
	var (
		rawID, rawCompany string
		st                sql.NullString
		sk                entity.Sku
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO skus (id, company_id, code, name, sku_type, shelf_life_days, created_at)
		VALUES (?, ?, ?, ?, ?, 0, ?)
		ON CONFLICT (company_id, code)
		DO UPDATE SET
			name = excluded.name,
			sku_type = COALESCE(excluded.sku_type, skus.sku_type)
		RETURNING id, company_id, code, name, sku_type, shelf_life_days, created_at`,
		uuid.New().String(), companyID.String(), code, name, nullStr(skuType), time.Now().UTC(),
	).Scan(&rawID, &rawCompany, &sk.Code, &sk.Name, &st, &sk.ShelfLifeDays, &sk.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve sku", "company_id", companyID, "code", code, "error", err)
		return nil, err
	}
	sk.ID, sk.CompanyID, sk.SkuType = parseUUID(rawID), parseUUID(rawCompany), ptrStr(st)
	return &sk, nil
}

func (s *Store) SetSkuShelfLife(ctx context.Context, skuID uuid.UUID, days int) error {
	_, err := s.db.ExecContext(ctx, `UPDATE skus SET shelf_life_days = ? WHERE id = ?`, days, skuID.String())
	return err
}

func (s *Store) FindOrCreateCoil(ctx context.Context, machineID uuid.UUID, code string) (*entity.Coil, error) {
	var (
		rawID, rawMachine string
		c                 entity.Coil
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO coils (id, machine_id, code, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (machine_id, code) DO UPDATE SET code = excluded.code
		RETURNING id, machine_id, code, created_at`,
		uuid.New().String(), machineID.String(), code, time.Now().UTC(),
	).Scan(&rawID, &rawMachine, &c.Code, &c.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve coil", "machine_id", machineID, "code", code, "error", err)
		return nil, err
	}
	c.ID, c.MachineID = parseUUID(rawID), parseUUID(rawMachine)
	return &c, nil
}

func (s *Store) FindOrCreateCoilItem(ctx context.Context, coilID, skuID uuid.UUID) (*entity.CoilItem, error) {
	var (
		rawID, rawCoil, rawSku string
		ci                     entity.CoilItem
	)
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO coil_items (id, coil_id, sku_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (coil_id, sku_id) DO UPDATE SET sku_id = excluded.sku_id
		RETURNING id, coil_id, sku_id, created_at`,
		uuid.New().String(), coilID.String(), skuID.String(), time.Now().UTC(),
	).Scan(&rawID, &rawCoil, &rawSku, &ci.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve coil item", "coil_id", coilID, "sku_id", skuID, "error", err)
		return nil, err
	}
	ci.ID, ci.CoilID, ci.SkuID = parseUUID(rawID), parseUUID(rawCoil), parseUUID(rawSku)
	return &ci, nil
}
