package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/internal/entity"
	"github.com/vendiq/pickrun/internal/repository"
)

// Every FindOrCreate below is a single upsert on the natural key with a
// no-op DO UPDATE, so RETURNING yields the surviving row whether it was just
// inserted or discovered concurrently by another import.

func (s *Store) FindOrCreateLocation(ctx context.Context, companyID uuid.UUID, name string, address *string) (*entity.Location, error) {
	var l entity.Location
	err := s.pool.QueryRow(ctx, `
		INSERT INTO locations (id, company_id, name, address, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, name)
		DO UPDATE SET address = COALESCE(EXCLUDED.address, locations.address)
		RETURNING id, company_id, name, address, created_at`,
		uuid.New(), companyID, name, address, time.Now().UTC(),
	).Scan(&l.ID, &l.CompanyID, &l.Name, &l.Address, &l.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve location", "company_id", companyID, "name", name, "error", err)
		return nil, err
	}
	return &l, nil
}

func (s *Store) FindOrCreateMachineType(ctx context.Context, companyID uuid.UUID, name string, category *string) (*entity.MachineType, error) {
	var mt entity.MachineType
	err := s.pool.QueryRow(ctx, `
		INSERT INTO machine_types (id, company_id, name, category, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (company_id, name)
		DO UPDATE SET category = COALESCE(EXCLUDED.category, machine_types.category)
		RETURNING id, company_id, name, category, created_at`,
		uuid.New(), companyID, name, category, time.Now().UTC(),
	).Scan(&mt.ID, &mt.CompanyID, &mt.Name, &mt.Category, &mt.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve machine type", "company_id", companyID, "name", name, "error", err)
		return nil, err
	}
	return &mt, nil
}

func (s *Store) FindOrCreateMachine(ctx context.Context, req repository.FindOrCreateMachineRequest) (*entity.Machine, error) {
	var m entity.Machine
	err := s.pool.QueryRow(ctx, `
		INSERT INTO machines (id, company_id, code, name, location_id, machine_type_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, code)
		DO UPDATE SET
			name = EXCLUDED.name,
			location_id = COALESCE(EXCLUDED.location_id, machines.location_id),
			machine_type_id = COALESCE(EXCLUDED.machine_type_id, machines.machine_type_id)
		RETURNING id, company_id, code, name, location_id, machine_type_id, created_at`,
		uuid.New(), req.CompanyID, req.Code, req.Name, req.LocationID, req.MachineTypeID, time.Now().UTC(),
	).Scan(&m.ID, &m.CompanyID, &m.Code, &m.Name, &m.LocationID, &m.MachineTypeID, &m.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve machine", "company_id", req.CompanyID, "code", req.Code, "error", err)
		return nil, err
	}
	return &m, nil
}

func (s *Store) FindOrCreateSku(ctx context.Context, companyID uuid.UUID, code, name string, skuType *string) (*entity.Sku, error) {
	var sk entity.Sku
	err := s.pool.QueryRow(ctx, `
		INSERT INTO skus (id, company_id, code, name, sku_type, shelf_life_days, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6)
		ON CONFLICT (company_id, code)
		DO UPDATE SET
			name = EXCLUDED.name,
			sku_type = COALESCE(EXCLUDED.sku_type, skus.sku_type)
		RETURNING id, company_id, code, name, sku_type, shelf_life_days, created_at`,
		uuid.New(), companyID, code, name, skuType, time.Now().UTC(),
	).Scan(&sk.ID, &sk.CompanyID, &sk.Code, &sk.Name, &sk.SkuType, &sk.ShelfLifeDays, &sk.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve sku", "company_id", companyID, "code", code, "error", err)
		return nil, err
	}
	return &sk, nil
}

func (s *Store) SetSkuShelfLife(ctx context.Context, skuID uuid.UUID, days int) error {
	_, err := s.pool.Exec(ctx, `UPDATE skus SET shelf_life_days = $2 WHERE id = $1`, skuID, days)
	return err
}

func (s *Store) FindOrCreateCoil(ctx context.Context, machineID uuid.UUID, code string) (*entity.Coil, error) {
	var c entity.Coil
	err := s.pool.QueryRow(ctx, `
		INSERT INTO coils (id, machine_id, code, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (machine_id, code) DO UPDATE SET code = EXCLUDED.code
		RETURNING id, machine_id, code, created_at`,
		uuid.New(), machineID, code, time.Now().UTC(),
	).Scan(&c.ID, &c.MachineID, &c.Code, &c.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve coil", "machine_id", machineID, "code", code, "error", err)
		return nil, err
	}
	return &c, nil
}

func (s *Store) FindOrCreateCoilItem(ctx context.Context, coilID, skuID uuid.UUID) (*entity.CoilItem, error) {
	var ci entity.CoilItem
	err := s.pool.QueryRow(ctx, `
		INSERT INTO coil_items (id, coil_id, sku_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (coil_id, sku_id) DO UPDATE SET sku_id = EXCLUDED.sku_id
		RETURNING id, coil_id, sku_id, created_at`,
		uuid.New(), coilID, skuID, time.Now().UTC(),
	).Scan(&ci.ID, &ci.CoilID, &ci.SkuID, &ci.CreatedAt)
	if err != nil {
		s.logger.Error("failed to resolve coil item", "coil_id", coilID, "sku_id", skuID, "error", err)
		return nil, err
	}
	return &ci, nil
}
