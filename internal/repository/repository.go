package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/constants"
	"github.com/vendiq/pickrun/internal/entity"
)

// The interfaces in this package are the persistence boundary of the core:
// the parser and sequencer never touch a database, and callers may back these
// with Postgres (repository/postgres) or embedded SQLite (repository/sqlite).
// Serializing concurrent writes to shared rows (two imports discovering the
// same SKU) is the store's job, via upsert semantics on natural keys.

// FindOrCreateMachineRequest wraps parameters for resolving a machine row.
type FindOrCreateMachineRequest struct {
	CompanyID     uuid.UUID
	Code          string
	Name          string
	LocationID    *uuid.UUID
	MachineTypeID *uuid.UUID
}

// CreatePickEntryRequest wraps parameters for inserting one pick entry.
type CreatePickEntryRequest struct {
	RunID      uuid.UUID
	CoilItemID uuid.UUID
	Count      *int
	Current    *int
	Par        *int
	Need       *int
	Forecast   *int
	Notes      *string
	ExpiryDate *string
}

// ExpiryCandidate is one pick entry eligible for the expiring-soon report,
// before overrides and ignores are applied.
type ExpiryCandidate struct {
	PickEntryID uuid.UUID
	CoilItemID  uuid.UUID
	Count       *int
	ExpiryDate  *string
	SkuName     *string
}

type CompanyRepository interface {
	CreateCompany(ctx context.Context, name, timezone string) (*entity.Company, error)
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)
}

// CatalogRepository resolves the long-lived catalog graph by natural keys.
// Every FindOrCreate is an upsert on the natural key, so two concurrent
// imports discovering the same row converge on one record.
type CatalogRepository interface {
	FindOrCreateLocation(ctx context.Context, companyID uuid.UUID, name string, address *string) (*entity.Location, error)
	FindOrCreateMachineType(ctx context.Context, companyID uuid.UUID, name string, category *string) (*entity.MachineType, error)
	FindOrCreateMachine(ctx context.Context, req FindOrCreateMachineRequest) (*entity.Machine, error)
	FindOrCreateSku(ctx context.Context, companyID uuid.UUID, code, name string, skuType *string) (*entity.Sku, error)
	SetSkuShelfLife(ctx context.Context, skuID uuid.UUID, days int) error
	FindOrCreateCoil(ctx context.Context, machineID uuid.UUID, code string) (*entity.Coil, error)
	FindOrCreateCoilItem(ctx context.Context, coilID, skuID uuid.UUID) (*entity.CoilItem, error)
}

type RunRepository interface {
	CreateRun(ctx context.Context, companyID uuid.UUID, scheduledFor *time.Time) (*entity.Run, error)
	GetRun(ctx context.Context, id uuid.UUID) (*entity.Run, error)
	CreatePickEntry(ctx context.Context, req CreatePickEntryRequest) (*entity.PickEntry, error)
	GetPickEntry(ctx context.Context, id uuid.UUID) (*entity.PickEntry, error)
	SetPickEntryStatus(ctx context.Context, id uuid.UUID, status constants.Status) error
	// ListPending returns entries with status PENDING and count > 0, enriched
	// with the announcement fields, in insertion order.
	ListPending(ctx context.Context, runID uuid.UUID) ([]*entity.PendingPickEntry, error)
}

type ExpiryRepository interface {
	// ReplaceOverrides swaps the full override set for a pick entry.
	ReplaceOverrides(ctx context.Context, pickEntryID uuid.UUID, overrides []*entity.ExpiryOverride) error
	ListOverrides(ctx context.Context, pickEntryID uuid.UUID) ([]*entity.ExpiryOverride, error)
	// UpsertIgnore is idempotent on (companyID, coilItemID, expiryDate):
	// reapplying refreshes quantity and ignored_at instead of duplicating.
	UpsertIgnore(ctx context.Context, companyID, coilItemID uuid.UUID, expiryDate string, quantity int) (*entity.ExpiryIgnore, error)
	ListIgnores(ctx context.Context, companyID uuid.UUID) ([]*entity.ExpiryIgnore, error)
	ListCandidates(ctx context.Context, companyID uuid.UUID) ([]*ExpiryCandidate, error)
}

// Store bundles the four repositories a fully wired service needs.
type Store interface {
	CompanyRepository
	CatalogRepository
	RunRepository
	ExpiryRepository
}
