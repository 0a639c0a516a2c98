package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/vendiq/pickrun/constants"
)

// Run represents a scheduled delivery run for data transfer between layers.
// ScheduledFor carries a date-only value stored at midnight UTC.
type Run struct {
	ID           uuid.UUID  `json:"id"`
	CompanyID    uuid.UUID  `json:"company_id"`
	ScheduledFor *time.Time `json:"scheduled_for,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// PickEntry represents one persisted pick requirement for data transfer
// between layers. ExpiryDate is a YYYY-MM-DD string, never a timestamp,
// so the computed calendar date cannot drift across timezones.
type PickEntry struct {
	ID         uuid.UUID        `json:"id"`
	RunID      uuid.UUID        `json:"run_id"`
	CoilItemID uuid.UUID        `json:"coil_item_id"`
	Status     constants.Status `json:"status"`
	Count      *int             `json:"count,omitempty"`
	Current    *int             `json:"current,omitempty"`
	Par        *int             `json:"par,omitempty"`
	Need       *int             `json:"need,omitempty"`
	Forecast   *int             `json:"forecast,omitempty"`
	Notes      *string          `json:"notes,omitempty"`
	ExpiryDate *string          `json:"expiry_date,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
}

// PendingPickEntry is a pick entry enriched with the announcement fields the
// sequencer needs, as loaded by the store in one joined query.
type PendingPickEntry struct {
	PickEntryID  uuid.UUID `json:"pick_entry_id"`
	CoilItemID   uuid.UUID `json:"coil_item_id"`
	Count        int       `json:"count"`
	LocationName *string   `json:"location_name,omitempty"`
	MachineCode  *string   `json:"machine_code,omitempty"`
	CoilCode     string    `json:"coil_code"`
	SkuName      *string   `json:"sku_name,omitempty"`
	SkuType      *string   `json:"sku_type,omitempty"`
	ExpiryDate   *string   `json:"expiry_date,omitempty"`
}
