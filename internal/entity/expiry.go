package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExpiryOverride splits one pick entry's quantity across several expiry
// dates. Unique per (pick entry, expiry date); when any override exists for
// an entry, the override set replaces the single computed expiry date.
type ExpiryOverride struct {
	ID          uuid.UUID `json:"id"`
	PickEntryID uuid.UUID `json:"pick_entry_id"`
	ExpiryDate  string    `json:"expiry_date"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
}

// ExpiryIgnore is a standing exemption suppressing expiry alerts for a
// specific coil item, date and quantity, independent of any single run.
// Reapplying an identical ignore refreshes IgnoredAt instead of duplicating.
type ExpiryIgnore struct {
	ID         uuid.UUID `json:"id"`
	CompanyID  uuid.UUID `json:"company_id"`
	CoilItemID uuid.UUID `json:"coil_item_id"`
	ExpiryDate string    `json:"expiry_date"`
	Quantity   int       `json:"quantity"`
	IgnoredAt  time.Time `json:"ignored_at"`
}

// ExpiringItem is one row of the expiring-soon report, after overrides are
// expanded and ignores are suppressed.
type ExpiringItem struct {
	PickEntryID uuid.UUID `json:"pick_entry_id"`
	CoilItemID  uuid.UUID `json:"coil_item_id"`
	ExpiryDate  string    `json:"expiry_date"`
	Quantity    int       `json:"quantity"`
	SkuName     *string   `json:"sku_name,omitempty"`
}
