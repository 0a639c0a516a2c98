package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company represents a company for data transfer between layers.
type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	CreatedAt time.Time `json:"created_at"`
}

// Location represents a delivery location for data transfer between layers.
type Location struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// MachineType represents a machine classification for data transfer between layers.
type MachineType struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Name      string    `json:"name"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Machine represents a vending machine for data transfer between layers.
// Code is unique per company.
type Machine struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"company_id"`
	Code          string     `json:"code"`
	Name          string     `json:"name"`
	LocationID    *uuid.UUID `json:"location_id,omitempty"`
	MachineTypeID *uuid.UUID `json:"machine_type_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Sku represents a product for data transfer between layers. Code is unique
// per company, not globally. ShelfLifeDays of zero means no expiry tracking.
type Sku struct {
	ID            uuid.UUID `json:"id"`
	CompanyID     uuid.UUID `json:"company_id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	SkuType       *string   `json:"sku_type,omitempty"`
	ShelfLifeDays int       `json:"shelf_life_days"`
	CreatedAt     time.Time `json:"created_at"`
}

// Coil represents a machine slot for data transfer between layers. Code is
// unique per machine.
type Coil struct {
	ID        uuid.UUID `json:"id"`
	MachineID uuid.UUID `json:"machine_id"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"created_at"`
}

// CoilItem binds a coil to the SKU it holds.
type CoilItem struct {
	ID        uuid.UUID `json:"id"`
	CoilID    uuid.UUID `json:"coil_id"`
	SkuID     uuid.UUID `json:"sku_id"`
	CreatedAt time.Time `json:"created_at"`
}
