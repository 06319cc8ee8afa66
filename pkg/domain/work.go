package domain

import (
	"time"

	"github.com/google/uuid"
)

// Work is an entry in the store's work master (labor items billed on orders).
type Work struct {
	ID        uuid.UUID `json:"id"`
	StoreID   uuid.UUID `json:"store_id"`
	Code      string    `json:"code,omitempty"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit,omitempty"`
	UnitPrice Decimal   `json:"unit_price"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WorkMaterial links an inventory item consumed per unit of a work.
type WorkMaterial struct {
	ID         uuid.UUID `json:"id"`
	WorkID     uuid.UUID `json:"work_id"`
	ItemID     uuid.UUID `json:"item_id"`
	QtyPerWork Decimal   `json:"qty_per_work"`
}
