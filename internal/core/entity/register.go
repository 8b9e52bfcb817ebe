// Package entity provides core domain entities.
package entity

import (
	"time"

	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

// Balance represents one row of the warehouse balance register: the current
// on-hand quantity for a (resource, unit) pair.
//
// The row is derived state - it equals the sum of all persisted receipt line
// quantities for the pair. A row that reaches exactly zero is deleted, not
// kept at zero: absence of a row means zero stock.
type Balance struct {
	ID id.ID `db:"id" json:"id"`

	// Dimensions (измерения)
	ResourceID id.ID `db:"resource_id" json:"resourceId"`
	UnitID     id.ID `db:"unit_id" json:"unitId"`

	// Resources (ресурсы)
	Quantity types.Quantity `db:"quantity" json:"quantity"`

	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewBalance creates a balance row for a pair starting at qty.
func NewBalance(resourceID, unitID id.ID, qty types.Quantity) Balance {
	return Balance{
		ID:         id.New(),
		ResourceID: resourceID,
		UnitID:     unitID,
		Quantity:   qty,
		UpdatedAt:  time.Now().UTC(),
	}
}
