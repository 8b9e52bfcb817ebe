// Package balance provides the warehouse balance register: the derived
// per-(resource, unit) on-hand quantity ledger.
package balance

import (
	"context"

	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

// Repository defines operations for the balance register.
// Mutating operations must run inside an ambient transaction; the service
// layer guarantees this.
type Repository interface {
	// Get returns the balance row for a pair. found is false when no row
	// exists (which reads as zero stock).
	Get(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error)

	// GetForUpdate returns the row with a row lock so a concurrent decrease
	// cannot consume the same stock between check and mutation.
	GetForUpdate(ctx context.Context, resourceID, unitID id.ID) (entity.Balance, bool, error)

	// Insert creates a new balance row.
	Insert(ctx context.Context, bal entity.Balance) error

	// SetQuantity overwrites the quantity of an existing row.
	SetQuantity(ctx context.Context, balanceID id.ID, qty types.Quantity) error

	// Delete removes a row (used when quantity reaches exactly zero).
	Delete(ctx context.Context, balanceID id.ID) error

	// List returns all balance rows ordered by resource then unit.
	List(ctx context.Context) ([]entity.Balance, error)
}
