package unit

import (
	"context"

	"sklad/internal/core/id"
)

// Repository defines the interface for Unit persistence.
type Repository interface {
	// Create inserts a new unit.
	Create(ctx context.Context, u *Unit) error

	// GetByID retrieves a unit by ID. Returns a NotFound AppError when absent.
	GetByID(ctx context.Context, unitID id.ID) (*Unit, error)

	// Update modifies name and status.
	Update(ctx context.Context, u *Unit) error

	// Delete removes the unit. Callers must check InUse first.
	Delete(ctx context.Context, unitID id.ID) error

	// List retrieves all units ordered by name.
	List(ctx context.Context) ([]*Unit, error)

	// ExistsByName checks normalized-name uniqueness, excluding excludeID
	// when non-nil.
	ExistsByName(ctx context.Context, normalizedName string, excludeID id.ID) (bool, error)

	// InUse reports whether any receipt line references the unit.
	InUse(ctx context.Context, unitID id.ID) (bool, error)
}
