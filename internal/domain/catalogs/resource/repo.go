package resource

import (
	"context"

	"sklad/internal/core/id"
)

// Repository defines the interface for Resource persistence.
type Repository interface {
	// Create inserts a new resource.
	Create(ctx context.Context, res *Resource) error

	// GetByID retrieves a resource by ID. Returns a NotFound AppError when absent.
	GetByID(ctx context.Context, resourceID id.ID) (*Resource, error)

	// Update modifies name and status.
	Update(ctx context.Context, res *Resource) error

	// Delete removes the resource. Callers must check InUse first.
	Delete(ctx context.Context, resourceID id.ID) error

	// List retrieves all resources ordered by name.
	List(ctx context.Context) ([]*Resource, error)

	// ExistsByName checks normalized-name uniqueness, excluding excludeID
	// when non-nil.
	ExistsByName(ctx context.Context, normalizedName string, excludeID id.ID) (bool, error)

	// InUse reports whether any receipt line references the resource.
	InUse(ctx context.Context, resourceID id.ID) (bool, error)
}
