package catalog_repo

import (
	"context"

	"sklad/internal/core/id"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/infrastructure/storage/postgres"
)

const resourceTable = "resources"

// Compile-time check.
var _ resource.Repository = (*ResourceRepo)(nil)

// ResourceRepo implements resource.Repository.
type ResourceRepo struct {
	base *baseCatalogRepo
}

// NewResourceRepo creates a new resource repository.
func NewResourceRepo(txm *postgres.TxManager) *ResourceRepo {
	return &ResourceRepo{
		base: newBaseCatalogRepo(txm, resourceTable, "resource", "resource_id"),
	}
}

func (r *ResourceRepo) Create(ctx context.Context, res *resource.Resource) error {
	return r.base.insert(ctx, &res.Catalog)
}

func (r *ResourceRepo) GetByID(ctx context.Context, resourceID id.ID) (*resource.Resource, error) {
	c, err := r.base.getByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	return &resource.Resource{Catalog: *c}, nil
}

func (r *ResourceRepo) Update(ctx context.Context, res *resource.Resource) error {
	return r.base.update(ctx, &res.Catalog)
}

func (r *ResourceRepo) Delete(ctx context.Context, resourceID id.ID) error {
	return r.base.delete(ctx, resourceID)
}

func (r *ResourceRepo) List(ctx context.Context) ([]*resource.Resource, error) {
	items, err := r.base.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*resource.Resource, len(items))
	for i, c := range items {
		result[i] = &resource.Resource{Catalog: *c}
	}
	return result, nil
}

func (r *ResourceRepo) ExistsByName(ctx context.Context, normalizedName string, excludeID id.ID) (bool, error) {
	return r.base.existsByName(ctx, normalizedName, excludeID)
}

func (r *ResourceRepo) InUse(ctx context.Context, resourceID id.ID) (bool, error) {
	return r.base.inUse(ctx, resourceID)
}
