package catalog_repo

import (
	"context"

	"sklad/internal/core/id"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/infrastructure/storage/postgres"
)

const unitTable = "units"

// Compile-time check.
var _ unit.Repository = (*UnitRepo)(nil)

// UnitRepo implements unit.Repository.
type UnitRepo struct {
	base *baseCatalogRepo
}

// NewUnitRepo creates a new unit repository.
func NewUnitRepo(txm *postgres.TxManager) *UnitRepo {
	return &UnitRepo{
		base: newBaseCatalogRepo(txm, unitTable, "unit", "unit_id"),
	}
}

func (r *UnitRepo) Create(ctx context.Context, u *unit.Unit) error {
	return r.base.insert(ctx, &u.Catalog)
}

func (r *UnitRepo) GetByID(ctx context.Context, unitID id.ID) (*unit.Unit, error) {
	c, err := r.base.getByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	return &unit.Unit{Catalog: *c}, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *unit.Unit) error {
	return r.base.update(ctx, &u.Catalog)
}

func (r *UnitRepo) Delete(ctx context.Context, unitID id.ID) error {
	return r.base.delete(ctx, unitID)
}

func (r *UnitRepo) List(ctx context.Context) ([]*unit.Unit, error) {
	items, err := r.base.list(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]*unit.Unit, len(items))
	for i, c := range items {
		result[i] = &unit.Unit{Catalog: *c}
	}
	return result, nil
}

func (r *UnitRepo) ExistsByName(ctx context.Context, normalizedName string, excludeID id.ID) (bool, error) {
	return r.base.existsByName(ctx, normalizedName, excludeID)
}

func (r *UnitRepo) InUse(ctx context.Context, unitID id.ID) (bool, error) {
	return r.base.inUse(ctx, unitID)
}
