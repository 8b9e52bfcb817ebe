// Package unit provides the Unit catalog (Справочник "Единицы измерения").
// Units represent measurement units for warehouse resources.
package unit

import (
	"sklad/internal/core/entity"
)

// Unit represents a named, archivable unit of measure.
// Same archive rule as Resource: archived units stay valid for existing
// receipt lines but cannot be picked for new ones.
type Unit struct {
	entity.Catalog
}

// New creates a new active Unit.
func New(name string) *Unit {
	return &Unit{
		Catalog: entity.NewCatalog(name),
	}
}
