// Package resource provides the Resource catalog (Справочник "Ресурсы").
// Resources are the item types tracked by the warehouse ledger.
package resource

import (
	"sklad/internal/core/entity"
)

// Resource represents a named, archivable item type.
// Archived resources cannot be used in new receipt lines but remain valid
// targets for decreases and replacements of their existing lines.
type Resource struct {
	entity.Catalog
}

// New creates a new active Resource.
func New(name string) *Resource {
	return &Resource{
		Catalog: entity.NewCatalog(name),
	}
}
