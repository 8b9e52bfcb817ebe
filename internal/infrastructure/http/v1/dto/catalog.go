package dto

import (
	"sklad/internal/core/entity"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/domain/catalogs/unit"
)

// --- Catalog DTOs (resources and units share one shape) ---

// CatalogResponse contains catalog entry fields.
type CatalogResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// FromCatalog creates CatalogResponse from entity.Catalog.
func FromCatalog(c entity.Catalog) CatalogResponse {
	return CatalogResponse{
		ID:     c.ID.String(),
		Name:   c.Name,
		Status: string(c.Status),
	}
}

// FromResource creates CatalogResponse from a resource.
func FromResource(r *resource.Resource) CatalogResponse {
	return FromCatalog(r.Catalog)
}

// FromUnit creates CatalogResponse from a unit.
func FromUnit(u *unit.Unit) CatalogResponse {
	return FromCatalog(u.Catalog)
}

// OptionResponse is the compact id+name projection used by filter UIs.
type OptionResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OptionsFromCatalog projects catalog entries to options.
func OptionsFromCatalog(items []CatalogResponse) []OptionResponse {
	out := make([]OptionResponse, 0, len(items))
	for _, it := range items {
		out = append(out, OptionResponse{ID: it.ID, Name: it.Name})
	}
	return out
}

// CreateCatalogRequest for creating catalog entries.
type CreateCatalogRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateCatalogRequest for renaming catalog entries.
type UpdateCatalogRequest struct {
	Name string `json:"name" binding:"required"`
}

// SetStatusRequest for archiving and restoring catalog entries.
type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active archived"`
}
