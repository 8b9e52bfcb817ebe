package entity

import (
	"context"
	"strings"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Status marks a catalog entry as selectable or retired.
type Status string

const (
	// StatusActive - entry is available for new receipt lines.
	StatusActive Status = "active"
	// StatusArchived - entry stays valid for existing references but cannot
	// be picked for new lines.
	StatusArchived Status = "archived"
)

// IsValidStatus reports whether s is a known status value.
func IsValidStatus(s Status) bool {
	return s == StatusActive || s == StatusArchived
}

// Catalog is the base type for reference data (Справочники):
// resources and measurement units.
type Catalog struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Name is the display name (unique after normalization)
	Name string `db:"name" json:"name"`

	// Status: active or archived
	Status Status `db:"status" json:"status"`
}

// NewCatalog creates a new Catalog with generated ID and active status.
func NewCatalog(name string) Catalog {
	return Catalog{
		ID:     id.New(),
		Name:   name,
		Status: StatusActive,
	}
}

// Validate implements Validatable.
func (c *Catalog) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !IsValidStatus(c.Status) {
		return apperror.NewValidation("invalid status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	return nil
}

// IsArchived reports whether the entry is retired.
func (c *Catalog) IsArchived() bool {
	return c.Status == StatusArchived
}

// NormalizeName is the canonical form used for uniqueness checks:
// trimmed and case-folded.
func NormalizeName(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
