// Package receipt provides the goods receipt document (Поступление) and the
// transactional engine that keeps the warehouse balance register consistent
// with the document line set.
package receipt

import (
	"context"
	"strings"
	"time"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

// MaxNumberLength limits the document number column (varchar(50)).
const MaxNumberLength = 50

// Receipt represents a goods receipt document header.
// A receipt may legitimately have zero lines.
type Receipt struct {
	ID id.ID `db:"id" json:"id"`

	// Number is the document number, unique after trim/case-fold.
	Number string `db:"number" json:"number"`

	Date time.Time `db:"date" json:"date"`

	// Table part: received goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one entry in a receipt: a quantity of a resource in a unit.
type Line struct {
	ID         id.ID          `db:"id" json:"id"`
	ReceiptID  id.ID          `db:"receipt_id" json:"receiptId"`
	ResourceID id.ID          `db:"resource_id" json:"resourceId"`
	UnitID     id.ID          `db:"unit_id" json:"unitId"`
	Quantity   types.Quantity `db:"quantity" json:"quantity"`
}

// Pair identifies a line's (resource, unit) dimension. It is the fallback
// identity for matching old vs new lines when a line id is absent, and the
// key for aggregating balance deltas.
type Pair struct {
	ResourceID id.ID
	UnitID     id.ID
}

// PairOf returns the line's dimension key.
func (l Line) PairOf() Pair {
	return Pair{ResourceID: l.ResourceID, UnitID: l.UnitID}
}

// New creates a receipt header with generated ID.
func New(number string, date time.Time) *Receipt {
	return &Receipt{
		ID:     id.New(),
		Number: number,
		Date:   date,
		Lines:  make([]Line, 0),
	}
}

// NewLine creates a line with generated ID.
func NewLine(receiptID, resourceID, unitID id.ID, qty types.Quantity) Line {
	return Line{
		ID:         id.New(),
		ReceiptID:  receiptID,
		ResourceID: resourceID,
		UnitID:     unitID,
		Quantity:   qty,
	}
}

// NormalizeNumber is the canonical form used for number uniqueness:
// trimmed and case-folded.
func NormalizeNumber(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Validate checks header invariants (no database access).
func (r *Receipt) Validate(ctx context.Context) error {
	if strings.TrimSpace(r.Number) == "" {
		return apperror.NewValidation("document number is required").
			WithDetail("field", "number")
	}
	if len(r.Number) > MaxNumberLength {
		return apperror.NewValidation("document number is too long").
			WithDetail("field", "number").
			WithDetail("max_length", MaxNumberLength)
	}
	if r.Date.IsZero() {
		return apperror.NewValidation("document date is required").
			WithDetail("field", "date")
	}
	return nil
}
