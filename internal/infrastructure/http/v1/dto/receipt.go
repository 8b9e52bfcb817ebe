package dto

import (
	"time"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
	"sklad/internal/domain/documents/receipt"
)

// --- Receipt DTOs ---

// ReceiptLineResponse is one line of a receipt.
type ReceiptLineResponse struct {
	ID         string         `json:"id"`
	ResourceID string         `json:"resourceId"`
	UnitID     string         `json:"unitId"`
	Quantity   types.Quantity `json:"quantity"`
}

// ReceiptResponse contains receipt fields with lines.
type ReceiptResponse struct {
	ID     string                `json:"id"`
	Number string                `json:"number"`
	Date   time.Time             `json:"date"`
	Lines  []ReceiptLineResponse `json:"lines"`
}

// FromReceipt creates ReceiptResponse from the domain model.
func FromReceipt(rec *receipt.Receipt) ReceiptResponse {
	lines := make([]ReceiptLineResponse, len(rec.Lines))
	for i, l := range rec.Lines {
		lines[i] = ReceiptLineResponse{
			ID:         l.ID.String(),
			ResourceID: l.ResourceID.String(),
			UnitID:     l.UnitID.String(),
			Quantity:   l.Quantity,
		}
	}
	return ReceiptResponse{
		ID:     rec.ID.String(),
		Number: rec.Number,
		Date:   rec.Date,
		Lines:  lines,
	}
}

// ReceiptLineRequest is one line in a create or replace request.
// ID is optional: when set it matches an existing line, when empty the line
// is treated as new.
type ReceiptLineRequest struct {
	ID         string         `json:"id"`
	ResourceID string         `json:"resourceId" binding:"required"`
	UnitID     string         `json:"unitId" binding:"required"`
	Quantity   types.Quantity `json:"quantity" binding:"required"`
}

// ToLine converts the request to a domain line.
func (r ReceiptLineRequest) ToLine(receiptID id.ID) (receipt.Line, error) {
	line := receipt.Line{
		ReceiptID: receiptID,
		Quantity:  types.NormalizeQuantity(r.Quantity),
	}

	if r.ID != "" {
		lineID, err := id.Parse(r.ID)
		if err != nil {
			return receipt.Line{}, apperror.NewValidation("invalid line id").WithDetail("value", r.ID)
		}
		line.ID = lineID
	}

	resourceID, err := id.Parse(r.ResourceID)
	if err != nil {
		return receipt.Line{}, apperror.NewValidation("invalid resource id").WithDetail("value", r.ResourceID)
	}
	line.ResourceID = resourceID

	unitID, err := id.Parse(r.UnitID)
	if err != nil {
		return receipt.Line{}, apperror.NewValidation("invalid unit id").WithDetail("value", r.UnitID)
	}
	line.UnitID = unitID

	return line, nil
}

// ToLines converts a batch of line requests.
func ToLines(receiptID id.ID, reqs []ReceiptLineRequest) ([]receipt.Line, error) {
	lines := make([]receipt.Line, len(reqs))
	for i, r := range reqs {
		line, err := r.ToLine(receiptID)
		if err != nil {
			return nil, err
		}
		lines[i] = line
	}
	return lines, nil
}

// CreateReceiptRequest for creating a receipt, optionally with lines.
type CreateReceiptRequest struct {
	Number string               `json:"number" binding:"required"`
	Date   time.Time            `json:"date" binding:"required"`
	Lines  []ReceiptLineRequest `json:"lines"`
}

// ToEntity converts the request to a domain receipt.
func (r CreateReceiptRequest) ToEntity() (*receipt.Receipt, error) {
	rec := receipt.New(r.Number, r.Date)
	lines, err := ToLines(rec.ID, r.Lines)
	if err != nil {
		return nil, err
	}
	rec.Lines = lines
	return rec, nil
}

// UpdateReceiptRequest for rewriting number and date.
type UpdateReceiptRequest struct {
	Number string    `json:"number" binding:"required"`
	Date   time.Time `json:"date" binding:"required"`
}

// ReplaceLinesRequest for swapping the whole line set.
type ReplaceLinesRequest struct {
	Lines []ReceiptLineRequest `json:"lines"`
}
