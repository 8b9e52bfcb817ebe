package receipt

import (
	"context"

	"sklad/internal/core/id"
)

// Repository defines persistence for receipt headers and lines.
type Repository interface {
	// GetByID retrieves a header (without lines).
	// Returns a NotFound AppError when absent.
	GetByID(ctx context.Context, receiptID id.ID) (*Receipt, error)

	// Create inserts a header.
	Create(ctx context.Context, rec *Receipt) error

	// Update rewrites number and date of an existing header.
	Update(ctx context.Context, rec *Receipt) error

	// Delete removes a header; line rows cascade.
	Delete(ctx context.Context, receiptID id.ID) error

	// GetLines retrieves all lines of a receipt.
	GetLines(ctx context.Context, receiptID id.ID) ([]Line, error)

	// GetLineByID retrieves a single line.
	// Returns a NotFound AppError when absent.
	GetLineByID(ctx context.Context, lineID id.ID) (*Line, error)

	// InsertLines batch inserts lines.
	InsertLines(ctx context.Context, lines []Line) error

	// DeleteLines removes all lines of a receipt.
	DeleteLines(ctx context.Context, receiptID id.ID) error

	// DeleteLine removes a single line.
	DeleteLine(ctx context.Context, lineID id.ID) error

	// NumberExists checks normalized-number uniqueness, excluding excludeID
	// when non-nil.
	NumberExists(ctx context.Context, normalizedNumber string, excludeID id.ID) (bool, error)
}
