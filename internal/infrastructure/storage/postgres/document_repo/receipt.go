// Package document_repo provides PostgreSQL implementations for document
// repositories.
package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/domain/documents/receipt"
	"sklad/internal/infrastructure/storage/postgres"
)

const (
	receiptTable = "receipts"
	lineTable    = "receipt_lines"
)

// Compile-time check.
var _ receipt.Repository = (*ReceiptRepo)(nil)

// ReceiptRepo implements receipt.Repository.
type ReceiptRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReceiptRepo creates a new receipt repository.
func NewReceiptRepo(txm *postgres.TxManager) *ReceiptRepo {
	return &ReceiptRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetByID retrieves a header without lines.
func (r *ReceiptRepo) GetByID(ctx context.Context, receiptID id.ID) (*receipt.Receipt, error) {
	q := r.builder.
		Select("id", "number", "date").
		From(receiptTable).
		Where(squirrel.Eq{"id": receiptID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec receipt.Receipt
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("receipt", receiptID)
		}
		return nil, fmt.Errorf("get receipt: %w", err)
	}
	return &rec, nil
}

// Create inserts a header.
func (r *ReceiptRepo) Create(ctx context.Context, rec *receipt.Receipt) error {
	q := r.builder.
		Insert(receiptTable).
		Columns("id", "number", "date").
		Values(rec.ID, rec.Number, rec.Date)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert receipt: %w", err)
	}
	return nil
}

// Update rewrites number and date.
func (r *ReceiptRepo) Update(ctx context.Context, rec *receipt.Receipt) error {
	q := r.builder.
		Update(receiptTable).
		Set("number", rec.Number).
		Set("date", rec.Date).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("receipt", rec.ID)
	}
	return nil
}

// Delete removes a header. Line rows cascade via the FK.
func (r *ReceiptRepo) Delete(ctx context.Context, receiptID id.ID) error {
	q := r.builder.
		Delete(receiptTable).
		Where(squirrel.Eq{"id": receiptID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete receipt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("receipt", receiptID)
	}
	return nil
}

func (r *ReceiptRepo) lineSelect() squirrel.SelectBuilder {
	return r.builder.
		Select("id", "receipt_id", "resource_id", "unit_id", "quantity").
		From(lineTable)
}

// GetLines retrieves all lines of a receipt in insertion order.
func (r *ReceiptRepo) GetLines(ctx context.Context, receiptID id.ID) ([]receipt.Line, error) {
	q := r.lineSelect().
		Where(squirrel.Eq{"receipt_id": receiptID}).
		OrderBy("id ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []receipt.Line
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}
	return lines, nil
}

// GetLineByID retrieves a single line.
func (r *ReceiptRepo) GetLineByID(ctx context.Context, lineID id.ID) (*receipt.Line, error) {
	q := r.lineSelect().Where(squirrel.Eq{"id": lineID})

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var line receipt.Line
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &line, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("receipt line", lineID)
		}
		return nil, fmt.Errorf("get line: %w", err)
	}
	return &line, nil
}

// InsertLines batch inserts lines.
func (r *ReceiptRepo) InsertLines(ctx context.Context, lines []receipt.Line) error {
	if len(lines) == 0 {
		return nil
	}

	q := r.builder.
		Insert(lineTable).
		Columns("id", "receipt_id", "resource_id", "unit_id", "quantity")
	for _, line := range lines {
		q = q.Values(line.ID, line.ReceiptID, line.ResourceID, line.UnitID, line.Quantity)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}
	return nil
}

// DeleteLines removes all lines of a receipt.
func (r *ReceiptRepo) DeleteLines(ctx context.Context, receiptID id.ID) error {
	q := r.builder.
		Delete(lineTable).
		Where(squirrel.Eq{"receipt_id": receiptID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("delete lines: %w", err)
	}
	return nil
}

// DeleteLine removes a single line.
func (r *ReceiptRepo) DeleteLine(ctx context.Context, lineID id.ID) error {
	q := r.builder.
		Delete(lineTable).
		Where(squirrel.Eq{"id": lineID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete line: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("receipt line", lineID)
	}
	return nil
}

// NumberExists checks uniqueness against the normalized (trimmed,
// upper-cased) form of stored numbers.
func (r *ReceiptRepo) NumberExists(ctx context.Context, normalizedNumber string, excludeID id.ID) (bool, error) {
	inner := r.builder.
		Select("1").
		From(receiptTable).
		Where(squirrel.Expr("upper(trim(number)) = ?", normalizedNumber))
	if !id.IsNil(excludeID) {
		inner = inner.Where(squirrel.NotEq{"id": excludeID})
	}

	innerSQL, args, err := inner.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var exists bool
	row := r.txm.GetQuerier(ctx).QueryRow(ctx, "SELECT EXISTS ("+innerSQL+")", args...)
	if err := row.Scan(&exists); err != nil {
		return false, fmt.Errorf("number exists: %w", err)
	}
	return exists, nil
}
