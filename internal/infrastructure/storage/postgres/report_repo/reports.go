// Package report_repo provides PostgreSQL implementations for report
// repositories.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"sklad/internal/core/id"
	"sklad/internal/core/types"
	"sklad/internal/domain/reports"
	"sklad/internal/infrastructure/storage/postgres"
)

// Compile-time check.
var _ reports.Repository = (*ReportRepo)(nil)

// ReportRepo implements reports.Repository.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

type journalHeaderRow struct {
	ID     id.ID     `db:"id"`
	Number string    `db:"number"`
	Date   time.Time `db:"date"`
}

type journalLineRow struct {
	ID           id.ID          `db:"id"`
	ReceiptID    id.ID          `db:"receipt_id"`
	ResourceID   id.ID          `db:"resource_id"`
	ResourceName string         `db:"resource_name"`
	UnitID       id.ID          `db:"unit_id"`
	UnitName     string         `db:"unit_name"`
	Quantity     types.Quantity `db:"quantity"`
}

// journalConditions builds the header-level WHERE clauses shared by the
// page query and the count query.
func (r *ReportRepo) journalConditions(q squirrel.SelectBuilder, filter reports.ReceiptJournalFilter) squirrel.SelectBuilder {
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"r.date": *filter.From})
	}
	if filter.To != nil {
		// Inclusive by day: anything before midnight after the To date.
		dayAfter := filter.To.Truncate(24 * time.Hour).Add(24 * time.Hour)
		q = q.Where(squirrel.Lt{"r.date": dayAfter})
	}
	if len(filter.Numbers) > 0 {
		q = q.Where(squirrel.Eq{"upper(trim(r.number))": filter.Numbers})
	}
	if len(filter.ResourceIDs) > 0 {
		q = q.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM receipt_lines l WHERE l.receipt_id = r.id AND l.resource_id = ANY(?))",
			filter.ResourceIDs))
	}
	if len(filter.UnitIDs) > 0 {
		q = q.Where(squirrel.Expr(
			"EXISTS (SELECT 1 FROM receipt_lines l WHERE l.receipt_id = r.id AND l.unit_id = ANY(?))",
			filter.UnitIDs))
	}
	return q
}

// GetReceiptJournal returns a page of receipts with name-resolved lines.
// When resource or unit filters are set, a receipt qualifies if any line
// matches, and only matching lines are shown.
func (r *ReportRepo) GetReceiptJournal(ctx context.Context, filter reports.ReceiptJournalFilter) (*reports.ReceiptJournal, error) {
	querier := r.txm.GetQuerier(ctx)

	headerQ := r.journalConditions(
		r.builder.Select("r.id", "r.number", "r.date").From("receipts r"),
		filter,
	).
		OrderBy("r.date DESC", "r.number ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err := headerQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build header query: %w", err)
	}

	var headers []journalHeaderRow
	if err := pgxscan.Select(ctx, querier, &headers, sql, args...); err != nil {
		return nil, fmt.Errorf("select headers: %w", err)
	}

	countQ := r.journalConditions(
		r.builder.Select("COUNT(*)").From("receipts r"),
		filter,
	)
	sql, args, err = countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count headers: %w", err)
	}

	journal := &reports.ReceiptJournal{
		Items:      make([]reports.ReceiptJournalItem, 0, len(headers)),
		TotalCount: total,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	}
	if len(headers) == 0 {
		return journal, nil
	}

	receiptIDs := make([]id.ID, len(headers))
	for i, h := range headers {
		receiptIDs[i] = h.ID
	}

	lineQ := r.builder.
		Select(
			"l.id", "l.receipt_id",
			"l.resource_id", "res.name AS resource_name",
			"l.unit_id", "u.name AS unit_name",
			"l.quantity",
		).
		From("receipt_lines l").
		Join("resources res ON res.id = l.resource_id").
		Join("units u ON u.id = l.unit_id").
		Where(squirrel.Expr("l.receipt_id = ANY(?)", receiptIDs)).
		OrderBy("l.receipt_id", "l.id")
	if len(filter.ResourceIDs) > 0 {
		lineQ = lineQ.Where(squirrel.Expr("l.resource_id = ANY(?)", filter.ResourceIDs))
	}
	if len(filter.UnitIDs) > 0 {
		lineQ = lineQ.Where(squirrel.Expr("l.unit_id = ANY(?)", filter.UnitIDs))
	}

	sql, args, err = lineQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build line query: %w", err)
	}

	var lineRows []journalLineRow
	if err := pgxscan.Select(ctx, querier, &lineRows, sql, args...); err != nil {
		return nil, fmt.Errorf("select lines: %w", err)
	}

	linesByReceipt := make(map[id.ID][]reports.ReceiptJournalLine, len(headers))
	for _, row := range lineRows {
		linesByReceipt[row.ReceiptID] = append(linesByReceipt[row.ReceiptID], reports.ReceiptJournalLine{
			ID:           row.ID,
			ResourceID:   row.ResourceID,
			ResourceName: row.ResourceName,
			UnitID:       row.UnitID,
			UnitName:     row.UnitName,
			Quantity:     row.Quantity,
		})
	}

	for _, h := range headers {
		journal.Items = append(journal.Items, reports.ReceiptJournalItem{
			ID:     h.ID,
			Number: h.Number,
			Date:   h.Date,
			Lines:  linesByReceipt[h.ID],
		})
	}

	return journal, nil
}

// GetDistinctNumbers returns every receipt number in use, sorted.
func (r *ReportRepo) GetDistinctNumbers(ctx context.Context) ([]string, error) {
	q := r.builder.
		Select("DISTINCT number").
		From("receipts").
		OrderBy("number ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var numbers []string
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &numbers, sql, args...); err != nil {
		return nil, fmt.Errorf("select numbers: %w", err)
	}
	return numbers, nil
}

// GetBalanceReport returns stock rows with catalog names resolved.
func (r *ReportRepo) GetBalanceReport(ctx context.Context, filter reports.BalanceReportFilter) (*reports.BalanceReport, error) {
	querier := r.txm.GetQuerier(ctx)

	conditions := func(q squirrel.SelectBuilder) squirrel.SelectBuilder {
		if len(filter.ResourceIDs) > 0 {
			q = q.Where(squirrel.Expr("b.resource_id = ANY(?)", filter.ResourceIDs))
		}
		if len(filter.UnitIDs) > 0 {
			q = q.Where(squirrel.Expr("b.unit_id = ANY(?)", filter.UnitIDs))
		}
		return q
	}

	rowQ := conditions(r.builder.
		Select(
			"b.resource_id", "res.name AS resource_name",
			"b.unit_id", "u.name AS unit_name",
			"b.quantity",
		).
		From("warehouse_balances b").
		Join("resources res ON res.id = b.resource_id").
		Join("units u ON u.id = b.unit_id")).
		OrderBy("res.name ASC", "u.name ASC").
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Offset))

	sql, args, err := rowQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []reports.BalanceReportItem
	if err := pgxscan.Select(ctx, querier, &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select balances: %w", err)
	}

	countQ := conditions(r.builder.Select("COUNT(*)").From("warehouse_balances b"))
	sql, args, err = countQ.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count query: %w", err)
	}

	var total int
	if err := querier.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count balances: %w", err)
	}

	return &reports.BalanceReport{Items: items, TotalCount: total}, nil
}
