package reports

import (
	"context"
)

// Repository defines report data access.
type Repository interface {
	// Receipt journal
	GetReceiptJournal(ctx context.Context, filter ReceiptJournalFilter) (*ReceiptJournal, error)
	GetDistinctNumbers(ctx context.Context) ([]string, error)

	// Warehouse balances
	GetBalanceReport(ctx context.Context, filter BalanceReportFilter) (*BalanceReport, error)
}
