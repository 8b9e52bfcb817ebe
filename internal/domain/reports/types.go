// Package reports provides read-side report generation services.
package reports

import (
	"time"

	"sklad/internal/core/id"
	"sklad/internal/core/types"
)

// --- Receipt Journal ---

// ReceiptJournalFilter defines the filter for the receipt journal.
type ReceiptJournalFilter struct {
	// Period. To is inclusive by day: rows dated any time during the To
	// day are included.
	From *time.Time
	To   *time.Time

	// Exact-match filters
	Numbers     []string
	ResourceIDs []id.ID
	UnitIDs     []id.ID

	// Pagination
	Limit  int
	Offset int
}

// ReceiptJournalLine is one line of a receipt in the journal, with
// catalog names resolved.
type ReceiptJournalLine struct {
	ID           id.ID          `json:"id"`
	ResourceID   id.ID          `json:"resourceId"`
	ResourceName string         `json:"resourceName"`
	UnitID       id.ID          `json:"unitId"`
	UnitName     string         `json:"unitName"`
	Quantity     types.Quantity `json:"quantity"`
}

// ReceiptJournalItem is a receipt with its (possibly filtered) lines.
type ReceiptJournalItem struct {
	ID     id.ID                `json:"id"`
	Number string               `json:"number"`
	Date   time.Time            `json:"date"`
	Lines  []ReceiptJournalLine `json:"lines"`
}

// ReceiptJournal is the full journal result.
type ReceiptJournal struct {
	Items      []ReceiptJournalItem `json:"items"`
	TotalCount int                  `json:"totalCount"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// --- Warehouse Balances ---

// BalanceReportFilter defines the filter for the balances report.
type BalanceReportFilter struct {
	ResourceIDs []id.ID
	UnitIDs     []id.ID

	// Pagination
	Limit  int
	Offset int
}

// BalanceReportItem is one stock row with catalog names resolved.
type BalanceReportItem struct {
	ResourceID   id.ID          `db:"resource_id" json:"resourceId"`
	ResourceName string         `db:"resource_name" json:"resourceName"`
	UnitID       id.ID          `db:"unit_id" json:"unitId"`
	UnitName     string         `db:"unit_name" json:"unitName"`
	Quantity     types.Quantity `db:"quantity" json:"quantity"`
}

// BalanceReport is the full balances result.
type BalanceReport struct {
	Items      []BalanceReportItem `json:"items"`
	TotalCount int                 `json:"totalCount"`
}
