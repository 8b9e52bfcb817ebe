package dto

import (
	"time"

	"sklad/internal/core/apperror"
	"sklad/internal/core/id"
	"sklad/internal/domain/reports"
)

// --- Report query DTOs ---

// ReceiptJournalQuery binds journal filter query parameters.
type ReceiptJournalQuery struct {
	From        *time.Time `form:"from" time_format:"2006-01-02"`
	To          *time.Time `form:"to" time_format:"2006-01-02"`
	Numbers     []string   `form:"numbers"`
	ResourceIDs []string   `form:"resourceIds"`
	UnitIDs     []string   `form:"unitIds"`
	Limit       int        `form:"limit"`
	Offset      int        `form:"offset"`
}

// ToFilter converts the query to a domain filter.
func (q ReceiptJournalQuery) ToFilter() (reports.ReceiptJournalFilter, error) {
	resourceIDs, err := parseIDs(q.ResourceIDs, "resource id")
	if err != nil {
		return reports.ReceiptJournalFilter{}, err
	}
	unitIDs, err := parseIDs(q.UnitIDs, "unit id")
	if err != nil {
		return reports.ReceiptJournalFilter{}, err
	}

	return reports.ReceiptJournalFilter{
		From:        q.From,
		To:          q.To,
		Numbers:     q.Numbers,
		ResourceIDs: resourceIDs,
		UnitIDs:     unitIDs,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, nil
}

// BalanceQuery binds balance report query parameters.
type BalanceQuery struct {
	ResourceIDs []string `form:"resourceIds"`
	UnitIDs     []string `form:"unitIds"`
	Limit       int      `form:"limit"`
	Offset      int      `form:"offset"`
}

// ToFilter converts the query to a domain filter.
func (q BalanceQuery) ToFilter() (reports.BalanceReportFilter, error) {
	resourceIDs, err := parseIDs(q.ResourceIDs, "resource id")
	if err != nil {
		return reports.BalanceReportFilter{}, err
	}
	unitIDs, err := parseIDs(q.UnitIDs, "unit id")
	if err != nil {
		return reports.BalanceReportFilter{}, err
	}

	return reports.BalanceReportFilter{
		ResourceIDs: resourceIDs,
		UnitIDs:     unitIDs,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}, nil
}

func parseIDs(values []string, what string) ([]id.ID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]id.ID, len(values))
	for i, v := range values {
		parsed, err := id.Parse(v)
		if err != nil {
			return nil, apperror.NewValidation("invalid " + what).WithDetail("value", v)
		}
		ids[i] = parsed
	}
	return ids, nil
}
