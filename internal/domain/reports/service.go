package reports

import (
	"context"
	"fmt"
	"strings"

	"sklad/internal/core/apperror"
)

// Service provides report generation operations.
type Service struct {
	repo Repository
}

// NewService creates a new reports service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetReceiptJournal returns receipts matching the filter, lines included.
func (s *Service) GetReceiptJournal(ctx context.Context, filter ReceiptJournalFilter) (*ReceiptJournal, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, apperror.NewValidation("period start must not be after period end")
	}

	// Number filters match the stored normalized form.
	for i, n := range filter.Numbers {
		filter.Numbers[i] = strings.ToUpper(strings.TrimSpace(n))
	}

	// Set default pagination
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	journal, err := s.repo.GetReceiptJournal(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get receipt journal: %w", err)
	}

	return journal, nil
}

// GetDistinctNumbers returns every receipt number in use, for filter
// drop-downs on the client.
func (s *Service) GetDistinctNumbers(ctx context.Context) ([]string, error) {
	numbers, err := s.repo.GetDistinctNumbers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get distinct numbers: %w", err)
	}
	return numbers, nil
}

// GetBalances returns current stock rows matching the filter.
func (s *Service) GetBalances(ctx context.Context, filter BalanceReportFilter) (*BalanceReport, error) {
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > 1000 {
		filter.Limit = 1000
	}

	report, err := s.repo.GetBalanceReport(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get balance report: %w", err)
	}

	return report, nil
}
