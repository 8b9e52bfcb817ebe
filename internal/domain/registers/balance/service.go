package balance

import (
	"context"
	"fmt"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/types"
	"sklad/pkg/logger"
)

// Service provides the atomic ledger primitives. Transactions are managed by
// the caller (the receipt service); every mutation here assumes it runs
// inside one.
type Service struct {
	repo Repository
}

// NewService creates a new balance register service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CheckAvailability reports whether qty can be subtracted from the pair's
// balance. Non-positive quantities are trivially available.
//
// This is the read-only pre-check; the authoritative check happens again in
// Decrease under a row lock.
func (s *Service) CheckAvailability(ctx context.Context, resourceID, unitID id.ID, qty types.Quantity) (bool, error) {
	if qty.Sign() <= 0 {
		return true, nil
	}

	bal, found, err := s.repo.Get(ctx, resourceID, unitID)
	if err != nil {
		return false, fmt.Errorf("get balance: %w", err)
	}
	if !found {
		return false, nil
	}

	return bal.Quantity.GreaterThanOrEqual(qty), nil
}

// Get returns the current quantity for a pair; an absent row reads as zero.
func (s *Service) Get(ctx context.Context, resourceID, unitID id.ID) (types.Quantity, error) {
	bal, found, err := s.repo.Get(ctx, resourceID, unitID)
	if err != nil {
		return types.ZeroQuantity(), fmt.Errorf("get balance: %w", err)
	}
	if !found {
		return types.ZeroQuantity(), nil
	}
	return bal.Quantity, nil
}

// Increase adds qty to the pair's balance, creating the row lazily.
// No-op for non-positive quantities.
func (s *Service) Increase(ctx context.Context, resourceID, unitID id.ID, qty types.Quantity) error {
	if qty.Sign() <= 0 {
		return nil
	}

	bal, found, err := s.repo.GetForUpdate(ctx, resourceID, unitID)
	if err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}

	if !found {
		if err := s.repo.Insert(ctx, entity.NewBalance(resourceID, unitID, qty)); err != nil {
			return fmt.Errorf("insert balance: %w", err)
		}
		return nil
	}

	if err := s.repo.SetQuantity(ctx, bal.ID, bal.Quantity.Add(qty)); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// Decrease subtracts qty from the pair's balance. No-op for non-positive
// quantities. The row is locked for the duration of the transaction, and the
// sufficiency check is repeated under that lock: a stale read-time pre-check
// surfaces here as an insufficient-stock error, which the caller must treat
// as fatal for the whole transaction.
//
// A row whose quantity reaches exactly zero is deleted, not kept at zero.
func (s *Service) Decrease(ctx context.Context, resourceID, unitID id.ID, qty types.Quantity) error {
	if qty.Sign() <= 0 {
		return nil
	}

	bal, found, err := s.repo.GetForUpdate(ctx, resourceID, unitID)
	if err != nil {
		return fmt.Errorf("lock balance: %w", err)
	}

	if !found || bal.Quantity.LessThan(qty) {
		available := types.ZeroQuantity()
		if found {
			available = bal.Quantity
		}
		return apperror.NewInsufficientStock(
			resourceID.String(), unitID.String(),
			qty.String(), available.String(),
		)
	}

	remaining := bal.Quantity.Sub(qty)
	if remaining.IsZero() {
		if err := s.repo.Delete(ctx, bal.ID); err != nil {
			return fmt.Errorf("delete zero balance: %w", err)
		}
		logger.Debug(ctx, "balance row removed at zero",
			"resource_id", resourceID, "unit_id", unitID)
		return nil
	}

	if err := s.repo.SetQuantity(ctx, bal.ID, remaining); err != nil {
		return fmt.Errorf("update balance: %w", err)
	}
	return nil
}

// List returns all balance rows. Name resolution is the reports service's
// job, not this register's.
func (s *Service) List(ctx context.Context) ([]entity.Balance, error) {
	return s.repo.List(ctx)
}
