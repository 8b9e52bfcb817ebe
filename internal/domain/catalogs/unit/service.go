package unit

import (
	"context"
	"fmt"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/tx"
	"sklad/pkg/logger"
)

// Service provides business operations for the Unit catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Unit service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// List retrieves all units ordered by name.
func (s *Service) List(ctx context.Context) ([]*Unit, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a unit.
func (s *Service) GetByID(ctx context.Context, unitID id.ID) (*Unit, error) {
	return s.repo.GetByID(ctx, unitID)
}

// Create validates and persists a new unit.
func (s *Service) Create(ctx context.Context, u *Unit) error {
	if err := s.validateForSave(ctx, u, id.Nil()); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, u)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "unit created", "id", u.ID, "name", u.Name)
	return nil
}

// Update validates and saves new name/status for an existing unit.
func (s *Service) Update(ctx context.Context, u *Unit) error {
	existing, err := s.repo.GetByID(ctx, u.ID)
	if err != nil {
		return err
	}

	if err := s.validateForSave(ctx, u, u.ID); err != nil {
		return err
	}

	existing.Name = u.Name
	existing.Status = u.Status

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, existing)
	})
	if err != nil {
		return err
	}

	*u = *existing
	return nil
}

// SetStatus toggles the archive flag.
func (s *Service) SetStatus(ctx context.Context, unitID id.ID, status entity.Status) (*Unit, error) {
	if !entity.IsValidStatus(status) {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("value", string(status))
	}

	u, err := s.repo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	u.Status = status

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, u)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "unit status changed", "id", u.ID, "status", status)
	return u, nil
}

// Delete removes a unit that is not referenced by any receipt line.
func (s *Service) Delete(ctx context.Context, unitID id.ID) error {
	if _, err := s.repo.GetByID(ctx, unitID); err != nil {
		return err
	}

	inUse, err := s.repo.InUse(ctx, unitID)
	if err != nil {
		return fmt.Errorf("check unit usage: %w", err)
	}
	if inUse {
		return apperror.NewValidationList([]string{
			"unit is used by receipt lines and cannot be deleted, archive it instead",
		})
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, unitID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "unit deleted", "id", unitID)
	return nil
}

func (s *Service) validateForSave(ctx context.Context, u *Unit, excludeID id.ID) error {
	var errs []string

	if err := u.Validate(ctx); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			errs = append(errs, appErr.Message)
		} else {
			return err
		}
	}

	if u.Name != "" {
		exists, err := s.repo.ExistsByName(ctx, entity.NormalizeName(u.Name), excludeID)
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			errs = append(errs, fmt.Sprintf("unit with name '%s' already exists", u.Name))
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}
