package resource

import (
	"context"
	"fmt"

	"sklad/internal/core/apperror"
	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/core/tx"
	"sklad/pkg/logger"
)

// Service provides business operations for the Resource catalog.
type Service struct {
	repo      Repository
	txManager tx.Manager
}

// NewService creates a new Resource service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
	}
}

// List retrieves all resources ordered by name.
func (s *Service) List(ctx context.Context) ([]*Resource, error) {
	return s.repo.List(ctx)
}

// GetByID retrieves a resource.
func (s *Service) GetByID(ctx context.Context, resourceID id.ID) (*Resource, error) {
	return s.repo.GetByID(ctx, resourceID)
}

// Create validates and persists a new resource.
func (s *Service) Create(ctx context.Context, res *Resource) error {
	if err := s.validateForSave(ctx, res, id.Nil()); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Create(ctx, res)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "resource created", "id", res.ID, "name", res.Name)
	return nil
}

// Update validates and saves new name/status for an existing resource.
func (s *Service) Update(ctx context.Context, res *Resource) error {
	existing, err := s.repo.GetByID(ctx, res.ID)
	if err != nil {
		return err
	}

	if err := s.validateForSave(ctx, res, res.ID); err != nil {
		return err
	}

	existing.Name = res.Name
	existing.Status = res.Status

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, existing)
	})
	if err != nil {
		return err
	}

	*res = *existing
	return nil
}

// SetStatus toggles the archive flag.
func (s *Service) SetStatus(ctx context.Context, resourceID id.ID, status entity.Status) (*Resource, error) {
	if !entity.IsValidStatus(status) {
		return nil, apperror.NewValidation("invalid status").
			WithDetail("value", string(status))
	}

	res, err := s.repo.GetByID(ctx, resourceID)
	if err != nil {
		return nil, err
	}

	res.Status = status

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Update(ctx, res)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "resource status changed", "id", res.ID, "status", status)
	return res, nil
}

// Delete removes a resource that is not referenced by any receipt line.
// Referenced resources can only be archived.
func (s *Service) Delete(ctx context.Context, resourceID id.ID) error {
	if _, err := s.repo.GetByID(ctx, resourceID); err != nil {
		return err
	}

	inUse, err := s.repo.InUse(ctx, resourceID)
	if err != nil {
		return fmt.Errorf("check resource usage: %w", err)
	}
	if inUse {
		return apperror.NewValidationList([]string{
			"resource is used by receipt lines and cannot be deleted, archive it instead",
		})
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, resourceID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "resource deleted", "id", resourceID)
	return nil
}

func (s *Service) validateForSave(ctx context.Context, res *Resource, excludeID id.ID) error {
	var errs []string

	if err := res.Validate(ctx); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			errs = append(errs, appErr.Message)
		} else {
			return err
		}
	}

	if res.Name != "" {
		exists, err := s.repo.ExistsByName(ctx, entity.NormalizeName(res.Name), excludeID)
		if err != nil {
			return fmt.Errorf("check name uniqueness: %w", err)
		}
		if exists {
			errs = append(errs, fmt.Sprintf("resource with name '%s' already exists", res.Name))
		}
	}

	if len(errs) > 0 {
		return apperror.NewValidationList(errs)
	}
	return nil
}
