package handlers

import (
	"context"

	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/domain/catalogs/unit"
	"sklad/internal/infrastructure/http/v1/dto"
)

// NewUnitHandler wires the unit service into the shared catalog handler.
func NewUnitHandler(base *BaseHandler, service *unit.Service) *CatalogHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig{
		EntityName: "unit",

		List: func(ctx context.Context) ([]dto.CatalogResponse, error) {
			items, err := service.List(ctx)
			if err != nil {
				return nil, err
			}
			result := make([]dto.CatalogResponse, len(items))
			for i, u := range items {
				result[i] = dto.FromUnit(u)
			}
			return result, nil
		},

		Get: func(ctx context.Context, entityID id.ID) (dto.CatalogResponse, error) {
			u, err := service.GetByID(ctx, entityID)
			if err != nil {
				return dto.CatalogResponse{}, err
			}
			return dto.FromUnit(u), nil
		},

		Create: func(ctx context.Context, name string) (id.ID, error) {
			u := unit.New(name)
			if err := service.Create(ctx, u); err != nil {
				return id.Nil(), err
			}
			return u.ID, nil
		},

		Update: func(ctx context.Context, entityID id.ID, name string) (dto.CatalogResponse, error) {
			existing, err := service.GetByID(ctx, entityID)
			if err != nil {
				return dto.CatalogResponse{}, err
			}
			existing.Name = name
			if err := service.Update(ctx, existing); err != nil {
				return dto.CatalogResponse{}, err
			}
			return dto.FromUnit(existing), nil
		},

		SetStatus: func(ctx context.Context, entityID id.ID, status entity.Status) (dto.CatalogResponse, error) {
			u, err := service.SetStatus(ctx, entityID, status)
			if err != nil {
				return dto.CatalogResponse{}, err
			}
			return dto.FromUnit(u), nil
		},

		Delete: service.Delete,
	})
}
