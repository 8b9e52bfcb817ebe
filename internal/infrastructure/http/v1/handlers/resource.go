package handlers

import (
	"context"

	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/domain/catalogs/resource"
	"sklad/internal/infrastructure/http/v1/dto"
)

// NewResourceHandler wires the resource service into the shared catalog handler.
func NewResourceHandler(base *BaseHandler, service *resource.Service) *CatalogHandler {
	return NewCatalogHandler(base, CatalogHandlerConfig{
		EntityName: "resource",

		List: func(ctx context.Context) ([]dto.CatalogResponse, error) {
			items, err := service.List(ctx)
			if err != nil {
				return nil, err
			}
			result := make([]dto.CatalogResponse, len(items))
			for i, r := range items {
				result[i] = dto.FromResource(r)
			}
			return result, nil
		},

		Get: func(ctx context.Context, entityID id.ID) (dto.CatalogResponse, error) {
			r, err := service.GetByID(ctx, entityID)
			if err != nil {
				return dto.CatalogResponse{}, err
			}
			return dto.FromResource(r), nil
		},

		Create: func(ctx context.Context, name string) (id.ID, error) {
			r := resource.New(name)
			if err := service.Create(ctx, r); err != nil {
				return id.Nil(), err
			}
			return r.ID, nil
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
			return dto.FromResource(existing), nil
		},

		SetStatus: func(ctx context.Context, entityID id.ID, status entity.Status) (dto.CatalogResponse, error) {
			r, err := service.SetStatus(ctx, entityID, status)
			if err != nil {
				return dto.CatalogResponse{}, err
			}
			return dto.FromResource(r), nil
		},

		Delete: service.Delete,
	})
}
