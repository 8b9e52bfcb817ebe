package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"sklad/internal/core/entity"
	"sklad/internal/core/id"
	"sklad/internal/infrastructure/http/v1/dto"
)

// CatalogHandlerConfig wires a concrete catalog service into the shared
// handler. Resources and units expose the same operations, so one handler
// serves both.
type CatalogHandlerConfig struct {
	EntityName string

	List      func(ctx context.Context) ([]dto.CatalogResponse, error)
	Get       func(ctx context.Context, entityID id.ID) (dto.CatalogResponse, error)
	Create    func(ctx context.Context, name string) (id.ID, error)
	Update    func(ctx context.Context, entityID id.ID, name string) (dto.CatalogResponse, error)
	SetStatus func(ctx context.Context, entityID id.ID, status entity.Status) (dto.CatalogResponse, error)
	Delete    func(ctx context.Context, entityID id.ID) error
}

// CatalogHandler serves CRUD endpoints for one catalog.
type CatalogHandler struct {
	base *BaseHandler
	cfg  CatalogHandlerConfig
}

// NewCatalogHandler creates a handler from a config.
func NewCatalogHandler(base *BaseHandler, cfg CatalogHandlerConfig) *CatalogHandler {
	return &CatalogHandler{base: base, cfg: cfg}
}

// List handles GET /
func (h *CatalogHandler) List(c *gin.Context) {
	items, err := h.cfg.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.ListResponse{Items: items, TotalCount: len(items)})
}

// Options handles GET /options. Same rows as List, stripped to id+name
// for filter dropdowns.
func (h *CatalogHandler) Options(c *gin.Context) {
	items, err := h.cfg.List(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	opts := dto.OptionsFromCatalog(items)
	h.base.OK(c, dto.ListResponse{Items: opts, TotalCount: len(opts)})
}

// Get handles GET /:id
func (h *CatalogHandler) Get(c *gin.Context) {
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	item, err := h.cfg.Get(c.Request.Context(), entityID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, item)
}

// Create handles POST /
func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateCatalogRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	entityID, err := h.cfg.Create(c.Request.Context(), req.Name)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, entityID)
}

// Update handles PUT /:id
func (h *CatalogHandler) Update(c *gin.Context) {
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCatalogRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	item, err := h.cfg.Update(c.Request.Context(), entityID, req.Name)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, item)
}

// SetStatus handles PATCH /:id/status
func (h *CatalogHandler) SetStatus(c *gin.Context) {
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.SetStatusRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	item, err := h.cfg.SetStatus(c.Request.Context(), entityID, entity.Status(req.Status))
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, item)
}

// Delete handles DELETE /:id
func (h *CatalogHandler) Delete(c *gin.Context) {
	entityID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.cfg.Delete(c.Request.Context(), entityID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// RegisterRoutes mounts the catalog endpoints on a group.
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/options", h.Options)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PATCH("/:id/status", h.SetStatus)
	rg.DELETE("/:id", h.Delete)
}
