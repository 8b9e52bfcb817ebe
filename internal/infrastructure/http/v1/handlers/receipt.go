package handlers

import (
	"github.com/gin-gonic/gin"

	"sklad/internal/domain/documents/receipt"
	"sklad/internal/infrastructure/http/v1/dto"
)

// ReceiptHandler serves receipt document endpoints.
type ReceiptHandler struct {
	base    *BaseHandler
	service *receipt.Service
}

// NewReceiptHandler creates a new receipt handler.
func NewReceiptHandler(base *BaseHandler, service *receipt.Service) *ReceiptHandler {
	return &ReceiptHandler{base: base, service: service}
}

// Get handles GET /document/receipts/:id
func (h *ReceiptHandler) Get(c *gin.Context) {
	receiptID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromReceipt(rec))
}

// Create handles POST /document/receipts
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	rec, err := req.ToEntity()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), rec); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, rec.ID)
}

// Update handles PUT /document/receipts/:id
func (h *ReceiptHandler) Update(c *gin.Context) {
	receiptID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateReceiptRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	rec := &receipt.Receipt{
		ID:     receiptID,
		Number: req.Number,
		Date:   req.Date.UTC(),
	}
	if err := h.service.Update(c.Request.Context(), rec); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromReceipt(rec))
}

// Delete handles DELETE /document/receipts/:id
func (h *ReceiptHandler) Delete(c *gin.Context) {
	receiptID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), receiptID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// AddLine handles POST /document/receipts/:id/lines
func (h *ReceiptHandler) AddLine(c *gin.Context) {
	receiptID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReceiptLineRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	line, err := req.ToLine(receiptID)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.service.AddLine(c.Request.Context(), &line); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.Created(c, line.ID)
}

// ReplaceLines handles PUT /document/receipts/:id/lines
func (h *ReceiptHandler) ReplaceLines(c *gin.Context) {
	receiptID, ok := h.base.ParseID(c, "id")
	if !ok {
		return
	}

	var req dto.ReplaceLinesRequest
	if !h.base.BindJSON(c, &req) {
		return
	}

	lines, err := dto.ToLines(receiptID, req.Lines)
	if err != nil {
		h.base.Error(c, err)
		return
	}

	if err := h.service.ReplaceLines(c.Request.Context(), receiptID, lines); err != nil {
		h.base.Error(c, err)
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), receiptID)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, dto.FromReceipt(rec))
}

// DeleteLine handles DELETE /document/receipts/lines/:lineId
func (h *ReceiptHandler) DeleteLine(c *gin.Context) {
	lineID, ok := h.base.ParseID(c, "lineId")
	if !ok {
		return
	}

	if err := h.service.DeleteLine(c.Request.Context(), lineID); err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.NoContent(c)
}

// RegisterRoutes mounts the receipt endpoints on a group.
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/lines", h.AddLine)
	rg.PUT("/:id/lines", h.ReplaceLines)
	rg.DELETE("/lines/:lineId", h.DeleteLine)
}
