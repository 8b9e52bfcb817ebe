package handlers

import (
	"github.com/gin-gonic/gin"

	"sklad/internal/domain/reports"
	"sklad/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves read-side report endpoints.
type ReportsHandler struct {
	base    *BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{base: base, service: service}
}

// ReceiptJournal handles GET /document/receipts
// Supports period, number, resource and unit filters with pagination.
func (h *ReportsHandler) ReceiptJournal(c *gin.Context) {
	var query dto.ReceiptJournalQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	journal, err := h.service.GetReceiptJournal(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, journal)
}

// ReceiptNumbers handles GET /document/receipts/numbers
func (h *ReportsHandler) ReceiptNumbers(c *gin.Context) {
	numbers, err := h.service.GetDistinctNumbers(c.Request.Context())
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, gin.H{"numbers": numbers})
}

// Balances handles GET /register/balances
func (h *ReportsHandler) Balances(c *gin.Context) {
	var query dto.BalanceQuery
	if !h.base.BindQuery(c, &query) {
		return
	}

	filter, err := query.ToFilter()
	if err != nil {
		h.base.Error(c, err)
		return
	}

	report, err := h.service.GetBalances(c.Request.Context(), filter)
	if err != nil {
		h.base.Error(c, err)
		return
	}
	h.base.OK(c, report)
}
