package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to invoices.
type invoiceHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newInvoiceHandler(ps portssvc.PostingSvcFacade) *invoiceHandler {
	return &invoiceHandler{postingService: ps}
}

// registerInvoiceRoutes registers routes related to invoices.
func registerInvoiceRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newInvoiceHandler(postingService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.postInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:id", h.getInvoice)
		invoices.DELETE("/:id", h.deleteInvoice)
	}
}

// postInvoice records an invoice that has no cash transaction.
func (h *invoiceHandler) postInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InvoiceInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "request format", err)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)
	}

	logger = logger.With(slog.String("business_id", req.BusinessID), slog.String("invoice_number", req.InvoiceNumber))
	logger.Info("Received request to post invoice", slog.String("type", string(req.Type)))

	result, err := h.postingService.PostStandaloneInvoice(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, "Failed to post invoice", err)
		return
	}

	logger.Info("Invoice posted successfully", slog.String("journal_entry_id", result.JournalEntryID))
	c.JSON(http.StatusCreated, result)
}

func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}

	resp, err := h.postingService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list invoices", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getInvoice returns the invoice with its items.
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))

	invoice, err := h.postingService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to retrieve invoice", err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

// deleteInvoice removes the invoice with its items, linked transactions and their journal entries.
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("invoice_id", c.Param("id")))

	logger.Info("Received request to delete invoice")
	if err := h.postingService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, "Failed to delete invoice", err)
		return
	}

	logger.Info("Invoice deleted successfully")
	c.Status(http.StatusNoContent)
}
