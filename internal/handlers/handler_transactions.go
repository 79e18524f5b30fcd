package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// IdempotencyKeyHeader lets clients supply the idempotency key outside the JSON body.
const IdempotencyKeyHeader = "Idempotency-Key"

// transactionHandler handles HTTP requests related to cash transactions.
type transactionHandler struct {
	postingService portssvc.PostingSvcFacade
}

func newTransactionHandler(ps portssvc.PostingSvcFacade) *transactionHandler {
	return &transactionHandler{postingService: ps}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, postingService portssvc.PostingSvcFacade) {
	h := newTransactionHandler(postingService)

	transactions := rg.Group("/transactions")
	{
		transactions.POST("", h.postTransaction)
		transactions.GET("", h.listTransactions)
		transactions.GET("/:id", h.getTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// postTransaction records a transaction and its journal entry.
// Requests with isInvoiced set also issue (income) or receive (expense) an invoice.
func (h *transactionHandler) postTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.InvoicedTransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "request format", err)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = c.GetHeader(IdempotencyKeyHeader)
	}

	if client, ok := middleware.GetSubjectFromContext(c); ok {
		logger = logger.With(slog.String("client", client))
	}
	logger = logger.With(
		slog.String("business_id", req.BusinessID),
		slog.String("type", string(req.Type)),
		slog.Bool("is_invoiced", req.IsInvoiced))
	logger.Info("Received request to post transaction")

	var err error
	var result any
	if req.IsInvoiced {
		result, err = h.postingService.PostInvoicedTransaction(c.Request.Context(), req)
	} else {
		result, err = h.postingService.PostTransaction(c.Request.Context(), req.TransactionInput)
	}
	if err != nil {
		respondError(c, logger, "Failed to post transaction", err)
		return
	}

	logger.Info("Transaction posted successfully")
	c.JSON(http.StatusCreated, result)
}

func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return
	}

	resp, err := h.postingService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, "Failed to list transactions", err)
		return
	}

	logger.Info("Transactions listed successfully", slog.Int("count", len(resp.Transactions)))
	c.JSON(http.StatusOK, resp)
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))

	txn, err := h.postingService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, logger, "Failed to retrieve transaction", err)
		return
	}
	c.JSON(http.StatusOK, txn)
}

// updateTransaction rewrites a non-invoiced transaction. Its journal entry is regenerated.
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))

	var req dto.TransactionInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, "request format", err)
		return
	}

	logger.Info("Received request to update transaction")
	result, err := h.postingService.UpdateTransaction(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, logger, "Failed to update transaction", err)
		return
	}

	logger.Info("Transaction updated successfully", slog.String("journal_entry_id", result.JournalEntryID))
	c.JSON(http.StatusOK, result)
}

func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", c.Param("id")))

	logger.Info("Received request to delete transaction")
	if err := h.postingService.DeleteTransaction(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, logger, "Failed to delete transaction", err)
		return
	}

	logger.Info("Transaction deleted successfully")
	c.Status(http.StatusNoContent)
}
