package handlers

import (
	"net/http"
	"strconv"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// referenceHandler serves the lookup tables.
type referenceHandler struct {
	referenceService portssvc.ReferenceReaderSvc
}

func registerReferenceRoutes(rg *gin.RouterGroup, referenceService portssvc.ReferenceReaderSvc) {
	h := &referenceHandler{referenceService: referenceService}

	rg.GET("/chart-of-accounts", h.listChartOfAccounts)
	rg.GET("/categories", h.listCategories)
	rg.GET("/payment-accounts", h.listPaymentAccounts)
	rg.GET("/businesses", h.listBusinesses)
}

func (h *referenceHandler) listChartOfAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accounts, err := h.referenceService.ListChartOfAccounts(c.Request.Context())
	if err != nil {
		respondError(c, logger, "Failed to list chart of accounts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accounts": accounts})
}

// listCategories accepts an optional type=income|expense filter.
func (h *referenceHandler) listCategories(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	categoryType := domain.CategoryType(c.Query("type"))
	if categoryType != "" && categoryType != domain.CategoryIncome && categoryType != domain.CategoryExpense {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be income or expense"})
		return
	}

	categories, err := h.referenceService.ListCategories(c.Request.Context(), categoryType)
	if err != nil {
		respondError(c, logger, "Failed to list categories", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// listPaymentAccounts returns active accounts unless active=false.
func (h *referenceHandler) listPaymentAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	activeOnly, err := strconv.ParseBool(c.DefaultQuery("active", "true"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "active must be true or false"})
		return
	}

	accounts, err := h.referenceService.ListPaymentAccounts(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, logger, "Failed to list payment accounts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"paymentAccounts": accounts})
}

func (h *referenceHandler) listBusinesses(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	businesses, err := h.referenceService.ListBusinesses(c.Request.Context())
	if err != nil {
		respondError(c, logger, "Failed to list businesses", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"businesses": businesses})
}
