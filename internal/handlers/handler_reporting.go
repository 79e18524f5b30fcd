package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// reportingHandler handles HTTP requests related to financial reports
type reportingHandler struct {
	ledgerService       portssvc.LedgerSvc
	cashPositionService portssvc.CashPositionSvc
	taxService          portssvc.TaxSvc
	dashboardService    portssvc.DashboardSvc
}

// registerReportingRoutes registers routes related to financial reports
func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := &reportingHandler{
		ledgerService:       services.Ledger,
		cashPositionService: services.CashPosition,
		taxService:          services.Tax,
		dashboardService:    services.Dashboard,
	}

	reportingGroup := rg.Group("/reports")
	{
		reportingGroup.GET("/general-ledger", h.getGeneralLedger)
		reportingGroup.GET("/account-balances", h.getAccountBalances)
		reportingGroup.GET("/income-statement", h.getIncomeStatement)
		reportingGroup.GET("/balance-sheet", h.getBalanceSheet)
		reportingGroup.GET("/payment-accounts", h.getPaymentAccountBalances)
		reportingGroup.GET("/tax-summary", h.getTaxSummary)
		reportingGroup.GET("/dashboard", h.getDashboard)
	}
}

// bindReportQuery binds the shared report filters and enriches the logger with them.
func bindReportQuery(c *gin.Context) (dto.ReportQuery, *slog.Logger, bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var q dto.ReportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, logger, "query parameters", err)
		return q, logger, false
	}
	logger = logger.With(
		slog.String("business_id", q.BusinessID),
		slog.String("period", string(q.PeriodOrDefault())))
	return q, logger, true
}

func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	accounts, err := h.ledgerService.GetGeneralLedger(c.Request.Context(), q.LedgerFilter())
	if err != nil {
		respondError(c, logger, "Failed to generate general ledger", err)
		return
	}

	logger.Info("General ledger generated", slog.Int("accounts", len(accounts)))
	c.JSON(http.StatusOK, dto.GeneralLedgerResponse{Accounts: accounts})
}

// getAccountBalances returns raw statement rows; kind is incomeStatement (default) or balanceSheet.
func (h *reportingHandler) getAccountBalances(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	kind := domain.StatementKind(c.DefaultQuery("kind", string(domain.IncomeStatementKind)))
	if kind != domain.IncomeStatementKind && kind != domain.BalanceSheetKind {
		logger.Warn("Invalid statement kind", slog.String("kind", string(kind)))
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be incomeStatement or balanceSheet"})
		return
	}

	rows, err := h.ledgerService.GetAccountBalances(c.Request.Context(), q.StatementFilter(), kind)
	if err != nil {
		respondError(c, logger, "Failed to compute account balances", err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalancesResponse{Kind: kind, Accounts: rows})
}

func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	statement, err := h.ledgerService.GetIncomeStatement(c.Request.Context(), q.StatementFilter())
	if err != nil {
		respondError(c, logger, "Failed to generate income statement", err)
		return
	}
	c.JSON(http.StatusOK, statement)
}

// getBalanceSheet returns the balance sheet with its equation check and the derived ratios.
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	sheet, err := h.ledgerService.GetBalanceSheet(ctx, q.StatementFilter())
	if err != nil {
		respondError(c, logger, "Failed to generate balance sheet", err)
		return
	}
	if sheet.Unbalanced {
		logger.Warn("Balance sheet does not balance", slog.String("difference", sheet.Difference.String()))
	}

	ratios, err := h.ledgerService.GetFinancialRatios(ctx, q.StatementFilter())
	if err != nil {
		respondError(c, logger, "Failed to compute financial ratios", err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceSheetResponse{BalanceSheet: *sheet, Ratios: ratios})
}

func (h *reportingHandler) getPaymentAccountBalances(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	accounts, err := h.cashPositionService.GetPaymentAccountBalances(c.Request.Context(), q.BusinessID, q.PeriodOrDefault())
	if err != nil {
		respondError(c, logger, "Failed to compute payment account balances", err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentAccountBalancesResponse{Accounts: accounts})
}

func (h *reportingHandler) getTaxSummary(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	summary, err := h.taxService.GetTaxSummary(c.Request.Context(), q.BusinessID, q.PeriodOrDefault(), q.Currency)
	if err != nil {
		respondError(c, logger, "Failed to compute tax summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *reportingHandler) getDashboard(c *gin.Context) {
	q, logger, ok := bindReportQuery(c)
	if !ok {
		return
	}

	metrics, err := h.dashboardService.GetDashboardMetrics(c.Request.Context(), q.BusinessID, q.PeriodOrDefault())
	if err != nil {
		respondError(c, logger, "Failed to compute dashboard metrics", err)
		return
	}
	c.JSON(http.StatusOK, metrics)
}
