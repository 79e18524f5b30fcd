package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/handlers"
	"github.com/SscSPs/bookkeeping_app/internal/middleware"
	"github.com/SscSPs/bookkeeping_app/internal/platform/config"
	"github.com/SscSPs/bookkeeping_app/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testSecret = "handler-test-secret"

// --- Test Suite ---
type HandlersTestSuite struct {
	suite.Suite
	router       *gin.Engine
	posting      *MockPostingService
	ledger       *MockLedgerService
	cashPosition *MockCashPositionService
	tax          *MockTaxService
	dashboard    *MockDashboardService
	reference    *MockReferenceService
	token        string
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.posting = new(MockPostingService)
	s.ledger = new(MockLedgerService)
	s.cashPosition = new(MockCashPositionService)
	s.tax = new(MockTaxService)
	s.dashboard = new(MockDashboardService)
	s.reference = new(MockReferenceService)

	services := &portssvc.ServiceContainer{
		Posting:      s.posting,
		Ledger:       s.ledger,
		CashPosition: s.cashPosition,
		Tax:          s.tax,
		Dashboard:    s.dashboard,
		Reference:    s.reference,
	}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, &config.Config{JWTSecret: testSecret}, services, metrics.New(), nil)

	token, err := middleware.IssueToken(testSecret, "test", "client-1", time.Hour)
	s.Require().NoError(err)
	s.token = token
}

func (s *HandlersTestSuite) TearDownTest() {
	s.posting.AssertExpectations(s.T())
	s.ledger.AssertExpectations(s.T())
	s.cashPosition.AssertExpectations(s.T())
	s.tax.AssertExpectations(s.T())
	s.dashboard.AssertExpectations(s.T())
	s.reference.AssertExpectations(s.T())
}

func (s *HandlersTestSuite) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func strPtr(v string) *string { return &v }

const incomeBody = `{
	"date": "2024-05-10",
	"type": "income",
	"businessId": "biz-1",
	"categoryId": 1,
	"amount": "100.00",
	"toAccount": "BCP",
	"description": "Venta mostrador"
}`

func (s *HandlersTestSuite) TestPostTransaction_Plain() {
	result := &domain.PostingResult{TransactionID: strPtr("tx-1"), JournalEntryID: "je-1"}
	s.posting.On("PostTransaction", mock.Anything, mock.MatchedBy(func(req dto.TransactionInput) bool {
		return req.BusinessID == "biz-1" &&
			req.Type == domain.TxIncome &&
			req.Amount.Equal(decimal.NewFromInt(100)) &&
			req.ToAccount == "BCP" &&
			req.IdempotencyKey == "key-123"
	})).Return(result, nil).Once()

	w := s.do(http.MethodPost, "/api/v1/transactions", incomeBody, handlers.IdempotencyKeyHeader, "key-123")

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal("tx-1", body["transactionId"])
	s.Equal("je-1", body["journalEntryId"])
	s.NotContains(body, "invoiceId")
}

func (s *HandlersTestSuite) TestPostTransaction_Invoiced() {
	result := &domain.PostingResult{TransactionID: strPtr("tx-1"), InvoiceID: strPtr("inv-1"), JournalEntryID: "je-1"}
	s.posting.On("PostInvoicedTransaction", mock.Anything, mock.MatchedBy(func(req dto.InvoicedTransactionInput) bool {
		return req.IsInvoiced && req.InvoiceNumber == "F001-1" && req.RUC == "20123456789" && req.BusinessID == "biz-1"
	})).Return(result, nil).Once()

	body := `{"date":"2024-05-10","type":"income","businessId":"biz-1","categoryId":1,"amount":"118.00",
		"description":"Venta","isInvoiced":true,"invoiceNumber":"F001-1","clientSupplier":"ACME SAC","ruc":"20123456789"}`
	w := s.do(http.MethodPost, "/api/v1/transactions", body)

	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("inv-1", s.decode(w)["invoiceId"])
}

func (s *HandlersTestSuite) TestPostTransaction_BindingErrorsListFields() {
	w := s.do(http.MethodPost, "/api/v1/transactions", `{"type":"gift"}`)

	s.Equal(http.StatusBadRequest, w.Code)
	body := s.decode(w)
	s.Equal("validation failed", body["error"])

	fields := map[string]bool{}
	for _, f := range body["fields"].([]any) {
		fields[f.(map[string]any)["field"].(string)] = true
	}
	s.True(fields["date"])
	s.True(fields["type"])
	s.True(fields["businessId"])

	for _, f := range body["fields"].([]any) {
		fe := f.(map[string]any)
		if fe["field"] == "type" {
			s.Equal("must be one of income, expense, transfer", fe["message"])
		}
	}
}

func (s *HandlersTestSuite) TestPostTransaction_ErrorMapping() {
	validationErr := apperrors.NewValidationError("postTransaction")
	validationErr.Add("amount", "must be greater than zero")

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", validationErr, http.StatusBadRequest},
		{"duplicate", apperrors.NewAppError(http.StatusConflict, "idempotency key already used", apperrors.ErrDuplicate), http.StatusConflict},
		{"not found", apperrors.NewNotFoundError("business biz-9"), http.StatusNotFound},
		{"bad request app error", apperrors.NewAppError(http.StatusBadRequest, "invalid nextToken", nil), http.StatusBadRequest},
		{"persistence", apperrors.NewAppError(http.StatusInternalServerError, "failed to save posting", errors.New("conn reset")), http.StatusInternalServerError},
		{"unexpected", fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.posting.On("PostTransaction", mock.Anything, mock.Anything).Return(nil, tc.err).Once()

			w := s.do(http.MethodPost, "/api/v1/transactions", incomeBody)

			s.Equal(tc.status, w.Code)
			body := s.decode(w)
			if tc.status == http.StatusInternalServerError {
				s.Equal("Failed to post transaction", body["error"])
			}
			if tc.name == "validation" {
				s.Equal("postTransaction", body["op"])
				s.Len(body["fields"], 1)
			}
		})
	}
}

func (s *HandlersTestSuite) TestListTransactions_PassesQuery() {
	token := "abc"
	expected := dto.ListTransactionsParams{BusinessID: "biz-1", Period: "2024-05", Type: "income", Limit: 2, NextToken: &token}
	resp := &dto.ListTransactionsResponse{Transactions: []domain.Transaction{{ID: "tx-1"}}, NextToken: strPtr("next")}
	s.posting.On("ListTransactions", mock.Anything, expected).Return(resp, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions?businessId=biz-1&period=2024-05&type=income&limit=2&nextToken=abc", "")

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("next", s.decode(w)["nextToken"])
}

func (s *HandlersTestSuite) TestListTransactions_RejectsBadLimit() {
	w := s.do(http.MethodGet, "/api/v1/transactions?limit=1000", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestGetUpdateDeleteTransaction() {
	s.posting.On("GetTransaction", mock.Anything, "tx-1").Return(&domain.Transaction{ID: "tx-1", Amount: decimal.NewFromInt(5)}, nil).Once()
	s.posting.On("UpdateTransaction", mock.Anything, "tx-1", mock.AnythingOfType("dto.TransactionInput")).
		Return(&domain.PostingResult{TransactionID: strPtr("tx-1"), JournalEntryID: "je-2"}, nil).Once()
	s.posting.On("DeleteTransaction", mock.Anything, "tx-1").Return(nil).Once()
	s.posting.On("DeleteTransaction", mock.Anything, "tx-404").Return(apperrors.NewNotFoundError("transaction tx-404")).Once()

	w := s.do(http.MethodGet, "/api/v1/transactions/tx-1", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("tx-1", s.decode(w)["id"])

	w = s.do(http.MethodPut, "/api/v1/transactions/tx-1", incomeBody)
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("je-2", s.decode(w)["journalEntryId"])

	w = s.do(http.MethodDelete, "/api/v1/transactions/tx-1", "")
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/transactions/tx-404", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *HandlersTestSuite) TestInvoiceRoutes() {
	s.posting.On("PostStandaloneInvoice", mock.Anything, mock.MatchedBy(func(req dto.InvoiceInput) bool {
		return req.Type == domain.InvoicePurchase && len(req.Items) == 1 && req.IdempotencyKey == "inv-key"
	})).Return(&domain.PostingResult{InvoiceID: strPtr("inv-1"), JournalEntryID: "je-1"}, nil).Once()
	s.posting.On("GetInvoice", mock.Anything, "inv-1").Return(&domain.Invoice{ID: "inv-1", Items: []domain.InvoiceItem{{ID: "it-1"}}}, nil).Once()
	s.posting.On("ListInvoices", mock.Anything, dto.ListInvoicesParams{Type: "sale"}).Return(&dto.ListInvoicesResponse{}, nil).Once()
	s.posting.On("DeleteInvoice", mock.Anything, "inv-1").Return(nil).Once()

	body := `{"type":"purchase","date":"2024-05-03","businessId":"biz-1","invoiceNumber":"E001-7",
		"items":[{"description":"Harina","quantity":"2","unitPrice":"50"}]}`
	w := s.do(http.MethodPost, "/api/v1/invoices", body, handlers.IdempotencyKeyHeader, "inv-key")
	s.Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Equal("inv-1", s.decode(w)["invoiceId"])

	w = s.do(http.MethodGet, "/api/v1/invoices/inv-1", "")
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["items"], 1)

	w = s.do(http.MethodGet, "/api/v1/invoices?type=sale", "")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodDelete, "/api/v1/invoices/inv-1", "")
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlersTestSuite) TestPostInvoice_RequiresItems() {
	w := s.do(http.MethodPost, "/api/v1/invoices", `{"type":"sale","date":"2024-05-03","businessId":"biz-1","invoiceNumber":"F1","items":[]}`)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestGeneralLedger_DefaultsToCurrentMonth() {
	filter := domain.LedgerFilter{Period: domain.PeriodCurrentMonth, AccountCode: "1041"}
	s.ledger.On("GetGeneralLedger", mock.Anything, filter).
		Return([]domain.AccountLedger{{Code: "1041", Name: "Cuentas corrientes"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/general-ledger?accountCode=1041", "")

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Len(s.decode(w)["accounts"], 1)
}

func (s *HandlersTestSuite) TestAccountBalances() {
	filter := domain.StatementFilter{BusinessID: "biz-1", Period: domain.PeriodCurrentYear}
	s.ledger.On("GetAccountBalances", mock.Anything, filter, domain.BalanceSheetKind).
		Return([]domain.AccountBalance{{Code: "1041", Balance: decimal.NewFromInt(10)}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/account-balances?businessId=biz-1&period=current-year&kind=balanceSheet", "")
	s.Equal(http.StatusOK, w.Code, w.Body.String())
	s.Equal("balanceSheet", s.decode(w)["kind"])

	w = s.do(http.MethodGet, "/api/v1/reports/account-balances?kind=cashFlow", "")
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestIncomeStatement() {
	filter := domain.StatementFilter{Period: domain.PeriodAll}
	s.ledger.On("GetIncomeStatement", mock.Anything, filter).
		Return(&domain.IncomeStatement{NetIncome: decimal.NewFromInt(42)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/income-statement?period=all", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("42", s.decode(w)["netIncome"])
}

func (s *HandlersTestSuite) TestBalanceSheetIncludesRatiosAndWarning() {
	filter := domain.StatementFilter{BusinessID: "biz-1", Period: domain.PeriodCurrentMonth}
	sheet := &domain.BalanceSheet{
		TotalAssets: decimal.NewFromInt(100),
		Unbalanced:  true,
		Difference:  decimal.NewFromInt(100),
		Warnings:    []domain.ConsistencyWarning{{Code: "equation", Message: "assets != liabilities + equity", Difference: decimal.NewFromInt(100)}},
	}
	s.ledger.On("GetBalanceSheet", mock.Anything, filter).Return(sheet, nil).Once()
	s.ledger.On("GetFinancialRatios", mock.Anything, filter).Return(&domain.FinancialRatios{CurrentRatio: decimal.NewFromInt(2)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/balance-sheet?businessId=biz-1", "")

	s.Equal(http.StatusOK, w.Code, w.Body.String())
	body := s.decode(w)
	s.Equal(true, body["unbalanced"])
	s.Equal("100", body["totalAssets"])
	s.Len(body["warnings"], 1)
	s.Equal("2", body["ratios"].(map[string]any)["currentRatio"])
}

func (s *HandlersTestSuite) TestCashAndTaxAndDashboard() {
	s.cashPosition.On("GetPaymentAccountBalances", mock.Anything, "all", domain.PeriodLastMonth).
		Return([]domain.PaymentAccountBalance{{AccountName: "BCP"}}, nil).Once()
	s.tax.On("GetTaxSummary", mock.Anything, "biz-1", domain.Period("2024-05"), "USD").
		Return(&domain.TaxSummary{Currency: "USD", Position: domain.TaxPayable}, nil).Once()
	s.dashboard.On("GetDashboardMetrics", mock.Anything, "biz-1", domain.PeriodCurrentMonth).
		Return(&domain.DashboardMetrics{NetProfit: decimal.NewFromInt(7)}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/payment-accounts?businessId=all&period=last-month", "")
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["accounts"], 1)

	w = s.do(http.MethodGet, "/api/v1/reports/tax-summary?businessId=biz-1&period=2024-05&currency=USD", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("payable", s.decode(w)["position"])

	w = s.do(http.MethodGet, "/api/v1/reports/dashboard?businessId=biz-1", "")
	s.Equal(http.StatusOK, w.Code)
	s.Equal("7", s.decode(w)["netProfit"])
}

func (s *HandlersTestSuite) TestReportFailureIs500() {
	s.tax.On("GetTaxSummary", mock.Anything, "", domain.PeriodCurrentMonth, "").
		Return(nil, apperrors.NewAppError(http.StatusInternalServerError, "failed to list invoices", errors.New("timeout"))).Once()

	w := s.do(http.MethodGet, "/api/v1/reports/tax-summary", "")

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Equal("Failed to compute tax summary", s.decode(w)["error"])
}

func (s *HandlersTestSuite) TestReferenceRoutes() {
	s.reference.On("ListChartOfAccounts", mock.Anything).Return([]domain.ChartAccount{{Code: "1041"}}, nil).Once()
	s.reference.On("ListCategories", mock.Anything, domain.CategoryExpense).Return([]domain.TransactionCategory{{ID: 8}}, nil).Once()
	s.reference.On("ListPaymentAccounts", mock.Anything, true).Return([]domain.PaymentAccount{{Name: "BCP"}}, nil).Once()
	s.reference.On("ListPaymentAccounts", mock.Anything, false).Return([]domain.PaymentAccount{{Name: "BCP"}, {Name: "Old"}}, nil).Once()
	s.reference.On("ListBusinesses", mock.Anything).Return([]domain.Business{{ID: "biz-1"}}, nil).Once()

	w := s.do(http.MethodGet, "/api/v1/chart-of-accounts", "")
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["accounts"], 1)

	w = s.do(http.MethodGet, "/api/v1/categories?type=expense", "")
	s.Equal(http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/categories?type=transfer", "")
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/payment-accounts", "")
	s.Len(s.decode(w)["paymentAccounts"], 1)

	w = s.do(http.MethodGet, "/api/v1/payment-accounts?active=false", "")
	s.Len(s.decode(w)["paymentAccounts"], 2)

	w = s.do(http.MethodGet, "/api/v1/payment-accounts?active=maybe", "")
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/api/v1/businesses", "")
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlersTestSuite) TestUnauthenticatedRequestsAreRejected() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *HandlersTestSuite) TestHealthAndMetricsArePublic() {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, w.Code)
	s.Equal("OK", w.Body.String())

	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	s.Equal(http.StatusOK, w.Code)
}

// --- Run Test Suite ---
func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func TestRoutesWithoutSecretAreOpen(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reference := new(MockReferenceService)
	reference.On("ListBusinesses", mock.Anything).Return([]domain.Business{}, nil).Once()

	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{}, &portssvc.ServiceContainer{Reference: reference}, nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/businesses", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	reference.AssertExpectations(t)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without metrics, got %d", w.Code)
	}
}
