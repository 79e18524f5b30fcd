package dto

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
)

// ReportQuery holds the filters shared by the report endpoints.
type ReportQuery struct {
	BusinessID  string `form:"businessId"`
	Period      string `form:"period"`
	AccountCode string `form:"accountCode"`
	Currency    string `form:"currency" binding:"omitempty,max=10"`
}

// LedgerFilter converts the query into a general ledger filter.
func (q ReportQuery) LedgerFilter() domain.LedgerFilter {
	return domain.LedgerFilter{
		BusinessID:  q.BusinessID,
		Period:      q.PeriodOrDefault(),
		AccountCode: q.AccountCode,
	}
}

// StatementFilter converts the query into a statement filter.
func (q ReportQuery) StatementFilter() domain.StatementFilter {
	return domain.StatementFilter{BusinessID: q.BusinessID, Period: q.PeriodOrDefault()}
}

// PeriodOrDefault returns the requested period, defaulting to the current month.
func (q ReportQuery) PeriodOrDefault() domain.Period {
	if q.Period == "" {
		return domain.PeriodCurrentMonth
	}
	return domain.Period(q.Period)
}

// GeneralLedgerResponse wraps the general ledger report.
type GeneralLedgerResponse struct {
	Accounts []domain.AccountLedger `json:"accounts"`
}

// AccountBalancesResponse wraps raw statement rows.
type AccountBalancesResponse struct {
	Kind     domain.StatementKind    `json:"kind"`
	Accounts []domain.AccountBalance `json:"accounts"`
}

// BalanceSheetResponse is the balance sheet plus derived ratios.
type BalanceSheetResponse struct {
	domain.BalanceSheet
	Ratios *domain.FinancialRatios `json:"ratios,omitempty"`
}

// PaymentAccountBalancesResponse wraps the cash position report.
type PaymentAccountBalancesResponse struct {
	Accounts []domain.PaymentAccountBalance `json:"accounts"`
}
