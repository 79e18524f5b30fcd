package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessAll is the filter value meaning "every business".
const BusinessAll = "all"

// StatementKind selects which statement getAccountBalances computes.
type StatementKind string

const (
	IncomeStatementKind StatementKind = "incomeStatement"
	BalanceSheetKind    StatementKind = "balanceSheet"
)

// AccountTypes returns the chart account types a statement reports on.
func (k StatementKind) AccountTypes() []AccountType {
	if k == IncomeStatementKind {
		return []AccountType{Income, Expense}
	}
	return []AccountType{Asset, Liability, Equity}
}

// BalanceTolerance is the largest accounting-equation mismatch tolerated before a balance sheet is flagged.
var BalanceTolerance = decimal.RequireFromString("0.01")

// LedgerFilter narrows the general ledger. Empty fields (or "all") do not filter.
type LedgerFilter struct {
	BusinessID  string `json:"businessId,omitempty"`
	Period      Period `json:"period,omitempty"`
	AccountCode string `json:"accountCode,omitempty"`
}

// StatementFilter narrows income statement and balance sheet computations.
type StatementFilter struct {
	BusinessID string `json:"businessId,omitempty"`
	Period     Period `json:"period,omitempty"`
}

// LedgerLine is one posting on an account's ledger with the balance after it.
type LedgerLine struct {
	Date        time.Time       `json:"date"`
	EntryID     string          `json:"entryId"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
}

// AccountLedger groups the ledger lines of one account code.
type AccountLedger struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Entries      []LedgerLine    `json:"entries"`
	TotalDebit   decimal.Decimal `json:"totalDebit"`
	TotalCredit  decimal.Decimal `json:"totalCredit"`
	FinalBalance decimal.Decimal `json:"finalBalance"`
}

// AccountBalance is a statement row, already sign-flipped for display.
type AccountBalance struct {
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	AccountType AccountType     `json:"accountType"`
	Category    string          `json:"category"`
	Balance     decimal.Decimal `json:"balance"`
}

// IncomeStatement totals income and expense rows for a period.
type IncomeStatement struct {
	Period        DateRange        `json:"period"`
	Income        []AccountBalance `json:"income"`
	Expenses      []AccountBalance `json:"expenses"`
	TotalIncome   decimal.Decimal  `json:"totalIncome"`
	TotalExpenses decimal.Decimal  `json:"totalExpenses"`
	NetIncome     decimal.Decimal  `json:"netIncome"`
}

// ConsistencyWarning annotates a report whose figures violate an accounting identity.
type ConsistencyWarning struct {
	Code       string          `json:"code"`
	Message    string          `json:"message"`
	Difference decimal.Decimal `json:"difference"`
}

// BalanceSheet groups balance sheet rows as of a date and carries the equation check.
type BalanceSheet struct {
	AsOf             time.Time            `json:"asOf,omitempty"`
	Assets           []AccountBalance     `json:"assets"`
	Liabilities      []AccountBalance     `json:"liabilities"`
	Equity           []AccountBalance     `json:"equity"`
	TotalAssets      decimal.Decimal      `json:"totalAssets"`
	TotalLiabilities decimal.Decimal      `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal      `json:"totalEquity"`
	Unbalanced       bool                 `json:"unbalanced"`
	Difference       decimal.Decimal      `json:"difference"` // assets - (liabilities + equity)
	Warnings         []ConsistencyWarning `json:"warnings,omitempty"`
}

// FinancialRatios are derived from balance sheet totals and net profit. Percentages are 0-100.
type FinancialRatios struct {
	CurrentRatio   decimal.Decimal `json:"currentRatio"`
	QuickRatio     decimal.Decimal `json:"quickRatio"`
	DebtToEquity   decimal.Decimal `json:"debtToEquity"`
	ReturnOnAssets decimal.Decimal `json:"returnOnAssets"`
	ReturnOnEquity decimal.Decimal `json:"returnOnEquity"`
}

// MovementType is how a transaction affected one payment account.
type MovementType string

const (
	MovementIncome      MovementType = "income"
	MovementExpense     MovementType = "expense"
	MovementTransferIn  MovementType = "transfer_in"
	MovementTransferOut MovementType = "transfer_out"
)

// Movement is one transaction's effect on a payment account.
type Movement struct {
	TransactionID string          `json:"transactionId"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Type          MovementType    `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"` // running balance after this movement
	BusinessName  string          `json:"businessName,omitempty"`
	Currency      string          `json:"currency"`
}

// PaymentAccountBalance is the replayed cash position of one payment account.
type PaymentAccountBalance struct {
	AccountName     string             `json:"accountName"`
	AccountType     PaymentAccountType `json:"accountType"`
	AccountCurrency string             `json:"accountCurrency"`
	TotalIncome     decimal.Decimal    `json:"totalIncome"`
	TotalExpense    decimal.Decimal    `json:"totalExpense"`
	NetBalance      decimal.Decimal    `json:"netBalance"`
	Movements       []Movement         `json:"movements"`
}

// TaxPosition tells whether the net IGV is owed or carried forward.
type TaxPosition string

const (
	TaxPayable TaxPosition = "payable"
	TaxCredit  TaxPosition = "credit"
)

// TaxSummary is the IGV position over a period.
type TaxSummary struct {
	Currency          string          `json:"currency"`
	SalesTax          decimal.Decimal `json:"salesTax"`
	PurchaseTaxCredit decimal.Decimal `json:"purchaseTaxCredit"`
	NetTaxPosition    decimal.Decimal `json:"netTaxPosition"`
	Position          TaxPosition     `json:"position"`
	SaleInvoices      int             `json:"saleInvoices"`
	PurchaseInvoices  int             `json:"purchaseInvoices"`
}

// MonthlyTrend is income and expenses for one calendar month.
type MonthlyTrend struct {
	Month    string          `json:"month"` // short Spanish month label, e.g. "Ene"
	Year     int             `json:"year"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
}

// DashboardMetrics is the headline summary for a business and period.
type DashboardMetrics struct {
	TotalIncome   decimal.Decimal `json:"totalIncome"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"`
	ProfitMargin  decimal.Decimal `json:"profitMargin"`
	Tax           TaxSummary      `json:"tax"`
	MonthlyTrend  []MonthlyTrend  `json:"monthlyTrend"`
}
