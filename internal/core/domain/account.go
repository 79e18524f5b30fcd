package domain

import "fmt"

// AccountType classifies a chart-of-accounts entry.
type AccountType string

const (
	Asset     AccountType = "asset"
	Liability AccountType = "liability"
	Equity    AccountType = "equity"
	Income    AccountType = "income"
	Expense   AccountType = "expense"
)

// Valid reports whether t is one of the five known account types.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Income, Expense:
		return true
	}
	return false
}

// ChartAccount is one entry in the chart of accounts. Seeded once, never touched by posting.
type ChartAccount struct {
	Code           string      `json:"code" yaml:"code"`                     // e.g. "1041"
	Name           string      `json:"name" yaml:"name"`
	AccountType    AccountType `json:"accountType" yaml:"accountType"`
	Category       string      `json:"category" yaml:"category"`             // free-text grouping label
	IsDebitBalance bool        `json:"isDebitBalance" yaml:"isDebitBalance"` // normal balance side
	ParentCode     *string     `json:"parentCode,omitempty" yaml:"parentCode,omitempty"`
}

// PlaceholderAccountName is the label stored on a journal line whose code is missing from the chart.
func PlaceholderAccountName(code string) string {
	return fmt.Sprintf("Cuenta %s", code)
}

// PaymentAccountType is the kind of real-world cash location.
type PaymentAccountType string

const (
	PaymentBank   PaymentAccountType = "bank"
	PaymentWallet PaymentAccountType = "wallet"
	PaymentCash   PaymentAccountType = "cash"
)

// PaymentAccount is a place money sits (bank, wallet, petty cash). Transactions refer to it by name.
type PaymentAccount struct {
	ID       string             `json:"id" yaml:"id"`
	Name     string             `json:"name" yaml:"name"`
	Type     PaymentAccountType `json:"type" yaml:"type"`
	Currency string             `json:"currency" yaml:"currency"`
	IsActive bool               `json:"isActive" yaml:"isActive"`
}

// CategoryType tells whether a transaction category is used for income or expenses.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// TransactionCategory is a user-facing classification of income/expense transactions.
type TransactionCategory struct {
	ID   int          `json:"id" yaml:"id"`
	Name string       `json:"name" yaml:"name"`
	Type CategoryType `json:"type" yaml:"type"`
}

// Business owns transactions, invoices and journal entries.
type Business struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color,omitempty" yaml:"color,omitempty"`
}
