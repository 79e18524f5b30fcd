package models

import "database/sql"

// ChartAccount is a row of the chart_of_accounts table.
type ChartAccount struct {
	Code           string         `db:"code"`
	Name           string         `db:"name"`
	AccountType    string         `db:"account_type"`
	Category       string         `db:"category"`
	IsDebitBalance bool           `db:"is_debit_balance"`
	ParentCode     sql.NullString `db:"parent_code"`
}

// PaymentAccount is a row of the payment_accounts table.
type PaymentAccount struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Type     string `db:"type"`
	Currency string `db:"currency"`
	IsActive bool   `db:"is_active"`
}

// TransactionCategory is a row of the transaction_categories table.
type TransactionCategory struct {
	ID   int    `db:"id"`
	Name string `db:"name"`
	Type string `db:"type"`
}

// Business is a row of the businesses table.
type Business struct {
	ID    string         `db:"id"`
	Name  string         `db:"name"`
	Color sql.NullString `db:"color"`
}
