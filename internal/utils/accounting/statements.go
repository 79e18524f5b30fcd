package accounting

import (
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var quickRatioFactor = decimal.RequireFromString("0.8")

// AccountBalances turns raw debit-minus-credit sums into statement rows for the chart accounts of kind.
// Accounts with a zero balance are left out. Rows are sorted by code.
func AccountBalances(chart []domain.ChartAccount, raw map[string]decimal.Decimal, kind domain.StatementKind) ([]domain.AccountBalance, error) {
	wanted := make(map[domain.AccountType]bool)
	for _, t := range kind.AccountTypes() {
		wanted[t] = true
	}

	rows := make([]domain.AccountBalance, 0)
	for _, acc := range chart {
		if !wanted[acc.AccountType] {
			continue
		}
		balance, err := DisplayBalance(acc.AccountType, raw[acc.Code])
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", acc.Code, err)
		}
		if balance.IsZero() {
			continue
		}
		rows = append(rows, domain.AccountBalance{
			Code:        acc.Code,
			Name:        acc.Name,
			AccountType: acc.AccountType,
			Category:    acc.Category,
			Balance:     balance,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	return rows, nil
}

// BuildIncomeStatement splits income-statement rows into sections and totals them.
func BuildIncomeStatement(rows []domain.AccountBalance, period domain.DateRange) domain.IncomeStatement {
	stmt := domain.IncomeStatement{
		Period:        period,
		Income:        []domain.AccountBalance{},
		Expenses:      []domain.AccountBalance{},
		TotalIncome:   decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range rows {
		switch row.AccountType {
		case domain.Income:
			stmt.Income = append(stmt.Income, row)
			stmt.TotalIncome = stmt.TotalIncome.Add(row.Balance)
		case domain.Expense:
			stmt.Expenses = append(stmt.Expenses, row)
			stmt.TotalExpenses = stmt.TotalExpenses.Add(row.Balance)
		}
	}
	stmt.NetIncome = stmt.TotalIncome.Sub(stmt.TotalExpenses)
	return stmt
}

// BuildBalanceSheet splits balance-sheet rows into sections and checks assets = liabilities + equity.
// A mismatch of BalanceTolerance or more flags the sheet and attaches a warning; figures are never adjusted.
func BuildBalanceSheet(rows []domain.AccountBalance, asOf time.Time) domain.BalanceSheet {
	bs := domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           []domain.AccountBalance{},
		Liabilities:      []domain.AccountBalance{},
		Equity:           []domain.AccountBalance{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range rows {
		switch row.AccountType {
		case domain.Asset:
			bs.Assets = append(bs.Assets, row)
			bs.TotalAssets = bs.TotalAssets.Add(row.Balance)
		case domain.Liability:
			bs.Liabilities = append(bs.Liabilities, row)
			bs.TotalLiabilities = bs.TotalLiabilities.Add(row.Balance)
		case domain.Equity:
			bs.Equity = append(bs.Equity, row)
			bs.TotalEquity = bs.TotalEquity.Add(row.Balance)
		}
	}

	bs.Difference = bs.TotalAssets.Sub(bs.TotalLiabilities.Add(bs.TotalEquity))
	if bs.Difference.Abs().GreaterThanOrEqual(domain.BalanceTolerance) {
		bs.Unbalanced = true
		bs.Warnings = append(bs.Warnings, domain.ConsistencyWarning{
			Code: "accounting_equation",
			Message: fmt.Sprintf("total assets %s differ from liabilities plus equity %s",
				bs.TotalAssets.StringFixed(2), bs.TotalLiabilities.Add(bs.TotalEquity).StringFixed(2)),
			Difference: bs.Difference,
		})
	}
	return bs
}

// FinancialRatios derives the headline ratios from a balance sheet and the period's net profit.
// Ratios with a non-positive denominator are reported as zero.
func FinancialRatios(bs domain.BalanceSheet, netProfit decimal.Decimal) domain.FinancialRatios {
	ratios := domain.FinancialRatios{
		CurrentRatio:   decimal.Zero,
		QuickRatio:     decimal.Zero,
		DebtToEquity:   decimal.Zero,
		ReturnOnAssets: Percent(netProfit, bs.TotalAssets),
		ReturnOnEquity: Percent(netProfit, bs.TotalEquity),
	}
	if bs.TotalLiabilities.IsPositive() {
		current := bs.TotalAssets.Div(bs.TotalLiabilities)
		ratios.CurrentRatio = current.Round(2)
		ratios.QuickRatio = current.Mul(quickRatioFactor).Round(2)
	}
	if bs.TotalEquity.IsPositive() {
		ratios.DebtToEquity = bs.TotalLiabilities.Div(bs.TotalEquity).Round(2)
	}
	return ratios
}
