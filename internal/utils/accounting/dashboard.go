package accounting

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrendMonths is how many calendar months the dashboard trend covers, ending with the current one.
const TrendMonths = 5

var monthLabels = [...]string{"Ene", "Feb", "Mar", "Abr", "May", "Jun", "Jul", "Ago", "Sep", "Oct", "Nov", "Dic"}

// CashTotals sums income and expense transactions. Transfers are ignored.
func CashTotals(txs []domain.Transaction) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, tx := range txs {
		switch tx.Type {
		case domain.TxIncome:
			income = income.Add(tx.Amount)
		case domain.TxExpense:
			expenses = expenses.Add(tx.Amount)
		}
	}
	return income, expenses
}

// TrendRange is the date range the monthly trend needs, relative to now.
func TrendRange(now time.Time) domain.DateRange {
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return domain.DateRange{
		Start: current.AddDate(0, -(TrendMonths - 1), 0),
		End:   current.AddDate(0, 1, -1),
	}
}

// MonthlyTrend buckets income and expenses into the last TrendMonths calendar months, oldest first.
func MonthlyTrend(txs []domain.Transaction, now time.Time) []domain.MonthlyTrend {
	start := TrendRange(now).Start
	trend := make([]domain.MonthlyTrend, TrendMonths)
	for i := range trend {
		m := start.AddDate(0, i, 0)
		trend[i] = domain.MonthlyTrend{
			Month:    monthLabels[m.Month()-1],
			Year:     m.Year(),
			Income:   decimal.Zero,
			Expenses: decimal.Zero,
		}
	}

	for _, tx := range txs {
		d := domain.DateOnly(tx.Date)
		idx := (d.Year()-start.Year())*12 + int(d.Month()) - int(start.Month())
		if idx < 0 || idx >= TrendMonths {
			continue
		}
		switch tx.Type {
		case domain.TxIncome:
			trend[idx].Income = trend[idx].Income.Add(tx.Amount)
		case domain.TxExpense:
			trend[idx].Expenses = trend[idx].Expenses.Add(tx.Amount)
		}
	}
	return trend
}

// BuildDashboard assembles the headline metrics for a period.
func BuildDashboard(periodTxs []domain.Transaction, tax domain.TaxSummary, trend []domain.MonthlyTrend) domain.DashboardMetrics {
	income, expenses := CashTotals(periodTxs)
	net := income.Sub(expenses)
	return domain.DashboardMetrics{
		TotalIncome:   income,
		TotalExpenses: expenses,
		NetProfit:     net,
		ProfitMargin:  Percent(net, income),
		Tax:           tax,
		MonthlyTrend:  trend,
	}
}
