package accounting

import (
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SummarizeTax sums the IGV of sale and purchase invoices.
// Only invoices in taxCurrency count. Asking for any other currency yields a zero summary in that currency.
func SummarizeTax(invoices []domain.Invoice, taxCurrency, currency string) domain.TaxSummary {
	if currency == "" {
		currency = taxCurrency
	}
	summary := domain.TaxSummary{
		Currency:          currency,
		SalesTax:          decimal.Zero,
		PurchaseTaxCredit: decimal.Zero,
		NetTaxPosition:    decimal.Zero,
		Position:          domain.TaxPayable,
	}
	if !strings.EqualFold(currency, taxCurrency) {
		return summary
	}

	for _, inv := range invoices {
		invCurrency := inv.Currency
		if invCurrency == "" {
			invCurrency = domain.DefaultCurrency
		}
		if !strings.EqualFold(invCurrency, taxCurrency) {
			continue
		}
		switch inv.Type {
		case domain.InvoiceSale:
			summary.SalesTax = summary.SalesTax.Add(inv.IGV)
			summary.SaleInvoices++
		case domain.InvoicePurchase:
			summary.PurchaseTaxCredit = summary.PurchaseTaxCredit.Add(inv.IGV)
			summary.PurchaseInvoices++
		}
	}

	summary.NetTaxPosition = summary.SalesTax.Sub(summary.PurchaseTaxCredit)
	if summary.NetTaxPosition.IsNegative() {
		summary.Position = domain.TaxCredit
	}
	return summary
}
