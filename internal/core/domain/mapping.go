package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CategoryMapping is the default debit/credit pair and narrative for one transaction category.
type CategoryMapping struct {
	Debit  string
	Credit string
	Label  string
}

// InvoiceAccounts are the ledger codes used by the three-line invoice entries.
type InvoiceAccounts struct {
	Receivable string // sale: debit total
	Sales      string // sale: credit subtotal
	TaxPayable string // sale: credit tax
	Purchases  string // purchase: debit subtotal
	TaxCredit  string // purchase: debit tax
	Payable    string // purchase: credit total
}

// MappingRules is the injected table the account mapper resolves against.
type MappingRules struct {
	DefaultCashCode         string
	PaymentAccounts         map[string]string // payment account name -> ledger code
	Categories              map[int]CategoryMapping
	DefaultIncomeCreditCode string
	DefaultExpenseDebitCode string
	Invoice                 InvoiceAccounts
	TaxRate                 decimal.Decimal
	TaxCurrency             string
	StrictReferences        bool // reject unknown references instead of falling back
}

// DefaultMappingRules returns the stock table for a Peruvian small business (PCGE codes, 18% IGV).
func DefaultMappingRules() MappingRules {
	return MappingRules{
		DefaultCashCode: "1041",
		PaymentAccounts: map[string]string{
			"BCP":        "1041",
			"Interbank":  "1042",
			"Yape":       "1043",
			"Caja Chica": "1011",
		},
		Categories: map[int]CategoryMapping{
			1:  {Debit: "1041", Credit: "7011", Label: "Venta de productos"},
			2:  {Debit: "1041", Credit: "7041", Label: "Servicios prestados"},
			3:  {Debit: "1041", Credit: "7591", Label: "Delivery"},
			4:  {Debit: "1041", Credit: "7592", Label: "Comisiones"},
			5:  {Debit: "1041", Credit: "7593", Label: "Ingresos extraordinarios"},
			6:  {Debit: "1041", Credit: "7594", Label: "Reembolso de gastos"},
			7:  {Debit: "1041", Credit: "7711", Label: "Ingresos financieros"},
			8:  {Debit: "6011", Credit: "1041", Label: "Compra de mercadería"},
			9:  {Debit: "6361", Credit: "1041", Label: "Servicios públicos"},
			10: {Debit: "6362", Credit: "1041", Label: "Internet y teléfono"},
			11: {Debit: "6352", Credit: "1041", Label: "Alquiler"},
			12: {Debit: "6211", Credit: "1041", Label: "Sueldos"},
			13: {Debit: "6212", Credit: "1041", Label: "Honorarios profesionales"},
			14: {Debit: "6371", Credit: "1041", Label: "Publicidad"},
			15: {Debit: "6311", Credit: "1041", Label: "Transporte"},
			16: {Debit: "6391", Credit: "1041", Label: "Comisiones bancarias"},
			17: {Debit: "6411", Credit: "1041", Label: "Impuestos"},
			18: {Debit: "6343", Credit: "1041", Label: "Mantenimiento"},
			19: {Debit: "3361", Credit: "1041", Label: "Equipos"},
			20: {Debit: "6563", Credit: "1041", Label: "Suministros de oficina"},
			21: {Debit: "6521", Credit: "1041", Label: "Seguros"},
			22: {Debit: "6571", Credit: "1041", Label: "Capacitación"},
			23: {Debit: "6599", Credit: "1041", Label: "Otros gastos operativos"},
		},
		DefaultIncomeCreditCode: "7011",
		DefaultExpenseDebitCode: "6599",
		Invoice: InvoiceAccounts{
			Receivable: "1212",
			Sales:      "7011",
			TaxPayable: "4011",
			Purchases:  "6011",
			TaxCredit:  "4011",
			Payable:    "4212",
		},
		TaxRate:     decimal.RequireFromString("0.18"),
		TaxCurrency: DefaultCurrency,
	}
}

// Validate checks that every code the mapper may fall back to is set.
func (r MappingRules) Validate() error {
	required := map[string]string{
		"defaultCashCode":         r.DefaultCashCode,
		"defaultIncomeCreditCode": r.DefaultIncomeCreditCode,
		"defaultExpenseDebitCode": r.DefaultExpenseDebitCode,
		"invoice.receivable":      r.Invoice.Receivable,
		"invoice.sales":           r.Invoice.Sales,
		"invoice.taxPayable":      r.Invoice.TaxPayable,
		"invoice.purchases":       r.Invoice.Purchases,
		"invoice.taxCredit":       r.Invoice.TaxCredit,
		"invoice.payable":         r.Invoice.Payable,
		"taxCurrency":             r.TaxCurrency,
	}
	for field, v := range required {
		if v == "" {
			return fmt.Errorf("mapping rules: %s is empty", field)
		}
	}
	if r.TaxRate.IsNegative() {
		return fmt.Errorf("mapping rules: taxRate must not be negative, got %s", r.TaxRate)
	}
	for id, m := range r.Categories {
		if m.Debit == "" || m.Credit == "" {
			return fmt.Errorf("mapping rules: category %d needs both debit and credit codes", id)
		}
	}
	return nil
}
