package services

import (
	"fmt"
	"strconv"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Resolution is the outcome of mapping a transaction flow onto ledger accounts.
type Resolution struct {
	DebitCode  string
	CreditCode string
	Narrative  string
	Fallbacks  []domain.Fallback
}

// AccountMapper turns transaction flows and invoices into ledger account codes using injected MappingRules.
type AccountMapper struct {
	rules domain.MappingRules
}

// NewAccountMapper validates rules and returns a mapper bound to them.
func NewAccountMapper(rules domain.MappingRules) (*AccountMapper, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &AccountMapper{rules: rules}, nil
}

// Rules returns the mapping table the mapper resolves against.
func (m *AccountMapper) Rules() domain.MappingRules {
	return m.rules
}

// PaymentAccountCode returns the ledger code mapped to a payment account name.
func (m *AccountMapper) PaymentAccountCode(name string) (string, bool) {
	code, ok := m.rules.PaymentAccounts[name]
	return code, ok && code != ""
}

// Resolve picks the debit and credit codes and the narrative for flow.
// Unknown payment accounts and categories fall back to defaults and are reported in Fallbacks,
// or rejected with a validation error when the rules are strict.
func (m *AccountMapper) Resolve(flow domain.Flow, description string) (Resolution, error) {
	var res Resolution
	fallback := func(role domain.FallbackRole, ref, used, reason string) {
		res.Fallbacks = append(res.Fallbacks, domain.Fallback{Role: role, Reference: ref, UsedValue: used, Reason: reason})
	}

	switch f := flow.(type) {
	case domain.TransferFlow:
		res.Narrative = fmt.Sprintf("Transferencia de %s a %s", f.FromAccount, f.ToAccount)
		res.DebitCode = m.accountOr(f.ToAccount, m.rules.DefaultCashCode, domain.FallbackDebit, fallback)
		res.CreditCode = m.accountOr(f.FromAccount, m.rules.DefaultCashCode, domain.FallbackCredit, fallback)

	case domain.IncomeFlow:
		cat, known := m.rules.Categories[f.CategoryID]
		catRef := strconv.Itoa(f.CategoryID)
		debitDefault := m.rules.DefaultCashCode
		if known {
			debitDefault = cat.Debit
			res.CreditCode = cat.Credit
			res.Narrative = cat.Label
		} else {
			res.CreditCode = m.rules.DefaultIncomeCreditCode
			fallback(domain.FallbackCredit, catRef, res.CreditCode, "category is not mapped")
		}
		res.DebitCode = m.accountOr(f.ToAccount, debitDefault, domain.FallbackDebit, fallback)
		if res.Narrative == "" {
			res.Narrative = description
			fallback(domain.FallbackNarrative, catRef, description, "category has no label")
		}

	case domain.ExpenseFlow:
		cat, known := m.rules.Categories[f.CategoryID]
		catRef := strconv.Itoa(f.CategoryID)
		creditDefault := m.rules.DefaultCashCode
		if known {
			res.DebitCode = cat.Debit
			creditDefault = cat.Credit
			res.Narrative = cat.Label
		} else {
			res.DebitCode = m.rules.DefaultExpenseDebitCode
			fallback(domain.FallbackDebit, catRef, res.DebitCode, "category is not mapped")
		}
		res.CreditCode = m.accountOr(f.FromAccount, creditDefault, domain.FallbackCredit, fallback)
		if res.Narrative == "" {
			res.Narrative = description
			fallback(domain.FallbackNarrative, catRef, description, "category has no label")
		}

	default:
		return Resolution{}, fmt.Errorf("unsupported transaction flow %T", flow)
	}

	if m.rules.StrictReferences && len(res.Fallbacks) > 0 {
		verr := apperrors.NewValidationError("mapping")
		for _, fb := range res.Fallbacks {
			if fb.Role == domain.FallbackNarrative {
				continue
			}
			verr.Add(string(fb.Role), fmt.Sprintf("unknown reference %q: %s", fb.Reference, fb.Reason))
		}
		if err := verr.OrNil(); err != nil {
			return Resolution{}, err
		}
	}
	return res, nil
}

func (m *AccountMapper) accountOr(name, def string, role domain.FallbackRole, record func(domain.FallbackRole, string, string, string)) string {
	if code, ok := m.PaymentAccountCode(name); ok {
		return code
	}
	record(role, name, def, "payment account is not mapped")
	return def
}

// InvoiceLines returns the three unnamed journal lines of an invoice.
// Sales debit receivables for the total and credit sales and tax payable; purchases mirror it.
func (m *AccountMapper) InvoiceLines(invoiceType domain.InvoiceType, subtotal, tax, total decimal.Decimal) []domain.JournalEntryLine {
	acc := m.rules.Invoice
	if invoiceType == domain.InvoiceSale {
		return []domain.JournalEntryLine{
			{LineNo: 1, AccountCode: acc.Receivable, Debit: total, Credit: decimal.Zero},
			{LineNo: 2, AccountCode: acc.Sales, Debit: decimal.Zero, Credit: subtotal},
			{LineNo: 3, AccountCode: acc.TaxPayable, Debit: decimal.Zero, Credit: tax},
		}
	}
	return []domain.JournalEntryLine{
		{LineNo: 1, AccountCode: acc.Purchases, Debit: subtotal, Credit: decimal.Zero},
		{LineNo: 2, AccountCode: acc.TaxCredit, Debit: tax, Credit: decimal.Zero},
		{LineNo: 3, AccountCode: acc.Payable, Debit: decimal.Zero, Credit: total},
	}
}

// InvoiceDescription is the journal entry description for an invoice.
func InvoiceDescription(invoiceType domain.InvoiceType, number, client string) string {
	kind := "compra"
	if invoiceType == domain.InvoiceSale {
		kind = "venta"
	}
	return fmt.Sprintf("Factura %s %s - %s", kind, number, client)
}
