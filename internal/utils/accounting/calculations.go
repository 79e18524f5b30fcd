package accounting

import (
	"fmt"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DisplayBalance converts a raw debit-minus-credit balance into the statement convention.
// Assets and expenses keep the raw sign, credit-normal accounts are negated.
func DisplayBalance(accountType domain.AccountType, raw decimal.Decimal) (decimal.Decimal, error) {
	switch accountType {
	case domain.Asset, domain.Expense:
		return raw, nil
	case domain.Liability, domain.Equity, domain.Income:
		return raw.Neg(), nil
	default:
		return decimal.Zero, fmt.Errorf("unknown account type '%s'", accountType)
	}
}

// ValidateEntryBalance checks the double-entry invariant on a journal entry before it is stored.
func ValidateEntryBalance(entry domain.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return fmt.Errorf("journal entry must have at least two lines")
	}

	for _, line := range entry.Lines {
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("line %d on account %s has a negative amount", line.LineNo, line.AccountCode)
		}
		if line.AccountCode == "" {
			return fmt.Errorf("line %d has no account code", line.LineNo)
		}
	}

	debit, credit := entry.Totals()
	if !debit.Round(2).Equal(credit.Round(2)) {
		return fmt.Errorf("journal entry does not balance: debit %s, credit %s", debit.StringFixed(2), credit.StringFixed(2))
	}

	return nil
}

// SplitTaxInclusive backs the tax out of a tax-inclusive amount.
// The subtotal is rounded half-up to cents and the tax is the remainder, so subtotal + tax == amount exactly.
func SplitTaxInclusive(amount, rate decimal.Decimal) (subtotal, tax decimal.Decimal) {
	amount = amount.Round(2)
	subtotal = amount.Div(decimal.NewFromInt(1).Add(rate)).Round(2)
	tax = amount.Sub(subtotal)
	return subtotal, tax
}

// Percent returns part/whole × 100 rounded to two places, or zero when whole is not positive.
func Percent(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}
