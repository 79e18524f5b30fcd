package accounting

import (
	"sort"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortEntries orders journal entries by date, then creation time, then insertion sequence.
func SortEntries(entries []domain.JournalEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		if !entries[i].CreatedAt.Equal(entries[j].CreatedAt) {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		}
		return entries[i].Seq < entries[j].Seq
	})
}

// BuildGeneralLedger groups entry lines by account and computes running balances (debit - credit).
// Entries must already be filtered by business and period; accountCode optionally narrows to one account.
func BuildGeneralLedger(entries []domain.JournalEntry, accountCode string) []domain.AccountLedger {
	sorted := make([]domain.JournalEntry, len(entries))
	copy(sorted, entries)
	SortEntries(sorted)

	byCode := make(map[string]*domain.AccountLedger)
	for _, entry := range sorted {
		lines := make([]domain.JournalEntryLine, len(entry.Lines))
		copy(lines, entry.Lines)
		sort.SliceStable(lines, func(i, j int) bool { return lines[i].LineNo < lines[j].LineNo })

		for _, line := range lines {
			if !domain.AllAccounts(accountCode) && line.AccountCode != accountCode {
				continue
			}
			ledger, ok := byCode[line.AccountCode]
			if !ok {
				ledger = &domain.AccountLedger{
					Code:         line.AccountCode,
					Entries:      []domain.LedgerLine{},
					TotalDebit:   decimal.Zero,
					TotalCredit:  decimal.Zero,
					FinalBalance: decimal.Zero,
				}
				byCode[line.AccountCode] = ledger
			}
			// the most recent snapshot names the account
			ledger.Name = line.AccountName
			ledger.TotalDebit = ledger.TotalDebit.Add(line.Debit)
			ledger.TotalCredit = ledger.TotalCredit.Add(line.Credit)
			ledger.FinalBalance = ledger.FinalBalance.Add(line.Debit).Sub(line.Credit)
			ledger.Entries = append(ledger.Entries, domain.LedgerLine{
				Date:        entry.Date,
				EntryID:     entry.ID,
				Description: entry.Description,
				Debit:       line.Debit,
				Credit:      line.Credit,
				Balance:     ledger.FinalBalance,
			})
		}
	}

	result := make([]domain.AccountLedger, 0, len(byCode))
	for _, ledger := range byCode {
		result = append(result, *ledger)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

// RawBalances sums debit - credit per account code over all lines of entries.
func RawBalances(entries []domain.JournalEntry) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)
	for _, entry := range entries {
		for _, line := range entry.Lines {
			balances[line.AccountCode] = balances[line.AccountCode].Add(line.Debit).Sub(line.Credit)
		}
	}
	return balances
}
