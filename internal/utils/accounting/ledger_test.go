package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func twoLineEntry(id string, date time.Time, created time.Time, debitCode, creditCode, amount string) domain.JournalEntry {
	return domain.JournalEntry{
		ID:          id,
		Date:        date,
		Description: "entry " + id,
		CreatedAt:   created,
		Lines: []domain.JournalEntryLine{
			{EntryID: id, LineNo: 1, AccountCode: debitCode, AccountName: "Cuenta " + debitCode, Debit: dec(amount), Credit: decimal.Zero},
			{EntryID: id, LineNo: 2, AccountCode: creditCode, AccountName: "Cuenta " + creditCode, Debit: decimal.Zero, Credit: dec(amount)},
		},
	}
}

func TestBuildGeneralLedger_RunningBalances(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []domain.JournalEntry{
		// out of order on purpose
		twoLineEntry("e3", day(2024, 3, 20), base.Add(3*time.Hour), "6011", "1041", "400"),
		twoLineEntry("e1", day(2024, 3, 5), base, "1041", "7011", "1000"),
		twoLineEntry("e2", day(2024, 3, 5), base.Add(time.Hour), "1041", "7041", "250"),
	}

	ledgers := BuildGeneralLedger(entries, "")
	require.Len(t, ledgers, 4)
	assert.Equal(t, []string{"1041", "6011", "7011", "7041"}, []string{ledgers[0].Code, ledgers[1].Code, ledgers[2].Code, ledgers[3].Code})

	bank := ledgers[0]
	require.Len(t, bank.Entries, 3)
	assert.Equal(t, "e1", bank.Entries[0].EntryID)
	assert.Equal(t, "e2", bank.Entries[1].EntryID, "same-day entries keep creation order")
	assert.Equal(t, "e3", bank.Entries[2].EntryID)
	assert.True(t, bank.Entries[0].Balance.Equal(dec("1000")))
	assert.True(t, bank.Entries[1].Balance.Equal(dec("1250")))
	assert.True(t, bank.Entries[2].Balance.Equal(dec("850")))
	assert.True(t, bank.TotalDebit.Equal(dec("1250")))
	assert.True(t, bank.TotalCredit.Equal(dec("400")))
	assert.True(t, bank.FinalBalance.Equal(dec("850")))

	sales := ledgers[2]
	assert.True(t, sales.FinalBalance.Equal(dec("-1000")))
}

func TestBuildGeneralLedger_FullTieKeepsInsertionOrder(t *testing.T) {
	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	income := twoLineEntry("f-income", day(2024, 5, 20), created, "1041", "7011", "1000")
	income.Seq = 1
	expense := twoLineEntry("a-expense", day(2024, 5, 20), created, "6011", "1041", "400")
	expense.Seq = 2

	// ids sort the opposite way from insertion, and the input arrives reversed
	ledgers := BuildGeneralLedger([]domain.JournalEntry{expense, income}, "1041")
	require.Len(t, ledgers, 1)
	bank := ledgers[0]
	require.Len(t, bank.Entries, 2)
	assert.Equal(t, "f-income", bank.Entries[0].EntryID)
	assert.True(t, bank.Entries[0].Balance.Equal(dec("1000")), "first running balance is the income")
	assert.True(t, bank.Entries[1].Balance.Equal(dec("600")))
}

func TestBuildGeneralLedger_AccountFilter(t *testing.T) {
	entries := []domain.JournalEntry{
		twoLineEntry("e1", day(2024, 1, 2), day(2024, 1, 2), "1041", "7011", "10"),
		twoLineEntry("e2", day(2024, 1, 3), day(2024, 1, 3), "6599", "1042", "4"),
	}

	ledgers := BuildGeneralLedger(entries, "1042")
	require.Len(t, ledgers, 1)
	assert.Equal(t, "1042", ledgers[0].Code)
	assert.True(t, ledgers[0].FinalBalance.Equal(dec("-4")))

	all := BuildGeneralLedger(entries, "all")
	assert.Len(t, all, 4)
}

func TestBuildGeneralLedger_TransferShowsBothSidesOfOneEntry(t *testing.T) {
	transfer := twoLineEntry("t1", day(2024, 5, 1), day(2024, 5, 1), "1042", "1041", "200")

	ledgers := BuildGeneralLedger([]domain.JournalEntry{transfer}, "")
	require.Len(t, ledgers, 2)

	assert.Equal(t, "1041", ledgers[0].Code)
	require.Len(t, ledgers[0].Entries, 1)
	assert.True(t, ledgers[0].Entries[0].Credit.Equal(dec("200")))
	assert.Equal(t, "t1", ledgers[0].Entries[0].EntryID)

	assert.Equal(t, "1042", ledgers[1].Code)
	require.Len(t, ledgers[1].Entries, 1)
	assert.True(t, ledgers[1].Entries[0].Debit.Equal(dec("200")))
	assert.Equal(t, "t1", ledgers[1].Entries[0].EntryID)
}

func TestBuildGeneralLedger_IsRepeatable(t *testing.T) {
	entries := []domain.JournalEntry{
		twoLineEntry("e2", day(2024, 2, 1), day(2024, 2, 1), "1041", "7011", "5"),
		twoLineEntry("e1", day(2024, 1, 1), day(2024, 1, 1), "1041", "7011", "7"),
	}
	first := BuildGeneralLedger(entries, "")
	second := BuildGeneralLedger(entries, "")
	assert.Equal(t, first, second)
	assert.Equal(t, "e2", entries[0].ID, "input slice is not reordered")
}

func TestBuildGeneralLedger_Empty(t *testing.T) {
	ledgers := BuildGeneralLedger(nil, "")
	assert.NotNil(t, ledgers)
	assert.Empty(t, ledgers)
}

func TestRawBalances(t *testing.T) {
	entries := []domain.JournalEntry{
		twoLineEntry("e1", day(2024, 1, 1), day(2024, 1, 1), "1041", "7011", "100"),
		twoLineEntry("e2", day(2024, 1, 2), day(2024, 1, 2), "6011", "1041", "30"),
	}
	raw := RawBalances(entries)
	assert.True(t, raw["1041"].Equal(dec("70")))
	assert.True(t, raw["7011"].Equal(dec("-100")))
	assert.True(t, raw["6011"].Equal(dec("30")))
}
