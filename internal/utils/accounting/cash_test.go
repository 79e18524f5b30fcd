package accounting

import (
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplayPaymentAccounts_IncomeThenExpense(t *testing.T) {
	accounts := []domain.PaymentAccount{{ID: "pa-1", Name: "BCP", Type: domain.PaymentBank, Currency: "PEN", IsActive: true}}
	txs := []domain.Transaction{
		{ID: "t2", Type: domain.TxExpense, Date: day(2024, 4, 10), Amount: dec("400"), FromAccount: "BCP", BusinessID: "b1", Description: "Alquiler"},
		{ID: "t1", Type: domain.TxIncome, Date: day(2024, 4, 2), Amount: dec("1000"), ToAccount: "BCP", BusinessID: "b1"},
	}

	balances := ReplayPaymentAccounts(accounts, txs, map[string]string{"b1": "Tienda"})
	require.Len(t, balances, 1)
	bcp := balances[0]

	assert.True(t, bcp.TotalIncome.Equal(dec("1000")))
	assert.True(t, bcp.TotalExpense.Equal(dec("400")))
	assert.True(t, bcp.NetBalance.Equal(dec("600")))
	require.Len(t, bcp.Movements, 2)
	assert.Equal(t, domain.MovementIncome, bcp.Movements[0].Type)
	assert.Equal(t, "Ingreso", bcp.Movements[0].Description)
	assert.True(t, bcp.Movements[0].Balance.Equal(dec("1000")))
	assert.Equal(t, domain.MovementExpense, bcp.Movements[1].Type)
	assert.Equal(t, "Alquiler", bcp.Movements[1].Description)
	assert.True(t, bcp.Movements[1].Balance.Equal(dec("600")))
	assert.Equal(t, "Tienda", bcp.Movements[1].BusinessName)
	assert.Equal(t, "PEN", bcp.Movements[1].Currency)
}

func TestReplayPaymentAccounts_TransferTouchesBothAccounts(t *testing.T) {
	accounts := []domain.PaymentAccount{
		{Name: "Yape", Type: domain.PaymentWallet, IsActive: true},
		{Name: "BCP", Type: domain.PaymentBank, IsActive: true},
		{Name: "Old", Type: domain.PaymentCash, IsActive: false},
	}
	txs := []domain.Transaction{
		{ID: "t1", Type: domain.TxTransfer, Date: day(2024, 4, 2), Amount: dec("200"), FromAccount: "BCP", ToAccount: "Yape"},
		{ID: "t2", Type: domain.TxIncome, Date: day(2024, 4, 3), Amount: dec("50"), ToAccount: "Interbank"},
	}

	balances := ReplayPaymentAccounts(accounts, txs, nil)
	require.Len(t, balances, 2, "inactive accounts are skipped")
	assert.Equal(t, "BCP", balances[0].AccountName)
	assert.Equal(t, "Yape", balances[1].AccountName)

	bcp := balances[0]
	require.Len(t, bcp.Movements, 1)
	assert.Equal(t, domain.MovementTransferOut, bcp.Movements[0].Type)
	assert.Equal(t, "Transferencia a Yape", bcp.Movements[0].Description)
	assert.True(t, bcp.TotalExpense.Equal(dec("200")))
	assert.True(t, bcp.NetBalance.Equal(dec("-200")))
	assert.Equal(t, "PEN", bcp.AccountCurrency)

	yape := balances[1]
	require.Len(t, yape.Movements, 1)
	assert.Equal(t, domain.MovementTransferIn, yape.Movements[0].Type)
	assert.Equal(t, "Transferencia desde BCP", yape.Movements[0].Description)
	assert.True(t, yape.TotalIncome.Equal(dec("200")))
}

func TestReplayPaymentAccounts_SameDayKeepsCreationOrder(t *testing.T) {
	accounts := []domain.PaymentAccount{{Name: "BCP", IsActive: true}}
	created := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{ID: "late", Type: domain.TxExpense, Date: day(2024, 1, 1), Amount: dec("30"), FromAccount: "BCP", CreatedAt: created.Add(time.Minute)},
		{ID: "early", Type: domain.TxIncome, Date: day(2024, 1, 1), Amount: dec("100"), ToAccount: "BCP", CreatedAt: created},
	}
	balances := ReplayPaymentAccounts(accounts, txs, nil)
	require.Len(t, balances[0].Movements, 2)
	assert.Equal(t, "early", balances[0].Movements[0].TransactionID)
	assert.True(t, balances[0].Movements[1].Balance.Equal(dec("70")))
}

func TestReplayPaymentAccounts_FullTieKeepsInsertionOrder(t *testing.T) {
	accounts := []domain.PaymentAccount{{Name: "BCP", IsActive: true}}
	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)
	txs := []domain.Transaction{
		{ID: "a-expense", Seq: 2, Type: domain.TxExpense, Date: day(2024, 5, 20), Amount: dec("400"), FromAccount: "BCP", CreatedAt: created},
		{ID: "f-income", Seq: 1, Type: domain.TxIncome, Date: day(2024, 5, 20), Amount: dec("1000"), ToAccount: "BCP", CreatedAt: created},
	}
	balances := ReplayPaymentAccounts(accounts, txs, nil)
	require.Len(t, balances[0].Movements, 2)
	assert.Equal(t, "f-income", balances[0].Movements[0].TransactionID)
	assert.True(t, balances[0].Movements[0].Balance.Equal(dec("1000")), "first running balance is the income")
	assert.True(t, balances[0].Movements[1].Balance.Equal(dec("600")))
}
