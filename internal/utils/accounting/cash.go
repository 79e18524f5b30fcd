package accounting

import (
	"sort"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SortTransactions orders transactions chronologically, then by creation time, then insertion sequence.
func SortTransactions(txs []domain.Transaction) {
	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.Before(txs[j].Date)
		}
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.Before(txs[j].CreatedAt)
		}
		return txs[i].Seq < txs[j].Seq
	})
}

// ReplayPaymentAccounts rebuilds each active payment account's movements and running balance from transactions.
// Transfers count toward TotalIncome (inbound) and TotalExpense (outbound) of the accounts they touch.
func ReplayPaymentAccounts(accounts []domain.PaymentAccount, txs []domain.Transaction, businessNames map[string]string) []domain.PaymentAccountBalance {
	ordered := make([]domain.Transaction, len(txs))
	copy(ordered, txs)
	SortTransactions(ordered)

	active := make([]domain.PaymentAccount, 0, len(accounts))
	for _, acc := range accounts {
		if acc.IsActive {
			active = append(active, acc)
		}
	}
	sort.SliceStable(active, func(i, j int) bool { return active[i].Name < active[j].Name })

	result := make([]domain.PaymentAccountBalance, 0, len(active))
	for _, acc := range active {
		result = append(result, replayAccount(acc, ordered, businessNames))
	}
	return result
}

func replayAccount(acc domain.PaymentAccount, txs []domain.Transaction, businessNames map[string]string) domain.PaymentAccountBalance {
	currency := acc.Currency
	if currency == "" {
		currency = domain.DefaultCurrency
	}
	bal := domain.PaymentAccountBalance{
		AccountName:     acc.Name,
		AccountType:     acc.Type,
		AccountCurrency: currency,
		TotalIncome:     decimal.Zero,
		TotalExpense:    decimal.Zero,
		Movements:       []domain.Movement{},
	}
	running := decimal.Zero

	record := func(tx domain.Transaction, kind domain.MovementType, description string) {
		if kind == domain.MovementIncome || kind == domain.MovementTransferIn {
			running = running.Add(tx.Amount)
			bal.TotalIncome = bal.TotalIncome.Add(tx.Amount)
		} else {
			running = running.Sub(tx.Amount)
			bal.TotalExpense = bal.TotalExpense.Add(tx.Amount)
		}
		txCurrency := tx.Currency
		if txCurrency == "" {
			txCurrency = domain.DefaultCurrency
		}
		bal.Movements = append(bal.Movements, domain.Movement{
			TransactionID: tx.ID,
			Date:          tx.Date,
			Description:   description,
			Type:          kind,
			Amount:        tx.Amount,
			Balance:       running,
			BusinessName:  businessNames[tx.BusinessID],
			Currency:      txCurrency,
		})
	}

	for _, tx := range txs {
		switch tx.Type {
		case domain.TxIncome:
			if tx.ToAccount == acc.Name {
				record(tx, domain.MovementIncome, orDefault(tx.Description, "Ingreso"))
			}
		case domain.TxExpense:
			if tx.FromAccount == acc.Name {
				record(tx, domain.MovementExpense, orDefault(tx.Description, "Egreso"))
			}
		case domain.TxTransfer:
			if tx.FromAccount == acc.Name {
				record(tx, domain.MovementTransferOut, "Transferencia a "+tx.ToAccount)
			}
			if tx.ToAccount == acc.Name {
				record(tx, domain.MovementTransferIn, "Transferencia desde "+tx.FromAccount)
			}
		}
	}

	bal.NetBalance = bal.TotalIncome.Sub(bal.TotalExpense)
	return bal
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
