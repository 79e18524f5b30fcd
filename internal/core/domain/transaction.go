package domain

import (
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType is the kind of cash movement a transaction records.
type TransactionType string

const (
	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
)

// DefaultCurrency is used when a caller leaves the currency empty.
const DefaultCurrency = "PEN"

// Transaction is a cash movement between payment accounts, optionally linked to an invoice.
type Transaction struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Type           TransactionType `json:"type"`
	BusinessID     string          `json:"businessId"`
	CategoryID     *int            `json:"categoryId,omitempty"` // nil for transfers
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	FromAccount    string          `json:"fromAccount,omitempty"` // payment account name
	ToAccount      string          `json:"toAccount,omitempty"`   // payment account name
	Description    string          `json:"description"`
	Reference      string          `json:"reference,omitempty"`
	IsInvoiced     bool            `json:"isInvoiced"`
	InvoiceID      *string         `json:"invoiceId,omitempty"`
	IdempotencyKey *string         `json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	Seq            int64           `json:"-"` // insertion order, assigned by the store
}

// Flow returns the typed view of the transaction's account/category fields.
func (t Transaction) Flow() (Flow, error) {
	return NewFlow(t.Type, t.FromAccount, t.ToAccount, t.CategoryID)
}

// Flow is the closed set of transaction shapes: IncomeFlow, ExpenseFlow and TransferFlow.
type Flow interface {
	Type() TransactionType
	isFlow()
}

// IncomeFlow moves money into ToAccount, classified by an income category.
type IncomeFlow struct {
	ToAccount  string
	CategoryID int
}

// ExpenseFlow moves money out of FromAccount, classified by an expense category.
type ExpenseFlow struct {
	FromAccount string
	CategoryID  int
}

// TransferFlow moves money between two payment accounts.
type TransferFlow struct {
	FromAccount string
	ToAccount   string
}

func (IncomeFlow) Type() TransactionType   { return TxIncome }
func (ExpenseFlow) Type() TransactionType  { return TxExpense }
func (TransferFlow) Type() TransactionType { return TxTransfer }

func (IncomeFlow) isFlow()   {}
func (ExpenseFlow) isFlow()  {}
func (TransferFlow) isFlow() {}

// NewFlow validates the fields required by txType and builds the matching flow.
// Fields that do not belong to the type (a category on a transfer, a source account
// on an income) are ignored.
func NewFlow(txType TransactionType, fromAccount, toAccount string, categoryID *int) (Flow, error) {
	verr := apperrors.NewValidationError("flow")
	switch txType {
	case TxIncome:
		if toAccount == "" {
			verr.Add("toAccount", "required for income")
		}
		cat := requireCategory(verr, categoryID, "income")
		if verr.HasErrors() {
			return nil, verr
		}
		return IncomeFlow{ToAccount: toAccount, CategoryID: cat}, nil
	case TxExpense:
		if fromAccount == "" {
			verr.Add("fromAccount", "required for expense")
		}
		cat := requireCategory(verr, categoryID, "expense")
		if verr.HasErrors() {
			return nil, verr
		}
		return ExpenseFlow{FromAccount: fromAccount, CategoryID: cat}, nil
	case TxTransfer:
		if fromAccount == "" {
			verr.Add("fromAccount", "required for transfer")
		}
		if toAccount == "" {
			verr.Add("toAccount", "required for transfer")
		}
		if fromAccount != "" && fromAccount == toAccount {
			verr.Add("toAccount", "must differ from fromAccount")
		}
		if verr.HasErrors() {
			return nil, verr
		}
		return TransferFlow{FromAccount: fromAccount, ToAccount: toAccount}, nil
	default:
		verr.Add("type", "must be one of income, expense, transfer")
		return nil, verr
	}
}

// NewInvoicedFlow is NewFlow for invoiced income and expenses. Those settle through receivables
// and payables, so the payment account is optional; the category is still required.
func NewInvoicedFlow(txType TransactionType, fromAccount, toAccount string, categoryID *int) (Flow, error) {
	verr := apperrors.NewValidationError("flow")
	switch txType {
	case TxIncome:
		cat := requireCategory(verr, categoryID, "income")
		if verr.HasErrors() {
			return nil, verr
		}
		return IncomeFlow{ToAccount: toAccount, CategoryID: cat}, nil
	case TxExpense:
		cat := requireCategory(verr, categoryID, "expense")
		if verr.HasErrors() {
			return nil, verr
		}
		return ExpenseFlow{FromAccount: fromAccount, CategoryID: cat}, nil
	default:
		return NewFlow(txType, fromAccount, toAccount, categoryID)
	}
}

func requireCategory(verr *apperrors.ValidationError, categoryID *int, kind string) int {
	if categoryID == nil {
		verr.Add("categoryId", "required for "+kind)
		return 0
	}
	if *categoryID <= 0 {
		verr.Add("categoryId", "must be positive")
		return 0
	}
	return *categoryID
}

// DateOnly truncates t to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
