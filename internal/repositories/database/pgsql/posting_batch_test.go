package pgsql

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateWriteError(t *testing.T) {
	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		cause := fmt.Errorf("batch: %w", &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "transactions_idempotency_key_idx"})

		err := translateWriteError("failed to save posting for entry je-1", cause)

		assert.True(t, errors.Is(err, apperrors.ErrDuplicate))
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 409, appErr.Code)
		assert.Contains(t, appErr.Message, "transactions_idempotency_key_idx")
	})

	t.Run("other database errors stay internal", func(t *testing.T) {
		err := translateWriteError("failed to save posting", &pgconn.PgError{Code: "23503", ConstraintName: "transactions_invoice_id_fkey"})

		assert.False(t, errors.Is(err, apperrors.ErrDuplicate))
		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 500, appErr.Code)
	})

	t.Run("non database errors stay internal", func(t *testing.T) {
		err := translateWriteError("failed to commit write transaction", errors.New("conn closed"))

		var appErr *apperrors.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, 500, appErr.Code)
		assert.Contains(t, err.Error(), "conn closed")
	})
}

func TestQueuePostingOrdersInsertsByReference(t *testing.T) {
	date := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	invID, txID := "inv-1", "tx-1"
	posting := domain.Posting{
		Invoice: &domain.Invoice{
			ID: invID, Type: domain.InvoiceSale, Date: date, BusinessID: "biz-1", InvoiceNumber: "F001-1",
			Subtotal: decimal.NewFromInt(100), IGV: decimal.NewFromInt(18), Total: decimal.NewFromInt(118), Currency: "PEN",
			Items: []domain.InvoiceItem{
				{ID: "item-1", InvoiceID: invID, Description: "a", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(60), Total: decimal.NewFromInt(60)},
				{ID: "item-2", InvoiceID: invID, Description: "b", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(40), Total: decimal.NewFromInt(40)},
			},
		},
		Transaction: &domain.Transaction{ID: txID, Date: date, Type: domain.TxIncome, BusinessID: "biz-1", Amount: decimal.NewFromInt(118), Currency: "PEN", InvoiceID: &invID},
		Entry: domain.JournalEntry{
			ID: "je-1", Date: date, BusinessID: "biz-1", TransactionID: &txID, InvoiceID: &invID,
			Lines: []domain.JournalEntryLine{
				{EntryID: "je-1", LineNo: 1, AccountCode: "1212", Debit: decimal.NewFromInt(118)},
				{EntryID: "je-1", LineNo: 2, AccountCode: "7011", Credit: decimal.NewFromInt(100)},
				{EntryID: "je-1", LineNo: 3, AccountCode: "4011", Credit: decimal.NewFromInt(18)},
			},
		},
	}

	batch := &pgx.Batch{}
	queueInvoice(batch, *posting.Invoice)
	queueTransaction(batch, *posting.Transaction)
	queueEntry(batch, posting.Entry)

	var tables []string
	for _, q := range batch.QueuedQueries {
		fields := strings.Fields(q.SQL)
		require.GreaterOrEqual(t, len(fields), 3)
		tables = append(tables, fields[2])
		assert.NotContains(t, q.SQL, "seq", "the database assigns the insertion sequence")
	}
	assert.Equal(t, []string{
		"invoices", "invoice_items", "invoice_items",
		"transactions",
		"journal_entries", "journal_entry_lines", "journal_entry_lines", "journal_entry_lines",
	}, tables)
}

func TestConditionsKeysetOnInsertionSequence(t *testing.T) {
	var c conditions
	c.business("business_id", "biz-1")
	day := time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)
	c.before("date", "created_at", "seq", day, day.Add(time.Hour), 42)

	assert.Equal(t, " WHERE business_id = $1 AND (date, created_at, seq) < ($2, $3, $4)", c.where())
	assert.Equal(t, []interface{}{"biz-1", day, day.Add(time.Hour), int64(42)}, c.args)
	assert.Equal(t, " LIMIT $5", c.limit(10))
}
