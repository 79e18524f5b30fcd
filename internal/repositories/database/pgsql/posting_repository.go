package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	"github.com/SscSPs/bookkeeping_app/internal/models"
	"github.com/SscSPs/bookkeeping_app/internal/utils/mapping"
	"github.com/SscSPs/bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgUniqueViolation is the SQLSTATE raised when a unique index rejects a row.
const pgUniqueViolation = "23505"

// Insert column lists leave out seq, which the database assigns; selects read it back last.
const (
	transactionColumns = `id, date, type, business_id, category_id, amount, currency, from_account, to_account,
		description, reference, is_invoiced, invoice_id, idempotency_key, created_at`
	invoiceColumns = `id, type, date, business_id, client_supplier, ruc, invoice_number, subtotal, igv, total,
		currency, idempotency_key, created_at`
	entryColumns = `e.id, e.date, e.business_id, e.description, e.transaction_id, e.invoice_id, e.created_at, e.seq`
)

type PgxPostingRepository struct {
	BaseRepository
}

// newPgxPostingRepository creates a new repository for transactions, invoices and journal entries.
func newPgxPostingRepository(pool *pgxpool.Pool) portsrepo.PostingRepositoryFacade {
	return &PgxPostingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var (
	_ portsrepo.PostingRepositoryFacade = (*PgxPostingRepository)(nil)
	_ txManager                         = (*PgxPostingRepository)(nil)
)

// SavePosting inserts every record of a posting within one DB transaction.
func (r *PgxPostingRepository) SavePosting(ctx context.Context, posting domain.Posting) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // no-op after commit

	batch := &pgx.Batch{}
	// The invoice goes first: the transaction and the entry both reference it.
	if posting.Invoice != nil {
		queueInvoice(batch, *posting.Invoice)
	}
	if posting.Transaction != nil {
		queueTransaction(batch, *posting.Transaction)
	}
	queueEntry(batch, posting.Entry)

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError("failed to save posting for entry "+posting.Entry.ID, err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceTransactionPosting rewrites a transaction row and swaps its journal entry.
func (r *PgxPostingRepository) ReplaceTransactionPosting(ctx context.Context, posting domain.Posting) error {
	if posting.Transaction == nil {
		return apperrors.NewAppError(500, "replace posting without a transaction", nil)
	}
	t := mapping.ToModelTransaction(*posting.Transaction)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE transactions
		SET date = $2, type = $3, business_id = $4, category_id = $5, amount = $6, currency = $7,
		    from_account = $8, to_account = $9, description = $10, reference = $11
		WHERE id = $1;
	`, t.ID, t.Date, t.Type, t.BusinessID, t.CategoryID, t.Amount, t.Currency,
		t.FromAccount, t.ToAccount, t.Description, t.Reference)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+t.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + t.ID)
	}

	// Lines go with their entry through the foreign key cascade.
	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE transaction_id = $1;`, t.ID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entries of transaction "+t.ID, err)
	}

	batch := &pgx.Batch{}
	queueEntry(batch, posting.Entry)
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return translateWriteError("failed to insert journal entry "+posting.Entry.ID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteTransactionCascade removes a transaction with its entries, and its invoice when linked.
func (r *PgxPostingRepository) DeleteTransactionCascade(ctx context.Context, transactionID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var invoiceID *string
	err = tx.QueryRow(ctx, `SELECT invoice_id FROM transactions WHERE id = $1 FOR UPDATE;`, transactionID).Scan(&invoiceID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("transaction " + transactionID)
		}
		return apperrors.NewAppError(500, "failed to find transaction "+transactionID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE transaction_id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entries of transaction "+transactionID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM transactions WHERE id = $1;`, transactionID); err != nil {
		return apperrors.NewAppError(500, "failed to delete transaction "+transactionID, err)
	}
	if invoiceID != nil {
		if err := deleteInvoiceRows(ctx, tx, *invoiceID); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteInvoiceCascade removes an invoice, its items, its linked transactions and all their entries.
func (r *PgxPostingRepository) DeleteInvoiceCascade(ctx context.Context, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM invoices WHERE id = $1);`, invoiceID).Scan(&exists); err != nil {
		return apperrors.NewAppError(500, "failed to find invoice "+invoiceID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError("invoice " + invoiceID)
	}
	if err := deleteInvoiceRows(ctx, tx, invoiceID); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func deleteInvoiceRows(ctx context.Context, tx pgx.Tx, invoiceID string) error {
	statements := []struct {
		sql  string
		what string
	}{
		{`DELETE FROM journal_entries WHERE invoice_id = $1
		     OR transaction_id IN (SELECT id FROM transactions WHERE invoice_id = $1);`, "journal entries"},
		{`DELETE FROM transactions WHERE invoice_id = $1;`, "transactions"},
		{`DELETE FROM invoice_items WHERE invoice_id = $1;`, "items"},
		{`DELETE FROM invoices WHERE id = $1;`, "invoice"},
	}
	for _, st := range statements {
		if _, err := tx.Exec(ctx, st.sql, invoiceID); err != nil {
			return apperrors.NewAppError(500, "failed to delete "+st.what+" of invoice "+invoiceID, err)
		}
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxPostingRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `, seq FROM transactions WHERE id = $1;`

	t, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID)
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	d := mapping.ToDomainTransaction(t)
	return &d, nil
}

// ListTransactions retrieves transactions newest first using keyset pagination.
func (r *PgxPostingRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, *string, error) {
	var c conditions
	c.business("business_id", filter.BusinessID)
	c.dateRange("date", filter.Range)
	if filter.Type != "" {
		c.add("type = ?", string(filter.Type))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cur, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		c.before("date", "created_at", "seq", cur.Date, cur.CreatedAt, cur.Seq)
	}

	query := `SELECT ` + transactionColumns + `, seq FROM transactions` + c.where() +
		` ORDER BY date DESC, created_at DESC, seq DESC`
	if filter.Limit > 0 {
		// One extra row tells whether another page exists.
		query += c.limit(filter.Limit + 1)
	}

	rows, err := r.Pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	list := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	var next *string
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
		last := list[len(list)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, Seq: last.Seq})
		next = &token
	}

	return mapping.ToDomainTransactionSlice(list), next, nil
}

// FindInvoiceByID retrieves an invoice and its items.
func (r *PgxPostingRepository) FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	query := `SELECT ` + invoiceColumns + `, seq FROM invoices WHERE id = $1;`

	inv, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("invoice " + invoiceID)
		}
		return nil, apperrors.NewAppError(500, "failed to find invoice by ID "+invoiceID, err)
	}

	rows, err := r.Pool.Query(ctx, `
		SELECT id, invoice_id, description, quantity, unit_price, total
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY seq;
	`, invoiceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for invoice "+invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		var it models.InvoiceItem
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &it.Quantity, &it.UnitPrice, &it.Total); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for invoice "+invoiceID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for invoice "+invoiceID, err)
	}

	d := mapping.ToDomainInvoice(inv, items)
	return &d, nil
}

// ListInvoices retrieves invoices newest first using keyset pagination. Items are not loaded.
func (r *PgxPostingRepository) ListInvoices(ctx context.Context, filter portsrepo.InvoiceFilter) ([]domain.Invoice, *string, error) {
	var c conditions
	c.business("business_id", filter.BusinessID)
	c.dateRange("date", filter.Range)
	if filter.Type != "" {
		c.add("type = ?", string(filter.Type))
	}
	if filter.Currency != "" {
		c.add("currency = ?", filter.Currency)
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cur, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", err)
		}
		c.before("date", "created_at", "seq", cur.Date, cur.CreatedAt, cur.Seq)
	}

	query := `SELECT ` + invoiceColumns + `, seq FROM invoices` + c.where() +
		` ORDER BY date DESC, created_at DESC, seq DESC`
	if filter.Limit > 0 {
		query += c.limit(filter.Limit + 1)
	}

	rows, err := r.Pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query invoices", err)
	}
	defer rows.Close()

	list := []models.Invoice{}
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan invoice row", err)
		}
		list = append(list, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating invoice rows", err)
	}

	var next *string
	if filter.Limit > 0 && len(list) > filter.Limit {
		list = list[:filter.Limit]
		last := list[len(list)-1]
		token := pagination.EncodeToken(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, Seq: last.Seq})
		next = &token
	}

	result := make([]domain.Invoice, len(list))
	for i, inv := range list {
		result[i] = mapping.ToDomainInvoice(inv, nil)
	}
	return result, next, nil
}

// ListJournalEntries retrieves matching entries oldest first, each with its lines.
func (r *PgxPostingRepository) ListJournalEntries(ctx context.Context, filter portsrepo.JournalFilter) ([]domain.JournalEntry, error) {
	var c conditions
	c.business("e.business_id", filter.BusinessID)
	c.dateRange("e.date", filter.Range)
	if !domain.AllAccounts(filter.AccountCode) {
		c.add("EXISTS (SELECT 1 FROM journal_entry_lines l WHERE l.entry_id = e.id AND l.account_code = ?)", filter.AccountCode)
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries e` + c.where() +
		` ORDER BY e.date, e.created_at, e.seq;`
	rows, err := r.Pool.Query(ctx, query, c.args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entries", err)
	}
	defer rows.Close()

	entries := []models.JournalEntry{}
	ids := []string{}
	for rows.Next() {
		var e models.JournalEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.BusinessID, &e.Description, &e.TransactionID, &e.InvoiceID, &e.CreatedAt, &e.Seq); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		entries = append(entries, e)
		ids = append(ids, e.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}
	if len(entries) == 0 {
		return []domain.JournalEntry{}, nil
	}

	lineRows, err := r.Pool.Query(ctx, `
		SELECT entry_id, line_no, account_code, account_name, debit, credit
		FROM journal_entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_no;
	`, ids)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query journal entry lines", err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]models.JournalEntryLine, len(entries))
	for lineRows.Next() {
		var l models.JournalEntryLine
		if err := lineRows.Scan(&l.EntryID, &l.LineNo, &l.AccountCode, &l.AccountName, &l.Debit, &l.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan journal entry line row", err)
		}
		linesByEntry[l.EntryID] = append(linesByEntry[l.EntryID], l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating journal entry line rows", err)
	}

	result := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		result[i] = mapping.ToDomainJournalEntry(e, linesByEntry[e.ID])
	}
	return result, nil
}

func queueInvoice(batch *pgx.Batch, inv domain.Invoice) {
	m := mapping.ToModelInvoice(inv)
	batch.Queue(`
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`, m.ID, m.Type, m.Date, m.BusinessID, m.ClientSupplier, m.RUC, m.InvoiceNumber,
		m.Subtotal, m.IGV, m.Total, m.Currency, m.IdempotencyKey, m.CreatedAt)

	for _, item := range inv.Items {
		it := mapping.ToModelInvoiceItem(item)
		batch.Queue(`
			INSERT INTO invoice_items (id, invoice_id, description, quantity, unit_price, total)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, it.ID, it.InvoiceID, it.Description, it.Quantity, it.UnitPrice, it.Total)
	}
}

func queueTransaction(batch *pgx.Batch, t domain.Transaction) {
	m := mapping.ToModelTransaction(t)
	batch.Queue(`
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`, m.ID, m.Date, m.Type, m.BusinessID, m.CategoryID, m.Amount, m.Currency, m.FromAccount, m.ToAccount,
		m.Description, m.Reference, m.IsInvoiced, m.InvoiceID, m.IdempotencyKey, m.CreatedAt)
}

func queueEntry(batch *pgx.Batch, entry domain.JournalEntry) {
	m := mapping.ToModelJournalEntry(entry)
	batch.Queue(`
		INSERT INTO journal_entries (id, date, business_id, description, transaction_id, invoice_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, m.ID, m.Date, m.BusinessID, m.Description, m.TransactionID, m.InvoiceID, m.CreatedAt)

	for _, line := range entry.Lines {
		l := mapping.ToModelJournalEntryLine(line)
		batch.Queue(`
			INSERT INTO journal_entry_lines (entry_id, line_no, account_code, account_name, debit, credit)
			VALUES ($1, $2, $3, $4, $5, $6);
		`, l.EntryID, l.LineNo, l.AccountCode, l.AccountName, l.Debit, l.Credit)
	}
}

// translateWriteError maps a unique violation (a replayed idempotency key) to ErrDuplicate.
func translateWriteError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.NewAppError(409, msg+": "+pgErr.ConstraintName, apperrors.ErrDuplicate)
	}
	return apperrors.NewAppError(500, msg, err)
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Type,
		&t.BusinessID,
		&t.CategoryID,
		&t.Amount,
		&t.Currency,
		&t.FromAccount,
		&t.ToAccount,
		&t.Description,
		&t.Reference,
		&t.IsInvoiced,
		&t.InvoiceID,
		&t.IdempotencyKey,
		&t.CreatedAt,
		&t.Seq,
	)
	return t, err
}

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var inv models.Invoice
	err := row.Scan(
		&inv.ID,
		&inv.Type,
		&inv.Date,
		&inv.BusinessID,
		&inv.ClientSupplier,
		&inv.RUC,
		&inv.InvoiceNumber,
		&inv.Subtotal,
		&inv.IGV,
		&inv.Total,
		&inv.Currency,
		&inv.IdempotencyKey,
		&inv.CreatedAt,
		&inv.Seq,
	)
	return inv, err
}
