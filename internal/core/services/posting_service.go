package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/SscSPs/bookkeeping_app/internal/utils/accounting"
)

const defaultListLimit = 50

// postingService is the double-entry posting engine.
type postingService struct {
	BaseService
	postingRepo     portsrepo.PostingRepositoryFacade
	chartRepo       portsrepo.ChartReader
	mapper          *AccountMapper
	cache           portssvc.ReportCache
	observer        portssvc.PostingObserver
	validate        *validator.Validate
	newID           func() string
	defaultCurrency string
}

// PostingServiceOption is a functional option for configuring the posting service
type PostingServiceOption func(*postingService)

// WithPostingReportCache invalidates cached reports of a business after each write.
func WithPostingReportCache(cache portssvc.ReportCache) PostingServiceOption {
	return func(s *postingService) {
		s.cache = cache
	}
}

// WithPostingObserver reports every committed write to observer.
func WithPostingObserver(observer portssvc.PostingObserver) PostingServiceOption {
	return func(s *postingService) {
		s.observer = observer
	}
}

// WithPostingClock sets the clock used for creation timestamps and period resolution.
func WithPostingClock(clock func() time.Time) PostingServiceOption {
	return func(s *postingService) {
		s.Clock = clock
	}
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) PostingServiceOption {
	return func(s *postingService) {
		s.newID = newID
	}
}

// WithDefaultCurrency sets the currency stored when a request leaves it empty.
func WithDefaultCurrency(currency string) PostingServiceOption {
	return func(s *postingService) {
		if currency != "" {
			s.defaultCurrency = currency
		}
	}
}

// NewPostingService creates a new posting service with the provided options
func NewPostingService(postingRepo portsrepo.PostingRepositoryFacade, chartRepo portsrepo.ChartReader, mapper *AccountMapper, options ...PostingServiceOption) portssvc.PostingSvcFacade {
	svc := &postingService{
		postingRepo:     postingRepo,
		chartRepo:       chartRepo,
		mapper:          mapper,
		validate:        newInputValidator(),
		newID:           uuid.NewString,
		defaultCurrency: domain.DefaultCurrency,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure postingService implements the PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// PostTransaction records a cash transaction with its two-line journal entry.
func (s *postingService) PostTransaction(ctx context.Context, req dto.TransactionInput) (*domain.PostingResult, error) {
	const op = "postTransaction"
	date, flow, err := s.validateTransaction(op, req, false)
	if err != nil {
		s.LogDebug(ctx, "Rejected transaction input", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, err
	}

	posting, fallbacks, err := s.buildTransactionPosting(ctx, s.newID(), req, date, flow, s.Now())
	if err != nil {
		return nil, err
	}
	return s.save(ctx, op, posting, fallbacks)
}

// PostInvoicedTransaction records a transaction together with the sale or purchase invoice it settles.
func (s *postingService) PostInvoicedTransaction(ctx context.Context, req dto.InvoicedTransactionInput) (*domain.PostingResult, error) {
	if !req.IsInvoiced || req.Type == domain.TxTransfer {
		return s.PostTransaction(ctx, req.TransactionInput)
	}

	const op = "postInvoicedTransaction"
	date, flow, err := s.validateTransaction(op, req.TransactionInput, true)
	verr := asValidationError(op, err)
	if err != nil && verr == nil {
		return nil, err
	}
	if verr == nil {
		verr = apperrors.NewValidationError(op)
	}
	if err := collectStructErrors(s.validate, req.InvoiceFields, verr); err != nil {
		return nil, err
	}
	if req.InvoiceNumber == "" {
		verr.Add("invoiceNumber", "is required when isInvoiced is set")
	}
	if err := verr.OrNil(); err != nil {
		s.LogDebug(ctx, "Rejected invoiced transaction input", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	rules := s.mapper.Rules()
	invoiceType := domain.InvoiceTypeFor(flow.Type())
	total := req.Amount
	subtotal, tax := accounting.SplitTaxInclusive(total, rules.TaxRate)
	client := req.ClientSupplier
	if client == "" {
		client = domain.DefaultClientName
	}

	invoiceID := s.newID()
	invoice := &domain.Invoice{
		ID:             invoiceID,
		Type:           invoiceType,
		Date:           date,
		BusinessID:     req.BusinessID,
		ClientSupplier: client,
		RUC:            optionalString(req.RUC),
		InvoiceNumber:  req.InvoiceNumber,
		Subtotal:       subtotal,
		IGV:            tax,
		Total:          total,
		Currency:       s.currencyOr(req.Currency),
		Items: []domain.InvoiceItem{
			domain.NewInvoiceItem(s.newID(), invoiceID, req.Description, decimal.NewFromInt(1), subtotal),
		},
		IdempotencyKey: optionalString(req.IdempotencyKey),
		CreatedAt:      now,
	}

	tx := s.newTransaction(s.newID(), req.TransactionInput, date, flow, now)
	tx.IsInvoiced = true
	tx.InvoiceID = &invoiceID
	if tx.Reference == "" {
		tx.Reference = req.InvoiceNumber
	}

	entry := domain.JournalEntry{
		ID:            s.newID(),
		Date:          date,
		BusinessID:    req.BusinessID,
		Description:   InvoiceDescription(invoiceType, req.InvoiceNumber, client),
		TransactionID: &tx.ID,
		InvoiceID:     &invoiceID,
		CreatedAt:     now,
		Lines:         s.mapper.InvoiceLines(invoiceType, subtotal, tax, total),
	}
	fallbacks, err := s.nameLines(ctx, &entry)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, op, domain.Posting{Transaction: tx, Invoice: invoice, Entry: entry}, fallbacks)
}

// PostStandaloneInvoice records an invoice and its three-line entry without a cash transaction.
func (s *postingService) PostStandaloneInvoice(ctx context.Context, req dto.InvoiceInput) (*domain.PostingResult, error) {
	const op = "postStandaloneInvoice"
	verr := apperrors.NewValidationError(op)
	if err := collectStructErrors(s.validate, req, verr); err != nil {
		return nil, err
	}

	var date time.Time
	if !hasField(verr, "date") {
		d, err := time.Parse(dto.DateLayout, req.Date)
		if err != nil {
			verr.Add("date", "must be a date in YYYY-MM-DD format")
		}
		date = d
	}

	itemsSubtotal := decimal.Zero
	for i, item := range req.Items {
		if !item.Quantity.IsPositive() {
			verr.Add(fmt.Sprintf("items[%d].quantity", i), "must be greater than 0")
		}
		if item.UnitPrice.IsNegative() {
			verr.Add(fmt.Sprintf("items[%d].unitPrice", i), "must not be negative")
		}
		itemsSubtotal = itemsSubtotal.Add(item.Quantity.Mul(item.UnitPrice).Round(2))
	}

	subtotal, tax, total := s.invoiceFigures(req, itemsSubtotal)
	if subtotal.IsNegative() {
		verr.Add("subtotal", "must not be negative")
	}
	if tax.IsNegative() {
		verr.Add("igv", "must not be negative")
	}
	if !total.IsPositive() {
		verr.Add("total", "must be greater than 0")
	}
	if !total.Equal(subtotal.Add(tax)) {
		verr.Add("total", fmt.Sprintf("must equal subtotal + igv (%s)", subtotal.Add(tax).StringFixed(2)))
	}
	if err := verr.OrNil(); err != nil {
		s.LogDebug(ctx, "Rejected invoice input", slog.String("operation", op), slog.String("error", err.Error()))
		return nil, err
	}

	now := s.Now()
	client := req.ClientSupplier
	if client == "" {
		client = domain.DefaultClientName
	}
	invoiceID := s.newID()
	items := make([]domain.InvoiceItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, domain.NewInvoiceItem(s.newID(), invoiceID, item.Description, item.Quantity, item.UnitPrice))
	}

	invoice := &domain.Invoice{
		ID:             invoiceID,
		Type:           req.Type,
		Date:           date,
		BusinessID:     req.BusinessID,
		ClientSupplier: client,
		RUC:            optionalString(req.RUC),
		InvoiceNumber:  req.InvoiceNumber,
		Subtotal:       subtotal,
		IGV:            tax,
		Total:          total,
		Currency:       s.currencyOr(req.Currency),
		Items:          items,
		IdempotencyKey: optionalString(req.IdempotencyKey),
		CreatedAt:      now,
	}

	entry := domain.JournalEntry{
		ID:          s.newID(),
		Date:        date,
		BusinessID:  req.BusinessID,
		Description: InvoiceDescription(req.Type, req.InvoiceNumber, client),
		InvoiceID:   &invoiceID,
		CreatedAt:   now,
		Lines:       s.mapper.InvoiceLines(req.Type, subtotal, tax, total),
	}
	fallbacks, err := s.nameLines(ctx, &entry)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, op, domain.Posting{Invoice: invoice, Entry: entry}, fallbacks)
}

// invoiceFigures fills in whichever of subtotal, IGV and total the caller left out.
// A lone total is treated as tax inclusive; otherwise the subtotal defaults to the item sum.
func (s *postingService) invoiceFigures(req dto.InvoiceInput, itemsSubtotal decimal.Decimal) (subtotal, tax, total decimal.Decimal) {
	rate := s.mapper.Rules().TaxRate
	if req.Subtotal == nil && req.IGV == nil && req.Total != nil {
		subtotal, tax = accounting.SplitTaxInclusive(*req.Total, rate)
		return subtotal, tax, req.Total.Round(2)
	}

	subtotal = itemsSubtotal
	if req.Subtotal != nil {
		subtotal = req.Subtotal.Round(2)
	}
	tax = subtotal.Mul(rate).Round(2)
	if req.IGV != nil {
		tax = req.IGV.Round(2)
	}
	total = subtotal.Add(tax)
	if req.Total != nil {
		total = req.Total.Round(2)
	}
	return subtotal, tax, total
}

// UpdateTransaction rewrites a transaction and replaces its journal entry with a freshly derived one.
func (s *postingService) UpdateTransaction(ctx context.Context, transactionID string, req dto.TransactionInput) (*domain.PostingResult, error) {
	const op = "updateTransaction"
	existing, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to load transaction for update", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	if existing.IsInvoiced {
		verr := apperrors.NewValidationError(op)
		verr.Add("isInvoiced", "invoiced transactions cannot be edited; delete the invoice and post it again")
		return nil, verr
	}

	date, flow, err := s.validateTransaction(op, req, false)
	if err != nil {
		return nil, err
	}

	posting, fallbacks, err := s.buildTransactionPosting(ctx, existing.ID, req, date, flow, existing.CreatedAt)
	if err != nil {
		return nil, err
	}
	posting.Transaction.IdempotencyKey = existing.IdempotencyKey
	posting.Entry.CreatedAt = s.Now()

	if err := accounting.ValidateEntryBalance(posting.Entry); err != nil {
		s.LogError(ctx, err, "Refusing to store unbalanced journal entry", slog.String("operation", op))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}
	if err := s.postingRepo.ReplaceTransactionPosting(ctx, posting); err != nil {
		s.LogError(ctx, err, "Failed to replace transaction posting", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	result := resultFor(posting, fallbacks)
	s.logFallbacks(ctx, op, posting.Entry.ID, fallbacks)
	s.afterWrite(ctx, op, result, fallbacks, existing.BusinessID, posting.Transaction.BusinessID)
	s.LogInfo(ctx, "Transaction updated and journal entry regenerated",
		slog.String("transaction_id", transactionID),
		slog.String("journal_entry_id", posting.Entry.ID))
	return result, nil
}

// DeleteTransaction removes a transaction and everything derived from it.
func (s *postingService) DeleteTransaction(ctx context.Context, transactionID string) error {
	const op = "deleteTransaction"
	tx, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if err := s.postingRepo.DeleteTransactionCascade(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	s.afterWrite(ctx, op, &domain.PostingResult{TransactionID: &tx.ID, InvoiceID: tx.InvoiceID}, nil, tx.BusinessID)
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// DeleteInvoice removes an invoice, its linked transactions and their journal entries.
func (s *postingService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	const op = "deleteInvoice"
	inv, err := s.postingRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if err := s.postingRepo.DeleteInvoiceCascade(ctx, invoiceID); err != nil {
		s.LogError(ctx, err, "Failed to delete invoice", slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}

	s.afterWrite(ctx, op, &domain.PostingResult{InvoiceID: &inv.ID}, nil, inv.BusinessID)
	s.LogInfo(ctx, "Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}

// GetTransaction retrieves one transaction.
func (s *postingService) GetTransaction(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	tx, err := s.postingRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		}
		return nil, fmt.Errorf("failed to get transaction %s: %w", transactionID, err)
	}
	return tx, nil
}

// ListTransactions returns a page of transactions, newest first. An empty period lists every date.
func (s *postingService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	filter := portsrepo.TransactionFilter{
		BusinessID: params.BusinessID,
		Range:      s.listRange(params.Period),
		Type:       domain.TransactionType(params.Type),
		Limit:      listLimit(params.Limit),
		NextToken:  params.NextToken,
	}
	txs, next, err := s.postingRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("business_id", params.BusinessID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txs == nil {
		txs = []domain.Transaction{}
	}
	return &dto.ListTransactionsResponse{Transactions: txs, NextToken: next}, nil
}

// GetInvoice retrieves one invoice with its items.
func (s *postingService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	inv, err := s.postingRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get invoice", slog.String("invoice_id", invoiceID))
		}
		return nil, fmt.Errorf("failed to get invoice %s: %w", invoiceID, err)
	}
	return inv, nil
}

// ListInvoices returns a page of invoices, newest first.
func (s *postingService) ListInvoices(ctx context.Context, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	filter := portsrepo.InvoiceFilter{
		BusinessID: params.BusinessID,
		Range:      s.listRange(params.Period),
		Type:       domain.InvoiceType(params.Type),
		Currency:   params.Currency,
		Limit:      listLimit(params.Limit),
		NextToken:  params.NextToken,
	}
	invoices, next, err := s.postingRepo.ListInvoices(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list invoices", slog.String("business_id", params.BusinessID))
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}
	return &dto.ListInvoicesResponse{Invoices: invoices, NextToken: next}, nil
}

func (s *postingService) listRange(period string) domain.DateRange {
	if period == "" {
		return domain.DateRange{}
	}
	return domain.Period(period).Resolve(s.Now())
}

func listLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	return limit
}

// validateTransaction checks the request and builds its typed flow. All problems are reported together.
func (s *postingService) validateTransaction(op string, req dto.TransactionInput, invoiced bool) (time.Time, domain.Flow, error) {
	verr := apperrors.NewValidationError(op)
	if err := collectStructErrors(s.validate, req, verr); err != nil {
		return time.Time{}, nil, err
	}

	var date time.Time
	if !hasField(verr, "date") {
		d, err := time.Parse(dto.DateLayout, req.Date)
		if err != nil {
			verr.Add("date", "must be a date in YYYY-MM-DD format")
		}
		date = d
	}

	if !req.Amount.IsPositive() {
		verr.Add("amount", "must be greater than 0")
	} else if !req.Amount.Equal(req.Amount.Round(2)) {
		verr.Add("amount", "must have at most two decimal places")
	}

	var flow domain.Flow
	if !hasField(verr, "type") {
		newFlow := domain.NewFlow
		if invoiced {
			newFlow = domain.NewInvoicedFlow
		}
		f, err := newFlow(req.Type, req.FromAccount, req.ToAccount, req.CategoryID)
		var flowErr *apperrors.ValidationError
		if errors.As(err, &flowErr) {
			verr.Fields = append(verr.Fields, flowErr.Fields...)
		} else if err != nil {
			return time.Time{}, nil, err
		}
		flow = f
	}

	if err := verr.OrNil(); err != nil {
		return time.Time{}, nil, err
	}
	return date, flow, nil
}

// buildTransactionPosting derives the two-line entry for a plain transaction.
func (s *postingService) buildTransactionPosting(ctx context.Context, id string, req dto.TransactionInput, date time.Time, flow domain.Flow, createdAt time.Time) (domain.Posting, []domain.Fallback, error) {
	res, err := s.mapper.Resolve(flow, req.Description)
	if err != nil {
		return domain.Posting{}, nil, err
	}

	tx := s.newTransaction(id, req, date, flow, createdAt)
	entry := domain.JournalEntry{
		ID:            s.newID(),
		Date:          date,
		BusinessID:    req.BusinessID,
		Description:   fmt.Sprintf("%s - %s", res.Narrative, req.Description),
		TransactionID: &tx.ID,
		CreatedAt:     createdAt,
		Lines: []domain.JournalEntryLine{
			{LineNo: 1, AccountCode: res.DebitCode, Debit: req.Amount, Credit: decimal.Zero},
			{LineNo: 2, AccountCode: res.CreditCode, Debit: decimal.Zero, Credit: req.Amount},
		},
	}

	nameFallbacks, err := s.nameLines(ctx, &entry)
	if err != nil {
		return domain.Posting{}, nil, err
	}
	return domain.Posting{Transaction: tx, Entry: entry}, append(res.Fallbacks, nameFallbacks...), nil
}

func (s *postingService) newTransaction(id string, req dto.TransactionInput, date time.Time, flow domain.Flow, createdAt time.Time) *domain.Transaction {
	tx := &domain.Transaction{
		ID:             id,
		Date:           date,
		Type:           flow.Type(),
		BusinessID:     req.BusinessID,
		Amount:         req.Amount,
		Currency:       s.currencyOr(req.Currency),
		Description:    req.Description,
		Reference:      req.Reference,
		IdempotencyKey: optionalString(req.IdempotencyKey),
		CreatedAt:      createdAt,
	}
	switch f := flow.(type) {
	case domain.IncomeFlow:
		cat := f.CategoryID
		tx.CategoryID = &cat
		tx.ToAccount = f.ToAccount
	case domain.ExpenseFlow:
		cat := f.CategoryID
		tx.CategoryID = &cat
		tx.FromAccount = f.FromAccount
	case domain.TransferFlow:
		tx.FromAccount = f.FromAccount
		tx.ToAccount = f.ToAccount
	}
	return tx
}

// nameLines stamps each line with its entry id and the chart name of its account as of now.
func (s *postingService) nameLines(ctx context.Context, entry *domain.JournalEntry) ([]domain.Fallback, error) {
	codes := make([]string, 0, len(entry.Lines))
	seen := make(map[string]bool, len(entry.Lines))
	for _, l := range entry.Lines {
		if !seen[l.AccountCode] {
			seen[l.AccountCode] = true
			codes = append(codes, l.AccountCode)
		}
	}

	chart, err := s.chartRepo.FindChartAccountsByCodes(ctx, codes)
	if err != nil {
		s.LogError(ctx, err, "Failed to look up chart of accounts", slog.Any("codes", codes))
		return nil, fmt.Errorf("failed to resolve account names: %w", err)
	}

	var fallbacks []domain.Fallback
	for i := range entry.Lines {
		line := &entry.Lines[i]
		line.EntryID = entry.ID
		if acc, ok := chart[line.AccountCode]; ok && acc.Name != "" {
			line.AccountName = acc.Name
			continue
		}
		line.AccountName = domain.PlaceholderAccountName(line.AccountCode)
		fallbacks = append(fallbacks, domain.Fallback{
			Role:      domain.FallbackAccountName,
			Reference: line.AccountCode,
			UsedValue: line.AccountName,
			Reason:    "account code is not in the chart of accounts",
		})
	}
	return fallbacks, nil
}

// save checks the balance invariant and writes the posting atomically.
func (s *postingService) save(ctx context.Context, op string, posting domain.Posting, fallbacks []domain.Fallback) (*domain.PostingResult, error) {
	if err := accounting.ValidateEntryBalance(posting.Entry); err != nil {
		s.LogError(ctx, err, "Refusing to store unbalanced journal entry", slog.String("operation", op))
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	if err := s.postingRepo.SavePosting(ctx, posting); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Idempotency key already used, posting skipped", slog.String("operation", op))
		} else {
			s.LogError(ctx, err, "Failed to save posting", slog.String("operation", op))
		}
		return nil, fmt.Errorf("failed to %s: %w", op, err)
	}

	result := resultFor(posting, fallbacks)
	s.logFallbacks(ctx, op, posting.Entry.ID, fallbacks)
	s.afterWrite(ctx, op, result, fallbacks, posting.Entry.BusinessID)
	s.LogInfo(ctx, "Posting saved",
		slog.String("operation", op),
		slog.String("journal_entry_id", posting.Entry.ID),
		slog.Int("line_count", len(posting.Entry.Lines)))
	return result, nil
}

func (s *postingService) logFallbacks(ctx context.Context, op, entryID string, fallbacks []domain.Fallback) {
	for _, fb := range fallbacks {
		s.LogWarn(ctx, "Reference fell back to default",
			slog.String("operation", op),
			slog.String("journal_entry_id", entryID),
			slog.String("role", string(fb.Role)),
			slog.String("reference", fb.Reference),
			slog.String("used_value", fb.UsedValue),
			slog.String("reason", fb.Reason))
	}
}

// afterWrite invalidates cached reports and notifies the observer. Neither can fail the write.
func (s *postingService) afterWrite(ctx context.Context, op string, result *domain.PostingResult, fallbacks []domain.Fallback, businessIDs ...string) {
	if s.cache != nil {
		done := make(map[string]bool, len(businessIDs))
		for _, id := range businessIDs {
			if done[id] {
				continue
			}
			done[id] = true
			if err := s.cache.Invalidate(ctx, id); err != nil {
				s.LogError(ctx, err, "Failed to invalidate report cache", slog.String("business_id", id))
			}
		}
	}
	if s.observer != nil {
		s.observer.ObservePosting(op, result)
		if len(fallbacks) > 0 {
			s.observer.ObserveFallbacks(fallbacks)
		}
	}
}

func (s *postingService) currencyOr(currency string) string {
	if currency == "" {
		return s.defaultCurrency
	}
	return currency
}

func resultFor(posting domain.Posting, fallbacks []domain.Fallback) *domain.PostingResult {
	result := &domain.PostingResult{JournalEntryID: posting.Entry.ID, Fallbacks: fallbacks}
	if posting.Transaction != nil {
		id := posting.Transaction.ID
		result.TransactionID = &id
	}
	if posting.Invoice != nil {
		id := posting.Invoice.ID
		result.InvoiceID = &id
	}
	return result
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func hasField(verr *apperrors.ValidationError, field string) bool {
	for _, f := range verr.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// asValidationError returns err as a validation error for op, or nil when err is something else.
func asValidationError(op string, err error) *apperrors.ValidationError {
	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		verr.Op = op
		return verr
	}
	return nil
}
