package commands

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/dto"
	"github.com/shopspring/decimal"
)

// Recognised header names. Matching is case-insensitive and column order is free.
const (
	colDate           = "date"
	colType           = "type"
	colBusinessID     = "businessid"
	colCategoryID     = "categoryid"
	colAmount         = "amount"
	colCurrency       = "currency"
	colFromAccount    = "fromaccount"
	colToAccount      = "toaccount"
	colDescription    = "description"
	colReference      = "reference"
	colIdempotencyKey = "idempotencykey"
	colIsInvoiced     = "isinvoiced"
	colInvoiceNumber  = "invoicenumber"
	colClientSupplier = "clientsupplier"
	colRUC            = "ruc"
)

var requiredColumns = []string{colDate, colType, colBusinessID, colAmount}

// ImportRow is one parsed CSV line with its 1-based line number.
type ImportRow struct {
	Line  int
	Input dto.InvoicedTransactionInput
}

// ParseTransactionsCSV reads a header row followed by one transaction per line.
func ParseTransactionsCSV(r io.Reader) ([]ImportRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", name)
		}
	}
	cr.FieldsPerRecord = len(header)

	var rows []ImportRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		in, err := parseImportRecord(cols, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, ImportRow{Line: line, Input: in})
	}
	return rows, nil
}

func parseImportRecord(cols map[string]int, rec []string) (dto.InvoicedTransactionInput, error) {
	field := func(name string) string {
		if i, ok := cols[name]; ok {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}

	var in dto.InvoicedTransactionInput
	in.Date = field(colDate)
	in.Type = domain.TransactionType(strings.ToLower(field(colType)))
	in.BusinessID = field(colBusinessID)
	in.Currency = field(colCurrency)
	in.FromAccount = field(colFromAccount)
	in.ToAccount = field(colToAccount)
	in.Description = field(colDescription)
	in.Reference = field(colReference)
	in.IdempotencyKey = field(colIdempotencyKey)
	in.InvoiceNumber = field(colInvoiceNumber)
	in.ClientSupplier = field(colClientSupplier)
	in.RUC = field(colRUC)

	amount, err := decimal.NewFromString(field(colAmount))
	if err != nil {
		return in, fmt.Errorf("parsing amount %q: %w", field(colAmount), err)
	}
	in.Amount = amount

	if raw := field(colCategoryID); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("parsing categoryId %q: %w", raw, err)
		}
		in.CategoryID = &id
	}

	if raw := field(colIsInvoiced); raw != "" {
		invoiced, err := strconv.ParseBool(raw)
		if err != nil {
			return in, fmt.Errorf("parsing isInvoiced %q: %w", raw, err)
		}
		in.IsInvoiced = invoiced
	}
	return in, nil
}
