package services_test

import (
	"testing"

	"github.com/SscSPs/bookkeeping_app/internal/apperrors"
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountMapper_Resolve(t *testing.T) {
	mapper, err := services.NewAccountMapper(domain.DefaultMappingRules())
	require.NoError(t, err)

	tests := []struct {
		name          string
		flow          domain.Flow
		description   string
		wantDebit     string
		wantCredit    string
		wantNarrative string
		wantRoles     []domain.FallbackRole
	}{
		{
			name:          "income into a mapped bank",
			flow:          domain.IncomeFlow{ToAccount: "BCP", CategoryID: 1},
			wantDebit:     "1041",
			wantCredit:    "7011",
			wantNarrative: "Venta de productos",
		},
		{
			name:          "income into a wallet",
			flow:          domain.IncomeFlow{ToAccount: "Yape", CategoryID: 2},
			wantDebit:     "1043",
			wantCredit:    "7041",
			wantNarrative: "Servicios prestados",
		},
		{
			name:          "income with unknown category",
			flow:          domain.IncomeFlow{ToAccount: "BCP", CategoryID: 77},
			description:   "Cobro suelto",
			wantDebit:     "1041",
			wantCredit:    "7011",
			wantNarrative: "Cobro suelto",
			wantRoles:     []domain.FallbackRole{domain.FallbackCredit, domain.FallbackNarrative},
		},
		{
			name:          "invoiced income without payment account",
			flow:          domain.IncomeFlow{CategoryID: 1},
			wantDebit:     "1041",
			wantCredit:    "7011",
			wantNarrative: "Venta de productos",
			wantRoles:     []domain.FallbackRole{domain.FallbackDebit},
		},
		{
			name:          "expense from petty cash",
			flow:          domain.ExpenseFlow{FromAccount: "Caja Chica", CategoryID: 9},
			wantDebit:     "6361",
			wantCredit:    "1011",
			wantNarrative: "Servicios públicos",
		},
		{
			name:          "expense with unknown category and account",
			flow:          domain.ExpenseFlow{FromAccount: "Tarjeta", CategoryID: 500},
			description:   "Gasto varios",
			wantDebit:     "6599",
			wantCredit:    "1041",
			wantNarrative: "Gasto varios",
			wantRoles:     []domain.FallbackRole{domain.FallbackDebit, domain.FallbackCredit, domain.FallbackNarrative},
		},
		{
			name:          "transfer between mapped accounts",
			flow:          domain.TransferFlow{FromAccount: "Interbank", ToAccount: "Caja Chica"},
			wantDebit:     "1011",
			wantCredit:    "1042",
			wantNarrative: "Transferencia de Interbank a Caja Chica",
		},
		{
			name:          "transfer to an unmapped account",
			flow:          domain.TransferFlow{FromAccount: "BCP", ToAccount: "Plin"},
			wantDebit:     "1041",
			wantCredit:    "1041",
			wantNarrative: "Transferencia de BCP a Plin",
			wantRoles:     []domain.FallbackRole{domain.FallbackDebit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := mapper.Resolve(tt.flow, tt.description)

			require.NoError(t, err)
			assert.Equal(t, tt.wantDebit, res.DebitCode)
			assert.Equal(t, tt.wantCredit, res.CreditCode)
			assert.Equal(t, tt.wantNarrative, res.Narrative)
			roles := make([]domain.FallbackRole, 0, len(res.Fallbacks))
			for _, fb := range res.Fallbacks {
				roles = append(roles, fb.Role)
			}
			assert.ElementsMatch(t, tt.wantRoles, roles)
		})
	}
}

func TestAccountMapper_StrictRules(t *testing.T) {
	rules := domain.DefaultMappingRules()
	rules.StrictReferences = true
	mapper, err := services.NewAccountMapper(rules)
	require.NoError(t, err)

	_, err = mapper.Resolve(domain.IncomeFlow{ToAccount: "Plin", CategoryID: 1}, "")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// a missing label alone is not a rejected reference
	rules.Categories[30] = domain.CategoryMapping{Debit: "1041", Credit: "7011"}
	mapper, err = services.NewAccountMapper(rules)
	require.NoError(t, err)
	res, err := mapper.Resolve(domain.IncomeFlow{ToAccount: "BCP", CategoryID: 30}, "Venta web")
	require.NoError(t, err)
	assert.Equal(t, "Venta web", res.Narrative)
}

func TestAccountMapper_InvoiceLines(t *testing.T) {
	mapper, err := services.NewAccountMapper(domain.DefaultMappingRules())
	require.NoError(t, err)

	sale := mapper.InvoiceLines(domain.InvoiceSale, dec("500"), dec("90"), dec("590"))
	require.Len(t, sale, 3)
	assert.Equal(t, []string{"1212", "7011", "4011"}, []string{sale[0].AccountCode, sale[1].AccountCode, sale[2].AccountCode})
	assert.True(t, dec("590").Equal(sale[0].Debit))
	assert.True(t, dec("500").Equal(sale[1].Credit))
	assert.True(t, dec("90").Equal(sale[2].Credit))

	purchase := mapper.InvoiceLines(domain.InvoicePurchase, dec("100"), dec("18"), dec("118"))
	require.Len(t, purchase, 3)
	assert.Equal(t, []string{"6011", "4011", "4212"}, []string{purchase[0].AccountCode, purchase[1].AccountCode, purchase[2].AccountCode})
	assert.True(t, dec("100").Equal(purchase[0].Debit))
	assert.True(t, dec("18").Equal(purchase[1].Debit))
	assert.True(t, dec("118").Equal(purchase[2].Credit))
	for i, l := range purchase {
		assert.Equal(t, i+1, l.LineNo)
	}
}

func TestNewAccountMapper_RejectsIncompleteRules(t *testing.T) {
	rules := domain.DefaultMappingRules()
	rules.DefaultCashCode = ""

	_, err := services.NewAccountMapper(rules)

	assert.ErrorContains(t, err, "defaultCashCode")
}

func TestInvoiceDescription(t *testing.T) {
	assert.Equal(t, "Factura venta F001-1 - ACME", services.InvoiceDescription(domain.InvoiceSale, "F001-1", "ACME"))
	assert.Equal(t, "Factura compra E-9 - Sin nombre", services.InvoiceDescription(domain.InvoicePurchase, "E-9", domain.DefaultClientName))
}
