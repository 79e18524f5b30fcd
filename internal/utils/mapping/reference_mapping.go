package mapping

import (
	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/SscSPs/bookkeeping_app/internal/models"
)

// ToModelChartAccount converts a domain ChartAccount to a model ChartAccount
func ToModelChartAccount(d domain.ChartAccount) models.ChartAccount {
	return models.ChartAccount{
		Code:           d.Code,
		Name:           d.Name,
		AccountType:    string(d.AccountType),
		Category:       d.Category,
		IsDebitBalance: d.IsDebitBalance,
		ParentCode:     NullString(d.ParentCode),
	}
}

// ToDomainChartAccount converts a model ChartAccount to a domain ChartAccount
func ToDomainChartAccount(m models.ChartAccount) domain.ChartAccount {
	return domain.ChartAccount{
		Code:           m.Code,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		Category:       m.Category,
		IsDebitBalance: m.IsDebitBalance,
		ParentCode:     StringPtr(m.ParentCode),
	}
}

func ToDomainPaymentAccount(m models.PaymentAccount) domain.PaymentAccount {
	return domain.PaymentAccount{
		ID:       m.ID,
		Name:     m.Name,
		Type:     domain.PaymentAccountType(m.Type),
		Currency: m.Currency,
		IsActive: m.IsActive,
	}
}

func ToDomainTransactionCategory(m models.TransactionCategory) domain.TransactionCategory {
	return domain.TransactionCategory{
		ID:   m.ID,
		Name: m.Name,
		Type: domain.CategoryType(m.Type),
	}
}

func ToDomainBusiness(m models.Business) domain.Business {
	return domain.Business{
		ID:    m.ID,
		Name:  m.Name,
		Color: m.Color.String,
	}
}
