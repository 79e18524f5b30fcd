package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// mappingFile is the YAML shape of a mapping rules override. Absent keys keep the built-in value.
type mappingFile struct {
	DefaultCashCode         string                  `yaml:"defaultCashCode"`
	PaymentAccounts         map[string]string       `yaml:"paymentAccounts"`
	Categories              map[int]categoryMapping `yaml:"categories"`
	DefaultIncomeCreditCode string                  `yaml:"defaultIncomeCreditCode"`
	DefaultExpenseDebitCode string                  `yaml:"defaultExpenseDebitCode"`
	Invoice                 invoiceMapping          `yaml:"invoice"`
	TaxRate                 string                  `yaml:"taxRate"`
	TaxCurrency             string                  `yaml:"taxCurrency"`
	StrictReferences        *bool                   `yaml:"strictReferences"`
}

type invoiceMapping struct {
	Receivable string `yaml:"receivable"`
	Sales      string `yaml:"sales"`
	TaxPayable string `yaml:"taxPayable"`
	Purchases  string `yaml:"purchases"`
	TaxCredit  string `yaml:"taxCredit"`
	Payable    string `yaml:"payable"`
}

type categoryMapping struct {
	Debit  string `yaml:"debit"`
	Credit string `yaml:"credit"`
	Label  string `yaml:"label"`
}

// LoadMappingRules returns the built-in rules overlaid with path. An empty path returns the built-in rules.
// Listed payment accounts and categories replace or extend the built-in entries one by one.
func LoadMappingRules(path string) (domain.MappingRules, error) {
	rules := domain.DefaultMappingRules()
	if path == "" {
		return rules, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.MappingRules{}, fmt.Errorf("failed to read mapping file: %w", err)
	}
	var f mappingFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return domain.MappingRules{}, fmt.Errorf("failed to parse mapping file %s: %w", path, err)
	}

	if f.DefaultCashCode != "" {
		rules.DefaultCashCode = f.DefaultCashCode
	}
	for name, code := range f.PaymentAccounts {
		rules.PaymentAccounts[name] = code
	}
	for id, m := range f.Categories {
		rules.Categories[id] = domain.CategoryMapping{Debit: m.Debit, Credit: m.Credit, Label: m.Label}
	}
	if f.DefaultIncomeCreditCode != "" {
		rules.DefaultIncomeCreditCode = f.DefaultIncomeCreditCode
	}
	if f.DefaultExpenseDebitCode != "" {
		rules.DefaultExpenseDebitCode = f.DefaultExpenseDebitCode
	}
	overlayInvoice(&rules.Invoice, f.Invoice)
	if f.TaxRate != "" {
		rate, err := decimal.NewFromString(f.TaxRate)
		if err != nil {
			return domain.MappingRules{}, fmt.Errorf("mapping file %s: invalid taxRate %q: %w", path, f.TaxRate, err)
		}
		rules.TaxRate = rate
	}
	if f.TaxCurrency != "" {
		rules.TaxCurrency = strings.ToUpper(f.TaxCurrency)
	}
	if f.StrictReferences != nil {
		rules.StrictReferences = *f.StrictReferences
	}

	if err := rules.Validate(); err != nil {
		return domain.MappingRules{}, fmt.Errorf("mapping file %s: %w", path, err)
	}
	return rules, nil
}

func overlayInvoice(dst *domain.InvoiceAccounts, src invoiceMapping) {
	set := func(d *string, s string) {
		if s != "" {
			*d = s
		}
	}
	set(&dst.Receivable, src.Receivable)
	set(&dst.Sales, src.Sales)
	set(&dst.TaxPayable, src.TaxPayable)
	set(&dst.Purchases, src.Purchases)
	set(&dst.TaxCredit, src.TaxCredit)
	set(&dst.Payable, src.Payable)
}

// LoadReferenceData reads the seed YAML used by the seed command.
func LoadReferenceData(path string) (domain.ReferenceData, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.ReferenceData{}, fmt.Errorf("failed to read seed file: %w", err)
	}
	var data domain.ReferenceData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return domain.ReferenceData{}, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	return data, nil
}
