package domain

// ReferenceData is the seedable set of lookup tables.
type ReferenceData struct {
	Businesses      []Business            `json:"businesses" yaml:"businesses"`
	Chart           []ChartAccount        `json:"chartOfAccounts" yaml:"chartOfAccounts"`
	Categories      []TransactionCategory `json:"categories" yaml:"categories"`
	PaymentAccounts []PaymentAccount      `json:"paymentAccounts" yaml:"paymentAccounts"`
}
