package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols are the display prefixes for currencies the business handles. Others print their code.
var currencySymbols = map[string]string{
	"PEN": "S/",
	"USD": "US$",
	"EUR": "€",
}

// FormatWithPrecision formats an amount with the given precision
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.StringFixed(int32(precision))
}

// FormatMoney renders amount with two decimals, thousands separators and the currency symbol.
// Example: 1234.5 PEN returns "S/ 1,234.50"; -20 USD returns "-US$ 20.00"
func FormatMoney(amount decimal.Decimal, currency string) string {
	symbol, ok := currencySymbols[strings.ToUpper(currency)]
	if !ok {
		symbol = strings.ToUpper(currency)
	}

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	whole, frac, _ := strings.Cut(FormatWithPrecision(amount, 2), ".")
	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + symbol + " " + b.String() + "." + frac
}
