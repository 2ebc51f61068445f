package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// minorUnits holds the ISO-4217 exponent of every currency the ledger accepts.
var minorUnits = map[string]int32{
	"AED": 2, "AUD": 2, "BHD": 3, "BRL": 2, "CAD": 2, "CHF": 2, "CLP": 0,
	"CNY": 2, "CZK": 2, "DKK": 2, "EUR": 2, "GBP": 2, "HKD": 2, "HUF": 2,
	"IDR": 2, "ILS": 2, "INR": 2, "ISK": 0, "JOD": 3, "JPY": 0, "KRW": 0,
	"KWD": 3, "MXN": 2, "MYR": 2, "NOK": 2, "NZD": 2, "OMR": 3, "PHP": 2,
	"PLN": 2, "SAR": 2, "SEK": 2, "SGD": 2, "THB": 2, "TND": 3, "TRY": 2,
	"TWD": 2, "UGX": 0, "USD": 2, "VND": 0, "ZAR": 2,
}

// NormalizeCurrency upper-cases and trims a currency code.
func NormalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// IsSupportedCurrency reports whether code is in the minor-unit table.
func IsSupportedCurrency(code string) bool {
	_, ok := minorUnits[NormalizeCurrency(code)]
	return ok
}

// CurrencyMinorUnits returns the number of minor-unit digits of a currency.
// Unknown codes fall back to 2.
func CurrencyMinorUnits(code string) int32 {
	if d, ok := minorUnits[NormalizeCurrency(code)]; ok {
		return d
	}
	return 2
}

// FitsMinorUnits reports whether amount carries no more decimals than the currency allows.
func FitsMinorUnits(amount decimal.Decimal, code string) bool {
	return amount.Equal(amount.Truncate(CurrencyMinorUnits(code)))
}

// RoundToMinorUnits rounds half away from zero to the currency's precision.
func RoundToMinorUnits(amount decimal.Decimal, code string) decimal.Decimal {
	return amount.Round(CurrencyMinorUnits(code))
}
