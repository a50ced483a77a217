package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is the closed set of currencies an account can be denominated in.
// The currency of an account is fixed for its whole lifetime.
type Currency string

const (
	CurrencyTRY Currency = "TRY"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
)

// Currencies lists every supported currency.
func Currencies() []Currency {
	return []Currency{CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY}
}

// ParseCurrency parses a currency code.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case CurrencyTRY, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyJPY:
		return Currency(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
}

// MinorUnits returns the number of decimal places of the currency's
// smallest unit.
func (c Currency) MinorUnits() int32 {
	if c == CurrencyJPY {
		return 0
	}

	return 2
}

// Round rounds an amount to the currency's minor-unit precision.
func (c Currency) Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(c.MinorUnits())
}

func (c Currency) String() string {
	return string(c)
}
