package enums

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
)

// Currency is the ISO 4217 code a tenant prices in. Amounts are stored as
// integers in the currency's minor unit.
type Currency string

const (
	CurrencyKRW Currency = "KRW"
	CurrencyUSD Currency = "USD"
)

var currencyUnits = map[Currency]currency.Unit{
	CurrencyKRW: currency.KRW,
	CurrencyUSD: currency.USD,
}

func (c Currency) String() string {
	return string(c)
}

func (c Currency) IsValid() bool {
	_, ok := currencyUnits[c]
	return ok
}

// Unit returns the x/text currency unit, defaulting to KRW for unknown codes.
func (c Currency) Unit() currency.Unit {
	if unit, ok := currencyUnits[c]; ok {
		return unit
	}
	return currency.KRW
}

// MinorDigits is the number of fraction digits in the standard rounding of c.
func (c Currency) MinorDigits() int {
	scale, _ := currency.Standard.Rounding(c.Unit())
	return scale
}

// ParseCurrency accepts a case-insensitive supported code.
func ParseCurrency(value string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(value)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid currency %q", value)
	}
	return c, nil
}
