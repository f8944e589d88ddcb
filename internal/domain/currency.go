package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Currency код валюты ISO 4217
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
	CurrencySGD Currency = "SGD"
	CurrencyJPY Currency = "JPY"
)

// BaseCurrency валюта, в которой заданы базовые цены
const BaseCurrency = CurrencyUSD

// CurrencyInfo справочная запись валюты
type CurrencyInfo struct {
	Code        Currency
	Name        string
	Symbol      string
	Rate        float64 // множитель относительно BaseCurrency
	ZeroDecimal bool
}

var currencyTable = []CurrencyInfo{
	{CurrencyUSD, "US Dollar", "$", 1, false},
	{CurrencyEUR, "Euro", "€", 0.85, false},
	{CurrencyGBP, "British Pound", "£", 0.73, false},
	{CurrencyINR, "Indian Rupee", "₹", 83.12, false},
	{CurrencyCAD, "Canadian Dollar", "C$", 1.35, false},
	{CurrencyAUD, "Australian Dollar", "A$", 1.52, false},
	{CurrencySGD, "Singapore Dollar", "S$", 1.34, false},
	{CurrencyJPY, "Japanese Yen", "¥", 149.50, true},
}

func Currencies() []CurrencyInfo {
	out := make([]CurrencyInfo, len(currencyTable))
	copy(out, currencyTable)
	return out
}

func (c Currency) Info() (CurrencyInfo, bool) {
	for _, info := range currencyTable {
		if info.Code == c {
			return info, true
		}
	}
	return CurrencyInfo{}, false
}

func (c Currency) Valid() bool {
	_, ok := c.Info()
	return ok
}

// Decimals количество знаков после запятой при отображении суммы
func (c Currency) Decimals() int {
	if info, ok := c.Info(); ok && info.ZeroDecimal {
		return 0
	}
	return 2
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCurrency, s)
	}
	return c, nil
}
