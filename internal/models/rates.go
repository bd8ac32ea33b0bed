package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyUAH = "UAH"
)

// ExchangeRates maps a currency code to its price in UAH.
type ExchangeRates struct {
	Rates     map[string]decimal.Decimal `json:"rates"`
	FetchedAt time.Time                  `json:"fetched_at"`
	Source    string                     `json:"source"`
}

// DefaultExchangeRates is the last-resort rate set.
func DefaultExchangeRates() ExchangeRates {
	return ExchangeRates{
		Rates: map[string]decimal.Decimal{
			CurrencyUSD: decimal.NewFromFloat(40.0),
			CurrencyEUR: decimal.NewFromFloat(43.5),
			CurrencyUAH: decimal.NewFromInt(1),
		},
		Source: "default",
	}
}

// Rate returns the rate for code, or false when it is missing or not positive.
func (r ExchangeRates) Rate(code string) (decimal.Decimal, bool) {
	rate, ok := r.Rates[code]
	if !ok || !rate.IsPositive() {
		return decimal.Zero, false
	}
	return rate, true
}

// Fresh reports whether the set was fetched within ttl of now.
func (r ExchangeRates) Fresh(ttl time.Duration, now time.Time) bool {
	if r.FetchedAt.IsZero() {
		return false
	}
	return now.Sub(r.FetchedAt) < ttl
}

// WithIdentity returns a copy guaranteed to contain UAH = 1.
func (r ExchangeRates) WithIdentity() ExchangeRates {
	rates := make(map[string]decimal.Decimal, len(r.Rates)+1)
	for code, rate := range r.Rates {
		rates[code] = rate
	}
	rates[CurrencyUAH] = decimal.NewFromInt(1)
	r.Rates = rates
	return r
}
