package transformers

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"dominium-listings/internal/models"

	"github.com/shopspring/decimal"
)

var (
	ErrPriceMissing     = errors.New("price not found")
	ErrPriceUnparseable = errors.New("price is not a number")
	ErrPriceNegative    = errors.New("price is negative")
)

// Signs are matched in order against the lowercased text.
var currencySigns = []struct {
	sign string
	code string
}{
	{"грн", models.CurrencyUAH},
	{"₴", models.CurrencyUAH},
	{"uah", models.CurrencyUAH},
	{"€", models.CurrencyEUR},
	{"eur", models.CurrencyEUR},
	{"$", models.CurrencyUSD},
	{"usd", models.CurrencyUSD},
}

var nonNumeric = regexp.MustCompile(`[^\d.,-]`)

var roundingStep = decimal.NewFromInt(5)

type priceTransformer struct{}

func NewPriceTransformer() PriceTransformer {
	return &priceTransformer{}
}

func (t *priceTransformer) DetectCurrency(raw string) string {
	lower := strings.ToLower(raw)
	for _, cs := range currencySigns {
		if strings.Contains(lower, cs.sign) {
			return cs.code
		}
	}
	return models.CurrencyUSD
}

// CleanAmount strips currency markers and parses the remaining number. Without
// a dot a single comma is the decimal point and repeated commas group
// thousands; with a dot present commas always group thousands.
func (t *priceTransformer) CleanAmount(raw string) (decimal.Decimal, error) {
	s := strings.ToLower(raw)
	for _, cs := range currencySigns {
		s = strings.ReplaceAll(s, cs.sign, "")
	}
	s = strings.Trim(nonNumeric.ReplaceAllString(s, ""), ".,")
	if s == "" || s == "-" {
		return decimal.Zero, ErrPriceUnparseable
	}

	dots := strings.Count(s, ".")
	commas := strings.Count(s, ",")
	switch {
	case dots == 1:
		s = strings.ReplaceAll(s, ",", "")
	case dots > 1 && commas == 0:
		s = strings.ReplaceAll(s, ".", "")
	case dots == 0 && commas == 1:
		s = strings.Replace(s, ",", ".", 1)
	case dots == 0 && commas > 1:
		s = strings.ReplaceAll(s, ",", "")
	}

	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrPriceUnparseable, raw)
	}
	return amount, nil
}

// ConvertToUSD converts amount using rates quoted in UAH. UAH and EUR results
// are rounded up to the next multiple of five; USD passes through untouched.
func (t *priceTransformer) ConvertToUSD(amount decimal.Decimal, currency string, rates models.ExchangeRates) decimal.Decimal {
	usd := rateOrDefault(rates, models.CurrencyUSD)

	var converted decimal.Decimal
	switch currency {
	case models.CurrencyUAH:
		converted = amount.Div(usd)
	case models.CurrencyEUR:
		converted = amount.Mul(rateOrDefault(rates, models.CurrencyEUR)).Div(usd)
	default:
		return amount
	}
	return ceilToStep(converted)
}

// Normalize never fails hard: on any problem the amount is zero and the error
// describes the degradation for the caller's warnings.
func (t *priceTransformer) Normalize(raw string, rates models.ExchangeRates) (models.Price, error) {
	price := models.Price{Raw: raw, SourceCurrency: t.DetectCurrency(raw), AmountUSD: decimal.Zero}
	if strings.TrimSpace(raw) == "" {
		return price, ErrPriceMissing
	}

	amount, err := t.CleanAmount(raw)
	if err != nil {
		return price, err
	}
	if amount.IsNegative() {
		return price, fmt.Errorf("%w: %q", ErrPriceNegative, raw)
	}

	price.AmountUSD = t.ConvertToUSD(amount, price.SourceCurrency, rates)
	return price, nil
}

func rateOrDefault(rates models.ExchangeRates, code string) decimal.Decimal {
	if rate, ok := rates.Rate(code); ok {
		return rate
	}
	rate, _ := models.DefaultExchangeRates().Rate(code)
	return rate
}

func ceilToStep(value decimal.Decimal) decimal.Decimal {
	if !value.IsPositive() {
		return value
	}
	return value.Div(roundingStep).Ceil().Mul(roundingStep)
}
