package transformers

import (
	"errors"
	"testing"

	"dominium-listings/internal/models"

	"github.com/shopspring/decimal"
)

func TestDetectCurrency(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"120 000 грн", models.CurrencyUAH},
		{"₴5000", models.CurrencyUAH},
		{"€ 90 000", models.CurrencyEUR},
		{"100 EUR", models.CurrencyEUR},
		{"$75,000", models.CurrencyUSD},
		{"75000", models.CurrencyUSD},
		{"2500000 UAH", models.CurrencyUAH},
	}

	p := NewPriceTransformer()
	for _, tt := range tests {
		if got := p.DetectCurrency(tt.raw); got != tt.want {
			t.Errorf("DetectCurrency(%q) = %s; want %s", tt.raw, got, tt.want)
		}
	}
}

func TestCleanAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"120 000 грн.", "120000"},
		{"1,200.50 $", "1200.5"},
		{"120,5", "120.5"},
		{"1,200,000", "1200000"},
		{"1.200.000 €", "1200000"},
		{"$ 85 500", "85500"},
	}

	p := NewPriceTransformer()
	for _, tt := range tests {
		got, err := p.CleanAmount(tt.raw)
		if err != nil {
			t.Errorf("CleanAmount(%q) returned error: %v", tt.raw, err)
			continue
		}
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("CleanAmount(%q) = %s; want %s", tt.raw, got, tt.want)
		}
	}
}

func TestConvertToUSDRoundsLocalCurrenciesUpToFive(t *testing.T) {
	p := NewPriceTransformer()
	rates := models.DefaultExchangeRates()

	for amount := int64(1); amount < 5000; amount += 37 {
		got := p.ConvertToUSD(decimal.NewFromInt(amount), models.CurrencyUAH, rates)
		if !got.IsPositive() || !got.Mod(decimal.NewFromInt(5)).IsZero() {
			t.Errorf("ConvertToUSD(%d, UAH) = %s; want a positive multiple of 5", amount, got)
		}
	}

	tests := []struct {
		amount   string
		currency string
		want     string
	}{
		{"4000000", models.CurrencyUAH, "100000"},
		{"4000001", models.CurrencyUAH, "100005"},
		{"1000", models.CurrencyEUR, "1090"},
		{"12345.67", models.CurrencyUSD, "12345.67"},
	}
	for _, tt := range tests {
		got := p.ConvertToUSD(decimal.RequireFromString(tt.amount), tt.currency, rates)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ConvertToUSD(%s, %s) = %s; want %s", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestConvertToUSDFallsBackToDefaultRates(t *testing.T) {
	p := NewPriceTransformer()
	empty := models.ExchangeRates{Rates: map[string]decimal.Decimal{models.CurrencyUAH: decimal.NewFromInt(1)}}

	got := p.ConvertToUSD(decimal.NewFromInt(400), models.CurrencyUAH, empty)
	if !got.Equal(decimal.NewFromInt(10)) {
		t.Errorf("ConvertToUSD(400, UAH) with no USD rate = %s; want 10", got)
	}
}

func TestNormalizeDegradesToZero(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr error
	}{
		{"", ErrPriceMissing},
		{"договірна", ErrPriceUnparseable},
		{"-5000 $", ErrPriceNegative},
	}

	p := NewPriceTransformer()
	for _, tt := range tests {
		got, err := p.Normalize(tt.raw, models.DefaultExchangeRates())
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("Normalize(%q) error = %v; want %v", tt.raw, err, tt.wantErr)
		}
		if !got.AmountUSD.IsZero() {
			t.Errorf("Normalize(%q) amount = %s; want 0", tt.raw, got.AmountUSD)
		}
	}
}

func TestNormalizeUsesDetectedCurrency(t *testing.T) {
	p := NewPriceTransformer()
	got, err := p.Normalize("2 000 000 грн", models.DefaultExchangeRates())
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got.SourceCurrency != models.CurrencyUAH {
		t.Errorf("SourceCurrency = %s; want UAH", got.SourceCurrency)
	}
	if !got.AmountUSD.Equal(decimal.NewFromInt(50000)) {
		t.Errorf("AmountUSD = %s; want 50000", got.AmountUSD)
	}
}
