package validators

import (
	"errors"
	"testing"

	apperrors "dominium-listings/internal/errors"
	"dominium-listings/internal/models"

	"github.com/shopspring/decimal"
)

func float(f float64) *float64 { return &f }

func TestValidateListingAcceptsCompleteListing(t *testing.T) {
	l := &models.Listing{
		Title:     "Flat",
		Address:   "Kyiv, Test St, 1",
		Price:     decimal.NewFromInt(120000),
		Area:      55,
		Rooms:     2,
		Latitude:  float(50.45),
		Longitude: float(30.52),
	}
	if err := NewListingValidator().ValidateListing(l); err != nil {
		t.Fatalf("ValidateListing returned error: %v", err)
	}
}

func TestValidateListingCollectsAllViolations(t *testing.T) {
	l := &models.Listing{
		Title:     "   ",
		Price:     decimal.NewFromInt(-1),
		Area:      -3,
		Rooms:     0,
		Latitude:  float(91),
		Longitude: float(-181),
	}

	err := NewListingValidator().ValidateListing(l)
	var verr *apperrors.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("ValidateListing error = %v; want *ValidationError", err)
	}

	for _, field := range []string{"title", "address", "price", "area", "rooms", "latitude", "longitude"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("Fields missing %q: %v", field, verr.Fields)
		}
	}
	if got := verr.Fields["title"]; got != "This field is required." {
		t.Errorf("Fields[title] = %q; want required message", got)
	}
}

func TestValidateSourceURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantErr bool
	}{
		{"https://example.com/listing/1", false},
		{"http://example.com", false},
		{"", true},
		{"ftp://example.com/file", true},
		{"example.com/listing", true},
		{"https://", true},
	}

	v := NewListingValidator()
	for _, tt := range tests {
		err := v.ValidateSourceURL(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateSourceURL(%q) = %v; wantErr %v", tt.raw, err, tt.wantErr)
		}
		var verr *apperrors.ValidationError
		if err != nil && (!errors.As(err, &verr) || verr.Fields["url"] == "") {
			t.Errorf("ValidateSourceURL(%q) error = %v; want url field error", tt.raw, err)
		}
	}
}
