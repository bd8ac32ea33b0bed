package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are inside their ranges.
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// ExtractedFields are the raw candidates pulled out of a listing page.
type ExtractedFields struct {
	Title           string
	Address         string
	RawPrice        string
	Rooms           int
	Area            float64
	DescriptionHTML string
	MainImageURL    string
	Gallery         []string
	Coordinates     *Coordinates
	PropertyType    string
	DealType        string
	Deficiencies    []string
}

// Price is a normalized USD amount together with the currency it was quoted in.
type Price struct {
	AmountUSD      decimal.Decimal `json:"amount_usd"`
	SourceCurrency string          `json:"source_currency"`
	Raw            string          `json:"raw"`
}

// ParsedListing is the canonical listing built from one document.
type ParsedListing struct {
	Source          string          `json:"source"`
	Title           string          `json:"title"`
	Address         string          `json:"address"`
	Price           decimal.Decimal `json:"price"`
	SourceCurrency  string          `json:"source_currency"`
	Area            float64         `json:"area"`
	Rooms           int             `json:"rooms"`
	Description     string          `json:"description"`
	DescriptionHTML string          `json:"description_html"`
	MainImageURL    string          `json:"main_image_url"`
	Gallery         []string        `json:"gallery"`
	PropertyType    string          `json:"property_type"`
	DealType        string          `json:"deal_type"`
	Coordinates     *Coordinates    `json:"coordinates,omitempty"`
	Warnings        []string        `json:"warnings"`
}

// Listing is the persisted listing record.
type Listing struct {
	ID              string          `json:"id" bson:"_id"`
	Slug            string          `json:"slug" bson:"slug"`
	Title           string          `json:"title" bson:"title" validate:"required"`
	Address         string          `json:"address" bson:"address" validate:"required"`
	Description     string          `json:"description" bson:"description"`
	DescriptionHTML string          `json:"description_html" bson:"description_html"`
	Price           decimal.Decimal `json:"price" bson:"-" validate:"gte=0"`
	SourceCurrency  string          `json:"source_currency" bson:"source_currency"`
	Area            float64         `json:"area" bson:"area" validate:"gte=0"`
	Rooms           int             `json:"rooms" bson:"rooms" validate:"gte=1"`
	PropertyTypeID  string          `json:"property_type_id,omitempty" bson:"property_type_id,omitempty"`
	DealTypeID      string          `json:"deal_type_id,omitempty" bson:"deal_type_id,omitempty"`
	Latitude        *float64        `json:"latitude,omitempty" bson:"latitude,omitempty" validate:"omitempty,gte=-90,lte=90"`
	Longitude       *float64        `json:"longitude,omitempty" bson:"longitude,omitempty" validate:"omitempty,gte=-180,lte=180"`
	Geohash         string          `json:"geohash,omitempty" bson:"geohash,omitempty"`
	SourceLabel     string          `json:"source_label" bson:"source_label"`
	CreatedAt       time.Time       `json:"created_at" bson:"created_at"`
}

// ListingImage links a stored photo to its listing.
type ListingImage struct {
	ID         string    `json:"id" bson:"_id"`
	ListingID  string    `json:"listing_id" bson:"listing_id"`
	SourceURL  string    `json:"source_url" bson:"source_url"`
	StorageRef string    `json:"storage_ref" bson:"storage_ref"`
	IsMain     bool      `json:"is_main" bson:"is_main"`
	Position   int       `json:"position" bson:"position"`
	CreatedAt  time.Time `json:"created_at" bson:"created_at"`
}

// PropertyType classifies a listing (apartment, house, ...).
type PropertyType struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Key  string `json:"-" bson:"key"`
	Slug string `json:"slug" bson:"slug"`
}

// DealType classifies the transaction (sale, rent, ...).
type DealType struct {
	ID   string `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
	Key  string `json:"-" bson:"key"`
}
