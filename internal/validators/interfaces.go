package validators

import (
	"dominium-listings/internal/models"
)

type ListingValidator interface {
	ValidateListing(listing *models.Listing) error
	ValidateSourceURL(raw string) error
}
