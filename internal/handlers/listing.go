package handlers

import (
	"errors"
	"net/http"

	"dominium-listings/internal/models"
	"dominium-listings/internal/repositories"

	"github.com/gin-gonic/gin"
)

type ListingHandler struct {
	listings repositories.ListingRepository
	images   repositories.ImageRepository
}

func NewListingHandler(listings repositories.ListingRepository, images repositories.ImageRepository) *ListingHandler {
	return &ListingHandler{listings: listings, images: images}
}

type listingResponse struct {
	*models.Listing
	Images []models.ListingImage `json:"images"`
}

// GetListing handles GET /api/listings/:id.
func (h *ListingHandler) GetListing(c *gin.Context) {
	id := c.Param("id")
	listing, err := h.listings.FindByID(c.Request.Context(), id)
	if errors.Is(err, repositories.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
		return
	}
	if err != nil {
		c.Error(err)
		return
	}

	images, err := h.images.FindByListing(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, listingResponse{Listing: listing, Images: images})
}
