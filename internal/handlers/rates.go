package handlers

import (
	"context"
	"net/http"

	"dominium-listings/internal/models"

	"github.com/gin-gonic/gin"
)

type RateProvider interface {
	GetRates(ctx context.Context, forceRefresh bool) models.ExchangeRates
}

type RatesHandler struct {
	rates RateProvider
}

func NewRatesHandler(rates RateProvider) *RatesHandler {
	return &RatesHandler{rates: rates}
}

// GetRates handles GET /api/exchange-rates; ?refresh=true skips the fresh cache.
func (h *RatesHandler) GetRates(c *gin.Context) {
	rates := h.rates.GetRates(c.Request.Context(), parseBool(c.Query("refresh")))
	c.JSON(http.StatusOK, rates)
}
