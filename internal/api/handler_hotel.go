package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
)

// GetHotel handles the GET /api/hotel request.
func (h *Handler) GetHotel(c *gin.Context) {
	summary, err := h.engine.Summary(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetPrices handles the GET /api/prices request.
func (h *Handler) GetPrices(c *gin.Context) {
	by := hotel.PriceSort(c.DefaultQuery("sort", string(hotel.PriceSortID)))
	dir := hotel.ParseSortDir(c.Query("dir"))

	prices, err := h.engine.Prices(c.Request.Context(), by, dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prices)
}

// PostAdvanceDay handles the POST /api/day/advance request.
func (h *Handler) PostAdvanceDay(c *gin.Context) {
	day, err := h.engine.AdvanceDay(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"currentDay": day})
}
