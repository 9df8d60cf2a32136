package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/transfer"
)

// GetGuests handles the GET /api/guests request.
func (h *Handler) GetGuests(c *gin.Context) {
	by := hotel.GuestSort(c.DefaultQuery("sort", string(hotel.GuestSortName)))
	dir := hotel.ParseSortDir(c.Query("dir"))

	guests, err := h.engine.Guests(c.Request.Context(), by, dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, guests)
}

// GetGuestServices handles the GET /api/guests/{id}/services request.
func (h *Handler) GetGuestServices(c *gin.Context) {
	by := hotel.UsageSort(c.DefaultQuery("sort", string(hotel.UsageSortDate)))
	dir := hotel.ParseSortDir(c.Query("dir"))

	usages, err := h.engine.GuestServices(c.Request.Context(), c.Param("id"), by, dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, usages)
}

type postGuestServiceRequest struct {
	ServiceID string `json:"serviceId" binding:"required"`
	UsedOn    string `json:"usedOn"`
}

// PostGuestService handles the POST /api/guests/{id}/services request. The
// usage date is optional and defaults to the current hotel day.
func (h *Handler) PostGuestService(c *gin.Context) {
	var req postGuestServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var usedOn time.Time
	if req.UsedOn != "" {
		parsed, err := time.Parse(transfer.DateLayout, req.UsedOn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid usedOn, expected YYYY-MM-DD"})
			return
		}
		usedOn = parsed.UTC()
	}

	if err := h.engine.AddServiceToGuest(c.Request.Context(), c.Param("id"), req.ServiceID, usedOn); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusCreated)
}
