package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/transfer"
)

func roomNumberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid room number"})
		return 0, false
	}
	return number, true
}

// GetRooms handles the GET /api/rooms request.
func (h *Handler) GetRooms(c *gin.Context) {
	by := hotel.RoomSort(c.DefaultQuery("sort", string(hotel.RoomSortNumber)))
	dir := hotel.ParseSortDir(c.Query("dir"))

	rooms, err := h.engine.Rooms(c.Request.Context(), by, dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

type postRoomRequest struct {
	Number   int    `json:"number" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Price    int    `json:"price"`
	Capacity int    `json:"capacity" binding:"required"`
}

// PostRoom handles the POST /api/rooms request.
func (h *Handler) PostRoom(c *gin.Context) {
	var req postRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	room, err := h.engine.AddRoom(c.Request.Context(), req.Number, model.RoomType(req.Type), req.Price, req.Capacity)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// GetAvailableRooms handles the GET /api/rooms/available request. With a
// date query parameter it reports rooms free on that date instead of today.
func (h *Handler) GetAvailableRooms(c *gin.Context) {
	if rawDate := c.Query("date"); rawDate != "" {
		date, err := time.Parse(transfer.DateLayout, rawDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
			return
		}
		rooms, err := h.engine.RoomsAvailableOn(c.Request.Context(), date.UTC())
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, rooms)
		return
	}

	by := hotel.RoomSort(c.DefaultQuery("sort", string(hotel.RoomSortNumber)))
	dir := hotel.ParseSortDir(c.Query("dir"))

	rooms, err := h.engine.AvailableRooms(c.Request.Context(), by, dir)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoom handles the GET /api/rooms/{number} request.
func (h *Handler) GetRoom(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}

	room, err := h.engine.RoomDetails(c.Request.Context(), number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, room)
}

type putRoomPriceRequest struct {
	Price int `json:"price"`
}

// PutRoomPrice handles the PUT /api/rooms/{number}/price request.
func (h *Handler) PutRoomPrice(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}
	var req putRoomPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.engine.SetRoomPrice(c.Request.Context(), number, req.Price)
	if err != nil {
		fail(c, err)
		return
	}
	if !updated {
		c.JSON(http.StatusConflict, gin.H{"error": "price not updated"})
		return
	}
	c.Status(http.StatusNoContent)
}

type checkInRequest struct {
	Guests []hotel.GuestDraft `json:"guests" binding:"required,min=1,dive"`
	Days   int                `json:"days" binding:"required"`
}

// PostCheckIn handles the POST /api/rooms/{number}/checkin request.
func (h *Handler) PostCheckIn(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := h.engine.CheckIn(c.Request.Context(), number, req.Guests, req.Days)
	if err != nil {
		fail(c, err)
		return
	}
	if !out.OK {
		c.JSON(http.StatusConflict, gin.H{"error": "room cannot take this check-in"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"guests": out.Guests})
}

// PostCheckOut handles the POST /api/rooms/{number}/checkout request.
func (h *Handler) PostCheckOut(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}

	out, err := h.engine.CheckOut(c.Request.Context(), number)
	if err != nil {
		fail(c, err)
		return
	}
	if !out.OK {
		c.JSON(http.StatusConflict, gin.H{"error": "room is not occupied"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"totalCost": out.TotalCost,
		"groupId":   out.GroupID,
		"guests":    out.Departed,
	})
}

// PostRoomCleaning handles the POST /api/rooms/{number}/cleaning request.
func (h *Handler) PostRoomCleaning(c *gin.Context) {
	h.transitionRoom(c, func(number int) (bool, error) {
		return h.engine.SetRoomCleaning(c.Request.Context(), number)
	})
}

type maintenanceRequest struct {
	Days int `json:"days" binding:"required"`
}

// PostRoomMaintenance handles the POST /api/rooms/{number}/maintenance request.
func (h *Handler) PostRoomMaintenance(c *gin.Context) {
	var req maintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.transitionRoom(c, func(number int) (bool, error) {
		return h.engine.SetRoomUnderMaintenance(c.Request.Context(), number, req.Days)
	})
}

// PostRoomAvailable handles the POST /api/rooms/{number}/available request.
func (h *Handler) PostRoomAvailable(c *gin.Context) {
	h.transitionRoom(c, func(number int) (bool, error) {
		return h.engine.SetRoomAvailable(c.Request.Context(), number)
	})
}

func (h *Handler) transitionRoom(c *gin.Context, apply func(number int) (bool, error)) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}

	changed, err := apply(number)
	if err != nil {
		fail(c, err)
		return
	}
	if !changed {
		c.JSON(http.StatusConflict, gin.H{"error": "status change refused"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRoomHistory handles the GET /api/rooms/{number}/history request.
func (h *Handler) GetRoomHistory(c *gin.Context) {
	number, ok := roomNumberParam(c)
	if !ok {
		return
	}

	groups, err := h.engine.RoomHistory(c.Request.Context(), number)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}
