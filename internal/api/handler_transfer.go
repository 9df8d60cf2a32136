package api

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-management-backend/internal/hotel"
	"hotel-management-backend/internal/model"
	"hotel-management-backend/internal/transfer"
)

// ExportRooms handles the GET /api/export/rooms request. Rooms are written
// with their current guests embedded so the export reproduces occupancy.
func (h *Handler) ExportRooms(c *gin.Context) {
	ctx := c.Request.Context()

	rooms, err := h.engine.Rooms(ctx, hotel.RoomSortNumber, hotel.Asc)
	if err != nil {
		fail(c, err)
		return
	}
	for i := range rooms {
		guests, err := h.store.FindGuestsByRoom(ctx, rooms[i].Number)
		if err != nil {
			fail(c, err)
			return
		}
		if err := h.attachUsages(c, guests); err != nil {
			return
		}
		rooms[i].Guests = guests
	}

	writeExport(c, rooms, transfer.RoomCodec{})
}

// ExportGuests handles the GET /api/export/guests request.
func (h *Handler) ExportGuests(c *gin.Context) {
	guests, err := h.store.AllGuests(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.attachUsages(c, guests); err != nil {
		return
	}

	writeExport(c, guests, transfer.GuestCodec{})
}

// ExportServices handles the GET /api/export/services request.
func (h *Handler) ExportServices(c *gin.Context) {
	services, err := h.engine.Services(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}

	writeExport(c, services, transfer.ServiceCodec{})
}

func (h *Handler) attachUsages(c *gin.Context, guests []model.Guest) error {
	for i := range guests {
		usages, err := h.store.ServiceUsagesOfGuest(c.Request.Context(), guests[i].ID)
		if err != nil {
			fail(c, err)
			return err
		}
		guests[i].ServiceUsages = usages
	}
	return nil
}

func writeExport[T any](c *gin.Context, items []T, codec transfer.Codec[T]) {
	var buf bytes.Buffer
	if err := transfer.Export(&buf, items, codec); err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ImportRooms handles the POST /api/import/rooms request.
func (h *Handler) ImportRooms(c *gin.Context) {
	rooms, ok := parseImport(c, transfer.RoomCodec{})
	if !ok {
		return
	}

	if err := h.engine.ImportRooms(c.Request.Context(), rooms); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(rooms)})
}

// ImportGuests handles the POST /api/import/guests request. The batch is
// reconciled room by room; rooms that cannot take their group are reported
// together while the rest of the batch stays applied.
func (h *Handler) ImportGuests(c *gin.Context) {
	guests, ok := parseImport(c, transfer.GuestCodec{})
	if !ok {
		return
	}

	err := h.engine.ImportGuests(c.Request.Context(), guests)
	var reconcileErr *hotel.ReconcileError
	if errors.As(err, &reconcileErr) {
		c.JSON(http.StatusConflict, gin.H{
			"error":       reconcileErr.Error(),
			"failedRooms": reconcileErr.Rooms,
		})
		return
	}
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(guests)})
}

// ImportServices handles the POST /api/import/services request.
func (h *Handler) ImportServices(c *gin.Context) {
	services, ok := parseImport(c, transfer.ServiceCodec{})
	if !ok {
		return
	}

	if err := h.engine.ImportServices(c.Request.Context(), services); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": len(services)})
}

func parseImport[T any](c *gin.Context, codec transfer.Codec[T]) ([]T, bool) {
	items, err := transfer.Import(c.Request.Body, codec)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return items, true
}
