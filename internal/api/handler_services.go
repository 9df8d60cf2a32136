package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetServices handles the GET /api/services request.
func (h *Handler) GetServices(c *gin.Context) {
	services, err := h.engine.Services(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, services)
}

type postServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Price       int    `json:"price"`
	Description string `json:"description"`
}

// PostService handles the POST /api/services request.
func (h *Handler) PostService(c *gin.Context) {
	var req postServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc, err := h.engine.AddService(c.Request.Context(), req.Name, req.Price, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

type putServicePriceRequest struct {
	Price int `json:"price"`
}

// PutServicePrice handles the PUT /api/services/{id}/price request.
func (h *Handler) PutServicePrice(c *gin.Context) {
	var req putServicePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.engine.SetServicePrice(c.Request.Context(), c.Param("id"), req.Price); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
