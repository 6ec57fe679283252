package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"estatecrm/internal/models"
	"estatecrm/internal/services"
)

type BookingHandler struct {
	Service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{Service: service}
}

// Book godoc
// @Summary Convert a lead into a booked unit
// @Tags leads
// @Router /leads/{id}/book [post]
func (h *BookingHandler) Book(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var in services.BookLeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	booking, err := h.Service.Book(c.Request.Context(), getActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// ListBooked godoc
// @Summary Booked leads of the organization with unit details
// @Tags leads
// @Router /leads/booked [get]
func (h *BookingHandler) ListBooked(c *gin.Context) {
	booked, err := h.Service.ListBooked(c.Request.Context(), getActor(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if booked == nil {
		booked = []models.BookedLead{}
	}
	c.JSON(http.StatusOK, booked)
}
