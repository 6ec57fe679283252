package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"estatecrm/internal/services"
)

type StatusHandler struct {
	Service *services.StatusService
}

func NewStatusHandler(service *services.StatusService) *StatusHandler {
	return &StatusHandler{Service: service}
}

// List godoc
// @Summary The ordered status catalog
// @Tags statuses
// @Router /lead-statuses [get]
func (h *StatusHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.Service.List())
}
