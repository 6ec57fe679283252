package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"estatecrm/internal/services"
)

type AssignmentHandler struct {
	Service *services.AssignmentService
}

func NewAssignmentHandler(service *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{Service: service}
}

type assignRequest struct {
	TargetUserType string `json:"assigned_user_type" binding:"required"`
	TargetID       int    `json:"assigned_id" binding:"required"`
	Priority       string `json:"priority" binding:"required"`
	Feedback       string `json:"feedback"`
	NextAction     string `json:"next_action"`
	StatusID       int    `json:"status_id"`
	FollowupDate   string `json:"followup_date"`
	ActionDate     string `json:"action_date"`
}

// Assign godoc
// @Summary Route a lead to an employee or channel partner
// @Tags leads
// @Router /leads/{id}/assign [post]
func (h *AssignmentHandler) Assign(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.AssignInput{
		TargetUserType: req.TargetUserType,
		TargetID:       req.TargetID,
		Priority:       req.Priority,
		Feedback:       req.Feedback,
		NextAction:     req.NextAction,
		StatusID:       req.StatusID,
	}
	if in.FollowupDate, err = parseDate(req.FollowupDate, "followup_date"); err != nil {
		respondError(c, err)
		return
	}
	if in.ActionDate, err = parseDate(req.ActionDate, "action_date"); err != nil {
		respondError(c, err)
		return
	}

	lead, err := h.Service.Assign(c.Request.Context(), getActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

// EligibleTargets godoc
// @Summary List users a lead can be routed to for one role
// @Tags employees
// @Router /employees/assignable [get]
func (h *AssignmentHandler) EligibleTargets(c *gin.Context) {
	userType := c.Query("user_type")
	if userType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_type is required"})
		return
	}
	targets, err := h.Service.EligibleTargets(c.Request.Context(), getActor(c), userType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}
