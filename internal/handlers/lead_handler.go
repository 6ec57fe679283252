package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"estatecrm/internal/models"
	"estatecrm/internal/services"
)

type LeadHandler struct {
	Service *services.LeadService
	Ledger  *services.LedgerService
}

func NewLeadHandler(service *services.LeadService, ledger *services.LedgerService) *LeadHandler {
	return &LeadHandler{Service: service, Ledger: ledger}
}

// Create godoc
// @Summary Register a new lead
// @Tags leads
// @Router /leads [post]
func (h *LeadHandler) Create(c *gin.Context) {
	var in services.CreateLeadInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lead, err := h.Service.Create(c.Request.Context(), getActor(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, lead)
}

// List godoc
// @Summary List active leads with a conjunction filter
// @Tags leads
// @Router /leads [get]
func (h *LeadHandler) List(c *gin.Context) {
	var f models.LeadFilter
	f.StatusID, _ = strconv.Atoi(c.Query("status_id"))
	f.AssigneeID, _ = strconv.Atoi(c.Query("assigned_id"))
	f.AssigneeType = c.Query("assigned_user_type")
	f.Search = c.Query("search")
	f.City = c.Query("city")

	var err error
	if f.CreatedFrom, err = parseDate(c.Query("created_from"), "created_from"); err != nil {
		respondError(c, err)
		return
	}
	if f.CreatedTo, err = parseDate(c.Query("created_to"), "created_to"); err != nil {
		respondError(c, err)
		return
	}
	if f.UpdatedFrom, err = parseDate(c.Query("updated_from"), "updated_from"); err != nil {
		respondError(c, err)
		return
	}
	if f.UpdatedTo, err = parseDate(c.Query("updated_to"), "updated_to"); err != nil {
		respondError(c, err)
		return
	}

	leads, err := h.Service.List(c.Request.Context(), getActor(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	if leads == nil {
		leads = []models.Lead{}
	}
	c.JSON(http.StatusOK, leads)
}

func (h *LeadHandler) GetByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	lead, err := h.Service.Get(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lead)
}

type transitionRequest struct {
	StatusID     int    `json:"status_id" binding:"required"`
	Feedback     string `json:"feedback"`
	NextAction   string `json:"next_action"`
	FollowupDate string `json:"followup_date"`
	ActionDate   string `json:"action_date"`
}

// UpdateStatus godoc
// @Summary Move a lead to a new status
// @Tags leads
// @Router /leads/{id}/status [post]
func (h *LeadHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var req transitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	in := services.TransitionInput{
		NewStatusID: req.StatusID,
		Feedback:    req.Feedback,
		NextAction:  req.NextAction,
	}
	if in.FollowupDate, err = parseDate(req.FollowupDate, "followup_date"); err != nil {
		respondError(c, err)
		return
	}
	if in.ActionDate, err = parseDate(req.ActionDate, "action_date"); err != nil {
		respondError(c, err)
		return
	}

	entry, err := h.Service.Transition(c.Request.Context(), getActor(c), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// Timeline godoc
// @Summary Chronological status history of a lead
// @Tags leads
// @Router /leads/{id}/updates [get]
func (h *LeadHandler) Timeline(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	entries, err := h.Ledger.Timeline(c.Request.Context(), getActor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
