package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"estatecrm/internal/services"
)

const dateLayout = "2006-01-02"

func getActor(c *gin.Context) services.Actor {
	var actor services.Actor
	if v, ok := c.Get("user_id"); ok {
		actor.ID, _ = v.(int)
	}
	if v, ok := c.Get("user_type"); ok {
		actor.UserType, _ = v.(string)
	}
	if v, ok := c.Get("builder_id"); ok {
		actor.BuilderID, _ = v.(int)
	}
	return actor
}

// respondError maps the service error kinds onto status codes. Anything
// unrecognized is treated as a transient store failure.
func respondError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "field": ve.Field})
	case errors.Is(err, services.ErrLeadNotFound),
		errors.Is(err, services.ErrStatusNotFound),
		errors.Is(err, services.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorizedActor):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrInvalidTargetRole),
		errors.Is(err, services.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLeadTerminal),
		errors.Is(err, services.ErrAlreadyBooked),
		errors.Is(err, services.ErrLeadUnassigned),
		errors.Is(err, services.ErrLeadModified):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// parseDate turns an optional yyyy-mm-dd field into a time pointer.
func parseDate(value, field string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, &services.ValidationError{Field: field, Message: "must be a date in the form " + dateLayout}
	}
	return &t, nil
}
