package services

import (
	"errors"
	"fmt"
)

// Failure kinds surfaced to handlers. Everything not matched by one of these
// (or by *ValidationError) is treated as a transient store failure.
var (
	ErrUnauthorizedActor = errors.New("actor is not allowed to perform this action")
	ErrLeadNotFound      = errors.New("lead not found")
	ErrStatusNotFound    = errors.New("status not found")
	ErrTargetNotFound    = errors.New("target user not found")
	ErrInvalidTargetRole = errors.New("target role is not assignable")
	ErrInvalidPriority   = errors.New("invalid priority")
	ErrLeadTerminal      = errors.New("lead is in a terminal status")
	ErrAlreadyBooked     = errors.New("lead is already booked")
	ErrLeadUnassigned    = errors.New("lead has no assignee")
	ErrLeadModified      = errors.New("lead was modified concurrently")
)

// ValidationError reports the specific failing field so the caller can
// highlight it.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
