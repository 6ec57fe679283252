package models

import "time"

// Assignment priorities.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

func ValidPriority(p string) bool {
	return p == PriorityHigh || p == PriorityMedium || p == PriorityLow
}

type Lead struct {
	ID                    int       `json:"lead_id"`
	CustomerName          string    `json:"customer_name"`
	CustomerPhone         string    `json:"customer_phone_number"`
	CustomerEmail         string    `json:"customer_email"`
	InterestedProjectID   int       `json:"interested_project_id"`
	InterestedProjectName string    `json:"interested_project_name"`
	LeadSourceID          int       `json:"lead_source_id"`
	City                  string    `json:"city"`
	AddedUserType         string    `json:"lead_added_user_type"`
	AddedUserID           int       `json:"lead_added_user_id"`
	AssignedUserType      string    `json:"assigned_user_type,omitempty"`
	AssignedID            int       `json:"assigned_id,omitempty"`
	AssignedName          string    `json:"assigned_name,omitempty"`
	AssignedEmpNumber     string    `json:"assigned_emp_number,omitempty"`
	AssignedPriority      string    `json:"assigned_priority,omitempty"`
	StatusID              int       `json:"status_id"`
	Sqft                  string    `json:"sqft"`
	Budget                string    `json:"budget"`
	Booked                bool      `json:"booked"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

// Assigned reports whether the lead has left the unassigned pool.
func (l *Lead) Assigned() bool {
	return l.AssignedID != 0
}

// LeadFilter is a conjunction over the optional fields; OwnerID/OwnerType are
// mandatory and pin every query to one organization. Date bounds are inclusive
// and compared as calendar dates, ignoring time of day.
type LeadFilter struct {
	OwnerType    string
	OwnerID      int
	AssigneeType string
	AssigneeID   int
	StatusID     int
	Search       string
	City         string
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
	UpdatedFrom  *time.Time
	UpdatedTo    *time.Time
	Booked       bool
}
