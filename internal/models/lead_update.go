package models

import "time"

// LeadUpdate is one append-only ledger entry: the status a lead moved to,
// the feedback captured at that moment and the acting employee's identity.
// Entries are never mutated or deleted.
type LeadUpdate struct {
	ID           int        `json:"update_id"`
	LeadID       int        `json:"lead_id"`
	StatusID     int        `json:"status_id"`
	Feedback     string     `json:"feedback"`
	NextAction   string     `json:"next_action"`
	FollowupDate *time.Time `json:"followup_date,omitempty"`
	ActionDate   *time.Time `json:"action_date,omitempty"`
	ByEmpType    string     `json:"updated_by_emp_type"`
	ByEmpID      int        `json:"updated_by_emp_id"`
	ByEmpName    string     `json:"updated_by_emp_name"`
	ByEmpPhone   string     `json:"updated_by_emp_phone"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Timeline step markers, derived from catalog sort order at read time.
const (
	StepCompleted = "completed"
	StepCurrent   = "current"
	StepPending   = "pending"
)

type TimelineEntry struct {
	LeadUpdate
	Step string `json:"step"`
}
