package models

// LeadStatus is one entry of the status catalog: reference data, loaded once
// per process and never mutated by the engine.
//
// RequiresFollowupDate makes the followup/action date split an explicit
// property of the catalog entry instead of a hardcoded id comparison.
// SortOrder carries the lifecycle order used by the timeline; seed data keeps
// ids in the same order for compatibility with existing clients.
type LeadStatus struct {
	ID                   int    `json:"status_id"`
	Name                 string `json:"status_name"`
	SortOrder            int    `json:"sort_order"`
	RequiresFollowupDate bool   `json:"requires_followup_date"`
	Terminal             bool   `json:"terminal"`
}
