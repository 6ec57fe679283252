package models

import "time"

// Booking is the terminal conversion record of a lead. One per lead, ever.
type Booking struct {
	ID          int       `json:"booking_id"`
	Reference   string    `json:"booking_ref"`
	LeadID      int       `json:"lead_id"`
	PropertyID  int       `json:"property_id"`
	FlatNumber  string    `json:"flat_number"`
	FloorNumber string    `json:"floor_number"`
	BlockNumber string    `json:"block_number"`
	Asset       string    `json:"asset"`
	Sqft        string    `json:"sqft"`
	Budget      string    `json:"budget"`
	BookedByID  int       `json:"booked_by_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookedLead pairs a booked lead with its booking details for list views.
type BookedLead struct {
	Lead    Lead    `json:"lead"`
	Booking Booking `json:"booking"`
}
