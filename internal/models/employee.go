package models

import "time"

// Employee is an account that can create, work or receive leads: any of the
// builder-side roles or a channel partner. BuilderID pins the account to its
// organization; for the builder account itself BuilderID equals ID.
type Employee struct {
	ID        int       `json:"id"`
	UserType  string    `json:"user_type"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	EmpNumber string    `json:"emp_number"`
	BuilderID int       `json:"builder_id"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
