package services

import (
	"context"

	"estatecrm/internal/models"
)

// Actor is the authenticated user a request runs as, taken from the session
// token. BuilderID is the owning organization; for a builder account it equals
// ID.
type Actor struct {
	ID        int
	UserType  string
	BuilderID int
}

// LeadStore is the lead side of the remote store. Insert commits the new lead
// and its birth ledger entry in one transaction. ApplyTransition must commit
// the lead mutation and the ledger entry atomically, and fail with
// ErrLeadModified when the lead's status no longer matches the one the
// transition was validated against.
type LeadStore interface {
	Insert(ctx context.Context, lead *models.Lead, entry *models.LeadUpdate) error
	GetByID(ctx context.Context, id int) (*models.Lead, error)
	Filter(ctx context.Context, f models.LeadFilter) ([]models.Lead, error)
	UpdateAssignment(ctx context.Context, lead *models.Lead) error
	ApplyTransition(ctx context.Context, lead *models.Lead, entry *models.LeadUpdate) error
}

// LedgerStore reads the append-only history of a lead. Entries are only ever
// written alongside a lead mutation; ListByLead returns them ordered by
// creation time ascending.
type LedgerStore interface {
	ListByLead(ctx context.Context, leadID int) ([]models.LeadUpdate, error)
}

type StatusStore interface {
	List(ctx context.Context) ([]models.LeadStatus, error)
}

type EmployeeStore interface {
	GetByID(ctx context.Context, id int) (*models.Employee, error)
	ListActiveByRole(ctx context.Context, builderID int, userType string) ([]models.Employee, error)
}

// BookingStore persists booking records. CreateForLead must insert the record
// and flip the lead's booked flag in one transaction.
type BookingStore interface {
	CreateForLead(ctx context.Context, booking *models.Booking) error
	GetByLeadID(ctx context.Context, leadID int) (*models.Booking, error)
	ListByBuilder(ctx context.Context, builderID int) ([]models.BookedLead, error)
}
