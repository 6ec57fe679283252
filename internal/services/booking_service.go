package services

import (
	"context"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"estatecrm/internal/models"
)

// decimalRe matches a non-negative decimal with at most two fractional digits,
// the only shape accepted for sqft and budget.
var decimalRe = regexp.MustCompile(`^[0-9]+(\.[0-9]{1,2})?$`)

// BookingService converts a qualifying lead into a terminal booked record.
type BookingService struct {
	leads    *LeadService
	bookings BookingStore
	validate *validator.Validate
	notifier Notifier
}

func NewBookingService(leads *LeadService, bookings BookingStore, notifier Notifier) *BookingService {
	v := validator.New()
	_ = v.RegisterValidation("decimal2", func(fl validator.FieldLevel) bool {
		return decimalRe.MatchString(fl.Field().String())
	})
	return &BookingService{leads: leads, bookings: bookings, validate: v, notifier: notifier}
}

type BookLeadInput struct {
	PropertyID  int    `json:"property_id" validate:"required"`
	FlatNumber  string `json:"flat_number" validate:"required,max=50"`
	FloorNumber string `json:"floor_number" validate:"required,max=50"`
	BlockNumber string `json:"block_number" validate:"required,max=50"`
	Asset       string `json:"asset" validate:"required,max=100"`
	Sqft        string `json:"sqft" validate:"required,max=10,decimal2"`
	Budget      string `json:"budget" validate:"required,max=20,decimal2"`
}

// fieldNames maps the validated struct fields to their wire names so failures
// point at the field the caller actually sent.
var fieldNames = map[string]string{
	"PropertyID":  "property_id",
	"FlatNumber":  "flat_number",
	"FloorNumber": "floor_number",
	"BlockNumber": "block_number",
	"Asset":       "asset",
	"Sqft":        "sqft",
	"Budget":      "budget",
}

// Book marks the lead booked and records the unit details. Terminal: a second
// call fails with ErrAlreadyBooked and changes nothing.
func (s *BookingService) Book(ctx context.Context, actor Actor, leadID int, in BookLeadInput) (*models.Booking, error) {
	unlock := s.leads.locks.lock(leadID)
	defer unlock()

	lead, err := s.leads.getOwned(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Booked {
		return nil, ErrAlreadyBooked
	}
	if !lead.Assigned() {
		return nil, ErrLeadUnassigned
	}
	if err := s.checkInput(in); err != nil {
		return nil, err
	}

	booking := &models.Booking{
		Reference:   uuid.NewString(),
		LeadID:      lead.ID,
		PropertyID:  in.PropertyID,
		FlatNumber:  in.FlatNumber,
		FloorNumber: in.FloorNumber,
		BlockNumber: in.BlockNumber,
		Asset:       in.Asset,
		Sqft:        in.Sqft,
		Budget:      in.Budget,
		BookedByID:  actor.ID,
		CreatedAt:   s.leads.now(),
	}
	if err := s.bookings.CreateForLead(ctx, booking); err != nil {
		return nil, err
	}
	lead.Booked = true
	lead.Sqft = in.Sqft
	lead.Budget = in.Budget

	if s.notifier != nil {
		assignee, _ := s.leads.employees.GetByID(ctx, lead.AssignedID)
		s.notifier.LeadBooked(lead, assignee, booking)
	}
	return booking, nil
}

// ListBooked returns the organization's booked leads with their unit details.
func (s *BookingService) ListBooked(ctx context.Context, actor Actor) ([]models.BookedLead, error) {
	return s.bookings.ListByBuilder(ctx, actor.BuilderID)
}

func (s *BookingService) checkInput(in BookLeadInput) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}
	fe := errs[0]
	field := fieldNames[fe.StructField()]
	if field == "" {
		field = fe.StructField()
	}
	switch fe.Tag() {
	case "required":
		return invalidField(field, "is required")
	case "max":
		return invalidField(field, "exceeds maximum length of "+fe.Param())
	case "decimal2":
		return invalidField(field, "must be a number with at most two decimals")
	default:
		return invalidField(field, "is invalid")
	}
}
