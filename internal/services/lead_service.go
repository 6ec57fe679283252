package services

import (
	"context"
	"strings"
	"time"

	"estatecrm/internal/authz"
	"estatecrm/internal/models"
)

// LeadService is the lifecycle engine: it owns every mutation of a lead's
// status and the ledger entries that record them. Other services route status
// changes through here.
type LeadService struct {
	store     LeadStore
	statuses  *StatusService
	employees EmployeeStore
	locks     *lockTable
	now       func() time.Time
}

func NewLeadService(store LeadStore, statuses *StatusService, employees EmployeeStore) *LeadService {
	return &LeadService{
		store:     store,
		statuses:  statuses,
		employees: employees,
		locks:     newLockTable(),
		now:       time.Now,
	}
}

type CreateLeadInput struct {
	CustomerName          string `json:"customer_name"`
	CustomerPhone         string `json:"customer_phone_number"`
	CustomerEmail         string `json:"customer_email"`
	InterestedProjectID   int    `json:"interested_project_id"`
	InterestedProjectName string `json:"interested_project_name"`
	LeadSourceID          int    `json:"lead_source_id"`
	City                  string `json:"city"`
	Sqft                  string `json:"sqft"`
	Budget                string `json:"budget"`
}

type TransitionInput struct {
	NewStatusID  int
	Feedback     string
	NextAction   string
	FollowupDate *time.Time
	ActionDate   *time.Time
}

// Create registers a new lead in the initial status. Leads created by a
// channel partner are routed straight into that partner's queue.
func (s *LeadService) Create(ctx context.Context, actor Actor, in CreateLeadInput) (*models.Lead, error) {
	switch {
	case strings.TrimSpace(in.CustomerName) == "":
		return nil, invalidField("customer_name", "is required")
	case strings.TrimSpace(in.CustomerPhone) == "":
		return nil, invalidField("customer_phone_number", "is required")
	case strings.TrimSpace(in.CustomerEmail) == "":
		return nil, invalidField("customer_email", "is required")
	}

	emp, err := s.actorEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}

	now := s.now()
	initial := s.statuses.Initial()
	lead := &models.Lead{
		CustomerName:          strings.TrimSpace(in.CustomerName),
		CustomerPhone:         strings.TrimSpace(in.CustomerPhone),
		CustomerEmail:         strings.TrimSpace(in.CustomerEmail),
		InterestedProjectID:   in.InterestedProjectID,
		InterestedProjectName: in.InterestedProjectName,
		LeadSourceID:          in.LeadSourceID,
		City:                  in.City,
		AddedUserType:         authz.RoleBuilder,
		AddedUserID:           actor.BuilderID,
		StatusID:              initial.ID,
		Sqft:                  in.Sqft,
		Budget:                in.Budget,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if actor.UserType == authz.RoleChannelPartner {
		lead.AssignedUserType = emp.UserType
		lead.AssignedID = emp.ID
		lead.AssignedName = emp.Name
		lead.AssignedEmpNumber = emp.EmpNumber
		lead.AssignedPriority = models.PriorityMedium
	}

	entry := &models.LeadUpdate{
		StatusID:   initial.ID,
		Feedback:   "Lead created",
		ByEmpType:  emp.UserType,
		ByEmpID:    emp.ID,
		ByEmpName:  emp.Name,
		ByEmpPhone: emp.Phone,
		CreatedAt:  now,
	}
	if err := s.store.Insert(ctx, lead, entry); err != nil {
		return nil, err
	}
	return lead, nil
}

// Transition moves a lead to a new status, appending exactly one ledger entry.
// The lead mutation and the entry are committed atomically by the store.
func (s *LeadService) Transition(ctx context.Context, actor Actor, leadID int, in TransitionInput) (*models.LeadUpdate, error) {
	unlock := s.locks.lock(leadID)
	defer unlock()

	lead, err := s.getOwned(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	return s.transitionLocked(ctx, actor, lead, in)
}

// transitionLocked is Transition with the per-lead lock already held and the
// lead already fetched; the assignment resolver uses it to combine an
// assignment with a status change under one lock.
func (s *LeadService) transitionLocked(ctx context.Context, actor Actor, lead *models.Lead, in TransitionInput) (*models.LeadUpdate, error) {
	target, ok := s.statuses.Get(in.NewStatusID)
	if !ok {
		return nil, ErrStatusNotFound
	}
	if err := s.checkTransition(lead, target, in); err != nil {
		return nil, err
	}

	emp, err := s.actorEmployee(ctx, actor)
	if err != nil {
		return nil, err
	}

	entry := &models.LeadUpdate{
		LeadID:       lead.ID,
		StatusID:     target.ID,
		Feedback:     strings.TrimSpace(in.Feedback),
		NextAction:   strings.TrimSpace(in.NextAction),
		FollowupDate: in.FollowupDate,
		ActionDate:   in.ActionDate,
		ByEmpType:    emp.UserType,
		ByEmpID:      emp.ID,
		ByEmpName:    emp.Name,
		ByEmpPhone:   emp.Phone,
		CreatedAt:    s.now(),
	}
	if err := s.store.ApplyTransition(ctx, lead, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// checkTransition validates every precondition without touching the store.
// No mutation happens until it passes.
func (s *LeadService) checkTransition(lead *models.Lead, target models.LeadStatus, in TransitionInput) error {
	if lead.Booked {
		return ErrAlreadyBooked
	}
	if current, ok := s.statuses.Get(lead.StatusID); ok && current.Terminal {
		return ErrLeadTerminal
	}
	if !lead.Assigned() {
		return invalidField("assigned_id", "lead must be assigned before a status change")
	}
	if strings.TrimSpace(in.Feedback) == "" {
		return invalidField("feedback", "is required")
	}
	if strings.TrimSpace(in.NextAction) == "" {
		return invalidField("next_action", "is required")
	}

	now := s.now()
	if target.RequiresFollowupDate {
		if in.ActionDate != nil {
			return invalidField("action_date", "not allowed for a follow-up status")
		}
		if in.FollowupDate == nil {
			return invalidField("followup_date", "is required for this status")
		}
		if beforeDay(*in.FollowupDate, now) {
			return invalidField("followup_date", "cannot be in the past")
		}
		return nil
	}
	if in.FollowupDate != nil {
		return invalidField("followup_date", "only allowed for a follow-up status")
	}
	if in.ActionDate == nil {
		return invalidField("action_date", "is required for this status")
	}
	if beforeDay(*in.ActionDate, now) {
		return invalidField("action_date", "cannot be in the past")
	}
	return nil
}

// List runs the conjunction filter, always pinned to the actor's organization.
// Non-owner roles only ever see their own queue.
func (s *LeadService) List(ctx context.Context, actor Actor, f models.LeadFilter) ([]models.Lead, error) {
	f.OwnerType = authz.RoleBuilder
	f.OwnerID = actor.BuilderID
	if !authz.IsOwnerRole(actor.UserType) {
		f.AssigneeType = actor.UserType
		f.AssigneeID = actor.ID
	}
	return s.store.Filter(ctx, f)
}

func (s *LeadService) Get(ctx context.Context, actor Actor, leadID int) (*models.Lead, error) {
	return s.getOwned(ctx, actor, leadID)
}

// getOwned fetches a lead and enforces the organization partition. Non-owner
// roles additionally see only unassigned leads or leads in their own queue.
func (s *LeadService) getOwned(ctx context.Context, actor Actor, leadID int) (*models.Lead, error) {
	lead, err := s.store.GetByID(ctx, leadID)
	if err != nil {
		return nil, err
	}
	if lead.AddedUserID != actor.BuilderID {
		return nil, ErrLeadNotFound
	}
	if !authz.IsOwnerRole(actor.UserType) && lead.Assigned() && lead.AssignedID != actor.ID {
		return nil, ErrUnauthorizedActor
	}
	return lead, nil
}

func (s *LeadService) actorEmployee(ctx context.Context, actor Actor) (*models.Employee, error) {
	emp, err := s.employees.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if emp == nil || !emp.Active {
		return nil, ErrUnauthorizedActor
	}
	return emp, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// beforeDay reports whether a falls on an earlier calendar date than b, each
// read in its own location. Submitted dates arrive parsed at UTC midnight
// while the server clock may sit in another zone; comparing wall-clock
// components keeps "today" meaning the same day on both sides.
func beforeDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
