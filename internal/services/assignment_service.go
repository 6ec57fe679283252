package services

import (
	"context"
	"time"

	"estatecrm/internal/authz"
	"estatecrm/internal/models"
)

// AssignmentService validates and executes (re-)assignment of leads. It is the
// only path by which a lead gains its first assignee.
type AssignmentService struct {
	leads     *LeadService
	employees EmployeeStore
	notifier  Notifier
}

func NewAssignmentService(leads *LeadService, employees EmployeeStore, notifier Notifier) *AssignmentService {
	return &AssignmentService{leads: leads, employees: employees, notifier: notifier}
}

type AssignInput struct {
	TargetUserType string
	TargetID       int
	Priority       string
	Feedback       string
	NextAction     string
	// Optional status change, applied through the lifecycle engine under the
	// same per-lead lock. Zero means "leave the status alone".
	StatusID     int
	FollowupDate *time.Time
	ActionDate   *time.Time
}

// Assign routes a lead to an employee or channel partner. Builder accounts may
// pick any active user of an assignable role in their organization; everyone
// else may only claim a lead for themselves.
func (s *AssignmentService) Assign(ctx context.Context, actor Actor, leadID int, in AssignInput) (*models.Lead, error) {
	if !models.ValidPriority(in.Priority) {
		return nil, ErrInvalidPriority
	}
	if !authz.IsAssignableRole(in.TargetUserType) {
		return nil, ErrInvalidTargetRole
	}

	unlock := s.leads.locks.lock(leadID)
	defer unlock()

	lead, err := s.leads.getOwned(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	if lead.Booked {
		return nil, ErrAlreadyBooked
	}
	if current, ok := s.leads.statuses.Get(lead.StatusID); ok && current.Terminal {
		return nil, ErrLeadTerminal
	}
	if !authz.IsOwnerRole(actor.UserType) {
		// Self-claim only: the lead is already in (or routed to) the actor's
		// queue, checked by getOwned above.
		if in.TargetID != actor.ID || in.TargetUserType != actor.UserType {
			return nil, ErrUnauthorizedActor
		}
	}

	target, err := s.employees.GetByID(ctx, in.TargetID)
	if err != nil {
		return nil, err
	}
	if target == nil || !target.Active || target.BuilderID != lead.AddedUserID {
		return nil, ErrTargetNotFound
	}
	if target.UserType != in.TargetUserType {
		return nil, ErrInvalidTargetRole
	}

	assigned := *lead
	assigned.AssignedUserType = target.UserType
	assigned.AssignedID = target.ID
	assigned.AssignedName = target.Name
	assigned.AssignedEmpNumber = target.EmpNumber
	assigned.AssignedPriority = in.Priority
	assigned.UpdatedAt = s.leads.now()

	// When a status change rides along, every transition precondition must
	// hold before the assignment itself is committed.
	var tin TransitionInput
	if in.StatusID != 0 {
		st, ok := s.leads.statuses.Get(in.StatusID)
		if !ok {
			return nil, ErrStatusNotFound
		}
		tin = TransitionInput{
			NewStatusID:  in.StatusID,
			Feedback:     in.Feedback,
			NextAction:   in.NextAction,
			FollowupDate: in.FollowupDate,
			ActionDate:   in.ActionDate,
		}
		if err := s.leads.checkTransition(&assigned, st, tin); err != nil {
			return nil, err
		}
	}

	if err := s.leads.store.UpdateAssignment(ctx, &assigned); err != nil {
		return nil, err
	}
	if in.StatusID != 0 {
		if _, err := s.leads.transitionLocked(ctx, actor, &assigned, tin); err != nil {
			return nil, err
		}
	}

	// Notify only once everything is committed; a failed status change must not
	// announce the assignment.
	if s.notifier != nil {
		s.notifier.LeadAssigned(&assigned, target)
	}
	return &assigned, nil
}

// EligibleTargets lists the active users a builder may route a lead to for one
// target role.
func (s *AssignmentService) EligibleTargets(ctx context.Context, actor Actor, targetUserType string) ([]models.Employee, error) {
	if !authz.IsAssignableRole(targetUserType) {
		return nil, ErrInvalidTargetRole
	}
	if !authz.IsOwnerRole(actor.UserType) {
		return nil, ErrUnauthorizedActor
	}
	return s.employees.ListActiveByRole(ctx, actor.BuilderID, targetUserType)
}
