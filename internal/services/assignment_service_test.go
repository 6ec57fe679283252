package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estatecrm/internal/authz"
	"estatecrm/internal/models"
)

func TestAssignRejectsUnknownRole(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	_, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
		TargetUserType: "Janitor",
		TargetID:       2,
		Priority:       models.PriorityHigh,
	})
	assert.ErrorIs(t, err, ErrInvalidTargetRole)

	got, err := f.leads.Get(context.Background(), builderActor, lead.ID)
	require.NoError(t, err)
	assert.False(t, got.Assigned(), "failed assignment must not mutate the lead")
}

func TestAssignRejectsBadPriority(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	_, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       "Urgent",
	})
	assert.ErrorIs(t, err, ErrInvalidPriority)
}

func TestAssignTargetValidation(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name     string
		targetID int
		role     string
		want     error
	}{
		{"inactive user", 5, authz.RoleTelecaller, ErrTargetNotFound},
		{"unknown user", 77, authz.RoleTelecaller, ErrTargetNotFound},
		{"user of another builder", 8, authz.RoleTelecaller, ErrTargetNotFound},
		{"role mismatch", 4, authz.RoleTelecaller, ErrInvalidTargetRole},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lead := f.createLead(t, builderActor)
			_, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
				TargetUserType: tc.role,
				TargetID:       tc.targetID,
				Priority:       models.PriorityLow,
			})
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAssignFirstAssignment(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	got := f.assignToTelecaller(t, lead.ID)
	assert.Equal(t, 2, got.AssignedID)
	assert.Equal(t, authz.RoleTelecaller, got.AssignedUserType)
	assert.Equal(t, "Tara", got.AssignedName)
	assert.Equal(t, "T-102", got.AssignedEmpNumber)
	assert.Equal(t, models.PriorityHigh, got.AssignedPriority)
	assert.Equal(t, statusNew, got.StatusID, "assignment alone leaves the status untouched")
}

func TestNonOwnerMayOnlySelfClaim(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	// Arbitrary target is a builder-only operation.
	_, err := f.assigns.Assign(context.Background(), telecallerActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleSalesManager,
		TargetID:       4,
		Priority:       models.PriorityHigh,
	})
	assert.ErrorIs(t, err, ErrUnauthorizedActor)

	// Claiming the unassigned lead for yourself works.
	got, err := f.assigns.Assign(context.Background(), telecallerActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityMedium,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got.AssignedID)

	// A lead in someone else's queue cannot be claimed.
	other := f.createLead(t, builderActor)
	_, err = f.assigns.Assign(context.Background(), builderActor, other.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       6,
		Priority:       models.PriorityLow,
	})
	require.NoError(t, err)
	_, err = f.assigns.Assign(context.Background(), telecallerActor, other.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityLow,
	})
	assert.ErrorIs(t, err, ErrUnauthorizedActor)
}

func TestReassignmentAllowedWhileActive(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)
	f.assignToTelecaller(t, lead.ID)

	got, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleSalesManager,
		TargetID:       4,
		Priority:       models.PriorityLow,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, got.AssignedID)
	assert.Equal(t, authz.RoleSalesManager, got.AssignedUserType)
}

func TestAssignWithStatusChange(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	got, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityHigh,
		Feedback:       "handed to telecalling",
		NextAction:     "first call",
		StatusID:       statusOpen,
		ActionDate:     datePtr(testNow),
	})
	require.NoError(t, err)
	assert.Equal(t, statusOpen, got.StatusID)

	history, err := f.ledger.History(context.Background(), builderActor, lead.ID)
	require.NoError(t, err)
	assert.Equal(t, statusOpen, history[len(history)-1].StatusID)
}

func TestAssignWithBadStatusChangeCommitsNothing(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	// The transition precondition fails (no feedback), so the assignment must
	// not be committed either.
	_, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityHigh,
		StatusID:       statusOpen,
		ActionDate:     datePtr(testNow),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "feedback", ve.Field)

	got, err := f.leads.Get(context.Background(), builderActor, lead.ID)
	require.NoError(t, err)
	assert.False(t, got.Assigned())
	assert.Equal(t, statusNew, got.StatusID)
}

// The assignment announcement goes out only after every write committed; a
// failed ride-along status change must stay silent.
func TestAssignNotifiesOnlyAfterStatusCommit(t *testing.T) {
	f := newFixture(t)
	lead := f.createLead(t, builderActor)

	in := AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityHigh,
		Feedback:       "handed to telecalling",
		NextAction:     "first call",
		StatusID:       statusOpen,
		ActionDate:     datePtr(testNow),
	}

	f.store.applyErr = errors.New("transition write failed")
	_, err := f.assigns.Assign(context.Background(), builderActor, lead.ID, in)
	require.Error(t, err)
	assert.Empty(t, f.notes.assignedLeads())

	f.store.applyErr = nil
	_, err = f.assigns.Assign(context.Background(), builderActor, lead.ID, in)
	require.NoError(t, err)
	assert.Equal(t, []int{lead.ID}, f.notes.assignedLeads())
}

func TestEligibleTargets(t *testing.T) {
	f := newFixture(t)

	targets, err := f.assigns.EligibleTargets(context.Background(), builderActor, authz.RoleTelecaller)
	require.NoError(t, err)
	require.Len(t, targets, 2)
	assert.Equal(t, "Tara", targets[0].Name)
	assert.Equal(t, "Uma", targets[1].Name)

	_, err = f.assigns.EligibleTargets(context.Background(), builderActor, "Janitor")
	assert.ErrorIs(t, err, ErrInvalidTargetRole)

	_, err = f.assigns.EligibleTargets(context.Background(), telecallerActor, authz.RoleTelecaller)
	assert.ErrorIs(t, err, ErrUnauthorizedActor)
}
