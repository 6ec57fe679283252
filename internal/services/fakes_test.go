package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"estatecrm/internal/authz"
	"estatecrm/internal/models"
)

// Catalog ids as seeded in db/schema.sql.
const (
	statusNew        = 1
	statusOpen       = 2
	statusFollowUp   = 3
	statusInProgress = 4
	statusVisitPlan  = 5
	statusVisitDone  = 6
	statusWon        = 7
	statusLost       = 8
	statusRevoked    = 9
)

var testNow = time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)

// fakeStore is an in-memory implementation of every store interface, with the
// same atomicity and not-found semantics as the SQL layer. insertErr and
// applyErr simulate a failed transaction: the call returns the error and
// commits nothing.
type fakeStore struct {
	mu          sync.Mutex
	leads       map[int]*models.Lead
	updates     map[int][]models.LeadUpdate
	bookings    map[int]*models.Booking
	employees   map[int]*models.Employee
	statuses    []models.LeadStatus
	nextLead    int
	nextUpdate  int
	nextBooking int
	insertErr   error
	applyErr    error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		leads:     make(map[int]*models.Lead),
		updates:   make(map[int][]models.LeadUpdate),
		bookings:  make(map[int]*models.Booking),
		employees: make(map[int]*models.Employee),
	}
}

func (f *fakeStore) Insert(_ context.Context, lead *models.Lead, entry *models.LeadUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.nextLead++
	lead.ID = f.nextLead
	cp := *lead
	f.leads[lead.ID] = &cp
	f.nextUpdate++
	entry.LeadID = lead.ID
	entry.ID = f.nextUpdate
	f.updates[lead.ID] = append(f.updates[lead.ID], *entry)
	return nil
}

func (f *fakeStore) GetByID(_ context.Context, id int) (*models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[id]
	if !ok {
		return nil, ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

func (f *fakeStore) Filter(_ context.Context, flt models.LeadFilter) ([]models.Lead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Lead
	for _, lead := range f.leads {
		if lead.AddedUserType != flt.OwnerType || lead.AddedUserID != flt.OwnerID {
			continue
		}
		if lead.Booked != flt.Booked {
			continue
		}
		if flt.AssigneeID > 0 && (lead.AssignedID != flt.AssigneeID || lead.AssignedUserType != flt.AssigneeType) {
			continue
		}
		if flt.StatusID > 0 && lead.StatusID != flt.StatusID {
			continue
		}
		if flt.City != "" && !strings.EqualFold(lead.City, flt.City) {
			continue
		}
		if flt.Search != "" && !leadMatches(lead, flt.Search) {
			continue
		}
		if flt.CreatedFrom != nil && dateOnly(lead.CreatedAt).Before(dateOnly(*flt.CreatedFrom)) {
			continue
		}
		if flt.CreatedTo != nil && dateOnly(lead.CreatedAt).After(dateOnly(*flt.CreatedTo)) {
			continue
		}
		if flt.UpdatedFrom != nil && dateOnly(lead.UpdatedAt).Before(dateOnly(*flt.UpdatedFrom)) {
			continue
		}
		if flt.UpdatedTo != nil && dateOnly(lead.UpdatedAt).After(dateOnly(*flt.UpdatedTo)) {
			continue
		}
		out = append(out, *lead)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func leadMatches(lead *models.Lead, term string) bool {
	term = strings.ToLower(term)
	for _, v := range []string{
		lead.CustomerName, lead.CustomerPhone, lead.CustomerEmail,
		lead.InterestedProjectName, lead.AssignedName,
	} {
		if strings.Contains(strings.ToLower(v), term) {
			return true
		}
	}
	return false
}

func (f *fakeStore) UpdateAssignment(_ context.Context, lead *models.Lead) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.leads[lead.ID]
	if !ok {
		return ErrLeadNotFound
	}
	stored.AssignedUserType = lead.AssignedUserType
	stored.AssignedID = lead.AssignedID
	stored.AssignedName = lead.AssignedName
	stored.AssignedEmpNumber = lead.AssignedEmpNumber
	stored.AssignedPriority = lead.AssignedPriority
	stored.UpdatedAt = lead.UpdatedAt
	return nil
}

func (f *fakeStore) ApplyTransition(_ context.Context, lead *models.Lead, entry *models.LeadUpdate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.leads[lead.ID]
	if !ok {
		return ErrLeadNotFound
	}
	if stored.Booked || stored.StatusID != lead.StatusID {
		return ErrLeadModified
	}
	if f.applyErr != nil {
		return f.applyErr
	}
	f.nextUpdate++
	entry.ID = f.nextUpdate
	f.updates[lead.ID] = append(f.updates[lead.ID], *entry)
	stored.StatusID = entry.StatusID
	stored.UpdatedAt = entry.CreatedAt
	lead.StatusID = entry.StatusID
	lead.UpdatedAt = entry.CreatedAt
	return nil
}

func (f *fakeStore) ListByLead(_ context.Context, leadID int) ([]models.LeadUpdate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.LeadUpdate, len(f.updates[leadID]))
	copy(out, f.updates[leadID])
	return out, nil
}

func (f *fakeStore) List(_ context.Context) ([]models.LeadStatus, error) {
	out := make([]models.LeadStatus, len(f.statuses))
	copy(out, f.statuses)
	return out, nil
}

func (f *fakeStore) ListActiveByRole(_ context.Context, builderID int, userType string) ([]models.Employee, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Employee
	for _, e := range f.employees {
		if e.BuilderID == builderID && e.UserType == userType && e.Active {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) CreateForLead(_ context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	lead, ok := f.leads[booking.LeadID]
	if !ok {
		return ErrLeadNotFound
	}
	if lead.Booked {
		return ErrAlreadyBooked
	}
	f.nextBooking++
	booking.ID = f.nextBooking
	cp := *booking
	f.bookings[booking.LeadID] = &cp
	lead.Booked = true
	lead.Sqft = booking.Sqft
	lead.Budget = booking.Budget
	lead.UpdatedAt = booking.CreatedAt
	return nil
}

func (f *fakeStore) GetByLeadID(_ context.Context, leadID int) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[leadID]
	if !ok {
		return nil, ErrLeadNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) ListByBuilder(_ context.Context, builderID int) ([]models.BookedLead, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BookedLead
	for leadID, b := range f.bookings {
		lead := f.leads[leadID]
		if lead == nil || lead.AddedUserID != builderID {
			continue
		}
		out = append(out, models.BookedLead{Lead: *lead, Booking: *b})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Booking.ID < out[j].Booking.ID })
	return out, nil
}

type fixture struct {
	store    *fakeStore
	statuses *StatusService
	leads    *LeadService
	ledger   *LedgerService
	assigns  *AssignmentService
	bookings *BookingService
	notes    *recordingNotifier
}

// Fixed actors, matching the employees seeded below.
var (
	builderActor    = Actor{ID: 1, UserType: authz.RoleBuilder, BuilderID: 1}
	telecallerActor = Actor{ID: 2, UserType: authz.RoleTelecaller, BuilderID: 1}
	partnerActor    = Actor{ID: 3, UserType: authz.RoleChannelPartner, BuilderID: 1}
)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	fs := newFakeStore()
	fs.statuses = []models.LeadStatus{
		{ID: statusNew, Name: "New", SortOrder: 1},
		{ID: statusOpen, Name: "Open", SortOrder: 2},
		{ID: statusFollowUp, Name: "Today Follow-up", SortOrder: 3, RequiresFollowupDate: true},
		{ID: statusInProgress, Name: "In Progress", SortOrder: 4, RequiresFollowupDate: true},
		{ID: statusVisitPlan, Name: "Site-Visit Scheduled", SortOrder: 5},
		{ID: statusVisitDone, Name: "Site-Visit Done", SortOrder: 6},
		{ID: statusWon, Name: "Won", SortOrder: 7, Terminal: true},
		{ID: statusLost, Name: "Lost", SortOrder: 8, Terminal: true},
		{ID: statusRevoked, Name: "Revoked", SortOrder: 9, Terminal: true},
	}
	for _, e := range []*models.Employee{
		{ID: 1, UserType: authz.RoleBuilder, Name: "Asha", Phone: "900000001", Email: "asha@example.com", BuilderID: 1, Active: true},
		{ID: 2, UserType: authz.RoleTelecaller, Name: "Tara", Phone: "900000002", Email: "tara@example.com", EmpNumber: "T-102", BuilderID: 1, Active: true},
		{ID: 3, UserType: authz.RoleChannelPartner, Name: "Prakash", Phone: "900000003", BuilderID: 1, Active: true},
		{ID: 4, UserType: authz.RoleSalesManager, Name: "Meera", Phone: "900000004", EmpNumber: "SM-7", BuilderID: 1, Active: true},
		{ID: 5, UserType: authz.RoleTelecaller, Name: "Iris", BuilderID: 1, Active: false},
		{ID: 6, UserType: authz.RoleTelecaller, Name: "Uma", EmpNumber: "T-103", BuilderID: 1, Active: true},
		{ID: 8, UserType: authz.RoleTelecaller, Name: "Zoe", BuilderID: 2, Active: true},
	} {
		fs.employees[e.ID] = e
	}

	statuses := NewStatusService(fs)
	require.NoError(t, statuses.Load(context.Background()))

	leads := NewLeadService(fs, statuses, employeeStoreFunc{fs})
	leads.now = func() time.Time { return testNow }

	notes := &recordingNotifier{}
	return &fixture{
		store:    fs,
		statuses: statuses,
		leads:    leads,
		ledger:   NewLedgerService(leads, fs, statuses),
		assigns:  NewAssignmentService(leads, employeeStoreFunc{fs}, notes),
		bookings: NewBookingService(leads, fs, notes),
		notes:    notes,
	}
}

// recordingNotifier captures notification fan-out for assertions.
type recordingNotifier struct {
	mu       sync.Mutex
	assigned []int
	booked   []int
}

func (n *recordingNotifier) LeadAssigned(lead *models.Lead, _ *models.Employee) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.assigned = append(n.assigned, lead.ID)
}

func (n *recordingNotifier) LeadBooked(lead *models.Lead, _ *models.Employee, _ *models.Booking) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, lead.ID)
}

func (n *recordingNotifier) assignedLeads() []int {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]int, len(n.assigned))
	copy(out, n.assigned)
	return out
}

// employeeStoreFunc exposes the fake employee map through the store interface.
type employeeStoreFunc struct{ fs *fakeStore }

func (s employeeStoreFunc) GetByID(_ context.Context, id int) (*models.Employee, error) {
	s.fs.mu.Lock()
	defer s.fs.mu.Unlock()
	e, ok := s.fs.employees[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s employeeStoreFunc) ListActiveByRole(ctx context.Context, builderID int, userType string) ([]models.Employee, error) {
	return s.fs.ListActiveByRole(ctx, builderID, userType)
}

func (f *fixture) createLead(t *testing.T, actor Actor) *models.Lead {
	t.Helper()
	lead, err := f.leads.Create(context.Background(), actor, CreateLeadInput{
		CustomerName:          "Ravi Kumar",
		CustomerPhone:         "9876543210",
		CustomerEmail:         "ravi@example.com",
		InterestedProjectID:   12,
		InterestedProjectName: "Lake View Residency",
		LeadSourceID:          1,
		City:                  "Pune",
	})
	require.NoError(t, err)
	return lead
}

func (f *fixture) assignToTelecaller(t *testing.T, leadID int) *models.Lead {
	t.Helper()
	lead, err := f.assigns.Assign(context.Background(), builderActor, leadID, AssignInput{
		TargetUserType: authz.RoleTelecaller,
		TargetID:       2,
		Priority:       models.PriorityHigh,
	})
	require.NoError(t, err)
	return lead
}

func datePtr(t time.Time) *time.Time { return &t }
