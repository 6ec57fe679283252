package services

import (
	"context"

	"estatecrm/internal/models"
)

// LedgerService reads a lead's append-only history and derives the timeline
// markers shown against it.
type LedgerService struct {
	leads    *LeadService
	ledger   LedgerStore
	statuses *StatusService
}

func NewLedgerService(leads *LeadService, ledger LedgerStore, statuses *StatusService) *LedgerService {
	return &LedgerService{leads: leads, ledger: ledger, statuses: statuses}
}

// History returns the lead's ledger entries ordered by creation time
// ascending.
func (s *LedgerService) History(ctx context.Context, actor Actor, leadID int) ([]models.LeadUpdate, error) {
	if _, err := s.leads.getOwned(ctx, actor, leadID); err != nil {
		return nil, err
	}
	return s.ledger.ListByLead(ctx, leadID)
}

// Timeline is History with a derived step marker per entry: completed when the
// entry's status sorts before the lead's current status, current when equal,
// pending otherwise. The markers are never stored.
func (s *LedgerService) Timeline(ctx context.Context, actor Actor, leadID int) ([]models.TimelineEntry, error) {
	lead, err := s.leads.getOwned(ctx, actor, leadID)
	if err != nil {
		return nil, err
	}
	entries, err := s.ledger.ListByLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	currentRank := s.rank(lead.StatusID)
	out := make([]models.TimelineEntry, 0, len(entries))
	for _, e := range entries {
		step := models.StepPending
		switch rank := s.rank(e.StatusID); {
		case rank == currentRank:
			step = models.StepCurrent
		case rank < currentRank:
			step = models.StepCompleted
		}
		out = append(out, models.TimelineEntry{LeadUpdate: e, Step: step})
	}
	return out, nil
}

// rank falls back to the raw status id when the catalog misses an entry, which
// matches the legacy ordering for catalogs seeded in lifecycle order.
func (s *LedgerService) rank(statusID int) int {
	if st, ok := s.statuses.Get(statusID); ok {
		return st.SortOrder
	}
	return statusID
}
