package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"estatecrm/internal/models"
)

// StatusService caches the status catalog for the process lifetime. The
// catalog is reference data: the engine only ever reads it.
type StatusService struct {
	store StatusStore

	mu      sync.RWMutex
	byID    map[int]models.LeadStatus
	ordered []models.LeadStatus
}

func NewStatusService(store StatusStore) *StatusService {
	return &StatusService{store: store, byID: make(map[int]models.LeadStatus)}
}

// Load fetches the catalog from the store. Called once at startup; calling it
// again replaces the cache wholesale.
func (s *StatusService) Load(ctx context.Context) error {
	statuses, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load status catalog: %w", err)
	}
	if len(statuses) == 0 {
		return fmt.Errorf("status catalog is empty")
	}

	byID := make(map[int]models.LeadStatus, len(statuses))
	ordered := make([]models.LeadStatus, len(statuses))
	copy(ordered, statuses)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].SortOrder < ordered[j].SortOrder })
	for _, st := range ordered {
		byID[st.ID] = st
	}

	s.mu.Lock()
	s.byID = byID
	s.ordered = ordered
	s.mu.Unlock()
	return nil
}

func (s *StatusService) Get(id int) (models.LeadStatus, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.byID[id]
	return st, ok
}

// Initial returns the catalog entry new leads start in: the lowest sort order.
func (s *StatusService) Initial() models.LeadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ordered[0]
}

func (s *StatusService) List() []models.LeadStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.LeadStatus, len(s.ordered))
	copy(out, s.ordered)
	return out
}
