package services

import "sync"

// lockTable serializes writers per lead id. The store-level status check in
// ApplyTransition still protects against other processes; this keeps a single
// process from interleaving its own transition/assign/book calls on one lead.
type lockTable struct {
	mu    sync.Mutex
	locks map[int]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{locks: make(map[int]*lockEntry)}
}

// lock blocks until the per-lead lock is held and returns the release func.
func (t *lockTable) lock(leadID int) func() {
	t.mu.Lock()
	e, ok := t.locks[leadID]
	if !ok {
		e = &lockEntry{}
		t.locks[leadID] = e
	}
	e.refs++
	t.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()
		t.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(t.locks, leadID)
		}
		t.mu.Unlock()
	}
}
