package service

import "sync"

// userLocks hands out one mutex per user ID. Consume and refill both run a
// read-balance-then-append sequence against the ledger; without per-user
// serialization two concurrent calls can observe the same balanceBefore and
// append conflicting rows. The database holds each append atomic, but only
// this lock makes the read-then-append pair atomic per user.
//
// Locks are never released from the map. The entry is a bare sync.Mutex
// (16 bytes) and the user set is bounded, so eviction bookkeeping is not
// worth the complexity.
type userLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newUserLocks() *userLocks {
	return &userLocks{locks: make(map[string]*sync.Mutex)}
}

func (l *userLocks) lock(userID string) func() {
	l.mu.Lock()
	m, ok := l.locks[userID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[userID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
