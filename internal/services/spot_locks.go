package services

import "sync"

// spotLocks provides per-spot mutual exclusion. The availability-check-then-
// insert sequence must be atomic per spot; holding the spot's mutex for the
// duration of that sequence guarantees two concurrent bookings of the same
// spot serialize, while operations on different spots never contend.
type spotLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newSpotLocks() *spotLocks {
	return &spotLocks{locks: make(map[string]*sync.Mutex)}
}

// lock acquires the mutex for spotID, creating it on first use, and returns
// the matching unlock function.
func (l *spotLocks) lock(spotID string) func() {
	l.mu.Lock()
	m, ok := l.locks[spotID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[spotID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
