package pipeline

import (
	"sync"
)

// docLocks serializes synchronizations per document ID. A second sync for the
// same ID is rejected rather than queued; the caller retries once the
// in-flight one finishes.
type docLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

func newDocLocks() *docLocks {
	return &docLocks{held: make(map[string]struct{})}
}

// tryAcquire reports whether the lock for id was free and is now held.
func (l *docLocks) tryAcquire(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[id]; ok {
		return false
	}
	l.held[id] = struct{}{}
	return true
}

func (l *docLocks) release(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, id)
}
