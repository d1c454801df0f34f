package wager

import "sync"

// accountLocks hands out one mutex per account. Multi-step game flows
// hold it across the session get-mutate-put so actions for the same
// account never interleave. Entries are never removed; the map is
// bounded by the number of accounts seen by this process.
type accountLocks struct {
	mu sync.Mutex
	m  map[uint64]*sync.Mutex
}

func (l *accountLocks) forAccount(accountID uint64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.m == nil {
		l.m = make(map[uint64]*sync.Mutex)
	}

	lock, ok := l.m[accountID]
	if !ok {
		lock = &sync.Mutex{}
		l.m[accountID] = lock
	}

	return lock
}
