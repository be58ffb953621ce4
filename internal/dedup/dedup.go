// Package dedup tracks which reminders have already been delivered within
// the lifetime of the running process. Keys scope a delivery to an entity
// and a calendar unit (minute for the client matcher, hour for the server
// scans); nothing is persisted, so a restart forgets all deliveries.
package dedup

import (
	"fmt"
	"sync"
	"time"
)

// Key identifies one delivered notification: (kind, entity id, day, unit).
type Key string

// NewKey builds a dedup key. unit is the clock component that scopes the
// delivery, e.g. "08:00" for a minute match or "08" for an hourly scan.
func NewKey(kind string, id uint, day, unit string) Key {
	return Key(fmt.Sprintf("%s:%d:%s:%s", kind, id, day, unit))
}

// Tracker is a process-lifetime set of delivered keys. It is safe for
// concurrent use; cron jobs may overlap with themselves.
type Tracker struct {
	mu   sync.Mutex
	seen map[Key]time.Time
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{seen: make(map[Key]time.Time)}
}

// MarkOnce records k at time at, returning true only the first time k is
// seen. Callers deliver only on true, making delivery at-most-once per key.
func (t *Tracker) MarkOnce(k Key, at time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.seen[k]; ok {
		return false
	}
	t.seen[k] = at
	return true
}

// Seen reports whether k has been recorded.
func (t *Tracker) Seen(k Key) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.seen[k]
	return ok
}

// Prune drops entries recorded before the cutoff and returns how many were
// removed. Collisions only matter within a day, so pruning anything older
// than a day or two bounds memory without affecting correctness.
func (t *Tracker) Prune(before time.Time) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	removed := 0
	for k, at := range t.seen {
		if at.Before(before) {
			delete(t.seen, k)
			removed++
		}
	}
	return removed
}

// Len returns the number of recorded keys.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seen)
}
