package projection

import (
	"sort"
	"time"

	"correspondence-lab/domain"
)

// Entry is one element of the merged timeline: exactly one of Status or
// Delete is set. Status and delete events interact causally (a restore
// must not re-open a later purge), so they are replayed as one sequence.
type Entry struct {
	At     time.Time
	Status *domain.StatusEvent
	Delete *domain.DeleteEvent
}

// Timeline is the chronologically ordered sequence of status and delete
// events for one correspondence.
type Timeline struct {
	Entries []Entry
}

// Merge combines already-deduplicated status and delete events into one
// timeline sorted ascending by event timestamp. The sort is stable: at
// identical timestamps relative input order wins. The system has no
// stronger clock than these timestamps, so input order is the documented
// approximation of causality for ties.
func Merge(statuses []domain.StatusEvent, deletes []domain.DeleteEvent) Timeline {
	entries := make([]Entry, 0, len(statuses)+len(deletes))
	for i := range statuses {
		e := statuses[i]
		entries = append(entries, Entry{At: e.StatusChanged, Status: &e})
	}
	for i := range deletes {
		e := deletes[i]
		entries = append(entries, Entry{At: e.EventOccurred, Delete: &e})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].At.Before(entries[j].At)
	})
	return Timeline{Entries: entries}
}
