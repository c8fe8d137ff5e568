package domain

import (
	"github.com/google/uuid"
)

// ReferenceKind discriminates the external references attached to a
// correspondence.
type ReferenceKind string

const (
	ReferenceDialogID        ReferenceKind = "DialogID"
	ReferenceAltinn2Resource ReferenceKind = "Altinn2ResourceID"
)

// ExternalReference links a correspondence to an entity in another system.
type ExternalReference struct {
	Kind  ReferenceKind
	Value string
}

// Correspondence is the aggregate root: one piece of official digital
// correspondence with its lifecycle collections. The collections are
// append-only; events are never mutated or deleted.
type Correspondence struct {
	ID         uuid.UUID
	ResourceID string
	Sender     string
	Recipient  string

	// Migrating suppresses external side effects while historical data
	// is being backfilled. Owned by the migration flow, read-only here.
	Migrating bool

	StatusHistory      []StatusEvent
	DeleteEvents       []DeleteEvent
	Notifications      []NotificationEvent
	ForwardingEvents   []ForwardingEvent
	ExternalReferences []ExternalReference
}

// StatusHasBeen reports whether the loaded history contains the given
// status code.
func (c Correspondence) StatusHasBeen(s Status) bool {
	for _, e := range c.StatusHistory {
		if e.Status == s {
			return true
		}
	}
	return false
}

// DialogID returns the dialog reference of this correspondence, if any.
func (c Correspondence) DialogID() (string, bool) {
	for _, ref := range c.ExternalReferences {
		if ref.Kind == ReferenceDialogID {
			return ref.Value, true
		}
	}
	return "", false
}

// SoftDeleted derives the current soft-delete state from a set of delete
// events: soft-deleted iff the newest SoftDeleted event is strictly newer
// than the newest Restored event (or no Restored event exists). The state
// is never stored directly.
func SoftDeleted(events []DeleteEvent) bool {
	var lastSoftDelete, lastRestore *DeleteEvent
	for i := range events {
		e := events[i]
		switch e.Kind {
		case SoftDeletedByRecipient:
			if lastSoftDelete == nil || e.EventOccurred.After(lastSoftDelete.EventOccurred) {
				lastSoftDelete = &e
			}
		case RestoredByRecipient:
			if lastRestore == nil || e.EventOccurred.After(lastRestore.EventOccurred) {
				lastRestore = &e
			}
		}
	}
	if lastSoftDelete == nil {
		return false
	}
	if lastRestore == nil {
		return true
	}
	return lastSoftDelete.EventOccurred.After(lastRestore.EventOccurred)
}
