// Package domain contains core concepts of the correspondence system.
// Statuses, delete events and their identity rules live here; everything
// is immutable once created.
package domain

// Status is a lifecycle status code of a correspondence.
type Status string

const (
	StatusInitialized       Status = "Initialized"
	StatusPublished         Status = "Published"
	StatusRead              Status = "Read"
	StatusConfirmed         Status = "Confirmed"
	StatusArchived          Status = "Archived"
	StatusPurgedByRecipient Status = "PurgedByRecipient"
	StatusPurgedByAltinn    Status = "PurgedByAltinn"
	StatusFailed            Status = "Failed"
)

// syncableStatuses are the only status codes accepted through the
// Altinn 2 sync pathway. Everything else arriving there is upstream
// noise and is dropped, never rejected with an error.
var syncableStatuses = []Status{StatusRead, StatusConfirmed, StatusArchived}

// Syncable reports whether this status may be ingested via sync.
func (s Status) Syncable() bool {
	for _, valid := range syncableStatuses {
		if s == valid {
			return true
		}
	}
	return false
}

// Purged reports whether this status code represents a purge,
// regardless of who triggered it.
func (s Status) Purged() bool {
	return s == StatusPurgedByRecipient || s == StatusPurgedByAltinn
}

// DeleteKind discriminates the delete events coming from Altinn 2.
type DeleteKind string

const (
	HardDeletedByOperator  DeleteKind = "HardDeletedByOperator"
	HardDeletedByRecipient DeleteKind = "HardDeletedByRecipient"
	SoftDeletedByRecipient DeleteKind = "SoftDeletedByRecipient"
	RestoredByRecipient    DeleteKind = "RestoredByRecipient"
)

// Hard reports whether this kind triggers a purge.
func (k DeleteKind) Hard() bool {
	return k == HardDeletedByOperator || k == HardDeletedByRecipient
}

// SystemLabel is a dialog label managed on behalf of the recipient.
type SystemLabel string

const (
	LabelBin     SystemLabel = "Bin"
	LabelArchive SystemLabel = "Archive"
)

// BusEventType tags the events published on the event bus.
type BusEventType string

const (
	BusReceiverConfirmed BusEventType = "ReceiverConfirmed"
	BusReceiverRead      BusEventType = "ReceiverRead"
	BusPurged            BusEventType = "Purged"
)
