package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"correspondence-lab/contract"
	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"
	"correspondence-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SideEffects applies one timeline element: persists its row(s) and
// resolves the deferred jobs it implies. Job enqueueing goes through the
// caller's transaction, so a failing element rolls everything back.
//
// All external side effects are suppressed while the correspondence is
// migrating; the rows are still persisted.
type SideEffects struct {
	log      *slog.Logger
	statuses repositories.IStatusRepository
	deletes  repositories.IDeleteEventRepository
	jobs     repositories.IJobQueue
	purger   contract.IAttachmentPurger
}

func NewSideEffects(
	log *slog.Logger,
	statuses repositories.IStatusRepository,
	deletes repositories.IDeleteEventRepository,
	jobs repositories.IJobQueue,
	purger contract.IAttachmentPurger,
) SideEffects {
	return SideEffects{log: log, statuses: statuses, deletes: deletes, jobs: jobs, purger: purger}
}

func syncedText(status domain.Status) string {
	return fmt.Sprintf("Synced event %s from Altinn 2", status)
}

// ApplyStatusEvent persists the status row and enqueues its side-effect
// jobs. Returns whether the row was actually persisted (false for a
// duplicate caught by the store).
func (s SideEffects) ApplyStatusEvent(ctx context.Context, txn *badger.Txn, c domain.Correspondence, endUsers map[uuid.UUID]string, event domain.StatusEvent) (bool, error) {
	s.log.Debug("Applying status event", "correspondence_id", c.ID,
		"status", event.Status, "status_changed", event.StatusChanged)

	event.StatusText = syncedText(event.Status)
	event.SyncedAt = lo.ToPtr(time.Now().UTC())
	saved, err := s.statuses.Add(txn, c.ID, event)
	if err != nil {
		return false, err
	}
	if !saved || c.Migrating {
		return saved, nil
	}

	switch event.Status {
	case domain.StatusConfirmed:
		patchID, err := s.jobs.Enqueue(txn, repositories.Job{
			Kind:             repositories.JobDialogPatchConfirmed,
			CorrespondenceID: c.ID,
		})
		if err != nil {
			return false, err
		}
		if endUserID, ok := endUsers[event.PartyUUID]; ok {
			// Operation time is when the status changed in Altinn 2, not now.
			_, err = s.jobs.ContinueWith(txn, patchID, repositories.Job{
				Kind:             repositories.JobDialogConfirmedActivity,
				CorrespondenceID: c.ID,
				EndUserID:        endUserID,
				OperationTime:    event.StatusChanged,
			})
			if err != nil {
				return false, err
			}
		} else {
			s.log.Warn("Skipping confirmed activity, no end-user identifier for party",
				"correspondence_id", c.ID, "party_uuid", event.PartyUUID)
		}
		if _, err = s.jobs.Enqueue(txn, s.busJob(c, domain.BusReceiverConfirmed)); err != nil {
			return false, err
		}

	case domain.StatusRead:
		if endUserID, ok := endUsers[event.PartyUUID]; ok {
			_, err = s.jobs.Enqueue(txn, repositories.Job{
				Kind:             repositories.JobDialogOpenedActivity,
				CorrespondenceID: c.ID,
				EndUserID:        endUserID,
				OperationTime:    event.StatusChanged,
			})
			if err != nil {
				return false, err
			}
		} else {
			s.log.Warn("Skipping opened activity, no end-user identifier for party",
				"correspondence_id", c.ID, "party_uuid", event.PartyUUID)
		}
		if _, err = s.jobs.Enqueue(txn, s.busJob(c, domain.BusReceiverRead)); err != nil {
			return false, err
		}

	case domain.StatusArchived:
		endUserID, ok := endUsers[event.PartyUUID]
		if !ok {
			s.log.Warn("Skipping Archive label, no end-user identifier for party",
				"correspondence_id", c.ID, "party_uuid", event.PartyUUID)
			break
		}
		_, err = s.jobs.Enqueue(txn, repositories.Job{
			Kind:             repositories.JobDialogUpdateLabels,
			CorrespondenceID: c.ID,
			EndUserID:        endUserID,
			AddLabels:        []domain.SystemLabel{domain.LabelArchive},
		})
		if err != nil {
			return false, err
		}

	default:
		// The sync whitelist keeps these out upstream; fail-soft anyway.
		s.log.Warn("Unsupported status event reached side-effect resolution, ignoring",
			"correspondence_id", c.ID, "status", event.Status)
	}
	return true, nil
}

// ApplyDeleteEvent dispatches on the delete kind. Returns whether the
// delete event row was persisted.
func (s SideEffects) ApplyDeleteEvent(ctx context.Context, txn *badger.Txn, c domain.Correspondence, endUsers map[uuid.UUID]string, event domain.DeleteEvent) (bool, error) {
	s.log.Debug("Applying delete event", "correspondence_id", c.ID,
		"kind", event.Kind, "event_occurred", event.EventOccurred)

	switch event.Kind {
	case domain.HardDeletedByOperator, domain.HardDeletedByRecipient:
		return s.purge(ctx, txn, c, event)
	case domain.SoftDeletedByRecipient, domain.RestoredByRecipient:
		return s.softDeleteOrRestore(txn, c, endUsers, event)
	default:
		s.log.Warn("Unknown delete event kind, ignoring",
			"correspondence_id", c.ID, "kind", event.Kind)
		return false, nil
	}
}

// purge handles a hard delete: a derived purge status row, the delete
// event row, the purge publication, the attachment cascade, and the
// dialog teardown chain. A correspondence can only ever be purged once;
// the guard reads persisted history fresh so that a second hard delete
// in the same batch is also caught.
func (s SideEffects) purge(ctx context.Context, txn *badger.Txn, c domain.Correspondence, event domain.DeleteEvent) (bool, error) {
	history, err := s.statuses.History(txn, c.ID)
	if err != nil {
		return false, err
	}
	if lo.SomeBy(history, func(e domain.StatusEvent) bool { return e.Status.Purged() }) {
		s.log.Warn("Correspondence has already been purged, cannot purge again",
			"correspondence_id", c.ID)
		return false, nil
	}

	var purgeStatus domain.Status
	switch event.Kind {
	case domain.HardDeletedByOperator:
		purgeStatus = domain.StatusPurgedByAltinn
	case domain.HardDeletedByRecipient:
		purgeStatus = domain.StatusPurgedByRecipient
	default:
		return false, fmt.Errorf("%w: cannot purge for %s", apperrors.ErrUnsupportedEventKind, event.Kind)
	}

	syncedAt := lo.ToPtr(time.Now().UTC())
	statusSaved, err := s.statuses.Add(txn, c.ID, domain.StatusEvent{
		Status:        purgeStatus,
		StatusChanged: event.EventOccurred,
		StatusText:    syncedText(purgeStatus),
		PartyUUID:     event.PartyUUID,
		SyncedAt:      syncedAt,
	})
	if err != nil {
		return false, err
	}
	event.SyncedAt = syncedAt
	eventSaved, err := s.deletes.Add(txn, c.ID, event)
	if err != nil {
		return false, err
	}
	if !statusSaved || !eventSaved {
		s.log.Debug("Purge rows were duplicates, skipping side effects",
			"correspondence_id", c.ID)
		return eventSaved, nil
	}

	if !c.Migrating {
		if _, err = s.jobs.Enqueue(txn, s.busJob(c, domain.BusPurged)); err != nil {
			return false, err
		}
	}

	if err = s.purger.PurgeAttachments(ctx, c.ID, event.PartyUUID); err != nil {
		return false, err
	}

	if !c.Migrating {
		actorName := "mottaker"
		if event.Kind == domain.HardDeletedByOperator {
			actorName = "avsender"
		}
		activityID, err := s.jobs.Enqueue(txn, repositories.Job{
			Kind:             repositories.JobDialogPurgedActivity,
			CorrespondenceID: c.ID,
			ActorName:        actorName,
			OperationTime:    event.EventOccurred,
		})
		if err != nil {
			return false, err
		}
		dialogID, ok := c.DialogID()
		if !ok {
			// Not transient: a purgeable correspondence without a dialog
			// reference means the aggregate is in an impossible state.
			return false, fmt.Errorf("%w: correspondence %s", apperrors.ErrDialogReferenceMissing, c.ID)
		}
		_, err = s.jobs.ContinueWith(txn, activityID, repositories.Job{
			Kind:             repositories.JobDialogSoftDelete,
			CorrespondenceID: c.ID,
			DialogID:         dialogID,
		})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// softDeleteOrRestore persists the delete event (no status row) and
// keeps the dialog's Bin/Archive labels in line with the derived state.
func (s SideEffects) softDeleteOrRestore(txn *badger.Txn, c domain.Correspondence, endUsers map[uuid.UUID]string, event domain.DeleteEvent) (bool, error) {
	if event.Kind != domain.SoftDeletedByRecipient && event.Kind != domain.RestoredByRecipient {
		return false, fmt.Errorf("%w: cannot soft delete or restore for %s", apperrors.ErrUnsupportedEventKind, event.Kind)
	}

	event.SyncedAt = lo.ToPtr(time.Now().UTC())
	saved, err := s.deletes.Add(txn, c.ID, event)
	if err != nil {
		return false, err
	}
	if !saved || c.Migrating {
		return saved, nil
	}

	history, err := s.statuses.History(txn, c.ID)
	if err != nil {
		return false, err
	}
	if lo.SomeBy(history, func(e domain.StatusEvent) bool { return e.Status.Purged() }) {
		// The dialog representation may no longer exist; label updates
		// would only fail downstream.
		s.log.Warn("Skipping label update for purged correspondence",
			"correspondence_id", c.ID, "kind", event.Kind)
		return true, nil
	}
	endUserID, ok := endUsers[event.PartyUUID]
	if !ok {
		s.log.Warn("Skipping label update, no end-user identifier for party",
			"correspondence_id", c.ID, "kind", event.Kind, "party_uuid", event.PartyUUID)
		return true, nil
	}

	job := repositories.Job{
		Kind:             repositories.JobDialogUpdateLabels,
		CorrespondenceID: c.ID,
		EndUserID:        endUserID,
	}
	if event.Kind == domain.SoftDeletedByRecipient {
		job.AddLabels = []domain.SystemLabel{domain.LabelBin}
	} else {
		everArchived := lo.SomeBy(history, func(e domain.StatusEvent) bool {
			return e.Status == domain.StatusArchived
		})
		if everArchived {
			job.AddLabels = []domain.SystemLabel{domain.LabelArchive}
		} else {
			job.RemoveLabels = []domain.SystemLabel{domain.LabelBin}
		}
	}
	if _, err = s.jobs.Enqueue(txn, job); err != nil {
		return false, err
	}
	return true, nil
}

func (s SideEffects) busJob(c domain.Correspondence, eventType domain.BusEventType) repositories.Job {
	return repositories.Job{
		Kind:             repositories.JobBusPublish,
		CorrespondenceID: c.ID,
		BusEvent:         eventType,
		ResourceID:       c.ResourceID,
		Sender:           c.Sender,
	}
}
