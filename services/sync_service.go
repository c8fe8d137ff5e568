// Package services orchestrates event synchronization from Altinn 2:
// filtering, chronological replay, side-effect resolution and the
// independent notification/forwarding passes.
package services

import (
	"context"
	"log/slog"
	"time"

	"correspondence-lab/contract"
	"correspondence-lab/domain"
	"correspondence-lab/projection"
	"correspondence-lab/repositories"
	"correspondence-lab/transaction"

	"github.com/dgraph-io/badger/v4"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

var validate = validator.New()

// SyncRequest is one batch of historical or live events for a single
// correspondence.
type SyncRequest struct {
	CorrespondenceID   uuid.UUID                  `validate:"required"`
	StatusEvents       []domain.StatusEvent       `validate:"max=10000"`
	DeleteEvents       []domain.DeleteEvent       `validate:"max=10000"`
	NotificationEvents []domain.NotificationEvent `validate:"max=10000"`
	ForwardingEvents   []domain.ForwardingEvent   `validate:"max=10000"`
}

// SyncService drives the replay of a correspondence's event batch. One
// invocation is strictly sequential; concurrency only exists across
// correspondences, each under its own transaction.
type SyncService struct {
	log             *slog.Logger
	runner          *transaction.Runner
	correspondences repositories.ICorrespondenceRepository
	statuses        repositories.IStatusRepository
	deletes         repositories.IDeleteEventRepository
	notifications   repositories.INotificationRepository
	forwardings     repositories.IForwardingRepository
	jobs            repositories.IJobQueue
	parties         PartyResolver
	effects         SideEffects
}

func NewSyncService(
	log *slog.Logger,
	runner *transaction.Runner,
	correspondences repositories.ICorrespondenceRepository,
	statuses repositories.IStatusRepository,
	deletes repositories.IDeleteEventRepository,
	notifications repositories.INotificationRepository,
	forwardings repositories.IForwardingRepository,
	jobs repositories.IJobQueue,
	directory contract.IPartyDirectory,
	purger contract.IAttachmentPurger,
) SyncService {
	return SyncService{
		log:             log,
		runner:          runner,
		correspondences: correspondences,
		statuses:        statuses,
		deletes:         deletes,
		notifications:   notifications,
		forwardings:     forwardings,
		jobs:            jobs,
		parties:         NewPartyResolver(log, directory),
		effects:         NewSideEffects(log, statuses, deletes, jobs, purger),
	}
}

// Sync validates the request and runs ProcessAllEvents inside the
// retry-wrapped transaction. The whole batch commits or nothing does;
// the returned count is the number of events actually persisted.
func (s SyncService) Sync(ctx context.Context, req SyncRequest) (int, error) {
	if err := validate.Struct(req); err != nil {
		return 0, err
	}
	s.log.Info("Processing sync request",
		"correspondence_id", req.CorrespondenceID,
		"status_events", len(req.StatusEvents),
		"delete_events", len(req.DeleteEvents),
		"notification_events", len(req.NotificationEvents),
		"forwarding_events", len(req.ForwardingEvents))

	var count int
	err := s.runner.Execute(ctx, func(txn *badger.Txn) error {
		count = 0
		var err error
		count, err = s.ProcessAllEvents(ctx, txn, req)
		return err
	})
	if err != nil {
		s.log.Warn("Sync request failed", "correspondence_id", req.CorrespondenceID, "error", err)
		return 0, err
	}
	if count > 0 {
		s.log.Info("Sync request processed",
			"correspondence_id", req.CorrespondenceID, "events_persisted", count)
	}
	return count, nil
}

// ProcessAllEvents applies one batch within the given transaction.
//
// Status and delete events are deduplicated, whitelisted, merged into a
// chronological timeline and applied element by element; any element
// failure aborts the batch so no partial timeline is ever committed.
// Notification and forwarding events do not interact with the timeline
// and are handled in their own passes.
func (s SyncService) ProcessAllEvents(ctx context.Context, txn *badger.Txn, req SyncRequest) (int, error) {
	c, err := s.correspondences.Get(txn, req.CorrespondenceID)
	if err != nil {
		s.log.Warn("Correspondence lookup failed", "correspondence_id", req.CorrespondenceID, "error", err)
		return 0, err
	}

	total := 0
	if len(req.StatusEvents) > 0 || len(req.DeleteEvents) > 0 {
		n, err := s.processTimeline(ctx, txn, c, req.StatusEvents, req.DeleteEvents)
		if err != nil {
			return 0, err
		}
		total += n
	}

	n, err := s.processNotifications(txn, c, req.NotificationEvents)
	if err != nil {
		return 0, err
	}
	total += n

	n, err = s.processForwardings(txn, c, req.ForwardingEvents)
	if err != nil {
		return 0, err
	}
	total += n

	return total, nil
}

func (s SyncService) processTimeline(ctx context.Context, txn *badger.Txn, c domain.Correspondence, statusBatch []domain.StatusEvent, deleteBatch []domain.DeleteEvent) (int, error) {
	history, err := s.statuses.History(txn, c.ID)
	if err != nil {
		return 0, err
	}
	persistedDeletes, err := s.deletes.Events(txn, c.ID)
	if err != nil {
		return 0, err
	}

	statusEvents := projection.Dedup(projection.FilterSyncable(s.log, c.ID, statusBatch), history)
	deleteEvents := projection.Dedup(deleteBatch, persistedDeletes)
	if len(statusEvents) == 0 && len(deleteEvents) == 0 {
		s.log.Warn("No unique valid status or delete events left after filtering",
			"correspondence_id", c.ID)
		return 0, nil
	}

	endUsers, err := s.parties.EndUserIDs(ctx, statusEvents, deleteEvents)
	if err != nil {
		return 0, err
	}

	count := 0
	timeline := projection.Merge(statusEvents, deleteEvents)
	for _, entry := range timeline.Entries {
		// Cooperative cancellation: stop between elements, never inside one.
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		var saved bool
		switch {
		case entry.Status != nil:
			saved, err = s.effects.ApplyStatusEvent(ctx, txn, c, endUsers, *entry.Status)
		case entry.Delete != nil:
			saved, err = s.effects.ApplyDeleteEvent(ctx, txn, c, endUsers, *entry.Delete)
		}
		if err != nil {
			s.log.Error("Failed to apply timeline element, aborting batch",
				"correspondence_id", c.ID, "at", entry.At, "error", err)
			return 0, err
		}
		if saved {
			count++
		}
	}
	s.log.Info("Timeline applied", "correspondence_id", c.ID,
		"elements", len(timeline.Entries), "persisted", count)
	return count, nil
}

func (s SyncService) processNotifications(txn *badger.Txn, c domain.Correspondence, batch []domain.NotificationEvent) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	persisted, err := s.notifications.Events(txn, c.ID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, event := range projection.Dedup(batch, persisted) {
		event.SyncedAt = lo.ToPtr(time.Now().UTC())
		saved, err := s.notifications.Add(txn, c.ID, event)
		if err != nil {
			return 0, err
		}
		if saved {
			count++
		}
	}
	return count, nil
}

func (s SyncService) processForwardings(txn *badger.Txn, c domain.Correspondence, batch []domain.ForwardingEvent) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}
	persisted, err := s.forwardings.Events(txn, c.ID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, event := range projection.Dedup(batch, persisted) {
		event.SyncedAt = lo.ToPtr(time.Now().UTC())
		saved, err := s.forwardings.Add(txn, c.ID, event)
		if err != nil {
			return 0, err
		}
		if !saved {
			continue
		}
		count++
		if !c.Migrating {
			forwarded := event
			_, err = s.jobs.Enqueue(txn, repositories.Job{
				Kind:             repositories.JobDialogForwardingEvent,
				CorrespondenceID: c.ID,
				Forwarding:       &forwarded,
			})
			if err != nil {
				return 0, err
			}
		}
	}
	return count, nil
}
