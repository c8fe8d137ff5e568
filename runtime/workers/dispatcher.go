package workers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"correspondence-lab/contract"
	apperrors "correspondence-lab/errors"
	"correspondence-lab/repositories"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// OutboxDispatcher drains committed outbox jobs and invokes the external
// collaborators. Delivery is at-least-once: a crash between invocation
// and ack re-runs the job, and every downstream handler is idempotent.
//
// Continuations (ParentID + OnlyOnSuccess) run only after their parent
// succeeded; when the parent failed terminally the continuation is
// failed too, without being invoked.
type OutboxDispatcher struct {
	log         *slog.Logger
	outbox      repositories.OutboxRepository
	dialog      contract.IDialogService
	bus         contract.IEventBus
	interval    time.Duration
	maxAttempts int
}

func NewOutboxDispatcher(
	log *slog.Logger,
	outbox repositories.OutboxRepository,
	dialog contract.IDialogService,
	bus contract.IEventBus,
	interval time.Duration,
	maxAttempts int,
) *OutboxDispatcher {
	return &OutboxDispatcher{
		log:         log,
		outbox:      outbox,
		dialog:      dialog,
		bus:         bus,
		interval:    interval,
		maxAttempts: maxAttempts,
	}
}

func (w *OutboxDispatcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Drain(ctx); err != nil {
				w.log.Warn("Outbox drain failed", "error", err)
			}
		case <-ctx.Done():
			w.log.Debug("Context done, stopping outbox dispatcher")
			return nil
		}
	}
}

// Drain executes every runnable pending job in enqueue order.
func (w *OutboxDispatcher) Drain(ctx context.Context) error {
	jobs, err := w.outbox.All()
	if err != nil {
		return err
	}
	byID := lo.SliceToMap(jobs, func(j repositories.Job) (uuid.UUID, repositories.Job) {
		return j.ID, j
	})
	now := time.Now().UTC()

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if job.State != repositories.JobPending || job.NotBefore.After(now) {
			continue
		}
		if job.ParentID != nil {
			parent, ok := byID[*job.ParentID]
			if !ok || parent.State == repositories.JobPending {
				continue // parent not done yet, next drain will see it
			}
			if job.OnlyOnSuccess && parent.State == repositories.JobFailed {
				job.State = repositories.JobFailed
				w.log.Warn("Failing continuation, parent job failed",
					"job_id", job.ID, "parent_id", parent.ID)
				if err := w.outbox.Store(job); err != nil {
					return err
				}
				byID[job.ID] = job
				continue
			}
		}

		job.Attempts++
		if err := w.execute(ctx, job); err != nil {
			w.log.Warn("Job execution failed",
				"job_id", job.ID, "kind", job.Kind, "attempt", job.Attempts, "error", err)
			if job.Attempts >= w.maxAttempts {
				job.State = repositories.JobFailed
			}
		} else {
			job.State = repositories.JobSucceeded
		}
		if err := w.outbox.Store(job); err != nil {
			return err
		}
		byID[job.ID] = job
	}
	return nil
}

func (w *OutboxDispatcher) execute(ctx context.Context, job repositories.Job) error {
	switch job.Kind {
	case repositories.JobDialogPatchConfirmed:
		return w.dialog.PatchDialogToConfirmed(ctx, job.CorrespondenceID)
	case repositories.JobDialogOpenedActivity:
		return w.dialog.CreateOpenedActivity(ctx, job.CorrespondenceID, job.EndUserID, job.OperationTime)
	case repositories.JobDialogConfirmedActivity:
		return w.dialog.CreateConfirmedActivity(ctx, job.CorrespondenceID, job.EndUserID, job.OperationTime)
	case repositories.JobDialogPurgedActivity:
		return w.dialog.CreatePurgedActivity(ctx, job.CorrespondenceID, job.ActorName, job.OperationTime)
	case repositories.JobDialogUpdateLabels:
		return w.dialog.UpdateSystemLabels(ctx, job.CorrespondenceID, job.EndUserID, job.AddLabels, job.RemoveLabels)
	case repositories.JobDialogSoftDelete:
		return w.dialog.SoftDeleteDialog(ctx, job.DialogID)
	case repositories.JobDialogForwardingEvent:
		if job.Forwarding == nil {
			return fmt.Errorf("forwarding job %s has no payload", job.ID)
		}
		return w.dialog.AddForwardingEvent(ctx, job.CorrespondenceID, *job.Forwarding)
	case repositories.JobBusPublish:
		return w.bus.Publish(ctx, job.BusEvent, job.ResourceID, job.CorrespondenceID.String(), job.Sender)
	default:
		return fmt.Errorf("%w: %s", apperrors.ErrUnknownJobKind, job.Kind)
	}
}
