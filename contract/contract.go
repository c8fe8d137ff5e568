//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"correspondence-lab/domain"

	"github.com/google/uuid"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker
// lifecycle events, avoiding the need for manual naming in the Worker
// interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// IPartyDirectory looks up acting parties in the national register.
// A missing party is reported with errors.ErrPartyNotFound and is a soft
// failure for callers.
type IPartyDirectory interface {
	LookUpPartyByUUID(ctx context.Context, partyUUID uuid.UUID) (domain.Party, error)
}

// IDialogService is the activity-feed collaborator. Calls are made by the
// outbox dispatcher, never directly by the sync engine; retry and failure
// semantics beyond that are the service's own business.
type IDialogService interface {
	PatchDialogToConfirmed(ctx context.Context, correspondenceID uuid.UUID) error
	CreateOpenedActivity(ctx context.Context, correspondenceID uuid.UUID, endUserID string, operationTime time.Time) error
	CreateConfirmedActivity(ctx context.Context, correspondenceID uuid.UUID, endUserID string, operationTime time.Time) error
	CreatePurgedActivity(ctx context.Context, correspondenceID uuid.UUID, actorName string, operationTime time.Time) error
	UpdateSystemLabels(ctx context.Context, correspondenceID uuid.UUID, endUserID string, add []domain.SystemLabel, remove []domain.SystemLabel) error
	SoftDeleteDialog(ctx context.Context, dialogID string) error
	AddForwardingEvent(ctx context.Context, correspondenceID uuid.UUID, event domain.ForwardingEvent) error
}

// IEventBus publishes lifecycle events to downstream subscribers.
type IEventBus interface {
	Publish(ctx context.Context, eventType domain.BusEventType, resourceID string, itemID string, sender string) error
}

// IAttachmentPurger cascades a purge onto the correspondence attachments.
type IAttachmentPurger interface {
	PurgeAttachments(ctx context.Context, correspondenceID uuid.UUID, partyUUID uuid.UUID) error
}
