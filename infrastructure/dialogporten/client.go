// Package dialogporten holds the dialog-service adapter used by the
// daemon. The real HTTP client lives with the platform integration; this
// adapter records every call so replay runs can be audited offline.
package dialogporten

import (
	"context"
	"log/slog"
	"time"

	"correspondence-lab/domain"

	"github.com/google/uuid"
)

type AuditClient struct {
	log *slog.Logger
}

func NewAuditClient(log *slog.Logger) AuditClient {
	return AuditClient{log: log}
}

func (c AuditClient) PatchDialogToConfirmed(_ context.Context, correspondenceID uuid.UUID) error {
	c.log.Info("Dialog patched to confirmed", "correspondence_id", correspondenceID)
	return nil
}

func (c AuditClient) CreateOpenedActivity(_ context.Context, correspondenceID uuid.UUID, endUserID string, operationTime time.Time) error {
	c.log.Info("Dialog opened activity created",
		"correspondence_id", correspondenceID, "end_user_id", endUserID, "operation_time", operationTime)
	return nil
}

func (c AuditClient) CreateConfirmedActivity(_ context.Context, correspondenceID uuid.UUID, endUserID string, operationTime time.Time) error {
	c.log.Info("Dialog confirmed activity created",
		"correspondence_id", correspondenceID, "end_user_id", endUserID, "operation_time", operationTime)
	return nil
}

func (c AuditClient) CreatePurgedActivity(_ context.Context, correspondenceID uuid.UUID, actorName string, operationTime time.Time) error {
	c.log.Info("Dialog purged activity created",
		"correspondence_id", correspondenceID, "actor_name", actorName, "operation_time", operationTime)
	return nil
}

func (c AuditClient) UpdateSystemLabels(_ context.Context, correspondenceID uuid.UUID, endUserID string, add, remove []domain.SystemLabel) error {
	c.log.Info("Dialog system labels updated",
		"correspondence_id", correspondenceID, "end_user_id", endUserID, "add", add, "remove", remove)
	return nil
}

func (c AuditClient) SoftDeleteDialog(_ context.Context, dialogID string) error {
	c.log.Info("Dialog soft deleted", "dialog_id", dialogID)
	return nil
}

func (c AuditClient) AddForwardingEvent(_ context.Context, correspondenceID uuid.UUID, event domain.ForwardingEvent) error {
	c.log.Info("Dialog forwarding event added",
		"correspondence_id", correspondenceID, "forwarded_on", event.ForwardedOn, "to_email", event.ToEmail)
	return nil
}
