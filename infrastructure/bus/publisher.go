// Package bus holds the event-bus adapter used by the daemon. The
// production publisher targets the platform message broker; this one
// records every publication for offline replay auditing.
package bus

import (
	"context"
	"log/slog"

	"correspondence-lab/domain"
)

type AuditPublisher struct {
	log *slog.Logger
}

func NewAuditPublisher(log *slog.Logger) AuditPublisher {
	return AuditPublisher{log: log}
}

func (p AuditPublisher) Publish(_ context.Context, eventType domain.BusEventType, resourceID, itemID, sender string) error {
	p.log.Info("Bus event published",
		"event_type", eventType, "resource_id", resourceID, "item_id", itemID, "sender", sender)
	return nil
}
