package domain

import (
	"fmt"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
)

// TruncateToSecond drops sub-second precision in UTC. Altinn 2 delivers
// the same event through several data sources with unreliable sub-second
// digits, so identity comparison always happens at second resolution.
func TruncateToSecond(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// StatusEvent is one entry of a correspondence's status history.
type StatusEvent struct {
	Status        Status
	StatusChanged time.Time
	StatusText    string
	PartyUUID     uuid.UUID
	// SyncedAt marks the event as replayed from Altinn 2 rather than live.
	SyncedAt *time.Time
}

// DedupKey identifies the event for duplicate detection:
// (status, second-truncated timestamp, acting party).
func (e StatusEvent) DedupKey() string {
	return fmt.Sprintf("%s:%019d:%s", e.Status, TruncateToSecond(e.StatusChanged).Unix(), e.PartyUUID)
}

// DeleteEvent records a hard delete, soft delete or restore.
type DeleteEvent struct {
	Kind          DeleteKind
	EventOccurred time.Time
	PartyUUID     uuid.UUID
	SyncedAt      *time.Time
}

// DedupKey identifies the event for duplicate detection:
// (kind, second-truncated timestamp, acting party).
func (e DeleteEvent) DedupKey() string {
	return fmt.Sprintf("%s:%019d:%s", e.Kind, TruncateToSecond(e.EventOccurred).Unix(), e.PartyUUID)
}

// NotificationChannel is the transport a notification went out on.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "Email"
	ChannelSMS   NotificationChannel = "SMS"
)

// NotificationEvent records that a notification about the correspondence
// was sent to the recipient. Append-only, informational.
type NotificationEvent struct {
	Channel    NotificationChannel
	Sent       time.Time
	Address    string
	ExternalID string
	SyncedAt   *time.Time
}

// DedupKey identifies the notification for duplicate detection:
// (address, channel, second-truncated sent timestamp, external id).
func (e NotificationEvent) DedupKey() string {
	return fmt.Sprintf("%s:%s:%019d:%s", e.Address, e.Channel, TruncateToSecond(e.Sent).Unix(), e.ExternalID)
}

// ForwardingEvent records that the recipient forwarded the correspondence.
type ForwardingEvent struct {
	ForwardedOn     time.Time
	ByPartyUUID     uuid.UUID
	ByUserID        string
	ToUserID        string
	ToEmail         string
	Text            string
	MailboxSupplier string
	SyncedAt        *time.Time
}

// DedupKey identifies the forwarding event for duplicate detection.
// Unlike the other kinds, the identity is the exact full tuple with
// nanosecond timestamps. Altinn 2 records forwardings once, so exact
// comparison is safe here and truncating could merge distinct events.
func (e ForwardingEvent) DedupKey() string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%019d:%s:%s:%s:%s:%s:%s",
		e.ForwardedOn.UTC().UnixNano(), e.ByPartyUUID, e.ByUserID, e.ToUserID, e.ToEmail, e.Text, e.MailboxSupplier)
	return fmt.Sprintf("%019d:%016x", e.ForwardedOn.UTC().UnixNano(), h.Sum64())
}
