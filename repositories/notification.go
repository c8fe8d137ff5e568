//go:generate go run go.uber.org/mock/mockgen -source=notification.go -destination=../mocks/mock_notification_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type INotificationRepository interface {
	Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.NotificationEvent, error)
	Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.NotificationEvent) (bool, error)
}

// NotificationRepository persists notification events. Informational
// rows only: nothing downstream reacts to them.
type NotificationRepository struct {
	log *slog.Logger
}

func NewNotificationRepository(log *slog.Logger) NotificationRepository {
	return NotificationRepository{log: log}
}

func notificationKey(correspondenceID uuid.UUID, event domain.NotificationEvent) []byte {
	return []byte(fmt.Sprintf("notif:%s:%s", correspondenceID, event.DedupKey()))
}

// Add stores the event unless its identity key (address, channel,
// second-truncated sent timestamp, external id) already exists.
func (r NotificationRepository) Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.NotificationEvent) (bool, error) {
	key := notificationKey(correspondenceID, event)
	if _, err := txn.Get(key); err == nil {
		r.log.Debug("Duplicate notification event skipped",
			"correspondence_id", correspondenceID, "channel", event.Channel)
		return false, nil
	} else if err != badger.ErrKeyNotFound {
		return false, err
	}
	bytes, err := json.Marshal(event)
	if err != nil {
		return false, err
	}
	if err = txn.Set(key, bytes); err != nil {
		return false, err
	}
	return true, nil
}

func (r NotificationRepository) Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.NotificationEvent, error) {
	prefix := []byte(fmt.Sprintf("notif:%s:", correspondenceID))
	var events []domain.NotificationEvent

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var event domain.NotificationEvent
		err := it.Item().Value(func(value []byte) error {
			return json.Unmarshal(value, &event)
		})
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
