//go:generate go run go.uber.org/mock/mockgen -source=delete_event.go -destination=../mocks/mock_delete_event_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IDeleteEventRepository interface {
	Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.DeleteEvent, error)
	Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.DeleteEvent) (bool, error)
	SoftDeleted(txn *badger.Txn, correspondenceID uuid.UUID) (bool, error)
}

// DeleteEventRepository persists hard-delete, soft-delete and restore
// events. Same key discipline as the status repository: the dedup
// identity (kind, second-truncated timestamp, party) is the key.
type DeleteEventRepository struct {
	log *slog.Logger
}

func NewDeleteEventRepository(log *slog.Logger) DeleteEventRepository {
	return DeleteEventRepository{log: log}
}

func deleteEventKey(correspondenceID uuid.UUID, event domain.DeleteEvent) []byte {
	return []byte(fmt.Sprintf("delete:%s:%019d:%s:%s",
		correspondenceID,
		domain.TruncateToSecond(event.EventOccurred).Unix(),
		event.Kind,
		event.PartyUUID,
	))
}

// Add stores the event unless its identity key already exists.
// Returns false when the event was a duplicate. The stored value keeps
// full timestamp precision; only the key truncates.
func (r DeleteEventRepository) Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.DeleteEvent) (bool, error) {
	key := deleteEventKey(correspondenceID, event)
	if _, err := txn.Get(key); err == nil {
		r.log.Debug("Duplicate delete event skipped",
			"correspondence_id", correspondenceID, "kind", event.Kind)
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

func (r DeleteEventRepository) Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.DeleteEvent, error) {
	prefix := []byte(fmt.Sprintf("delete:%s:", correspondenceID))
	var events []domain.DeleteEvent

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var event domain.DeleteEvent
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

// SoftDeleted derives the current soft-delete state from the persisted
// delete events. The state is never stored; it only exists as this query.
func (r DeleteEventRepository) SoftDeleted(txn *badger.Txn, correspondenceID uuid.UUID) (bool, error) {
	events, err := r.Events(txn, correspondenceID)
	if err != nil {
		return false, err
	}
	return domain.SoftDeleted(events), nil
}
