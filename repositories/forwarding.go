//go:generate go run go.uber.org/mock/mockgen -source=forwarding.go -destination=../mocks/mock_forwarding_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IForwardingRepository interface {
	Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.ForwardingEvent, error)
	Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.ForwardingEvent) (bool, error)
}

// ForwardingRepository persists forwarding events. Identity here is the
// exact full tuple (hashed into the key), not a truncated timestamp:
// forwarding events come from a single Altinn 2 source, so exact match
// is the faithful duplicate rule.
type ForwardingRepository struct {
	log *slog.Logger
}

func NewForwardingRepository(log *slog.Logger) ForwardingRepository {
	return ForwardingRepository{log: log}
}

func forwardingKey(correspondenceID uuid.UUID, event domain.ForwardingEvent) []byte {
	return []byte(fmt.Sprintf("fwd:%s:%s", correspondenceID, event.DedupKey()))
}

func (r ForwardingRepository) Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.ForwardingEvent) (bool, error) {
	key := forwardingKey(correspondenceID, event)
	if _, err := txn.Get(key); err == nil {
		r.log.Debug("Duplicate forwarding event skipped",
			"correspondence_id", correspondenceID, "forwarded_on", event.ForwardedOn)
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

func (r ForwardingRepository) Events(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.ForwardingEvent, error) {
	prefix := []byte(fmt.Sprintf("fwd:%s:", correspondenceID))
	var events []domain.ForwardingEvent

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var event domain.ForwardingEvent
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
