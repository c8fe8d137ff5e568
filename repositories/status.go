//go:generate go run go.uber.org/mock/mockgen -source=status.go -destination=../mocks/mock_status_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type IStatusRepository interface {
	History(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.StatusEvent, error)
	Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.StatusEvent) (bool, error)
}

// StatusRepository persists the status history of a correspondence.
// The key is formatted as "status:{correspondence}:{truncated_ts_padded}:{status}:{party}" to:
//  1. Ensure chronological iteration using 19-digit zero padding (lexicographical order).
//  2. Make the dedup identity (status, second-truncated timestamp, party)
//     the primary key itself, so a concurrent double-replay degrades into
//     a skipped duplicate instead of a double insert.
type StatusRepository struct {
	log *slog.Logger
}

func NewStatusRepository(log *slog.Logger) StatusRepository {
	return StatusRepository{log: log}
}

func statusKey(correspondenceID uuid.UUID, event domain.StatusEvent) []byte {
	return []byte(fmt.Sprintf("status:%s:%019d:%s:%s",
		correspondenceID,
		domain.TruncateToSecond(event.StatusChanged).Unix(),
		event.Status,
		event.PartyUUID,
	))
}

// Add stores the event unless its identity key already exists.
// Returns false when the event was a duplicate.
func (r StatusRepository) Add(txn *badger.Txn, correspondenceID uuid.UUID, event domain.StatusEvent) (bool, error) {
	key := statusKey(correspondenceID, event)
	if _, err := txn.Get(key); err == nil {
		r.log.Debug("Duplicate status event skipped",
			"correspondence_id", correspondenceID, "status", event.Status)
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

func (r StatusRepository) History(txn *badger.Txn, correspondenceID uuid.UUID) ([]domain.StatusEvent, error) {
	prefix := []byte(fmt.Sprintf("status:%s:", correspondenceID))
	var events []domain.StatusEvent

	it := txn.NewIterator(badger.DefaultIteratorOptions)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		var event domain.StatusEvent
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
