package repositories

import (
	"log/slog"
	"testing"
	"time"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_DeleteEvent_Add_And_Events(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewDeleteEventRepository(slog.Default())

	correspondenceID := uuid.New()
	party := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := db.Update(func(txn *badger.Txn) error {
		saved, err := repository.Add(txn, correspondenceID, domain.DeleteEvent{
			Kind: domain.SoftDeletedByRecipient, EventOccurred: at, PartyUUID: party,
		})
		req.NoError(err)
		req.True(saved)

		// Same identity, replayed.
		saved, err = repository.Add(txn, correspondenceID, domain.DeleteEvent{
			Kind: domain.SoftDeletedByRecipient, EventOccurred: at.Add(400 * time.Millisecond), PartyUUID: party,
		})
		req.NoError(err)
		req.False(saved)

		saved, err = repository.Add(txn, correspondenceID, domain.DeleteEvent{
			Kind: domain.RestoredByRecipient, EventOccurred: at.Add(time.Minute), PartyUUID: party,
		})
		req.NoError(err)
		req.True(saved)
		return nil
	})
	req.NoError(err)

	err = db.View(func(txn *badger.Txn) error {
		events, err := repository.Events(txn, correspondenceID)
		req.NoError(err)
		req.Len(events, 2)
		return nil
	})
	req.NoError(err)
}

func Test_DeleteEvent_SoftDeleted_Derived_State(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewDeleteEventRepository(slog.Default())

	correspondenceID := uuid.New()
	party := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	err := db.Update(func(txn *badger.Txn) error {
		deleted, err := repository.SoftDeleted(txn, correspondenceID)
		req.NoError(err)
		req.False(deleted)

		_, err = repository.Add(txn, correspondenceID, domain.DeleteEvent{
			Kind: domain.SoftDeletedByRecipient, EventOccurred: at, PartyUUID: party,
		})
		req.NoError(err)

		deleted, err = repository.SoftDeleted(txn, correspondenceID)
		req.NoError(err)
		req.True(deleted)

		_, err = repository.Add(txn, correspondenceID, domain.DeleteEvent{
			Kind: domain.RestoredByRecipient, EventOccurred: at.Add(time.Minute), PartyUUID: party,
		})
		req.NoError(err)

		deleted, err = repository.SoftDeleted(txn, correspondenceID)
		req.NoError(err)
		req.False(deleted)
		return nil
	})
	req.NoError(err)
}
