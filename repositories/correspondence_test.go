package repositories

import (
	"log/slog"
	"testing"

	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func Test_Correspondence_Save_And_Get(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewCorrespondenceRepository(slog.Default())

	correspondence := domain.Correspondence{
		ID:         uuid.New(),
		ResourceID: "skd-tax-notice",
		Sender:     "0192:974761076",
		Recipient:  "urn:altinn:person:identifier-no:01010100000",
		Migrating:  true,
		ExternalReferences: []domain.ExternalReference{
			{Kind: domain.ReferenceDialogID, Value: "0192ef42-dialog"},
		},
	}

	err := db.Update(func(txn *badger.Txn) error {
		return repository.Save(txn, correspondence)
	})
	req.NoError(err)

	err = db.View(func(txn *badger.Txn) error {
		fetched, err := repository.Get(txn, correspondence.ID)
		req.NoError(err)
		req.Equal(correspondence.ID, fetched.ID)
		req.Equal(correspondence.ResourceID, fetched.ResourceID)
		req.True(fetched.Migrating)
		dialogID, ok := fetched.DialogID()
		req.True(ok)
		req.Equal("0192ef42-dialog", dialogID)
		return nil
	})
	req.NoError(err)
}

func Test_Correspondence_Get_Unknown_Returns_NotFound(t *testing.T) {
	req := require.New(t)
	db := openTestDB(t)
	repository := NewCorrespondenceRepository(slog.Default())

	err := db.View(func(txn *badger.Txn) error {
		_, err := repository.Get(txn, uuid.New())
		req.ErrorIs(err, apperrors.ErrCorrespondenceNotFound)
		return nil
	})
	req.NoError(err)
}
