//go:generate go run go.uber.org/mock/mockgen -source=correspondence.go -destination=../mocks/mock_correspondence_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

type ICorrespondenceRepository interface {
	Save(txn *badger.Txn, correspondence domain.Correspondence) error
	Get(txn *badger.Txn, correspondenceID uuid.UUID) (domain.Correspondence, error)
}

// CorrespondenceRepository persists the scalar part of the aggregate under
// "corr:{id}". The event collections live in their own key spaces and are
// attached by the caller when needed.
type CorrespondenceRepository struct {
	log *slog.Logger
}

func NewCorrespondenceRepository(log *slog.Logger) CorrespondenceRepository {
	return CorrespondenceRepository{log: log}
}

// correspondenceRow is the stored shape: collections are kept out so a
// stale aggregate snapshot can never overwrite append-only history.
type correspondenceRow struct {
	ID                 uuid.UUID
	ResourceID         string
	Sender             string
	Recipient          string
	Migrating          bool
	ExternalReferences []domain.ExternalReference
}

func correspondenceKey(correspondenceID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("corr:%s", correspondenceID))
}

func (r CorrespondenceRepository) Save(txn *badger.Txn, correspondence domain.Correspondence) error {
	row := correspondenceRow{
		ID:                 correspondence.ID,
		ResourceID:         correspondence.ResourceID,
		Sender:             correspondence.Sender,
		Recipient:          correspondence.Recipient,
		Migrating:          correspondence.Migrating,
		ExternalReferences: correspondence.ExternalReferences,
	}
	bytes, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return txn.Set(correspondenceKey(correspondence.ID), bytes)
}

func (r CorrespondenceRepository) Get(txn *badger.Txn, correspondenceID uuid.UUID) (domain.Correspondence, error) {
	item, err := txn.Get(correspondenceKey(correspondenceID))
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return domain.Correspondence{}, apperrors.ErrCorrespondenceNotFound
		}
		return domain.Correspondence{}, err
	}
	var row correspondenceRow
	if err = item.Value(func(value []byte) error {
		return json.Unmarshal(value, &row)
	}); err != nil {
		return domain.Correspondence{}, err
	}
	return domain.Correspondence{
		ID:                 row.ID,
		ResourceID:         row.ResourceID,
		Sender:             row.Sender,
		Recipient:          row.Recipient,
		Migrating:          row.Migrating,
		ExternalReferences: row.ExternalReferences,
	}, nil
}
