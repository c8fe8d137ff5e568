// Package registry is the badger-backed party directory. Migration
// tooling seeds it ahead of replay so that party lookups never leave
// the process.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const partyPrefix = "party"

type BadgerPartyDirectory struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerPartyDirectory(db *badger.DB, log *slog.Logger) BadgerPartyDirectory {
	return BadgerPartyDirectory{db: db, log: log}
}

func partyKey(partyUUID uuid.UUID) []byte {
	return []byte(fmt.Sprintf("%s:%s", partyPrefix, partyUUID))
}

// Save upserts a registry entry.
func (d BadgerPartyDirectory) Save(party domain.Party) error {
	value, err := json.Marshal(party)
	if err != nil {
		return fmt.Errorf("failed to marshal party %s: %w", party.UUID, err)
	}
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set(partyKey(party.UUID), value)
	})
}

func (d BadgerPartyDirectory) LookUpPartyByUUID(_ context.Context, partyUUID uuid.UUID) (domain.Party, error) {
	var party domain.Party
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(partyKey(partyUUID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", apperrors.ErrPartyNotFound, partyUUID)
		}
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			return json.Unmarshal(v, &party)
		})
	})
	if err != nil {
		return domain.Party{}, err
	}
	return party, nil
}
