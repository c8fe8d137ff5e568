// Package attachments removes stored attachment rows when a
// correspondence is purged.
package attachments

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

const attachmentPrefix = "attach"

// BadgerAttachmentPurger deletes every attachment row of a
// correspondence. Deleting an absent prefix is a no-op, so the purge
// cascade stays idempotent under replay.
type BadgerAttachmentPurger struct {
	db  *badger.DB
	log *slog.Logger
}

func NewBadgerAttachmentPurger(db *badger.DB, log *slog.Logger) BadgerAttachmentPurger {
	return BadgerAttachmentPurger{db: db, log: log}
}

func (p BadgerAttachmentPurger) PurgeAttachments(_ context.Context, correspondenceID, partyUUID uuid.UUID) error {
	prefix := []byte(fmt.Sprintf("%s:%s:", attachmentPrefix, correspondenceID))
	deleted := 0
	err := p.db.Update(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			if err := txn.Delete(key); err != nil {
				return err
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to purge attachments for %s: %w", correspondenceID, err)
	}
	if deleted > 0 {
		p.log.Info("Attachments purged",
			"correspondence_id", correspondenceID, "party_uuid", partyUUID, "count", deleted)
	}
	return nil
}
