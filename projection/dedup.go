// Package projection builds the replay timeline for one correspondence.
// Handles deduplication of incoming batches and chronological ordering.
// Pure functions only: no storage, no side effects.
package projection

import (
	"fmt"
	"log/slog"

	"correspondence-lab/domain"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type keyed interface {
	DedupKey() string
}

// Dedup removes duplicates from a batch, first against the batch itself
// (keeping the first occurrence) and then against already-persisted
// history. Each event kind has its own key space; never mix kinds in one
// call.
func Dedup[E keyed](batch []E, history []E) []E {
	unique := lo.UniqBy(batch, E.DedupKey)
	persisted := lo.SliceToMap(history, func(e E) (string, struct{}) {
		return e.DedupKey(), struct{}{}
	})
	return lo.Filter(unique, func(e E, _ int) bool {
		_, dup := persisted[e.DedupKey()]
		return !dup
	})
}

// FilterSyncable keeps only the status events whose code is allowed
// through the sync pathway. Invalid codes are expected noise from
// Altinn 2: they are logged and dropped, never treated as an error.
func FilterSyncable(log *slog.Logger, correspondenceID uuid.UUID, batch []domain.StatusEvent) []domain.StatusEvent {
	kept := lo.Filter(batch, func(e domain.StatusEvent, _ int) bool {
		if e.Status.Syncable() {
			return true
		}
		log.Warn("Ignoring status event not allowed through sync",
			"correspondence_id", correspondenceID,
			"status", e.Status,
			"status_changed", e.StatusChanged,
			"party_uuid", e.PartyUUID)
		return false
	})
	if len(batch) > 0 && len(kept) == 0 {
		log.Warn(fmt.Sprintf("None of the %d status events for %s were valid for sync", len(batch), correspondenceID))
	}
	return kept
}
