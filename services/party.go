package services

import (
	"context"
	"errors"
	"log/slog"

	"correspondence-lab/contract"
	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// PartyResolver maps acting-party UUIDs to the typed end-user identifier
// the dialog service expects ("person:<ssn>" / "organization:<org-number>").
type PartyResolver struct {
	log       *slog.Logger
	directory contract.IPartyDirectory
}

func NewPartyResolver(log *slog.Logger, directory contract.IPartyDirectory) PartyResolver {
	return PartyResolver{log: log, directory: directory}
}

// EndUserIDs resolves identifiers for every distinct party acting in the
// given events. Only events that can produce a dialog side effect need a
// lookup: syncable statuses, soft deletes and restores. A party missing
// from the register (or with an unsupported type) is skipped with a
// warning; callers treat a missing map entry as "skip the side effect".
func (r PartyResolver) EndUserIDs(ctx context.Context, statuses []domain.StatusEvent, deletes []domain.DeleteEvent) (map[uuid.UUID]string, error) {
	uuids := lo.Map(
		lo.Filter(statuses, func(e domain.StatusEvent, _ int) bool { return e.Status.Syncable() }),
		func(e domain.StatusEvent, _ int) uuid.UUID { return e.PartyUUID })
	uuids = append(uuids, lo.Map(
		lo.Filter(deletes, func(e domain.DeleteEvent, _ int) bool {
			return e.Kind == domain.SoftDeletedByRecipient || e.Kind == domain.RestoredByRecipient
		}),
		func(e domain.DeleteEvent, _ int) uuid.UUID { return e.PartyUUID })...)

	endUserByParty := make(map[uuid.UUID]string)
	for _, partyUUID := range lo.Uniq(uuids) {
		party, err := r.directory.LookUpPartyByUUID(ctx, partyUUID)
		if err != nil {
			if errors.Is(err, apperrors.ErrPartyNotFound) {
				r.log.Warn("Party not found in register, dialog updates for it will be skipped",
					"party_uuid", partyUUID)
				continue
			}
			return nil, err
		}
		endUserID, err := party.EndUserID()
		if err != nil {
			r.log.Warn("Cannot build end-user identifier", "party_uuid", partyUUID, "error", err)
			continue
		}
		endUserByParty[partyUUID] = endUserID
	}
	return endUserByParty, nil
}
