package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"correspondence-lab/domain"
	apperrors "correspondence-lab/errors"
	"correspondence-lab/mocks"
	"correspondence-lab/repositories"
	"correspondence-lab/transaction"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type engineFixture struct {
	t         *testing.T
	db        *badger.DB
	directory *mocks.MockIPartyDirectory
	purger    *mocks.MockIAttachmentPurger
	outbox    repositories.OutboxRepository
	service   SyncService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	db, err := badger.Open(badger.DefaultOptions(t.TempDir()).WithLoggingLevel(badger.ERROR))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	log := slog.Default()
	f := &engineFixture{
		t:         t,
		db:        db,
		directory: mocks.NewMockIPartyDirectory(ctrl),
		purger:    mocks.NewMockIAttachmentPurger(ctrl),
		outbox:    repositories.NewOutboxRepository(db, log),
	}
	f.service = NewSyncService(
		log,
		transaction.NewRunner(db, log),
		repositories.NewCorrespondenceRepository(log),
		repositories.NewStatusRepository(log),
		repositories.NewDeleteEventRepository(log),
		repositories.NewNotificationRepository(log),
		repositories.NewForwardingRepository(log),
		f.outbox,
		f.directory,
		f.purger,
	)
	return f
}

func (f *engineFixture) save(c domain.Correspondence) {
	f.t.Helper()
	repository := repositories.NewCorrespondenceRepository(slog.Default())
	err := f.db.Update(func(txn *badger.Txn) error {
		return repository.Save(txn, c)
	})
	require.NoError(f.t, err)
}

func (f *engineFixture) history(correspondenceID uuid.UUID) []domain.StatusEvent {
	f.t.Helper()
	repository := repositories.NewStatusRepository(slog.Default())
	var events []domain.StatusEvent
	err := f.db.View(func(txn *badger.Txn) error {
		var err error
		events, err = repository.History(txn, correspondenceID)
		return err
	})
	require.NoError(f.t, err)
	return events
}

func (f *engineFixture) softDeleted(correspondenceID uuid.UUID) bool {
	f.t.Helper()
	repository := repositories.NewDeleteEventRepository(slog.Default())
	var deleted bool
	err := f.db.View(func(txn *badger.Txn) error {
		var err error
		deleted, err = repository.SoftDeleted(txn, correspondenceID)
		return err
	})
	require.NoError(f.t, err)
	return deleted
}

func (f *engineFixture) jobs() []repositories.Job {
	f.t.Helper()
	jobs, err := f.outbox.All()
	require.NoError(f.t, err)
	return jobs
}

func (f *engineFixture) knownPerson(partyUUID uuid.UUID, ssn string) {
	f.directory.EXPECT().LookUpPartyByUUID(gomock.Any(), partyUUID).
		Return(domain.Party{UUID: partyUUID, Type: domain.PartyPerson, SSN: ssn}, nil).
		AnyTimes()
}

func (f *engineFixture) unknownParty(partyUUID uuid.UUID) {
	f.directory.EXPECT().LookUpPartyByUUID(gomock.Any(), partyUUID).
		Return(domain.Party{}, apperrors.ErrPartyNotFound).
		AnyTimes()
}

func testCorrespondence(migrating bool) domain.Correspondence {
	return domain.Correspondence{
		ID:         uuid.New(),
		ResourceID: "skd-tax-notice",
		Sender:     "0192:974761076",
		Recipient:  "urn:altinn:person:identifier-no:01010100000",
		Migrating:  migrating,
		ExternalReferences: []domain.ExternalReference{
			{Kind: domain.ReferenceDialogID, Value: "0192ef42-dialog"},
		},
	}
}

func Test_Sync_Read_Event_Creates_Opened_Activity_And_Publishes(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusRead, StatusChanged: at, PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	history := f.history(c.ID)
	req.Len(history, 1)
	req.Equal(domain.StatusRead, history[0].Status)
	req.Equal("Synced event Read from Altinn 2", history[0].StatusText)
	req.NotNil(history[0].SyncedAt)

	jobs := f.jobs()
	req.Len(jobs, 2)
	req.Equal(repositories.JobDialogOpenedActivity, jobs[0].Kind)
	req.Equal("person:01010100000", jobs[0].EndUserID)
	req.Equal(at, jobs[0].OperationTime)
	req.Equal(repositories.JobBusPublish, jobs[1].Kind)
	req.Equal(domain.BusReceiverRead, jobs[1].BusEvent)
	req.Equal(c.ResourceID, jobs[1].ResourceID)
	req.Equal(c.Sender, jobs[1].Sender)
}

func Test_Sync_Confirmed_Chains_Activity_After_Patch(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusConfirmed, StatusChanged: at, PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	jobs := f.jobs()
	req.Len(jobs, 3)
	req.Equal(repositories.JobDialogPatchConfirmed, jobs[0].Kind)
	req.Equal(repositories.JobDialogConfirmedActivity, jobs[1].Kind)
	req.NotNil(jobs[1].ParentID)
	req.Equal(jobs[0].ID, *jobs[1].ParentID)
	req.True(jobs[1].OnlyOnSuccess)
	req.Equal(repositories.JobBusPublish, jobs[2].Kind)
	req.Equal(domain.BusReceiverConfirmed, jobs[2].BusEvent)
}

func Test_Sync_Archived_Adds_Archive_Label(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusArchived, StatusChanged: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	jobs := f.jobs()
	req.Len(jobs, 1)
	req.Equal(repositories.JobDialogUpdateLabels, jobs[0].Kind)
	req.Equal([]domain.SystemLabel{domain.LabelArchive}, jobs[0].AddLabels)
	req.Empty(jobs[0].RemoveLabels)
}

func Test_Sync_Replay_Is_Idempotent(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	request := SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusRead, StatusChanged: at, PartyUUID: party},
			{Status: domain.StatusConfirmed, StatusChanged: at.Add(time.Minute), PartyUUID: party},
		},
	}

	count, err := f.service.Sync(context.Background(), request)
	req.NoError(err)
	req.Equal(2, count)
	jobsAfterFirst := len(f.jobs())

	// Replaying the identical batch persists nothing and enqueues nothing.
	count, err = f.service.Sync(context.Background(), request)
	req.NoError(err)
	req.Equal(0, count)
	req.Len(f.history(c.ID), 2)
	req.Len(f.jobs(), jobsAfterFirst)
}

func Test_Sync_Drops_NonWhitelisted_Statuses(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusPublished, StatusChanged: time.Now().UTC(), PartyUUID: uuid.New()},
			{Status: domain.StatusInitialized, StatusChanged: time.Now().UTC(), PartyUUID: uuid.New()},
		},
	})
	req.NoError(err)
	req.Equal(0, count)
	req.Empty(f.history(c.ID))
	req.Empty(f.jobs())
}

func Test_Sync_Applies_Events_Chronologically_Regardless_Of_Input_Order(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Restore first in the batch, but the soft delete happened later.
	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.RestoredByRecipient, EventOccurred: at, PartyUUID: party},
			{Kind: domain.SoftDeletedByRecipient, EventOccurred: at.Add(time.Minute), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(2, count)
	req.True(f.softDeleted(c.ID))

	// Label jobs follow timeline order: restore first, then soft delete.
	jobs := f.jobs()
	req.Len(jobs, 2)
	req.Equal([]domain.SystemLabel{domain.LabelBin}, jobs[0].RemoveLabels)
	req.Equal([]domain.SystemLabel{domain.LabelBin}, jobs[1].AddLabels)
}

func Test_Sync_Equal_Timestamp_SoftDelete_And_Restore(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.SoftDeletedByRecipient, EventOccurred: at, PartyUUID: party},
			{Kind: domain.RestoredByRecipient, EventOccurred: at, PartyUUID: party},
		},
	})
	req.NoError(err)

	// Both are distinct events; the tie resolves to not deleted.
	req.Equal(2, count)
	req.False(f.softDeleted(c.ID))
}

func Test_Sync_Purge_Happens_Only_Once(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	f.purger.EXPECT().PurgeAttachments(gomock.Any(), c.ID, party).Return(nil).Times(1)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.HardDeletedByRecipient, EventOccurred: at, PartyUUID: party},
			{Kind: domain.HardDeletedByOperator, EventOccurred: at.Add(time.Minute), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	history := f.history(c.ID)
	req.Len(history, 1)
	req.Equal(domain.StatusPurgedByRecipient, history[0].Status)

	jobs := f.jobs()
	req.Len(jobs, 3)
	req.Equal(repositories.JobBusPublish, jobs[0].Kind)
	req.Equal(domain.BusPurged, jobs[0].BusEvent)
	req.Equal(repositories.JobDialogPurgedActivity, jobs[1].Kind)
	req.Equal("mottaker", jobs[1].ActorName)
	req.Equal(repositories.JobDialogSoftDelete, jobs[2].Kind)
	req.Equal("0192ef42-dialog", jobs[2].DialogID)
	req.NotNil(jobs[2].ParentID)
	req.Equal(jobs[1].ID, *jobs[2].ParentID)
}

func Test_Sync_Operator_Purge_Uses_Sender_Actor(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.purger.EXPECT().PurgeAttachments(gomock.Any(), c.ID, party).Return(nil).Times(1)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.HardDeletedByOperator, EventOccurred: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	history := f.history(c.ID)
	req.Len(history, 1)
	req.Equal(domain.StatusPurgedByAltinn, history[0].Status)

	activity, found := lo.Find(f.jobs(), func(j repositories.Job) bool {
		return j.Kind == repositories.JobDialogPurgedActivity
	})
	req.True(found)
	req.Equal("avsender", activity.ActorName)
}

func Test_Sync_Migrating_Suppresses_External_Effects(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(true)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusConfirmed, StatusChanged: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.NoError(err)

	// The row is persisted, nothing leaves the process.
	req.Equal(1, count)
	req.Len(f.history(c.ID), 1)
	req.Empty(f.jobs())
}

func Test_Sync_Migrating_Purge_Still_Removes_Attachments(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(true)
	f.save(c)

	party := uuid.New()
	f.purger.EXPECT().PurgeAttachments(gomock.Any(), c.ID, party).Return(nil).Times(1)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.HardDeletedByRecipient, EventOccurred: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)
	req.Len(f.history(c.ID), 1)
	req.Empty(f.jobs())
}

func Test_Sync_Missing_Dialog_Reference_Aborts_Purge(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	c.ExternalReferences = nil
	f.save(c)

	party := uuid.New()
	f.purger.EXPECT().PurgeAttachments(gomock.Any(), c.ID, party).Return(nil).Times(1)

	_, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.HardDeletedByRecipient, EventOccurred: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.ErrorIs(err, apperrors.ErrDialogReferenceMissing)

	// The transaction rolled back: no rows, no jobs.
	req.Empty(f.history(c.ID))
	req.False(f.softDeleted(c.ID))
	req.Empty(f.jobs())
}

func Test_Sync_Unknown_Party_Skips_Dialog_Updates(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.unknownParty(party)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusRead, StatusChanged: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(1, count)

	// The publication does not need an end user, the activity does.
	jobs := f.jobs()
	req.Len(jobs, 1)
	req.Equal(repositories.JobBusPublish, jobs[0].Kind)
}

func Test_Sync_Restore_After_Archive_Reapplies_Archive_Label(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	party := uuid.New()
	f.knownPerson(party, "01010100000")
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusArchived, StatusChanged: at, PartyUUID: party},
		},
		DeleteEvents: []domain.DeleteEvent{
			{Kind: domain.SoftDeletedByRecipient, EventOccurred: at.Add(time.Minute), PartyUUID: party},
			{Kind: domain.RestoredByRecipient, EventOccurred: at.Add(2 * time.Minute), PartyUUID: party},
		},
	})
	req.NoError(err)
	req.Equal(3, count)

	jobs := f.jobs()
	req.Len(jobs, 3)
	req.Equal([]domain.SystemLabel{domain.LabelArchive}, jobs[0].AddLabels)
	req.Equal([]domain.SystemLabel{domain.LabelBin}, jobs[1].AddLabels)
	// Archived before: the restore reapplies Archive instead of removing Bin.
	req.Equal([]domain.SystemLabel{domain.LabelArchive}, jobs[2].AddLabels)
	req.Empty(jobs[2].RemoveLabels)
}

func Test_Sync_Notifications_Are_Deduplicated(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	request := SyncRequest{
		CorrespondenceID: c.ID,
		NotificationEvents: []domain.NotificationEvent{
			{Channel: domain.ChannelEmail, Sent: at, Address: "someone@example.com", ExternalID: "n-1"},
			{Channel: domain.ChannelEmail, Sent: at.Add(200 * time.Millisecond), Address: "someone@example.com", ExternalID: "n-1"},
			{Channel: domain.ChannelSMS, Sent: at, Address: "+4799999999", ExternalID: "n-2"},
		},
	}

	count, err := f.service.Sync(context.Background(), request)
	req.NoError(err)
	req.Equal(2, count)

	count, err = f.service.Sync(context.Background(), request)
	req.NoError(err)
	req.Equal(0, count)
	req.Empty(f.jobs())
}

func Test_Sync_Forwarding_Enqueues_Dialog_Job(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(false)
	f.save(c)

	event := domain.ForwardingEvent{
		ForwardedOn: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		ByPartyUUID: uuid.New(),
		ToEmail:     "someone@example.com",
		Text:        "see attached notice",
	}

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		ForwardingEvents: []domain.ForwardingEvent{event},
	})
	req.NoError(err)
	req.Equal(1, count)

	jobs := f.jobs()
	req.Len(jobs, 1)
	req.Equal(repositories.JobDialogForwardingEvent, jobs[0].Kind)
	req.NotNil(jobs[0].Forwarding)
	req.Equal("someone@example.com", jobs[0].Forwarding.ToEmail)
}

func Test_Sync_Migrating_Forwarding_Persists_Without_Job(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)
	c := testCorrespondence(true)
	f.save(c)

	count, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: c.ID,
		ForwardingEvents: []domain.ForwardingEvent{
			{ForwardedOn: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), ByPartyUUID: uuid.New()},
		},
	})
	req.NoError(err)
	req.Equal(1, count)
	req.Empty(f.jobs())
}

func Test_Sync_Rejects_Missing_Correspondence_ID(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)

	_, err := f.service.Sync(context.Background(), SyncRequest{})
	req.Error(err)
}

func Test_Sync_Unknown_Correspondence_Fails(t *testing.T) {
	req := require.New(t)
	f := newEngineFixture(t)

	_, err := f.service.Sync(context.Background(), SyncRequest{
		CorrespondenceID: uuid.New(),
		StatusEvents: []domain.StatusEvent{
			{Status: domain.StatusRead, StatusChanged: time.Now().UTC(), PartyUUID: uuid.New()},
		},
	})
	req.ErrorIs(err, apperrors.ErrCorrespondenceNotFound)
}
