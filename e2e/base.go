package e2e

import (
	"context"
	"fmt"
	"sync"
	"time"

	"correspondence-lab/domain"
	"correspondence-lab/infrastructure/attachments"
	"correspondence-lab/infrastructure/registry"
	"correspondence-lab/repositories"
	"correspondence-lab/runtime/workers"
	"correspondence-lab/services"
	"correspondence-lab/transaction"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
)

// BaseEngineSuite boots the full engine against a real badger database
// with recording collaborators, so scenarios can assert what actually
// left the process.
type BaseEngineSuite struct {
	suite.Suite

	Config     Config
	DB         *badger.DB
	Directory  registry.BadgerPartyDirectory
	Outbox     repositories.OutboxRepository
	Service    services.SyncService
	Dispatcher *workers.OutboxDispatcher
	Dialog     *RecordingDialog
	Bus        *RecordingBus
}

func (s *BaseEngineSuite) SetupTest() {
	cfg, err := LoadConfig()
	s.Require().NoError(err)
	s.Config = cfg

	path := cfg.BadgerFilepath
	if path == "" {
		path = s.T().TempDir()
	}
	db, err := badger.Open(badger.DefaultOptions(path).WithLoggingLevel(badger.ERROR))
	s.Require().NoError(err)
	s.DB = db

	log := logs.GetLoggerFromString(cfg.LogLevel)
	s.Directory = registry.NewBadgerPartyDirectory(db, log)
	s.Outbox = repositories.NewOutboxRepository(db, log)
	s.Dialog = &RecordingDialog{}
	s.Bus = &RecordingBus{}

	s.Service = services.NewSyncService(
		log,
		transaction.NewRunner(db, log),
		repositories.NewCorrespondenceRepository(log),
		repositories.NewStatusRepository(log),
		repositories.NewDeleteEventRepository(log),
		repositories.NewNotificationRepository(log),
		repositories.NewForwardingRepository(log),
		s.Outbox,
		s.Directory,
		attachments.NewBadgerAttachmentPurger(db, log),
	)
	s.Dispatcher = workers.NewOutboxDispatcher(log, s.Outbox, s.Dialog, s.Bus, 10*time.Millisecond, 3)
}

func (s *BaseEngineSuite) TearDownTest() {
	if s.DB != nil {
		s.Require().NoError(s.DB.Close())
	}
}

// Drain runs dispatcher passes until the outbox settles.
func (s *BaseEngineSuite) Drain(ctx context.Context) {
	for range s.Config.DispatchRounds {
		s.Require().NoError(s.Dispatcher.Drain(ctx))
	}
}

func (s *BaseEngineSuite) SaveCorrespondence(c domain.Correspondence) {
	repository := repositories.NewCorrespondenceRepository(logs.GetLoggerFromString(s.Config.LogLevel))
	err := s.DB.Update(func(txn *badger.Txn) error {
		return repository.Save(txn, c)
	})
	s.Require().NoError(err)
}

func (s *BaseEngineSuite) SeedAttachment(correspondenceID uuid.UUID, attachmentID string) {
	key := fmt.Sprintf("attach:%s:%s", correspondenceID, attachmentID)
	err := s.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte("blob-reference"))
	})
	s.Require().NoError(err)
}

func (s *BaseEngineSuite) AttachmentCount(correspondenceID uuid.UUID) int {
	count := 0
	err := s.DB.View(func(txn *badger.Txn) error {
		prefix := []byte(fmt.Sprintf("attach:%s:", correspondenceID))
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	s.Require().NoError(err)
	return count
}

// RecordingDialog captures dialog-service calls in order.
type RecordingDialog struct {
	mu    sync.Mutex
	Calls []string
}

func (d *RecordingDialog) record(call string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Calls = append(d.Calls, call)
}

func (d *RecordingDialog) PatchDialogToConfirmed(_ context.Context, correspondenceID uuid.UUID) error {
	d.record(fmt.Sprintf("patch_confirmed:%s", correspondenceID))
	return nil
}

func (d *RecordingDialog) CreateOpenedActivity(_ context.Context, correspondenceID uuid.UUID, endUserID string, _ time.Time) error {
	d.record(fmt.Sprintf("opened_activity:%s:%s", correspondenceID, endUserID))
	return nil
}

func (d *RecordingDialog) CreateConfirmedActivity(_ context.Context, correspondenceID uuid.UUID, endUserID string, _ time.Time) error {
	d.record(fmt.Sprintf("confirmed_activity:%s:%s", correspondenceID, endUserID))
	return nil
}

func (d *RecordingDialog) CreatePurgedActivity(_ context.Context, correspondenceID uuid.UUID, actorName string, _ time.Time) error {
	d.record(fmt.Sprintf("purged_activity:%s:%s", correspondenceID, actorName))
	return nil
}

func (d *RecordingDialog) UpdateSystemLabels(_ context.Context, correspondenceID uuid.UUID, endUserID string, add, remove []domain.SystemLabel) error {
	d.record(fmt.Sprintf("update_labels:%s:%s:add=%v:remove=%v", correspondenceID, endUserID, add, remove))
	return nil
}

func (d *RecordingDialog) SoftDeleteDialog(_ context.Context, dialogID string) error {
	d.record(fmt.Sprintf("soft_delete_dialog:%s", dialogID))
	return nil
}

func (d *RecordingDialog) AddForwardingEvent(_ context.Context, correspondenceID uuid.UUID, event domain.ForwardingEvent) error {
	d.record(fmt.Sprintf("forwarding_event:%s:%s", correspondenceID, event.ToEmail))
	return nil
}

// RecordingBus captures published events in order.
type RecordingBus struct {
	mu     sync.Mutex
	Events []string
}

func (b *RecordingBus) Publish(_ context.Context, eventType domain.BusEventType, resourceID, itemID, _ string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.Events = append(b.Events, fmt.Sprintf("%s:%s:%s", eventType, resourceID, itemID))
	return nil
}
