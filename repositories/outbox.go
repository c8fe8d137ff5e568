//go:generate go run go.uber.org/mock/mockgen -source=outbox.go -destination=../mocks/mock_outbox.go -package=mocks
package repositories

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"correspondence-lab/domain"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

// JobKind names the deferred side effects the sync engine can produce.
type JobKind string

const (
	JobDialogPatchConfirmed    JobKind = "dialog.patch_confirmed"
	JobDialogOpenedActivity    JobKind = "dialog.opened_activity"
	JobDialogConfirmedActivity JobKind = "dialog.confirmed_activity"
	JobDialogPurgedActivity    JobKind = "dialog.purged_activity"
	JobDialogUpdateLabels      JobKind = "dialog.update_labels"
	JobDialogSoftDelete        JobKind = "dialog.soft_delete"
	JobDialogForwardingEvent   JobKind = "dialog.forwarding_event"
	JobBusPublish              JobKind = "bus.publish"
)

type JobState string

const (
	JobPending   JobState = "pending"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Job is one outbox row. It is written in the same transaction as the
// event rows it belongs to, so a rollback takes the job with it and a
// commit guarantees the dispatcher will eventually see it.
type Job struct {
	ID               uuid.UUID
	Kind             JobKind
	State            JobState
	CorrespondenceID uuid.UUID

	// Payload. Which fields are meaningful depends on Kind.
	ResourceID    string
	Sender        string
	EndUserID     string
	ActorName     string
	DialogID      string
	BusEvent      domain.BusEventType
	OperationTime time.Time
	AddLabels     []domain.SystemLabel
	RemoveLabels  []domain.SystemLabel
	Forwarding    *domain.ForwardingEvent

	// ParentID chains this job after another one; with OnlyOnSuccess the
	// dispatcher runs it only once the parent has succeeded and fails it
	// when the parent failed.
	ParentID      *uuid.UUID
	OnlyOnSuccess bool

	NotBefore  time.Time
	Seq        int64
	Attempts   int
	EnqueuedAt time.Time
}

// IJobQueue is the enqueue surface the engine sees. All three operations
// write rows through the caller's transaction; nothing leaves the process
// until that transaction commits.
type IJobQueue interface {
	Enqueue(txn *badger.Txn, job Job) (uuid.UUID, error)
	Schedule(txn *badger.Txn, job Job, at time.Time) (uuid.UUID, error)
	ContinueWith(txn *badger.Txn, parentID uuid.UUID, job Job) (uuid.UUID, error)
}

// OutboxRepository implements the transactional outbox: enqueue writes
// through the engine transaction, the dispatcher side reads and acks with
// its own short transactions.
type OutboxRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewOutboxRepository(db *badger.DB, log *slog.Logger) OutboxRepository {
	return OutboxRepository{db: db, log: log}
}

func outboxKey(job Job) []byte {
	return []byte(fmt.Sprintf("outbox:%019d:%s", job.Seq, job.ID))
}

// lastSeq makes the sequence strictly monotonic even when two enqueues
// land on the same clock reading, so key order always matches enqueue
// order.
var lastSeq atomic.Int64

func nextSeq() int64 {
	for {
		seq := time.Now().UnixNano()
		last := lastSeq.Load()
		if seq <= last {
			seq = last + 1
		}
		if lastSeq.CompareAndSwap(last, seq) {
			return seq
		}
	}
}

func (r OutboxRepository) Enqueue(txn *badger.Txn, job Job) (uuid.UUID, error) {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	job.State = JobPending
	job.EnqueuedAt = time.Now().UTC()
	job.Seq = nextSeq()

	bytes, err := json.Marshal(job)
	if err != nil {
		return uuid.Nil, err
	}
	if err = txn.Set(outboxKey(job), bytes); err != nil {
		return uuid.Nil, err
	}
	r.log.Debug("Job enqueued", "job_id", job.ID, "kind", job.Kind,
		"correspondence_id", job.CorrespondenceID)
	return job.ID, nil
}

func (r OutboxRepository) Schedule(txn *badger.Txn, job Job, at time.Time) (uuid.UUID, error) {
	job.NotBefore = at
	return r.Enqueue(txn, job)
}

func (r OutboxRepository) ContinueWith(txn *badger.Txn, parentID uuid.UUID, job Job) (uuid.UUID, error) {
	job.ParentID = &parentID
	job.OnlyOnSuccess = true
	return r.Enqueue(txn, job)
}

// All returns every outbox row in enqueue order. The dispatcher works on
// this snapshot; queues here are per-deployment small (jobs are pruned
// once delivered and observed).
func (r OutboxRepository) All() ([]Job, error) {
	var jobs []Job
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte("outbox:")
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var job Job
			err := it.Item().Value(func(value []byte) error {
				return json.Unmarshal(value, &job)
			})
			if err != nil {
				return err
			}
			jobs = append(jobs, job)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jobs, nil
}

// Store rewrites a job row in place (state/attempt changes by the
// dispatcher). The key is derived from immutable fields, so the row
// never moves.
func (r OutboxRepository) Store(job Job) error {
	bytes, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(outboxKey(job), bytes)
	})
}
