// Package transaction wraps a unit of work in one all-or-nothing badger
// transaction with bounded retry on transient conflicts. Event rows and
// outbox job rows commit together, which is what makes a retried replay
// safe: the previous attempt either fully committed or left nothing.
package transaction

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	defaultAttempts = 10
	defaultBackoff  = 10 * time.Millisecond
)

// Runner executes operations inside a read-write transaction.
//
// Transient classifies errors worth retrying; it defaults to badger's
// conflict error so the retry policy itself stays storage-agnostic. Any
// error not classified transient propagates immediately.
type Runner struct {
	db  *badger.DB
	log *slog.Logger

	Attempts  int
	Backoff   time.Duration
	Transient func(error) bool
}

func NewRunner(db *badger.DB, log *slog.Logger) *Runner {
	return &Runner{
		db:       db,
		log:      log,
		Attempts: defaultAttempts,
		Backoff:  defaultBackoff,
		Transient: func(err error) bool {
			return errors.Is(err, badger.ErrConflict)
		},
	}
}

// Execute runs op inside a transaction, committing on success. On a
// transient failure the whole operation is re-executed from scratch, up
// to the attempt bound with a short fixed backoff; there is deliberately
// no exponential backoff here, the surrounding job runner owns
// longer-horizon retries. The final error is returned once the bound is
// exhausted.
func (r *Runner) Execute(ctx context.Context, op func(txn *badger.Txn) error) error {
	var lastErr error
	for attempt := 1; attempt <= r.Attempts; attempt++ {
		lastErr = r.once(op)
		if lastErr == nil {
			return nil
		}
		if !r.Transient(lastErr) {
			return lastErr
		}
		r.log.Warn("Transient failure, retrying transaction",
			"attempt", attempt, "error", lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(r.Backoff):
		}
	}
	r.log.Error("Transaction retries exhausted", "attempts", r.Attempts, "error", lastErr)
	return lastErr
}

func (r *Runner) once(op func(txn *badger.Txn) error) error {
	txn := r.db.NewTransaction(true)
	defer txn.Discard()

	if err := op(txn); err != nil {
		return err
	}
	return txn.Commit()
}
