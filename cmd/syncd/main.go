package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"correspondence-lab/infrastructure/attachments"
	"correspondence-lab/infrastructure/bus"
	"correspondence-lab/infrastructure/dialogporten"
	"correspondence-lab/infrastructure/registry"
	"correspondence-lab/repositories"
	"correspondence-lab/runtime/workers"
	"correspondence-lab/services"
	"correspondence-lab/transaction"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

// run initializes all components and centralizes error reporting, so
// every defer (database close included) executes before the process
// exits.
func run() error {
	// 1. Configuration & Logger
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Database (BadgerDB)
	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer func() {
		log.Info("Closing BadgerDB...")
		_ = db.Close()
	}()

	// 3. Engine wiring
	runner := transaction.NewRunner(db, log)
	outbox := repositories.NewOutboxRepository(db, log)
	syncService := services.NewSyncService(
		log,
		runner,
		repositories.NewCorrespondenceRepository(log),
		repositories.NewStatusRepository(log),
		repositories.NewDeleteEventRepository(log),
		repositories.NewNotificationRepository(log),
		repositories.NewForwardingRepository(log),
		outbox,
		registry.NewBadgerPartyDirectory(db, log),
		attachments.NewBadgerAttachmentPurger(db, log),
	)

	// 4. Workers & Supervision
	dispatcher := workers.NewOutboxDispatcher(
		log, outbox,
		dialogporten.NewAuditClient(log),
		bus.NewAuditPublisher(log),
		config.DispatchInterval, config.MaxJobAttempts,
	)
	ingestor := workers.NewBatchIngestor(log, syncService, config.IngestDir, config.IngestInterval)
	sup := workers.NewSupervisor(log, config.RestartInterval).
		Add(ingestor, dispatcher)

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("Starting sync daemon",
		"ingest_dir", config.IngestDir, "badger_filepath", config.BadgerFilepath)
	sup.Run(ctx)

	log.Info("Program stopped cleanly")
	return nil
}
