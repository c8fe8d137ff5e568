package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"correspondence-lab/services"
)

// Syncer is the slice of the sync service the ingestor needs.
type Syncer interface {
	Sync(ctx context.Context, req services.SyncRequest) (int, error)
}

// BatchIngestor replays event batches dropped as JSON files into the
// ingest directory. Each file holds one SyncRequest; processed files are
// renamed with a ".done" or ".failed" suffix so a restart never replays
// a batch twice at the file level (the engine itself is idempotent
// anyway).
type BatchIngestor struct {
	log      *slog.Logger
	syncer   Syncer
	dir      string
	interval time.Duration
}

func NewBatchIngestor(log *slog.Logger, syncer Syncer, dir string, interval time.Duration) *BatchIngestor {
	return &BatchIngestor{log: log, syncer: syncer, dir: dir, interval: interval}
}

func (w *BatchIngestor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.log.Warn("Ingest sweep failed", "error", err)
			}
		case <-ctx.Done():
			w.log.Debug("Context done, stopping batch ingestor")
			return nil
		}
	}
}

// Sweep processes every pending batch file in lexical order, so files
// named with a sortable timestamp replay in submission order.
func (w *BatchIngestor) Sweep(ctx context.Context) error {
	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return fmt.Errorf("failed to read ingest directory %s: %w", w.dir, err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		pending = append(pending, entry.Name())
	}
	sort.Strings(pending)

	for _, name := range pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		w.ingest(ctx, filepath.Join(w.dir, name))
	}
	return nil
}

func (w *BatchIngestor) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		w.log.Warn("Failed to read batch file", "path", path, "error", err)
		return
	}

	var req services.SyncRequest
	if err = json.Unmarshal(data, &req); err != nil {
		w.log.Warn("Failed to decode batch file", "path", path, "error", err)
		w.finish(path, ".failed")
		return
	}

	count, err := w.syncer.Sync(ctx, req)
	if err != nil {
		w.log.Warn("Batch replay failed",
			"path", path, "correspondence_id", req.CorrespondenceID, "error", err)
		w.finish(path, ".failed")
		return
	}

	w.log.Info("Batch replayed",
		"path", path, "correspondence_id", req.CorrespondenceID, "events_persisted", count)
	w.finish(path, ".done")
}

func (w *BatchIngestor) finish(path, suffix string) {
	if err := os.Rename(path, path+suffix); err != nil {
		w.log.Warn("Failed to rename batch file", "path", path, "error", err)
	}
}
