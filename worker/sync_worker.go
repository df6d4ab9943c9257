package worker

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/ingest"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
)

type SyncWorker struct {
	id      int
	store   *store.Store
	service *ingest.Service
}

// Run executes queued sync jobs one at a time, recording progress on the
// persisted job row.
func (w *SyncWorker) Run(c <-chan model.SyncJob) {
	log.Debug("SyncWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Info("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("job_id", job.ID),
			zap.String("kind", job.Kind))

		job.Status = model.JobStatusRunning
		if err := w.store.UpdateSyncJob(&job); err != nil {
			log.Error("Failed to mark job running", zap.Int("job_id", job.ID), zap.Error(err))
		}

		result, err := w.runSync(job.Kind)

		job.FinishedAt = time.Now().UTC().Format("2006-01-02 15:04:05")
		if err != nil {
			job.Status = model.JobStatusFailed
			job.Error = err.Error()
			log.Error("Sync job failed",
				zap.Int("job_id", job.ID),
				zap.String("kind", job.Kind),
				zap.Error(err))
		} else {
			job.Status = model.JobStatusDone
			job.Inserted = result.Inserted
			job.Updated = result.Updated
			job.Linked = result.Linked
			job.Skipped = result.Skipped
			log.Info("Sync job done",
				zap.Int("job_id", job.ID),
				zap.String("kind", job.Kind),
				zap.Int("inserted", result.Inserted),
				zap.Int("linked", result.Linked))
		}

		if err := w.store.UpdateSyncJob(&job); err != nil {
			log.Error("Failed to record job result", zap.Int("job_id", job.ID), zap.Error(err))
		}
	}
}

func (w *SyncWorker) runSync(kind string) (*ingest.Result, error) {
	ctx := context.Background()
	switch kind {
	case model.SyncKindCatalog:
		return w.service.RunCatalogSync(ctx, nil)
	case model.SyncKindDaily:
		return w.service.RunDailySync(ctx)
	default:
		return nil, errors.Errorf("unknown sync kind %q", kind)
	}
}
