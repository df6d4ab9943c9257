package scheduler

import (
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
	"github.com/hmistry/gutensync/worker"
)

// Scheduler enqueues sync jobs on the configured cron schedules. It never
// runs a sync itself; the job goes through the store and the worker pool so
// scheduled and API-triggered runs share one code path.
type Scheduler struct {
	store *store.Store
	pool  worker.WorkPool
	cron  *cron.Cron
}

func NewScheduler(store *store.Store, pool worker.WorkPool) *Scheduler {
	return &Scheduler{
		store: store,
		pool:  pool,
		cron:  cron.New(),
	}
}

// Start registers the configured schedules and starts the cron loop. An
// empty schedule disables that sync kind.
func (s *Scheduler) Start() error {
	if spec := config.Opts.DailySyncSchedule; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() {
			s.enqueue(model.SyncKindDaily)
		}); err != nil {
			return errors.Wrapf(err, "invalid daily sync schedule %q", spec)
		}
		log.Info("Scheduled daily feed sync", zap.String("schedule", spec))
	}
	if spec := config.Opts.CatalogSyncSchedule; spec != "" {
		if _, err := s.cron.AddFunc(spec, func() {
			s.enqueue(model.SyncKindCatalog)
		}); err != nil {
			return errors.Wrapf(err, "invalid catalog sync schedule %q", spec)
		}
		log.Info("Scheduled catalog sync", zap.String("schedule", spec))
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) enqueue(kind string) {
	job, err := s.store.AddSyncJob(model.SyncJob{Kind: kind, Status: model.JobStatusPending})
	if err != nil {
		log.Error("Failed to persist scheduled sync job",
			zap.String("kind", kind), zap.Error(err))
		return
	}
	s.pool.Push(*job)
}
