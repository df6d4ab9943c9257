package worker

import (
	"github.com/hmistry/gutensync/ingest"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
)

type Pool struct {
	queue chan model.SyncJob
}

// NewPool creates a pool of background sync workers. One worker is enough in
// practice since syncs of the same kind refuse to overlap anyway.
func NewPool(store *store.Store, service *ingest.Service, size int) *Pool {
	pool := &Pool{
		queue: make(chan model.SyncJob, 8),
	}

	for i := 0; i < size; i++ {
		worker := &SyncWorker{id: i, store: store, service: service}
		go worker.Run(pool.queue)
	}
	return pool
}

// Push queues a job for execution. The job must already be persisted so its
// status survives a restart.
func (p *Pool) Push(job model.SyncJob) {
	p.queue <- job
}
