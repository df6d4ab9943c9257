package worker

import (
	"github.com/hmistry/gutensync/model"
)

type Worker interface {
	Run(c <-chan model.SyncJob)
}

// WorkPool accepts queued sync jobs for background execution.
type WorkPool interface {
	Push(job model.SyncJob)
}
