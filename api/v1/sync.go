package v1

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hmistry/gutensync/http/request"
	"github.com/hmistry/gutensync/http/response"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
)

func (h *Handler) startCatalogSync(w http.ResponseWriter, r *http.Request) {
	h.startSync(w, r, model.SyncKindCatalog)
}

func (h *Handler) startDailySync(w http.ResponseWriter, r *http.Request) {
	h.startSync(w, r, model.SyncKindDaily)
}

// startSync persists a pending job and hands it to the worker pool. The
// response carries the job id so the client can poll for the outcome.
func (h *Handler) startSync(w http.ResponseWriter, r *http.Request, kind string) {
	log.Info("Sync requested",
		zap.String("kind", kind),
		zap.String("client_ip", request.ClientIP(r)))

	job, err := h.store.AddSyncJob(model.SyncJob{Kind: kind, Status: model.JobStatusPending})
	if err != nil {
		log.Error("Failed to add sync job", zap.String("kind", kind), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	go h.syncPool.Push(*job)
	response.Accepted(w, r, job)
}

func (h *Handler) listSyncJobs(w http.ResponseWriter, r *http.Request) {
	limit := request.QueryIntParam(r, "limit", 50)

	jobs, err := h.store.ListSyncJobs(limit)
	if err != nil {
		log.Error("Error listing sync jobs", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, jobs)
}

func (h *Handler) getSyncJob(w http.ResponseWriter, r *http.Request) {
	id := request.RouteIntParam(r, "id")

	job, err := h.store.GetSyncJob(id)
	if err != nil {
		log.Error("Error getting sync job", zap.Int("job_id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if job == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, job)
}
