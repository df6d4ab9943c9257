package v1

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hmistry/gutensync/http/request"
	"github.com/hmistry/gutensync/http/response"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
)

func (h *Handler) listCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.store.ListCollections()
	if err != nil {
		log.Error("Error listing collections", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, collections)
}

// getCollection returns the books of one day's collection. The date is the
// day key, e.g. /collection/2026-09-01.
func (h *Handler) getCollection(w http.ResponseWriter, r *http.Request) {
	date := request.RouteStringParam(r, "date")
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		response.BadRequest(w, r, err)
		return
	}
	collection, err := h.store.GetCollection(day)
	if err != nil {
		log.Error("Error getting collection", zap.String("date", date), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if collection == nil {
		response.NotFound(w, r)
		return
	}

	books, err := h.store.ListBooks(&model.FindBook{CollectionDate: &date})
	if err != nil {
		log.Error("Error listing collection books", zap.String("date", date), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}

	response.OK(w, r, map[string]interface{}{
		"date":  date,
		"books": books,
	})
}
