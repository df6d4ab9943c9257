package v1

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/http/request"
	"github.com/hmistry/gutensync/http/response"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
)

func (h *Handler) listBooks(w http.ResponseWriter, r *http.Request) {
	find := &model.FindBook{}
	if v := r.URL.Query().Get("title"); v != "" {
		find.Title = &v
	}
	if v := r.URL.Query().Get("date"); v != "" {
		find.CollectionDate = &v
	}
	if v := request.QueryIntParam(r, "limit", 0); v > 0 {
		find.Limit = &v
	}

	books, err := h.store.ListBooks(find)
	if err != nil {
		log.Error("Error listing books", zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.OK(w, r, books)
}

func (h *Handler) getBook(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	book, err := h.store.GetBook(id)
	if err != nil {
		log.Error("Error getting book", zap.String("book_id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	if book == nil {
		response.NotFound(w, r)
		return
	}
	response.OK(w, r, book)
}

// setReadingPosition stores the user's reading position, a fraction of the
// book in [0, 1].
func (h *Handler) setReadingPosition(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	var body struct {
		Position float64 `json:"position"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if body.Position < 0 || body.Position > 1 {
		response.BadRequest(w, r, errors.Errorf("position %v out of range", body.Position))
		return
	}

	if err := h.store.SetReadingPosition(id, body.Position); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			response.NotFound(w, r)
			return
		}
		log.Error("Error setting reading position", zap.String("book_id", id), zap.Error(err))
		response.ServerError(w, r, err)
		return
	}
	response.NoContent(w, r)
}

// setLocalFiles records the downloaded book and cover file names. An omitted
// field is left unchanged.
func (h *Handler) setLocalFiles(w http.ResponseWriter, r *http.Request) {
	id := request.RouteStringParam(r, "id")

	var body struct {
		LocalFileName      *string `json:"local_file_name"`
		LocalCoverFileName *string `json:"local_cover_file_name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		response.BadRequest(w, r, err)
		return
	}
	if body.LocalFileName == nil && body.LocalCoverFileName == nil {
		response.BadRequest(w, r, errors.New("no file name given"))
		return
	}

	if body.LocalFileName != nil {
		if err := h.store.SetLocalFileName(id, *body.LocalFileName); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.NotFound(w, r)
				return
			}
			log.Error("Error setting local file name", zap.String("book_id", id), zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
	}
	if body.LocalCoverFileName != nil {
		if err := h.store.SetLocalCoverFileName(id, *body.LocalCoverFileName); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.NotFound(w, r)
				return
			}
			log.Error("Error setting local cover file name", zap.String("book_id", id), zap.Error(err))
			response.ServerError(w, r, err)
			return
		}
	}
	response.NoContent(w, r)
}
