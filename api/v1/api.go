package v1

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hmistry/gutensync/middleware"
	"github.com/hmistry/gutensync/store"
	"github.com/hmistry/gutensync/worker"
)

type Handler struct {
	store    *store.Store
	syncPool worker.WorkPool
	router   *mux.Router
}

func Server(router *mux.Router, store *store.Store, syncPool worker.WorkPool) {
	handler := &Handler{
		store:    store,
		syncPool: syncPool,
		router:   router,
	}

	sr := router.PathPrefix("/api/v1").Subrouter()
	middleware := middleware.NewMiddleware(handler.store)
	sr.Use(middleware.HandleCORS)
	sr.Use(middleware.LoggingRequest)
	sr.Methods(http.MethodOptions)

	sr.HandleFunc("/books", handler.listBooks).Methods(http.MethodGet)
	sr.HandleFunc("/book/{id}", handler.getBook).Methods(http.MethodGet)
	sr.HandleFunc("/book/{id}/position", handler.setReadingPosition).Methods(http.MethodPut)
	sr.HandleFunc("/book/{id}/files", handler.setLocalFiles).Methods(http.MethodPut)
	sr.HandleFunc("/collections", handler.listCollections).Methods(http.MethodGet)
	sr.HandleFunc("/collection/{date}", handler.getCollection).Methods(http.MethodGet)
	sr.HandleFunc("/sync/catalog", handler.startCatalogSync).Methods(http.MethodPost)
	sr.HandleFunc("/sync/daily", handler.startDailySync).Methods(http.MethodPost)
	sr.HandleFunc("/sync/jobs", handler.listSyncJobs).Methods(http.MethodGet)
	sr.HandleFunc("/sync/job/{id}", handler.getSyncJob).Methods(http.MethodGet)
}
