package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/store"
	"github.com/hmistry/gutensync/store/db"
)

// Initialize the logger and config
func init() {
	config.Opts = config.GetDefaultOptions()
	log.Logger = log.NewLogger()
}

type fakePool struct {
	mu   sync.Mutex
	jobs []model.SyncJob
}

func (p *fakePool) Push(job model.SyncJob) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
}

func (p *fakePool) size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.jobs)
}

func createTestServer(t *testing.T) (*httptest.Server, *store.Store, *fakePool) {
	t.Helper()

	config.Opts.DSN = t.TempDir() + "/gutensync_api_test.db"
	d, err := db.NewDB(config.Opts.DSN)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	if err := d.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	s := store.NewStore(d.DB)
	pool := &fakePool{}

	router := mux.NewRouter()
	Server(router, s, pool)

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts, s, pool
}

func seedBooks(t *testing.T, s *store.Store) {
	t.Helper()
	batch := &model.SyncBatch{
		Inserts: []*model.Book{
			{
				ID:                  "84",
				Title:               "Frankenstein by Mary Wollstonecraft Shelley",
				ExplicitAuthor:      "Mary Wollstonecraft Shelley",
				LanguageDescription: "Language: English",
				Link:                "https://www.gutenberg.org/ebooks/84",
			},
		},
		Collection:      &model.Collection{Date: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)},
		CollectionIsNew: true,
		Links:           []string{"84"},
	}
	if err := s.ApplySyncBatch(batch); err != nil {
		t.Fatalf("Failed to seed store: %v", err)
	}
}

func TestGetBook(t *testing.T) {
	ts, s, _ := createTestServer(t)
	seedBooks(t, s)

	resp, err := http.Get(ts.URL + "/api/v1/book/84")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}

	var book model.Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		t.Fatal(err)
	}
	if book.ID != "84" || book.Title != "Frankenstein by Mary Wollstonecraft Shelley" {
		t.Errorf("Unexpected book: %+v", book)
	}
}

func TestGetBookNotFound(t *testing.T) {
	ts, _, _ := createTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/book/404")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}
}

func TestSetReadingPosition(t *testing.T) {
	ts, s, _ := createTestServer(t)
	seedBooks(t, s)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/book/84/position",
		strings.NewReader(`{"position": 0.25}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}

	book, err := s.GetBook("84")
	if err != nil {
		t.Fatal(err)
	}
	if book.LastReadLocation != 0.25 {
		t.Errorf("Position not stored: %v", book.LastReadLocation)
	}
}

func TestSetReadingPositionUnknownBook(t *testing.T) {
	ts, _, _ := createTestServer(t)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/book/404/position",
		strings.NewReader(`{"position": 0.25}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}
}

func TestSetReadingPositionOutOfRange(t *testing.T) {
	ts, s, _ := createTestServer(t)
	seedBooks(t, s)

	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/v1/book/84/position",
		strings.NewReader(`{"position": 1.5}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}
}

func TestGetCollection(t *testing.T) {
	ts, s, _ := createTestServer(t)
	seedBooks(t, s)

	resp, err := http.Get(ts.URL + "/api/v1/collection/2026-09-01")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}

	var body struct {
		Date  string       `json:"date"`
		Books []model.Book `json:"books"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body.Date != "2026-09-01" || len(body.Books) != 1 {
		t.Errorf("Unexpected collection: %+v", body)
	}
}

func TestStartDailySync(t *testing.T) {
	ts, s, pool := createTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/sync/daily", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("Unexpected status: %d", resp.StatusCode)
	}

	var job model.SyncJob
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		t.Fatal(err)
	}
	if job.Kind != model.SyncKindDaily || job.Status != model.JobStatusPending {
		t.Errorf("Unexpected job: %+v", job)
	}

	stored, err := s.GetSyncJob(job.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored == nil {
		t.Fatal("Job not persisted")
	}
	// The push happens on a separate goroutine, wait for it
	deadline := time.Now().Add(2 * time.Second)
	for pool.size() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if pool.size() != 1 {
		t.Errorf("Job not pushed to pool")
	}
}
