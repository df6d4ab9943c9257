package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/model"
	"github.com/hmistry/gutensync/util/parsers/rss"
)

// Store is the persistence boundary the engine works against. All mutations
// are staged into a SyncBatch and made durable by one ApplySyncBatch call,
// atomically or not at all. GetBook returns a record owned by the caller:
// mutating it must not change what the store serves until the batch commits.
type Store interface {
	ListBookIDs() (map[string]struct{}, error)
	GetBook(id string) (*model.Book, error)
	GetCollection(date time.Time) (*model.Collection, error)
	CountBooks() (int, error)
	ApplySyncBatch(batch *model.SyncBatch) error
}

// Result counts what one sync run did.
type Result struct {
	Inserted int
	Updated  int
	Linked   int
	Skipped  int
}

// Engine computes insert/update/skip decisions for a batch of candidate
// records against the store and commits them in one transaction. It is
// stateless across calls; the mutexes only guard against two concurrent
// syncs of the same kind, whose pre-loaded id snapshots would race.
type Engine struct {
	store     Store
	catalogMu sync.Mutex
	dailyMu   sync.Mutex
}

func NewEngine(store Store) *Engine {
	return &Engine{store: store}
}

// candidate is one normalized record waiting for an upsert decision. update
// refreshes an already-stored book from the same source row; it is nil when
// the source carries nothing to refresh.
type candidate struct {
	book   *model.Book
	update func(*model.Book) error
}

// SyncCatalog runs the bulk catalog sync. With linkTo nil existing books are
// refreshed from their rows; with linkTo set this is a targeted sync and
// existing books are used as-is, purely for linking into that day's
// collection. A catalog sync already in flight makes the call return
// ErrSyncInProgress immediately.
func (e *Engine) SyncCatalog(ctx context.Context, rows [][]string, linkTo *time.Time) (*Result, error) {
	if !e.catalogMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer e.catalogMu.Unlock()

	res := &Result{}
	cands := make([]candidate, 0, len(rows))
	for _, row := range rows {
		row := row
		book, err := BookFromCatalogRow(row)
		if err != nil {
			log.Debug("Skipping catalog row", zap.Error(err))
			res.Skipped++
			continue
		}
		cands = append(cands, candidate{
			book: book,
			update: func(existing *model.Book) error {
				return UpdateBookFromCatalogRow(existing, row)
			},
		})
	}

	applyUpdates := linkTo == nil
	return e.run(ctx, cands, linkTo, applyUpdates, res)
}

// SyncDailyFeed links every parsed feed item into the collection for the
// given date, inserting books not seen before. Feed items carry no
// type/language filter.
func (e *Engine) SyncDailyFeed(ctx context.Context, items []rss.Item, date time.Time) (*Result, error) {
	if !e.dailyMu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer e.dailyMu.Unlock()

	cands := make([]candidate, 0, len(items))
	for _, item := range items {
		cands = append(cands, candidate{book: BookFromFeedItem(item)})
	}

	return e.run(ctx, cands, &date, false, &Result{})
}

// NeedsInitialImport reports whether the store holds so few books that only
// the daily feed has ever run and the full seed catalog should be imported.
func (e *Engine) NeedsInitialImport() (bool, error) {
	count, err := e.store.CountBooks()
	if err != nil {
		return false, errors.Wrap(err, "failed to count books")
	}
	return count < config.Opts.SeedImportBelow, nil
}

func (e *Engine) run(ctx context.Context, cands []candidate, linkTo *time.Time, applyUpdates bool, res *Result) (*Result, error) {
	// One id-set load for the whole batch. Refreshing it per row would cost
	// one store round-trip for each of the tens of thousands of rows.
	existing, err := e.store.ListBookIDs()
	if err != nil {
		return nil, errors.Wrap(err, "failed to load existing book ids")
	}

	batch := &model.SyncBatch{}
	var member map[string]bool
	if linkTo != nil {
		day := model.DayOf(*linkTo)
		collection, err := e.store.GetCollection(day)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load collection for %s", model.DayKey(day))
		}
		if collection == nil {
			collection = &model.Collection{Date: day}
			batch.CollectionIsNew = true
		}
		batch.Collection = collection
		member = make(map[string]bool, len(collection.BookIDs))
		for _, id := range collection.BookIDs {
			member[id] = true
		}
	}

	// Books staged for insertion this run, so a second candidate with the
	// same new id links instead of inserting twice.
	pending := make(map[string]*model.Book)

	for _, cand := range cands {
		// Cancellation is honored between rows only; a row is never left
		// half processed.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		id := cand.book.ID
		var book *model.Book

		if staged, ok := pending[id]; ok {
			book = staged
		} else if _, ok := existing[id]; ok {
			found, err := e.store.GetBook(id)
			if err != nil {
				return nil, errors.Wrapf(err, "failed to fetch book %s", id)
			}
			if found == nil {
				log.Warn("Book is in the id set but could not be fetched", zap.String("book_id", id))
				res.Skipped++
				continue
			}
			if applyUpdates && cand.update != nil {
				if err := cand.update(found); err != nil {
					if errors.Is(err, ErrEligibilityLost) {
						log.Debug("Book no longer eligible, keeping stored record",
							zap.String("book_id", id))
					} else {
						log.Warn("Failed to update book from row",
							zap.String("book_id", id), zap.Error(err))
					}
					res.Skipped++
					continue
				}
				batch.Updates = append(batch.Updates, found)
				res.Updated++
			}
			book = found
		} else {
			pending[id] = cand.book
			batch.Inserts = append(batch.Inserts, cand.book)
			res.Inserted++
			book = cand.book
		}

		if batch.Collection != nil && !member[book.ID] {
			batch.Collection.BookIDs = append(batch.Collection.BookIDs, book.ID)
			batch.Links = append(batch.Links, book.ID)
			member[book.ID] = true
			res.Linked++
		}
	}

	if err := e.store.ApplySyncBatch(batch); err != nil {
		return nil, errors.Wrapf(ErrCommitFailed, "%v", err)
	}

	log.Info("Sync committed",
		zap.Int("inserted", res.Inserted),
		zap.Int("updated", res.Updated),
		zap.Int("linked", res.Linked),
		zap.Int("skipped", res.Skipped))
	return res, nil
}
