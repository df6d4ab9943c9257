package ingest

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/config"
	"github.com/hmistry/gutensync/fetch"
	"github.com/hmistry/gutensync/log"
	"github.com/hmistry/gutensync/util/parsers/csv"
	"github.com/hmistry/gutensync/util/parsers/rss"
)

// Service wires the fetcher and the tokenizers in front of the engine. One
// fetch attempt per call; a fetch failure surfaces as a single
// ErrSourceUnavailable for the whole sync.
type Service struct {
	engine  *Engine
	fetcher fetch.Fetcher
}

func NewService(engine *Engine, fetcher fetch.Fetcher) *Service {
	return &Service{engine: engine, fetcher: fetcher}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

// RunCatalogSync imports the configured catalog source, the bundled seed
// file when no remote URL is configured. linkTo carries an optional day
// collection to link processed books into.
func (s *Service) RunCatalogSync(ctx context.Context, linkTo *time.Time) (*Result, error) {
	src := config.Opts.CatalogURL
	if src == "" {
		src = config.Opts.SeedCatalogFile
		log.Info("Loading catalog from bundled seed file", zap.String("path", src))
	} else {
		log.Info("Downloading catalog", zap.String("url", src))
	}

	data, err := s.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "catalog source %s: %v", src, err)
	}

	rows := csv.Parse(string(data))
	log.Info("Parsed catalog", zap.Int("rows", len(rows)))

	return s.engine.SyncCatalog(ctx, rows, linkTo)
}

// RunDailySync imports the daily announcement feed and links every item into
// today's collection.
func (s *Service) RunDailySync(ctx context.Context) (*Result, error) {
	url := config.Opts.FeedURL
	log.Info("Fetching daily feed", zap.String("url", url))

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, errors.Wrapf(ErrSourceUnavailable, "feed source %s: %v", url, err)
	}

	items, err := rss.Parse(data)
	if err != nil {
		return nil, errors.Wrapf(ErrMalformedBatch, "%v", err)
	}
	log.Info("Parsed daily feed", zap.Int("items", len(items)))

	return s.engine.SyncDailyFeed(ctx, items, time.Now())
}
