// Package rss splits the daily announcement feed into discrete items.
package rss

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/mmcdole/gofeed"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/hmistry/gutensync/log"
)

// Item is one well-formed feed entry.
type Item struct {
	Title       string
	Link        string
	Description string
}

// Parse produces one item per <item> block of an RSS 2.0 document. An item
// whose link does not parse as an absolute URL is dropped and the rest of the
// feed still parses. A structurally broken document fails the whole batch and
// no partial results are returned.
func Parse(data []byte) ([]Item, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse feed")
	}

	items := make([]Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)
		description := strings.TrimSpace(entry.Description)

		if _, err := url.ParseRequestURI(link); err != nil {
			log.Warn("Dropping feed item with invalid link",
				zap.String("title", title),
				zap.String("link", link))
			continue
		}

		items = append(items, Item{
			Title:       title,
			Link:        link,
			Description: description,
		})
	}
	return items, nil
}
